// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"flag"
	"time"
)

// Flags are the command line settings. Only flags given on the command line
// override the file and environment
type Flags struct {
	Flagset      *flag.FlagSet
	ConfigFile   string
	Socket       string
	Address      string
	Network      string
	NetworkMagic uint
	Listen       string
	Port         uint
	Timeout      time.Duration
	LogLevel     string
	LogFormat    string
}

func NewFlags(name string) *Flags {
	f := &Flags{
		Flagset: flag.NewFlagSet(name, flag.ContinueOnError),
	}
	f.Flagset.StringVar(
		&f.ConfigFile,
		"config",
		"",
		"path to a TOML config file",
	)
	f.Flagset.StringVar(
		&f.Socket,
		"socket",
		"",
		"UNIX socket path of the node",
	)
	f.Flagset.StringVar(
		&f.Address,
		"address",
		"",
		"TCP address of the node in address:port format",
	)
	f.Flagset.StringVar(
		&f.Network,
		"network",
		"",
		"specifies network that node is participating in",
	)
	f.Flagset.UintVar(
		&f.NetworkMagic,
		"network-magic",
		0,
		"specifies network magic value. this overrides the -network option",
	)
	f.Flagset.StringVar(&f.Listen, "listen", "", "HTTP listen address")
	f.Flagset.UintVar(&f.Port, "port", 0, "HTTP listen port")
	f.Flagset.DurationVar(
		&f.Timeout,
		"timeout",
		0,
		"timeout for a single submission to the node",
	)
	f.Flagset.StringVar(&f.LogLevel, "log-level", "", "log level")
	f.Flagset.StringVar(&f.LogFormat, "log-format", "", "log format (text or json)")
	return f
}

func (f *Flags) Parse(args []string) error {
	return f.Flagset.Parse(args)
}

// Apply copies the flags set on the command line into cfg
func (f *Flags) Apply(cfg *Config) {
	f.Flagset.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "socket":
			cfg.Node.SocketPath = f.Socket
		case "address":
			cfg.Node.Address = f.Address
		case "network":
			cfg.Node.Network = f.Network
			cfg.Node.NetworkMagic = 0
		case "network-magic":
			cfg.Node.NetworkMagic = uint32(f.NetworkMagic)
		case "listen":
			cfg.Api.ListenAddress = f.Listen
		case "port":
			cfg.Api.ListenPort = f.Port
		case "timeout":
			cfg.Node.Timeout = f.Timeout
		case "log-level":
			cfg.Logging.Level = f.LogLevel
		case "log-format":
			cfg.Logging.Format = f.LogFormat
		}
	})
}
