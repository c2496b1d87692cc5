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

package conway

import (
	"encoding/binary"
	"fmt"
	"net/netip"

	"github.com/blinklabs-io/txreject/cbor"
	"github.com/blinklabs-io/txreject/haskell"
	"github.com/blinklabs-io/txreject/ledger/common"
)

const (
	CertificateTypeStakeRegistration               = 0
	CertificateTypeStakeDeregistration             = 1
	CertificateTypeStakeDelegation                 = 2
	CertificateTypePoolRegistration                = 3
	CertificateTypePoolRetirement                  = 4
	CertificateTypeRegistration                    = 7
	CertificateTypeDeregistration                  = 8
	CertificateTypeVoteDelegation                  = 9
	CertificateTypeStakeVoteDelegation             = 10
	CertificateTypeStakeRegistrationDelegation     = 11
	CertificateTypeVoteRegistrationDelegation      = 12
	CertificateTypeStakeVoteRegistrationDelegation = 13
	CertificateTypeAuthCommitteeHot                = 14
	CertificateTypeResignCommitteeCold             = 15
	CertificateTypeRegistrationDrep                = 16
	CertificateTypeDeregistrationDrep              = 17
	CertificateTypeUpdateDrep                      = 18
)

// Certificate is a Conway transaction certificate
type Certificate interface {
	haskell.Shower
	isCertificate()
}

type CertificateWrapper struct {
	Type        uint
	Certificate Certificate
}

func (c *CertificateWrapper) UnmarshalCBOR(data []byte) error {
	// Determine cert type
	certType, err := cbor.DecodeIdFromList(data)
	if err != nil {
		return err
	}
	var tmpCert Certificate
	switch certType {
	case CertificateTypeStakeRegistration:
		tmpCert = &StakeRegistrationCertificate{}
	case CertificateTypeStakeDeregistration:
		tmpCert = &StakeDeregistrationCertificate{}
	case CertificateTypeStakeDelegation:
		tmpCert = &StakeDelegationCertificate{}
	case CertificateTypePoolRegistration:
		tmpCert = &PoolRegistrationCertificate{}
	case CertificateTypePoolRetirement:
		tmpCert = &PoolRetirementCertificate{}
	case CertificateTypeRegistration:
		tmpCert = &RegistrationCertificate{}
	case CertificateTypeDeregistration:
		tmpCert = &DeregistrationCertificate{}
	case CertificateTypeVoteDelegation:
		tmpCert = &VoteDelegationCertificate{}
	case CertificateTypeStakeVoteDelegation:
		tmpCert = &StakeVoteDelegationCertificate{}
	case CertificateTypeStakeRegistrationDelegation:
		tmpCert = &StakeRegistrationDelegationCertificate{}
	case CertificateTypeVoteRegistrationDelegation:
		tmpCert = &VoteRegistrationDelegationCertificate{}
	case CertificateTypeStakeVoteRegistrationDelegation:
		tmpCert = &StakeVoteRegistrationDelegationCertificate{}
	case CertificateTypeAuthCommitteeHot:
		tmpCert = &AuthCommitteeHotCertificate{}
	case CertificateTypeResignCommitteeCold:
		tmpCert = &ResignCommitteeColdCertificate{}
	case CertificateTypeRegistrationDrep:
		tmpCert = &RegistrationDrepCertificate{}
	case CertificateTypeDeregistrationDrep:
		tmpCert = &DeregistrationDrepCertificate{}
	case CertificateTypeUpdateDrep:
		tmpCert = &UpdateDrepCertificate{}
	default:
		// Genesis key delegation and MIR certificates do not exist in Conway
		return common.NewUnknownDiscriminantError("TxCert", certType, data)
	}
	// Decode cert
	if _, err := cbor.Decode(data, tmpCert); err != nil {
		return common.NewDecodeError("TxCert", data, err)
	}
	// cert type is known within uint range
	c.Type = uint(certType) // #nosec G115
	c.Certificate = tmpCert
	return nil
}

func (c CertificateWrapper) ShowsPrec(w *haskell.Writer, d int) {
	if c.Certificate == nil {
		haskell.Unimplemented("TxCert").ShowsPrec(w, d)
		return
	}
	c.Certificate.ShowsPrec(w, d)
}

type CertificateBase struct {
	cbor.StructAsArray
	CertType uint
}

func (CertificateBase) isCertificate() {}

func delegCert(inner haskell.Shower) haskell.Shower {
	return haskell.Con("ConwayTxCertDeleg", inner)
}

func poolCert(inner haskell.Shower) haskell.Shower {
	return haskell.Con("ConwayTxCertPool", inner)
}

func govCert(inner haskell.Shower) haskell.Shower {
	return haskell.Con("ConwayTxCertGov", inner)
}

var sNothing = haskell.Con("SNothing")

type StakeRegistrationCertificate struct {
	CertificateBase
	StakeCredential common.Credential
}

func (c StakeRegistrationCertificate) ShowsPrec(w *haskell.Writer, d int) {
	delegCert(
		haskell.Con("ConwayRegCert", c.StakeCredential, sNothing),
	).ShowsPrec(w, d)
}

type StakeDeregistrationCertificate struct {
	CertificateBase
	StakeCredential common.Credential
}

func (c StakeDeregistrationCertificate) ShowsPrec(w *haskell.Writer, d int) {
	delegCert(
		haskell.Con("ConwayUnRegCert", c.StakeCredential, sNothing),
	).ShowsPrec(w, d)
}

type StakeDelegationCertificate struct {
	CertificateBase
	StakeCredential common.Credential
	PoolKeyHash     common.KeyHash
}

func (c StakeDelegationCertificate) ShowsPrec(w *haskell.Writer, d int) {
	delegCert(
		haskell.Con(
			"ConwayDelegCert",
			c.StakeCredential,
			haskell.Con("DelegStake", c.PoolKeyHash),
		),
	).ShowsPrec(w, d)
}

type PoolRegistrationCertificate struct {
	CertificateBase
	Operator      common.KeyHash
	VrfKeyHash    common.VrfKeyHash
	Pledge        common.Coin
	Cost          common.Coin
	Margin        common.UnitInterval
	RewardAccount common.RewardAccount
	PoolOwners    PoolOwners
	Relays        []PoolRelay
	PoolMetadata  *PoolMetadata
}

func (c PoolRegistrationCertificate) ShowsPrec(w *haskell.Writer, d int) {
	poolCert(haskell.Con("RegPool", c.PoolParams())).ShowsPrec(w, d)
}

// PoolParams renders the registration parameters of a stake pool
func (c PoolRegistrationCertificate) PoolParams() haskell.Shower {
	return haskell.Record(
		"PoolParams",
		haskell.F("ppId", c.Operator),
		haskell.F("ppVrf", c.VrfKeyHash),
		haskell.F("ppPledge", c.Pledge),
		haskell.F("ppCost", c.Cost),
		haskell.F("ppMargin", c.Margin),
		haskell.F("ppRewardAccount", c.RewardAccount),
		haskell.F("ppOwners", c.PoolOwners),
		haskell.F(
			"ppRelays",
			haskell.Record(
				"StrictSeq",
				haskell.F("fromStrict", haskell.FromList(haskell.Showers(c.Relays)...)),
			),
		),
		haskell.F("ppMetadata", common.Maybe(c.PoolMetadata)),
	)
}

type PoolRetirementCertificate struct {
	CertificateBase
	PoolKeyHash common.KeyHash
	Epoch       common.EpochNo
}

func (c PoolRetirementCertificate) ShowsPrec(w *haskell.Writer, d int) {
	poolCert(
		haskell.Con("RetirePool", c.PoolKeyHash, c.Epoch),
	).ShowsPrec(w, d)
}

type RegistrationCertificate struct {
	CertificateBase
	StakeCredential common.Credential
	Amount          common.Coin
}

func (c RegistrationCertificate) ShowsPrec(w *haskell.Writer, d int) {
	delegCert(
		haskell.Con("ConwayRegCert", c.StakeCredential, common.SJust(c.Amount)),
	).ShowsPrec(w, d)
}

type DeregistrationCertificate struct {
	CertificateBase
	StakeCredential common.Credential
	Amount          common.Coin
}

func (c DeregistrationCertificate) ShowsPrec(w *haskell.Writer, d int) {
	delegCert(
		haskell.Con("ConwayUnRegCert", c.StakeCredential, common.SJust(c.Amount)),
	).ShowsPrec(w, d)
}

type VoteDelegationCertificate struct {
	CertificateBase
	StakeCredential common.Credential
	Drep            DRep
}

func (c VoteDelegationCertificate) ShowsPrec(w *haskell.Writer, d int) {
	delegCert(
		haskell.Con(
			"ConwayDelegCert",
			c.StakeCredential,
			haskell.Con("DelegVote", c.Drep),
		),
	).ShowsPrec(w, d)
}

type StakeVoteDelegationCertificate struct {
	CertificateBase
	StakeCredential common.Credential
	PoolKeyHash     common.KeyHash
	Drep            DRep
}

func (c StakeVoteDelegationCertificate) ShowsPrec(w *haskell.Writer, d int) {
	delegCert(
		haskell.Con(
			"ConwayDelegCert",
			c.StakeCredential,
			haskell.Con("DelegStakeVote", c.PoolKeyHash, c.Drep),
		),
	).ShowsPrec(w, d)
}

type StakeRegistrationDelegationCertificate struct {
	CertificateBase
	StakeCredential common.Credential
	PoolKeyHash     common.KeyHash
	Amount          common.Coin
}

func (c StakeRegistrationDelegationCertificate) ShowsPrec(w *haskell.Writer, d int) {
	delegCert(
		haskell.Con(
			"ConwayRegDelegCert",
			c.StakeCredential,
			haskell.Con("DelegStake", c.PoolKeyHash),
			c.Amount,
		),
	).ShowsPrec(w, d)
}

type VoteRegistrationDelegationCertificate struct {
	CertificateBase
	StakeCredential common.Credential
	Drep            DRep
	Amount          common.Coin
}

func (c VoteRegistrationDelegationCertificate) ShowsPrec(w *haskell.Writer, d int) {
	delegCert(
		haskell.Con(
			"ConwayRegDelegCert",
			c.StakeCredential,
			haskell.Con("DelegVote", c.Drep),
			c.Amount,
		),
	).ShowsPrec(w, d)
}

type StakeVoteRegistrationDelegationCertificate struct {
	CertificateBase
	StakeCredential common.Credential
	PoolKeyHash     common.KeyHash
	Drep            DRep
	Amount          common.Coin
}

func (c StakeVoteRegistrationDelegationCertificate) ShowsPrec(w *haskell.Writer, d int) {
	delegCert(
		haskell.Con(
			"ConwayRegDelegCert",
			c.StakeCredential,
			haskell.Con("DelegStakeVote", c.PoolKeyHash, c.Drep),
			c.Amount,
		),
	).ShowsPrec(w, d)
}

type AuthCommitteeHotCertificate struct {
	CertificateBase
	ColdCredential common.Credential
	HotCredential  common.Credential
}

func (c AuthCommitteeHotCertificate) ShowsPrec(w *haskell.Writer, d int) {
	govCert(
		haskell.Con("ConwayAuthCommitteeHotKey", c.ColdCredential, c.HotCredential),
	).ShowsPrec(w, d)
}

type ResignCommitteeColdCertificate struct {
	CertificateBase
	ColdCredential common.Credential
	Anchor         *common.Anchor
}

func (c ResignCommitteeColdCertificate) ShowsPrec(w *haskell.Writer, d int) {
	govCert(
		haskell.Con("ConwayResignCommitteeColdKey", c.ColdCredential, common.Maybe(c.Anchor)),
	).ShowsPrec(w, d)
}

type RegistrationDrepCertificate struct {
	CertificateBase
	DrepCredential common.Credential
	Amount         common.Coin
	Anchor         *common.Anchor
}

func (c RegistrationDrepCertificate) ShowsPrec(w *haskell.Writer, d int) {
	govCert(
		haskell.Con("ConwayRegDRep", c.DrepCredential, c.Amount, common.Maybe(c.Anchor)),
	).ShowsPrec(w, d)
}

type DeregistrationDrepCertificate struct {
	CertificateBase
	DrepCredential common.Credential
	Amount         common.Coin
}

func (c DeregistrationDrepCertificate) ShowsPrec(w *haskell.Writer, d int) {
	govCert(
		haskell.Con("ConwayUnRegDRep", c.DrepCredential, c.Amount),
	).ShowsPrec(w, d)
}

type UpdateDrepCertificate struct {
	CertificateBase
	DrepCredential common.Credential
	Anchor         *common.Anchor
}

func (c UpdateDrepCertificate) ShowsPrec(w *haskell.Writer, d int) {
	govCert(
		haskell.Con("ConwayUpdateDRep", c.DrepCredential, common.Maybe(c.Anchor)),
	).ShowsPrec(w, d)
}

// PoolOwners is the owner key hash set of a pool registration. Older
// encoders omit the set tag
type PoolOwners []common.KeyHash

func (p *PoolOwners) UnmarshalCBOR(data []byte) error {
	if typ, err := cbor.MajorType(data); err == nil && typ == cbor.CborTypeTag {
		content, err := cbor.DecodeTagged(data, cbor.CborTagSet)
		if err != nil {
			return err
		}
		data = content
	}
	var tmp []common.KeyHash
	if _, err := cbor.Decode(data, &tmp); err != nil {
		return err
	}
	*p = tmp
	return nil
}

func (p PoolOwners) ShowsPrec(w *haskell.Writer, d int) {
	haskell.FromList(haskell.Showers(p)...).ShowsPrec(w, d)
}

type PoolMetadata struct {
	cbor.StructAsArray
	Url  common.Url
	Hash []byte
}

func (p PoolMetadata) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Record(
		"PoolMetadata",
		haskell.F("pmUrl", p.Url),
		haskell.F("pmHash", haskell.Bytes(p.Hash)),
	).ShowsPrec(w, d)
}

const (
	PoolRelayTypeSingleHostAddress = 0
	PoolRelayTypeSingleHostName    = 1
	PoolRelayTypeMultiHostName     = 2
)

type PoolRelay struct {
	Type     int
	Port     *uint16
	Ipv4     *netip.Addr
	Ipv6     *netip.Addr
	Hostname string
}

func (p *PoolRelay) UnmarshalCBOR(data []byte) error {
	tmpId, err := cbor.DecodeIdFromList(data)
	if err != nil {
		return err
	}
	p.Type = tmpId
	switch tmpId {
	case PoolRelayTypeSingleHostAddress:
		var tmpData struct {
			cbor.StructAsArray
			Type uint
			Port *uint16
			Ipv4 *[]byte
			Ipv6 *[]byte
		}
		if _, err := cbor.Decode(data, &tmpData); err != nil {
			return err
		}
		p.Port = tmpData.Port
		if tmpData.Ipv4 != nil {
			addr, err := decodeIpv4(*tmpData.Ipv4)
			if err != nil {
				return err
			}
			p.Ipv4 = &addr
		}
		if tmpData.Ipv6 != nil {
			addr, err := decodeIpv6(*tmpData.Ipv6)
			if err != nil {
				return err
			}
			p.Ipv6 = &addr
		}
	case PoolRelayTypeSingleHostName:
		var tmpData struct {
			cbor.StructAsArray
			Type     uint
			Port     *uint16
			Hostname string
		}
		if _, err := cbor.Decode(data, &tmpData); err != nil {
			return err
		}
		p.Port = tmpData.Port
		p.Hostname = tmpData.Hostname
	case PoolRelayTypeMultiHostName:
		var tmpData struct {
			cbor.StructAsArray
			Type     uint
			Hostname string
		}
		if _, err := cbor.Decode(data, &tmpData); err != nil {
			return err
		}
		p.Hostname = tmpData.Hostname
	default:
		return common.NewUnknownDiscriminantError("StakePoolRelay", tmpId, data)
	}
	return nil
}

func decodeIpv4(data []byte) (netip.Addr, error) {
	if len(data) != 4 {
		return netip.Addr{}, fmt.Errorf("%w: IPv4 address has %d bytes", common.ErrMalformed, len(data))
	}
	return netip.AddrFrom4([4]byte(data)), nil
}

// IPv6 addresses are sent as four little-endian 32-bit words
func decodeIpv6(data []byte) (netip.Addr, error) {
	if len(data) != 16 {
		return netip.Addr{}, fmt.Errorf("%w: IPv6 address has %d bytes", common.ErrMalformed, len(data))
	}
	var addr [16]byte
	for i := 0; i < 16; i += 4 {
		binary.BigEndian.PutUint32(addr[i:], binary.LittleEndian.Uint32(data[i:]))
	}
	return netip.AddrFrom16(addr), nil
}

func (p PoolRelay) port() haskell.Shower {
	if p.Port == nil {
		return sNothing
	}
	return haskell.Con(
		"SJust",
		haskell.Record("Port", haskell.F("portToWord16", haskell.Uint(*p.Port))),
	)
}

func (p PoolRelay) dnsName() haskell.Shower {
	return haskell.Record("DnsName", haskell.F("dnsToText", haskell.String(p.Hostname)))
}

func ipAddr(addr *netip.Addr) haskell.Shower {
	if addr == nil {
		return sNothing
	}
	return haskell.Con("SJust", haskell.Raw(addr.String()))
}

func (p PoolRelay) ShowsPrec(w *haskell.Writer, d int) {
	switch p.Type {
	case PoolRelayTypeSingleHostAddress:
		haskell.Con("SingleHostAddr", p.port(), ipAddr(p.Ipv4), ipAddr(p.Ipv6)).ShowsPrec(w, d)
	case PoolRelayTypeSingleHostName:
		haskell.Con("SingleHostName", p.port(), p.dnsName()).ShowsPrec(w, d)
	default:
		haskell.Con("MultiHostName", p.dnsName()).ShowsPrec(w, d)
	}
}
