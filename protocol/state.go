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

package protocol

import "fmt"

// Which side of a mini-protocol may send in a state
const (
	AgencyNone   uint = 0
	AgencyClient uint = 1
	AgencyServer uint = 2
)

type State struct {
	Id   uint
	Name string
}

func NewState(id uint, name string) State {
	return State{
		Id:   id,
		Name: name,
	}
}

func (s State) String() string {
	return s.Name
}

type StateTransition struct {
	MsgType  uint8
	NewState State
}

type StateMapEntry struct {
	Agency      uint
	Transitions []StateTransition
}

type StateMap map[State]StateMapEntry

// Next returns the state reached by sending msgType from state. Messages
// without a transition in the current state are protocol violations
func (s StateMap) Next(state State, msgType uint8) (State, error) {
	entry, ok := s[state]
	if !ok {
		return State{}, fmt.Errorf("%w: unknown state %s", ErrProtocolViolationInvalidMessage, state)
	}
	for _, transition := range entry.Transitions {
		if transition.MsgType == msgType {
			return transition.NewState, nil
		}
	}
	return State{}, fmt.Errorf(
		"%w: message type %d not allowed in state %s",
		ErrProtocolViolationInvalidMessage,
		msgType,
		state,
	)
}
