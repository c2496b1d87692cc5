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
	"fmt"

	"github.com/blinklabs-io/txreject/cbor"
	"github.com/blinklabs-io/txreject/haskell"
	"github.com/blinklabs-io/txreject/ledger/common"
	"github.com/blinklabs-io/txreject/ledger/common/script"
)

const (
	PlutusPurposeSpending   = 0
	PlutusPurposeMinting    = 1
	PlutusPurposeCertifying = 2
	PlutusPurposeRewarding  = 3
	PlutusPurposeVoting     = 4
	PlutusPurposeProposing  = 5
)

var plutusPurposeNames = [...]string{
	PlutusPurposeSpending:   "ConwaySpending",
	PlutusPurposeMinting:    "ConwayMinting",
	PlutusPurposeCertifying: "ConwayCertifying",
	PlutusPurposeRewarding:  "ConwayRewarding",
	PlutusPurposeVoting:     "ConwayVoting",
	PlutusPurposeProposing:  "ConwayProposing",
}

// PlutusPurpose identifies what a script is run for. The ledger sends it
// either with the index of the redeemer (AsIx) or with the item being
// validated (AsItem), and the two forms are told apart by the CBOR type of
// the payload
type PlutusPurpose struct {
	Tag   uint
	Index *uint32
	Item  haskell.Shower
}

func (p *PlutusPurpose) UnmarshalCBOR(data []byte) error {
	tag, err := cbor.DecodeIdFromList(data)
	if err != nil {
		return err
	}
	if tag >= len(plutusPurposeNames) {
		return common.NewUnknownDiscriminantError("PlutusPurpose", tag, data)
	}
	items, err := cbor.DecodeList(data)
	if err != nil {
		return err
	}
	if len(items) != 2 {
		return fmt.Errorf("%w: plutus purpose has %d items", common.ErrMalformed, len(items))
	}
	// tag is known within uint range
	p.Tag = uint(tag) // #nosec G115
	payload := items[1]
	if typ, err := cbor.MajorType(payload); err == nil && typ == cbor.CborTypeUint {
		var idx uint32
		if _, err := cbor.Decode(payload, &idx); err != nil {
			return err
		}
		p.Index = &idx
		return nil
	}
	item, err := decodePurposeItem(tag, payload)
	if err != nil {
		return common.NewDecodeError("PlutusPurpose", data, err)
	}
	p.Item = item
	return nil
}

func decodePurposeItem(tag int, data []byte) (haskell.Shower, error) {
	switch tag {
	case PlutusPurposeSpending:
		var txIn common.TxIn
		_, err := cbor.Decode(data, &txIn)
		return txIn, err
	case PlutusPurposeMinting:
		var policyId common.PolicyId
		_, err := cbor.Decode(data, &policyId)
		return policyId, err
	case PlutusPurposeCertifying:
		var cert CertificateWrapper
		_, err := cbor.Decode(data, &cert)
		return cert, err
	case PlutusPurposeRewarding:
		var account common.RewardAccount
		_, err := cbor.Decode(data, &account)
		return account, err
	case PlutusPurposeVoting:
		var voter Voter
		_, err := cbor.Decode(data, &voter)
		return voter, err
	default:
		var proposal ProposalProcedure
		_, err := cbor.Decode(data, &proposal)
		return proposal, err
	}
}

func (p PlutusPurpose) ShowsPrec(w *haskell.Writer, d int) {
	var payload haskell.Shower
	switch {
	case p.Index != nil:
		payload = haskell.Record("AsIx", haskell.F("unAsIx", haskell.Uint(*p.Index)))
	case p.Item != nil:
		payload = haskell.Record("AsItem", haskell.F("unAsItem", p.Item))
	default:
		payload = haskell.Unimplemented("PlutusPurpose")
	}
	name := "PlutusPurpose"
	if p.Tag < uint(len(plutusPurposeNames)) {
		name = plutusPurposeNames[p.Tag]
	}
	haskell.Con(name, payload).ShowsPrec(w, d)
}

// IsValid is the validity flag of a transaction
type IsValid bool

func (v IsValid) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("IsValid", haskell.Bool(v)).ShowsPrec(w, d)
}

const (
	TagMismatchPassedUnexpectedly = 0
	TagMismatchFailedUnexpectedly = 1
)

// TagMismatchDescription explains why the validity flag of a transaction
// did not match the result of running its scripts
type TagMismatchDescription struct {
	Type     uint
	Failures common.NonEmpty[FailureDescription]
}

func (t *TagMismatchDescription) UnmarshalCBOR(data []byte) error {
	id, err := cbor.DecodeIdFromList(data)
	if err != nil {
		return err
	}
	switch id {
	case TagMismatchPassedUnexpectedly:
		var tmp struct {
			cbor.StructAsArray
			Type uint
		}
		if _, err := cbor.Decode(data, &tmp); err != nil {
			return err
		}
		t.Failures = nil
	case TagMismatchFailedUnexpectedly:
		var tmp struct {
			cbor.StructAsArray
			Type     uint
			Failures common.NonEmpty[FailureDescription]
		}
		if _, err := cbor.Decode(data, &tmp); err != nil {
			return err
		}
		t.Failures = tmp.Failures
	default:
		return common.NewUnknownDiscriminantError("TagMismatchDescription", id, data)
	}
	t.Type = uint(id) // #nosec G115
	return nil
}

func (t TagMismatchDescription) ShowsPrec(w *haskell.Writer, d int) {
	if t.Type == TagMismatchPassedUnexpectedly {
		w.WriteString("PassedUnexpectedly")
		return
	}
	haskell.Con("FailedUnexpectedly", t.Failures).ShowsPrec(w, d)
}

const FailureDescriptionPlutusFailure = 1

// FailureDescription is the output of a failed Plutus script run
type FailureDescription struct {
	cbor.StructAsArray
	Type    uint
	Message string
	Context []byte
}

func (f *FailureDescription) UnmarshalCBOR(data []byte) error {
	id, err := cbor.DecodeIdFromList(data)
	if err != nil {
		return err
	}
	if id != FailureDescriptionPlutusFailure {
		return common.NewUnknownDiscriminantError("FailureDescription", id, data)
	}
	type tFailureDescription FailureDescription
	var tmp tFailureDescription
	if _, err := cbor.Decode(data, &tmp); err != nil {
		return err
	}
	*f = FailureDescription(tmp)
	return nil
}

func (f FailureDescription) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con(
		"PlutusFailure",
		haskell.String(f.Message),
		haskell.Bytes(f.Context),
	).ShowsPrec(w, d)
}

const (
	CollectErrorNoRedeemer     = 0
	CollectErrorNoWitness      = 1
	CollectErrorNoCostModel    = 2
	CollectErrorBadTranslation = 3
)

// CollectError is a failure to assemble the inputs of a Plutus script
type CollectError struct {
	Type       uint
	Purpose    PlutusPurpose
	ScriptHash common.ScriptHash
	Language   script.Language
	// Context holds the undecoded translation error
	Context cbor.RawMessage
}

func (c *CollectError) UnmarshalCBOR(data []byte) error {
	id, err := cbor.DecodeIdFromList(data)
	if err != nil {
		return err
	}
	switch id {
	case CollectErrorNoRedeemer:
		var tmp struct {
			cbor.StructAsArray
			Type    uint
			Purpose PlutusPurpose
		}
		if _, err := cbor.Decode(data, &tmp); err != nil {
			return err
		}
		c.Purpose = tmp.Purpose
	case CollectErrorNoWitness:
		var tmp struct {
			cbor.StructAsArray
			Type       uint
			ScriptHash common.ScriptHash
		}
		if _, err := cbor.Decode(data, &tmp); err != nil {
			return err
		}
		c.ScriptHash = tmp.ScriptHash
	case CollectErrorNoCostModel:
		var tmp struct {
			cbor.StructAsArray
			Type     uint
			Language script.Language
		}
		if _, err := cbor.Decode(data, &tmp); err != nil {
			return err
		}
		c.Language = tmp.Language
	case CollectErrorBadTranslation:
		var tmp struct {
			cbor.StructAsArray
			Type    uint
			Context cbor.RawMessage
		}
		if _, err := cbor.Decode(data, &tmp); err != nil {
			return err
		}
		c.Context = append(cbor.RawMessage(nil), tmp.Context...)
	default:
		return common.NewUnknownDiscriminantError("CollectError", id, data)
	}
	c.Type = uint(id) // #nosec G115
	return nil
}

func (c CollectError) ShowsPrec(w *haskell.Writer, d int) {
	switch c.Type {
	case CollectErrorNoRedeemer:
		haskell.Con("NoRedeemer", c.Purpose).ShowsPrec(w, d)
	case CollectErrorNoWitness:
		haskell.Con("NoWitness", c.ScriptHash).ShowsPrec(w, d)
	case CollectErrorNoCostModel:
		haskell.Con("NoCostModel", c.Language).ShowsPrec(w, d)
	default:
		haskell.Con("BadTranslation", haskell.Unimplemented("ContextError")).ShowsPrec(w, d)
	}
}
