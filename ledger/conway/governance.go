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
	"strings"

	"github.com/blinklabs-io/txreject/cbor"
	"github.com/blinklabs-io/txreject/haskell"
	"github.com/blinklabs-io/txreject/ledger/common"
)

const (
	VoterTypeConstitutionalCommitteeHotKeyHash    uint8 = 0
	VoterTypeConstitutionalCommitteeHotScriptHash uint8 = 1
	VoterTypeDRepKeyHash                          uint8 = 2
	VoterTypeDRepScriptHash                       uint8 = 3
	VoterTypeStakingPoolKeyHash                   uint8 = 4
)

type Voter struct {
	cbor.StructAsArray
	Type uint8
	Hash common.Blake2b224
}

func (v *Voter) UnmarshalCBOR(data []byte) error {
	id, err := cbor.DecodeIdFromList(data)
	if err != nil {
		return err
	}
	if id > int(VoterTypeStakingPoolKeyHash) {
		return common.NewUnknownDiscriminantError("Voter", id, data)
	}
	return cbor.DecodeGeneric(data, v)
}

func (v Voter) credential() common.Credential {
	if v.Type == VoterTypeConstitutionalCommitteeHotScriptHash ||
		v.Type == VoterTypeDRepScriptHash {
		return common.NewScriptHashCredential(common.ScriptHash{Blake2b224: v.Hash})
	}
	return common.NewKeyHashCredential(common.KeyHash{Blake2b224: v.Hash})
}

func (v Voter) ShowsPrec(w *haskell.Writer, d int) {
	switch v.Type {
	case VoterTypeConstitutionalCommitteeHotKeyHash, VoterTypeConstitutionalCommitteeHotScriptHash:
		haskell.Con("CommitteeVoter", v.credential()).ShowsPrec(w, d)
	case VoterTypeDRepKeyHash, VoterTypeDRepScriptHash:
		haskell.Con("DRepVoter", v.credential()).ShowsPrec(w, d)
	default:
		haskell.Con("StakePoolVoter", common.KeyHash{Blake2b224: v.Hash}).ShowsPrec(w, d)
	}
}

const (
	DRepTypeAddrKeyHash  = 0
	DRepTypeScriptHash   = 1
	DRepTypeAbstain      = 2
	DRepTypeNoConfidence = 3
)

// DRep is the target of a vote delegation
type DRep struct {
	Type uint
	Hash common.Blake2b224
}

func (d *DRep) UnmarshalCBOR(data []byte) error {
	id, err := cbor.DecodeIdFromList(data)
	if err != nil {
		return err
	}
	switch id {
	case DRepTypeAddrKeyHash, DRepTypeScriptHash:
		var tmp struct {
			cbor.StructAsArray
			Type uint
			Hash common.Blake2b224
		}
		if _, err := cbor.Decode(data, &tmp); err != nil {
			return err
		}
		d.Hash = tmp.Hash
	case DRepTypeAbstain, DRepTypeNoConfidence:
		var tmp struct {
			cbor.StructAsArray
			Type uint
		}
		if _, err := cbor.Decode(data, &tmp); err != nil {
			return err
		}
	default:
		return common.NewUnknownDiscriminantError("DRep", id, data)
	}
	d.Type = uint(id) // #nosec G115
	return nil
}

func (d DRep) ShowsPrec(w *haskell.Writer, p int) {
	switch d.Type {
	case DRepTypeAddrKeyHash:
		haskell.Con(
			"DRepCredential",
			common.NewKeyHashCredential(common.KeyHash{Blake2b224: d.Hash}),
		).ShowsPrec(w, p)
	case DRepTypeScriptHash:
		haskell.Con(
			"DRepCredential",
			common.NewScriptHashCredential(common.ScriptHash{Blake2b224: d.Hash}),
		).ShowsPrec(w, p)
	case DRepTypeAbstain:
		w.WriteString("DRepAlwaysAbstain")
	default:
		w.WriteString("DRepAlwaysNoConfidence")
	}
}

const (
	GovActionTypeParameterChange    = 0
	GovActionTypeHardForkInitiation = 1
	GovActionTypeTreasuryWithdrawal = 2
	GovActionTypeNoConfidence       = 3
	GovActionTypeUpdateCommittee    = 4
	GovActionTypeNewConstitution    = 5
	GovActionTypeInfo               = 6
)

type GovAction interface {
	haskell.Shower
	isGovAction()
}

// GovActionWrapper decodes any governance action
type GovActionWrapper struct {
	Type   uint
	Action GovAction
}

func (g *GovActionWrapper) UnmarshalCBOR(data []byte) error {
	// Determine action type
	actionType, err := cbor.DecodeIdFromList(data)
	if err != nil {
		return err
	}
	var tmpAction GovAction
	switch actionType {
	case GovActionTypeParameterChange:
		tmpAction = &ParameterChangeGovAction{}
	case GovActionTypeHardForkInitiation:
		tmpAction = &HardForkInitiationGovAction{}
	case GovActionTypeTreasuryWithdrawal:
		tmpAction = &TreasuryWithdrawalGovAction{}
	case GovActionTypeNoConfidence:
		tmpAction = &NoConfidenceGovAction{}
	case GovActionTypeUpdateCommittee:
		tmpAction = &UpdateCommitteeGovAction{}
	case GovActionTypeNewConstitution:
		tmpAction = &NewConstitutionGovAction{}
	case GovActionTypeInfo:
		tmpAction = &InfoGovAction{}
	default:
		return common.NewUnknownDiscriminantError("GovAction", actionType, data)
	}
	// Decode action
	if _, err := cbor.Decode(data, tmpAction); err != nil {
		return common.NewDecodeError("GovAction", data, err)
	}
	// action type is known within uint range
	g.Type = uint(actionType) // #nosec G115
	g.Action = tmpAction
	return nil
}

func (g GovActionWrapper) ShowsPrec(w *haskell.Writer, d int) {
	if g.Action == nil {
		haskell.Unimplemented("GovAction").ShowsPrec(w, d)
		return
	}
	g.Action.ShowsPrec(w, d)
}

type GovActionBase struct {
	cbor.StructAsArray
	Type uint
}

func (GovActionBase) isGovAction() {}

type ParameterChangeGovAction struct {
	GovActionBase
	ActionId    *common.GovPurposeId
	ParamUpdate PParamsUpdate
	PolicyHash  *common.ScriptHash
}

func (a ParameterChangeGovAction) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con(
		"ParameterChange",
		common.Maybe(a.ActionId),
		a.ParamUpdate,
		common.Maybe(a.PolicyHash),
	).ShowsPrec(w, d)
}

type HardForkInitiationGovAction struct {
	GovActionBase
	ActionId        *common.GovPurposeId
	ProtocolVersion common.ProtVer
}

func (a HardForkInitiationGovAction) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con(
		"HardForkInitiation",
		common.Maybe(a.ActionId),
		a.ProtocolVersion,
	).ShowsPrec(w, d)
}

type TreasuryWithdrawalGovAction struct {
	GovActionBase
	Withdrawals common.Map[common.RewardAccount, common.Coin]
	PolicyHash  *common.ScriptHash
}

func (a TreasuryWithdrawalGovAction) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con(
		"TreasuryWithdrawals",
		a.Withdrawals,
		common.Maybe(a.PolicyHash),
	).ShowsPrec(w, d)
}

type NoConfidenceGovAction struct {
	GovActionBase
	ActionId *common.GovPurposeId
}

func (a NoConfidenceGovAction) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("NoConfidence", common.Maybe(a.ActionId)).ShowsPrec(w, d)
}

type UpdateCommitteeGovAction struct {
	GovActionBase
	ActionId  *common.GovPurposeId
	Removed   common.Set[common.Credential]
	Added     common.Map[common.Credential, common.EpochNo]
	Threshold common.UnitInterval
}

func (a UpdateCommitteeGovAction) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con(
		"UpdateCommittee",
		common.Maybe(a.ActionId),
		a.Removed,
		a.Added,
		a.Threshold,
	).ShowsPrec(w, d)
}

type NewConstitutionGovAction struct {
	GovActionBase
	ActionId     *common.GovPurposeId
	Constitution Constitution
}

func (a NewConstitutionGovAction) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con(
		"NewConstitution",
		common.Maybe(a.ActionId),
		a.Constitution,
	).ShowsPrec(w, d)
}

type InfoGovAction struct {
	GovActionBase
}

func (InfoGovAction) ShowsPrec(w *haskell.Writer, _ int) {
	w.WriteString("InfoAction")
}

type Constitution struct {
	cbor.StructAsArray
	Anchor     common.Anchor
	ScriptHash *common.ScriptHash
}

func (c Constitution) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Record(
		"Constitution",
		haskell.F("constitutionAnchor", c.Anchor),
		haskell.F("constitutionScript", common.Maybe(c.ScriptHash)),
	).ShowsPrec(w, d)
}

type ProposalProcedure struct {
	cbor.StructAsArray
	Deposit    common.Coin
	ReturnAddr common.RewardAccount
	GovAction  GovActionWrapper
	Anchor     common.Anchor
}

func (p ProposalProcedure) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Record(
		"ProposalProcedure",
		haskell.F("pProcDeposit", p.Deposit),
		haskell.F("pProcReturnAddr", p.ReturnAddr),
		haskell.F("pProcGovAction", p.GovAction),
		haskell.F("pProcAnchor", p.Anchor),
	).ShowsPrec(w, d)
}

var pparamsUpdateNames = map[uint64]string{
	0:  "cppMinFeeA",
	1:  "cppMinFeeB",
	2:  "cppMaxBBSize",
	3:  "cppMaxTxSize",
	4:  "cppMaxBHSize",
	5:  "cppKeyDeposit",
	6:  "cppPoolDeposit",
	7:  "cppEMax",
	8:  "cppNOpt",
	9:  "cppA0",
	10: "cppRho",
	11: "cppTau",
	16: "cppMinPoolCost",
	17: "cppCoinsPerUTxOByte",
	18: "cppCostModels",
	19: "cppPrices",
	20: "cppMaxTxExUnits",
	21: "cppMaxBlockExUnits",
	22: "cppMaxValSize",
	23: "cppCollateralPercentage",
	24: "cppMaxCollateralInputs",
	25: "cppPoolVotingThresholds",
	26: "cppDRepVotingThresholds",
	27: "cppCommitteeMinSize",
	28: "cppCommitteeMaxTermLength",
	29: "cppGovActionLifetime",
	30: "cppGovActionDeposit",
	31: "cppDRepDeposit",
	32: "cppDRepActivity",
	33: "cppMinFeeRefScriptCostPerByte",
}

// PParamsUpdate keeps the keys of a protocol parameter update. The values
// are not decoded, and the update renders as a placeholder naming the
// parameters it changes
type PParamsUpdate struct {
	Keys []uint64
}

func (p *PParamsUpdate) UnmarshalCBOR(data []byte) error {
	pairs, err := cbor.DecodeMapPairs(data)
	if err != nil {
		return err
	}
	keys := make([]uint64, 0, len(pairs))
	for _, pair := range pairs {
		var key uint64
		if _, err := cbor.Decode(pair.Key, &key); err != nil {
			return err
		}
		keys = append(keys, key)
	}
	p.Keys = keys
	return nil
}

func (p PParamsUpdate) ShowsPrec(w *haskell.Writer, d int) {
	names := make([]string, 0, len(p.Keys))
	for _, key := range p.Keys {
		name, ok := pparamsUpdateNames[key]
		if !ok {
			name = fmt.Sprintf("unknown(%d)", key)
		}
		names = append(names, name)
	}
	haskell.Unimplemented(
		"PParamsUpdate [" + strings.Join(names, ",") + "]",
	).ShowsPrec(w, d)
}
