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
	"github.com/blinklabs-io/txreject/cbor"
	"github.com/blinklabs-io/txreject/haskell"
	"github.com/blinklabs-io/txreject/ledger/common"
)

const govPredFailureContext = "ConwayGovPredFailure"

const (
	GovFailureGovActionsDoNotExist                       = 0
	GovFailureMalformedProposal                          = 1
	GovFailureProposalProcedureNetworkIdMismatch         = 2
	GovFailureTreasuryWithdrawalsNetworkIdMismatch       = 3
	GovFailureProposalDepositIncorrect                   = 4
	GovFailureDisallowedVoters                           = 5
	GovFailureConflictingCommitteeUpdate                 = 6
	GovFailureExpirationEpochTooSmall                    = 7
	GovFailureInvalidPrevGovActionId                     = 8
	GovFailureVotingOnExpiredGovAction                   = 9
	GovFailureProposalCantFollow                         = 10
	GovFailureInvalidPolicyHash                          = 11
	GovFailureDisallowedProposalDuringBootstrap          = 12
	GovFailureDisallowedVotesDuringBootstrap             = 13
	GovFailureVotersDoNotExist                           = 14
	GovFailureZeroTreasuryWithdrawals                    = 15
	GovFailureProposalReturnAccountDoesNotExist          = 16
	GovFailureTreasuryWithdrawalReturnAccountsDoNotExist = 17
	GovFailureUnelectedCommitteeVoters                   = 18
)

// GovPredFailure is a failure of the GOV rule, which checks proposals and
// votes
type GovPredFailure interface {
	haskell.Shower
	isGovPredFailure()
}

func NewGovPredFailureFromCbor(data []byte) (GovPredFailure, error) {
	id, err := cbor.DecodeIdFromList(data)
	if err != nil {
		return nil, common.NewDecodeError(govPredFailureContext, data, err)
	}
	var ret GovPredFailure
	switch id {
	case GovFailureGovActionsDoNotExist:
		ret = &GovActionsDoNotExist{}
	case GovFailureMalformedProposal:
		ret = &MalformedProposal{}
	case GovFailureProposalProcedureNetworkIdMismatch:
		ret = &ProposalProcedureNetworkIdMismatch{}
	case GovFailureTreasuryWithdrawalsNetworkIdMismatch:
		ret = &TreasuryWithdrawalsNetworkIdMismatch{}
	case GovFailureProposalDepositIncorrect:
		ret = &ProposalDepositIncorrect{}
	case GovFailureDisallowedVoters:
		ret = &DisallowedVoters{}
	case GovFailureConflictingCommitteeUpdate:
		ret = &ConflictingCommitteeUpdate{}
	case GovFailureExpirationEpochTooSmall:
		ret = &ExpirationEpochTooSmall{}
	case GovFailureInvalidPrevGovActionId:
		ret = &InvalidPrevGovActionId{}
	case GovFailureVotingOnExpiredGovAction:
		ret = &VotingOnExpiredGovAction{}
	case GovFailureProposalCantFollow:
		ret = &ProposalCantFollow{}
	case GovFailureInvalidPolicyHash:
		ret = &InvalidPolicyHash{}
	case GovFailureDisallowedProposalDuringBootstrap:
		ret = &DisallowedProposalDuringBootstrap{}
	case GovFailureDisallowedVotesDuringBootstrap:
		ret = &DisallowedVotesDuringBootstrap{}
	case GovFailureVotersDoNotExist:
		ret = &VotersDoNotExist{}
	case GovFailureZeroTreasuryWithdrawals:
		ret = &ZeroTreasuryWithdrawals{}
	case GovFailureProposalReturnAccountDoesNotExist:
		ret = &ProposalReturnAccountDoesNotExist{}
	case GovFailureTreasuryWithdrawalReturnAccountsDoNotExist:
		ret = &TreasuryWithdrawalReturnAccountsDoNotExist{}
	case GovFailureUnelectedCommitteeVoters:
		ret = &UnelectedCommitteeVoters{}
	default:
		return nil, common.NewUnknownDiscriminantError(govPredFailureContext, id, data)
	}
	if _, err := cbor.Decode(data, ret); err != nil {
		return nil, common.NewDecodeError(govPredFailureContext, data, err)
	}
	return ret, nil
}

type GovPredFailureWrapper struct {
	Failure GovPredFailure
}

func (w *GovPredFailureWrapper) UnmarshalCBOR(data []byte) error {
	failure, err := NewGovPredFailureFromCbor(data)
	if err != nil {
		return err
	}
	w.Failure = failure
	return nil
}

func (w GovPredFailureWrapper) ShowsPrec(out *haskell.Writer, d int) {
	showFailure(out, d, w.Failure)
}

type GovPredFailureBase struct {
	cbor.StructAsArray
	Type uint16
}

func (GovPredFailureBase) isGovPredFailure() {}

// VoteTarget is a voter together with the action it voted on
type VoteTarget = common.Pair[Voter, common.GovActionId]

type GovActionsDoNotExist struct {
	GovPredFailureBase
	ActionIds common.NonEmpty[common.GovActionId]
}

func (f GovActionsDoNotExist) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("GovActionsDoNotExist", f.ActionIds).ShowsPrec(w, d)
}

type MalformedProposal struct {
	GovPredFailureBase
	Action GovActionWrapper
}

func (f MalformedProposal) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("MalformedProposal", f.Action).ShowsPrec(w, d)
}

type ProposalProcedureNetworkIdMismatch struct {
	GovPredFailureBase
	Account  common.RewardAccount
	Expected common.Network
}

func (f ProposalProcedureNetworkIdMismatch) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("ProposalProcedureNetworkIdMismatch", f.Account, f.Expected).ShowsPrec(w, d)
}

type TreasuryWithdrawalsNetworkIdMismatch struct {
	GovPredFailureBase
	Accounts common.Set[common.RewardAccount]
	Expected common.Network
}

func (f TreasuryWithdrawalsNetworkIdMismatch) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("TreasuryWithdrawalsNetworkIdMismatch", f.Accounts, f.Expected).ShowsPrec(w, d)
}

type ProposalDepositIncorrect struct {
	GovPredFailureBase
	Supplied common.Coin
	Expected common.Coin
}

func (f ProposalDepositIncorrect) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("ProposalDepositIncorrect", f.Supplied, f.Expected).ShowsPrec(w, d)
}

type DisallowedVoters struct {
	GovPredFailureBase
	Votes common.NonEmpty[VoteTarget]
}

func (f DisallowedVoters) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("DisallowedVoters", f.Votes).ShowsPrec(w, d)
}

type ConflictingCommitteeUpdate struct {
	GovPredFailureBase
	Credentials common.Set[common.Credential]
}

func (f ConflictingCommitteeUpdate) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("ConflictingCommitteeUpdate", f.Credentials).ShowsPrec(w, d)
}

type ExpirationEpochTooSmall struct {
	GovPredFailureBase
	Members common.Map[common.Credential, common.EpochNo]
}

func (f ExpirationEpochTooSmall) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("ExpirationEpochTooSmall", f.Members).ShowsPrec(w, d)
}

type InvalidPrevGovActionId struct {
	GovPredFailureBase
	Proposal ProposalProcedure
}

func (f InvalidPrevGovActionId) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("InvalidPrevGovActionId", f.Proposal).ShowsPrec(w, d)
}

type VotingOnExpiredGovAction struct {
	GovPredFailureBase
	Votes common.NonEmpty[VoteTarget]
}

func (f VotingOnExpiredGovAction) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("VotingOnExpiredGovAction", f.Votes).ShowsPrec(w, d)
}

type ProposalCantFollow struct {
	GovPredFailureBase
	PrevActionId common.StrictMaybe[common.GovPurposeId]
	Supplied     common.ProtVer
	Previous     common.ProtVer
}

func (f ProposalCantFollow) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("ProposalCantFollow", f.PrevActionId, f.Supplied, f.Previous).ShowsPrec(w, d)
}

type InvalidPolicyHash struct {
	GovPredFailureBase
	Supplied common.StrictMaybe[common.ScriptHash]
	Expected common.StrictMaybe[common.ScriptHash]
}

func (f InvalidPolicyHash) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("InvalidPolicyHash", f.Supplied, f.Expected).ShowsPrec(w, d)
}

type DisallowedProposalDuringBootstrap struct {
	GovPredFailureBase
	Proposal ProposalProcedure
}

func (f DisallowedProposalDuringBootstrap) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("DisallowedProposalDuringBootstrap", f.Proposal).ShowsPrec(w, d)
}

type DisallowedVotesDuringBootstrap struct {
	GovPredFailureBase
	Votes common.NonEmpty[VoteTarget]
}

func (f DisallowedVotesDuringBootstrap) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("DisallowedVotesDuringBootstrap", f.Votes).ShowsPrec(w, d)
}

type VotersDoNotExist struct {
	GovPredFailureBase
	Voters common.NonEmpty[Voter]
}

func (f VotersDoNotExist) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("VotersDoNotExist", f.Voters).ShowsPrec(w, d)
}

type ZeroTreasuryWithdrawals struct {
	GovPredFailureBase
	Action GovActionWrapper
}

func (f ZeroTreasuryWithdrawals) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("ZeroTreasuryWithdrawals", f.Action).ShowsPrec(w, d)
}

type ProposalReturnAccountDoesNotExist struct {
	GovPredFailureBase
	Account common.RewardAccount
}

func (f ProposalReturnAccountDoesNotExist) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("ProposalReturnAccountDoesNotExist", f.Account).ShowsPrec(w, d)
}

type TreasuryWithdrawalReturnAccountsDoNotExist struct {
	GovPredFailureBase
	Accounts common.NonEmpty[common.RewardAccount]
}

func (f TreasuryWithdrawalReturnAccountsDoNotExist) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("TreasuryWithdrawalReturnAccountsDoNotExist", f.Accounts).ShowsPrec(w, d)
}

type UnelectedCommitteeVoters struct {
	GovPredFailureBase
	Credentials common.NonEmpty[common.Credential]
}

func (f UnelectedCommitteeVoters) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("UnelectedCommitteeVoters", f.Credentials).ShowsPrec(w, d)
}
