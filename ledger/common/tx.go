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

package common

import (
	"fmt"

	"github.com/blinklabs-io/txreject/cbor"
	"github.com/blinklabs-io/txreject/haskell"
)

// TxIn references a transaction output
type TxIn struct {
	cbor.StructAsArray
	TxId  TxId
	Index TxIx
}

func (t TxIn) String() string {
	return fmt.Sprintf("%s#%d", t.TxId.String(), t.Index)
}

func (t TxIn) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("TxIn", t.TxId, t.Index).ShowsPrec(w, d)
}

// GovActionId references a governance action by the transaction that
// proposed it
type GovActionId struct {
	cbor.StructAsArray
	TxId  TxId
	Index uint16
}

func (g GovActionId) String() string {
	return fmt.Sprintf("%s#%d", g.TxId.String(), g.Index)
}

func (g GovActionId) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Record(
		"GovActionId",
		haskell.F("gaidTxId", g.TxId),
		haskell.F(
			"gaidGovActionIx",
			haskell.Record("GovActionIx", haskell.F("unGovActionIx", haskell.Uint(g.Index))),
		),
	).ShowsPrec(w, d)
}

// GovPurposeId is a GovActionId used as the previous action of a proposal
type GovPurposeId struct {
	GovActionId
}

func (g *GovPurposeId) UnmarshalCBOR(data []byte) error {
	_, err := cbor.Decode(data, &g.GovActionId)
	return err
}

func (g GovPurposeId) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Record(
		"GovPurposeId",
		haskell.F("unGovPurposeId", g.GovActionId),
	).ShowsPrec(w, d)
}
