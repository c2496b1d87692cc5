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

package txsubmit

import (
	"fmt"

	"github.com/blinklabs-io/txreject/cbor"
	"github.com/blinklabs-io/txreject/ledger/common"
)

// TxId returns the hex id of a transaction, the blake2b-256 hash of its
// body as it appears on the wire
func TxId(txCbor []byte) (string, error) {
	var items []cbor.RawMessage
	n, err := cbor.Decode(txCbor, &items)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidTransaction, err)
	}
	if n != len(txCbor) {
		return "", fmt.Errorf(
			"%w: %d trailing bytes after transaction",
			ErrInvalidTransaction,
			len(txCbor)-n,
		)
	}
	if len(items) == 0 {
		return "", fmt.Errorf("%w: transaction has no body", ErrInvalidTransaction)
	}
	return common.Blake2b256Hash(items[0]).String(), nil
}
