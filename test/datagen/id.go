// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	"crypto/ed25519"
	"crypto/rand"

	"github.com/gagliardetto/solana-go"

	"github.com/vechain/stakepool/acct"
)

func RandomID() (id acct.ID) {
	rand.Read(id[:])
	return
}

func RandomIDs(n int) []acct.ID {
	ids := make([]acct.ID, n)
	for i := range ids {
		ids[i] = RandomID()
	}
	return ids
}

// UserID returns the public key of a keypair seeded by name. It always lies on the curve,
// so the ledger treats it as a signing user rather than a derived authority.
func UserID(name string) acct.ID {
	seed := acct.Blake2b([]byte(name))
	key := solana.PrivateKey(ed25519.NewKeyFromSeed(seed[:]))
	return acct.ID(key.PublicKey())
}
