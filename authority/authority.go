// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package authority derives the non-human signing identities that own pool funds.
//
// An authority is a program derived address: it is computed from the program identity and a
// seed, it has no private key, and only the program that knows the seed can produce a
// Signer proving it. Signers are threaded explicitly through transfer calls.
package authority

import (
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/acct"
)

// Authority is a derived identity and the bump that places it off the ed25519 curve.
type Authority struct {
	ID   acct.ID
	Seed acct.ID
	Bump uint8
}

// IsDerived reports whether the identity lies off the ed25519 curve. Such an identity has no
// private key and can only act through a Signer.
func IsDerived(id acct.ID) bool {
	return !solana.PublicKey(id).IsOnCurve()
}

// Deriver derives authorities for one program identity.
type Deriver struct {
	programID acct.ID
}

// NewDeriver creates a deriver bound to the program identity.
func NewDeriver(programID acct.ID) *Deriver {
	return &Deriver{programID: programID}
}

// ProgramID returns the program identity the deriver is bound to.
func (d *Deriver) ProgramID() acct.ID {
	return d.programID
}

// Find searches the canonical bump for the seed and returns the derived authority.
func (d *Deriver) Find(seed acct.ID) (Authority, error) {
	key, bump, err := solana.FindProgramAddress([][]byte{seed.Bytes()}, solana.PublicKey(d.programID))
	if err != nil {
		return Authority{}, errors.Wrap(err, "find program address")
	}
	return Authority{ID: acct.ID(key), Seed: seed, Bump: bump}, nil
}

// Signer rebuilds the signer proof from a stored seed and bump.
func (d *Deriver) Signer(seed acct.ID, bump uint8) (*Signer, error) {
	seeds := [][]byte{append([]byte(nil), seed.Bytes()...), {bump}}
	key, err := solana.CreateProgramAddress(seeds, solana.PublicKey(d.programID))
	if err != nil {
		return nil, errors.Wrap(err, "create program address")
	}
	return &Signer{
		programID: d.programID,
		key:       acct.ID(key),
		seeds:     seeds,
	}, nil
}

// Signer is the capability to act as a derived authority. The zero value authorizes nothing.
type Signer struct {
	programID acct.ID
	key       acct.ID
	seeds     [][]byte
}

// ID returns the authority the signer acts for.
func (s *Signer) ID() acct.ID {
	if s == nil {
		return acct.ID{}
	}
	return s.key
}

// Authorizes reports whether the signer proves the given authority. The address is
// re-derived from the carried seeds rather than trusted from the struct.
func (s *Signer) Authorizes(authority acct.ID) bool {
	if s == nil || len(s.seeds) == 0 {
		return false
	}
	key, err := solana.CreateProgramAddress(s.seeds, solana.PublicKey(s.programID))
	if err != nil {
		return false
	}
	return acct.ID(key) == authority && s.key == authority
}
