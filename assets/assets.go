// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package assets defines the asset ledger and metadata collaborators the staking engine moves value through.
package assets

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/vechain/stakepool/acct"
	"github.com/vechain/stakepool/authority"
)

// MaxSymbolLength bounds a collection symbol in asset metadata.
const MaxSymbolLength = 10

var (
	ErrAccountNotFound  = errors.New("account not found")
	ErrMintNotFound     = errors.New("mint not found")
	ErrMetadataNotFound = errors.New("metadata not found")
)

// Account is a token account: a balance of one mint held for an owner.
type Account struct {
	Owner  acct.ID
	Mint   acct.ID
	Amount uint64
}

// Mint describes an asset type.
type Mint struct {
	Decimals uint8
	Supply   uint64
}

// IsUnique reports whether the mint is a single indivisible unit.
func (m *Mint) IsUnique() bool {
	return m.Decimals == 0 && m.Supply == 1
}

// Metadata binds a mint to the symbol of the collection it belongs to.
type Metadata struct {
	Mint   acct.ID
	Symbol string
}

// TrimmedSymbol drops the NUL padding of fixed-width symbols.
func (m *Metadata) TrimmedSymbol() string {
	return string(bytes.TrimRight([]byte(m.Symbol), "\x00"))
}

// Ledger holds token accounts and moves balances between them.
type Ledger interface {
	// Account returns ErrAccountNotFound if the account does not exist.
	Account(id acct.ID) (*Account, error)
	// Mint returns ErrMintNotFound if the mint does not exist.
	Mint(id acct.ID) (*Mint, error)
	// Transfer moves amount from src to dst. The authority must own src. A derived authority
	// must be accompanied by its signer.
	Transfer(src, dst, authority acct.ID, amount uint64, signer *authority.Signer) error
}

// MetadataProvider resolves the metadata of a mint.
type MetadataProvider interface {
	// MetadataOf returns ErrMetadataNotFound if the mint carries no metadata.
	MetadataOf(mint acct.ID) (*Metadata, error)
}
