// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tokenledger

import (
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/stakepool/acct"
	"github.com/vechain/stakepool/assets"
)

// Fixture is the yaml layout of an initial ledger state.
type Fixture struct {
	Mints    []MintEntry    `yaml:"mints"`
	Accounts []AccountEntry `yaml:"accounts"`
}

type MintEntry struct {
	ID       acct.ID `yaml:"id"`
	Decimals uint8   `yaml:"decimals"`
	Supply   uint64  `yaml:"supply"`
	// Symbol, when set, is stored as the collection metadata of the mint.
	Symbol string `yaml:"symbol,omitempty"`
}

type AccountEntry struct {
	ID     acct.ID `yaml:"id"`
	Owner  acct.ID `yaml:"owner"`
	Mint   acct.ID `yaml:"mint"`
	Amount uint64  `yaml:"amount"`
}

// Len returns the number of entries the fixture creates.
func (f *Fixture) Len() int {
	return len(f.Mints) + len(f.Accounts)
}

// DecodeFixture reads a yaml fixture.
func DecodeFixture(r io.Reader) (*Fixture, error) {
	var f Fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, errors.Wrap(err, "decode fixture")
	}
	return &f, nil
}

// Apply writes the fixture into the ledger, mints first. progress is called after each entry.
func (l *Ledger) Apply(f *Fixture, progress func()) error {
	if progress == nil {
		progress = func() {}
	}
	for _, m := range f.Mints {
		if err := l.CreateMint(m.ID, &assets.Mint{Decimals: m.Decimals, Supply: m.Supply}); err != nil {
			return errors.Wrapf(err, "mint %v", m.ID)
		}
		if m.Symbol != "" {
			if err := l.SetMetadata(m.ID, &assets.Metadata{Mint: m.ID, Symbol: m.Symbol}); err != nil {
				return errors.Wrapf(err, "mint %v", m.ID)
			}
		}
		progress()
	}
	for _, a := range f.Accounts {
		if err := l.CreateAccount(a.ID, &assets.Account{Owner: a.Owner, Mint: a.Mint, Amount: a.Amount}); err != nil {
			return errors.Wrapf(err, "account %v", a.ID)
		}
		progress()
	}
	return nil
}
