// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package tokenledger is a kv backed token ledger holding mints, token accounts and collection metadata.
package tokenledger

import (
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/acct"
	"github.com/vechain/stakepool/assets"
	"github.com/vechain/stakepool/authority"
	"github.com/vechain/stakepool/kv"
	"github.com/vechain/stakepool/log"
	"github.com/vechain/stakepool/metrics"
	"github.com/vechain/stakepool/store"
)

const (
	accountsBucket = kv.Bucket("ta")
	mintsBucket    = kv.Bucket("tm")
	metadataBucket = kv.Bucket("td")
)

var (
	logger          = log.WithContext("pkg", "tokenledger")
	metricTransfers = metrics.LazyLoadCounterVec("ledger_transfers_count", []string{"result"})

	ErrMintMismatch      = errors.New("mint mismatch")
	ErrUnauthorized      = errors.New("authority does not own the source account")
	ErrMissingSigner     = errors.New("signer does not prove the authority")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrOverflow          = errors.New("balance overflow")
	ErrSymbolTooLong     = errors.New("symbol too long")
)

var (
	_ assets.Ledger           = (*Ledger)(nil)
	_ assets.MetadataProvider = (*Ledger)(nil)
)

// Ledger implements assets.Ledger and assets.MetadataProvider over a kv store.
type Ledger struct {
	accounts *store.Mapping[acct.ID, *assets.Account]
	mints    *store.Mapping[acct.ID, *assets.Mint]
	metadata *store.Mapping[acct.ID, *assets.Metadata]
}

func New(db kv.Store) *Ledger {
	return &Ledger{
		accounts: store.NewMapping[acct.ID, *assets.Account](db, accountsBucket),
		mints:    store.NewMapping[acct.ID, *assets.Mint](db, mintsBucket),
		metadata: store.NewMapping[acct.ID, *assets.Metadata](db, metadataBucket),
	}
}

func (l *Ledger) Account(id acct.ID) (*assets.Account, error) {
	account, err := l.accounts.Get(id)
	if err != nil {
		return nil, errors.Wrap(err, "get account")
	}
	if account == nil {
		return nil, assets.ErrAccountNotFound
	}
	return account, nil
}

func (l *Ledger) Mint(id acct.ID) (*assets.Mint, error) {
	mint, err := l.mints.Get(id)
	if err != nil {
		return nil, errors.Wrap(err, "get mint")
	}
	if mint == nil {
		return nil, assets.ErrMintNotFound
	}
	return mint, nil
}

func (l *Ledger) MetadataOf(mint acct.ID) (*assets.Metadata, error) {
	md, err := l.metadata.Get(mint)
	if err != nil {
		return nil, errors.Wrap(err, "get metadata")
	}
	if md == nil {
		return nil, assets.ErrMetadataNotFound
	}
	return md, nil
}

// CreateMint registers a new mint.
func (l *Ledger) CreateMint(id acct.ID, mint *assets.Mint) error {
	return errors.Wrap(l.mints.Insert(id, mint), "create mint")
}

// CreateAccount opens a token account for an existing mint.
func (l *Ledger) CreateAccount(id acct.ID, account *assets.Account) error {
	if _, err := l.Mint(account.Mint); err != nil {
		return err
	}
	return errors.Wrap(l.accounts.Insert(id, account), "create account")
}

// SetMetadata attaches collection metadata to a mint.
func (l *Ledger) SetMetadata(mint acct.ID, md *assets.Metadata) error {
	if len(md.TrimmedSymbol()) > assets.MaxSymbolLength {
		return ErrSymbolTooLong
	}
	return errors.Wrap(l.metadata.Upsert(mint, md), "set metadata")
}

// Transfer moves amount between two accounts of the same mint. User authorities are assumed
// to have signed; a derived authority has to be proven by the signer.
func (l *Ledger) Transfer(src, dst, owner acct.ID, amount uint64, signer *authority.Signer) (err error) {
	defer func() {
		result := "ok"
		if err != nil {
			result = "failed"
			logger.Debug("transfer rejected", "src", src, "dst", dst, "amount", amount, "err", err)
		}
		metricTransfers().AddWithLabel(1, map[string]string{"result": result})
	}()

	from, err := l.Account(src)
	if err != nil {
		return err
	}
	to, err := l.Account(dst)
	if err != nil {
		return err
	}
	if from.Mint != to.Mint {
		return ErrMintMismatch
	}
	if from.Owner != owner {
		return ErrUnauthorized
	}
	if (signer != nil || authority.IsDerived(owner)) && !signer.Authorizes(owner) {
		return ErrMissingSigner
	}
	if from.Amount < amount {
		return ErrInsufficientFunds
	}
	if src == dst {
		return nil
	}
	if to.Amount+amount < to.Amount {
		return ErrOverflow
	}

	from.Amount -= amount
	to.Amount += amount
	if err := l.accounts.Update(src, from); err != nil {
		return errors.Wrap(err, "update source")
	}
	if err := l.accounts.Update(dst, to); err != nil {
		return errors.Wrap(err, "update destination")
	}
	return nil
}
