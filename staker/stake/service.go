// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stake

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"

	"github.com/vechain/stakepool/acct"
	"github.com/vechain/stakepool/kv"
	"github.com/vechain/stakepool/store"
)

const (
	recordsBucket = kv.Bucket("sr")
	ownersBucket  = kv.Bucket("so")
)

var counterKey = []byte("sc")

// ownerKey indexes records by owner then pool.
type ownerKey [96]byte

func newOwnerKey(owner, pool, id acct.ID) (k ownerKey) {
	copy(k[:], owner[:])
	copy(k[32:], pool[:])
	copy(k[64:], id[:])
	return
}

func (k ownerKey) Bytes() []byte { return k[:] }

// Entry is a record with its id.
type Entry struct {
	ID acct.ID
	*Record
}

// Service is the stake ledger.
type Service struct {
	programID acct.ID
	records   *store.Mapping[acct.ID, *Record]
	owners    *store.Mapping[ownerKey, acct.ID]
	idCounter *store.Raw[uint64]
}

func New(db kv.Store, programID acct.ID) *Service {
	return &Service{
		programID: programID,
		records:   store.NewMapping[acct.ID, *Record](db, recordsBucket),
		owners:    store.NewMapping[ownerKey, acct.ID](db, ownersBucket),
		idCounter: store.NewRaw[uint64](db, counterKey),
	}
}

// Get returns the record, or nil if it does not exist.
func (s *Service) Get(id acct.ID) (*Record, error) {
	r, err := s.records.Get(id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get stake")
	}
	return r, nil
}

// Add stores a new record and indexes it under its owner.
func (s *Service) Add(r *Record) (acct.ID, error) {
	id, err := s.newRecordID()
	if err != nil {
		return acct.ID{}, err
	}
	if err := s.records.Insert(id, r); err != nil {
		return acct.ID{}, errors.Wrap(err, "failed to set stake")
	}
	if err := s.owners.Upsert(newOwnerKey(r.Owner, r.Pool, id), id); err != nil {
		return acct.ID{}, errors.Wrap(err, "failed to index stake")
	}
	return id, nil
}

func (s *Service) Update(id acct.ID, r *Record) error {
	return errors.Wrap(s.records.Update(id, r), "failed to update stake")
}

// OwnedBy lists the records of owner in pool, in id order.
func (s *Service) OwnedBy(owner, pool acct.ID) ([]Entry, error) {
	prefix := append(append([]byte(nil), owner[:]...), pool[:]...)
	var entries []Entry
	err := s.owners.Iterate(prefix, func(_ []byte, id acct.ID) (bool, error) {
		r, err := s.Get(id)
		if err != nil {
			return false, err
		}
		if r == nil {
			return false, errors.Errorf("dangling index entry %v", id)
		}
		entries = append(entries, Entry{ID: id, Record: r})
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Service) newRecordID() (acct.ID, error) {
	// update the global record counter
	n, err := s.idCounter.Get()
	if err != nil {
		return acct.ID{}, err
	}
	if n == math.MaxUint64 {
		return acct.ID{}, errors.New("stake ID counter overflow")
	}
	n++
	if err := s.idCounter.Upsert(n); err != nil {
		return acct.ID{}, err
	}
	var seq [8]byte
	binary.BigEndian.PutUint64(seq[:], n)
	return acct.Blake2b([]byte("stake"), s.programID[:], seq[:]), nil
}
