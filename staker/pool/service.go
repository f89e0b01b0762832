// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/acct"
	"github.com/vechain/stakepool/authority"
	"github.com/vechain/stakepool/cache"
	"github.com/vechain/stakepool/kv"
	"github.com/vechain/stakepool/staker/reverts"
	"github.com/vechain/stakepool/store"
)

const poolsBucket = kv.Bucket("sp")

// Cache holds decoded pools by id. Pools are immutable once committed.
type Cache = cache.LRU[acct.ID, *Pool]

// Service is the pool registry.
type Service struct {
	pools   *store.Mapping[acct.ID, *Pool]
	deriver *authority.Deriver
	cache   *Cache
}

// New creates the registry. The cache may be nil.
func New(db kv.Store, deriver *authority.Deriver, lru *Cache) *Service {
	return &Service{
		pools:   store.NewMapping[acct.ID, *Pool](db, poolsBucket),
		deriver: deriver,
		cache:   lru,
	}
}

// Authority derives the pool id for a seed.
func (s *Service) Authority(seed acct.ID) (authority.Authority, error) {
	return s.deriver.Find(seed)
}

// Get returns the pool, or nil if it does not exist.
func (s *Service) Get(id acct.ID) (*Pool, error) {
	load := func(id acct.ID) (*Pool, error) {
		p, err := s.pools.Get(id)
		if err != nil {
			return nil, errors.Wrap(err, "failed to get pool")
		}
		return p, nil
	}
	if s.cache == nil {
		return load(id)
	}
	return s.cache.GetOrLoad(id, load, func(p *Pool) bool { return p != nil })
}

// Add stores a validated pool under its authority.
func (s *Service) Add(auth authority.Authority, params *Params) (*Pool, error) {
	p := &Pool{
		Owner:           params.Owner,
		Seed:            params.Seed,
		RewardMint:      params.RewardMint,
		RewardAccount:   params.RewardAccount,
		RewardAmount:    params.RewardAmount,
		Period:          params.Period,
		Withdrawable:    params.Withdrawable,
		StakeCollection: params.StakeCollection,
		Bump:            auth.Bump,
	}
	if err := s.pools.Insert(auth.ID, p); err != nil {
		if errors.Is(err, store.ErrKeyExists) {
			return nil, reverts.Newf(reverts.PoolExists, "pool %v already initialised", auth.ID)
		}
		return nil, errors.Wrap(err, "failed to set pool")
	}
	return p, nil
}

// Exists reports whether a pool is stored under id.
func (s *Service) Exists(id acct.ID) (bool, error) {
	has, err := s.pools.Has(id)
	if err != nil {
		return false, errors.Wrap(err, "failed to check pool")
	}
	return has, nil
}

// Signer rebuilds the signer proof of the pool authority.
func (s *Service) Signer(p *Pool) (*authority.Signer, error) {
	return s.deriver.Signer(p.Seed, p.Bump)
}
