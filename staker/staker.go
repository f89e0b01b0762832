// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package staker is the staking engine. It validates pool and stake transitions, moves value
// through the asset ledger and commits the resulting records atomically.
package staker

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/vechain/stakepool/acct"
	"github.com/vechain/stakepool/assets"
	"github.com/vechain/stakepool/authority"
	"github.com/vechain/stakepool/cache"
	"github.com/vechain/stakepool/clock"
	"github.com/vechain/stakepool/kv"
	"github.com/vechain/stakepool/log"
	"github.com/vechain/stakepool/staker/pool"
	"github.com/vechain/stakepool/staker/reverts"
	"github.com/vechain/stakepool/staker/stake"
)

var logger = log.WithContext("pkg", "staker")

func SetLogger(l log.Logger) {
	logger = l
}

// Config is the engine configuration.
type Config struct {
	ProgramID acct.ID // identity the pool authorities are derived under
	// PoolCacheSize is the number of decoded pools kept in memory. Zero disables the cache.
	PoolCacheSize int
}

// Backend binds the asset collaborators of one operation to the store the operation runs on,
// so ledger writes commit together with the stake records.
type Backend func(db kv.Store) (assets.Ledger, assets.MetadataProvider)

// Staker implements the pool and stake transitions.
type Staker struct {
	db      kv.Store
	backend Backend
	clock   clock.Source
	deriver *authority.Deriver
	pools   *pool.Cache
	cfg     Config

	mu sync.RWMutex
}

// New create a new instance.
func New(cfg Config, db kv.Store, backend Backend, clk clock.Source) (*Staker, error) {
	s := &Staker{
		db:      db,
		backend: backend,
		clock:   clk,
		deriver: authority.NewDeriver(cfg.ProgramID),
		cfg:     cfg,
	}
	if cfg.PoolCacheSize > 0 {
		lru, err := cache.NewLRU[acct.ID, *pool.Pool](cfg.PoolCacheSize)
		if err != nil {
			return nil, errors.Wrap(err, "pool cache")
		}
		s.pools = lru
	}
	return s, nil
}

// ProgramID returns the configured program identity.
func (s *Staker) ProgramID() acct.ID {
	return s.cfg.ProgramID
}

//
// Getters - no state change
//

// Authority derives the pool id and bump for a seed.
func (s *Staker) Authority(seed acct.ID) (authority.Authority, error) {
	return s.deriver.Find(seed)
}

// Pool returns the pool stored under id.
func (s *Staker) Pool(id acct.ID) (*pool.Pool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.newSession(s.db).pool(id)
}

// Record returns the stake record stored under id.
func (s *Staker) Record(id acct.ID) (*stake.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.newSession(s.db).record(id)
}

// StakesOf lists the records of owner in a pool.
func (s *Staker) StakesOf(owner, poolID acct.ID) ([]stake.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.newSession(s.db).stakes.OwnedBy(owner, poolID)
}

// Claimable returns the reward a claim on the record would pay now.
func (s *Staker) Claimable(recordID acct.ID) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess := s.newSession(s.db)
	r, err := sess.record(recordID)
	if err != nil {
		return 0, err
	}
	p, err := sess.pool(r.Pool)
	if err != nil {
		return 0, err
	}
	amount, _, err := r.Claimable(p, s.clock.Now())
	return amount, err
}

// UnlockTime returns when the staked asset of the record may be unstaked.
func (s *Staker) UnlockTime(recordID acct.ID) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess := s.newSession(s.db)
	r, err := sess.record(recordID)
	if err != nil {
		return 0, err
	}
	p, err := sess.pool(r.Pool)
	if err != nil {
		return 0, err
	}
	return r.UnlockTime(p)
}

// session is the view one operation runs on.
type session struct {
	pools    *pool.Service
	stakes   *stake.Service
	ledger   assets.Ledger
	meta     assets.MetadataProvider
	onCommit []func()
}

func (s *Staker) newSession(db kv.Store) *session {
	ledger, meta := s.backend(db)
	return &session{
		pools:  pool.New(db, s.deriver, s.pools),
		stakes: stake.New(db, s.cfg.ProgramID),
		ledger: ledger,
		meta:   meta,
	}
}

func (sess *session) pool(id acct.ID) (*pool.Pool, error) {
	p, err := sess.pools.Get(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, reverts.Newf(reverts.NotFound, "pool %v not found", id)
	}
	return p, nil
}

func (sess *session) record(id acct.ID) (*stake.Record, error) {
	r, err := sess.stakes.Get(id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, reverts.Newf(reverts.NotFound, "stake %v not found", id)
	}
	return r, nil
}

// afterCommit defers fn until the operation is durable.
func (sess *session) afterCommit(fn func()) {
	sess.onCommit = append(sess.onCommit, fn)
}

// update runs fn on a staged view of the store and commits it only if fn succeeds.
func (s *Staker) update(op string, fn func(sess *session, now uint64) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := kv.NewStaged(s.db)
	sess := s.newSession(staged)
	if err := fn(sess, s.clock.Now()); err != nil {
		staged.Discard()
		observeFailure(op, err)
		return err
	}
	if err := staged.Commit(); err != nil {
		observeFailure(op, err)
		return errors.Wrap(err, "commit "+op)
	}
	for _, f := range sess.onCommit {
		f()
	}
	metricTransitions().AddWithLabel(1, map[string]string{"op": op, "result": "ok"})
	return nil
}

func observeFailure(op string, err error) {
	result := "error"
	if kind, ok := reverts.KindOf(err); ok {
		result = kind.String()
		logger.Info("transition rejected", "op", op, "kind", result, "err", err)
	} else {
		logger.Warn("transition failed", "op", op, "err", err)
	}
	metricTransitions().AddWithLabel(1, map[string]string{"op": op, "result": result})
}
