// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import "github.com/pkg/errors"

var _ Store = (*Staged)(nil)

// Staged buffers writes on top of a source store. Reads see the buffered writes.
// Commit flushes everything to the source in one bulk, Discard drops it.
type Staged struct {
	src     Store
	pending map[string]*op
	order   []string
}

// NewStaged creates a staged overlay on src.
func NewStaged(src Store) *Staged {
	return &Staged{
		src:     src,
		pending: make(map[string]*op),
	}
}

func (s *Staged) Get(key []byte) ([]byte, error) {
	if o, ok := s.pending[string(key)]; ok {
		if o.del {
			return nil, ErrNotFound
		}
		return append([]byte(nil), o.val...), nil
	}
	return s.src.Get(key)
}

func (s *Staged) Has(key []byte) (bool, error) {
	if o, ok := s.pending[string(key)]; ok {
		return !o.del, nil
	}
	return s.src.Has(key)
}

func (s *Staged) IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || s.src.IsNotFound(err)
}

func (s *Staged) Put(key, val []byte) error {
	s.set(key, &op{key: append([]byte(nil), key...), val: append([]byte(nil), val...)})
	return nil
}

func (s *Staged) Delete(key []byte) error {
	s.set(key, &op{key: append([]byte(nil), key...), del: true})
	return nil
}

func (s *Staged) set(key []byte, o *op) {
	k := string(key)
	if _, ok := s.pending[k]; !ok {
		s.order = append(s.order, k)
	}
	s.pending[k] = o
}

// Len returns the number of buffered keys.
func (s *Staged) Len() int {
	return len(s.pending)
}

// Bulk returns a bulk writing into the overlay, not the source.
func (s *Staged) Bulk() Bulk {
	return &stagedBulk{staged: s}
}

// Iterate merges the buffered writes into the source range.
func (s *Staged) Iterate(r Range) Iterator {
	merged := make(map[string][]byte)
	iter := s.src.Iterate(r)
	for iter.Next() {
		merged[string(iter.Key())] = append([]byte(nil), iter.Value()...)
	}
	err := iter.Error()
	iter.Release()
	if err != nil {
		return &errIter{err: err}
	}

	for k, o := range s.pending {
		if !inRange(o.key, r) {
			continue
		}
		if o.del {
			delete(merged, k)
		} else {
			merged[k] = o.val
		}
	}

	pairs := make([]pair, 0, len(merged))
	for k, v := range merged {
		pairs = append(pairs, pair{[]byte(k), v})
	}
	sortPairs(pairs)
	return &sliceIter{pairs: pairs, pos: -1}
}

// Commit writes all buffered changes to the source atomically and resets the overlay.
func (s *Staged) Commit() error {
	if len(s.pending) == 0 {
		return nil
	}
	bulk := s.src.Bulk()
	for _, k := range s.order {
		o := s.pending[k]
		var err error
		if o.del {
			err = bulk.Delete(o.key)
		} else {
			err = bulk.Put(o.key, o.val)
		}
		if err != nil {
			return errors.Wrap(err, "stage commit")
		}
	}
	if err := bulk.Write(); err != nil {
		return errors.Wrap(err, "stage commit")
	}
	s.Discard()
	return nil
}

// Discard drops all buffered changes.
func (s *Staged) Discard() {
	s.pending = make(map[string]*op)
	s.order = nil
}

type stagedBulk struct {
	staged *Staged
	ops    []op
}

func (b *stagedBulk) Put(key, val []byte) error {
	b.ops = append(b.ops, op{key: append([]byte(nil), key...), val: append([]byte(nil), val...)})
	return nil
}

func (b *stagedBulk) Delete(key []byte) error {
	b.ops = append(b.ops, op{key: append([]byte(nil), key...), del: true})
	return nil
}

func (b *stagedBulk) Len() int { return len(b.ops) }

func (b *stagedBulk) Write() error {
	for i := range b.ops {
		o := b.ops[i]
		b.staged.set(o.key, &o)
	}
	b.ops = nil
	return nil
}

type errIter struct {
	err error
}

func (it *errIter) Next() bool    { return false }
func (it *errIter) Key() []byte   { return nil }
func (it *errIter) Value() []byte { return nil }
func (it *errIter) Release()      {}
func (it *errIter) Error() error  { return it.err }
