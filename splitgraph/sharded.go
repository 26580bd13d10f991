package splitgraph

import "github.com/pkg/errors"

// ShardedEngine is the parallel ingestion path: independent
// Engine shards that a caller feeds concurrently (one goroutine per
// shard), selecting a shard per k-mer by hash as DNA streams in, then
// merges into a single Engine before AddWeights.
type ShardedEngine struct {
	n, k, t int
	shards  []*Engine
}

// NewSharded builds numShards independent Engine shards, each configured
// identically for N inputs, k-mer length k, and split-list capacity t.
func NewSharded(n, k, t, numShards int) (*ShardedEngine, error) {
	if numShards <= 0 {
		return nil, errors.Errorf("splitgraph: numShards must be positive, got %d", numShards)
	}
	shards := make([]*Engine, numShards)
	for i := range shards {
		e, err := New(n, k, t)
		if err != nil {
			return nil, err
		}
		shards[i] = e
	}
	return &ShardedEngine{n: n, k: k, t: t, shards: shards}, nil
}

// Shard returns the i'th shard engine, for a caller to feed directly.
func (s *ShardedEngine) Shard(i int) *Engine { return s.shards[i] }

// NumShards returns the number of shards.
func (s *ShardedEngine) NumShards() int { return len(s.shards) }

// ShardFor picks the shard index a k-mer hash should be routed to, so
// independent goroutines can each own a disjoint slice of the key space
// while scanning their own input file.
func (s *ShardedEngine) ShardFor(hash uint64) int {
	return int(hash % uint64(len(s.shards)))
}

// Merge combines all shards into a single Engine, single-threaded, after
// every shard's ingestion goroutine has finished (the caller gates this
// with a sync.WaitGroup; Merge itself does no synchronisation). A color
// set entry for the same k-mer present in more than one shard is unioned,
// not overwritten -- required for the merged index to be bit-identical to
// the sequential one, since two shards may both have observed the
// same k-mer from different input files.
func (s *ShardedEngine) Merge() *Engine {
	out, _ := New(s.n, s.k, s.t)
	for _, shard := range s.shards {
		for k, entry := range shard.kmerTable {
			existing, ok := out.kmerTable[k]
			if !ok {
				existing = &kmerEntry{colors: entry.colors, weight: entry.weight}
				out.kmerTable[k] = existing
				continue
			}
			existing.colors = existing.colors.Union(entry.colors)
			existing.weight += entry.weight
		}
	}
	return out
}
