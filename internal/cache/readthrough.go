package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"
)

// DefaultOpTimeout bounds every individual store call made by ReadThrough.
const DefaultOpTimeout = 250 * time.Millisecond

// Codec serializes values at the cache boundary.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// JSONCodec stores values as UTF-8 JSON.
type JSONCodec struct{}

func (JSONCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (JSONCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Stats is a snapshot of ReadThrough counters.
type Stats struct {
	Hits          int64 `json:"hits"`
	Misses        int64 `json:"misses"`
	Computes      int64 `json:"computes"`
	StoreErrors   int64 `json:"store_errors"`
	EncodeErrors  int64 `json:"encode_errors"`
	DecodeErrors  int64 `json:"decode_errors"`
	ComputeErrors int64 `json:"compute_errors"`
}

// ReadThrough returns cached values when present and computes, stores and
// returns them otherwise. Store failures never reach the caller: reads fall
// through to compute and failed writes only cost a future recompute.
//
// Concurrent misses on one key are not coalesced; every racing caller runs
// compute and the last write wins. Only use it with idempotent computations.
type ReadThrough struct {
	store     Store
	codec     Codec
	opTimeout time.Duration

	hits          atomic.Int64
	misses        atomic.Int64
	computes      atomic.Int64
	storeErrors   atomic.Int64
	encodeErrors  atomic.Int64
	decodeErrors  atomic.Int64
	computeErrors atomic.Int64
}

// Option configures a ReadThrough.
type Option func(*ReadThrough)

// WithOpTimeout sets the deadline applied to each store call.
func WithOpTimeout(d time.Duration) Option {
	return func(rt *ReadThrough) {
		if d > 0 {
			rt.opTimeout = d
		}
	}
}

// WithCodec replaces the JSON codec.
func WithCodec(c Codec) Option {
	return func(rt *ReadThrough) {
		if c != nil {
			rt.codec = c
		}
	}
}

// NewReadThrough creates a read-through cache over store.
func NewReadThrough(store Store, opts ...Option) *ReadThrough {
	rt := &ReadThrough{
		store:     store,
		codec:     JSONCodec{},
		opTimeout: DefaultOpTimeout,
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Stats returns the current counters.
func (rt *ReadThrough) Stats() Stats {
	return Stats{
		Hits:          rt.hits.Load(),
		Misses:        rt.misses.Load(),
		Computes:      rt.computes.Load(),
		StoreErrors:   rt.storeErrors.Load(),
		EncodeErrors:  rt.encodeErrors.Load(),
		DecodeErrors:  rt.decodeErrors.Load(),
		ComputeErrors: rt.computeErrors.Load(),
	}
}

// Store returns the underlying store.
func (rt *ReadThrough) Store() Store {
	return rt.store
}

// GetOrCompute returns the value cached under key, or runs compute and caches its
// result for ttl. An error from compute is returned as is and nothing is stored.
func GetOrCompute[T any](ctx context.Context, rt *ReadThrough, key string, ttl time.Duration, compute func(ctx context.Context) (T, error)) (T, error) {
	if cached, ok := rt.lookup(ctx, key); ok {
		var value T
		err := rt.codec.Unmarshal(cached, &value)
		if err == nil {
			rt.hits.Add(1)
			return value, nil
		}
		rt.decodeErrors.Add(1)
		log.Printf("[ReadThrough] Discarding undecodable entry %s: %v", key, err)
	}
	rt.misses.Add(1)

	rt.computes.Add(1)
	value, err := compute(ctx)
	if err != nil {
		rt.computeErrors.Add(1)
		return value, err
	}

	rt.persist(ctx, key, ttl, value)
	return value, nil
}

// GetOrComputeKeyed derives the key from namespace and params with BuildKey.
func GetOrComputeKeyed[T any](ctx context.Context, rt *ReadThrough, namespace string, params Params, ttl time.Duration, compute func(ctx context.Context) (T, error)) (T, error) {
	return GetOrCompute(ctx, rt, BuildKey(namespace, params), ttl, compute)
}

// lookup reads key from the store. Any failure is reported as a miss.
func (rt *ReadThrough) lookup(ctx context.Context, key string) ([]byte, bool) {
	opCtx, cancel := context.WithTimeout(ctx, rt.opTimeout)
	defer cancel()

	data, err := rt.store.Get(opCtx, key)
	if err == nil {
		return data, true
	}
	if !errors.Is(err, ErrCacheMiss) {
		rt.storeErrors.Add(1)
		log.Printf("[ReadThrough] Get %s failed, computing directly: %v", key, err)
	}
	return nil, false
}

// persist writes value under key. Failures are logged and swallowed.
// The write is detached from the caller's cancellation so a finished
// computation still populates the cache for later callers.
func (rt *ReadThrough) persist(ctx context.Context, key string, ttl time.Duration, value any) {
	data, err := rt.codec.Marshal(value)
	if err != nil {
		rt.encodeErrors.Add(1)
		log.Printf("[ReadThrough] %v", fmt.Errorf("%w: %s: %w", ErrSerialization, key, err))
		return
	}

	opCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), rt.opTimeout)
	defer cancel()

	if err := rt.store.SetWithTTL(opCtx, key, data, ttl); err != nil {
		rt.storeErrors.Add(1)
		log.Printf("[ReadThrough] Set %s failed, value returned uncached: %v", key, err)
	}
}
