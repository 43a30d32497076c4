package pricing

import (
	"context"
	"errors"
	"time"

	"github.com/brunonatanaelsr/assist-move-assist-sub004/internal/cache"
)

const (
	// Namespace prefixes every cached estimate key.
	Namespace = "move:cost"

	// CacheTTL is how long an estimate stays cached.
	CacheTTL = time.Hour
)

// Service answers estimates through the read-through cache, keyed on the request itself.
type Service struct {
	cache *cache.ReadThrough
}

// NewService creates a pricing service.
func NewService(rt *cache.ReadThrough) *Service {
	return &Service{cache: rt}
}

// Params flattens r into the scalar bag its cache key is built from.
func (r Request) Params() cache.Params {
	return cache.Params{
		"volume":          r.Volume,
		"distance":        r.Distance,
		"hasFragileItems": r.HasFragileItems,
		"isWeekend":       r.IsWeekend,
		"additionalStops": r.AdditionalStops,
		"floorNumber":     r.FloorNumber,
	}
}

// Estimate returns the priced result for r. Invalid requests come back as
// Result{Success: false} and are never written to the cache.
func (s *Service) Estimate(ctx context.Context, r Request) (Result, error) {
	res, err := cache.GetOrComputeKeyed(ctx, s.cache, Namespace, r.Params(), CacheTTL, func(ctx context.Context) (Result, error) {
		if verr := r.Validate(); verr != nil {
			return Result{}, verr
		}
		return Compute(r), nil
	})
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return Result{Success: false, Error: verr.Message}, nil
		}
		return Result{}, err
	}
	return res, nil
}
