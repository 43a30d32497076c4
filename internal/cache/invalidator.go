package cache

import (
	"context"
	"log"
	"time"
)

// Pattern is a glob matched against cache keys, e.g. "projetos:list:*".
type Pattern string

// Exact matches a single key. Glob metacharacters in key are escaped.
func Exact(key string) Pattern {
	return Pattern(escapeGlob(key))
}

// Prefix matches every key under a namespace.
func Prefix(namespace string) Pattern {
	return Pattern(escapeGlob(namespace) + KeySeparator + "*")
}

// Invalidator purges keys by pattern after domain writes.
type Invalidator struct {
	store     Store
	opTimeout time.Duration
}

// NewInvalidator creates an invalidator over store.
func NewInvalidator(store Store) *Invalidator {
	return &Invalidator{store: store, opTimeout: 2 * time.Second}
}

// Invalidate deletes every key matching any of patterns and returns the total removed.
// A failing pattern counts as zero and does not stop the remaining ones; whatever
// survives still expires through its TTL.
//
// Call it after the write has committed, never before: invalidating first lets a
// concurrent reader repopulate the cache with pre-write data.
func (inv *Invalidator) Invalidate(ctx context.Context, patterns ...Pattern) int64 {
	var total int64
	for _, p := range patterns {
		opCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), inv.opTimeout)
		n, err := inv.store.DeleteMatching(opCtx, string(p))
		cancel()
		if err != nil {
			log.Printf("[Invalidator] Pattern %s failed: %v", p, err)
			continue
		}
		total += n
	}
	return total
}

// PatternSet declares once which patterns a domain purges on each kind of write.
type PatternSet struct {
	// OnAnyWrite is purged by create, update and delete.
	OnAnyWrite []Pattern
	// Entity renders the patterns tied to one entity, purged by update and delete.
	Entity func(id any) []Pattern
}

// ForCreate returns the patterns to purge after a create.
func (ps PatternSet) ForCreate() []Pattern {
	return append([]Pattern(nil), ps.OnAnyWrite...)
}

// ForUpdate returns the patterns to purge after updating id.
func (ps PatternSet) ForUpdate(id any) []Pattern {
	return ps.forEntity(id)
}

// ForDelete returns the patterns to purge after deleting id.
func (ps PatternSet) ForDelete(id any) []Pattern {
	return ps.forEntity(id)
}

func (ps PatternSet) forEntity(id any) []Pattern {
	out := append([]Pattern(nil), ps.OnAnyWrite...)
	if ps.Entity != nil {
		out = append(out, ps.Entity(id)...)
	}
	return out
}

func escapeGlob(s string) string {
	var out []byte
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '*', '?', '[', ']', '\\', '{', '}':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}
