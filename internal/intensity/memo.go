package intensity

import (
	"github.com/gridleaf/carboncast/internal/cache"
	"github.com/gridleaf/carboncast/internal/gridmix"
	"github.com/gridleaf/carboncast/internal/refdata"
)

// MemoBuilder memoizes BuildProfile results keyed by (region, season,
// basis). Valid because profiles are deterministic over an immutable
// catalog. Safe for concurrent use.
type MemoBuilder struct {
	cat   *refdata.Catalog
	store *cache.Store
}

// NewMemoBuilder wraps the catalog with a fresh memo store.
func NewMemoBuilder(cat *refdata.Catalog) *MemoBuilder {
	return &MemoBuilder{cat: cat, store: cache.New()}
}

// Build behaves exactly like BuildProfile, serving repeats from memory.
// Errors are not cached.
func (b *MemoBuilder) Build(code string, season refdata.Season, basis gridmix.Basis) (Profile, error) {
	key := cache.Key("intensity", code, season.String(), basis.String())
	if v, ok := b.store.Get(key); ok {
		return v.(Profile), nil
	}

	profile, err := BuildProfile(b.cat, code, season, WithBasis(basis))
	if err != nil {
		return Profile{}, err
	}
	b.store.Set(key, profile)
	return profile, nil
}
