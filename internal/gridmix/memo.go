package gridmix

import (
	"strconv"

	"github.com/gridleaf/carboncast/internal/cache"
	"github.com/gridleaf/carboncast/internal/refdata"
)

// MemoResolver memoizes Resolve results keyed by (region, basis, adjust).
// Valid because Resolve is pure over an immutable catalog. Safe for
// concurrent use.
type MemoResolver struct {
	cat   *refdata.Catalog
	store *cache.Store
}

// NewMemoResolver wraps the catalog with a fresh memo store.
func NewMemoResolver(cat *refdata.Catalog) *MemoResolver {
	return &MemoResolver{cat: cat, store: cache.New()}
}

// Resolve behaves exactly like the package-level Resolve, serving repeats
// from memory. Errors are not cached; unknown regions stay cheap to reject.
func (r *MemoResolver) Resolve(code string, basis Basis, renewableAdjust float64) (Factor, error) {
	key := cache.Key(
		"gridmix",
		code,
		basis.String(),
		strconv.FormatFloat(renewableAdjust, 'g', -1, 64),
	)
	if v, ok := r.store.Get(key); ok {
		return v.(Factor), nil
	}

	factor, err := Resolve(r.cat, code, WithBasis(basis), WithRenewableAdjust(renewableAdjust))
	if err != nil {
		return Factor{}, err
	}
	r.store.Set(key, factor)
	return factor, nil
}
