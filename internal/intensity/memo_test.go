package intensity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridleaf/carboncast/internal/gridmix"
	"github.com/gridleaf/carboncast/internal/refdata"
)

func TestMemoBuilder(t *testing.T) {
	cat := loadCatalog(t)
	memo := NewMemoBuilder(cat)

	first, err := memo.Build("FR", refdata.SeasonWinter, gridmix.BasisBase)
	require.NoError(t, err)

	direct, err := BuildProfile(cat, "FR", refdata.SeasonWinter)
	require.NoError(t, err)
	assert.Equal(t, direct, first)

	// Repeat hit returns the identical profile.
	second, err := memo.Build("FR", refdata.SeasonWinter, gridmix.BasisBase)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Different basis is a different key, not a stale hit.
	implied, err := memo.Build("FR", refdata.SeasonWinter, gridmix.BasisImplied)
	require.NoError(t, err)
	assert.NotEqual(t, first.Values, implied.Values)

	_, err = memo.Build("ZZ", refdata.SeasonWinter, gridmix.BasisBase)
	assert.ErrorIs(t, err, refdata.ErrUnknownRegion)
}
