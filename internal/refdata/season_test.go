package refdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeason(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Season
		wantErr bool
	}{
		{name: "lowercase", input: "winter", want: SeasonWinter},
		{name: "mixed case", input: "Summer", want: SeasonSummer},
		{name: "whitespace trimmed", input: "  spring ", want: SeasonSpring},
		{name: "fall alias", input: "fall", want: SeasonAutumn},
		{name: "autumn", input: "AUTUMN", want: SeasonAutumn},
		{name: "unknown rejected", input: "monsoon", wantErr: true},
		{name: "empty rejected", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSeason(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidSeason)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeasonString(t *testing.T) {
	assert.Equal(t, "spring", SeasonSpring.String())
	assert.Equal(t, "winter", SeasonWinter.String())
	assert.Equal(t, "Season(9)", Season(9).String())
}
