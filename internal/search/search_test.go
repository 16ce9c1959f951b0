package search

import (
	"net/url"
	"testing"

	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "dell latitude", Normalize("  Dell   LATITUDE \t"))
	assert.Equal(t, "", Normalize("   "))
}

func TestPatternsEscapeWildcards(t *testing.T) {
	assert.Equal(t, `%50\% off%`, ContainsPattern("50% OFF"))
	assert.Equal(t, `a\_b%`, PrefixPattern("A_B"))
	assert.Equal(t, `c:\\tmp%`, PrefixPattern(`C:\tmp`))
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		want   Page
		hasErr bool
	}{
		{"defaults", "", Page{Page: 1, Limit: 20, Offset: 0}, false},
		{"third page", "page=3&limit=10", Page{Page: 3, Limit: 10, Offset: 20}, false},
		{"clamped limit", "limit=1000", Page{Page: 1, Limit: 100, Offset: 0}, false},
		{"zero limit", "limit=0", Page{Page: 1, Limit: 1, Offset: 0}, false},
		{"negative page", "page=-4", Page{Page: 1, Limit: 20, Offset: 0}, false},
		{"bad page", "page=abc", Page{}, true},
		{"bad limit", "limit=ten", Page{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			got, err := ParsePage(values, 20, 100)
			if tt.hasErr {
				assert.ErrorIs(t, err, ErrInvalidPage)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSort(t *testing.T) {
	allowed := []string{"name", "price"}

	field, desc, err := ParseSort("-price", allowed, "name")
	require.NoError(t, err)
	assert.Equal(t, "price", field)
	assert.True(t, desc)

	field, desc, err = ParseSort("", allowed, "name")
	require.NoError(t, err)
	assert.Equal(t, "name", field)
	assert.False(t, desc)

	_, _, err = ParseSort("password", allowed, "name")
	assert.ErrorIs(t, err, ErrInvalidSort)
}

func TestRankSuggestions(t *testing.T) {
	mk := func(label string) models.Suggestion {
		return models.Suggestion{ID: uuid.New(), Label: label}
	}
	candidates := []models.Suggestion{
		mk("Old Dell Monitor"),
		mk("Dell Latitude 5420"),
		mk("HP Laserjet"),
		mk("dell xps"),
	}

	got := RankSuggestions("DELL", candidates, 10)
	require.Len(t, got, 3)
	assert.Equal(t, "Dell Latitude 5420", got[0].Label)
	assert.Equal(t, "dell xps", got[1].Label)
	assert.Equal(t, "Old Dell Monitor", got[2].Label)

	assert.Len(t, RankSuggestions("dell", candidates, 1), 1)
	assert.Empty(t, RankSuggestions("  ", candidates, 10))
}

func TestParseLimit(t *testing.T) {
	n, err := ParseLimit("", 10)
	require.NoError(t, err)
	assert.Equal(t, 10, n)

	n, err = ParseLimit("5", 10)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	_, err = ParseLimit("0", 10)
	assert.Error(t, err)
}
