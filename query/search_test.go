package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name     string
		search   Search
		expected string
	}{
		{
			name:     "single pair",
			search:   New().Filter("text", "orange"),
			expected: "text=orange",
		},
		{
			name:     "space is percent encoded",
			search:   New().Filter("text", "a b").Filter("name", "x"),
			expected: "text=a%20b&name=x",
		},
		{
			name:     "reserved characters",
			search:   New().Filter("text", "a&b=c+d"),
			expected: "text=a%26b%3Dc%2Bd",
		},
		{
			name:     "unicode",
			search:   New().Filter("text", "のんのんびより"),
			expected: "text=" + url.QueryEscape("のんのんびより"),
		},
		{
			name:     "json api helpers",
			search:   New().Where("text", "cowboy bebop").Include("genres", "castings").Limit(5),
			expected: "filter%5Btext%5D=cowboy%20bebop&include=genres%2Ccastings&page%5Blimit%5D=5",
		},
		{
			name:     "sort and fields",
			search:   New().Sort("-averageRating").Fields("anime", "slug", "canonicalTitle").Offset(20),
			expected: "sort=-averageRating&fields%5Banime%5D=slug%2CcanonicalTitle&page%5Boffset%5D=20",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.search.Encode())
			assert.Equal(t, tt.expected, tt.search.String())
		})
	}
}

func TestEncodeEmpty(t *testing.T) {
	var zero Search
	assert.Equal(t, "", zero.Encode())
	assert.Equal(t, "", New().Encode())
	assert.Equal(t, 0, New().Len())

	// Empty variadic helpers add nothing
	assert.Equal(t, "", New().Include().Sort().Fields("anime").Encode())
}

func TestFilterDuplicateKeys(t *testing.T) {
	s := New().Filter("genres", "comedy").Filter("genres", "slice-of-life")

	assert.Equal(t, "genres=comedy&genres=slice-of-life", s.Encode())
	assert.Equal(t, 2, s.Len())
}

func TestFilterDoesNotMutateReceiver(t *testing.T) {
	base := New().Filter("a", "1").Filter("b", "2")

	left := base.Filter("c", "left")
	right := base.Filter("c", "right")

	assert.Equal(t, "a=1&b=2", base.Encode())
	assert.Equal(t, "a=1&b=2&c=left", left.Encode())
	assert.Equal(t, "a=1&b=2&c=right", right.Encode())
}

func TestPairsReturnsCopy(t *testing.T) {
	s := New().Filter("text", "orange")

	pairs := s.Pairs()
	pairs[0].Value = "changed"

	assert.Equal(t, "text=orange", s.Encode())
}

func TestRoundTrip(t *testing.T) {
	inputs := [][]Pair{
		{{"text", "a b"}, {"name", "x"}},
		{{"filter[text]", "non non biyori"}, {"include", "genres,castings"}},
		{{"text", "a&b=c+d%e"}, {"text", "again"}},
		{{"empty", ""}, {"", "keyless"}},
		{{"title", "Shingeki no Kyojin: 進撃の巨人"}},
	}

	for _, pairs := range inputs {
		s := New()
		for _, p := range pairs {
			s = s.Filter(p.Key, p.Value)
		}

		parsed, err := Parse(s.Encode())
		require.NoError(t, err)
		assert.Equal(t, pairs, parsed)

		// The standard parser agrees on the values
		values, err := url.ParseQuery(s.Encode())
		require.NoError(t, err)
		for _, p := range pairs {
			assert.Contains(t, values[p.Key], p.Value)
		}
	}
}

func TestParse(t *testing.T) {
	pairs, err := Parse("?text=a%20b&flag")
	require.NoError(t, err)
	assert.Equal(t, []Pair{{"text", "a b"}, {"flag", ""}}, pairs)

	pairs, err = Parse("")
	require.NoError(t, err)
	assert.Empty(t, pairs)

	_, err = Parse("text=%zz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid query value")
}
