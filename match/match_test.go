package match

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/kitsu/kitsu"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func sampleItems() []Item {
	titan := kitsu.Anime{ID: "7442", Type: "anime"}
	titan.Attributes.CanonicalTitle = "Attack on Titan"
	titan.Attributes.AverageRating = strPtr("84.53")
	titan.Attributes.Subtype = "TV"
	titan.Attributes.StartDate = "2013-04-07"
	titan.Attributes.EpisodeCount = intPtr(25)

	movie := kitsu.Anime{ID: "10", Type: "anime"}
	movie.Attributes.CanonicalTitle = "Akira"
	movie.Attributes.AverageRating = strPtr("79.10")
	movie.Attributes.Subtype = "movie"
	movie.Attributes.StartDate = "1988-07-16"
	movie.Attributes.EpisodeCount = intPtr(1)

	unrated := kitsu.Anime{ID: "99", Type: "anime"}
	unrated.Attributes.CanonicalTitle = "Upcoming Show"
	unrated.Attributes.NSFW = true

	return []Item{ItemFromAnime(titan), ItemFromAnime(movie), ItemFromAnime(unrated)}
}

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name        string
		expression  string
		wantErr     bool
		errContains string
	}{
		{
			name:       "valid expression",
			expression: `rating > 80`,
		},
		{
			name:        "empty expression",
			expression:  "   ",
			wantErr:     true,
			errContains: "empty expression",
		},
		{
			name:       "invalid syntax",
			expression: `rating > `,
			wantErr:    true,
		},
		{
			name:       "unknown field",
			expression: `score > 80`,
			wantErr:    true,
		},
		{
			name:       "not boolean",
			expression: `rating + 1`,
			wantErr:    true,
		},
		{
			name:       "complex expression",
			expression: `hasRating and rating > 70 and like(title, "a") and subtype in ["TV", "movie"]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewCompiler().Compile(tt.expression)
			if tt.wantErr {
				require.Error(t, err)
				var cerr *CompilationError
				assert.True(t, errors.As(err, &cerr))
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expression, m.Expression())
		})
	}
}

func TestMatch(t *testing.T) {
	items := sampleItems()

	tests := []struct {
		expression string
		expected   []string
	}{
		{`rating > 80`, []string{"7442"}},
		{`hasRating`, []string{"7442", "10"}},
		{`not hasRating`, []string{"99"}},
		{`nsfw`, []string{"99"}},
		{`subtype == "movie"`, []string{"10"}},
		{`year >= 2000`, []string{"7442"}},
		{`episodes > 1 and kind == "anime"`, []string{"7442"}},
		{`like(title, "TITAN")`, []string{"7442"}},
		{`title contains "Akira"`, []string{"10"}},
		{`lower(title) startsWith "up"`, []string{"99"}},
		{`true`, []string{"7442", "10", "99"}},
		{`false`, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			m, err := Compile(tt.expression)
			require.NoError(t, err)

			matches, err := Filter(context.Background(), m, items)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ids(matches))
		})
	}
}

func TestCustomFunctions(t *testing.T) {
	compiler := NewCompiler(WithCustomFunctions(map[string]any{
		"isLong": func(episodes int) bool { return episodes > 12 },
	}))

	m, err := compiler.Compile(`isLong(episodes)`)
	require.NoError(t, err)

	ok, err := m.Match(sampleItems()[0])
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCompilerCache(t *testing.T) {
	compiler := NewCompiler(WithCache(2))

	first, err := compiler.Compile(`rating > 1`)
	require.NoError(t, err)
	again, err := compiler.Compile(`  rating > 1  `)
	require.NoError(t, err)
	assert.Same(t, first, again)
	assert.Equal(t, 1, compiler.CacheLen())

	_, err = compiler.Compile(`rating > 2`)
	require.NoError(t, err)
	_, err = compiler.Compile(`rating > 3`)
	require.NoError(t, err)
	assert.Equal(t, 2, compiler.CacheLen())

	// The oldest entry was evicted
	evicted, err := compiler.Compile(`rating > 1`)
	require.NoError(t, err)
	assert.NotSame(t, first, evicted)

	compiler.ClearCache()
	assert.Equal(t, 0, compiler.CacheLen())
	assert.Equal(t, 0, NewCompiler().CacheLen())
}

func TestConcurrentEvaluationKeepsOrder(t *testing.T) {
	items := make([]Item, 1000)
	for i := range items {
		items[i] = Item{ID: fmt.Sprint(i), Episodes: i}
	}

	m, err := Compile(`episodes % 3 == 0`)
	require.NoError(t, err)

	evaluator := NewEvaluator(WithWorkers(4), WithBatchSize(50))
	matches, err := evaluator.Filter(context.Background(), m, items)
	require.NoError(t, err)

	require.Len(t, matches, 334)
	for i, item := range matches {
		assert.Equal(t, i*3, item.Episodes)
	}
}

func TestFilterCancelled(t *testing.T) {
	m, err := Compile(`true`)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = Filter(ctx, m, sampleItems())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEvaluationError(t *testing.T) {
	m, err := Compile(`[1, 2][episodes] == 1`)
	require.NoError(t, err)

	ok, err := m.Match(Item{ID: "0", Episodes: 0})
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = m.Match(Item{ID: "5", Episodes: 5})
	require.Error(t, err)

	var eerr *EvaluationError
	require.True(t, errors.As(err, &eerr))
	assert.Equal(t, "5", eerr.ItemID)
	assert.Contains(t, err.Error(), "[1, 2][episodes] == 1")

	// Evaluation errors abort filtering
	_, err = Filter(context.Background(), m, []Item{{ID: "0"}, {ID: "5", Episodes: 5}})
	assert.True(t, errors.As(err, &eerr))
}

func TestItemAdapters(t *testing.T) {
	manga := kitsu.Manga{ID: "1", Type: "manga"}
	manga.Attributes.Titles.En = "Orange"
	manga.Attributes.ChapterCount = intPtr(22)
	item := ItemFromManga(manga)
	assert.Equal(t, "Orange", item.Title)
	assert.Equal(t, 22, item.Chapters)
	assert.False(t, item.HasRating)

	user := kitsu.User{ID: "2", Type: "users"}
	user.Attributes.Slug = "vikhyat"
	assert.Equal(t, "vikhyat", ItemFromUser(user).Title)

	character := kitsu.Character{ID: "3", Type: "characters"}
	character.Attributes.Names.En = "Spike Spiegel"
	assert.Equal(t, "Spike Spiegel", ItemFromCharacter(character).Title)

	producer := kitsu.Producer{ID: "4", Type: "producers"}
	producer.Attributes.Name = "Sunrise"
	p := ItemFromProducer(producer)
	assert.Equal(t, "Sunrise", p.Title)
	assert.Equal(t, producer, p.Resource)
}
