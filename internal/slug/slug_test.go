package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ierrors "git.home.luguber.info/inful/informer/internal/errors"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple title", "California Divorce Kit", "california-divorce-kit"},
		{"sku plus title", "INF-CA-NC-California Divorce Kit", "inf-ca-nc-california-divorce-kit"},
		{"punctuation stripped", "Kit! (2026 Edition)", "kit-2026-edition"},
		{"whitespace collapsed", "  New   York \t Kit ", "new-york-kit"},
		{"repeated hyphens collapsed", "a---b----c", "a-b-c"},
		{"leading trailing hyphens trimmed", "-abc-", "abc"},
		{"accents folded", "Café Kits", "cafe-kits"},
		{"symbols dropped around a word", "½ Price!!", "price"},
		{"already a slug", "divorce-kits", "divorce-kits"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Make(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMakeIdempotent(t *testing.T) {
	inputs := []string{
		"California Divorce Kit",
		"INF-TX-WC-Texas Divorce Kit",
		"  Weird -- Input!! ",
		"Café Kits",
	}
	for _, in := range inputs {
		once, err := Make(in)
		require.NoError(t, err)
		twice, err := Make(once)
		require.NoError(t, err)
		assert.Equal(t, once, twice, "Make must be idempotent for %q", in)
	}
}

func TestMakeEmptySlug(t *testing.T) {
	for _, in := range []string{"", "½ !!", "!!!", "¿¡", "---"} {
		_, err := Make(in)
		require.Error(t, err, "input %q must not produce a publishable slug", in)
		assert.True(t, ierrors.IsCategory(err, ierrors.CategorySlug), "expected slug category for %q", in)
	}
}

// All 50 state names must derive pairwise-distinct slugs; a collision here
// would silently merge two state pages into one output path.
func TestStateNameSlugsDistinct(t *testing.T) {
	states := []string{
		"Alabama", "Alaska", "Arizona", "Arkansas", "California", "Colorado",
		"Connecticut", "Delaware", "Florida", "Georgia", "Hawaii", "Idaho",
		"Illinois", "Indiana", "Iowa", "Kansas", "Kentucky", "Louisiana",
		"Maine", "Maryland", "Massachusetts", "Michigan", "Minnesota",
		"Mississippi", "Missouri", "Montana", "Nebraska", "Nevada",
		"New Hampshire", "New Jersey", "New Mexico", "New York",
		"North Carolina", "North Dakota", "Ohio", "Oklahoma", "Oregon",
		"Pennsylvania", "Rhode Island", "South Carolina", "South Dakota",
		"Tennessee", "Texas", "Utah", "Vermont", "Virginia", "Washington",
		"West Virginia", "Wisconsin", "Wyoming",
	}
	require.Len(t, states, 50)

	seen := make(map[string]string, len(states))
	for _, name := range states {
		s, err := Make(name)
		require.NoError(t, err)
		if prev, dup := seen[s]; dup {
			t.Fatalf("slug collision: %q and %q both derive %q", prev, name, s)
		}
		seen[s] = name
	}
}

func TestPathBuilders(t *testing.T) {
	p, err := ProductPath("INF-CA-NC", "California Divorce Kit")
	require.NoError(t, err)
	assert.Equal(t, "/products/inf-ca-nc-california-divorce-kit/", p)

	c, err := CategoryPath("Divorce Kits")
	require.NoError(t, err)
	assert.Equal(t, "/category/divorce-kits/", c)

	sc, err := StateCategoryPath("Divorce Kits", "CA")
	require.NoError(t, err)
	assert.Equal(t, "/category/divorce-kits/ca/", sc)

	sp, err := StatePath("New Hampshire")
	require.NoError(t, err)
	assert.Equal(t, "/states/new-hampshire/", sp)
}

func TestPathBuildersRejectEmptySlugs(t *testing.T) {
	_, err := ProductPath("", "½ !!")
	require.Error(t, err)

	_, err = StateCategoryPath("Divorce Kits", "¡!")
	require.Error(t, err)
}
