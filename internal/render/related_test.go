package render

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/informer/internal/catalog"
	"git.home.luguber.info/inful/informer/internal/states"
)

func TestRelatedProducts(t *testing.T) {
	all := []catalog.Record{
		{SKU: "A", PartnerGroup: "west", Tags: "divorce"},
		{SKU: "B", PartnerGroup: "west"},
		{SKU: "C", Tags: "divorce, estate"},
		{SKU: "D", Tags: "estate"},
		{SKU: "E", PartnerGroup: "south"},
	}

	related := RelatedProducts(all[0], all)
	var skus []string
	for _, r := range related {
		skus = append(skus, r.SKU)
	}
	// B by partner group, C by tag overlap; catalog order preserved.
	assert.Equal(t, []string{"B", "C"}, skus)

	for _, r := range related {
		assert.NotEqual(t, "A", r.SKU, "a product must never relate to itself")
	}
}

func TestRelatedProductsCap(t *testing.T) {
	all := []catalog.Record{{SKU: "self", Tags: "divorce"}}
	for i := 0; i < 10; i++ {
		all = append(all, catalog.Record{SKU: fmt.Sprintf("other-%d", i), Tags: "divorce"})
	}

	related := RelatedProducts(all[0], all)
	assert.Len(t, related, MaxRelatedProducts)
}

func TestRelatedProductsEmptyPartnerGroup(t *testing.T) {
	// An empty partner group must not match every other empty-group record.
	all := []catalog.Record{{SKU: "A"}, {SKU: "B"}, {SKU: "C"}}
	assert.Empty(t, RelatedProducts(all[0], all))
}

func makeStates(n int) []states.Profile {
	out := make([]states.Profile, n)
	for i := range out {
		out[i] = states.Profile{Name: fmt.Sprintf("State %d", i), Slug: fmt.Sprintf("state-%d", i)}
	}
	return out
}

func TestRelatedStates(t *testing.T) {
	all := makeStates(50)

	for index := 0; index < 50; index++ {
		related := RelatedStates(index, all)
		require.Len(t, related, MaxRelatedStates)

		seen := map[string]struct{}{}
		for _, s := range related {
			assert.NotEqual(t, all[index].Slug, s.Slug, "state %d must not relate to itself", index)
			_, dup := seen[s.Slug]
			assert.False(t, dup, "duplicate related state for index %d", index)
			seen[s.Slug] = struct{}{}
		}
	}
}

func TestRelatedStatesReproducible(t *testing.T) {
	all := makeStates(50)
	first := RelatedStates(7, all)
	second := RelatedStates(7, all)
	assert.Equal(t, first, second)
}

func TestRelatedStatesDifferPerIndex(t *testing.T) {
	all := makeStates(50)
	a := RelatedStates(0, all)
	b := RelatedStates(1, all)
	assert.NotEqual(t, a, b, "neighboring states should link to different subsets")
}

func TestRelatedStatesStrideDivisibleLengths(t *testing.T) {
	// List lengths sharing a factor with the base stride must still yield a
	// full, duplicate-free selection.
	for _, n := range []int{7, 14, 21, 10} {
		all := makeStates(n)
		for index := 0; index < n; index++ {
			related := RelatedStates(index, all)
			require.Len(t, related, MaxRelatedStates, "n=%d index=%d", n, index)

			seen := map[string]struct{}{}
			for _, s := range related {
				assert.NotEqual(t, all[index].Slug, s.Slug)
				_, dup := seen[s.Slug]
				assert.False(t, dup, "duplicate related state for n=%d index=%d", n, index)
				seen[s.Slug] = struct{}{}
			}
		}
	}
}

func TestRelatedStatesSmallLists(t *testing.T) {
	assert.Empty(t, RelatedStates(0, makeStates(1)))
	assert.Empty(t, RelatedStates(0, nil))
	assert.Empty(t, RelatedStates(9, makeStates(3)), "out-of-range index yields nothing")

	two := RelatedStates(0, makeStates(2))
	require.Len(t, two, 1)
	assert.Equal(t, "state-1", two[0].Slug)
}
