package render

import (
	"git.home.luguber.info/inful/informer/internal/catalog"
	"git.home.luguber.info/inful/informer/internal/states"
)

// MaxRelatedProducts caps the "customers also bought" block on product pages.
const MaxRelatedProducts = 6

// MaxRelatedStates caps the cross-link block on state profile pages.
const MaxRelatedStates = 5

// relatedStateStride drives the deterministic pseudo-rotation over the state
// list. Fixed so that regeneration is reproducible; the effective stride is
// bumped to the next value coprime with the list length so the rotation
// never collapses onto a short cycle.
const relatedStateStride = 7

func effectiveStride(n int) int {
	s := relatedStateStride
	for gcd(s, n) != 1 {
		s++
	}
	return s
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// RelatedProducts selects other active records sharing the product's partner
// group or at least one tag. Catalog order is preserved, the product itself
// is excluded, and the result is capped at MaxRelatedProducts.
func RelatedProducts(p catalog.Record, all []catalog.Record) []catalog.Record {
	var out []catalog.Record
	for _, other := range all {
		if other.SKU == p.SKU {
			continue
		}
		grouped := p.PartnerGroup != "" && other.PartnerGroup == p.PartnerGroup
		if grouped || p.SharesTag(other) {
			out = append(out, other)
			if len(out) == MaxRelatedProducts {
				break
			}
		}
	}
	return out
}

// RelatedStates selects a reproducible subset of other states for the state
// at position index. The selection is a fixed arithmetic rotation over list
// position, deliberately not random and not alphabetical, so each state page
// links to a different but stable set of peers.
func RelatedStates(index int, all []states.Profile) []states.Profile {
	n := len(all)
	if n <= 1 || index < 0 || index >= n {
		return nil
	}

	stride := effectiveStride(n)
	var out []states.Profile
	seen := map[int]struct{}{index: {}}
	for k := 1; len(out) < MaxRelatedStates && k < n; k++ {
		j := (index + k*stride) % n
		if _, dup := seen[j]; dup {
			continue
		}
		seen[j] = struct{}{}
		out = append(out, all[j])
	}
	return out
}
