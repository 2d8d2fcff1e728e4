// Package slug derives canonical, filesystem- and URL-safe path segments from
// human-readable labels, and builds the site's canonical page paths from them.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"git.home.luguber.info/inful/informer/internal/errors"
)

// asciiFold strips combining marks after NFD decomposition so accented input
// ("Café") folds to plain ASCII before slugging.
var asciiFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Make derives a lowercase, hyphen-separated slug from a free-text label.
// Deterministic and idempotent: Make(Make(x)) == Make(x). Returns an
// EmptySlug error when no alphanumeric character survives normalization;
// callers must reject such records before publishing.
func Make(input string) (string, error) {
	folded, _, err := transform.String(asciiFold, input)
	if err != nil {
		// Fall back to the raw input; the ASCII filter below still applies.
		folded = input
	}

	var b strings.Builder
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		case r == '-':
			b.WriteByte('-')
		}
	}

	s := strings.TrimSpace(b.String())
	s = strings.Join(strings.Fields(s), "-")
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	s = strings.Trim(s, "-")

	if s == "" {
		return "", errors.EmptySlug(input)
	}
	return s, nil
}

// ProductPath returns the canonical product detail path, e.g.
// /products/inf-ca-nc-california-divorce-kit/.
func ProductPath(sku, title string) (string, error) {
	s, err := Make(sku + "-" + title)
	if err != nil {
		return "", err
	}
	return "/products/" + s + "/", nil
}

// CategoryPath returns the canonical category listing path.
func CategoryPath(category string) (string, error) {
	s, err := Make(category)
	if err != nil {
		return "", err
	}
	return "/category/" + s + "/", nil
}

// StateCategoryPath returns the jurisdiction-scoped category listing path.
func StateCategoryPath(category, state string) (string, error) {
	cs, err := Make(category)
	if err != nil {
		return "", err
	}
	ss, err := Make(state)
	if err != nil {
		return "", err
	}
	return "/category/" + cs + "/" + ss + "/", nil
}

// StatePath returns the canonical state profile path, e.g. /states/california/.
func StatePath(stateName string) (string, error) {
	s, err := Make(stateName)
	if err != nil {
		return "", err
	}
	return "/states/" + s + "/", nil
}
