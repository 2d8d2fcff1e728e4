// Package states loads and validates the per-jurisdiction legal-requirement
// profiles that back the informational state pages.
package states

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/informer/internal/errors"
)

// Citation is one source reference backing a profile's claims.
type Citation struct {
	Title string `yaml:"title" json:"title"`
	URL   string `yaml:"url" json:"url"`
}

// Profile is one jurisdiction's legal-requirement summary.
type Profile struct {
	Name                   string     `yaml:"name" json:"name"`
	Slug                   string     `yaml:"slug" json:"slug"`
	Abbreviation           string     `yaml:"abbreviation" json:"abbreviation"`
	ResidencyRequirement   string     `yaml:"residency_requirement" json:"residency_requirement"`
	WaitingPeriod          string     `yaml:"waiting_period" json:"waiting_period"`
	FilingFeeRange         string     `yaml:"filing_fee_range" json:"filing_fee_range"`
	FaultType              string     `yaml:"fault_type" json:"fault_type"`
	ParentingClassRequired string     `yaml:"parenting_class_required" json:"parenting_class_required"`
	FeeWaiverAvailable     string     `yaml:"fee_waiver_available" json:"fee_waiver_available"`
	Citations              []Citation `yaml:"citations" json:"citations"`
	LastVerified           string     `yaml:"last_verified" json:"last_verified"`
}

// file is the on-disk shape of the state data file.
type file struct {
	States []Profile `yaml:"states"`
}

// Load reads profiles from a YAML data file. Order is preserved; the
// related-states rotation depends on stable list positions.
func Load(path string) ([]Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.IngestionError(path, err)
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.IngestionError(path, err)
	}
	return f.States, nil
}

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// ValidateSlug checks a single profile slug for URL safety: lowercase
// kebab-case with no consecutive, leading, or trailing hyphens.
func ValidateSlug(s string) error {
	switch {
	case s == "":
		return fmt.Errorf("slug is empty")
	case !slugPattern.MatchString(s):
		return fmt.Errorf("slug %q contains invalid characters (must be a-z, 0-9, or hyphens only)", s)
	case strings.Contains(s, "--"):
		return fmt.Errorf("slug %q contains consecutive hyphens", s)
	case strings.HasPrefix(s, "-") || strings.HasSuffix(s, "-"):
		return fmt.Errorf("slug %q has leading or trailing hyphen", s)
	}
	return nil
}

// Validate enforces registry invariants over the full profile list: unique
// safe slugs, unique uppercase two-letter abbreviations, and a non-empty
// citation set per published profile. expectedCount of 0 disables the
// completeness check.
func Validate(profiles []Profile, expectedCount int) error {
	if expectedCount > 0 && len(profiles) != expectedCount {
		return errors.ValidationFailed("states",
			fmt.Sprintf("expected %d state profiles, found %d", expectedCount, len(profiles)))
	}

	slugs := make(map[string]string, len(profiles))
	abbrs := make(map[string]string, len(profiles))
	for _, p := range profiles {
		if p.Name == "" {
			return errors.ValidationFailed("name", "state profile with empty name")
		}
		if err := ValidateSlug(p.Slug); err != nil {
			return errors.ValidationFailed("slug", p.Name+": "+err.Error())
		}
		if prev, dup := slugs[p.Slug]; dup {
			return errors.ValidationFailed("slug",
				fmt.Sprintf("duplicate slug %q (%s and %s)", p.Slug, prev, p.Name))
		}
		slugs[p.Slug] = p.Name

		abbr := p.Abbreviation
		if len(abbr) != 2 || abbr != strings.ToUpper(abbr) {
			return errors.ValidationFailed("abbreviation",
				fmt.Sprintf("%s: abbreviation %q must be two uppercase letters", p.Name, abbr))
		}
		if prev, dup := abbrs[abbr]; dup {
			return errors.ValidationFailed("abbreviation",
				fmt.Sprintf("duplicate abbreviation %q (%s and %s)", abbr, prev, p.Name))
		}
		abbrs[abbr] = p.Name

		if len(p.Citations) == 0 {
			return errors.ValidationFailed("citations", p.Name+": published profile needs at least one citation")
		}
		for _, c := range p.Citations {
			if c.Title == "" || c.URL == "" {
				return errors.ValidationFailed("citations", p.Name+": citation needs both title and url")
			}
		}
	}
	return nil
}

// ByAbbreviation indexes profiles by jurisdiction code for catalog lookups.
func ByAbbreviation(profiles []Profile) map[string]Profile {
	m := make(map[string]Profile, len(profiles))
	for _, p := range profiles {
		m[p.Abbreviation] = p
	}
	return m
}
