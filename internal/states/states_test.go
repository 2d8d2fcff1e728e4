package states

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProfile(name, slug, abbr string) Profile {
	return Profile{
		Name:                   name,
		Slug:                   slug,
		Abbreviation:           abbr,
		ResidencyRequirement:   "Six months residency required.",
		WaitingPeriod:          "Six month waiting period.",
		FilingFeeRange:         "Typical filing fees range from $435.",
		FaultType:              "No-fault state.",
		ParentingClassRequired: "Not required statewide.",
		FeeWaiverAvailable:     "Fee waivers available based on income.",
		Citations:              []Citation{{Title: "Courts Overview", URL: "https://example.gov/divorce"}},
		LastVerified:           "January 2026",
	}
}

func TestLoad(t *testing.T) {
	yamlDoc := `states:
  - name: California
    slug: california
    abbreviation: CA
    residency_requirement: "At least one spouse must have lived in California for six months."
    waiting_period: "Six months from service."
    filing_fee_range: "Typical filing fees range from $435."
    fault_type: "No-fault."
    parenting_class_required: "Not required statewide."
    fee_waiver_available: "Available via Judicial Council forms."
    citations:
      - title: "California Courts - Divorce Overview"
        url: "https://www.courts.ca.gov/1039.htm"
    last_verified: "January 2026"
  - name: Texas
    slug: texas
    abbreviation: TX
    residency_requirement: "Six months in Texas, 90 days in the county."
    waiting_period: "60 days."
    filing_fee_range: "$250 to $350."
    fault_type: "Mixed."
    parenting_class_required: "County dependent."
    fee_waiver_available: "Statement of inability to afford payment."
    citations:
      - title: "Texas Courts"
        url: "https://www.txcourts.gov/"
    last_verified: "January 2026"
`
	path := filepath.Join(t.TempDir(), "states.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlDoc), 0o644))

	profiles, err := Load(path)
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "california", profiles[0].Slug)
	assert.Equal(t, "TX", profiles[1].Abbreviation)
	require.Len(t, profiles[0].Citations, 1)
	assert.Equal(t, "https://www.courts.ca.gov/1039.htm", profiles[0].Citations[0].URL)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidateSlug(t *testing.T) {
	require.NoError(t, ValidateSlug("california"))
	require.NoError(t, ValidateSlug("new-hampshire"))

	for _, bad := range []string{"", "California", "new hampshire", "new--york", "-texas", "texas-"} {
		assert.Error(t, ValidateSlug(bad), "slug %q should be rejected", bad)
	}
}

func TestValidate(t *testing.T) {
	good := []Profile{validProfile("California", "california", "CA"), validProfile("Texas", "texas", "TX")}
	require.NoError(t, Validate(good, 0))
	require.NoError(t, Validate(good, 2))

	require.Error(t, Validate(good, 50), "count mismatch must fail")

	dupSlug := []Profile{validProfile("California", "california", "CA"), validProfile("Calif.", "california", "CF")}
	require.Error(t, Validate(dupSlug, 0))

	dupAbbr := []Profile{validProfile("California", "california", "CA"), validProfile("Canada", "canada", "CA")}
	require.Error(t, Validate(dupAbbr, 0))

	noCitations := validProfile("Nevada", "nevada", "NV")
	noCitations.Citations = nil
	require.Error(t, Validate([]Profile{noCitations}, 0))

	badAbbr := validProfile("Ohio", "ohio", "Ohio")
	require.Error(t, Validate([]Profile{badAbbr}, 0))
}

func TestByAbbreviation(t *testing.T) {
	profiles := []Profile{validProfile("California", "california", "CA"), validProfile("Texas", "texas", "TX")}
	m := ByAbbreviation(profiles)
	require.Len(t, m, 2)
	assert.Equal(t, "California", m["CA"].Name)
}
