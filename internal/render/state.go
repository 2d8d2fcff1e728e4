package render

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/informer/internal/catalog"
	"git.home.luguber.info/inful/informer/internal/states"
)

// StateProfile renders one jurisdiction's informational page. index is the
// profile's position in the full ordered state list; it seeds the
// related-states rotation. stateProducts are the active catalog records for
// this jurisdiction, shown only when the conversion layer is enabled.
func (r *Renderer) StateProfile(p states.Profile, index int, all []states.Profile, stateProducts []catalog.Record) (string, error) {
	canonicalPath := "/states/" + p.Slug + "/"
	canonicalURL := r.site.BaseURL + canonicalPath

	faq, err := r.faqSchema(p)
	if err != nil {
		return "", err
	}
	art, err := r.articleSchema(p, canonicalURL)
	if err != nil {
		return "", err
	}
	crumbs, err := r.breadcrumbSchema(p, canonicalURL)
	if err != nil {
		return "", err
	}

	name := Sanitize(p.Name)
	var b strings.Builder

	fmt.Fprintf(&b, `<nav class="breadcrumb">
    <a href="/">State-Specific Divorce Forms</a> /
    <a href="/states/">All State Divorce Forms</a> /
    %s Divorce Forms
  </nav>
`, escapeAttr(name))

	fmt.Fprintf(&b, `<section class="state-intro">
    <h1>%s Divorce Forms &amp; Filing Requirements</h1>
    <p>%s divorce laws require specific formatting, disclosures, and filing procedures.
    Our %s divorce form kits are structured to match court expectations and reduce
    avoidable rejection issues.</p>
  </section>
`, escapeAttr(name), escapeAttr(name), escapeAttr(name))

	sourceLine := ""
	if len(p.Citations) > 0 {
		sourceLine = fmt.Sprintf(`<p><em>Source: %s</em></p>`, escapeAttr(Sanitize(p.Citations[0].Title)))
	}

	section := func(heading, text string) {
		fmt.Fprintf(&b, `<section class="section"><div class="container"><h2>%s</h2><p>%s</p>%s</div></section>
`, escapeAttr(heading), escapeAttr(Sanitize(text)), sourceLine)
	}
	section(name+" Residency Requirement", p.ResidencyRequirement)
	section(name+" Divorce Waiting Period", p.WaitingPeriod)
	section(name+" Divorce Filing Fees", p.FilingFeeRange)
	section(name+" Filing Fee Waiver", p.FeeWaiverAvailable)

	// Fault type and parenting classes have no per-claim source line.
	fmt.Fprintf(&b, `<section class="section"><div class="container"><h2>%s Fault Type</h2><p>%s</p></div></section>
`, escapeAttr(name), escapeAttr(Sanitize(p.FaultType)))
	fmt.Fprintf(&b, `<section class="section"><div class="container"><h2>Parenting Classes</h2><p>%s</p></div></section>
`, escapeAttr(Sanitize(p.ParentingClassRequired)))

	if r.opts.IncludeConversionLayer && len(stateProducts) > 0 {
		cards, err := r.grid(stateProducts)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, `<section class="section"><div class="container"><h2>%s Divorce Form Kits</h2><div class="grid">%s</div></div></section>
`, escapeAttr(name), cards)
	}

	b.WriteString(`<section class="section"><div class="container"><h2>Sources &amp; Verification</h2><ul>
`)
	for _, c := range p.Citations {
		fmt.Fprintf(&b, `<li><a href="%s" target="_blank" rel="noopener noreferrer">%s</a></li>
`, escapeAttr(c.URL), escapeAttr(Sanitize(c.Title)))
	}
	fmt.Fprintf(&b, `</ul><p><em>Verified: %s</em></p></div></section>
`, escapeAttr(Sanitize(p.LastVerified)))

	b.WriteString(`<section class="related-states"><h2>Explore Divorce Forms in Other States</h2><ul>
<li><a href="/states/">View All States</a></li>
`)
	for _, other := range RelatedStates(index, all) {
		fmt.Fprintf(&b, `<li><a href="/states/%s/">%s Divorce Forms</a></li>
`, other.Slug, escapeAttr(Sanitize(other.Name)))
	}
	b.WriteString(`</ul></section>`)

	desc := fmt.Sprintf("%s divorce forms with state-specific filing instructions. %s Filing fees: %s",
		p.Name, FirstSentence(p.ResidencyRequirement), FirstSentence(p.FilingFeeRange))

	return r.shell(page{
		Title:     fmt.Sprintf("%s Divorce Forms & Filing Requirements (%s)", name, r.site.Edition),
		Desc:      desc,
		Canonical: canonicalPath,
		Body:      b.String(),
		JSONLD:    []string{faq, art, crumbs},
	}), nil
}

// StatesIndex renders the all-states listing page linked from breadcrumbs.
func (r *Renderer) StatesIndex(all []states.Profile) string {
	var b strings.Builder
	b.WriteString(`<h1>All State Divorce Forms</h1><ul class="state-list">
`)
	for _, p := range all {
		fmt.Fprintf(&b, `<li><a href="/states/%s/">%s Divorce Forms</a></li>
`, p.Slug, escapeAttr(Sanitize(p.Name)))
	}
	b.WriteString(`</ul>`)

	return r.shell(page{
		Title:     fmt.Sprintf("All State Divorce Forms — %s", r.site.Title),
		Desc:      "State-specific divorce forms and filing requirements for every state.",
		Canonical: "/states/",
		Body:      b.String(),
	})
}
