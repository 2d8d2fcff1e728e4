package render

import (
	"encoding/json"
	"fmt"

	"git.home.luguber.info/inful/informer/internal/catalog"
	"git.home.luguber.info/inful/informer/internal/states"
)

// JSON-LD wire types. Field order matters only for readability of the
// embedded blocks; consumers parse them as JSON.

type faqPage struct {
	Context    string        `json:"@context"`
	Type       string        `json:"@type"`
	MainEntity []faqQuestion `json:"mainEntity"`
}

type faqQuestion struct {
	Type           string    `json:"@type"`
	Name           string    `json:"name"`
	AcceptedAnswer faqAnswer `json:"acceptedAnswer"`
}

type faqAnswer struct {
	Type string `json:"@type"`
	Text string `json:"text"`
}

type organization struct {
	Type string `json:"@type"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

type webPage struct {
	Type string `json:"@type"`
	ID   string `json:"@id"`
}

type article struct {
	Context          string       `json:"@context"`
	Type             string       `json:"@type"`
	Headline         string       `json:"headline"`
	Description      string       `json:"description"`
	DatePublished    string       `json:"datePublished"`
	DateModified     string       `json:"dateModified"`
	Publisher        organization `json:"publisher"`
	Author           organization `json:"author"`
	MainEntityOfPage webPage      `json:"mainEntityOfPage"`
}

type productEntity struct {
	Context     string `json:"@context"`
	Type        string `json:"@type"`
	Name        string `json:"name"`
	SKU         string `json:"sku"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Offers      offer  `json:"offers"`
}

type offer struct {
	Type          string `json:"@type"`
	Price         string `json:"price"`
	PriceCurrency string `json:"priceCurrency"`
	Availability  string `json:"availability"`
	URL           string `json:"url"`
}

type breadcrumbList struct {
	Context  string           `json:"@context"`
	Type     string           `json:"@type"`
	Elements []breadcrumbItem `json:"itemListElement"`
}

type breadcrumbItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item,omitempty"`
}

func marshalJSONLD(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// faqSchema builds the FAQPage block from a profile's fixed question fields.
func (r *Renderer) faqSchema(p states.Profile) (string, error) {
	qa := []struct{ q, a string }{
		{fmt.Sprintf("What are the residency requirements for divorce in %s?", p.Name), p.ResidencyRequirement},
		{fmt.Sprintf("How long does divorce take in %s?", p.Name), p.WaitingPeriod},
		{fmt.Sprintf("How much does it cost to file for divorce in %s?", p.Name), p.FilingFeeRange},
		{fmt.Sprintf("Can filing fees be waived in %s?", p.Name), p.FeeWaiverAvailable},
	}

	page := faqPage{Context: "https://schema.org", Type: "FAQPage"}
	for _, e := range qa {
		page.MainEntity = append(page.MainEntity, faqQuestion{
			Type:           "Question",
			Name:           Sanitize(e.q),
			AcceptedAnswer: faqAnswer{Type: "Answer", Text: Sanitize(e.a)},
		})
	}
	return marshalJSONLD(page)
}

// articleSchema builds the Article block for a state profile page.
func (r *Renderer) articleSchema(p states.Profile, canonical string) (string, error) {
	org := organization{Type: "Organization", Name: r.site.Publisher}
	a := article{
		Context:       "https://schema.org",
		Type:          "Article",
		Headline:      fmt.Sprintf("%s Divorce Forms & Filing Requirements (%s)", p.Name, r.site.Edition),
		Description:   fmt.Sprintf("%s divorce filing requirements including residency rules, waiting periods, filing fees, and fee waiver information.", p.Name),
		DatePublished: r.site.DatePublished,
		DateModified:  r.site.DateModified,
		Publisher:     organization{Type: "Organization", Name: r.site.Publisher, URL: r.site.BaseURL},
		Author:        org,
		MainEntityOfPage: webPage{
			Type: "WebPage",
			ID:   canonical,
		},
	}
	return marshalJSONLD(a)
}

// productSchema builds the Product block for a product detail page.
func (r *Renderer) productSchema(p catalog.Record, canonical string) (string, error) {
	ps := productEntity{
		Context:     "https://schema.org",
		Type:        "Product",
		Name:        Sanitize(p.Title),
		SKU:         p.SKU,
		Description: Sanitize(p.ShortDescription),
		Image:       p.CoverImageURL,
		Offers: offer{
			Type:          "Offer",
			Price:         fmt.Sprintf("%.2f", p.PriceUSD),
			PriceCurrency: "USD",
			Availability:  "https://schema.org/InStock",
			URL:           canonical,
		},
	}
	return marshalJSONLD(ps)
}

// breadcrumbSchema builds the BreadcrumbList block for a state profile page.
func (r *Renderer) breadcrumbSchema(p states.Profile, canonical string) (string, error) {
	b := breadcrumbList{
		Context: "https://schema.org",
		Type:    "BreadcrumbList",
		Elements: []breadcrumbItem{
			{Type: "ListItem", Position: 1, Name: "State-Specific Divorce Forms", Item: r.site.BaseURL + "/"},
			{Type: "ListItem", Position: 2, Name: "All State Divorce Forms", Item: r.site.BaseURL + "/states/"},
			{Type: "ListItem", Position: 3, Name: p.Name + " Divorce Forms", Item: canonical},
		},
	}
	return marshalJSONLD(b)
}
