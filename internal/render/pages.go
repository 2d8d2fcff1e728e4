package render

import (
	"fmt"
	"sort"
	"strings"

	"git.home.luguber.info/inful/informer/internal/catalog"
	"git.home.luguber.info/inful/informer/internal/slug"
)

// card renders one product card used by the home, category, and related grids.
func (r *Renderer) card(p catalog.Record) (string, error) {
	url, err := slug.ProductPath(p.SKU, p.Title)
	if err != nil {
		return "", err
	}
	cover := p.CoverImageURL
	if cover == "" {
		cover = "/placeholder.svg"
	}
	title := escapeAttr(Sanitize(p.Title))
	return fmt.Sprintf(`<article class="card">
  <a href="%s">
    <img src="%s" onerror="this.src='/placeholder.svg'" alt="%s">
    <h3>%s</h3>
    <div class="meta">
      <span class="price">%s</span>
      <span class="badge">%s</span>
    </div>
    <p class="blurb">%s</p>
  </a>
</article>`, url, escapeAttr(cover), title, title, p.PriceDisplay(), escapeAttr(Sanitize(p.State)), escapeAttr(Sanitize(p.ShortDescription))), nil
}

func (r *Renderer) grid(products []catalog.Record) (string, error) {
	var b strings.Builder
	for _, p := range products {
		c, err := r.card(p)
		if err != nil {
			return "", err
		}
		b.WriteString(c)
	}
	return b.String(), nil
}

// Home renders the landing page: hero, the first 12 product cards, and a
// link to the full category listing.
func (r *Renderer) Home(category string, products []catalog.Record) (string, error) {
	catURL, err := slug.CategoryPath(category)
	if err != nil {
		return "", err
	}
	featured := products
	if len(featured) > 12 {
		featured = featured[:12]
	}
	cards, err := r.grid(featured)
	if err != nil {
		return "", err
	}

	body := fmt.Sprintf(`
  <section class="hero"><h1>%s</h1><p>%s</p><ul id="searchResults"></ul></section>
  <section><h2>%s</h2><div class="grid">%s</div>
  <p><a class="more" href="%s">See all %s</a></p></section>`,
		escapeAttr(r.site.Title), escapeAttr(r.site.Tagline), escapeAttr(Sanitize(category)), cards, catURL, escapeAttr(Sanitize(category)))

	return r.shell(page{
		Title:     r.site.Title,
		Desc:      r.site.Tagline,
		Canonical: "/",
		Body:      body,
	}), nil
}

// Category renders the full category listing with a sorted state navigation.
func (r *Renderer) Category(category string, products []catalog.Record) (string, error) {
	statesSeen := map[string]struct{}{}
	var stateCodes []string
	for _, p := range products {
		if _, ok := statesSeen[p.State]; !ok {
			statesSeen[p.State] = struct{}{}
			stateCodes = append(stateCodes, p.State)
		}
	}
	sort.Strings(stateCodes)

	var nav []string
	for _, s := range stateCodes {
		u, err := slug.StateCategoryPath(category, s)
		if err != nil {
			return "", err
		}
		nav = append(nav, fmt.Sprintf(`<a href="%s">%s</a>`, u, escapeAttr(s)))
	}

	cards, err := r.grid(products)
	if err != nil {
		return "", err
	}
	canonical, err := slug.CategoryPath(category)
	if err != nil {
		return "", err
	}

	title := Sanitize(category)
	body := fmt.Sprintf(`<h1>%s</h1><nav class="state-nav">%s</nav><div class="grid">%s</div>`,
		escapeAttr(title), strings.Join(nav, " · "), cards)

	return r.shell(page{
		Title:     fmt.Sprintf("%s — %s", title, r.site.Title),
		Desc:      fmt.Sprintf("All %s.", strings.ToLower(title)),
		Canonical: canonical,
		Body:      body,
	}), nil
}

// StateCategory renders the jurisdiction-scoped category listing.
func (r *Renderer) StateCategory(category, state string, products []catalog.Record) (string, error) {
	cards, err := r.grid(products)
	if err != nil {
		return "", err
	}
	canonical, err := slug.StateCategoryPath(category, state)
	if err != nil {
		return "", err
	}

	title := Sanitize(category)
	body := fmt.Sprintf(`<h1>%s — %s</h1><div class="grid">%s</div>`, escapeAttr(title), escapeAttr(state), cards)

	return r.shell(page{
		Title:     fmt.Sprintf("%s %s — %s", state, title, r.site.Title),
		Desc:      fmt.Sprintf("%s for %s.", title, state),
		Canonical: canonical,
		Body:      body,
	}), nil
}

// Product renders the product detail page, including the long description
// (Markdown) and the related-products grid.
func (r *Renderer) Product(p catalog.Record, all []catalog.Record) (string, error) {
	canonical, err := slug.ProductPath(p.SKU, p.Title)
	if err != nil {
		return "", err
	}
	schema, err := r.productSchema(p, r.site.BaseURL+canonical)
	if err != nil {
		return "", err
	}

	var long strings.Builder
	if err := r.md.Convert([]byte(Sanitize(p.LongDescription)), &long); err != nil {
		return "", fmt.Errorf("render long description for %s: %w", p.SKU, err)
	}

	cover := p.CoverImageURL
	if cover == "" {
		cover = "/placeholder.svg"
	}
	title := Sanitize(p.Title)

	buy := fmt.Sprintf(`<form class="buy" method="post" action="/api/create-checkout-session">`+
		`<input type="hidden" name="sku" value="%s"><input type="hidden" name="state" value="%s">`+
		`<button class="btn" type="submit">Buy Now</button></form>`, escapeAttr(p.SKU), escapeAttr(p.State))

	body := fmt.Sprintf(`<article class="pdp">
      <img class="hero" src="%s" onerror="this.src='/placeholder.svg'" alt="%s">
      <div class="meta"><h1>%s</h1><div class="price">%s</div>%s
      <p class="short">%s</p><hr/><div class="long">%s</div></div></article>`,
		escapeAttr(cover), escapeAttr(title), escapeAttr(title), p.PriceDisplay(), buy,
		escapeAttr(Sanitize(p.ShortDescription)), long.String())

	if related := RelatedProducts(p, all); len(related) > 0 {
		cards, err := r.grid(related)
		if err != nil {
			return "", err
		}
		body += fmt.Sprintf(`
      <section><h2>Customers also bought</h2><div class="grid">%s</div></section>`, cards)
	}

	// Long-form source fields are truncated to their first sentence for the
	// meta description.
	desc := FirstSentence(p.ShortDescription)
	if desc == "" {
		desc = p.Title
	}

	return r.shell(page{
		Title:     fmt.Sprintf("%s — %s", title, r.site.Title),
		Desc:      desc,
		Canonical: canonical,
		Body:      body,
		JSONLD:    []string{schema},
	}), nil
}

// InfoPage renders a simple static page (refund policy, terms, contact).
// Info pages are published without a canonical link.
func (r *Renderer) InfoPage(title, body string) string {
	return r.shell(page{Title: fmt.Sprintf("%s — %s", title, r.site.Title), Body: body})
}

// RefundPolicy renders the refund policy page.
func (r *Renderer) RefundPolicy() string {
	return r.InfoPage("Refund Policy",
		"<h1>Refund Policy</h1><p>All sales are final for digital products. Refunds only for duplicate purchases, wrong file delivery, or technical issues on our end.</p>")
}

// Terms renders the terms page.
func (r *Renderer) Terms() string {
	return r.InfoPage("Terms",
		"<h1>Terms</h1><p>DIY legal kits; not a law firm. Use at your own discretion.</p>")
}

// Contact renders the contact page.
func (r *Renderer) Contact() string {
	return r.InfoPage("Contact",
		fmt.Sprintf("<h1>Contact</h1><p>Email: %s</p>", escapeAttr(r.site.ContactEmail)))
}

// Success renders the post-checkout landing page. Not listed in the sitemap.
func (r *Renderer) Success() string {
	return r.InfoPage("Payment Complete",
		"<h1>Payment Complete</h1><p>Thank you for your purchase. Check your email for your download link, or use the download button from your receipt.</p>")
}

// Cancel renders the abandoned-checkout landing page. Not listed in the sitemap.
func (r *Renderer) Cancel() string {
	return r.InfoPage("Checkout Canceled",
		"<h1>Checkout Canceled</h1><p>Your payment was not processed. Your kit is still available whenever you are ready.</p>")
}
