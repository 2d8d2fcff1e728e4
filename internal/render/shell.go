package render

import (
	"fmt"
	"strings"
)

// page composes the shared document shell around an entity body. canonical
// is a root-relative path ("" for pages without a stable published path);
// jsonld blocks are embedded verbatim as application/ld+json scripts.
type page struct {
	Title     string
	Desc      string
	Canonical string
	Body      string
	JSONLD    []string
}

func (r *Renderer) shell(p page) string {
	var b strings.Builder
	b.WriteString("<!doctype html><html lang=\"en\">\n<head><meta charset=\"utf-8\"><meta name=\"viewport\" content=\"width=device-width,initial-scale=1\">\n")
	fmt.Fprintf(&b, "<title>%s</title><meta name=\"description\" content=\"%s\">\n", escapeAttr(Sanitize(p.Title)), escapeAttr(Sanitize(p.Desc)))
	if p.Canonical != "" {
		fmt.Fprintf(&b, "<link rel=\"canonical\" href=\"%s%s\">\n", r.site.BaseURL, p.Canonical)
	}
	b.WriteString("<link rel=\"stylesheet\" href=\"/styles.css\"></head>\n<body>\n")
	fmt.Fprintf(&b, "<header class=\"hdr\"><a class=\"logo\" href=\"/\">%s</a>\n", escapeAttr(r.site.Title))
	b.WriteString("<input class=\"search\" id=\"q\" placeholder=\"Search kits (state, tags, title)\"/></header>\n")
	fmt.Fprintf(&b, "<main class=\"wrap\">%s</main>\n", p.Body)
	b.WriteString("<footer class=\"ftr\"><a href=\"/refund-policy.html\">Refund Policy</a> · <a href=\"/terms.html\">Terms</a> · <a href=\"/contact.html\">Contact</a></footer>\n")
	b.WriteString(searchScript)
	for _, block := range p.JSONLD {
		fmt.Fprintf(&b, "\n<script type=\"application/ld+json\">\n%s\n</script>", block)
	}
	b.WriteString("\n</body></html>\n")
	return b.String()
}

// searchScript wires the header search box to the generated search index for
// linear client-side substring filtering.
const searchScript = `<script>
fetch('/search-index.json').then(r=>r.json()).then(data=>{
 const q=document.getElementById('q'); if(!q)return;
 q.addEventListener('input',()=>{
  const v=q.value.toLowerCase();
  const hits=data.filter(d=> (d.title+' '+d.state+' '+(d.tags||'')).toLowerCase().includes(v));
  const list=document.getElementById('searchResults'); if(!list)return;
  list.innerHTML=hits.slice(0,40).map(h=>` + "`" + `<li><a href="${h.url}">${h.title}</a> — $${h.price}</li>` + "`" + `).join('');
 });
});
</script>`
