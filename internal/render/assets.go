package render

// Static assets regenerated on every run so the published tree is fully
// self-contained.

// StylesCSS is the site stylesheet.
const StylesCSS = `.wrap{max-width:1100px;margin:0 auto;padding:24px}.hdr,.ftr{padding:12px 24px;background:#0b1b34;color:#fff}.logo{font-weight:800;color:#ffd700;text-decoration:none}.search{width:100%;max-width:460px;margin-left:16px;padding:8px}.grid{display:grid;grid-template-columns:repeat(auto-fill,minmax(240px,1fr));gap:16px;margin:16px 0}.card{background:#fff;border:1px solid #e6e6e6;border-radius:16px;overflow:hidden}.card img{width:100%;height:160px;object-fit:cover;background:#f5f5f5}.card h3{font-size:16px;margin:12px}.meta{display:flex;justify-content:space-between;align-items:center;margin:0 12px 8px}.price{font-weight:700}.badge{background:#eef;border-radius:999px;padding:2px 8px;font-size:12px}.blurb{margin:0 12px 16px;color:#444}.hero{width:100%;max-width:520px;border-radius:16px;background:#f5f5f5}.pdp{display:grid;grid-template-columns:1fr;gap:24px}@media(min-width:900px){.pdp{grid-template-columns:1fr 1fr}}.btn{display:inline-block;padding:10px 16px;border-radius:12px;background:#ffd700;color:#0b1b34;font-weight:800;text-decoration:none;border:0;cursor:pointer;margin:8px 0}.state-nav a{margin-right:8px}.breadcrumb{font-size:14px;margin-bottom:16px}.state-intro p{max-width:720px}.section{margin:24px 0}.related-states ul{list-style:none;padding:0}body{font-family:system-ui,-apple-system,Segoe UI,Roboto,Arial,sans-serif}a{color:inherit;text-decoration:none}.card a:hover h3{text-decoration:underline}`

// PlaceholderSVG is the fallback cover image.
const PlaceholderSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="640" height="360">
  <rect width="100%" height="100%" fill="#f5f5f5"/>
  <text x="50%" y="50%" dominant-baseline="middle" text-anchor="middle"
        font-family="Arial,Helvetica,sans-serif" font-size="24" fill="#999">
    Cover image
  </text>
</svg>`
