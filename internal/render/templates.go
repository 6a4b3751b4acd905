package render

// pageTemplate is the embedded Go html/template for the landing page.
// Section blocks are defined as named sub-templates and dispatched in
// the document's section order.
const pageTemplate = `{{- define "hero" -}}
<section class="hero"{{bgStyle .Doc.Hero.BGImageURL}}></section>
{{- end -}}

{{- define "comparison_top" -}}
<section class="comparison-top">
  <h2>{{inlineMD .Doc.ComparisonTop.Heading}}</h2>
  <div class="comp-grid">
  {{- range .Doc.ComparisonTop.Shops}}
    <div class="comp-card">
      {{if .LogoURL}}<img class="comp-logo" src="{{url .LogoURL}}" alt="{{.Name}}">{{end}}
      <h3>{{.Name}}</h3>
      <table class="comp-metrics">
      {{- range .Metrics}}
        <tr><th>{{.Label}}</th><td><span class="rating">{{ratingSymbol .Rating}}</span> {{.Value}}</td></tr>
      {{- end}}
      </table>
      <a class="btn btn-cta" href="{{.Link}}">{{.CTAText}}</a>
    </div>
  {{- end}}
  </div>
</section>
{{- end -}}

{{- define "recommend_section" -}}
<section class="recommend">
  <div class="recommend-inner">{{markdown .Doc.RecommendSection.Heading}}</div>
</section>
{{- end -}}

{{- define "detail_table" -}}
<section class="detail-table">
  <table>
    <thead>
      <tr><th></th>{{range .Doc.DetailTable.Columns}}<th>{{.}}</th>{{end}}</tr>
    </thead>
    <tbody>
    {{- range .Doc.DetailTable.Rows}}
      <tr><th>{{.Label}}</th>{{range .Cells}}<td>{{nl2br .}}</td>{{end}}</tr>
    {{- end}}
    </tbody>
  </table>
  {{if .Doc.DetailTable.FooterNote}}<p class="table-note">{{.Doc.DetailTable.FooterNote}}</p>{{end}}
</section>
{{- end -}}

{{- define "shops" -}}
<section class="shops">
{{- range .Doc.Shops}}
  <article class="shop-card" id="{{.ID}}">
    <div class="shop-rank">No.{{.Rank}}</div>
    <header class="shop-header">
      {{if .LogoURL}}<img class="shop-logo" src="{{url .LogoURL}}" alt="{{.Name}}">{{end}}
      <h3>{{.Name}}</h3>
      <p class="catch">{{.CatchCopy}}</p>
      {{if .SubCatch}}<p class="sub-catch">{{nl2br .SubCatch}}</p>{{end}}
    </header>
    {{- if and .Visibility.Info .Info}}
    <dl class="shop-info">
    {{- range .Info}}
      <dt>{{.Label}}</dt><dd>{{.Value}}</dd>
    {{- end}}
    </dl>
    {{- end}}
    {{- if and .Visibility.Features .Features}}
    <div class="shop-features">
    {{- range .Features}}
      <div class="feature">
        <h4>{{.Title}}</h4>
        {{if .ImageURL}}<img class="feature-img" src="{{url .ImageURL}}" alt="{{.Title}}">{{end}}
        <div class="feature-body">{{markdown .Text}}</div>
      </div>
    {{- end}}
    </div>
    {{- end}}
    {{- if and .Visibility.Reviews .Reviews}}
    <div class="shop-reviews">
    {{- range .Reviews}}
      <blockquote>{{nl2br .}}</blockquote>
    {{- end}}
    </div>
    {{- end}}
    {{- if and .Visibility.Campaign .Campaign.Text}}
    <div class="shop-campaign">
      {{if .Campaign.ImageURL}}<img class="campaign-img" src="{{url .Campaign.ImageURL}}" alt="{{.Campaign.Text}}">{{end}}
      <p class="campaign-text">{{.Campaign.Text}}</p>
      {{if .Campaign.SubText}}<p class="campaign-sub">{{.Campaign.SubText}}</p>{{end}}
    </div>
    {{- end}}
    {{- range .ExtraImages}}
    {{if .}}<img class="shop-extra" src="{{url .}}" alt="">{{end}}
    {{- end}}
    {{- if .Visibility.CTA}}
    <div class="shop-cta">
      <a class="btn btn-cta" href="{{.Link}}">{{.CTAText}}</a>
      {{if .CTASub}}<p class="cta-sub">{{.CTASub}}</p>{{end}}
    </div>
    {{- end}}
  </article>
{{- end}}
</section>
{{- end -}}

{{- define "flow" -}}
<section class="flow">
  <h2>{{.Doc.Flow.Heading}}</h2>
  <ol class="flow-steps">
  {{- range .Doc.Flow.Steps}}
    <li class="flow-step">
      {{if eq .IconType "image"}}{{if .IconImageURL}}<img class="step-icon" src="{{url .IconImageURL}}" alt="">{{end}}{{else}}<span class="step-icon">{{.Icon}}</span>{{end}}
      <h4>{{.Title}}</h4>
      <p>{{.Text}}</p>
    </li>
  {{- end}}
  </ol>
</section>
{{- end -}}

{{- define "summary_table" -}}
<section class="summary-table">
  <h2>{{.Doc.SummaryTable.Heading}}</h2>
  <table>
    <thead>
      <tr><th>Shop</th><th>Features</th><th>Scope</th><th>Speed</th><th></th></tr>
    </thead>
    <tbody>
    {{- range .Doc.SummaryTable.Shops}}
      <tr>
        <th>{{.Name}}</th>
        <td>{{nl2br .Features}}</td>
        <td>{{nl2br .Scope}}</td>
        <td>{{.Speed}}</td>
        <td><a class="btn btn-sm" href="{{.Link}}">{{.CTAText}}</a></td>
      </tr>
    {{- end}}
    </tbody>
  </table>
</section>
{{- end -}}

{{- define "footer" -}}
<footer class="site-footer">
  <div class="footer-links">
    <ul>
    {{- range .Doc.Footer.ShopLinks}}
      <li><a href="{{.Link}}">{{.Name}}</a></li>
    {{- end}}
    </ul>
    <ul>
    {{- range .Doc.Footer.ColumnLinks}}
      <li><a href="{{.Link}}">{{.Name}}</a></li>
    {{- end}}
    </ul>
  </div>
  <p class="copyright">{{.Doc.Footer.Copyright}}</p>
</footer>
{{- end -}}
<!DOCTYPE html>
<html lang="ja">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Doc.Site.Title}}</title>
  {{if not .Export}}<base target="_blank">{{end}}
  <style>
    :root {
      --main: {{.Doc.Colors.Main}};
      --sub: {{.Doc.Colors.Sub}};
      --text: {{.Doc.Colors.Text}};
      --bg: {{.Doc.Colors.BG}};
      --accent: {{.Doc.Colors.Accent}};
    }
    * { box-sizing: border-box; margin: 0; padding: 0; }
    body { font-family: -apple-system, "Hiragino Kaku Gothic ProN", "Noto Sans JP", sans-serif;
      color: var(--text); background: var(--bg); line-height: 1.7; }
    section, footer { padding: 32px 16px; max-width: 780px; margin: 0 auto; }
    h2 { color: var(--main); text-align: center; margin-bottom: 20px; font-size: 1.4rem; }
    .site-header { background: var(--main); color: #fff; padding: 10px 16px;
      display: flex; align-items: center; gap: 12px; }
    .site-header .logo-img { height: 32px; }
    .site-header .logo-text { font-weight: 700; font-size: 1.1rem; }
    .site-header .subtitle { font-size: 0.8rem; opacity: 0.85; }
    .ad-label { font-size: 0.7rem; color: #888; text-align: right; padding: 2px 8px; }
    .hero { min-height: 280px; background-size: cover; background-position: center;
      background-color: var(--main); max-width: none; padding: 0; }
    .comp-grid { display: flex; gap: 12px; flex-wrap: wrap; justify-content: center; }
    .comp-card { border: 2px solid var(--main); border-radius: 8px; padding: 14px;
      flex: 1 1 200px; max-width: 240px; text-align: center; }
    .comp-logo { max-height: 40px; margin-bottom: 6px; }
    .comp-metrics { width: 100%; font-size: 0.85rem; margin: 8px 0; border-collapse: collapse; }
    .comp-metrics th { text-align: left; color: #666; font-weight: 400; padding: 3px 0; }
    .comp-metrics td { text-align: right; padding: 3px 0; }
    .rating { color: var(--sub); font-weight: 700; }
    .btn { display: inline-block; padding: 10px 20px; border-radius: 24px;
      text-decoration: none; font-weight: 700; }
    .btn-cta { background: var(--sub); color: #fff; box-shadow: 0 3px 0 rgba(0,0,0,0.15); }
    .btn-sm { background: var(--sub); color: #fff; padding: 6px 12px; font-size: 0.8rem; }
    .recommend { background: var(--accent); border-radius: 8px; color: var(--main);
      text-align: center; font-size: 1.05rem; }
    .detail-table table, .summary-table table { width: 100%; border-collapse: collapse; font-size: 0.85rem; }
    .detail-table th, .detail-table td, .summary-table th, .summary-table td {
      border: 1px solid #ddd; padding: 8px; text-align: center; }
    .detail-table thead th, .summary-table thead th { background: var(--main); color: #fff; }
    .table-note { font-size: 0.7rem; color: #888; margin-top: 6px; }
    .shop-card { border: 2px solid var(--main); border-radius: 10px; margin-bottom: 28px;
      padding: 18px; position: relative; }
    .shop-rank { position: absolute; top: -14px; left: 14px; background: var(--accent);
      color: var(--main); font-weight: 700; padding: 2px 14px; border-radius: 14px; }
    .shop-logo { max-height: 48px; }
    .catch { font-size: 1.15rem; font-weight: 700; color: var(--sub); }
    .sub-catch { font-size: 0.9rem; color: #555; }
    .shop-info { display: grid; grid-template-columns: auto 1fr; gap: 4px 14px;
      background: #f7f7f7; border-radius: 6px; padding: 12px; margin: 12px 0; font-size: 0.9rem; }
    .shop-info dt { font-weight: 700; color: var(--main); }
    .feature { margin: 10px 0; }
    .feature h4 { color: var(--main); }
    .feature-img, .campaign-img, .shop-extra { max-width: 100%; border-radius: 6px; margin: 6px 0; }
    .shop-reviews blockquote { background: #f7f7f7; border-left: 4px solid var(--accent);
      padding: 10px 12px; margin: 8px 0; font-size: 0.9rem; }
    .shop-campaign { background: var(--accent); border-radius: 8px; padding: 12px;
      text-align: center; margin: 12px 0; }
    .campaign-text { font-weight: 700; color: var(--main); }
    .campaign-sub { font-size: 0.8rem; }
    .shop-cta { text-align: center; margin-top: 14px; }
    .cta-sub { font-size: 0.8rem; color: #888; margin-top: 4px; }
    .flow-steps { list-style: none; display: flex; gap: 12px; flex-wrap: wrap; justify-content: center; }
    .flow-step { flex: 1 1 150px; max-width: 180px; text-align: center;
      border: 1px solid #ddd; border-radius: 8px; padding: 14px; }
    .step-icon { font-size: 2rem; display: inline-block; max-height: 48px; }
    .site-footer { background: var(--main); color: #fff; max-width: none; }
    .footer-links { display: flex; gap: 40px; justify-content: center; max-width: 780px;
      margin: 0 auto 16px; }
    .footer-links ul { list-style: none; }
    .footer-links a { color: #fff; font-size: 0.85rem; }
    .copyright { text-align: center; font-size: 0.75rem; opacity: 0.8; }
  </style>
</head>
<body>
  <p class="ad-label">{{.Doc.Site.AdLabel}}</p>
  <header class="site-header">
    {{if .Doc.Site.LogoURL}}<img class="logo-img" src="{{url .Doc.Site.LogoURL}}" alt="{{.Doc.Site.LogoText}}">{{end}}
    <span class="logo-text">{{.Doc.Site.LogoText}}</span>
    <span class="subtitle">{{.Doc.Site.Subtitle}}</span>
  </header>
{{- range .Doc.SectionOrder}}
{{- if $.Doc.SectionVisible .}}
{{- if eq . "hero"}}{{template "hero" $}}
{{- else if eq . "comparison_top"}}{{template "comparison_top" $}}
{{- else if eq . "recommend_section"}}{{template "recommend_section" $}}
{{- else if eq . "detail_table"}}{{template "detail_table" $}}
{{- else if eq . "shops"}}{{template "shops" $}}
{{- else if eq . "flow"}}{{template "flow" $}}
{{- else if eq . "summary_table"}}{{template "summary_table" $}}
{{- else if eq . "footer"}}{{template "footer" $}}
{{- end}}
{{- end}}
{{- end}}
</body>
</html>`
