package site

// layoutTemplates holds the page layout, the shared partials and one
// "region/<name>" template per region.
const layoutTemplates = `
{{define "layout"}}<!DOCTYPE html>
<html lang="{{.Lang}}" data-theme="{{.Theme}}"{{if not .AllowToggle}} data-theme-locked{{end}}>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{if .Title}}{{.Title}} · {{end}}{{.SiteTitle}}</title>
  {{with .Description}}<meta name="description" content="{{.}}">{{end}}
  {{with .OGImage}}<meta property="og:image" content="{{.}}">{{end}}
  {{with .Favicon}}<link rel="icon" href="{{.}}">{{end}}
  <link rel="stylesheet" href="{{.Root}}assets/style.css">
  {{if .Highlight}}<link rel="stylesheet" href="{{.Root}}assets/highlight.css">{{end}}
</head>
<body data-root="{{.Root}}" data-offset="{{.HeaderOffset}}"{{if .LiveReload}} data-livereload{{end}}>
  <header class="top-bar">
    <a class="site-title" href="{{.Root}}index.html">{{.SiteTitle}}</a>
    {{range .Header}}{{.}}{{end}}
    {{if .AllowToggle}}<button class="theme-toggle" id="theme-toggle" type="button" aria-label="Toggle theme">
      <svg class="sun-icon" width="20" height="20" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2"><circle cx="12" cy="12" r="5"/><line x1="12" y1="1" x2="12" y2="3"/><line x1="12" y1="21" x2="12" y2="23"/><line x1="1" y1="12" x2="3" y2="12"/><line x1="21" y1="12" x2="23" y2="12"/></svg>
      <svg class="moon-icon" width="20" height="20" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2"><path d="M21 12.79A9 9 0 1 1 11.21 3 7 7 0 0 0 21 12.79z"/></svg>
    </button>{{end}}
  </header>
  <div class="layout">
    <aside class="rail">{{range .Rail}}{{.}}{{end}}</aside>
    <main class="content">
      {{with .Heading}}<h1 class="page-title">{{.}}</h1>{{end}}
      {{range .Main}}{{.}}{{end}}
    </main>
    {{with .Side}}<aside class="side">{{range .}}{{.}}{{end}}</aside>{{end}}
  </div>
  <footer class="site-footer">{{with .LastUpdated}}<p>Last updated {{.}}</p>{{end}}</footer>
  <script src="{{.Root}}assets/script.js"></script>
</body>
</html>
{{end}}

{{define "forwarder"}}<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
  <meta charset="UTF-8">
  <title>{{.SiteTitle}}</title>
  <link rel="stylesheet" href="assets/style.css">
</head>
<body data-root="" data-forward="{{json .Posts}}">
  <main class="content">
    <p id="forward-status" class="region-error" hidden></p>
    <noscript><ul>{{range $name, $page := .Posts}}<li><a href="{{$page}}">{{$name}}</a></li>{{end}}</ul></noscript>
  </main>
  <script src="assets/script.js"></script>
</body>
</html>
{{end}}

{{define "email"}}<p class="email">{{if .Obfuscated}}<a class="email-link" href="#" data-user="{{.User}}" data-domain="{{.Domain}}">{{.Display}}</a>{{else}}<a class="email-link" href="mailto:{{.Address}}">{{.Display}}</a>{{end}}{{if .CopyButton}} <button type="button" class="copy-email">Copy</button>{{end}}</p>{{end}}

{{define "links"}}<ul class="link-list">{{range .}}<li><a href="{{.URL}}" target="_blank" rel="noopener" data-type="{{.Type}}">{{.Label}}</a></li>{{end}}</ul>{{end}}

{{define "outline"}}<ol class="outline">{{range .Entries}}<li class="depth-{{.Depth}}"><a href="#{{.ID}}" data-target="{{.ID}}"><span class="num">{{.Number}}</span> {{.Text}}</a></li>{{end}}</ol>{{end}}

{{define "region/profile"}}<section id="profile" class="profile">
  {{with .Headshot}}<img class="headshot headshot-{{.Shape}}" src="{{.Src}}" alt="{{.Alt}}" data-fallback>{{end}}
  <div class="profile-text">
    <h1>{{.Name}}{{with .Native}} <span class="native-name">{{.}}</span>{{end}}</h1>
    {{with .Tagline}}<p class="tagline">{{.}}</p>{{end}}
    {{with .Affiliation}}<p class="affiliation">{{.}}</p>{{end}}
    {{with .Location}}<p class="location">{{.}}</p>{{end}}
    {{with .Email}}{{template "email" .}}{{end}}
    {{range .Bio}}<p class="bio">{{.}}</p>{{end}}
  </div>
</section>{{end}}

{{define "region/profile-rail"}}<div id="profile-rail" class="profile-rail">
  <a class="rail-home" href="{{.Home}}">{{with .Headshot}}<img class="headshot headshot-{{.Shape}}" src="{{.Src}}" alt="{{.Alt}}" data-fallback>{{end}}<span class="rail-name">{{.Name}}</span></a>
  {{with .Tagline}}<p class="rail-tagline">{{.}}</p>{{end}}
  {{with .Links}}{{template "links" .}}{{end}}
</div>{{end}}

{{define "region/profile-stats-global"}}<dl id="profile-stats-global" class="stats">{{range .}}<div class="stat"><dt>{{.Label}}</dt><dd>{{.Value}}</dd></div>{{end}}</dl>{{end}}

{{define "region/site-nav"}}<nav id="site-nav" class="site-nav"><ul>{{range .}}<li><a href="{{.Href}}"{{if .Active}} class="active" aria-current="page"{{end}}>{{.Label}}</a></li>{{end}}</ul></nav>{{end}}

{{define "region/news"}}<section id="news" class="section">
  <h2>{{.Label}}</h2>
  <ul class="news">{{range .Items}}<li><time>{{.Date}}</time> <span>{{.Text}}</span></li>{{end}}</ul>
</section>{{end}}

{{define "region/interests"}}<section id="interests" class="section">
  <h2>{{.Label}}</h2>
  <ul class="chips">{{range .Items}}<li class="chip">{{.}}</li>{{end}}</ul>
</section>{{end}}

{{define "region/highlights"}}<section id="highlights" class="section">
  <h2>{{.Label}}</h2>
  <div class="highlights">{{range .Items}}<div class="highlight">{{if .URL}}<a href="{{.URL}}" target="_blank" rel="noopener">{{end}}<span class="highlight-value">{{.Value}}</span><span class="highlight-label">{{.Label}}</span>{{if .URL}}</a>{{end}}</div>{{end}}</div>
</section>{{end}}

{{define "region/projects"}}<section id="projects" class="section">
  <h2>{{.Label}}</h2>
  {{with .Tags}}<div class="chips" id="project-tags"><button type="button" class="chip active" data-tag="">All</button>{{range .}}<button type="button" class="chip" data-tag="{{.}}">{{.}}</button>{{end}}</div>{{end}}
  <div class="cards">{{range .Projects}}<article class="card project{{if .Featured}} featured{{end}}" data-tags="{{.TagAttr}}">
    {{with .Image}}<img class="card-image" src="{{.}}" alt="" loading="lazy" data-fallback>{{end}}
    <h3>{{.Title}}</h3>
    <p>{{.Summary}}</p>
    {{with .Tags}}<ul class="chips small">{{range .}}<li class="chip">{{.}}</li>{{end}}</ul>{{end}}
    {{with .Links}}<p class="action-links">{{range .}}<a href="{{.URL}}" target="_blank" rel="noopener">{{.Label}}</a>{{end}}</p>{{end}}
  </article>{{end}}</div>
</section>{{end}}

{{define "region/experience"}}<section id="experience" class="section">
  <h2>{{.Label}}</h2>
  <ol class="timeline">{{range .Items}}<li class="timeline-item" data-category="{{.Category}}">
    <p class="timeline-range">{{.Range}}</p>
    <h3>{{.Role}}</h3>
    <p class="timeline-org">{{if .OrgURL}}<a href="{{.OrgURL}}" target="_blank" rel="noopener">{{.Org}}</a>{{else}}{{.Org}}{{end}}{{with .Location}} · {{.}}{{end}}</p>
    {{with .Bullets}}<ul>{{range .}}<li>{{.}}</li>{{end}}</ul>{{end}}
  </li>{{end}}</ol>
</section>{{end}}

{{define "region/cv"}}<section id="cv" class="section cv">
  <h2>{{.Label}}</h2>
  {{with .Preview}}<img class="cv-preview" src="{{.}}" alt="" loading="lazy" data-fallback>{{end}}
  <p><a class="button" href="{{.URL}}" download>{{.Button}}</a>{{with .Size}} <span class="muted">({{.}})</span>{{end}}</p>
</section>{{end}}

{{define "region/contact"}}<section id="contact" class="section">
  <h2>{{.Label}}</h2>
  {{with .Availability}}<p>{{.}}</p>{{end}}
  {{with .Email}}{{template "email" .}}{{end}}
  {{with .Links}}{{template "links" .}}{{end}}
</section>{{end}}

{{define "pub-card"}}<li class="pub-card{{if .Featured}} featured{{end}}" id="pub-{{.ID}}" data-index="{{.Index}}" data-year="{{.Year}}" data-month="{{.Month}}" data-type="{{.Type}}" data-title="{{.Title}}" data-search="{{.Search}}"{{if .Featured}} data-featured{{end}}>
  {{with .Thumbnail}}<img class="pub-thumb" src="{{.}}" alt="" loading="lazy" data-fallback>{{end}}
  <div class="pub-body">
    <h3 class="pub-title">{{if .URL}}<a href="{{.URL}}" target="_blank" rel="noopener">{{.Title}}</a>{{else}}{{.Title}}{{end}}</h3>
    <p class="pub-authors">{{.Authors}}</p>
    <p class="pub-venue">{{.Venue}}{{with .MonthName}} · {{.}}{{end}} {{.Year}}</p>
    {{with .Badges}}<p class="badges">{{range .}}<span class="badge {{.Class}}">{{.Label}}</span>{{end}}</p>{{end}}
    <p class="action-links">{{range .Links}}<a href="{{.URL}}" target="_blank" rel="noopener">{{.Label}}</a>{{end}}{{if .Bibtex}}<button type="button" class="bibtex-btn" data-id="{{.ID}}" data-bibtex="{{.Bibtex}}">BibTeX</button>{{end}}</p>
    {{with .Abstract}}<details class="pub-abstract"><summary>Abstract</summary><p>{{.}}</p></details>{{end}}
  </div>
</li>{{end}}

{{define "region/publications"}}<section id="publications" class="publications" data-sort="{{.Sort}}"{{if .Collapse}} data-collapse{{end}}>
  <div class="filters">
    <input type="search" id="pub-search" placeholder="Search publications" autocomplete="off">
    <select id="pub-sort" aria-label="Sort">
      <option value="year_desc"{{if eq .Sort "year_desc"}} selected{{end}}>Newest first</option>
      <option value="year_asc"{{if eq .Sort "year_asc"}} selected{{end}}>Oldest first</option>
      <option value="title_az"{{if eq .Sort "title_az"}} selected{{end}}>Title A–Z</option>
    </select>
    <label class="check"><input type="checkbox" id="pub-featured"> Featured only</label>
    <div class="chips" id="pub-years">{{range .Years}}<button type="button" class="chip" data-year="{{.}}">{{.}}</button>{{end}}</div>
    {{with .Types}}<div class="chips" id="pub-types">{{range .}}<button type="button" class="chip" data-type="{{.}}">{{label .}}</button>{{end}}</div>{{end}}
  </div>
  <p class="muted" id="pub-count" data-total="{{.Total}}">{{.Total}} publications</p>
  <div id="pub-list">{{range .Groups}}
    <div class="year-group{{if not .Expanded}} collapsed{{end}}" data-year="{{.Year}}">
      <h2 class="year-heading" id="{{.Anchor}}"><button type="button" class="year-toggle" aria-expanded="{{.Expanded}}">{{.Year}} <span class="count">{{.Count}}</span></button></h2>
      <ol class="pub-items">{{range .Cards}}{{template "pub-card" .}}{{end}}</ol>
    </div>{{end}}
  </div>
  <p class="muted" id="pub-empty" hidden>No publications match the current filters.</p>
</section>{{end}}

{{define "region/pub-navigation"}}<nav id="pub-navigation" class="quick-nav" data-offset="{{.Offset}}"><h2>Years</h2>{{template "outline" .}}</nav>{{end}}

{{define "region/post-navigation"}}<nav id="post-navigation" class="quick-nav" data-offset="{{.Offset}}"><h2>On this page</h2>{{template "outline" .}}</nav>{{end}}

{{define "region/awards"}}<section id="awards" class="section">
  <ul class="awards">{{range .Items}}<li class="award">
    <span class="award-year">{{.Year}}</span>
    <div><h3>{{if .URL}}<a href="{{.URL}}" target="_blank" rel="noopener">{{.Title}}</a>{{else}}{{.Title}}{{end}}</h3>
    {{with .Org}}<p class="muted">{{.}}</p>{{end}}{{with .Details}}<p>{{.}}</p>{{end}}</div>
  </li>{{end}}</ul>
</section>{{end}}

{{define "region/blog-list"}}<section class="blog">
  <div class="filters">
    <input type="search" id="blog-search" placeholder="Search posts" autocomplete="off">
    <div class="view-toggle" role="group" aria-label="Layout">
      <button type="button" data-view="grid">Grid</button><button type="button" data-view="list">List</button>
    </div>
  </div>
  <div id="blog-list" class="blog-list" data-view="grid">{{range .}}{{$card := .}}<article class="post-card" data-category="{{.Category}}" data-search="{{.Search}}">
    {{with .Cover}}<a href="{{$card.URL}}"><img class="post-cover" src="{{.}}" alt="" loading="lazy" data-fallback></a>{{end}}
    <div class="post-card-body">
      <h3><a href="{{.URL}}">{{.Title}}</a></h3>
      <p class="post-meta">{{with .Date}}<time>{{.}}</time>{{end}} <span class="badge">{{.Category}}</span></p>
      {{with .Summary}}<p>{{.}}</p>{{end}}
      {{with .Tags}}<ul class="chips small">{{range .}}<li class="chip">{{.}}</li>{{end}}</ul>{{end}}
    </div>
  </article>{{end}}</div>
  <p class="muted" id="blog-empty" hidden>No posts match the current filters.</p>
</section>{{end}}

{{define "region/blog-categories"}}<div id="blog-categories" class="chips"><button type="button" class="chip active" data-category="">All</button>{{range .}}<button type="button" class="chip" data-category="{{.Name}}">{{.Name}} <span class="count">{{.Count}}</span></button>{{end}}</div>{{end}}

{{define "region/blog-navigation"}}<nav id="blog-navigation" class="panel" data-state="{{.Start}}" data-transitions="{{json .Transitions}}">
  <div class="panel-bar">
    <button type="button" class="panel-back" hidden>Back</button>
    <span class="panel-title">Posts</span>
    <button type="button" class="panel-categories">Categories</button>
  </div>
  {{.Tree}}
</nav>{{end}}

{{define "region/post"}}<article id="post" class="post">
  <p class="post-back"><a href="{{.Back}}">← All posts</a></p>
  <header>
    <h1 class="post-title">{{.Title}}</h1>
    {{with .Meta}}<p class="post-meta">{{.}}</p>{{end}}
    <p class="post-category"><span class="badge">{{.Category}}</span></p>
  </header>
  {{with .Cover}}<img class="post-cover" src="{{.}}" alt="" data-fallback>{{end}}
  <div class="post-body">{{.Body}}</div>
</article>{{end}}

{{define "region/gallery"}}<div id="gallery" class="gallery">{{range .}}
  <figure class="gallery-row side-{{.Side}}{{if .Folder}} folder{{end}}" data-items="{{json .Items}}">
    <button type="button" class="gallery-open" aria-label="Open {{.Title}}">
      {{if eq .Cover.Type "video"}}<video src="{{.Cover.Src}}" muted preload="metadata" data-fallback></video>{{else}}<img src="{{.Cover.Src}}" alt="{{.Cover.Alt}}" loading="lazy" data-fallback>{{end}}
      {{with .More}}<span class="more-badge">{{.}}</span>{{end}}
    </button>
    <figcaption>{{with .Title}}<h3>{{.}}</h3>{{end}}{{with .Text}}<p>{{.}}</p>{{end}}</figcaption>
  </figure>{{end}}
</div>{{end}}
`

// cssContent is the stylesheet shared by every page.
const cssContent = `/* ============ CSS Variables ============ */
:root {
  --bg: #ffffff;
  --bg-secondary: #f8f9fa;
  --text: #212529;
  --text-secondary: #495057;
  --text-muted: #868e96;
  --border: #dee2e6;
  --accent: #228be6;
  --accent-hover: #1c7ed6;
  --accent-light: #e7f5ff;
  --code-bg: #f1f3f5;
  --mark: #fff3bf;
  --rail-width: 260px;
  --side-width: 240px;
  --content-max-width: 820px;
  --header-height: 50px;
  --shadow: 0 1px 3px rgba(0,0,0,0.08);
  --shadow-lg: 0 4px 12px rgba(0,0,0,0.1);
}

[data-theme="dark"] {
  --bg: #1a1b26;
  --bg-secondary: #1f2030;
  --text: #c0caf5;
  --text-secondary: #a9b1d6;
  --text-muted: #565f89;
  --border: #292e42;
  --accent: #7aa2f7;
  --accent-hover: #89b4fa;
  --accent-light: #1a1b2e;
  --code-bg: #1f2030;
  --mark: #3d3a1f;
  --shadow: 0 1px 3px rgba(0,0,0,0.3);
  --shadow-lg: 0 4px 12px rgba(0,0,0,0.4);
}

/* ============ Reset & Base ============ */
*, *::before, *::after { box-sizing: border-box; margin: 0; padding: 0; }

html { font-size: 16px; scroll-behavior: smooth; }

body {
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
  color: var(--text);
  background: var(--bg);
  line-height: 1.7;
}

a { color: var(--accent); text-decoration: none; }
a:hover { color: var(--accent-hover); text-decoration: underline; }
ul, ol { padding-left: 1.4em; }
img, video { max-width: 100%; }
mark { background: var(--mark); color: inherit; }
.muted { color: var(--text-muted); }
[hidden] { display: none !important; }

/* ============ Top bar ============ */
.top-bar {
  display: flex;
  align-items: center;
  gap: 24px;
  height: var(--header-height);
  padding: 0 24px;
  border-bottom: 1px solid var(--border);
  background: var(--bg);
  position: sticky;
  top: 0;
  z-index: 50;
}

.site-title { font-weight: 700; color: var(--text); }
.site-nav ul { display: flex; gap: 16px; list-style: none; padding: 0; }
.site-nav a { color: var(--text-secondary); }
.site-nav a.active { color: var(--accent); font-weight: 600; }

.theme-toggle {
  margin-left: auto;
  background: none;
  border: 1px solid var(--border);
  border-radius: 6px;
  color: var(--text);
  cursor: pointer;
  padding: 6px;
  display: flex;
}
.theme-toggle .moon-icon { display: none; }
[data-theme="dark"] .theme-toggle .sun-icon { display: none; }
[data-theme="dark"] .theme-toggle .moon-icon { display: block; }

/* ============ Layout ============ */
.layout {
  display: grid;
  grid-template-columns: var(--rail-width) minmax(0, 1fr) auto;
  gap: 32px;
  max-width: calc(var(--rail-width) + var(--content-max-width) + var(--side-width) + 96px);
  margin: 0 auto;
  padding: 32px 24px;
}

.rail, .side { position: sticky; top: calc(var(--header-height) + 16px); align-self: start; }
.side { width: var(--side-width); }
.page-title { font-size: 2rem; margin-bottom: 24px; }
.section { margin-bottom: 40px; }
.section h2 { font-size: 1.3rem; margin-bottom: 12px; border-bottom: 1px solid var(--border); padding-bottom: 4px; }
.site-footer { text-align: center; color: var(--text-muted); font-size: 0.85rem; padding: 24px; }

.region-error {
  border: 1px dashed var(--border);
  border-radius: 6px;
  padding: 12px 16px;
  color: var(--text-muted);
  background: var(--bg-secondary);
}

/* ============ Profile ============ */
.profile { display: flex; gap: 24px; margin-bottom: 40px; }
.headshot { width: 160px; height: 160px; object-fit: cover; }
.headshot-circle { border-radius: 50%; }
.headshot-rounded { border-radius: 12px; }
.profile h1 { font-size: 2rem; line-height: 1.2; }
.native-name { color: var(--text-muted); font-weight: 400; }
.tagline { font-size: 1.1rem; color: var(--text-secondary); }
.bio { margin-top: 12px; }
.copy-email, .button, .bibtex-btn {
  border: 1px solid var(--border);
  background: var(--bg-secondary);
  color: var(--text);
  border-radius: 6px;
  padding: 2px 10px;
  cursor: pointer;
  font-size: 0.85rem;
}
.button { display: inline-block; padding: 6px 16px; }

.profile-rail { text-align: center; }
.profile-rail .headshot { width: 120px; height: 120px; display: block; margin: 0 auto 8px; }
.rail-name { display: block; font-weight: 700; color: var(--text); }
.rail-tagline { color: var(--text-muted); font-size: 0.9rem; }
.link-list { list-style: none; padding: 0; margin: 12px 0; }
.link-list li { margin: 4px 0; }

.stats { display: grid; grid-template-columns: 1fr 1fr; gap: 8px; margin-top: 16px; }
.stat { background: var(--bg-secondary); border-radius: 6px; padding: 8px; text-align: center; }
.stat dt { font-size: 0.75rem; color: var(--text-muted); }
.stat dd { font-weight: 700; }

/* ============ Chips, badges, cards ============ */
.chips { display: flex; flex-wrap: wrap; gap: 6px; list-style: none; padding: 0; }
.chip {
  border: 1px solid var(--border);
  border-radius: 999px;
  padding: 2px 12px;
  font-size: 0.85rem;
  background: var(--bg);
  color: var(--text-secondary);
}
button.chip { cursor: pointer; }
.chip.active { background: var(--accent); border-color: var(--accent); color: #fff; }
.chips.small .chip { font-size: 0.75rem; padding: 0 8px; }
.count { color: var(--text-muted); font-size: 0.8em; }

.badges { display: flex; flex-wrap: wrap; gap: 6px; margin: 4px 0; }
.badge {
  font-size: 0.72rem;
  text-transform: uppercase;
  letter-spacing: 0.03em;
  border-radius: 4px;
  padding: 1px 6px;
  background: var(--accent-light);
  color: var(--accent);
}
.badge-featured { background: #fff4e6; color: #e8590c; }
.badge-award { background: #ebfbee; color: #2b8a3e; }
.badge-status { background: var(--bg-secondary); color: var(--text-secondary); }

.cards { display: grid; grid-template-columns: repeat(auto-fill, minmax(240px, 1fr)); gap: 16px; margin-top: 12px; }
.card { border: 1px solid var(--border); border-radius: 8px; padding: 16px; box-shadow: var(--shadow); }
.card.featured { border-color: var(--accent); }
.card-image { border-radius: 6px; margin-bottom: 8px; }
.action-links { display: flex; flex-wrap: wrap; gap: 10px; font-size: 0.85rem; margin-top: 4px; }
.highlights { display: grid; grid-template-columns: repeat(auto-fill, minmax(140px, 1fr)); gap: 12px; }
.highlight { background: var(--bg-secondary); border-radius: 8px; padding: 12px; text-align: center; }
.highlight-value { display: block; font-size: 1.5rem; font-weight: 700; }
.highlight-label { color: var(--text-muted); font-size: 0.85rem; }
.news { list-style: none; padding: 0; }
.news time { color: var(--text-muted); font-variant-numeric: tabular-nums; margin-right: 8px; }

.timeline { list-style: none; padding: 0; border-left: 2px solid var(--border); }
.timeline-item { padding: 0 0 20px 20px; position: relative; }
.timeline-item::before {
  content: "";
  position: absolute;
  left: -7px;
  top: 8px;
  width: 12px;
  height: 12px;
  border-radius: 50%;
  background: var(--accent);
}
.timeline-range { color: var(--text-muted); font-size: 0.85rem; }

.awards { list-style: none; padding: 0; }
.award { display: flex; gap: 16px; padding: 12px 0; border-bottom: 1px solid var(--border); }
.award-year { color: var(--text-muted); min-width: 3em; }

/* ============ Publications ============ */
.filters { display: flex; flex-wrap: wrap; gap: 10px; align-items: center; margin-bottom: 16px; }
.filters input[type="search"], .filters select {
  padding: 6px 12px;
  border: 1px solid var(--border);
  border-radius: 6px;
  background: var(--bg);
  color: var(--text);
}
.filters input[type="search"] { flex: 1; min-width: 200px; }
.year-heading { margin: 24px 0 8px; font-size: 1.2rem; }
.year-toggle { background: none; border: none; color: var(--text); font: inherit; cursor: pointer; }
.year-toggle::before { content: "\25BE"; display: inline-block; margin-right: 6px; transition: transform 0.15s; }
.year-group.collapsed .year-toggle::before { transform: rotate(-90deg); }
.year-group.collapsed .pub-items { display: none; }
.pub-items { list-style: none; padding: 0; }
.pub-card { display: flex; gap: 16px; padding: 12px 0; border-bottom: 1px solid var(--border); }
.pub-card.featured { border-left: 3px solid var(--accent); padding-left: 12px; }
.pub-thumb { width: 120px; height: 80px; object-fit: cover; border-radius: 4px; }
.pub-title { font-size: 1rem; }
.pub-authors, .pub-venue { font-size: 0.9rem; color: var(--text-secondary); }
.pub-abstract summary { cursor: pointer; font-size: 0.85rem; color: var(--text-muted); }

/* ============ Quick navigation ============ */
.quick-nav h2 { font-size: 0.8rem; text-transform: uppercase; color: var(--text-muted); margin-bottom: 8px; }
.outline { list-style: none; padding: 0; font-size: 0.85rem; }
.outline a { display: block; padding: 2px 8px; color: var(--text-secondary); border-left: 2px solid transparent; }
.outline a.active { color: var(--accent); border-left-color: var(--accent); font-weight: 600; }
.outline .depth-1 { padding-left: 12px; }
.outline .depth-2 { padding-left: 24px; }
.outline .num { color: var(--text-muted); margin-right: 4px; }

/* ============ Blog ============ */
.blog-list[data-view="grid"] { display: grid; grid-template-columns: repeat(auto-fill, minmax(240px, 1fr)); gap: 16px; }
.blog-list[data-view="list"] .post-card { display: flex; gap: 16px; }
.blog-list[data-view="list"] .post-cover { width: 160px; }
.post-card { border: 1px solid var(--border); border-radius: 8px; overflow: hidden; margin-bottom: 16px; }
.post-card-body { padding: 12px 16px; }
.post-cover { width: 100%; object-fit: cover; }
.view-toggle button { border: 1px solid var(--border); background: var(--bg); color: var(--text); padding: 4px 10px; cursor: pointer; }
.view-toggle button.active { background: var(--accent); color: #fff; }

.panel { border: 1px solid var(--border); border-radius: 8px; padding: 8px; font-size: 0.9rem; }
.panel-bar { display: flex; align-items: center; gap: 8px; margin-bottom: 8px; }
.panel-title { font-weight: 600; flex: 1; }
.panel-bar button { background: none; border: 1px solid var(--border); border-radius: 4px; color: var(--text); cursor: pointer; padding: 0 8px; }
.panel ul, .panel ol { list-style: none; padding: 0; }
.panel li button { background: none; border: none; color: var(--accent); cursor: pointer; font: inherit; }
.panel-post.active a { font-weight: 600; }

.post-title { font-size: 2rem; line-height: 1.25; }
.post-meta { color: var(--text-muted); font-size: 0.9rem; }
.post-body { margin-top: 24px; }
.post-body h1, .post-body h2, .post-body h3 { margin: 1.4em 0 0.5em; scroll-margin-top: calc(var(--header-height) + 8px); }
.post-body p, .post-body ul, .post-body pre { margin-bottom: 1em; }
.post-body code { background: var(--code-bg); border-radius: 4px; padding: 0.1em 0.3em; font-size: 0.9em; }
.post-body pre { background: var(--code-bg); padding: 12px 16px; border-radius: 6px; overflow-x: auto; }
.post-body pre code { background: none; padding: 0; }

/* ============ Gallery & lightbox ============ */
.gallery-row { display: flex; gap: 24px; align-items: center; margin-bottom: 32px; }
.gallery-row.side-right { flex-direction: row-reverse; }
.gallery-open { position: relative; border: none; background: none; cursor: zoom-in; flex: 0 0 50%; }
.gallery-open img, .gallery-open video { border-radius: 8px; display: block; }
.more-badge {
  position: absolute;
  right: 8px;
  bottom: 8px;
  background: rgba(0,0,0,0.6);
  color: #fff;
  border-radius: 4px;
  padding: 2px 8px;
  font-size: 0.85rem;
}

.overlay {
  position: fixed;
  inset: 0;
  background: rgba(0,0,0,0.75);
  display: flex;
  align-items: center;
  justify-content: center;
  z-index: 200;
}
.modal { background: var(--bg); border-radius: 8px; padding: 20px; width: min(720px, 92vw); box-shadow: var(--shadow-lg); }
.modal pre { background: var(--code-bg); padding: 12px; border-radius: 6px; max-height: 60vh; overflow: auto; font-size: 0.8rem; white-space: pre-wrap; }
.modal-actions { display: flex; justify-content: flex-end; gap: 8px; margin-top: 12px; }
.modal-actions button { border: 1px solid var(--border); background: var(--bg-secondary); color: var(--text); border-radius: 6px; padding: 4px 12px; cursor: pointer; }
.lightbox-stage { max-width: 90vw; max-height: 80vh; text-align: center; color: #fff; }
.lightbox-stage img, .lightbox-stage video { max-height: 72vh; }
.lightbox button { position: absolute; background: none; border: none; color: #fff; font-size: 2rem; cursor: pointer; }
.lightbox .lb-prev { left: 16px; }
.lightbox .lb-next { right: 16px; }
.lightbox .lb-close { top: 12px; right: 16px; }
.lb-counter { font-size: 0.85rem; opacity: 0.8; }

.media-fallback {
  display: flex;
  align-items: center;
  justify-content: center;
  background: var(--bg-secondary);
  color: var(--text-muted);
  border: 1px dashed var(--border);
  border-radius: 6px;
  min-height: 80px;
  font-size: 0.8rem;
}

@media (max-width: 960px) {
  .layout { grid-template-columns: minmax(0, 1fr); }
  .rail, .side { position: static; width: auto; }
  .profile { flex-direction: column; }
  .gallery-row, .gallery-row.side-right { flex-direction: column; }
}
`

// jsContent is the client script. It only adds behaviour to markup the
// generator already produced.
const jsContent = `(function() {
  "use strict";

  var html = document.documentElement;
  var body = document.body;
  var offsetDefault = parseInt(body.getAttribute("data-offset"), 10) || 0;

  function store(key, value) {
    try {
      if (value === undefined) return localStorage.getItem(key);
      localStorage.setItem(key, value);
    } catch (e) { return null; }
    return value;
  }

  // ===== Theme =====
  if (!html.hasAttribute("data-theme-locked")) {
    var storedTheme = store("theme");
    if (storedTheme === "light" || storedTheme === "dark") {
      html.setAttribute("data-theme", storedTheme);
    }
  }
  var themeToggle = document.getElementById("theme-toggle");
  if (themeToggle) {
    themeToggle.addEventListener("click", function() {
      var next = html.getAttribute("data-theme") === "dark" ? "light" : "dark";
      html.setAttribute("data-theme", next);
      store("theme", next);
    });
  }

  // ===== Media fallback =====
  var PLACEHOLDER = "data:image/svg+xml;charset=utf-8," + encodeURIComponent(
    '<svg xmlns="http://www.w3.org/2000/svg" width="320" height="200" viewBox="0 0 320 200">' +
    '<rect width="320" height="200" fill="#e9ecef"/>' +
    '<path d="M110 140l35-45 25 30 20-20 30 35z" fill="#adb5bd"/>' +
    '<circle cx="205" cy="75" r="12" fill="#adb5bd"/></svg>');

  function degrade(el) {
    if (el.getAttribute("data-failed")) return;
    el.setAttribute("data-failed", "1");
    if (el.tagName === "IMG") {
      el.src = PLACEHOLDER;
      el.classList.add("media-fallback");
      return;
    }
    var box = document.createElement("div");
    box.className = "media-fallback";
    box.textContent = "Media unavailable";
    el.parentNode.replaceChild(box, el);
  }

  document.addEventListener("error", function(ev) {
    var el = ev.target;
    if (el && el.hasAttribute && el.hasAttribute("data-fallback")) degrade(el);
  }, true);
  document.querySelectorAll("img[data-fallback]").forEach(function(img) {
    if (img.complete && img.naturalWidth === 0 && img.getAttribute("src")) degrade(img);
  });

  // ===== Email =====
  document.querySelectorAll(".email-link[data-user]").forEach(function(a) {
    a.addEventListener("click", function(ev) {
      ev.preventDefault();
      window.location.href = "mailto:" + a.getAttribute("data-user") + "@" + a.getAttribute("data-domain");
    });
  });
  document.querySelectorAll(".copy-email").forEach(function(btn) {
    btn.addEventListener("click", function() {
      var a = btn.parentNode.querySelector(".email-link");
      var addr = a.hasAttribute("data-user")
        ? a.getAttribute("data-user") + "@" + a.getAttribute("data-domain")
        : a.getAttribute("href").replace(/^mailto:/, "");
      copyText(addr, btn);
    });
  });

  function copyText(text, btn) {
    var done = function() {
      var old = btn.textContent;
      btn.textContent = "Copied";
      setTimeout(function() { btn.textContent = old; }, 1500);
    };
    if (navigator.clipboard && navigator.clipboard.writeText) {
      navigator.clipboard.writeText(text).then(done, function() {});
      return;
    }
    var ta = document.createElement("textarea");
    ta.value = text;
    body.appendChild(ta);
    ta.select();
    try { document.execCommand("copy"); done(); } catch (e) {}
    body.removeChild(ta);
  }

  // ===== Overlays =====
  var openOverlay = null;

  function makeOverlay(cls) {
    var ov = document.createElement("div");
    ov.className = "overlay " + cls;
    ov.hidden = true;
    ov.addEventListener("click", function(ev) { if (ev.target === ov) closeOverlay(); });
    body.appendChild(ov);
    return ov;
  }
  function showOverlay(ov) { ov.hidden = false; openOverlay = ov; }
  function closeOverlay() {
    if (!openOverlay) return;
    openOverlay.hidden = true;
    var v = openOverlay.querySelector("video");
    if (v) v.pause();
    openOverlay = null;
  }

  // ===== BibTeX modal =====
  var bibModal = null;
  var bibCurrent = { id: "", text: "" };

  function bibtexModal() {
    if (bibModal) return bibModal;
    bibModal = makeOverlay("bibtex");
    bibModal.innerHTML = '<div class="modal" role="dialog" aria-modal="true" aria-label="BibTeX">' +
      '<pre class="bibtex-text"></pre><div class="modal-actions">' +
      '<button type="button" data-act="copy">Copy</button>' +
      '<button type="button" data-act="download">Download</button>' +
      '<button type="button" data-act="close">Close</button></div></div>';
    bibModal.querySelector("[data-act=copy]").addEventListener("click", function(ev) {
      copyText(bibCurrent.text, ev.currentTarget);
    });
    bibModal.querySelector("[data-act=download]").addEventListener("click", function() {
      var blob = new Blob([bibCurrent.text], { type: "application/x-bibtex" });
      var url = URL.createObjectURL(blob);
      var a = document.createElement("a");
      a.href = url;
      a.download = (bibCurrent.id || "citation") + ".bib";
      body.appendChild(a);
      a.click();
      body.removeChild(a);
      setTimeout(function() { URL.revokeObjectURL(url); }, 0);
    });
    bibModal.querySelector("[data-act=close]").addEventListener("click", closeOverlay);
    return bibModal;
  }

  document.querySelectorAll(".bibtex-btn").forEach(function(btn) {
    btn.addEventListener("click", function() {
      var m = bibtexModal();
      bibCurrent = { id: btn.getAttribute("data-id"), text: btn.getAttribute("data-bibtex") };
      m.querySelector(".bibtex-text").textContent = bibCurrent.text;
      showOverlay(m);
    });
  });

  // ===== Lightbox =====
  var lightbox = null;
  var lbItems = [];
  var lbIndex = 0;

  function lightboxEl() {
    if (lightbox) return lightbox;
    lightbox = makeOverlay("lightbox");
    lightbox.innerHTML = '<button type="button" class="lb-close" aria-label="Close">×</button>' +
      '<button type="button" class="lb-prev" aria-label="Previous">‹</button>' +
      '<div class="lightbox-stage"></div>' +
      '<button type="button" class="lb-next" aria-label="Next">›</button>';
    lightbox.querySelector(".lb-close").addEventListener("click", closeOverlay);
    lightbox.querySelector(".lb-prev").addEventListener("click", function() { stepLightbox(-1); });
    lightbox.querySelector(".lb-next").addEventListener("click", function() { stepLightbox(1); });
    return lightbox;
  }

  function renderLightbox() {
    var stage = lightbox.querySelector(".lightbox-stage");
    var item = lbItems[lbIndex];
    stage.innerHTML = "";
    var media;
    if (item.type === "video") {
      media = document.createElement("video");
      media.controls = true;
    } else {
      media = document.createElement("img");
      media.alt = item.alt || "";
    }
    media.setAttribute("data-fallback", "");
    media.src = item.src;
    stage.appendChild(media);
    if (item.title || item.description) {
      var cap = document.createElement("p");
      cap.textContent = [item.title, item.description].filter(Boolean).join(" — ");
      stage.appendChild(cap);
    }
    var multi = lbItems.length > 1;
    lightbox.querySelector(".lb-prev").hidden = !multi;
    lightbox.querySelector(".lb-next").hidden = !multi;
    if (multi) {
      var counter = document.createElement("p");
      counter.className = "lb-counter";
      counter.textContent = (lbIndex + 1) + " / " + lbItems.length;
      stage.appendChild(counter);
    }
  }

  function stepLightbox(delta) {
    if (lbItems.length < 2) return;
    lbIndex = (lbIndex + delta + lbItems.length) % lbItems.length;
    renderLightbox();
  }

  document.querySelectorAll(".gallery-row").forEach(function(row) {
    row.querySelector(".gallery-open").addEventListener("click", function() {
      try { lbItems = JSON.parse(row.getAttribute("data-items")) || []; } catch (e) { lbItems = []; }
      if (!lbItems.length) return;
      lbIndex = 0;
      showOverlay(lightboxEl());
      renderLightbox();
    });
  });

  document.addEventListener("keydown", function(ev) {
    if (!openOverlay) return;
    if (ev.key === "Escape") closeOverlay();
    if (openOverlay === lightbox) {
      if (ev.key === "ArrowLeft") stepLightbox(-1);
      if (ev.key === "ArrowRight") stepLightbox(1);
    }
  });

  // ===== Chips =====
  function chipSet(container, attr, multi, onChange) {
    if (!container) return function() { return []; };
    var chips = container.querySelectorAll("[" + attr + "]");
    chips.forEach(function(chip) {
      chip.addEventListener("click", function() {
        var value = chip.getAttribute(attr);
        if (!multi || value === "") {
          chips.forEach(function(c) { c.classList.toggle("active", c === chip); });
        } else {
          chip.classList.toggle("active");
        }
        onChange();
      });
    });
    return function() {
      var out = [];
      chips.forEach(function(c) {
        var v = c.getAttribute(attr);
        if (c.classList.contains("active") && v !== "") out.push(v);
      });
      return out;
    };
  }

  // ===== Publications =====
  var pubList = document.getElementById("pub-list");
  if (pubList) {
    var pubSearch = document.getElementById("pub-search");
    var pubSort = document.getElementById("pub-sort");
    var pubFeatured = document.getElementById("pub-featured");
    var pubCount = document.getElementById("pub-count");
    var pubEmpty = document.getElementById("pub-empty");
    var years = chipSet(document.getElementById("pub-years"), "data-year", true, applyPubs);
    var types = chipSet(document.getElementById("pub-types"), "data-type", true, applyPubs);
    var collator = window.Intl ? new Intl.Collator("en", { sensitivity: "base" }) : null;

    function month(card) { return parseInt(card.getAttribute("data-month"), 10) || 0; }
    function index(card) { return parseInt(card.getAttribute("data-index"), 10) || 0; }

    function compare(mode) {
      return function(a, b) {
        if (mode === "title_az") {
          var ta = a.getAttribute("data-title"), tb = b.getAttribute("data-title");
          var c = collator ? collator.compare(ta, tb) : (ta.toLowerCase() < tb.toLowerCase() ? -1 : ta.toLowerCase() > tb.toLowerCase() ? 1 : 0);
          if (c !== 0) return c;
        } else if (month(a) && month(b) && month(a) !== month(b)) {
          return mode === "year_asc" ? month(a) - month(b) : month(b) - month(a);
        }
        return index(a) - index(b);
      };
    }

    function applyPubs() {
      var q = (pubSearch.value || "").trim().toLowerCase();
      var ys = years(), ts = types();
      var featuredOnly = pubFeatured.checked;
      var filtering = q !== "" || ys.length > 0 || ts.length > 0 || featuredOnly;
      var mode = pubSort.value;
      var shown = 0;

      pubList.querySelectorAll(".year-group").forEach(function(group) {
        var list = group.querySelector(".pub-items");
        var cards = Array.prototype.slice.call(list.children);
        cards.sort(compare(mode)).forEach(function(card) { list.appendChild(card); });
        var visible = 0;
        cards.forEach(function(card) {
          var ok = (!q || card.getAttribute("data-search").indexOf(q) !== -1) &&
            (!ys.length || ys.indexOf(card.getAttribute("data-year")) !== -1) &&
            (!ts.length || ts.indexOf(card.getAttribute("data-type")) !== -1) &&
            (!featuredOnly || card.hasAttribute("data-featured"));
          card.hidden = !ok;
          if (ok) visible++;
        });
        group.hidden = visible === 0;
        if (filtering && visible > 0) group.classList.remove("collapsed");
        shown += visible;
      });

      var total = pubCount.getAttribute("data-total");
      pubCount.textContent = filtering ? shown + " of " + total + " publications" : total + " publications";
      pubEmpty.hidden = shown !== 0;
    }

    pubList.querySelectorAll(".year-toggle").forEach(function(btn) {
      btn.addEventListener("click", function() {
        var group = btn.closest(".year-group");
        var collapsed = group.classList.toggle("collapsed");
        btn.setAttribute("aria-expanded", String(!collapsed));
      });
    });
    pubSearch.addEventListener("input", applyPubs);
    pubSort.addEventListener("change", applyPubs);
    pubFeatured.addEventListener("change", applyPubs);
  }

  // ===== Projects =====
  var projectTags = document.getElementById("project-tags");
  if (projectTags) {
    var selectedTags = chipSet(projectTags, "data-tag", true, function() {
      var tags = selectedTags();
      document.querySelectorAll(".project").forEach(function(card) {
        var own = (card.getAttribute("data-tags") || "").split("|");
        card.hidden = tags.length > 0 && !tags.some(function(t) { return own.indexOf(t) !== -1; });
      });
    });
  }

  // ===== Blog list =====
  var blogList = document.getElementById("blog-list");
  if (blogList) {
    var blogSearch = document.getElementById("blog-search");
    var blogEmpty = document.getElementById("blog-empty");
    var category = chipSet(document.getElementById("blog-categories"), "data-category", false, applyPosts);

    function applyPosts() {
      var q = (blogSearch.value || "").trim().toLowerCase();
      var cat = category()[0] || "";
      var shown = 0;
      blogList.querySelectorAll(".post-card").forEach(function(card) {
        var ok = (!q || card.getAttribute("data-search").indexOf(q) !== -1) &&
          (!cat || card.getAttribute("data-category") === cat);
        card.hidden = !ok;
        if (ok) shown++;
      });
      blogEmpty.hidden = shown !== 0;
    }

    function setView(view) {
      if (view !== "grid" && view !== "list") view = "grid";
      blogList.setAttribute("data-view", view);
      document.querySelectorAll(".view-toggle [data-view]").forEach(function(b) {
        b.classList.toggle("active", b.getAttribute("data-view") === view);
      });
      store("blog_view", view);
    }

    document.querySelectorAll(".view-toggle [data-view]").forEach(function(b) {
      b.addEventListener("click", function() { setView(b.getAttribute("data-view")); });
    });
    setView(store("blog_view") || "grid");
    blogSearch.addEventListener("input", applyPosts);
  }

  // ===== Quick navigation and scroll-spy =====
  document.querySelectorAll(".quick-nav").forEach(function(navEl) {
    var offset = parseInt(navEl.getAttribute("data-offset"), 10);
    if (isNaN(offset)) offset = offsetDefault;
    var links = Array.prototype.slice.call(navEl.querySelectorAll("a[data-target]"));
    var targets = links.map(function(a) { return document.getElementById(a.getAttribute("data-target")); });

    links.forEach(function(a, i) {
      a.addEventListener("click", function(ev) {
        var t = targets[i];
        if (!t) return;
        ev.preventDefault();
        var top = t.getBoundingClientRect().top + window.pageYOffset;
        window.scrollTo({ top: Math.max(0, top - offset), behavior: "smooth" });
        if (history.replaceState) history.replaceState(null, "", "#" + t.id);
      });
    });

    // Last target whose top is at or above the scroll line, or -1.
    function activeIndex(tops, y) {
      var lo = 0, hi = tops.length;
      while (lo < hi) {
        var mid = (lo + hi) >> 1;
        if (tops[mid] <= y) lo = mid + 1; else hi = mid;
      }
      return lo - 1;
    }

    var ticking = false;
    function spy() {
      ticking = false;
      var tops = targets.map(function(t) {
        return t && t.offsetParent !== null ? t.getBoundingClientRect().top + window.pageYOffset : Infinity;
      });
      var idx = activeIndex(tops, window.pageYOffset + offset + 1);
      links.forEach(function(a, i) { a.classList.toggle("active", i === idx); });
    }
    window.addEventListener("scroll", function() {
      if (!ticking) { ticking = true; window.requestAnimationFrame(spy); }
    }, { passive: true });
    spy();
  });

  // ===== Blog panel =====
  var panel = document.getElementById("blog-navigation");
  if (panel) {
    var transitions = [];
    try { transitions = JSON.parse(panel.getAttribute("data-transitions")) || []; } catch (e) {}
    var trail = [];
    var state = { name: panel.getAttribute("data-state") || "posts", category: "", post: "" };
    var backBtn = panel.querySelector(".panel-back");
    var title = panel.querySelector(".panel-title");
    var catBtn = panel.querySelector(".panel-categories");

    function next(event) {
      for (var i = 0; i < transitions.length; i++) {
        if (transitions[i].from === state.name && transitions[i].event === event) return transitions[i].to;
      }
      return null;
    }

    function fire(event, arg) {
      var to = next(event);
      if (!to) return false;
      trail.push({ name: state.name, category: state.category, post: state.post });
      if (event === "select_category") state.category = arg;
      if (event === "select_post") state.post = arg;
      state.name = to;
      paint();
      return true;
    }

    function back() {
      if (!trail.length) return;
      state = trail.pop();
      paint();
    }

    function paint() {
      panel.setAttribute("data-state", state.name);
      panel.querySelectorAll(".panel-pane").forEach(function(p) {
        p.hidden = p.getAttribute("data-pane") !== state.name;
      });
      panel.querySelectorAll(".panel-post").forEach(function(li) {
        li.hidden = state.category !== "" && li.getAttribute("data-category") !== state.category;
      });
      panel.querySelectorAll(".panel-headers").forEach(function(ol) {
        ol.hidden = ol.getAttribute("data-post") !== state.post;
      });
      backBtn.hidden = trail.length === 0;
      catBtn.hidden = state.name !== "posts";
      title.textContent = state.name === "categories" ? "Categories"
        : state.name === "headers" ? "Contents"
        : (state.category || "Posts");
    }

    backBtn.addEventListener("click", back);
    catBtn.addEventListener("click", function() { fire("show_categories"); });
    panel.querySelectorAll(".panel-category").forEach(function(li) {
      li.querySelector("button").addEventListener("click", function() {
        fire("select_category", li.getAttribute("data-category"));
      });
    });
    panel.querySelectorAll(".panel-post").forEach(function(li) {
      var post = li.getAttribute("data-post");
      if (!panel.querySelector('.panel-headers[data-post="' + post + '"]')) return;
      li.querySelector("a").addEventListener("click", function(ev) {
        if (ev.metaKey || ev.ctrlKey) return;
        ev.preventDefault();
        fire("select_post", post);
      });
    });
    paint();
  }

  // ===== Legacy blog-post.html?file= links =====
  if (body.hasAttribute("data-forward")) {
    var status = document.getElementById("forward-status");
    var pages = {};
    try { pages = JSON.parse(body.getAttribute("data-forward")) || {}; } catch (e) {}
    var file = new URLSearchParams(window.location.search).get("file") || "";
    var fail = function(msg) { status.textContent = msg; status.hidden = false; };
    if (!file || file.indexOf("..") !== -1 || file.charAt(0) === "/" || file.indexOf("\\") !== -1 || !/\.md$/.test(file)) {
      fail("Invalid post name");
    } else if (!pages[file]) {
      fail("Failed to load post");
    } else {
      window.location.replace(pages[file] + window.location.hash);
    }
  }

  // ===== Live reload =====
  if (body.hasAttribute("data-livereload") && window.WebSocket) {
    (function connect() {
      var proto = window.location.protocol === "https:" ? "wss:" : "ws:";
      var ws = new WebSocket(proto + "//" + window.location.host + "/livereload");
      ws.onmessage = function(ev) { if (ev.data === "reload") window.location.reload(); };
      ws.onclose = function() { setTimeout(connect, 1000); };
    })();
  }
})();
`
