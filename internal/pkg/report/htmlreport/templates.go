package htmlreport

import "html/template"

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>semdiff report</title>
<style>
body { font-family: monospace; margin: 2em; }
h1 { font-size: 1.2em; }
table { border-collapse: collapse; width: 100%; }
td, th { border: 1px solid #ccc; padding: 4px 8px; text-align: left; }
.status-modified { color: #b8860b; }
.status-added { color: #2e8b57; }
.status-deleted { color: #b22222; }
.status-unchanged { color: #888; }
</style>
</head>
<body>
<h1>semdiff report</h1>
<p>unchanged: {{.Counts.Unchanged}} &middot; modified: {{.Counts.Modified}} &middot; added: {{.Counts.Added}} &middot; deleted: {{.Counts.Deleted}}</p>
<details><summary>directory tree</summary><pre>{{.Tree}}</pre></details>
{{range .Groups}}
<h2 class="status-{{.Status}}">{{.Status}} ({{len .Entries}})</h2>
<table>
<tr><th>path</th><th>differ</th><th>preview</th></tr>
{{range .Entries}}
<tr><td><a href="{{$.DetailsDir}}/{{.DetailFile}}">{{.Key}}</a></td><td>{{.DifferTag}}</td><td>{{.Preview}}</td></tr>
{{end}}
</table>
{{end}}
</body>
</html>
`))

var detailTemplate = template.Must(template.New("detail").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Key}} &mdash; semdiff</title>
<style>
body { font-family: monospace; margin: 2em; }
.line-unchanged { color: #333; }
.line-added { color: #2e8b57; background: #eaffea; }
.line-deleted { color: #b22222; background: #ffecec; }
img { max-width: 100%; border: 1px solid #ccc; margin: 4px 0; }
table { border-collapse: collapse; }
td, th { border: 1px solid #ccc; padding: 2px 6px; }
</style>
</head>
<body>
<p><a href="../{{.IndexFile}}">&larr; back to index</a></p>
<h1>{{.Key}}</h1>
<p>status: <strong>{{.Status}}</strong> &middot; differ: {{.DifferTag}}</p>
{{.Body}}
</body>
</html>
`))
