package view

import (
	"html/template"

	"github.com/wadjakorntonsri/weblinks/pkg/core/domain"
)

var templates = template.Must(template.New("page").Funcs(template.FuncMap{
	"joinTags": domain.JoinTags,
}).Parse(pageHTML))

func init() {
	template.Must(templates.New("table").Parse(tableHTML))
}

const tableHTML = `<table class="table table-striped table-hover">
<caption>Results</caption>
<thead><tr><th>Title</th><th>Author</th><th>Tags</th><th>Comments</th><th>Edit</th><th>Delete</th></tr></thead>
<tbody>
{{- range .}}
<tr data-key="{{.ID}}"><td><a href="{{.URL}}" target="_blank">{{.Title}}</a></td><td>{{.Author}}</td><td>{{joinTags .Tags}}</td><td>{{.Comments}}</td><td><a class="btn btn-primary btn-sm edit" href="/links/{{.ID}}/edit">Edit</a></td><td><a class="btn btn-danger btn-sm delete" href="/links/{{.ID}}/delete">Delete</a></td></tr>
{{- end}}
</tbody>
</table>`

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="utf-8" />
	<meta name="viewport" content="width=device-width, initial-scale=1" />
	<title>Weblinks</title>
	<style>
		body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif; margin: 24px; }
		nav, section { margin-bottom: 18px; }
		nav form { display: inline-block; margin-left: 12px; }
		table { border-collapse: collapse; width: 100%; }
		th, td { border-bottom: 1px solid #ddd; padding: 6px 8px; text-align: left; }
		label { display: block; margin: 6px 0; }
	</style>
</head>
<body>
<header>
	<h1>Weblinks</h1>
	<p id="linksCount">{{.Page.Status}}</p>
</header>
<nav>
	<a id="addBtn" href="/links/new">Add</a>
	<a id="getAllBtn" href="/links">Get All</a>
	<form method="get" action="/links">
		<select id="authorSelect" name="author">
		{{- range .Page.Authors}}
			<option value="{{.}}"{{if and (eq $.Page.Filter.Index "author") (eq $.Page.Filter.Value .)}} selected{{end}}>{{.}}</option>
		{{- end}}
		</select>
		<button type="submit">By author</button>
	</form>
	<form method="get" action="/links">
		<select id="tagSelect" name="tag">
		{{- range .Page.Tags}}
			<option value="{{.}}"{{if and (eq $.Page.Filter.Index "tags") (eq $.Page.Filter.Value .)}} selected{{end}}>{{.}}</option>
		{{- end}}
		</select>
		<button type="submit">By tag</button>
	</form>
</nav>
{{- with .Page.Confirm}}
<section id="alertModal">
	<p id="alertText" data-id="{{.ID}}">{{.Message}}</p>
	<form method="post" action="/links/{{.ID}}/delete">
		<button id="deleteBtn" type="submit">Delete</button>
		<a href="/links">Cancel</a>
	</form>
</section>
{{- end}}
<section id="addEdit">
	<form id="input" method="post" action="/links">
		<input type="hidden" id="id" name="id" value="{{.Form.ID}}" />
		<label>Title <input id="title" name="title" value="{{.Form.Title}}" required /></label>
		<label>URL <input id="url" name="url" value="{{.Form.URL}}" /></label>
		<label>Author <input id="author" name="author" value="{{.Form.Author}}" /></label>
		<label>Tags <input id="tags" name="tags" value="{{.Form.Tags}}" placeholder="comma, separated" /></label>
		<label>Comments <textarea id="comments" name="comments">{{.Form.Comments}}</textarea></label>
		<button id="saveBtn" type="submit">Save</button>
	</form>
</section>
<main id="output">
{{template "table" .Page.Links}}
</main>
</body>
</html>
`
