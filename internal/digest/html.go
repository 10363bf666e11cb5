package digest

import (
	"fmt"
	"html"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/wyndham/grant-radar/internal/models"
)

// snippetPolicy strips every tag so listing HTML degrades to plain text in
// the email body.
var snippetPolicy = bluemonday.StrictPolicy()

const snippetMaxLen = 160

// itemView is one rendered list entry.
type itemView struct {
	Title        string
	URL          string
	Type         string
	Jurisdiction string
	Close        string
	Snippet      string
}

type digestView struct {
	Council     string
	WindowDays  int
	NewItems    []itemView
	ClosingSoon []itemView
}

var digestTmpl = template.Must(template.New("digest").Parse(`<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <style>
      body { font-family: -apple-system, BlinkMacSystemFont, Segoe UI, Roboto, Arial, sans-serif; }
      .h { margin: 0 0 4px 0; }
      .sub { color: #444; margin: 0 0 16px 0; }
      .sec h3 { margin: 20px 0 6px 0; }
      ul { margin-top: 6px; }
      li { margin-bottom: 6px; line-height: 1.3; }
      .muted { color: #6b7280; font-size: 12px; }
    </style>
  </head>
  <body>
    <h2 class="h">{{.Council}} — Grants &amp; Tenders Weekly Digest</h2>
    <p class="sub">Auto-generated summary of new and closing opportunities.</p>

    <div class="sec">
      <h3>New this week</h3>
      {{if .NewItems}}<ul>
      {{range .NewItems}}<li><a href="{{.URL}}">{{.Title}}</a> — <i>{{.Type}}</i>, {{.Jurisdiction}} — close {{.Close}}{{if .Snippet}}<br /><span class="muted">{{.Snippet}}</span>{{end}}</li>
      {{end}}</ul>{{else}}<p class="muted">No new items detected this week.</p>{{end}}
    </div>

    <div class="sec">
      <h3>Closing soon (&le; {{.WindowDays}} days)</h3>
      {{if .ClosingSoon}}<ul>
      {{range .ClosingSoon}}<li><a href="{{.URL}}">{{.Title}}</a> — <i>{{.Type}}</i>, {{.Jurisdiction}} — close {{.Close}}{{if .Snippet}}<br /><span class="muted">{{.Snippet}}</span>{{end}}</li>
      {{end}}</ul>{{else}}<p class="muted">No items closing in the selected window.</p>{{end}}
    </div>

    <p class="muted">Check details at the source link before applying. This radar aggregates public listings; dates and amounts may change.</p>
  </body>
</html>
`))

// HTML renders the digest email body.
func (d Digest) HTML() (string, error) {
	view := digestView{
		Council:     d.Council,
		WindowDays:  d.WindowDays,
		NewItems:    itemViews(d.NewItems, d.Limit),
		ClosingSoon: itemViews(d.ClosingSoon, d.Limit),
	}
	var buf strings.Builder
	if err := digestTmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("rendering digest: %w", err)
	}
	return buf.String(), nil
}

func itemViews(items []models.Opportunity, limit int) []itemView {
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	out := make([]itemView, 0, len(items))
	for _, o := range items {
		out = append(out, itemView{
			Title:        orDefault(o.Title, "Untitled"),
			URL:          o.URL,
			Type:         orDefault(o.Type, "opportunity"),
			Jurisdiction: orDefault(o.Jurisdiction, "—"),
			Close:        orDefault(o.CloseDate, "?"),
			Snippet:      snippet(o.Description),
		})
	}
	return out
}

// snippet reduces a listing description, possibly HTML, to a short plain
// text line. The sanitizer entity-escapes its output, so the entities are
// unescaped here and the template stays the sole escaper.
func snippet(description string) string {
	text := html.UnescapeString(snippetPolicy.Sanitize(description))
	text = strings.Join(strings.Fields(text), " ")
	if len(text) <= snippetMaxLen {
		return text
	}
	return text[:snippetMaxLen-3] + "..."
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
