package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	notices "github.com/bezalel-media-core/crosspost/service/notices"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const TEMPLATE_POST_CONTENT = "content-rendered-post"

// PostContent feeds the crosspost content template.
type PostContent struct {
	Title     string
	Content   template.HTML // author html after AutoParagraph
	CrossLink bool
	SiteName  string
	Permalink string
}

// Renderer produces html fragments from the named templates under templates/.
type Renderer struct {
	templates *template.Template
}

func NewRenderer() (*Renderer, error) {
	t, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{templates: t}, nil
}

func (r *Renderer) Render(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

// RenderPostContent builds the html body sent to Medium.
func (r *Renderer) RenderPostContent(title string, body string, siteName string, permalink string) (string, error) {
	return r.Render(TEMPLATE_POST_CONTENT, PostContent{
		Title:     title,
		Content:   template.HTML(AutoParagraph(body)),
		CrossLink: true,
		SiteName:  siteName,
		Permalink: permalink,
	})
}

// RenderNotices renders each notice with its notice-<name> template, in order.
func (r *Renderer) RenderNotices(items []notices.Notice) (string, error) {
	var buf bytes.Buffer
	for _, n := range items {
		out, err := r.Render("notice-"+n.Name, n.Args)
		if err != nil {
			return "", err
		}
		buf.WriteString(out)
	}
	return buf.String(), nil
}
