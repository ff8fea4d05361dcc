package document

import (
	"bytes"
	"context"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"log/slog"
)

//go:embed templates/cv.html templates/style.css
var templateFS embed.FS

// HTMLToPDF converts a complete HTML page to PDF.
type HTMLToPDF interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

// HTMLRenderer fills the embedded page template and hands it to a browser
// engine, which also paginates.
type HTMLRenderer struct {
	tpl  *template.Template
	conv HTMLToPDF
}

func NewHTMLRenderer(conv HTMLToPDF) (*HTMLRenderer, error) {
	tpl, err := template.ParseFS(templateFS, "templates/cv.html")
	if err != nil {
		return nil, fmt.Errorf("parse cv template: %w", err)
	}
	return &HTMLRenderer{tpl: tpl, conv: conv}, nil
}

// Assets are the files the page links to, keyed by name.
func Assets() map[string][]byte {
	css, err := templateFS.ReadFile("templates/style.css")
	if err != nil {
		return nil
	}
	return map[string][]byte{"style.css": css}
}

type htmlData struct {
	Name         string
	PhotoURI     template.URL
	Details      []Field
	SummaryTitle string
	Summary      string
	Sections     []Section
}

// HTML returns the filled page without converting it.
func (r *HTMLRenderer) HTML(ctx context.Context, res *Resume) (string, error) {
	data := htmlData{
		Name:         res.Name,
		Details:      res.Details,
		SummaryTitle: SummaryTitle,
		Summary:      res.SummaryText(),
		Sections:     res.Sections,
	}
	if len(res.Photo) > 0 {
		if png, err := PreparePhoto(res.Photo, photoPixels); err != nil {
			slog.WarnContext(ctx, "profile photo omitted", "error", err)
		} else {
			data.PhotoURI = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
		}
	}

	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute cv template: %w", err)
	}
	return buf.String(), nil
}

func (r *HTMLRenderer) Render(ctx context.Context, res *Resume) ([]byte, error) {
	html, err := r.HTML(ctx, res)
	if err != nil {
		return nil, err
	}
	return r.conv.RenderHTMLToPDF(ctx, html)
}
