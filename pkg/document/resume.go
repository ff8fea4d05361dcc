// Package document turns résumé content into PDF bytes and merges
// certificate PDFs onto the result.
package document

import (
	"context"
	"strings"
)

// DefaultSummary stands in when the profile has no summary of its own.
const DefaultSummary = "Profesional comprometido con el aprendizaje continuo, el trabajo en equipo y la mejora constante."

// ExportFilename is the download name of an exported résumé.
const ExportFilename = "hoja_de_vida.pdf"

// SummaryTitle heads the always-present summary section.
const SummaryTitle = "Perfil profesional"

type Field struct {
	Label string
	Value string
}

type Item struct {
	Heading    string
	Subheading string
	Body       string
}

type Section struct {
	Title string
	Items []Item
}

// Resume is everything a renderer needs, already ordered and filtered.
type Resume struct {
	Name     string
	Summary  string
	Photo    []byte
	Details  []Field
	Sections []Section
}

// SummaryText returns the summary, or DefaultSummary when it is blank.
func (r *Resume) SummaryText() string {
	if s := strings.TrimSpace(r.Summary); s != "" {
		return s
	}
	return DefaultSummary
}

// Renderer produces the base document.
type Renderer interface {
	Render(ctx context.Context, r *Resume) ([]byte, error)
}
