// render_profile writes the HTML engine's page for an import document, for
// previewing the layout in a browser without running Chrome.
//
//	go run ./tools/render_profile.go profile.json out/
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"cv-portfolio/internal/domain"
	"cv-portfolio/internal/model"
	"cv-portfolio/internal/usecase"
	"cv-portfolio/pkg/document"
)

func main() {
	in, outDir := "profile.json", filepath.Join("resume-data", "generated")
	if len(os.Args) > 1 {
		in = os.Args[1]
	}
	if len(os.Args) > 2 {
		outDir = os.Args[2]
	}

	b, err := os.ReadFile(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read profile: %v\n", err)
		os.Exit(2)
	}
	doc, err := model.ParseImport(b)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse: %v\n", err)
		os.Exit(2)
	}
	profile, err := doc.Profile.ToDomain()
	if err != nil {
		fmt.Fprintf(os.Stderr, "profile: %v\n", err)
		os.Exit(2)
	}

	entries := map[domain.Section][]domain.Entry{}
	for i, d := range doc.Entries {
		e, err := d.ToDomain(0)
		if err != nil {
			fmt.Fprintf(os.Stderr, "entry %d: %v\n", i, err)
			os.Exit(2)
		}
		if e.Visible {
			e.ID = int64(i + 1)
			entries[e.Section] = append(entries[e.Section], *e)
		}
	}
	for _, list := range entries {
		usecase.SortEntries(list)
	}

	var photo []byte
	if profile.Photo.Name != "" {
		photo, _ = os.ReadFile(filepath.Join(filepath.Dir(in), profile.Photo.Name))
	}

	r, err := document.NewHTMLRenderer(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "template: %v\n", err)
		os.Exit(2)
	}
	html, err := r.HTML(context.Background(), usecase.BuildResume(profile, entries, photo))
	if err != nil {
		fmt.Fprintf(os.Stderr, "execute tpl: %v\n", err)
		os.Exit(2)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "create out dir: %v\n", err)
		os.Exit(2)
	}
	outFile := filepath.Join(outDir, "cv_preview.html")
	if err := os.WriteFile(outFile, []byte(html), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write: %v\n", err)
		os.Exit(2)
	}
	for name, asset := range document.Assets() {
		_ = os.WriteFile(filepath.Join(outDir, name), asset, 0o644)
	}
	fmt.Printf("wrote %s\n", outFile)
}
