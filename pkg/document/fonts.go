package document

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
)

// FallbackFamily is a core PDF font; it needs no file but only covers cp1252.
const FallbackFamily = "Helvetica"

// FontFiles holds the TTF data of the chosen family.
type FontFiles struct {
	Family  string
	Regular []byte
	Bold    []byte
}

// ResolveFont returns the first family in families whose <dir>/<family>.ttf
// exists and loads. The bold face is <family>-Bold.ttf and defaults to the
// regular face when missing or broken. Nil means use FallbackFamily.
func ResolveFont(dir string, families []string) *FontFiles {
	if dir == "" {
		return nil
	}
	for _, fam := range families {
		regular, err := os.ReadFile(filepath.Join(dir, fam+".ttf"))
		if err != nil {
			continue
		}
		if err := checkFont(fam, regular); err != nil {
			slog.Warn("font file unusable, trying next family", "family", fam, "dir", dir, "error", err)
			continue
		}
		bold, err := os.ReadFile(filepath.Join(dir, fam+"-Bold.ttf"))
		if err == nil {
			if err := checkFont(fam, bold); err != nil {
				slog.Warn("bold face unusable, using regular", "family", fam, "error", err)
				bold = nil
			}
		}
		if bold == nil {
			bold = regular
		}
		slog.Debug("using font family", "family", fam, "dir", dir)
		return &FontFiles{Family: fam, Regular: regular, Bold: bold}
	}
	slog.Info("no candidate font found, falling back", "dir", dir, "candidates", families, "fallback", FallbackFamily)
	return nil
}

// checkFont registers data in a scratch document and writes a line with it.
// fpdf reports a TTF it cannot parse only once the font is used.
func checkFont(family string, data []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse font: %v", r)
		}
	}()
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.AddUTF8FontFromBytes(family, "", data)
	pdf.AddPage()
	pdf.SetFont(family, "", 10)
	pdf.Cell(0, 10, "Áé ñ")
	return pdf.Output(io.Discard)
}
