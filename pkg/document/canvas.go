package document

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/go-pdf/fpdf"
)

// A4 in points.
const (
	PageWidth  = 595.28
	PageHeight = 841.89

	margin       = 40.0
	sidebarWidth = 180.0
	sidebarPad   = 20.0
	columnX      = sidebarWidth + 20
	photoSize    = 120.0
	photoPixels  = 360
)

// MainFrame is the main column of every page.
var MainFrame = Frame{
	Top:    margin,
	Bottom: PageHeight - margin,
	Width:  PageWidth - columnX - margin,
}

type rgb struct{ r, g, b int }

var (
	sidebarFill = rgb{38, 50, 56}
	sidebarText = rgb{236, 239, 241}
	sidebarMute = rgb{176, 190, 197}
	titleColor  = rgb{38, 50, 56}
	bodyColor   = rgb{33, 33, 33}
	grayColor   = rgb{117, 117, 117}
)

// CanvasRenderer draws the résumé directly onto A4 pages.
type CanvasRenderer struct {
	font *FontFiles
}

func NewCanvasRenderer(fontDir string, families []string) *CanvasRenderer {
	return &CanvasRenderer{font: ResolveFont(fontDir, families)}
}

type canvas struct {
	pdf    *fpdf.Fpdf
	family string
	tr     func(string) string
}

func (r *CanvasRenderer) newCanvas() *canvas {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("cv-portfolio", true)

	c := &canvas{pdf: pdf, family: FallbackFamily, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	if r.font != nil {
		pdf.AddUTF8FontFromBytes(r.font.Family, "", r.font.Regular)
		pdf.AddUTF8FontFromBytes(r.font.Family, "B", r.font.Bold)
		if pdf.Err() {
			slog.Warn("font registration failed, falling back", "family", r.font.Family, "fallback", FallbackFamily, "error", pdf.Error())
			pdf.ClearError()
			return c
		}
		c.family = r.font.Family
		c.tr = func(s string) string { return s }
	}
	return c
}

func (r *CanvasRenderer) Render(ctx context.Context, res *Resume) ([]byte, error) {
	c := r.newCanvas()
	pdf := c.pdf
	pdf.SetTitle(res.Name, true)

	hasPhoto := false
	if len(res.Photo) > 0 {
		if png, err := PreparePhoto(res.Photo, photoPixels); err != nil {
			slog.WarnContext(ctx, "profile photo omitted", "error", err)
		} else {
			pdf.RegisterImageOptionsReader("photo", fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
			if pdf.Err() {
				slog.WarnContext(ctx, "profile photo omitted", "error", pdf.Error())
				pdf.ClearError()
			} else {
				hasPhoto = true
			}
		}
	}

	pages := Layout(res, MainFrame, c.measure)
	for i, pg := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pdf.AddPage()
		c.sidebar(res, i == 0, hasPhoto)
		for _, ln := range pg.Lines {
			c.line(ln)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (c *canvas) style(s Style) {
	switch s {
	case StyleSectionTitle:
		c.pdf.SetFont(c.family, "B", 14)
	case StyleHeading:
		c.pdf.SetFont(c.family, "B", 11)
	case StyleSubheading:
		c.pdf.SetFont(c.family, "", 9.5)
	default:
		c.pdf.SetFont(c.family, "", 10)
	}
}

func (c *canvas) measure(s Style, text string) float64 {
	c.style(s)
	return c.pdf.GetStringWidth(c.tr(text))
}

func (c *canvas) color(col rgb) { c.pdf.SetTextColor(col.r, col.g, col.b) }

// baseline sits three quarters down the slot.
func baseline(ln Line) float64 { return ln.Y + ln.Style.Height()*0.75 }

func (c *canvas) line(ln Line) {
	c.style(ln.Style)
	switch ln.Style {
	case StyleSectionTitle:
		c.color(titleColor)
		c.pdf.SetDrawColor(titleColor.r, titleColor.g, titleColor.b)
		c.pdf.SetLineWidth(0.8)
		y := baseline(ln) + 3
		c.pdf.Line(columnX, y, columnX+MainFrame.Width, y)
	case StyleSubheading:
		c.color(grayColor)
	default:
		c.color(bodyColor)
	}
	c.pdf.Text(columnX, baseline(ln), c.tr(ln.Text))
}

// sidebar paints the full-height band on every page; content goes on the
// first page only.
func (c *canvas) sidebar(res *Resume, first, hasPhoto bool) {
	pdf := c.pdf
	pdf.SetFillColor(sidebarFill.r, sidebarFill.g, sidebarFill.b)
	pdf.Rect(0, 0, sidebarWidth, PageHeight, "F")
	if !first {
		return
	}

	y := margin
	if hasPhoto {
		x := (sidebarWidth - photoSize) / 2
		pdf.ClipCircle(x+photoSize/2, y+photoSize/2, photoSize/2, false)
		pdf.ImageOptions("photo", x, y, photoSize, photoSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
		pdf.ClipEnd()
		y += photoSize + 16
	}

	width := sidebarWidth - 2*sidebarPad
	pdf.SetFont(c.family, "B", 14)
	c.color(sidebarText)
	for _, ln := range Wrap(res.Name, width, func(s string) float64 { return pdf.GetStringWidth(c.tr(s)) }) {
		pdf.Text(sidebarPad, y+14, c.tr(ln))
		y += 18
	}
	y += 10

	bottom := PageHeight - margin
	for _, f := range res.Details {
		if f.Value == "" {
			continue
		}
		if y+24 > bottom {
			slog.Debug("sidebar full, remaining fields dropped", "from", f.Label)
			return
		}
		pdf.SetFont(c.family, "B", 8)
		c.color(sidebarMute)
		pdf.Text(sidebarPad, y+8, c.tr(f.Label))
		y += 11

		pdf.SetFont(c.family, "", 9)
		c.color(sidebarText)
		for _, ln := range Wrap(f.Value, width, func(s string) float64 { return pdf.GetStringWidth(c.tr(s)) }) {
			pdf.Text(sidebarPad, y+9, c.tr(ln))
			y += 12
		}
		y += 6
	}
}
