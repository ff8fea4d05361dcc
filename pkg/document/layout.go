package document

// Style is the typographic role of a laid-out line.
type Style int

const (
	StyleSectionTitle Style = iota
	StyleHeading
	StyleSubheading
	StyleText
)

// Height is the fixed vertical increment of one line of the style.
func (s Style) Height() float64 {
	switch s {
	case StyleSectionTitle:
		return 24
	case StyleHeading:
		return 16
	case StyleSubheading:
		return 14
	}
	return 13
}

// Spacer separates items and sections.
const Spacer = 8

// Line is one placed line; Y is the top of its slot.
type Line struct {
	Style Style
	Y     float64
	Text  string
}

type Page struct {
	Lines []Line
}

// Frame is the column lines flow through, identical on every page.
type Frame struct {
	Top    float64
	Bottom float64
	Width  float64
}

// Measurer returns the rendered width of s in the given style.
type Measurer func(style Style, s string) float64

// Layout places the summary and the sections top to bottom, starting a new
// page whenever the next element would cross the frame bottom. A section
// title never ends a page on its own.
func Layout(r *Resume, f Frame, measure Measurer) []Page {
	l := &layouter{frame: f, measure: measure}
	l.newPage()

	l.section(Section{Title: SummaryTitle, Items: []Item{{Body: r.SummaryText()}}})
	for _, s := range r.Sections {
		l.section(s)
	}
	return l.pages
}

type layouter struct {
	frame   Frame
	measure Measurer
	pages   []Page
	y       float64
}

func (l *layouter) newPage() {
	l.pages = append(l.pages, Page{})
	l.y = l.frame.Top
}

// ensure breaks the page when h more points do not fit. An empty page
// always accepts the element.
func (l *layouter) ensure(h float64) {
	if l.y+h > l.frame.Bottom && l.y > l.frame.Top {
		l.newPage()
	}
}

func (l *layouter) place(style Style, text string) {
	h := style.Height()
	l.ensure(h)
	p := &l.pages[len(l.pages)-1]
	p.Lines = append(p.Lines, Line{Style: style, Y: l.y, Text: text})
	l.y += h
}

func (l *layouter) wrapped(style Style, text string) []string {
	var out []string
	for _, p := range paragraphs(text) {
		out = append(out, Wrap(p, l.frame.Width, func(s string) float64 { return l.measure(style, s) })...)
	}
	return out
}

func (l *layouter) section(s Section) {
	if len(s.Items) == 0 {
		return
	}
	l.ensure(StyleSectionTitle.Height() + firstLineHeight(s.Items[0]))
	l.place(StyleSectionTitle, s.Title)
	for _, it := range s.Items {
		l.item(it)
	}
	l.y += Spacer
}

func (l *layouter) item(it Item) {
	for _, ln := range l.wrapped(StyleHeading, it.Heading) {
		l.place(StyleHeading, ln)
	}
	for _, ln := range l.wrapped(StyleSubheading, it.Subheading) {
		l.place(StyleSubheading, ln)
	}
	for _, ln := range l.wrapped(StyleText, it.Body) {
		l.place(StyleText, ln)
	}
	l.y += Spacer
}

func firstLineHeight(it Item) float64 {
	switch {
	case len(paragraphs(it.Heading)) > 0:
		return StyleHeading.Height()
	case len(paragraphs(it.Subheading)) > 0:
		return StyleSubheading.Height()
	}
	return StyleText.Height()
}
