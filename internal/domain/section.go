package domain

import "fmt"

// Section names double as the export request flags.
type Section string

const (
	SectionExperience   Section = "exp"
	SectionCourses      Section = "cursos"
	SectionRecognitions Section = "reconoc"
	SectionAcademic     Section = "prod_acad"
	SectionWork         Section = "prod_lab"
)

// Sections lists every section in the fixed render and merge order.
var Sections = []Section{
	SectionExperience,
	SectionCourses,
	SectionRecognitions,
	SectionAcademic,
	SectionWork,
}

var sectionTitles = map[Section]string{
	SectionExperience:   "Experiencia laboral",
	SectionCourses:      "Cursos y capacitaciones",
	SectionRecognitions: "Reconocimientos",
	SectionAcademic:     "Productos académicos",
	SectionWork:         "Productos laborales",
}

// certificateKinds maps the certificate viewer's type segment to a section.
var certificateKinds = map[string]Section{
	"experiencia":    SectionExperience,
	"curso":          SectionCourses,
	"reconocimiento": SectionRecognitions,
	"prod_acad":      SectionAcademic,
	"prod_lab":       SectionWork,
}

func (s Section) Title() string { return sectionTitles[s] }

func (s Section) Valid() bool {
	_, ok := sectionTitles[s]
	return ok
}

// ParseSection accepts the canonical section name.
func ParseSection(name string) (Section, error) {
	s := Section(name)
	if !s.Valid() {
		return "", fmt.Errorf("unknown section %q: %w", name, ErrInvalid)
	}
	return s, nil
}

// SectionForCertificateKind resolves the certificate viewer's type segment.
func SectionForCertificateKind(kind string) (Section, bool) {
	s, ok := certificateKinds[kind]
	return s, ok
}

// SectionVisibility tells which sections an export includes.
type SectionVisibility map[Section]bool

// Enabled returns the visible sections in the fixed order.
func (v SectionVisibility) Enabled() []Section {
	out := make([]Section, 0, len(Sections))
	for _, s := range Sections {
		if v[s] {
			out = append(out, s)
		}
	}
	return out
}
