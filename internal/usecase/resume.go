package usecase

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"

	"cv-portfolio/internal/domain"
	"cv-portfolio/pkg/document"
)

// BuildResume flattens a profile and its ordered entries into renderer
// input. Sections come out in the fixed order; empty ones are dropped.
func BuildResume(p *domain.Profile, entries map[domain.Section][]domain.Entry, photo []byte) *document.Resume {
	res := &document.Resume{
		Name:    p.FullName(),
		Summary: p.Summary,
		Photo:   photo,
		Details: profileDetails(p),
	}
	for _, sec := range domain.Sections {
		list := entries[sec]
		if len(list) == 0 {
			continue
		}
		ds := document.Section{Title: sec.Title()}
		for _, e := range list {
			ds.Items = append(ds.Items, entryItem(e))
		}
		res.Sections = append(res.Sections, ds)
	}
	return res
}

func profileDetails(p *domain.Profile) []document.Field {
	birth := ""
	if !p.BirthDate.IsZero() {
		birth = p.BirthDate.Format("02/01/2006")
	}
	return []document.Field{
		{Label: "Cédula", Value: p.NationalID},
		{Label: "Fecha de nacimiento", Value: birth},
		{Label: "Lugar de nacimiento", Value: p.BirthPlace},
		{Label: "Nacionalidad", Value: p.Nationality},
		{Label: "Sexo", Value: labelOrEmpty(domain.SexChoices, p.Sex)},
		{Label: "Estado civil", Value: labelOrEmpty(domain.MaritalStatusChoices, p.MaritalStatus)},
		{Label: "Licencia de conducir", Value: labelOrEmpty(domain.DriverLicenseChoices, p.DriverLicense)},
		{Label: "Teléfono", Value: p.Phone},
		{Label: "Teléfono fijo", Value: p.Landline},
		{Label: "Dirección domiciliaria", Value: p.HomeAddress},
		{Label: "Dirección de trabajo", Value: p.WorkAddress},
		{Label: "Sitio web", Value: websiteLabel(p.Website)},
	}
}

func labelOrEmpty(choices []domain.Choice, code string) string {
	if code == "" {
		return ""
	}
	return domain.Label(choices, code)
}

func entryItem(e domain.Entry) document.Item {
	heading := e.Title
	if e.Section == domain.SectionCourses && e.Hours > 0 {
		heading = fmt.Sprintf("%s (%d h)", e.Title, e.Hours)
	}

	var sub []string
	if r := dateRange(e); r != "" {
		sub = append(sub, r)
	}
	for _, s := range []string{e.Organization, e.Location} {
		if s = strings.TrimSpace(s); s != "" {
			sub = append(sub, s)
		}
	}
	if choices := domain.CategoryChoices(e.Section); choices != nil && e.Category != "" {
		sub = append(sub, domain.Label(choices, e.Category))
	}

	return document.Item{
		Heading:    heading,
		Subheading: strings.Join(sub, " | "),
		Body:       e.Description,
	}
}

func dateRange(e domain.Entry) string {
	switch {
	case e.StartDate != nil && e.EndDate != nil:
		return e.StartDate.Format("01/2006") + " - " + e.EndDate.Format("01/2006")
	case e.EndDate != nil:
		return e.EndDate.Format("01/2006")
	case e.StartDate != nil:
		return e.StartDate.Format("01/2006")
	}
	return ""
}

// websiteLabel shortens a site URL to its registrable domain plus path,
// e.g. "https://www.github.com/ana/" -> "github.com/ana".
func websiteLabel(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	candidate := raw
	if !strings.HasPrefix(candidate, "http://") && !strings.HasPrefix(candidate, "https://") {
		candidate = "https://" + candidate
	}
	u, err := url.Parse(candidate)
	if err != nil || u.Hostname() == "" {
		return raw
	}
	host := u.Hostname()
	label := strings.TrimPrefix(host, "www.")
	if etld, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		label = etld
	}
	if path := strings.TrimRight(u.EscapedPath(), "/"); path != "" {
		label += path
	}
	return label
}
