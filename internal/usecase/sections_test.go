package usecase

import (
	"testing"

	"cv-portfolio/internal/domain"
)

func TestSelectSections(t *testing.T) {
	all := SelectSections(nil)
	for _, s := range domain.Sections {
		if !all[s] {
			t.Errorf("empty flags: %s should be shown", s)
		}
	}

	only := SelectSections([]string{"cursos"})
	for _, s := range domain.Sections {
		if only[s] != (s == domain.SectionCourses) {
			t.Errorf("{cursos}: %s = %v", s, only[s])
		}
	}

	unknown := SelectSections([]string{"blog"})
	if len(unknown.Enabled()) != 0 {
		t.Errorf("unknown flag should select nothing, got %v", unknown.Enabled())
	}

	got := SelectSections([]string{"prod_lab", "exp"}).Enabled()
	if len(got) != 2 || got[0] != domain.SectionExperience || got[1] != domain.SectionWork {
		t.Errorf("enabled sections should follow the fixed order, got %v", got)
	}
}
