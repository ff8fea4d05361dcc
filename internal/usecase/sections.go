package usecase

import "cv-portfolio/internal/domain"

// SelectSections decides which sections an export includes. No flags means
// every section; otherwise only the named ones, and unknown names match
// nothing.
func SelectSections(flags []string) domain.SectionVisibility {
	vis := make(domain.SectionVisibility, len(domain.Sections))
	if len(flags) == 0 {
		for _, s := range domain.Sections {
			vis[s] = true
		}
		return vis
	}
	requested := make(map[string]bool, len(flags))
	for _, f := range flags {
		requested[f] = true
	}
	for _, s := range domain.Sections {
		vis[s] = requested[string(s)]
	}
	return vis
}
