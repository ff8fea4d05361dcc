package model

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"cv-portfolio/internal/domain"
)

var (
	nationalIDRE = regexp.MustCompile(`^\d{10}$`)
	phoneRE      = regexp.MustCompile(`^[0-9+\-\s()]{7,20}$`)
	lettersRE    = regexp.MustCompile(`^[A-Za-zÁÉÍÓÚÜÑáéíóúüñ\s]+$`)

	// Epoch is the earliest date a section entry may carry.
	Epoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
)

const (
	MinPriceCents = 1
	MaxPriceCents = 9999999
)

// ValidationErrors maps a field name to what is wrong with it.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+v[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (v ValidationErrors) Unwrap() error { return domain.ErrInvalid }

func (v ValidationErrors) orNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// ValidateProfile checks a profile before it is written.
func ValidateProfile(p *domain.Profile, today time.Time) error {
	errs := ValidationErrors{}
	if !lettersRE.MatchString(p.FirstNames) {
		errs["first_names"] = "solo se permiten letras y espacios"
	}
	if !lettersRE.MatchString(p.LastNames) {
		errs["last_names"] = "solo se permiten letras y espacios"
	}
	if !nationalIDRE.MatchString(p.NationalID) {
		errs["national_id"] = "la cédula debe tener exactamente 10 dígitos"
	}
	if p.BirthDate.IsZero() {
		errs["birth_date"] = "requerida"
	} else if afterDay(p.BirthDate, today) {
		errs["birth_date"] = "la fecha no puede ser mayor a la fecha actual"
	}
	for field, phone := range map[string]string{"phone": p.Phone, "landline": p.Landline} {
		if phone != "" && !phoneRE.MatchString(phone) {
			errs[field] = "teléfono inválido"
		}
	}
	if p.Sex != "" && !domain.HasChoice(domain.SexChoices, p.Sex) {
		errs["sex"] = fmt.Sprintf("valor %q no permitido", p.Sex)
	}
	if p.MaritalStatus != "" && !domain.HasChoice(domain.MaritalStatusChoices, p.MaritalStatus) {
		errs["marital_status"] = fmt.Sprintf("valor %q no permitido", p.MaritalStatus)
	}
	if p.DriverLicense != "" && !domain.HasChoice(domain.DriverLicenseChoices, p.DriverLicense) {
		errs["driver_license"] = fmt.Sprintf("valor %q no permitido", p.DriverLicense)
	}
	if len([]rune(p.Summary)) > 200 {
		errs["summary"] = "máximo 200 caracteres"
	}
	return errs.orNil()
}

// ValidateEntry checks a section entry against its owning profile.
func ValidateEntry(p *domain.Profile, e *domain.Entry, today time.Time) error {
	errs := ValidationErrors{}
	if !e.Section.Valid() {
		errs["section"] = fmt.Sprintf("sección %q desconocida", e.Section)
	}
	if strings.TrimSpace(e.Title) == "" {
		errs["title"] = "requerido"
	}
	if choices := domain.CategoryChoices(e.Section); choices != nil && e.Category != "" && !domain.HasChoice(choices, e.Category) {
		errs["category"] = fmt.Sprintf("valor %q no permitido", e.Category)
	}
	if e.Hours < 0 {
		errs["hours"] = "no puede ser negativo"
	}

	switch {
	case e.StartDate != nil && e.EndDate == nil:
		errs["end_date"] = "si ingresas fecha de inicio, también debes ingresar fecha de fin"
	case e.EndDate != nil && e.StartDate == nil:
		errs["start_date"] = "si ingresas fecha de fin, también debes ingresar fecha de inicio"
	case e.StartDate != nil && e.EndDate.Before(*e.StartDate):
		errs["end_date"] = "la fecha fin no puede ser menor que la fecha inicio"
	}
	for field, d := range map[string]*time.Time{"start_date": e.StartDate, "end_date": e.EndDate} {
		if d == nil {
			continue
		}
		if msg := checkEntryDate(*d, p, today); msg != "" {
			errs[field] = msg
		}
	}

	if e.CertificatePDF.Name != "" && !strings.HasSuffix(strings.ToLower(e.CertificatePDF.Name), ".pdf") {
		errs["certificate_pdf"] = "solo se permiten archivos PDF"
	}
	return errs.orNil()
}

// ValidateGarageItem checks a garage-sale listing.
func ValidateGarageItem(item *domain.GarageItem, today time.Time) error {
	errs := ValidationErrors{}
	if strings.TrimSpace(item.Name) == "" {
		errs["name"] = "requerido"
	}
	if !domain.HasChoice(domain.ConditionChoices, item.Condition) {
		errs["condition"] = fmt.Sprintf("valor %q no permitido", item.Condition)
	}
	if item.PriceCents < MinPriceCents || item.PriceCents > MaxPriceCents {
		errs["price"] = "el valor debe estar entre 0.01 y 99999.99"
	}
	if item.Date.IsZero() {
		errs["date"] = "requerida"
	} else if afterDay(item.Date, today) {
		errs["date"] = "la fecha no puede ser mayor a la fecha actual"
	}
	return errs.orNil()
}

func checkEntryDate(d time.Time, p *domain.Profile, today time.Time) string {
	switch {
	case d.Before(Epoch):
		return "la fecha debe ser desde el año 2000 en adelante"
	case afterDay(d, today):
		return "la fecha no puede ser mayor a la fecha actual"
	case p != nil && !p.BirthDate.IsZero() && d.Before(p.BirthDate):
		return "la fecha no puede ser anterior a tu fecha de nacimiento"
	}
	return ""
}

// afterDay compares calendar days, ignoring the time of day.
func afterDay(d, today time.Time) bool {
	dy, dm, dd := d.Date()
	ty, tm, td := today.Date()
	return time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC).After(time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC))
}
