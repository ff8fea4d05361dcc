package model

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"cv-portfolio/internal/domain"
)

// DateLayout is the calendar-date form used in import documents.
const DateLayout = "2006-01-02"

// ImportDocument is the JSON shape accepted by the seed command.
type ImportDocument struct {
	Profile     ProfileDoc  `json:"profile"`
	Entries     []EntryDoc  `json:"entries,omitempty"`
	GarageItems []GarageDoc `json:"garage_items,omitempty"`
}

type ProfileDoc struct {
	Summary         string `json:"summary,omitempty"`
	Photo           string `json:"photo,omitempty"`
	Active          bool   `json:"active"`
	PrintingAllowed bool   `json:"printing_allowed"`
	FirstNames      string `json:"first_names"`
	LastNames       string `json:"last_names"`
	Nationality     string `json:"nationality,omitempty"`
	BirthPlace      string `json:"birth_place,omitempty"`
	BirthDate       string `json:"birth_date"`
	NationalID      string `json:"national_id"`
	Sex             string `json:"sex,omitempty"`
	MaritalStatus   string `json:"marital_status,omitempty"`
	DriverLicense   string `json:"driver_license,omitempty"`
	Phone           string `json:"phone,omitempty"`
	Landline        string `json:"landline,omitempty"`
	WorkAddress     string `json:"work_address,omitempty"`
	HomeAddress     string `json:"home_address,omitempty"`
	Website         string `json:"website,omitempty"`
}

type EntryDoc struct {
	Section          string `json:"section"`
	Title            string `json:"title"`
	Organization     string `json:"organization,omitempty"`
	Location         string `json:"location,omitempty"`
	Description      string `json:"description,omitempty"`
	Category         string `json:"category,omitempty"`
	Hours            int    `json:"hours,omitempty"`
	StartDate        string `json:"start_date,omitempty"`
	EndDate          string `json:"end_date,omitempty"`
	Visible          *bool  `json:"visible,omitempty"`
	CertificatePDF   string `json:"certificate_pdf,omitempty"`
	CertificateImage string `json:"certificate_image,omitempty"`
}

type GarageDoc struct {
	Name        string  `json:"name"`
	Condition   string  `json:"condition"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Date        string  `json:"date"`
	Visible     *bool   `json:"visible,omitempty"`
	Photo       string  `json:"photo,omitempty"`
}

// ParseImport checks raw against the import schema and decodes it.
func ParseImport(raw []byte) (*ImportDocument, error) {
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode import document: %w", err)
	}
	if err := ValidateDocument(m); err != nil {
		return nil, err
	}
	var doc ImportDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode import document: %w", err)
	}
	return &doc, nil
}

func (d ProfileDoc) ToDomain() (*domain.Profile, error) {
	birth, err := parseDate("birth_date", d.BirthDate)
	if err != nil {
		return nil, err
	}
	return &domain.Profile{
		Summary:         d.Summary,
		Photo:           domain.Resource{Name: d.Photo},
		Active:          d.Active,
		PrintingAllowed: d.PrintingAllowed,
		FirstNames:      d.FirstNames,
		LastNames:       d.LastNames,
		Nationality:     d.Nationality,
		BirthPlace:      d.BirthPlace,
		BirthDate:       *birth,
		NationalID:      d.NationalID,
		Sex:             d.Sex,
		MaritalStatus:   d.MaritalStatus,
		DriverLicense:   d.DriverLicense,
		Phone:           d.Phone,
		Landline:        d.Landline,
		WorkAddress:     d.WorkAddress,
		HomeAddress:     d.HomeAddress,
		Website:         d.Website,
	}, nil
}

func (d EntryDoc) ToDomain(profileID int64) (*domain.Entry, error) {
	section, err := domain.ParseSection(d.Section)
	if err != nil {
		return nil, err
	}
	start, err := parseOptionalDate("start_date", d.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseOptionalDate("end_date", d.EndDate)
	if err != nil {
		return nil, err
	}
	return &domain.Entry{
		ProfileID:        profileID,
		Section:          section,
		Title:            d.Title,
		Organization:     d.Organization,
		Location:         d.Location,
		Description:      d.Description,
		Category:         d.Category,
		Hours:            d.Hours,
		StartDate:        start,
		EndDate:          end,
		Visible:          d.Visible == nil || *d.Visible,
		CertificatePDF:   domain.Resource{Name: d.CertificatePDF},
		CertificateImage: domain.Resource{Name: d.CertificateImage},
	}, nil
}

func (d GarageDoc) ToDomain(profileID int64) (*domain.GarageItem, error) {
	date, err := parseDate("date", d.Date)
	if err != nil {
		return nil, err
	}
	return &domain.GarageItem{
		ProfileID:   profileID,
		Name:        d.Name,
		Condition:   d.Condition,
		Description: d.Description,
		PriceCents:  int64(math.Round(d.Price * 100)),
		Date:        *date,
		Visible:     d.Visible == nil || *d.Visible,
		Photo:       domain.Resource{Name: d.Photo},
	}, nil
}

func parseDate(field, s string) (*time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, ValidationErrors{field: "fecha inválida, use AAAA-MM-DD"}
	}
	return &t, nil
}

func parseOptionalDate(field, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	return parseDate(field, s)
}
