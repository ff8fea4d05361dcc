package domain

import (
	"strings"
	"time"
)

// Profile is the owner of the CV site. At most one profile is active at a time.
type Profile struct {
	ID              int64      `json:"id"`
	Summary         string     `json:"summary,omitempty"`
	Photo           Resource   `json:"photo"`
	Active          bool       `json:"active"`
	PrintingAllowed bool       `json:"printing_allowed"`
	LastNames       string     `json:"last_names"`
	FirstNames      string     `json:"first_names"`
	Nationality     string     `json:"nationality,omitempty"`
	BirthPlace      string     `json:"birth_place,omitempty"`
	BirthDate       time.Time  `json:"birth_date"`
	NationalID      string     `json:"national_id"`
	Sex             string     `json:"sex,omitempty"`
	MaritalStatus   string     `json:"marital_status,omitempty"`
	DriverLicense   string     `json:"driver_license,omitempty"`
	Phone           string     `json:"phone,omitempty"`
	Landline        string     `json:"landline,omitempty"`
	WorkAddress     string     `json:"work_address,omitempty"`
	HomeAddress     string     `json:"home_address,omitempty"`
	Website         string     `json:"website,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

// FullName returns "first last".
func (p *Profile) FullName() string {
	return strings.TrimSpace(p.FirstNames + " " + p.LastNames)
}

// Entry is one record of any of the five repeatable sections.
type Entry struct {
	ID               int64      `json:"id"`
	ProfileID        int64      `json:"profile_id"`
	Section          Section    `json:"section"`
	Title            string     `json:"title"`
	Organization     string     `json:"organization,omitempty"`
	Location         string     `json:"location,omitempty"`
	Description      string     `json:"description,omitempty"`
	Category         string     `json:"category,omitempty"`
	Hours            int        `json:"hours,omitempty"`
	StartDate        *time.Time `json:"start_date,omitempty"`
	EndDate          *time.Time `json:"end_date,omitempty"`
	Visible          bool       `json:"visible"`
	CertificatePDF   Resource   `json:"certificate_pdf"`
	CertificateImage Resource   `json:"certificate_image"`
	CreatedAt        time.Time  `json:"created_at"`
}

// GarageItem is a garage-sale listing. It never carries a certificate.
type GarageItem struct {
	ID          int64     `json:"id"`
	ProfileID   int64     `json:"profile_id"`
	Name        string    `json:"name"`
	Condition   string    `json:"condition"`
	Description string    `json:"description,omitempty"`
	PriceCents  int64     `json:"price_cents"`
	Date        time.Time `json:"date"`
	Visible     bool      `json:"visible"`
	Photo       Resource  `json:"photo"`
	CreatedAt   time.Time `json:"created_at"`
}

// Resource points at a stored blob, either readable from local disk or
// fetchable by URL. The zero value means "no file".
type Resource struct {
	Name string `json:"name,omitempty"`
	Path string `json:"-"`
	URL  string `json:"url,omitempty"`
}

func (r Resource) IsZero() bool { return r.Path == "" && r.URL == "" }

func (r Resource) IsRemote() bool { return r.URL != "" }
