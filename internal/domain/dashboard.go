package domain

// Section is a department tab of the dashboard.
type Section struct {
	ID     string
	NameAR string
	NameEN string
}

// Form is a downloadable form listed under a section.
// SectionID is empty when the form is not attached to a section.
type Form struct {
	ID           string
	SerialNumber string
	NameAR       string
	NameEN       string
	Category     string
	Description  string
	File         string
	SectionID    string
}
