package models

// Person represents a housemate.
// Every debt and every need assignment points back at a Person row.
type Person struct {
	// ID is assigned by the store on insert.
	ID int64

	// FirstName and LastName are both required.
	FirstName string
	LastName  string

	// Allergies is free-form and optional; empty means none recorded.
	Allergies string

	// MiscInfo holds anything else worth remembering about the person.
	MiscInfo string
}

// FullName returns the display name used by aggregation views.
func (p *Person) FullName() string {
	return p.FirstName + " " + p.LastName
}
