package models

// Configuration is the editable branding of a profile, stored in the
// profile record's payload.
type Configuration struct {
	CompanyName    string `json:"company_name"`
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`
	ContactEmail   string `json:"contact_email"`
	ContactPhone   string `json:"contact_phone,omitempty"`
	Website        string `json:"website,omitempty"`
}

// DefaultConfiguration is used for freshly created profiles.
func DefaultConfiguration() Configuration {
	return Configuration{
		PrimaryColor:   "#2563eb",
		SecondaryColor: "#1e40af",
	}
}
