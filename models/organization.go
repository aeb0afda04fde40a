package models

// OrganizationCenter ist ein Standort der Organisation.
type OrganizationCenter struct {
	ID         int    `json:"id"`
	CenterName string `json:"center_name"`
	Location   string `json:"location"`
}

// OrganizationPartner ist eine Partnerorganisation inkl. Social-Links.
type OrganizationPartner struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Socials []string `json:"socials"`
	LogoURL string   `json:"logo_url,omitempty"`
}

// OrganizationCareer ist eine Stellenausschreibung der Organisation.
type OrganizationCareer struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	IsClosed    bool   `json:"is_closed"`
}
