package models

// Gültige Rollen innerhalb der Organisation.
const (
	OrgRoleAdvisory = "advisory"
	OrgRoleTeam     = "team"
	OrgRoleFellow   = "fellow"
)

// Project ist ein Eintrag in der Projektliste eines Profils.
type Project struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// Profile ist das Singleton-Profil eines Users.
type Profile struct {
	ID     int `json:"id"`
	UserID int `json:"user_id"`

	Name    string `json:"name"`
	OrgRole string `json:"org_role"`

	// HomeContent sind die Biografie-Absätze in Anzeigereihenfolge.
	HomeContent []string `json:"home_content,omitempty"`

	CVLink       string `json:"cv_link,omitempty"`
	ProfileImage string `json:"profile_image,omitempty"`

	Projects  []Project `json:"projects"`
	Teachings []string  `json:"teachings"`
}
