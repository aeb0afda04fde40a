package models

// Gültige Publikationstypen des Backends.
const (
	PublicationTypeJournal    = "journal"
	PublicationTypeConference = "conference"
	PublicationTypeBook       = "book"
	PublicationTypeChapter    = "chapter"
)

// Publication repräsentiert eine wissenschaftliche Veröffentlichung eines Users.
type Publication struct {
	ID     int `json:"id"`
	UserID int `json:"user_id"`

	Title           string `json:"title"`
	Abstract        string `json:"abstract"`
	Authors         string `json:"authors"`
	PublicationType string `json:"publication_type"`
	Journal         string `json:"journal,omitempty"`
	Conference      string `json:"conference,omitempty"`
	Year            int    `json:"year"`
	DOI             string `json:"doi,omitempty"`

	// Org-weite Publikationen erscheinen nicht nur auf dem User-Profil.
	IsOrg bool `json:"is_org"`

	Poster       string `json:"poster,omitempty"`
	PaperSummary string `json:"paper_summary,omitempty"`
	URL          string `json:"url,omitempty"`
	PDFLink      string `json:"pdf_link,omitempty"`
}
