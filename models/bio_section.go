package models

// BioSection ist ein frei sortierbarer Textabschnitt auf der Profilseite.
type BioSection struct {
	ID     int `json:"id"`
	UserID int `json:"user_id"`

	Title   string `json:"title"`
	Content string `json:"content"`

	// Order bestimmt die Anzeigereihenfolge; muss nicht eindeutig sein.
	Order int `json:"order"`
}
