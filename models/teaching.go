package models

// TeachingExperience repräsentiert eine Lehrtätigkeit inkl. ihrer Kurse.
type TeachingExperience struct {
	ID     int `json:"id"`
	UserID int `json:"user_id"`

	Institution string `json:"institution"`
	Position    string `json:"position"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`

	// Leeres end_date bedeutet "laufend".
	EndDate string `json:"end_date,omitempty"`

	Courses []Course `json:"courses"`
}

// Course gehört zu genau einer TeachingExperience.
type Course struct {
	ID         int `json:"id"`
	TeachingID int `json:"teaching_id"`

	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
