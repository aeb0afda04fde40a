package models

// Eingabe-Typen für Create/Update-Mutationen. Update-Typen tragen
// Pointer-Felder, damit nur tatsächlich gesetzte Felder als partielles
// JSON an das Backend gehen.

// PublicationInput ist der Payload für das Anlegen einer Publikation.
type PublicationInput struct {
	UserID          int    `json:"user_id" validate:"required"`
	Title           string `json:"title" validate:"required"`
	Abstract        string `json:"abstract"`
	Authors         string `json:"authors" validate:"required"`
	PublicationType string `json:"publication_type" validate:"required,oneof=journal conference book chapter"`
	Journal         string `json:"journal,omitempty"`
	Conference      string `json:"conference,omitempty"`
	Year            int    `json:"year" validate:"required,pubyear"`
	DOI             string `json:"doi,omitempty"`
	IsOrg           bool   `json:"is_org"`
	Poster          string `json:"poster,omitempty" validate:"omitempty,url"`
	PaperSummary    string `json:"paper_summary,omitempty" validate:"omitempty,url"`
	URL             string `json:"url,omitempty" validate:"omitempty,url"`
	PDFLink         string `json:"pdf_link,omitempty" validate:"omitempty,url"`
}

// PublicationUpdate ist der partielle Payload für ein Publication-Update.
type PublicationUpdate struct {
	Title           *string `json:"title,omitempty" validate:"omitempty,min=1"`
	Abstract        *string `json:"abstract,omitempty"`
	Authors         *string `json:"authors,omitempty" validate:"omitempty,min=1"`
	PublicationType *string `json:"publication_type,omitempty" validate:"omitempty,oneof=journal conference book chapter"`
	Journal         *string `json:"journal,omitempty"`
	Conference      *string `json:"conference,omitempty"`
	Year            *int    `json:"year,omitempty" validate:"omitempty,pubyear"`
	DOI             *string `json:"doi,omitempty"`
	IsOrg           *bool   `json:"is_org,omitempty"`
	Poster          *string `json:"poster,omitempty" validate:"omitempty,url"`
	PaperSummary    *string `json:"paper_summary,omitempty" validate:"omitempty,url"`
	URL             *string `json:"url,omitempty" validate:"omitempty,url"`
	PDFLink         *string `json:"pdf_link,omitempty" validate:"omitempty,url"`
}

// BioSectionInput ist der Payload für einen neuen Bio-Abschnitt.
type BioSectionInput struct {
	UserID  int    `json:"user_id" validate:"required"`
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
	Order   int    `json:"order" validate:"gte=0"`
}

// BioSectionUpdate ist der partielle Payload für ein BioSection-Update.
type BioSectionUpdate struct {
	Title   *string `json:"title,omitempty" validate:"omitempty,min=1"`
	Content *string `json:"content,omitempty" validate:"omitempty,min=1"`
	Order   *int    `json:"order,omitempty" validate:"omitempty,gte=0"`
}

// TeachingInput ist der Payload für eine neue Lehrtätigkeit.
type TeachingInput struct {
	UserID      int    `json:"user_id" validate:"required"`
	Institution string `json:"institution" validate:"required"`
	Position    string `json:"position" validate:"required"`
	Description string `json:"description"`
	StartDate   string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// TeachingUpdate ist der partielle Payload für ein Teaching-Update.
type TeachingUpdate struct {
	Institution *string `json:"institution,omitempty" validate:"omitempty,min=1"`
	Position    *string `json:"position,omitempty" validate:"omitempty,min=1"`
	Description *string `json:"description,omitempty"`
	StartDate   *string `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate     *string `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// CourseInput ist der Payload für einen neuen Kurs.
type CourseInput struct {
	TeachingID  int    `json:"teaching_id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
}

// CourseUpdate ist der partielle Payload für ein Kurs-Update.
type CourseUpdate struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Description *string `json:"description,omitempty"`
}

// ProfileInput ist der Payload für das Anlegen bzw. Aktualisieren des Profils.
type ProfileInput struct {
	UserID       int       `json:"user_id" validate:"required"`
	Name         string    `json:"name" validate:"required"`
	OrgRole      string    `json:"org_role" validate:"required,oneof=advisory team fellow"`
	HomeContent  []string  `json:"home_content,omitempty"`
	CVLink       string    `json:"cv_link,omitempty" validate:"omitempty,url"`
	ProfileImage string    `json:"profile_image,omitempty" validate:"omitempty,url"`
	Projects     []Project `json:"projects" validate:"dive"`
	Teachings    []string  `json:"teachings"`
}

// CenterInput ist der Payload für einen Organisations-Standort.
type CenterInput struct {
	CenterName string `json:"center_name" validate:"required"`
	Location   string `json:"location" validate:"required"`
}

// PartnerInput ist der Payload für eine Partnerorganisation.
type PartnerInput struct {
	Name    string   `json:"name" validate:"required"`
	Socials []string `json:"socials" validate:"dive,url"`
	LogoURL string   `json:"logo_url,omitempty" validate:"omitempty,url"`
}

// CareerInput ist der Payload für eine Stellenausschreibung.
type CareerInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Type        string `json:"type" validate:"required"`
	IsClosed    bool   `json:"is_closed"`
}

// CenterUpdate ist der partielle Payload für einen Standort.
type CenterUpdate struct {
	CenterName *string `json:"center_name,omitempty" validate:"omitempty,min=1"`
	Location   *string `json:"location,omitempty" validate:"omitempty,min=1"`
}

// PartnerUpdate ist der partielle Payload für eine Partnerorganisation.
type PartnerUpdate struct {
	Name    *string   `json:"name,omitempty" validate:"omitempty,min=1"`
	Socials *[]string `json:"socials,omitempty" validate:"omitempty,dive,url"`
	LogoURL *string   `json:"logo_url,omitempty" validate:"omitempty,url"`
}

// CareerUpdate ist der partielle Payload für eine Stellenausschreibung.
type CareerUpdate struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1"`
	Description *string `json:"description,omitempty"`
	Type        *string `json:"type,omitempty" validate:"omitempty,min=1"`
	IsClosed    *bool   `json:"is_closed,omitempty"`
}
