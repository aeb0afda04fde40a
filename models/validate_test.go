package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPublicationInput() PublicationInput {
	return PublicationInput{
		UserID:          1,
		Title:           "Attention Is Not All You Need",
		Authors:         "A. Author, B. Author",
		PublicationType: PublicationTypeJournal,
		Journal:         "Journal of Results",
		Year:            2021,
	}
}

func TestValidatePublicationInput(t *testing.T) {
	assert.Nil(t, Validate(validPublicationInput()))
}

func TestValidateRequiredFields(t *testing.T) {
	in := validPublicationInput()
	in.Title = ""
	in.Authors = ""

	errs := Validate(in)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "authors")
	assert.NotContains(t, errs, "year")
}

func TestValidatePublicationYearRange(t *testing.T) {
	in := validPublicationInput()

	in.Year = 1899
	errs := Validate(in)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "year")

	in.Year = time.Now().Year() + 1
	errs = Validate(in)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "year")

	in.Year = time.Now().Year()
	assert.Nil(t, Validate(in))

	in.Year = 1900
	assert.Nil(t, Validate(in))
}

func TestValidatePublicationType(t *testing.T) {
	in := validPublicationInput()
	in.PublicationType = "preprint"

	errs := Validate(in)
	require.NotNil(t, errs)
	require.Contains(t, errs, "publicationtype")
	assert.Contains(t, errs["publicationtype"][0], "must be one of")
}

func TestValidateJournalConferenceExclusive(t *testing.T) {
	in := validPublicationInput()
	in.Conference = "NeurIPS"

	errs := Validate(in)
	require.NotNil(t, errs)
	require.Contains(t, errs, "conference")
	assert.Contains(t, errs["conference"][0], "mutually exclusive")
}

func TestValidatePublicationUpdateExclusive(t *testing.T) {
	journal := "Journal of Results"
	conference := "NeurIPS"

	errs := Validate(PublicationUpdate{Journal: &journal, Conference: &conference})
	require.NotNil(t, errs)
	assert.Contains(t, errs, "conference")

	// Ein leerer Wert löscht das Gegenfeld, das ist erlaubt.
	empty := ""
	assert.Nil(t, Validate(PublicationUpdate{Journal: &journal, Conference: &empty}))
}

func TestValidateURLFields(t *testing.T) {
	in := validPublicationInput()
	in.PDFLink = "not a url"

	errs := Validate(in)
	require.NotNil(t, errs)
	require.Contains(t, errs, "pdflink")
	assert.Equal(t, "must be a valid URL", errs["pdflink"][0])

	in.PDFLink = "https://example.org/paper.pdf"
	assert.Nil(t, Validate(in))
}

func TestValidateUpdateIgnoresUnsetFields(t *testing.T) {
	// Ein leeres Update ist gültig; nur gesetzte Felder werden geprüft.
	assert.Nil(t, Validate(PublicationUpdate{}))

	badYear := 1500
	errs := Validate(PublicationUpdate{Year: &badYear})
	require.NotNil(t, errs)
	assert.Contains(t, errs, "year")
}

func TestValidateTeachingDates(t *testing.T) {
	in := TeachingInput{
		UserID:      1,
		Institution: "ETH",
		Position:    "Lecturer",
		StartDate:   "2020-09-01",
	}
	assert.Nil(t, Validate(in))

	in.StartDate = "01.09.2020"
	errs := Validate(in)
	require.NotNil(t, errs)
	require.Contains(t, errs, "startdate")
	assert.Equal(t, "must be a date in YYYY-MM-DD format", errs["startdate"][0])
}

func TestValidateProfileOrgRole(t *testing.T) {
	in := ProfileInput{UserID: 1, Name: "Ada", OrgRole: "director"}

	errs := Validate(in)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "orgrole")

	in.OrgRole = OrgRoleTeam
	assert.Nil(t, Validate(in))
}

func TestValidatePartnerSocials(t *testing.T) {
	in := PartnerInput{Name: "Partner Lab", Socials: []string{"https://example.org", "nope"}}

	errs := Validate(in)
	require.NotNil(t, errs)
	require.Len(t, errs, 1)

	in.Socials = []string{"https://example.org"}
	assert.Nil(t, Validate(in))
}

func TestFieldErrorsMessage(t *testing.T) {
	errs := FieldErrors{
		"title": {"field is required"},
		"year":  {"year must be between 1900 and 2026"},
	}
	msg := errs.Error()
	assert.Contains(t, msg, "validation failed:")
	assert.Contains(t, msg, "title: field is required")
	assert.Contains(t, msg, "year:")
}
