package models

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// FieldErrors bildet Feldpfade auf ihre Validierungsmeldungen ab.
type FieldErrors map[string][]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	var b strings.Builder
	b.WriteString("validation failed:")
	for _, f := range fields {
		fmt.Fprintf(&b, " %s: %s;", f, strings.Join(e[f], ", "))
	}
	return strings.TrimSuffix(b.String(), ";")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Publikationsjahr: 1900 bis einschließlich laufendes Jahr.
	v.RegisterValidation("pubyear", func(fl validator.FieldLevel) bool {
		year := int(fl.Field().Int())
		return year >= 1900 && year <= time.Now().Year()
	})

	// Journal und Conference schließen sich gegenseitig aus.
	v.RegisterStructValidation(publicationExclusivity, PublicationInput{})
	v.RegisterStructValidation(publicationUpdateExclusivity, PublicationUpdate{})
	return v
}

func publicationExclusivity(sl validator.StructLevel) {
	in := sl.Current().Interface().(PublicationInput)
	if in.Journal != "" && in.Conference != "" {
		sl.ReportError(in.Conference, "conference", "Conference", "exclusive_with_journal", "")
	}
}

func publicationUpdateExclusivity(sl validator.StructLevel) {
	in := sl.Current().Interface().(PublicationUpdate)
	if in.Journal != nil && in.Conference != nil && *in.Journal != "" && *in.Conference != "" {
		sl.ReportError(in.Conference, "conference", "Conference", "exclusive_with_journal", "")
	}
}

// Validate prüft einen Eingabe-Typ gegen sein Schema. Gibt nil zurück,
// wenn alle Regeln erfüllt sind, sonst FieldErrors pro Feldpfad.
func Validate(in any) FieldErrors {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return FieldErrors{"_": {err.Error()}}
	}

	out := FieldErrors{}
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		out[field] = append(out[field], messageFor(fe))
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "pubyear":
		return fmt.Sprintf("year must be between 1900 and %d", time.Now().Year())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "url":
		return "must be a valid URL"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "gte":
		return fmt.Sprintf("must be >= %s", fe.Param())
	case "min":
		return "must not be empty"
	case "exclusive_with_journal":
		return "journal and conference are mutually exclusive"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
