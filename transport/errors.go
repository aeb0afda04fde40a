package transport

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// NetworkError bedeutet: keine Antwort vom Backend erhalten.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "network error: " + e.Err.Error() }
func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError ist eine Fehlerantwort des Backends (non-2xx).
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

// NotFoundError ist ein 404 für eine Operation, die eine existierende ID erwartet.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string { return "not found: " + e.Path }

// ValidationError ist eine strukturierte 422-Ablehnung des Backends
// (oder des lokalen Schemas): Feldpfad → Meldungen.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+strings.Join(e.Fields[f], ", "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// IsNotFound meldet, ob err ein NotFoundError ist.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsNetwork meldet, ob err ein reiner Transportfehler ohne Antwort ist.
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}
