package cache

import "fmt"

// EntityType benennt eine Entity-Familie des Backends.
type EntityType string

const (
	EntityPublications EntityType = "publications"
	EntityBioSections  EntityType = "bio_sections"
	EntityTeaching     EntityType = "teaching"
	EntityCourses      EntityType = "courses"
	EntityProfile      EntityType = "profile"
	EntityCenters      EntityType = "org_centers"
	EntityPartners     EntityType = "org_partners"
	EntityCareers      EntityType = "org_careers"
)

// Key identifiziert eine gescopte Leseabfrage strukturell: Entity-Typ plus
// Scope (typischerweise die User-ID; 0 für organisationsweite Entities).
// Kein String-Matching — Invalidierung vergleicht Felder.
type Key struct {
	Entity  EntityType
	ScopeID int
}

func (k Key) String() string {
	if k.ScopeID == 0 {
		return string(k.Entity)
	}
	return fmt.Sprintf("%s/%d", k.Entity, k.ScopeID)
}

// State ist der Zustand eines Cache-Eintrags.
type State int

const (
	StateUnfetched State = iota
	StateLoading
	StateLoaded
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateErrored:
		return "errored"
	default:
		return "unfetched"
	}
}

// Snapshot ist der nach außen sichtbare Zustand eines Eintrags. Während
// eines Refetch bleibt der zuletzt geladene Wert sichtbar.
type Snapshot struct {
	State State
	Value any
	Err   error
}
