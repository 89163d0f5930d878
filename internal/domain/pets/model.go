package pets

import "strings"

// Kind identifica la variante concreta de una mascota.
// El set es cerrado: ver registry.go.
type Kind string

const (
	KindCat Kind = "cat"
	KindDog Kind = "dog"
)

// CatTrackerType define las clases de tamaño de tracker para gatos.
type CatTrackerType string

const (
	CatTrackerSmall  CatTrackerType = "SMALL"
	CatTrackerMedium CatTrackerType = "MEDIUM"
	CatTrackerBig    CatTrackerType = "BIG"
)

// DogTrackerType define las clases de tamaño de tracker para perros.
// Mismos símbolos que CatTrackerType pero es un tipo aparte a propósito:
// cada variante es dueña de su propio enum.
type DogTrackerType string

const (
	DogTrackerSmall  DogTrackerType = "SMALL"
	DogTrackerMedium DogTrackerType = "MEDIUM"
	DogTrackerBig    DogTrackerType = "BIG"
)

func parseCatTrackerType(s string, fold bool) (CatTrackerType, bool) {
	if fold {
		s = strings.ToUpper(strings.TrimSpace(s))
	}
	switch t := CatTrackerType(s); t {
	case CatTrackerSmall, CatTrackerMedium, CatTrackerBig:
		return t, true
	}
	return "", false
}

func parseDogTrackerType(s string, fold bool) (DogTrackerType, bool) {
	if fold {
		s = strings.ToUpper(strings.TrimSpace(s))
	}
	switch t := DogTrackerType(s); t {
	case DogTrackerSmall, DogTrackerMedium, DogTrackerBig:
		return t, true
	}
	return "", false
}

// Pet es la representación persistida común a todas las variantes.
// El método sin exportar sella la interfaz: solo Cat y Dog la implementan,
// así el dispatch por variante queda exhaustivo.
type Pet interface {
	PetID() int64
	SetID(id int64)
	Kind() Kind
	Clone() Pet

	isPet()
}

// Cat es la variante gato. LostTracker solo existe acá.
type Cat struct {
	ID          int64
	OwnerID     int64
	InZone      bool
	TrackerType CatTrackerType
	LostTracker bool
}

func (c *Cat) PetID() int64   { return c.ID }
func (c *Cat) SetID(id int64) { c.ID = id }
func (c *Cat) Kind() Kind     { return KindCat }
func (c *Cat) isPet()         {}

func (c *Cat) Clone() Pet {
	cp := *c
	return &cp
}

// Dog es la variante perro.
type Dog struct {
	ID          int64
	OwnerID     int64
	InZone      bool
	TrackerType DogTrackerType
}

func (d *Dog) PetID() int64   { return d.ID }
func (d *Dog) SetID(id int64) { d.ID = id }
func (d *Dog) Kind() Kind     { return KindDog }
func (d *Dog) isPet()         {}

func (d *Dog) Clone() Pet {
	cp := *d
	return &cp
}
