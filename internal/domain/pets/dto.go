package pets

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrValidation cubre payloads malformados o con campos requeridos ausentes.
// Se corta en el borde HTTP (400) antes de tocar mapper o repo.
var ErrValidation = errors.New("invalid pet payload")

// Config es la configuración explícita e inmutable del mapper/decoder.
// Nada de estado global: se pasa en la construcción.
type Config struct {
	// FoldEnumCase acepta valores de enum sin distinguir mayúsculas
	// ("small" == "SMALL"). El tag petType se pliega siempre.
	FoldEnumCase bool
}

func DefaultConfig() Config {
	return Config{FoldEnumCase: true}
}

// PetDto es la representación wire de una mascota, sellada igual que Pet.
// validate corre en el decode, antes que cualquier lógica de servicio.
type PetDto interface {
	Kind() Kind

	validate(cfg Config) error
}

// CatDto es el payload wire de un gato.
// InZone y LostTracker son punteros para distinguir "ausente" de false.
// ID es solo de salida: si viene en el request se lee y se descarta
// (el mapper nunca copia identidad desde el wire).
type CatDto struct {
	ID          int64          `json:"id,omitempty"`
	OwnerID     int64          `json:"ownerId"`
	InZone      *bool          `json:"inZone"`
	TrackerType CatTrackerType `json:"trackerType"`
	LostTracker *bool          `json:"lostTracker"`
}

func (d *CatDto) Kind() Kind { return KindCat }

func (d *CatDto) MarshalJSON() ([]byte, error) {
	type alias CatDto
	return json.Marshal(struct {
		PetType Kind `json:"petType"`
		*alias
	}{PetType: KindCat, alias: (*alias)(d)})
}

func (d *CatDto) validate(cfg Config) error {
	if d.OwnerID <= 0 {
		return fmt.Errorf("%w: ownerId must be positive", ErrValidation)
	}
	if d.InZone == nil {
		return fmt.Errorf("%w: inZone is required", ErrValidation)
	}
	tt, ok := parseCatTrackerType(string(d.TrackerType), cfg.FoldEnumCase)
	if !ok {
		return fmt.Errorf("%w: unknown trackerType %q", ErrValidation, d.TrackerType)
	}
	d.TrackerType = tt
	if d.LostTracker == nil {
		return fmt.Errorf("%w: lostTracker is required", ErrValidation)
	}
	return nil
}

// DogDto es el payload wire de un perro. No tiene lostTracker.
type DogDto struct {
	ID          int64          `json:"id,omitempty"`
	OwnerID     int64          `json:"ownerId"`
	InZone      *bool          `json:"inZone"`
	TrackerType DogTrackerType `json:"trackerType"`
}

func (d *DogDto) Kind() Kind { return KindDog }

func (d *DogDto) MarshalJSON() ([]byte, error) {
	type alias DogDto
	return json.Marshal(struct {
		PetType Kind `json:"petType"`
		*alias
	}{PetType: KindDog, alias: (*alias)(d)})
}

func (d *DogDto) validate(cfg Config) error {
	if d.OwnerID <= 0 {
		return fmt.Errorf("%w: ownerId must be positive", ErrValidation)
	}
	if d.InZone == nil {
		return fmt.Errorf("%w: inZone is required", ErrValidation)
	}
	tt, ok := parseDogTrackerType(string(d.TrackerType), cfg.FoldEnumCase)
	if !ok {
		return fmt.Errorf("%w: unknown trackerType %q", ErrValidation, d.TrackerType)
	}
	d.TrackerType = tt
	return nil
}

// DtoPage es el sobre de paginación wire. Cada item conserva su petType
// porque el MarshalJSON de cada dto lo emite; el sobre no aplana variantes.
type DtoPage struct {
	Content       []PetDto `json:"content"`
	TotalElements int64    `json:"totalElements"`
	TotalPages    int      `json:"totalPages"`
	Number        int      `json:"number"`
	Size          int      `json:"size"`
}

// ZoneReportDto es el agregado efímero de violaciones de zona:
// tracker type -> cantidad fuera de zona, por variante.
// Claves ausentes implican cero; nunca se emiten grupos con 0.
type ZoneReportDto struct {
	Cats map[CatTrackerType]int64 `json:"cats"`
	Dogs map[DogTrackerType]int64 `json:"dogs"`
}

func boolp(b bool) *bool { return &b }
