package pets

import (
	"context"
	"errors"
)

// ErrNotFound indica que no hay registro para esa identidad.
var ErrNotFound = errors.New("pet not found")

// Repository es el puerto de persistencia sobre la colección lógica de
// mascotas, todas las variantes bajo un mismo espacio de ids.
//
// Save asigna identidad solo en la primera escritura (id == 0); después el
// id es inmutable. Los conteos por zona enumeran solo los grupos que existen
// en el subconjunto fuera de zona: nunca devuelven ceros.
type Repository interface {
	GetByID(ctx context.Context, id int64) (Pet, error)
	FindPage(ctx context.Context, req PageRequest) (Page, error)
	Save(ctx context.Context, p Pet) (Pet, error)
	Delete(ctx context.Context, p Pet) error

	CountCatsOutsideZone(ctx context.Context) (map[CatTrackerType]int64, error)
	CountDogsOutsideZone(ctx context.Context) (map[DogTrackerType]int64, error)
}
