package pets

import (
	"errors"
	"strings"
)

var (
	// ErrUnknownVariant indica que una instancia fuera del registro llegó al
	// mapper. Con las interfaces selladas no debería pasar; si pasa, es drift
	// entre registro y esquema, no un error de usuario.
	ErrUnknownVariant = errors.New("unknown pet variant")

	// ErrVariantMismatch indica un update cuyo payload no corresponde a la
	// variante del registro existente. Garantiza que no hubo escritura.
	ErrVariantMismatch = errors.New("pet variant mismatch")
)

// variant agrupa todo lo que el sistema necesita por variante: el tag wire,
// cómo asignar un dto vacío y las conversiones explícitas contra storage.
// Agregar una especie nueva = una entrada acá más su par de representaciones;
// ningún otro componente del dominio distingue variantes por nombre.
type variant struct {
	kind   Kind
	newDto func() PetDto

	toEntity  func(PetDto) (Pet, bool)
	mergeInto func(PetDto, Pet) bool
	toDto     func(Pet) (PetDto, bool)
}

var registry = []variant{
	{
		kind:   KindCat,
		newDto: func() PetDto { return new(CatDto) },
		toEntity: func(d PetDto) (Pet, bool) {
			cd, ok := d.(*CatDto)
			if !ok {
				return nil, false
			}
			return catToEntity(cd), true
		},
		mergeInto: func(d PetDto, p Pet) bool {
			cd, ok := d.(*CatDto)
			if !ok {
				return false
			}
			c, ok := p.(*Cat)
			if !ok {
				return false
			}
			mergeIntoCat(cd, c)
			return true
		},
		toDto: func(p Pet) (PetDto, bool) {
			c, ok := p.(*Cat)
			if !ok {
				return nil, false
			}
			return catToDto(c), true
		},
	},
	{
		kind:   KindDog,
		newDto: func() PetDto { return new(DogDto) },
		toEntity: func(d PetDto) (Pet, bool) {
			dd, ok := d.(*DogDto)
			if !ok {
				return nil, false
			}
			return dogToEntity(dd), true
		},
		mergeInto: func(d PetDto, p Pet) bool {
			dd, ok := d.(*DogDto)
			if !ok {
				return false
			}
			dg, ok := p.(*Dog)
			if !ok {
				return false
			}
			mergeIntoDog(dd, dg)
			return true
		},
		toDto: func(p Pet) (PetDto, bool) {
			dg, ok := p.(*Dog)
			if !ok {
				return nil, false
			}
			return dogToDto(dg), true
		},
	},
}

// variantByTag resuelve el discriminador wire. El tag se pliega siempre
// ("CAT" == "cat"); un tag desconocido es error de validación, no del mapper.
func variantByTag(tag string) (variant, bool) {
	for _, v := range registry {
		if strings.EqualFold(string(v.kind), tag) {
			return v, true
		}
	}
	return variant{}, false
}

func variantOf(k Kind) (variant, bool) {
	for _, v := range registry {
		if v.kind == k {
			return v, true
		}
	}
	return variant{}, false
}
