package pets

import (
	"encoding/json"
	"fmt"
)

// Mapper convierte entre la representación wire y la persistida.
// Es deliberadamente "tonto": no valida reglas de negocio (eso ya pasó en
// DecodeDto) y las conversiones son funciones explícitas por variante,
// nada de matching por nombre de campo ni reflection. Una colisión de
// nombres entre variantes no puede elegir en silencio: no compila.
type Mapper struct {
	cfg Config
}

func NewMapper(cfg Config) *Mapper {
	return &Mapper{cfg: cfg}
}

// DecodeDto deserializa y valida un payload polimórfico: resuelve el tag
// petType contra el registro, decodifica la variante concreta y corre su
// validación. Todo error acá es ErrValidation.
func (m *Mapper) DecodeDto(data []byte) (PetDto, error) {
	var probe struct {
		PetType string `json:"petType"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	v, ok := variantByTag(probe.PetType)
	if !ok {
		return nil, fmt.Errorf("%w: unknown petType %q", ErrValidation, probe.PetType)
	}

	dto := v.newDto()
	if err := json.Unmarshal(data, dto); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := dto.validate(m.cfg); err != nil {
		return nil, err
	}
	return dto, nil
}

// ToEntity asigna un registro storage nuevo de la variante del dto.
// Nunca copia identidad (el payload de creación no la tiene).
func (m *Mapper) ToEntity(dto PetDto) (Pet, error) {
	v, ok := variantOf(dto.Kind())
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnknownVariant, dto)
	}
	p, ok := v.toEntity(dto)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnknownVariant, dto)
	}
	return p, nil
}

// MergeIntoEntity copia todos los campos del dto sobre el registro existente,
// preservando la identidad intacta. Precondición: las variantes coinciden;
// si no, ErrVariantMismatch y el registro queda sin tocar. No persiste nada,
// eso es problema del caller.
func (m *Mapper) MergeIntoEntity(dto PetDto, existing Pet) error {
	v, ok := variantOf(dto.Kind())
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnknownVariant, dto)
	}
	if !v.mergeInto(dto, existing) {
		return fmt.Errorf("%w: stored pet is %q, payload is %q",
			ErrVariantMismatch, existing.Kind(), dto.Kind())
	}
	return nil
}

// ToDto asigna un dto nuevo de la variante del registro, identidad incluida
// (de salida el id sí viaja).
func (m *Mapper) ToDto(p Pet) (PetDto, error) {
	v, ok := variantOf(p.Kind())
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnknownVariant, p)
	}
	dto, ok := v.toDto(p)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnknownVariant, p)
	}
	return dto, nil
}

// Conversiones por variante. Los punteros del dto ya vienen garantizados
// no-nil por validate; acá solo se copia campo a campo.

func catToEntity(d *CatDto) *Cat {
	return &Cat{
		OwnerID:     d.OwnerID,
		InZone:      *d.InZone,
		TrackerType: d.TrackerType,
		LostTracker: *d.LostTracker,
	}
}

func mergeIntoCat(d *CatDto, c *Cat) {
	c.OwnerID = d.OwnerID
	c.InZone = *d.InZone
	c.TrackerType = d.TrackerType
	c.LostTracker = *d.LostTracker
}

func catToDto(c *Cat) *CatDto {
	return &CatDto{
		ID:          c.ID,
		OwnerID:     c.OwnerID,
		InZone:      boolp(c.InZone),
		TrackerType: c.TrackerType,
		LostTracker: boolp(c.LostTracker),
	}
}

func dogToEntity(d *DogDto) *Dog {
	return &Dog{
		OwnerID:     d.OwnerID,
		InZone:      *d.InZone,
		TrackerType: d.TrackerType,
	}
}

func mergeIntoDog(d *DogDto, dg *Dog) {
	dg.OwnerID = d.OwnerID
	dg.InZone = *d.InZone
	dg.TrackerType = d.TrackerType
}

func dogToDto(dg *Dog) *DogDto {
	return &DogDto{
		ID:          dg.ID,
		OwnerID:     dg.OwnerID,
		InZone:      boolp(dg.InZone),
		TrackerType: dg.TrackerType,
	}
}
