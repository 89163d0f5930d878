package pets

import (
	"context"
	"errors"
	"fmt"

	"pet-tracker/internal/platform/logger"
)

// ErrUpdateRejected indica un update cuyo payload no corresponde a la
// variante del registro guardado. No se intenta ninguna escritura.
var ErrUpdateRejected = errors.New("pet cannot get updated")

// Service orquesta repo + mapper para las cinco operaciones CRUD más el
// reporte de zona. Sin estado entre requests: cada operación es una pasada
// única contra el repo, las carreras concurrentes sobre un mismo id las
// resuelve (o no) el backend de storage.
type Service struct {
	repo   Repository
	mapper *Mapper
	log    logger.Logger
}

func NewService(repo Repository, mapper *Mapper, log logger.Logger) *Service {
	return &Service{
		repo:   repo,
		mapper: mapper,
		log:    log,
	}
}

func (s *Service) GetPetByID(ctx context.Context, id int64) (PetDto, error) {
	p, err := s.findPetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.mapper.ToDto(p)
}

// GetAllPets pagina sobre todas las variantes y convierte item por item,
// así cada elemento del sobre conserva su petType en la salida.
func (s *Service) GetAllPets(ctx context.Context, req PageRequest) (DtoPage, error) {
	page, err := s.repo.FindPage(ctx, req)
	if err != nil {
		return DtoPage{}, err
	}

	content := make([]PetDto, 0, len(page.Content))
	for _, p := range page.Content {
		dto, err := s.mapper.ToDto(p)
		if err != nil {
			return DtoPage{}, err
		}
		content = append(content, dto)
	}

	return DtoPage{
		Content:       content,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages(),
		Number:        page.Number,
		Size:          page.Size,
	}, nil
}

// CountPetsOutsideZone corre una sub-agregación por variante registrada y
// junta todo en un reporte efímero. Grupos en cero no aparecen.
func (s *Service) CountPetsOutsideZone(ctx context.Context) (ZoneReportDto, error) {
	cats, err := s.repo.CountCatsOutsideZone(ctx)
	if err != nil {
		return ZoneReportDto{}, err
	}
	dogs, err := s.repo.CountDogsOutsideZone(ctx)
	if err != nil {
		return ZoneReportDto{}, err
	}
	return ZoneReportDto{Cats: cats, Dogs: dogs}, nil
}

func (s *Service) CreatePet(ctx context.Context, dto PetDto) (PetDto, error) {
	p, err := s.mapper.ToEntity(dto)
	if err != nil {
		return nil, err
	}
	saved, err := s.repo.Save(ctx, p)
	if err != nil {
		return nil, err
	}
	s.log.Info("created pet", map[string]any{"id": saved.PetID(), "petType": saved.Kind()})
	return s.mapper.ToDto(saved)
}

// UpdatePet reemplaza todos los campos no-identidad del registro. Un payload
// de otra variante se rechaza antes de cualquier save: cambiar de especie no
// es una conversión silenciosa, es un 400.
func (s *Service) UpdatePet(ctx context.Context, id int64, dto PetDto) (PetDto, error) {
	existing, err := s.findPetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.mapper.MergeIntoEntity(dto, existing); err != nil {
		s.log.Error("error updating pet", map[string]any{"id": id, "err": err.Error()})
		return nil, fmt.Errorf("%w: %d", ErrUpdateRejected, id)
	}

	saved, err := s.repo.Save(ctx, existing)
	if err != nil {
		return nil, err
	}
	return s.mapper.ToDto(saved)
}

func (s *Service) DeletePet(ctx context.Context, id int64) error {
	p, err := s.findPetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, p)
}

// findPetByID traduce el miss del repo a ErrNotFound con el id adentro.
// Not found es info, no error: es una condición normal del API.
func (s *Service) findPetByID(ctx context.Context, id int64) (Pet, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.log.Info("pet not found", map[string]any{"id": id})
			return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
		}
		return nil, err
	}
	return p, nil
}
