package memory

import (
	"context"
	"sort"
	"sync"

	"pet-tracker/internal/domain/pets"
)

// petsRepo guarda todas las variantes en un mapa por id, con una secuencia
// en proceso para asignar identidad. Clona en los dos bordes para que nadie
// mute estado compartido por fuera de Save.
type petsRepo struct {
	mu     sync.RWMutex
	byID   map[int64]pets.Pet
	nextID int64
}

func NewPetsRepo() pets.Repository {
	return &petsRepo{
		byID: make(map[int64]pets.Pet),
	}
}

func (r *petsRepo) GetByID(ctx context.Context, id int64) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, pets.ErrNotFound
	}
	return p.Clone(), nil
}

func (r *petsRepo) FindPage(ctx context.Context, req pets.PageRequest) (pets.Page, error) {
	req = req.Normalize()

	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int64, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if req.Desc {
			return ids[i] > ids[j]
		}
		return ids[i] < ids[j]
	})

	content := make([]pets.Pet, 0, req.Limit())
	for i := req.Offset(); i < len(ids) && len(content) < req.Limit(); i++ {
		content = append(content, r.byID[ids[i]].Clone())
	}

	return pets.Page{
		Content:       content,
		TotalElements: int64(len(ids)),
		Number:        req.Page,
		Size:          req.Size,
	}, nil
}

func (r *petsRepo) Save(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := p.Clone()
	if cp.PetID() == 0 {
		r.nextID++
		cp.SetID(r.nextID)
	}
	r.byID[cp.PetID()] = cp

	return cp.Clone(), nil
}

func (r *petsRepo) Delete(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[p.PetID()]; !ok {
		return pets.ErrNotFound
	}
	delete(r.byID, p.PetID())
	return nil
}

func (r *petsRepo) CountCatsOutsideZone(ctx context.Context) (map[pets.CatTrackerType]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[pets.CatTrackerType]int64)
	for _, p := range r.byID {
		c, ok := p.(*pets.Cat)
		if !ok || c.InZone {
			continue
		}
		out[c.TrackerType]++
	}
	return out, nil
}

func (r *petsRepo) CountDogsOutsideZone(ctx context.Context) (map[pets.DogTrackerType]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[pets.DogTrackerType]int64)
	for _, p := range r.byID {
		d, ok := p.(*pets.Dog)
		if !ok || d.InZone {
			continue
		}
		out[d.TrackerType]++
	}
	return out, nil
}
