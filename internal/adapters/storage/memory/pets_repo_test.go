package memory

import (
	"context"
	"errors"
	"testing"

	"pet-tracker/internal/domain/pets"
)

func TestPetsRepo_SaveAssignsSequentialIDs(t *testing.T) {
	repo := NewPetsRepo()
	ctx := context.Background()

	cat, err := repo.Save(ctx, &pets.Cat{OwnerID: 1, InZone: true, TrackerType: pets.CatTrackerSmall})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	dog, err := repo.Save(ctx, &pets.Dog{OwnerID: 2, InZone: true, TrackerType: pets.DogTrackerBig})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if cat.PetID() != 1 || dog.PetID() != 2 {
		t.Fatalf("ids not sequential: %d, %d", cat.PetID(), dog.PetID())
	}

	// re-save no reasigna identidad
	saved, err := repo.Save(ctx, cat)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.PetID() != cat.PetID() {
		t.Fatalf("identity changed on re-save: %d", saved.PetID())
	}
}

func TestPetsRepo_GetByID_ClonesState(t *testing.T) {
	repo := NewPetsRepo()
	ctx := context.Background()

	saved, _ := repo.Save(ctx, &pets.Cat{OwnerID: 1, InZone: true, TrackerType: pets.CatTrackerSmall})

	got, err := repo.GetByID(ctx, saved.PetID())
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}

	// mutar lo devuelto no toca lo guardado
	got.(*pets.Cat).OwnerID = 999

	again, _ := repo.GetByID(ctx, saved.PetID())
	if again.(*pets.Cat).OwnerID != 1 {
		t.Fatal("stored state mutated through returned value")
	}
}

func TestPetsRepo_GetByID_NotFound(t *testing.T) {
	repo := NewPetsRepo()

	_, err := repo.GetByID(context.Background(), 999)
	if !errors.Is(err, pets.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPetsRepo_FindPage(t *testing.T) {
	repo := NewPetsRepo()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := repo.Save(ctx, &pets.Dog{OwnerID: int64(i + 1), InZone: true, TrackerType: pets.DogTrackerSmall}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	page, err := repo.FindPage(ctx, pets.PageRequest{Page: 0, Size: 2})
	if err != nil {
		t.Fatalf("FindPage: %v", err)
	}
	if page.TotalElements != 5 || page.TotalPages() != 3 {
		t.Fatalf("unexpected totals: %d elements, %d pages", page.TotalElements, page.TotalPages())
	}
	if len(page.Content) != 2 || page.Content[0].PetID() != 1 || page.Content[1].PetID() != 2 {
		t.Fatalf("unexpected first page: %+v", page.Content)
	}

	desc, err := repo.FindPage(ctx, pets.PageRequest{Page: 0, Size: 2, Desc: true})
	if err != nil {
		t.Fatalf("FindPage desc: %v", err)
	}
	if desc.Content[0].PetID() != 5 || desc.Content[1].PetID() != 4 {
		t.Fatalf("unexpected desc page: %d, %d", desc.Content[0].PetID(), desc.Content[1].PetID())
	}

	beyond, err := repo.FindPage(ctx, pets.PageRequest{Page: 9, Size: 2})
	if err != nil {
		t.Fatalf("FindPage beyond: %v", err)
	}
	if len(beyond.Content) != 0 || beyond.TotalElements != 5 {
		t.Fatalf("unexpected page beyond end: len=%d total=%d", len(beyond.Content), beyond.TotalElements)
	}
}

func TestPetsRepo_Delete(t *testing.T) {
	repo := NewPetsRepo()
	ctx := context.Background()

	saved, _ := repo.Save(ctx, &pets.Cat{OwnerID: 1, InZone: true, TrackerType: pets.CatTrackerSmall})

	if err := repo.Delete(ctx, saved); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, saved); !errors.Is(err, pets.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPetsRepo_CountsOutsideZone(t *testing.T) {
	repo := NewPetsRepo()
	ctx := context.Background()

	seed := []pets.Pet{
		&pets.Cat{OwnerID: 1, InZone: false, TrackerType: pets.CatTrackerSmall},
		&pets.Cat{OwnerID: 2, InZone: false, TrackerType: pets.CatTrackerSmall},
		&pets.Cat{OwnerID: 3, InZone: true, TrackerType: pets.CatTrackerBig},
		&pets.Dog{OwnerID: 4, InZone: false, TrackerType: pets.DogTrackerBig},
	}
	for _, p := range seed {
		if _, err := repo.Save(ctx, p); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	cats, err := repo.CountCatsOutsideZone(ctx)
	if err != nil {
		t.Fatalf("CountCatsOutsideZone: %v", err)
	}
	if len(cats) != 1 || cats[pets.CatTrackerSmall] != 2 {
		t.Fatalf("unexpected cats: %v", cats)
	}

	dogs, err := repo.CountDogsOutsideZone(ctx)
	if err != nil {
		t.Fatalf("CountDogsOutsideZone: %v", err)
	}
	if len(dogs) != 1 || dogs[pets.DogTrackerBig] != 1 {
		t.Fatalf("unexpected dogs: %v", dogs)
	}
}
