package pets

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func newTestMapper() *Mapper {
	return NewMapper(DefaultConfig())
}

func TestMapper_RoundTrip_Cat(t *testing.T) {
	m := newTestMapper()

	in := &CatDto{
		OwnerID:     100,
		InZone:      boolp(true),
		TrackerType: CatTrackerSmall,
		LostTracker: boolp(false),
	}

	p, err := m.ToEntity(in)
	if err != nil {
		t.Fatalf("ToEntity: %v", err)
	}
	if p.PetID() != 0 {
		t.Fatalf("expected no identity before save, got %d", p.PetID())
	}

	out, err := m.ToDto(p)
	if err != nil {
		t.Fatalf("ToDto: %v", err)
	}

	cat, ok := out.(*CatDto)
	if !ok {
		t.Fatalf("expected *CatDto, got %T", out)
	}
	if cat.OwnerID != 100 || *cat.InZone != true ||
		cat.TrackerType != CatTrackerSmall || *cat.LostTracker != false {
		t.Fatalf("round trip lost fields: %+v", cat)
	}
}

func TestMapper_RoundTrip_Dog(t *testing.T) {
	m := newTestMapper()

	in := &DogDto{
		OwnerID:     7,
		InZone:      boolp(false),
		TrackerType: DogTrackerBig,
	}

	p, err := m.ToEntity(in)
	if err != nil {
		t.Fatalf("ToEntity: %v", err)
	}

	out, err := m.ToDto(p)
	if err != nil {
		t.Fatalf("ToDto: %v", err)
	}

	dog, ok := out.(*DogDto)
	if !ok {
		t.Fatalf("expected *DogDto, got %T", out)
	}
	if dog.OwnerID != 7 || *dog.InZone != false || dog.TrackerType != DogTrackerBig {
		t.Fatalf("round trip lost fields: %+v", dog)
	}
}

func TestMapper_ToEntity_NeverCopiesIdentity(t *testing.T) {
	m := newTestMapper()

	// aunque el dto traiga id, a storage nunca llega
	in := &CatDto{
		ID:          99,
		OwnerID:     1,
		InZone:      boolp(true),
		TrackerType: CatTrackerBig,
		LostTracker: boolp(true),
	}

	p, err := m.ToEntity(in)
	if err != nil {
		t.Fatalf("ToEntity: %v", err)
	}
	if p.PetID() != 0 {
		t.Fatalf("identity copied from wire: %d", p.PetID())
	}
}

func TestMapper_MergeIntoEntity_PreservesIdentity(t *testing.T) {
	m := newTestMapper()

	existing := &Cat{ID: 5, OwnerID: 1, InZone: true, TrackerType: CatTrackerSmall}
	in := &CatDto{
		ID:          123,
		OwnerID:     2,
		InZone:      boolp(false),
		TrackerType: CatTrackerBig,
		LostTracker: boolp(true),
	}

	if err := m.MergeIntoEntity(in, existing); err != nil {
		t.Fatalf("MergeIntoEntity: %v", err)
	}

	if existing.ID != 5 {
		t.Fatalf("identity changed to %d", existing.ID)
	}
	if existing.OwnerID != 2 || existing.InZone != false ||
		existing.TrackerType != CatTrackerBig || existing.LostTracker != true {
		t.Fatalf("fields not merged: %+v", existing)
	}
}

func TestMapper_MergeIntoEntity_VariantMismatch(t *testing.T) {
	m := newTestMapper()

	existing := &Dog{ID: 5, OwnerID: 1, InZone: true, TrackerType: DogTrackerSmall}
	snapshot := *existing

	in := &CatDto{
		OwnerID:     2,
		InZone:      boolp(false),
		TrackerType: CatTrackerBig,
		LostTracker: boolp(true),
	}

	err := m.MergeIntoEntity(in, existing)
	if !errors.Is(err, ErrVariantMismatch) {
		t.Fatalf("expected ErrVariantMismatch, got %v", err)
	}
	if *existing != snapshot {
		t.Fatalf("existing mutated on mismatch: %+v", existing)
	}
}

func TestMapper_DecodeDto(t *testing.T) {
	m := newTestMapper()

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid cat", `{"petType":"cat","ownerId":100,"inZone":true,"trackerType":"SMALL","lostTracker":false}`, false},
		{"valid dog", `{"petType":"dog","ownerId":1,"inZone":false,"trackerType":"BIG"}`, false},
		{"tag is case-insensitive", `{"petType":"CAT","ownerId":1,"inZone":true,"trackerType":"SMALL","lostTracker":true}`, false},
		{"enum folds case", `{"petType":"dog","ownerId":1,"inZone":true,"trackerType":"medium"}`, false},
		{"unknown petType", `{"petType":"bird","ownerId":1,"inZone":true}`, true},
		{"missing petType", `{"ownerId":1,"inZone":true,"trackerType":"SMALL"}`, true},
		{"missing inZone", `{"petType":"dog","ownerId":1,"trackerType":"SMALL"}`, true},
		{"missing lostTracker", `{"petType":"cat","ownerId":1,"inZone":true,"trackerType":"SMALL"}`, true},
		{"non-positive ownerId", `{"petType":"dog","ownerId":0,"inZone":true,"trackerType":"SMALL"}`, true},
		{"unknown trackerType", `{"petType":"dog","ownerId":1,"inZone":true,"trackerType":"HUGE"}`, true},
		{"not json", `not json`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dto, err := m.DecodeDto([]byte(tt.body))
			if tt.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Fatalf("expected ErrValidation, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeDto: %v", err)
			}
			if dto == nil {
				t.Fatal("nil dto without error")
			}
		})
	}
}

func TestMapper_DecodeDto_NormalizesEnums(t *testing.T) {
	m := newTestMapper()

	dto, err := m.DecodeDto([]byte(`{"petType":"cat","ownerId":1,"inZone":true,"trackerType":"small","lostTracker":true}`))
	if err != nil {
		t.Fatalf("DecodeDto: %v", err)
	}
	cat := dto.(*CatDto)
	if cat.TrackerType != CatTrackerSmall {
		t.Fatalf("enum not folded: %q", cat.TrackerType)
	}
}

func TestDto_MarshalJSON_EmitsDiscriminator(t *testing.T) {
	m := newTestMapper()

	for _, p := range []Pet{
		&Cat{ID: 1, OwnerID: 1, InZone: true, TrackerType: CatTrackerSmall},
		&Dog{ID: 2, OwnerID: 1, InZone: true, TrackerType: DogTrackerBig},
	} {
		dto, err := m.ToDto(p)
		if err != nil {
			t.Fatalf("ToDto: %v", err)
		}
		b, err := json.Marshal(dto)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		want := `"petType":"` + string(p.Kind()) + `"`
		if !strings.Contains(string(b), want) {
			t.Fatalf("marshaled dto lost discriminator: %s", b)
		}
	}
}
