package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pet-tracker/internal/domain/pets"
)

// PetsRepo persiste todas las variantes en una sola tabla con columna
// discriminadora, la otra forma válida del esquema base-más-extensión.
// El WHERE por pet_type en los updates refuerza en storage que la variante
// de un registro no cambia nunca.
type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

const petColumns = `id, pet_type, owner_id, in_zone, tracker_type, lost_tracker`

func (r *PetsRepo) GetByID(ctx context.Context, id int64) (pets.Pet, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+petColumns+` FROM pets WHERE id = ?`, id)

	p, err := scanPet(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pets.ErrNotFound
	}
	return p, err
}

func (r *PetsRepo) FindPage(ctx context.Context, req pets.PageRequest) (pets.Page, error) {
	req = req.Normalize()

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM pets`).Scan(&total); err != nil {
		return pets.Page{}, err
	}

	dir := "ASC"
	if req.Desc {
		dir = "DESC"
	}

	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT `+petColumns+` FROM pets ORDER BY id %s LIMIT ? OFFSET ?`, dir),
		req.Limit(), req.Offset())
	if err != nil {
		return pets.Page{}, err
	}
	defer rows.Close()

	content := make([]pets.Pet, 0, req.Limit())
	for rows.Next() {
		p, err := scanPet(rows.Scan)
		if err != nil {
			return pets.Page{}, err
		}
		content = append(content, p)
	}
	if err := rows.Err(); err != nil {
		return pets.Page{}, err
	}

	return pets.Page{
		Content:       content,
		TotalElements: total,
		Number:        req.Page,
		Size:          req.Size,
	}, nil
}

func (r *PetsRepo) Save(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	var (
		ownerID     int64
		inZone      bool
		trackerType string
		lostTracker sql.NullBool
	)
	switch v := p.(type) {
	case *pets.Cat:
		ownerID, inZone = v.OwnerID, v.InZone
		trackerType = string(v.TrackerType)
		lostTracker = sql.NullBool{Bool: v.LostTracker, Valid: true}
	case *pets.Dog:
		ownerID, inZone = v.OwnerID, v.InZone
		trackerType = string(v.TrackerType)
	default:
		return nil, fmt.Errorf("sqlite: unsupported pet kind %q", p.Kind())
	}

	if p.PetID() == 0 {
		res, err := r.db.ExecContext(ctx, `
			INSERT INTO pets (pet_type, owner_id, in_zone, tracker_type, lost_tracker)
			VALUES (?, ?, ?, ?, ?)
		`, string(p.Kind()), ownerID, inZone, trackerType, lostTracker)
		if err != nil {
			return nil, err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, err
		}
		p.SetID(id)
		return p, nil
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET owner_id = ?, in_zone = ?, tracker_type = ?, lost_tracker = ?
		WHERE id = ? AND pet_type = ?
	`, ownerID, inZone, trackerType, lostTracker, p.PetID(), string(p.Kind()))
	if err != nil {
		return nil, err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return nil, pets.ErrNotFound
	}
	return p, nil
}

func (r *PetsRepo) Delete(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = ?`, p.PetID())
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetsRepo) CountCatsOutsideZone(ctx context.Context) (map[pets.CatTrackerType]int64, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT tracker_type, count(*)
		FROM pets
		WHERE pet_type = 'cat' AND in_zone = 0
		GROUP BY tracker_type
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[pets.CatTrackerType]int64)
	for rows.Next() {
		var tt pets.CatTrackerType
		var n int64
		if err := rows.Scan(&tt, &n); err != nil {
			return nil, err
		}
		out[tt] = n
	}
	return out, rows.Err()
}

func (r *PetsRepo) CountDogsOutsideZone(ctx context.Context) (map[pets.DogTrackerType]int64, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT tracker_type, count(*)
		FROM pets
		WHERE pet_type = 'dog' AND in_zone = 0
		GROUP BY tracker_type
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[pets.DogTrackerType]int64)
	for rows.Next() {
		var tt pets.DogTrackerType
		var n int64
		if err := rows.Scan(&tt, &n); err != nil {
			return nil, err
		}
		out[tt] = n
	}
	return out, rows.Err()
}

// scanPet arma la variante concreta desde una fila de la tabla única.
func scanPet(scan func(dest ...any) error) (pets.Pet, error) {
	var (
		id          int64
		petType     string
		ownerID     int64
		inZone      bool
		trackerType string
		lostTracker sql.NullBool
	)
	if err := scan(&id, &petType, &ownerID, &inZone, &trackerType, &lostTracker); err != nil {
		return nil, err
	}

	switch pets.Kind(petType) {
	case pets.KindCat:
		return &pets.Cat{
			ID:          id,
			OwnerID:     ownerID,
			InZone:      inZone,
			TrackerType: pets.CatTrackerType(trackerType),
			LostTracker: lostTracker.Bool,
		}, nil
	case pets.KindDog:
		return &pets.Dog{
			ID:          id,
			OwnerID:     ownerID,
			InZone:      inZone,
			TrackerType: pets.DogTrackerType(trackerType),
		}, nil
	default:
		return nil, fmt.Errorf("sqlite: unexpected pet_type %q", petType)
	}
}
