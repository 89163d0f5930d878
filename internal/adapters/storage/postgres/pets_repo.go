package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pet-tracker/internal/domain/pets"
)

// PetsRepo persiste cada variante en su propia tabla (cats, dogs) sobre la
// secuencia compartida pet_id_seq. Es el único lugar, junto al registro de
// variantes, donde el esquema conoce especies por nombre: agregar una
// variante nueva implica su tabla y sus ramas acá.
type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) GetByID(ctx context.Context, id int64) (pets.Pet, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, in_zone, tracker_type, lost_tracker
		FROM cats
		WHERE id = $1
	`, id)

	var c pets.Cat
	err := row.Scan(&c.ID, &c.OwnerID, &c.InZone, &c.TrackerType, &c.LostTracker)
	if err == nil {
		return &c, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	row = r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, in_zone, tracker_type
		FROM dogs
		WHERE id = $1
	`, id)

	var d pets.Dog
	err = row.Scan(&d.ID, &d.OwnerID, &d.InZone, &d.TrackerType)
	if err == nil {
		return &d, nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pets.ErrNotFound
	}
	return nil, err
}

func (r *PetsRepo) FindPage(ctx context.Context, req pets.PageRequest) (pets.Page, error) {
	req = req.Normalize()

	var total int64
	err := r.db.QueryRowContext(ctx, `
		SELECT (SELECT count(*) FROM cats) + (SELECT count(*) FROM dogs)
	`).Scan(&total)
	if err != nil {
		return pets.Page{}, err
	}

	dir := "ASC"
	if req.Desc {
		dir = "DESC"
	}

	// UNION ALL de ambas tablas con el tag de variante a mano, para que el
	// caller recupere la especie de cada fila sin adivinar.
	query := fmt.Sprintf(`
		SELECT id, owner_id, in_zone, tracker_type, lost_tracker, pet_type FROM (
			SELECT id, owner_id, in_zone, tracker_type, lost_tracker, 'cat' AS pet_type FROM cats
			UNION ALL
			SELECT id, owner_id, in_zone, tracker_type, NULL::boolean, 'dog' FROM dogs
		) AS all_pets
		ORDER BY id %s
		LIMIT $1 OFFSET $2
	`, dir)

	rows, err := r.db.QueryContext(ctx, query, req.Limit(), req.Offset())
	if err != nil {
		return pets.Page{}, err
	}
	defer rows.Close()

	content := make([]pets.Pet, 0, req.Limit())
	for rows.Next() {
		p, err := scanTaggedPet(rows)
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
	switch v := p.(type) {
	case *pets.Cat:
		return r.saveCat(ctx, v)
	case *pets.Dog:
		return r.saveDog(ctx, v)
	default:
		return nil, fmt.Errorf("postgres: unsupported pet kind %q", p.Kind())
	}
}

func (r *PetsRepo) saveCat(ctx context.Context, c *pets.Cat) (pets.Pet, error) {
	if c.ID == 0 {
		err := r.db.QueryRowContext(ctx, `
			INSERT INTO cats (owner_id, in_zone, tracker_type, lost_tracker)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, c.OwnerID, c.InZone, c.TrackerType, c.LostTracker).Scan(&c.ID)
		if err != nil {
			return nil, err
		}
		return c, nil
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE cats
		SET owner_id = $2, in_zone = $3, tracker_type = $4, lost_tracker = $5
		WHERE id = $1
	`, c.ID, c.OwnerID, c.InZone, c.TrackerType, c.LostTracker)
	if err != nil {
		return nil, err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return nil, pets.ErrNotFound
	}
	return c, nil
}

func (r *PetsRepo) saveDog(ctx context.Context, d *pets.Dog) (pets.Pet, error) {
	if d.ID == 0 {
		err := r.db.QueryRowContext(ctx, `
			INSERT INTO dogs (owner_id, in_zone, tracker_type)
			VALUES ($1, $2, $3)
			RETURNING id
		`, d.OwnerID, d.InZone, d.TrackerType).Scan(&d.ID)
		if err != nil {
			return nil, err
		}
		return d, nil
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE dogs
		SET owner_id = $2, in_zone = $3, tracker_type = $4
		WHERE id = $1
	`, d.ID, d.OwnerID, d.InZone, d.TrackerType)
	if err != nil {
		return nil, err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return nil, pets.ErrNotFound
	}
	return d, nil
}

func (r *PetsRepo) Delete(ctx context.Context, p pets.Pet) error {
	table := "cats"
	if p.Kind() == pets.KindDog {
		table = "dogs"
	}

	res, err := r.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), p.PetID())
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
		FROM cats
		WHERE in_zone = FALSE
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
		FROM dogs
		WHERE in_zone = FALSE
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

// scanTaggedPet arma la variante concreta desde una fila del UNION ALL.
func scanTaggedPet(rows *sql.Rows) (pets.Pet, error) {
	var (
		id          int64
		ownerID     int64
		inZone      bool
		trackerType string
		lostTracker sql.NullBool
		petType     string
	)
	if err := rows.Scan(&id, &ownerID, &inZone, &trackerType, &lostTracker, &petType); err != nil {
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
		return nil, fmt.Errorf("postgres: unexpected pet_type %q", petType)
	}
}
