package store

import (
	"context"

	"rapv/site/internal/models"
)

func (s *Store) ListFacilities(ctx context.Context) ([]models.Facility, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title_en, title_hi, description_en, description_hi, image, icon
		FROM facilities
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.Facility{}
	for rows.Next() {
		var item models.Facility
		if err := rows.Scan(
			&item.ID, &item.Title.En, &item.Title.Hi, &item.Description.En, &item.Description.Hi,
			&item.Image, &item.Icon,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *Store) CreateFacility(ctx context.Context, facility models.Facility) (*models.Facility, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO facilities (title_en, title_hi, description_en, description_hi, image, icon, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		RETURNING id
	`, facility.Title.En, facility.Title.Hi, facility.Description.En, facility.Description.Hi,
		facility.Image, string(facility.Icon)).Scan(&facility.ID)
	if err != nil {
		return nil, err
	}
	return &facility, nil
}

func (s *Store) UpdateFacility(ctx context.Context, id int64, facility models.Facility) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE facilities
		SET title_en = $2, title_hi = $3, description_en = $4, description_hi = $5, image = $6, icon = $7
		WHERE id = $1
	`, id, facility.Title.En, facility.Title.Hi, facility.Description.En, facility.Description.Hi,
		facility.Image, string(facility.Icon))
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (s *Store) DeleteFacility(ctx context.Context, id int64) error {
	return deleteByKey(ctx, s.db, `DELETE FROM facilities WHERE id = $1`, id)
}

type FacilitiesTable struct{ s *Store }

func (s *Store) Facilities() FacilitiesTable { return FacilitiesTable{s: s} }

func (t FacilitiesTable) Insert(ctx context.Context, item models.Facility) (models.Facility, error) {
	created, err := t.s.CreateFacility(ctx, item)
	if err != nil {
		return models.Facility{}, err
	}
	return *created, nil
}

func (t FacilitiesTable) Update(ctx context.Context, id int64, item models.Facility) error {
	return t.s.UpdateFacility(ctx, id, item)
}

func (t FacilitiesTable) Delete(ctx context.Context, id int64) error {
	return t.s.DeleteFacility(ctx, id)
}
