package store

import (
	"context"

	"rapv/site/internal/models"
)

func (s *Store) ListStaff(ctx context.Context) ([]models.StaffMember, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name_en, name_hi, designation_en, designation_hi, subject_en, subject_hi, photo
		FROM staff
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.StaffMember{}
	for rows.Next() {
		var item models.StaffMember
		if err := rows.Scan(
			&item.ID, &item.Name.En, &item.Name.Hi, &item.Designation.En, &item.Designation.Hi,
			&item.Subject.En, &item.Subject.Hi, &item.Photo,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *Store) CreateStaffMember(ctx context.Context, member models.StaffMember) (*models.StaffMember, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO staff (name_en, name_hi, designation_en, designation_hi, subject_en, subject_hi, photo, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		RETURNING id
	`, member.Name.En, member.Name.Hi, member.Designation.En, member.Designation.Hi,
		member.Subject.En, member.Subject.Hi, member.Photo).Scan(&member.ID)
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *Store) UpdateStaffMember(ctx context.Context, id int64, member models.StaffMember) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE staff
		SET name_en = $2, name_hi = $3, designation_en = $4, designation_hi = $5,
		    subject_en = $6, subject_hi = $7, photo = $8
		WHERE id = $1
	`, id, member.Name.En, member.Name.Hi, member.Designation.En, member.Designation.Hi,
		member.Subject.En, member.Subject.Hi, member.Photo)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (s *Store) DeleteStaffMember(ctx context.Context, id int64) error {
	return deleteByKey(ctx, s.db, `DELETE FROM staff WHERE id = $1`, id)
}

type StaffTable struct{ s *Store }

func (s *Store) Staff() StaffTable { return StaffTable{s: s} }

func (t StaffTable) Insert(ctx context.Context, item models.StaffMember) (models.StaffMember, error) {
	created, err := t.s.CreateStaffMember(ctx, item)
	if err != nil {
		return models.StaffMember{}, err
	}
	return *created, nil
}

func (t StaffTable) Update(ctx context.Context, id int64, item models.StaffMember) error {
	return t.s.UpdateStaffMember(ctx, id, item)
}

func (t StaffTable) Delete(ctx context.Context, id int64) error {
	return t.s.DeleteStaffMember(ctx, id)
}
