package store

import (
	"context"

	"rapv/site/internal/models"
)

func (s *Store) ListEvents(ctx context.Context) ([]models.EventItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title_en, title_hi, desc_en, desc_hi, img
		FROM events
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.EventItem{}
	for rows.Next() {
		var item models.EventItem
		if err := rows.Scan(
			&item.ID, &item.Title.En, &item.Title.Hi, &item.Desc.En, &item.Desc.Hi, &item.Img,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *Store) CreateEvent(ctx context.Context, event models.EventItem) (*models.EventItem, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO events (title_en, title_hi, desc_en, desc_hi, img, created_at)
		VALUES ($1, $2, $3, $4, $5, now())
		RETURNING id
	`, event.Title.En, event.Title.Hi, event.Desc.En, event.Desc.Hi, event.Img).Scan(&event.ID)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *Store) UpdateEvent(ctx context.Context, id int64, event models.EventItem) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE events
		SET title_en = $2, title_hi = $3, desc_en = $4, desc_hi = $5, img = $6
		WHERE id = $1
	`, id, event.Title.En, event.Title.Hi, event.Desc.En, event.Desc.Hi, event.Img)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (s *Store) DeleteEvent(ctx context.Context, id int64) error {
	return deleteByKey(ctx, s.db, `DELETE FROM events WHERE id = $1`, id)
}

// EventsTable adapts the events queries to the editor repository contract.
type EventsTable struct{ s *Store }

func (s *Store) Events() EventsTable { return EventsTable{s: s} }

func (t EventsTable) Insert(ctx context.Context, item models.EventItem) (models.EventItem, error) {
	created, err := t.s.CreateEvent(ctx, item)
	if err != nil {
		return models.EventItem{}, err
	}
	return *created, nil
}

func (t EventsTable) Update(ctx context.Context, id int64, item models.EventItem) error {
	return t.s.UpdateEvent(ctx, id, item)
}

func (t EventsTable) Delete(ctx context.Context, id int64) error {
	return t.s.DeleteEvent(ctx, id)
}
