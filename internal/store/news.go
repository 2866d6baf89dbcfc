package store

import (
	"context"
	"database/sql"
	"time"

	"rapv/site/internal/models"
)

func (s *Store) ListNews(ctx context.Context) ([]models.NewsItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, text_en, text_hi, content_en, content_hi, image, date, link
		FROM news
		ORDER BY date DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.NewsItem{}
	for rows.Next() {
		var (
			item      models.NewsItem
			contentEn sql.NullString
			contentHi sql.NullString
			date      time.Time
		)
		if err := rows.Scan(
			&item.ID, &item.Text.En, &item.Text.Hi, &contentEn, &contentHi, &item.Image, &date, &item.Link,
		); err != nil {
			return nil, err
		}
		if contentEn.Valid || contentHi.Valid {
			item.Content = &models.BilingualText{En: contentEn.String, Hi: contentHi.String}
		}
		item.Date = date.Format(models.NewsDateLayout)
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *Store) CreateNews(ctx context.Context, item models.NewsItem) (*models.NewsItem, error) {
	contentEn, contentHi := newsContent(item)
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO news (text_en, text_hi, content_en, content_hi, image, date, link, created_at)
		VALUES ($1, $2, $3, $4, $5, $6::date, $7, now())
		RETURNING id
	`, item.Text.En, item.Text.Hi, contentEn, contentHi, item.Image, item.Date, item.Link).Scan(&item.ID)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) UpdateNews(ctx context.Context, id int64, item models.NewsItem) error {
	contentEn, contentHi := newsContent(item)
	res, err := s.db.ExecContext(ctx, `
		UPDATE news
		SET text_en = $2, text_hi = $3, content_en = $4, content_hi = $5,
		    image = $6, date = $7::date, link = $8
		WHERE id = $1
	`, id, item.Text.En, item.Text.Hi, contentEn, contentHi, item.Image, item.Date, item.Link)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (s *Store) DeleteNews(ctx context.Context, id int64) error {
	return deleteByKey(ctx, s.db, `DELETE FROM news WHERE id = $1`, id)
}

func newsContent(item models.NewsItem) (sql.NullString, sql.NullString) {
	if item.Content == nil {
		return sql.NullString{}, sql.NullString{}
	}
	return nullString(item.Content.En), nullString(item.Content.Hi)
}

type NewsTable struct{ s *Store }

func (s *Store) News() NewsTable { return NewsTable{s: s} }

func (t NewsTable) Insert(ctx context.Context, item models.NewsItem) (models.NewsItem, error) {
	created, err := t.s.CreateNews(ctx, item)
	if err != nil {
		return models.NewsItem{}, err
	}
	return *created, nil
}

func (t NewsTable) Update(ctx context.Context, id int64, item models.NewsItem) error {
	return t.s.UpdateNews(ctx, id, item)
}

func (t NewsTable) Delete(ctx context.Context, id int64) error {
	return t.s.DeleteNews(ctx, id)
}
