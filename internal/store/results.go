package store

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"rapv/site/internal/models"
)

func (s *Store) ListResults(ctx context.Context) ([]models.YearResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT year, class10, class12
		FROM results
		ORDER BY year ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.YearResult{}
	for rows.Next() {
		var (
			year       string
			class10Raw []byte
			class12Raw []byte
		)
		if err := rows.Scan(&year, &class10Raw, &class12Raw); err != nil {
			return nil, err
		}
		item, err := decodeResult(year, class10Raw, class12Raw)
		if err != nil {
			s.log.Warn("skipping unreadable result row", zap.String("year", year), zap.Error(err))
			continue
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// decodeResult turns one results row into a YearResult with derived counts.
// A bad row is reported to the caller so the other years still load.
func decodeResult(year string, class10Raw, class12Raw []byte) (models.YearResult, error) {
	item := models.YearResult{Year: year}
	if err := json.Unmarshal(class10Raw, &item.Class10); err != nil {
		return models.YearResult{}, fmt.Errorf("result %s class10: %w", year, err)
	}
	if err := json.Unmarshal(class12Raw, &item.Class12); err != nil {
		return models.YearResult{}, fmt.Errorf("result %s class12: %w", year, err)
	}
	item.Recompute()
	return item, nil
}

func (s *Store) CreateResult(ctx context.Context, result models.YearResult) (*models.YearResult, error) {
	class10, class12, err := encodeClasses(result)
	if err != nil {
		return nil, err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO results (year, class10, class12, updated_at)
		VALUES ($1, $2::jsonb, $3::jsonb, now())
	`, result.Year, class10, class12)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *Store) UpdateResult(ctx context.Context, year string, result models.YearResult) error {
	class10, class12, err := encodeClasses(result)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE results
		SET class10 = $2::jsonb, class12 = $3::jsonb, updated_at = now()
		WHERE year = $1
	`, year, class10, class12)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (s *Store) DeleteResult(ctx context.Context, year string) error {
	return deleteByKey(ctx, s.db, `DELETE FROM results WHERE year = $1`, year)
}

func encodeClasses(result models.YearResult) (string, string, error) {
	class10, err := json.Marshal(result.Class10)
	if err != nil {
		return "", "", err
	}
	class12, err := json.Marshal(result.Class12)
	if err != nil {
		return "", "", err
	}
	return string(class10), string(class12), nil
}

type ResultsTable struct{ s *Store }

func (s *Store) Results() ResultsTable { return ResultsTable{s: s} }

func (t ResultsTable) Insert(ctx context.Context, item models.YearResult) (models.YearResult, error) {
	created, err := t.s.CreateResult(ctx, item)
	if err != nil {
		return models.YearResult{}, err
	}
	return *created, nil
}

func (t ResultsTable) Update(ctx context.Context, year string, item models.YearResult) error {
	return t.s.UpdateResult(ctx, year, item)
}

func (t ResultsTable) Delete(ctx context.Context, year string) error {
	return t.s.DeleteResult(ctx, year)
}
