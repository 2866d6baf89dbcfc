package content

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"rapv/site/internal/models"
)

//go:embed seed/defaults.yaml seed/schema.json
var seedFS embed.FS

// SeedContent is a complete set of site content, as shipped in
// seed/defaults.yaml or supplied by an operator.
type SeedContent struct {
	Settings   []models.Setting     `json:"settings"`
	Facilities []models.Facility    `json:"facilities"`
	Staff      []models.StaffMember `json:"staff"`
	Results    []models.YearResult  `json:"results"`
	Events     []models.EventItem   `json:"events"`
	News       []models.NewsItem    `json:"news"`
}

// SiteConfig folds the seed settings over defaults.
func (c *SeedContent) SiteConfig(defaults models.SiteConfig) models.SiteConfig {
	cfg, _ := LoadSiteConfig(defaults, c.Settings)
	return cfg
}

// DefaultSeed returns the embedded default content.
func DefaultSeed() (*SeedContent, error) {
	data, err := seedFS.ReadFile("seed/defaults.yaml")
	if err != nil {
		return nil, err
	}
	return ParseSeed(data)
}

// ParseSeed decodes YAML seed content and validates it against the seed
// schema before mapping it onto the models.
func ParseSeed(data []byte) (*SeedContent, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("content: parse seed: %w", err)
	}
	normalized, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("content: normalize seed: %w", err)
	}
	var payload any
	if err := json.Unmarshal(normalized, &payload); err != nil {
		return nil, fmt.Errorf("content: normalize seed: %w", err)
	}

	schema, err := seedSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(payload); err != nil {
		return nil, fmt.Errorf("content: seed failed validation: %w", err)
	}

	var content SeedContent
	if err := json.Unmarshal(normalized, &content); err != nil {
		return nil, fmt.Errorf("content: decode seed: %w", err)
	}
	for i := range content.Results {
		content.Results[i].Recompute()
	}
	models.SortResults(content.Results)
	// Local ids for content that never reaches the database.
	assignSeedIDs(content.Events, func(item *models.EventItem, id int64) { item.ID = id })
	assignSeedIDs(content.Staff, func(item *models.StaffMember, id int64) { item.ID = id })
	assignSeedIDs(content.News, func(item *models.NewsItem, id int64) { item.ID = id })
	assignSeedIDs(content.Facilities, func(item *models.Facility, id int64) { item.ID = id })
	return &content, nil
}

func seedSchema() (*jsonschema.Schema, error) {
	data, err := seedFS.ReadFile("seed/schema.json")
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("seed.json", bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("content: load seed schema: %w", err)
	}
	schema, err := compiler.Compile("seed.json")
	if err != nil {
		return nil, fmt.Errorf("content: compile seed schema: %w", err)
	}
	return schema, nil
}

func assignSeedIDs[T any](items []T, set func(*T, int64)) {
	for i := range items {
		set(&items[i], int64(i+1))
	}
}

// SeedTarget is the part of the store the seeder needs besides the entity
// repositories.
type SeedTarget interface {
	CountRows(ctx context.Context, table string) (int, error)
	UpsertSettings(ctx context.Context, settings []models.Setting) error
	ListResults(ctx context.Context) ([]models.YearResult, error)
}

type SeedReport struct {
	Inserted map[string]int `json:"inserted" yaml:"inserted"`
	Skipped  []string       `json:"skipped" yaml:"skipped"`
}

// ApplySeed writes content through the store. Tables that already hold rows
// are skipped unless force is set; forced results overwrite matching years.
func ApplySeed(ctx context.Context, target SeedTarget, repos Repositories, content *SeedContent, force bool, log *zap.Logger) (SeedReport, error) {
	if log == nil {
		log = zap.NewNop()
	}
	report := SeedReport{Inserted: map[string]int{}}

	proceed := func(table string) (bool, error) {
		if force {
			return true, nil
		}
		count, err := target.CountRows(ctx, table)
		if err != nil {
			return false, fmt.Errorf("count %s: %w", table, err)
		}
		if count > 0 {
			report.Skipped = append(report.Skipped, table)
			log.Info("seed skipped non-empty table", zap.String("table", table), zap.Int("rows", count))
			return false, nil
		}
		return true, nil
	}

	if ok, err := proceed(tableSettings); err != nil {
		return report, err
	} else if ok && len(content.Settings) > 0 {
		if err := target.UpsertSettings(ctx, content.Settings); err != nil {
			return report, fmt.Errorf("seed settings: %w", err)
		}
		report.Inserted[tableSettings] = len(content.Settings)
	}

	if err := seedTable(ctx, proceed, &report, EntityFacilities, repos.Facilities, content.Facilities); err != nil {
		return report, err
	}
	if err := seedTable(ctx, proceed, &report, EntityStaff, repos.Staff, content.Staff); err != nil {
		return report, err
	}
	if err := seedTable(ctx, proceed, &report, EntityEvents, repos.Events, content.Events); err != nil {
		return report, err
	}
	if err := seedTable(ctx, proceed, &report, EntityNews, repos.News, content.News); err != nil {
		return report, err
	}

	if ok, err := proceed(EntityResults); err != nil {
		return report, err
	} else if ok && repos.Results != nil {
		existing, err := target.ListResults(ctx)
		if err != nil {
			return report, fmt.Errorf("list results: %w", err)
		}
		present := make(map[string]bool, len(existing))
		for _, item := range existing {
			present[item.Year] = true
		}
		for _, item := range content.Results {
			if present[item.Year] {
				err = repos.Results.Update(ctx, item.Year, item)
			} else {
				_, err = repos.Results.Insert(ctx, item)
			}
			if err != nil {
				return report, fmt.Errorf("seed result %s: %w", item.Year, err)
			}
			report.Inserted[EntityResults]++
		}
	}
	return report, nil
}

func seedTable[T any](ctx context.Context, proceed func(string) (bool, error), report *SeedReport, table string, repo Repository[T, int64], items []T) error {
	if repo == nil {
		return nil
	}
	ok, err := proceed(table)
	if err != nil || !ok {
		return err
	}
	for _, item := range items {
		if _, err := repo.Insert(ctx, item); err != nil {
			return fmt.Errorf("seed %s: %w", table, err)
		}
		report.Inserted[table]++
	}
	return nil
}
