package content

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rapv/site/internal/models"
)

func TestDefaultSeedParses(t *testing.T) {
	seed, err := DefaultSeed()
	require.NoError(t, err)

	assert.Len(t, seed.Facilities, 8)
	assert.Len(t, seed.Staff, 12)
	require.Len(t, seed.Results, 12)
	assert.Equal(t, "2012-13", seed.Results[0].Year)

	noClass12, ok := models.Snapshot{Results: seed.Results}.ResultForYear("2013-14")
	require.True(t, ok)
	assert.True(t, noClass12.Class12.PassPercentage.NA)

	mixed, _ := models.Snapshot{Results: seed.Results}.ResultForYear("2016-17")
	assert.Equal(t, 1, mixed.Class10.Failed)

	cfg := seed.SiteConfig(DefaultSiteConfig())
	assert.Len(t, cfg.HeroImages, 3)
}

func TestParseSeedRejectsSchemaViolations(t *testing.T) {
	_, err := ParseSeed([]byte("facilities:\n  - title: {en: Library}\n    description: {en: a, hi: b}\n"))
	assert.Error(t, err)

	_, err = ParseSeed([]byte("results:\n  - year: twenty\n    class10: {total_students: 1, passed: 1, pass_percentage: 100}\n    class12: {total_students: 0, passed: 0, pass_percentage: NA}\n"))
	assert.Error(t, err)
}

type fakeSeedTarget struct {
	counts   map[string]int
	settings []models.Setting
	existing []models.YearResult
}

func (f *fakeSeedTarget) CountRows(_ context.Context, table string) (int, error) {
	return f.counts[table], nil
}

func (f *fakeSeedTarget) UpsertSettings(_ context.Context, settings []models.Setting) error {
	f.settings = settings
	return nil
}

func (f *fakeSeedTarget) ListResults(context.Context) ([]models.YearResult, error) {
	return f.existing, nil
}

func TestApplySeedSkipsNonEmptyTables(t *testing.T) {
	seed, err := DefaultSeed()
	require.NoError(t, err)

	target := &fakeSeedTarget{counts: map[string]int{EntityStaff: 3}}
	events := &fakeRepo[models.EventItem, int64]{}
	staff := &fakeRepo[models.StaffMember, int64]{}
	results := &fakeRepo[models.YearResult, string]{}

	report, err := ApplySeed(context.Background(), target, Repositories{Events: events, Staff: staff, Results: results}, seed, false, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{EntityStaff}, report.Skipped)
	assert.Equal(t, len(seed.Events), report.Inserted[EntityEvents])
	assert.Equal(t, 12, report.Inserted[EntityResults])
	assert.Zero(t, report.Inserted[EntityStaff])
	assert.Len(t, target.settings, len(seed.Settings))
}

func TestApplySeedForceUpdatesExistingYears(t *testing.T) {
	seed, err := DefaultSeed()
	require.NoError(t, err)

	target := &fakeSeedTarget{
		counts:   map[string]int{EntityResults: 1},
		existing: []models.YearResult{{Year: "2012-13"}},
	}
	results := &fakeRepo[models.YearResult, string]{}

	report, err := ApplySeed(context.Background(), target, Repositories{Results: results}, seed, true, nil)
	require.NoError(t, err)
	assert.Empty(t, report.Skipped)
	assert.Equal(t, []string{"2012-13"}, results.updated)
	assert.Equal(t, 12, report.Inserted[EntityResults])
}
