package content

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rapv/site/internal/models"
)

type fakeRepo[T any, K comparable] struct {
	insert    func(T) (T, error)
	updateErr error
	deleteErr error
	updated   []K
	deleted   []K
}

func (f *fakeRepo[T, K]) Insert(_ context.Context, item T) (T, error) {
	if f.insert != nil {
		return f.insert(item)
	}
	return item, nil
}

func (f *fakeRepo[T, K]) Update(_ context.Context, key K, _ T) error {
	f.updated = append(f.updated, key)
	return f.updateErr
}

func (f *fakeRepo[T, K]) Delete(_ context.Context, key K) error {
	f.deleted = append(f.deleted, key)
	return f.deleteErr
}

var errRemote = errors.New("remote unavailable")

func fixedClock() *IDClock {
	return NewIDClock(func() time.Time { return time.UnixMilli(1_700_000_000_000) })
}

func event(title string) models.EventItem {
	return models.EventItem{Title: models.Text(title, title+" (hi)"), Desc: models.Text("desc", "विवरण")}
}

func result(year string, total, passed int) models.YearResult {
	return models.YearResult{
		Year:    year,
		Class10: models.ClassResult{TotalStudents: total, Passed: passed, PassPercentage: models.Percent(100)},
		Class12: models.ClassResult{PassPercentage: models.NotAvailable()},
	}
}

func TestSubmitCreateReconcilesRemoteID(t *testing.T) {
	repo := &fakeRepo[models.EventItem, int64]{insert: func(item models.EventItem) (models.EventItem, error) {
		item.ID = 42
		return item, nil
	}}
	editors := NewEditors(Repositories{Events: repo}, fixedClock(), 0, nil)

	res, err := editors.Events.Submit(context.Background(), event("Sports Day"))
	require.NoError(t, err)
	assert.Equal(t, int64(42), res.Record.ID)
	assert.False(t, res.LocalOnly)

	items := editors.Events.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(42), items[0].ID)
}

func TestSubmitCreateRollsBackOnRemoteFailure(t *testing.T) {
	repo := &fakeRepo[models.EventItem, int64]{insert: func(models.EventItem) (models.EventItem, error) {
		return models.EventItem{}, errRemote
	}}
	editors := NewEditors(Repositories{Events: repo}, fixedClock(), 0, nil)
	editors.Events.Replace([]models.EventItem{{ID: 1, Title: models.Text("a", "a"), Desc: models.Text("b", "b")}})

	res, err := editors.Events.Submit(context.Background(), event("Sports Day"))
	require.Error(t, err)
	assert.True(t, res.RolledBack)
	assert.ErrorIs(t, err, errRemote)

	var remoteErr *RemoteError
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, OpCreate, remoteErr.Op)
	assert.Len(t, editors.Events.Items(), 1)
}

func TestSubmitWithoutRepoIsLocalOnly(t *testing.T) {
	editors := NewEditors(Repositories{}, fixedClock(), 0, nil)

	first, err := editors.Events.Submit(context.Background(), event("One"))
	require.NoError(t, err)
	second, err := editors.Events.Submit(context.Background(), event("Two"))
	require.NoError(t, err)

	assert.True(t, first.LocalOnly)
	assert.NotEqual(t, first.Record.ID, second.Record.ID)
	assert.Len(t, editors.Events.Items(), 2)
}

func TestSubmitRejectsInvalidForm(t *testing.T) {
	editors := NewEditors(Repositories{}, fixedClock(), 0, nil)

	_, err := editors.Events.Submit(context.Background(), models.EventItem{Title: models.Text("only english", "")})
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Empty(t, editors.Events.Items())
}

func TestEditLifecycle(t *testing.T) {
	repo := &fakeRepo[models.EventItem, int64]{}
	editors := NewEditors(Repositories{Events: repo}, fixedClock(), 0, nil)
	ed := editors.Events
	ed.Replace([]models.EventItem{
		{ID: 1, Title: models.Text("a", "a"), Desc: models.Text("b", "b")},
		{ID: 2, Title: models.Text("c", "c"), Desc: models.Text("d", "d")},
	})

	before := ed.Items()

	_, err := ed.StartEdit(99)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, ModeIdle, ed.State().Mode)

	draft, err := ed.StartEdit(2)
	require.NoError(t, err)
	assert.Equal(t, "c", draft.Title.En)
	state := ed.State()
	assert.Equal(t, ModeEditing, state.Mode)
	assert.Equal(t, int64(2), state.Key)

	ed.CancelEdit()
	assert.Equal(t, ModeIdle, ed.State().Mode)
	assert.Equal(t, before, ed.Items())

	_, err = ed.StartEdit(2)
	require.NoError(t, err)
	form := event("changed")
	form.ID = 777
	res, err := ed.Submit(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, OpUpdate, res.Op)
	assert.Equal(t, int64(2), res.Record.ID, "key is pinned to the edited record")
	assert.Equal(t, []int64{2}, repo.updated)
	assert.Equal(t, ModeIdle, ed.State().Mode)

	got, ok := ed.Get(2)
	require.True(t, ok)
	assert.Equal(t, "changed", got.Title.En)

	other, ok := ed.Get(1)
	require.True(t, ok)
	assert.Equal(t, before[0], other)
	assert.Len(t, ed.Items(), 2)
}

func TestStaffSubjectEditChangesOnlyTarget(t *testing.T) {
	repo := &fakeRepo[models.StaffMember, int64]{}
	editors := NewEditors(Repositories{Staff: repo}, fixedClock(), 0, nil)
	ed := editors.Staff
	ed.Replace([]models.StaffMember{
		{ID: 1, Name: models.Text("Asha Verma", "आशा वर्मा"), Designation: models.Text("PGT", "पीजीटी"), Subject: models.Text("Physics", "भौतिकी")},
		{ID: 2, Name: models.Text("Ravi Kumar", "रवि कुमार"), Designation: models.Text("TGT", "टीजीटी"), Subject: models.Text("Maths", "गणित")},
		{ID: 3, Name: models.Text("Meena Devi", "मीना देवी"), Designation: models.Text("TGT", "टीजीटी"), Subject: models.Text("Hindi", "हिंदी")},
	})
	before := ed.Items()

	draft, err := ed.StartEdit(2)
	require.NoError(t, err)
	draft.Subject.En = "Mathematics"
	_, err = ed.Submit(context.Background(), draft)
	require.NoError(t, err)

	want := append([]models.StaffMember(nil), before...)
	want[1].Subject.En = "Mathematics"
	assert.Equal(t, want, ed.Items())
	assert.Equal(t, "गणित", ed.Items()[1].Subject.Hi)
	assert.Equal(t, []int64{2}, repo.updated)
}

func TestUpdateFailureRestoresRecordAndStaysEditing(t *testing.T) {
	repo := &fakeRepo[models.EventItem, int64]{updateErr: errRemote}
	editors := NewEditors(Repositories{Events: repo}, fixedClock(), 0, nil)
	ed := editors.Events
	ed.Replace([]models.EventItem{{ID: 1, Title: models.Text("a", "a"), Desc: models.Text("b", "b")}})

	_, err := ed.StartEdit(1)
	require.NoError(t, err)
	res, err := ed.Submit(context.Background(), event("changed"))
	require.Error(t, err)
	assert.True(t, res.RolledBack)

	got, _ := ed.Get(1)
	assert.Equal(t, "a", got.Title.En)
	assert.Equal(t, ModeEditing, ed.State().Mode)
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	repo := &fakeRepo[models.EventItem, int64]{}
	editors := NewEditors(Repositories{Events: repo}, fixedClock(), 0, nil)
	ed := editors.Events
	ed.Replace([]models.EventItem{{ID: 1}, {ID: 2}})

	_, err := ed.Delete(context.Background(), 1, false)
	assert.ErrorIs(t, err, ErrConfirmationRequired)
	assert.Empty(t, repo.deleted)

	_, err = ed.Delete(context.Background(), 5, true)
	assert.ErrorIs(t, err, ErrNotFound)

	res, err := ed.Delete(context.Background(), 1, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Record.ID)
	assert.Equal(t, []int64{1}, repo.deleted)
	assert.Len(t, ed.Items(), 1)
}

func TestDeleteOfEditedRecordReturnsToIdle(t *testing.T) {
	editors := NewEditors(Repositories{}, fixedClock(), 0, nil)
	ed := editors.Events
	ed.Replace([]models.EventItem{{ID: 1}, {ID: 2}})

	_, err := ed.StartEdit(2)
	require.NoError(t, err)
	res, err := ed.Delete(context.Background(), 2, true)
	require.NoError(t, err)
	assert.True(t, res.LocalOnly)
	assert.Equal(t, ModeIdle, ed.State().Mode)
}

func TestDeleteFailureRestoresPosition(t *testing.T) {
	repo := &fakeRepo[models.EventItem, int64]{deleteErr: errRemote}
	editors := NewEditors(Repositories{Events: repo}, fixedClock(), 0, nil)
	ed := editors.Events
	ed.Replace([]models.EventItem{{ID: 1}, {ID: 2}, {ID: 3}})

	res, err := ed.Delete(context.Background(), 2, true)
	require.Error(t, err)
	assert.True(t, res.RolledBack)

	items := ed.Items()
	require.Len(t, items, 3)
	assert.Equal(t, int64(2), items[1].ID)
}

func TestResultsKeyedByYearAndSorted(t *testing.T) {
	repo := &fakeRepo[models.YearResult, string]{}
	editors := NewEditors(Repositories{Results: repo}, fixedClock(), 0, nil)
	ed := editors.Results
	ed.Replace([]models.YearResult{result("2023-24", 15, 8), result("2012-13", 19, 19)})

	res, err := ed.Submit(context.Background(), result("2016-17", 26, 25))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Record.Class10.Failed)

	years := []string{}
	for _, item := range ed.Items() {
		years = append(years, item.Year)
	}
	assert.Equal(t, []string{"2012-13", "2016-17", "2023-24"}, years)

	_, err = ed.Submit(context.Background(), result("2016-17", 1, 1))
	assert.ErrorIs(t, err, ErrDuplicateKey)

	_, err = ed.Submit(context.Background(), result("2017-18", 5, 6))
	assert.ErrorIs(t, err, ErrInvalid, "passed may not exceed total")

	_, err = ed.StartEdit("2012-13")
	require.NoError(t, err)
	renamed := result("1999-00", 20, 18)
	res, err = ed.Submit(context.Background(), renamed)
	require.NoError(t, err)
	assert.Equal(t, "2012-13", res.Record.Year)
	assert.Equal(t, 2, res.Record.Class10.Failed)
	assert.Equal(t, []string{"2012-13"}, repo.updated)
}

func TestResultsRejectOutOfRangePassPercentage(t *testing.T) {
	repo := &fakeRepo[models.YearResult, string]{}
	editors := NewEditors(Repositories{Results: repo}, fixedClock(), 0, nil)
	ed := editors.Results
	ed.Replace([]models.YearResult{result("2023-24", 15, 8)})
	before := ed.Items()

	var form models.YearResult
	err := json.Unmarshal([]byte(`{"year":"2025-26","class10":{"total_students":20,"passed":18,"pass_percentage":150.123},"class12":{"pass_percentage":"NA"}}`), &form)
	require.Error(t, err, "decoding already rejects the value")

	for _, pct := range []float64{150.123, -5, 33.333} {
		form := result("2025-26", 20, 18)
		form.Class10.PassPercentage = models.Percent(pct)
		_, err := ed.Submit(context.Background(), form)
		assert.ErrorIs(t, err, ErrInvalid, "%v", pct)
	}
	assert.Equal(t, before, ed.Items())
	assert.Empty(t, repo.updated)
}

func TestReplaceCancelsEditOfVanishedRecord(t *testing.T) {
	editors := NewEditors(Repositories{}, fixedClock(), 0, nil)
	ed := editors.Staff
	ed.Replace([]models.StaffMember{{ID: 1}, {ID: 2}})

	_, err := ed.StartEdit(2)
	require.NoError(t, err)
	ed.Replace([]models.StaffMember{{ID: 1}})
	assert.Equal(t, ModeIdle, ed.State().Mode)
}

func TestNewsBlankBodyDropped(t *testing.T) {
	editors := NewEditors(Repositories{}, fixedClock(), 0, nil)
	res, err := editors.News.Submit(context.Background(), models.NewsItem{
		Text:    models.Text("Exam dates", "परीक्षा तिथियाँ"),
		Content: &models.BilingualText{},
		Date:    "2024-05-01",
	})
	require.NoError(t, err)
	assert.Nil(t, res.Record.Content)

	_, err = editors.News.Submit(context.Background(), models.NewsItem{
		Text: models.Text("Exam dates", "परीक्षा तिथियाँ"),
		Date: "01/05/2024",
	})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestIDClockNeverRepeats(t *testing.T) {
	clock := fixedClock()
	first := clock.Next()
	second := clock.Next()
	assert.Equal(t, int64(1_700_000_000_000), first)
	assert.Equal(t, first+1, second)
}
