package sheet

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDate = time.Date(2025, 6, 3, 0, 0, 0, 0, time.Local)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(t.TempDir(), "lsst1234")
}

func TestGenerateLayout(t *testing.T) {
	store := testStore(t)

	artifact, err := store.OpenOrCreate(testDate)
	require.NoError(t, err)
	defer artifact.Close()

	assert.Equal(t, filepath.Join(store.Dir, "6-3-2025.xlsx"), artifact.Path())
	assert.Equal(t, 200, Capacity)

	headerDate, err := artifact.HeaderDate()
	require.NoError(t, err)
	assert.Equal(t, "6/3/2025", headerDate)

	title, err := artifact.file.GetCellValue(SheetName, ColStaffName.cell(TitleRow))
	require.NoError(t, err)
	assert.Equal(t, TitleText, title)

	for _, h := range columnHeaders {
		got, err := artifact.file.GetCellValue(SheetName, h.col.cell(HeaderRow))
		require.NoError(t, err)
		assert.Equal(t, h.title, got)
	}

	rows, err := artifact.Rows()
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestOpenOrCreateReusesExistingFile(t *testing.T) {
	store := testStore(t)

	artifact, err := store.OpenOrCreate(testDate)
	require.NoError(t, err)
	_, err = artifact.AppendRow("Alice Howard", "09:00:00 AM")
	require.NoError(t, err)
	require.NoError(t, artifact.Persist())
	require.NoError(t, artifact.Close())

	reopened, err := store.OpenOrCreate(testDate)
	require.NoError(t, err)
	defer reopened.Close()

	slot, err := reopened.FindRow("Alice Howard")
	require.NoError(t, err)
	assert.Equal(t, 0, slot)
}

func TestFindAndAppendRow(t *testing.T) {
	store := testStore(t)
	artifact, err := store.OpenOrCreate(testDate)
	require.NoError(t, err)
	defer artifact.Close()

	slot, err := artifact.FindRow("Alice Howard")
	require.NoError(t, err)
	assert.Equal(t, -1, slot)

	slot, err = artifact.AppendRow("Alice Howard", "09:00:00 AM")
	require.NoError(t, err)
	assert.Equal(t, 0, slot)

	slot, err = artifact.AppendRow("Bob Lin", "09:05:00 AM")
	require.NoError(t, err)
	assert.Equal(t, 1, slot)

	slot, err = artifact.FindRow("Bob Lin")
	require.NoError(t, err)
	assert.Equal(t, 1, slot)

	row, err := artifact.Row(1)
	require.NoError(t, err)
	assert.Equal(t, "Bob Lin", row.StaffName)
	assert.Equal(t, "09:05:00 AM", row.ClockIn)
	assert.Empty(t, row.ClockOut)
}

func TestAppendRowCapacity(t *testing.T) {
	store := testStore(t)
	store.Capacity = 3

	artifact, err := store.OpenOrCreate(testDate)
	require.NoError(t, err)
	defer artifact.Close()

	names := []string{"Alice Howard", "Bob Lin", "Cara Diaz"}
	for i, name := range names {
		slot, err := artifact.AppendRow(name, "09:00:00 AM")
		require.NoError(t, err)
		assert.Equal(t, i, slot)
	}

	_, err = artifact.AppendRow("Dan Eads", "09:30:00 AM")
	assert.ErrorIs(t, err, ErrCapacityExceeded)

	// The filled rows must be untouched by the rejected append.
	rows, err := artifact.Rows()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for i, name := range names {
		assert.Equal(t, name, rows[i].StaffName)
	}
}

func TestTapTrailAndRemarks(t *testing.T) {
	store := testStore(t)
	artifact, err := store.OpenOrCreate(testDate)
	require.NoError(t, err)
	defer artifact.Close()

	slot, err := artifact.AppendRow("Alice Howard", "09:00:00 AM")
	require.NoError(t, err)

	require.NoError(t, artifact.AppendTapTrail(slot, "09:00:00 AM"))
	require.NoError(t, artifact.AppendTapTrail(slot, "12:00:00 PM"))
	require.NoError(t, artifact.SetLastTap(slot, "12:00:00 PM"))
	require.NoError(t, artifact.SetRemark(slot, "Manually Clocked Out"))

	row, err := artifact.Row(slot)
	require.NoError(t, err)
	assert.Equal(t, "09:00:00 AM, 12:00:00 PM", row.AllTaps)
	assert.Equal(t, "12:00:00 PM", row.ClockOut)
	assert.Equal(t, "Manually Clocked Out", row.Remarks)

	remark, err := artifact.Remark(slot)
	require.NoError(t, err)
	assert.Equal(t, "Manually Clocked Out", remark)
}

func TestDeleteRowShiftsUp(t *testing.T) {
	store := testStore(t)
	artifact, err := store.OpenOrCreate(testDate)
	require.NoError(t, err)
	defer artifact.Close()

	for _, name := range []string{"Alice Howard", "Bob Lin", "Cara Diaz"} {
		_, err := artifact.AppendRow(name, "09:00:00 AM")
		require.NoError(t, err)
	}

	require.NoError(t, artifact.DeleteRow(0))

	rows, err := artifact.Rows()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Bob Lin", rows[0].StaffName)
	assert.Equal(t, "Cara Diaz", rows[1].StaffName)

	assert.Error(t, artifact.DeleteRow(5))
}

func TestStaffIn(t *testing.T) {
	store := testStore(t)
	artifact, err := store.OpenOrCreate(testDate)
	require.NoError(t, err)
	defer artifact.Close()

	slotA, err := artifact.AppendRow("Alice Howard", "09:00:00 AM")
	require.NoError(t, err)
	_, err = artifact.AppendRow("Bob Lin", "09:05:00 AM")
	require.NoError(t, err)

	in, err := artifact.StaffIn()
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice Howard", "Bob Lin"}, in)

	require.NoError(t, artifact.SetLastTap(slotA, "05:00:00 PM"))

	in, err = artifact.StaffIn()
	require.NoError(t, err)
	assert.Equal(t, []string{"Bob Lin"}, in)
}

func TestPersistSurvivesReload(t *testing.T) {
	store := testStore(t)
	artifact, err := store.OpenOrCreate(testDate)
	require.NoError(t, err)

	slot, err := artifact.AppendRow("Alice Howard", "09:00:00 AM")
	require.NoError(t, err)
	require.NoError(t, artifact.AppendTapTrail(slot, "09:00:00 AM"))
	require.NoError(t, artifact.Persist())
	require.NoError(t, artifact.Close())

	// No leftover temp file from the atomic write.
	_, err = os.Stat(artifact.Path() + ".tmp.xlsx")
	assert.True(t, os.IsNotExist(err))

	reopened, err := store.OpenPath(artifact.Path())
	require.NoError(t, err)
	defer reopened.Close()

	date, ok := reopened.Date()
	assert.True(t, ok)
	assert.Equal(t, testDate.Format("2006-01-02"), date.Format("2006-01-02"))

	row, err := reopened.Row(slot)
	require.NoError(t, err)
	assert.Equal(t, "Alice Howard", row.StaffName)
	assert.Equal(t, "09:00:00 AM", row.AllTaps)
}

func TestOpenPathUnparseableDate(t *testing.T) {
	store := testStore(t)

	path := filepath.Join(store.Dir, "notadate.xlsx")
	require.NoError(t, Generate(path, testDate, store.Password))

	artifact, err := store.OpenPath(path)
	require.NoError(t, err)
	defer artifact.Close()

	_, ok := artifact.Date()
	assert.False(t, ok)
}
