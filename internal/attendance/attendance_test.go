package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/uniattend/internal/domain"
	"github.com/felixgeelhaar/uniattend/internal/errors"
	"github.com/felixgeelhaar/uniattend/internal/platform"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-05-01T08:00:00.000Z", time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)},
		{"2024-05-01T08:00:00", time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)},
		{"2024-05-01T08:00", time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)},
		{"2024-05-01 08:30", time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)},
		{"2024-05-01", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := ParseTime(tt.in, time.UTC)
		require.NoError(t, err, tt.in)
		assert.True(t, tt.want.Equal(got), "%s: got %v", tt.in, got)
	}

	_, err := ParseTime("yesterday", time.UTC)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInputInvalid))
}

func TestWireTime(t *testing.T) {
	almaty := time.FixedZone("ALMT", 5*3600)
	start := time.Date(2024, 5, 1, 13, 0, 0, 0, almaty)
	assert.Equal(t, "2024-05-01T08:00:00.000Z", WireTime(start))
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "01.05.2024", FormatDate("2024-05-01T08:00:00", time.UTC))
	assert.Equal(t, "garbage", FormatDate("garbage", time.UTC))
	assert.Equal(t, "08:05", FormatClock("2024-05-01T08:05:00", time.UTC))
	assert.Equal(t, "", FormatClock("", time.UTC))
	assert.Equal(t, "08:00–09:30", FormatRange("2024-05-01T08:00", "2024-05-01T09:30", time.UTC))
}

func TestValidateWindow(t *testing.T) {
	start := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	assert.NoError(t, ValidateWindow(start, start.Add(time.Hour)))
	assert.True(t, errors.HasCode(ValidateWindow(start, start), errors.ErrCodeInputInvalid))
	assert.Error(t, ValidateWindow(start, start.Add(-time.Minute)))
}

func TestSlots(t *testing.T) {
	slots := Slots()

	require.Len(t, slots, 10)
	assert.Equal(t, Slot{Start: "08:00", End: "09:00"}, slots[0])
	assert.Equal(t, Slot{Start: "17:00", End: "18:00"}, slots[9])

	slot, ok := FindSlot("10:00")
	require.True(t, ok)
	day := time.Date(2024, 5, 1, 15, 45, 0, 0, time.UTC)
	start, end, err := slot.On(day)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 5, 1, 11, 0, 0, 0, time.UTC), end)

	_, ok = FindSlot("18:00")
	assert.False(t, ok)

	_, _, err = Slot{Start: "25:00", End: "26:00"}.On(day)
	assert.Error(t, err)
}

func TestPivotJournal(t *testing.T) {
	entries := []platform.JournalEntry{
		{UserID: "2", Name: "Bolat", DateCreate: "2024-05-10T09:00:00", Assessment: "absent"},
		{UserID: "1", Name: "Aru", DateCreate: "2024-05-10T09:00:00", Assessment: "present"},
		{UserID: "1", Name: "Aru", DateCreate: "2024-04-30T09:00:00", Assessment: "late"},
		{UserID: "2", Name: "Bolat", DateCreate: "2024-05-02T09:00:00", Assessment: "present"},
		{UserID: "2", Name: "Bolat", DateCreate: "2024-05-02T11:00:00", Assessment: "excused"},
		{UserID: "1", Name: "Aru", DateCreate: "n/a", Assessment: "?"},
	}

	j := PivotJournal(entries, time.UTC)

	// chronological, not lexical: 30.04 < 02.05 < 10.05
	assert.Equal(t, []string{"30.04.2024", "02.05.2024", "10.05.2024", "n/a"}, j.Dates)
	require.Len(t, j.Rows, 2)
	assert.Equal(t, domain.ID("2"), j.Rows[0].UserID)
	assert.Equal(t, "excused", j.Rows[0].Mark("02.05.2024"))
	assert.Equal(t, "", j.Rows[0].Mark("30.04.2024"))
	assert.Equal(t, "late", j.Rows[1].Mark("30.04.2024"))
	assert.Equal(t, "?", j.Rows[1].Mark("n/a"))
}

func TestPivotJournalEmpty(t *testing.T) {
	j := PivotJournal(nil, time.UTC)
	assert.NotNil(t, j.Dates)
	assert.NotNil(t, j.Rows)
	assert.Empty(t, j.Rows)
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		present, total int
		want           float64
	}{
		{0, 0, 0},
		{3, 0, 0},
		{1, 3, 33.3},
		{2, 3, 66.7},
		{3, 3, 100},
		{0, 5, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Percentage(tt.present, tt.total), "%d/%d", tt.present, tt.total)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(platform.ScheduleStats{PresentCount: 1, TotalCount: 4})
	assert.Equal(t, Summary{Present: 1, Total: 4, Percent: 25}, s)

	s = Summarize(platform.ScheduleStats{Students: []platform.StudentAttendance{
		{ID: "1", Present: true},
		{ID: "2"},
	}})
	assert.Equal(t, Summary{Present: 1, Total: 2, Percent: 50}, s)

	assert.Equal(t, Summary{}, Summarize(platform.ScheduleStats{}))
}
