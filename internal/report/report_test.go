package report_test

import (
	"testing"
	"time"

	"github.com/RajatSinghRajawat/maanvibackend/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestGenerateAttendanceReport(t *testing.T) {
	t.Parallel()
	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	statuses := []string{"Present", "Absent", "Late", "WFH"}
	testRows := []report.AttendanceRow{
		{Date: day, Status: "Present", Employee: "Ann", Email: "ann@example.com", CheckIn: "09:00"},
		{Date: day, Status: "WFH", Employee: "Bob", Email: "bob@example.com", Location: "Home"},
		{Date: day.AddDate(0, 0, 1), Status: "Present", Employee: "Bob", Email: "bob@example.com", Notes: "on site"},
	}

	t.Run("successful report generation", func(t *testing.T) {
		t.Parallel()
		buffer, err := report.GenerateAttendanceReport("Attendance 03/2025", statuses, testRows)

		require.NoError(t, err)
		assert.NotNil(t, buffer)

		f, err := excelize.OpenReader(buffer)
		require.NoError(t, err)
		defer f.Close()

		assert.Equal(t, []string{report.SummarySheet, "Present", "WFH"}, f.GetSheetList())

		title, err := f.GetCellValue(report.SummarySheet, "A1")
		require.NoError(t, err)
		assert.Equal(t, "Attendance 03/2025", title)

		presentCount, err := f.GetCellValue(report.SummarySheet, "B3")
		require.NoError(t, err)
		assert.Equal(t, "2", presentCount)

		total, err := f.GetCellValue(report.SummarySheet, "B7")
		require.NoError(t, err)
		assert.Equal(t, "3", total)

		headerVal, err := f.GetCellValue("Present", "A1")
		require.NoError(t, err)
		assert.Equal(t, "Date", headerVal)

		dateVal, err := f.GetCellValue("Present", "A2")
		require.NoError(t, err)
		assert.Equal(t, "14.03.2025", dateVal)

		notesVal, err := f.GetCellValue("Present", "H3")
		require.NoError(t, err)
		assert.Equal(t, "on site", notesVal)

		locationVal, err := f.GetCellValue("WFH", "G2")
		require.NoError(t, err)
		assert.Equal(t, "Home", locationVal)
	})

	t.Run("no records found", func(t *testing.T) {
		t.Parallel()
		buffer, err := report.GenerateAttendanceReport("empty", statuses, []report.AttendanceRow{})

		require.Error(t, err)
		assert.Nil(t, buffer)
		require.ErrorIs(t, err, report.ErrNoRecords)
	})
}
