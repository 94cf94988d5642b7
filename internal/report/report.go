package report

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

var ErrNoRecords = errors.New("failed to generate report, 0 attendance records were provided")

// SummarySheet is the name of the first sheet, holding the per-status totals.
const SummarySheet = "Summary"

// Generator holds the state for the Excel report generation process.
type Generator struct {
	file *excelize.File
}

// AttendanceRow holds the structured row for excel file.
type AttendanceRow struct {
	Date     time.Time // Calendar day of the record
	Status   string    // Attendance status, one sheet is created per status
	Employee string    // Name of the employee
	Email    string    // Email of the employee
	Role     string    // Job role of the employee
	CheckIn  string    // Check-in time as entered
	CheckOut string    // Check-out time as entered
	Location string    // Where the employee worked from
	Notes    string    // Free-form notes
}

// NewGenerator creates a new report generator.
func NewGenerator() *Generator {
	return &Generator{
		file: excelize.NewFile(),
	}
}

// GenerateAttendanceReport builds a workbook with a summary sheet followed by one sheet
// per attendance status, in the order the statuses are given. Statuses without rows get
// no sheet. Rows keep their input order within a sheet.
func GenerateAttendanceReport(title string, statuses []string, rows []AttendanceRow) (*bytes.Buffer, error) {
	var err error

	if len(rows) == 0 {
		return nil, ErrNoRecords
	}

	rowsByStatus := make(map[string][]AttendanceRow)
	for _, row := range rows {
		rowsByStatus[row.Status] = append(rowsByStatus[row.Status], row)
	}

	gen := NewGenerator()
	defer gen.file.Close()

	if err = gen.addSummary(title, statuses, rowsByStatus, len(rows)); err != nil {
		return nil, fmt.Errorf("failed to add summary: %w", err)
	}

	if err = gen.addSheets(statuses, rowsByStatus); err != nil {
		return nil, fmt.Errorf("failed to add sheets: %w", err)
	}

	// setup first sheet as active
	gen.file.SetActiveSheet(0)

	buffer, err := gen.file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write data from saved file: %w", err)
	}

	return buffer, nil
}

// addSummary renames the default sheet and fills it with the title and a count per status.
func (g *Generator) addSummary(title string, statuses []string, rowsByStatus map[string][]AttendanceRow, total int) error {
	var err error

	if err = g.file.SetSheetName("Sheet1", SummarySheet); err != nil {
		return fmt.Errorf("failed to rename default sheet: %w", err)
	}

	if err = g.file.SetCellValue(SummarySheet, "A1", title); err != nil {
		return fmt.Errorf("failed to set title: %w", err)
	}

	line := 3
	for _, status := range statuses {
		cell, _ := excelize.CoordinatesToCellName(1, line)
		values := []any{status, len(rowsByStatus[status])}
		if err = g.file.SetSheetRow(SummarySheet, cell, &values); err != nil {
			return fmt.Errorf("failed to set summary row for '%s': %w", status, err)
		}
		line++
	}

	cell, _ := excelize.CoordinatesToCellName(1, line)
	if err = g.file.SetSheetRow(SummarySheet, cell, &[]any{"Total", total}); err != nil {
		return fmt.Errorf("failed to set summary total: %w", err)
	}

	return g.file.SetColWidth(SummarySheet, "A", "A", 30) //nolint:mnd // const value for column width
}

// addSheets adds one sheet per status that has rows and populates it.
func (g *Generator) addSheets(statuses []string, rowsByStatus map[string][]AttendanceRow) error {
	var err error
	headerIndex := 2

	for _, status := range statuses {
		rowsInStatus := rowsByStatus[status]
		if len(rowsInStatus) == 0 {
			continue
		}
		sheetName := truncateSheetName(status)

		if _, err = g.file.NewSheet(sheetName); err != nil {
			return fmt.Errorf("failed to generate new sheet '%s': %w", sheetName, err)
		}

		if err = g.setupSheet(sheetName, len(rowsInStatus)); err != nil {
			return fmt.Errorf("failed to setup sheet '%s': %w", sheetName, err)
		}

		for i, row := range rowsInStatus {
			if err = g.addRow(sheetName, i+headerIndex, row); err != nil { // i+2, because the first row is the header
				return fmt.Errorf("failed to add row '%d': %w", i+headerIndex, err)
			}
		}
	}
	return nil
}

// setupSheet initializes the specified sheet with headers, styles, column widths and a table
// spanning the header and rowCount data rows.
func (g *Generator) setupSheet(sheetName string, rowCount int) error {
	var err error

	headerStyle, err := g.file.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Vertical: "center", Horizontal: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create new style: %w", err)
	}

	rowHeight := 20
	headers := []string{"Date", "Employee", "Email", "Role", "Check In", "Check Out", "Location", "Notes"}
	if err = g.file.SetRowHeight(sheetName, 1, float64(rowHeight)); err != nil {
		return fmt.Errorf("failed to set row height for headers: %w", err)
	}
	if err = g.file.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return fmt.Errorf("failed to set sheet row for headers: %w", err)
	}
	if err = g.file.SetCellStyle(sheetName, "A1", "H1", headerStyle); err != nil {
		return fmt.Errorf("failed to set cell style for headers: %w", err)
	}

	widths := map[string]float64{
		"A": 14, "B": 28, "C": 32, "D": 22, "E": 12, "F": 12, "G": 24, "H": 50, //nolint:mnd // const values for column width
	}
	for col, width := range widths {
		if err = g.file.SetColWidth(sheetName, col, col, width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	if err = g.file.AddTable(sheetName, &excelize.Table{
		Range:     fmt.Sprintf("A1:H%d", rowCount+1),
		Name:      "table_" + strings.ReplaceAll(sheetName, " ", ""),
		StyleName: "TableStyleMedium9",
	}); err != nil {
		return fmt.Errorf("failed to add table: %w", err)
	}

	return nil
}

// addRow writes one attendance record at the given row number.
func (g *Generator) addRow(sheetName string, rowNum int, row AttendanceRow) error {
	rowData := []any{
		row.Date.Format("02.01.2006"),
		row.Employee,
		row.Email,
		row.Role,
		row.CheckIn,
		row.CheckOut,
		row.Location,
		row.Notes,
	}
	cell, _ := excelize.CoordinatesToCellName(1, rowNum)

	if err := g.file.SetSheetRow(sheetName, cell, &rowData); err != nil {
		return fmt.Errorf("failed to set sheet row: %w", err)
	}

	return nil
}

// truncateSheetName truncates the given sheet name to a maximum of 31 runes.
// If the name exceeds 31 runes, it returns the first 31 runes of the name.
// Otherwise, it returns the name as is.
func truncateSheetName(name string) string {
	if utf8.RuneCountInString(name) > 31 {
		runes := []rune(name)
		return string(runes[:31])
	}
	return name
}
