package tabular

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestReadCSV(t *testing.T) {
	input := "\ufeffStudent , Quiz 1 (/10)\n\"Smith, Jane\",9\n,\n Doe ,\n"
	table, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV returned error: %v", err)
	}
	if got := strings.Join(table.Header, "|"); got != "Student|Quiz 1 (/10)" {
		t.Fatalf("header = %q", got)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected blank row dropped, got %d rows", len(table.Rows))
	}
	if table.Cell(0, 0) != "Smith, Jane" || table.Cell(0, 1) != "9" {
		t.Fatalf("unexpected first row %v", table.Rows[0])
	}
	if table.Cell(1, 0) != "Doe" || table.Cell(1, 1) != "" {
		t.Fatalf("unexpected second row %v", table.Rows[1])
	}
	if table.Cell(1, 7) != "" || table.Cell(9, 0) != "" {
		t.Fatal("out of range cells should be empty")
	}
}

func TestReadCSVEmpty(t *testing.T) {
	table, err := ReadCSV(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ReadCSV returned error: %v", err)
	}
	if len(table.Header) != 0 || len(table.Rows) != 0 {
		t.Fatalf("expected empty table, got %+v", table)
	}
}

func TestColumn(t *testing.T) {
	table := Table{Header: []string{"Timestamp", " STUDENT ", "Quiz 2"}}
	if got := table.Column("Student"); got != 1 {
		t.Fatalf("Column(Student) = %d, want 1", got)
	}
	if got := table.Column("Email"); got != -1 {
		t.Fatalf("Column(Email) = %d, want -1", got)
	}
}

func TestXLSXRoundTrip(t *testing.T) {
	original := Table{
		Header: []string{"Student", "Quiz 1 (/10)", "Quiz 2 (/10)"},
		Rows: [][]string{
			{"Smith, Jane #1", "9", "X"},
			{"Doe, John #2", "X", "7"},
		},
	}
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, original, "Period 1"); err != nil {
		t.Fatalf("WriteXLSX returned error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("open written workbook: %v", err)
	}
	if name := f.GetSheetName(0); name != "Period 1" {
		t.Fatalf("sheet name = %q", name)
	}
	cellType, err := f.GetCellType("Period 1", "B2")
	if err != nil {
		t.Fatalf("GetCellType: %v", err)
	}
	if cellType != excelize.CellTypeNumber && cellType != excelize.CellTypeUnset {
		t.Fatalf("expected numeric score cell, got %v", cellType)
	}
	_ = f.Close()

	got, err := ReadXLSX(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ReadXLSX returned error: %v", err)
	}
	if strings.Join(got.Header, "|") != strings.Join(original.Header, "|") {
		t.Fatalf("header = %v", got.Header)
	}
	if len(got.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got.Rows))
	}
	for r := range original.Rows {
		for c := range original.Rows[r] {
			if got.Cell(r, c) != original.Rows[r][c] {
				t.Fatalf("cell %d,%d = %q, want %q", r, c, got.Cell(r, c), original.Rows[r][c])
			}
		}
	}
}

func TestReadXLSXFirstSheet(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	_ = f.SetCellValue(sheet, "A1", "Student")
	_ = f.SetCellValue(sheet, "B1", "Quiz Values - Sheet1(1) (/10)")
	_ = f.SetCellValue(sheet, "A2", "Janie S.")
	_ = f.SetCellValue(sheet, "B2", 10)
	if _, err := f.NewSheet("Other"); err != nil {
		t.Fatalf("NewSheet: %v", err)
	}
	_ = f.SetCellValue("Other", "A1", "ignored")

	path := filepath.Join(t.TempDir(), "quiz.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	_ = f.Close()

	table, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile returned error: %v", err)
	}
	if table.Header[1] != "Quiz Values - Sheet1(1) (/10)" {
		t.Fatalf("header = %v", table.Header)
	}
	if table.Cell(0, 0) != "Janie S." || table.Cell(0, 1) != "10" {
		t.Fatalf("row = %v", table.Rows)
	}
}

func TestWriteFileAndReadFileCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "Period_1_MASTER.csv")
	table := Table{Header: []string{"Student", "Quiz 1 (/10)"}, Rows: [][]string{{"Smith, Jane #1", "8"}}}
	if err := WriteFile(path, table, ""); err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile returned error: %v", err)
	}
	if got.Cell(0, 0) != "Smith, Jane #1" || got.Cell(0, 1) != "8" {
		t.Fatalf("unexpected table %+v", got)
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := ReadFile("scores.pdf"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if err := WriteFile(filepath.Join(t.TempDir(), "x.ods"), Table{}, ""); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}
