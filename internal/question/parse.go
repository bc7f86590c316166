package question

import (
    "encoding/csv"
    "errors"
    "io"
    "path/filepath"
    "strings"

    "github.com/xuri/excelize/v2"

    "quizprep-server/internal/models"
)

// ErrUnsupportedFile is returned for uploads that are neither CSV nor XLSX.
var ErrUnsupportedFile = errors.New("unsupported file type, expected .csv or .xlsx")

// ParseSpreadsheet reads an uploaded spreadsheet into raw rows, dispatching
// on the file extension. The first row is treated as the header.
func ParseSpreadsheet(filename string, r io.Reader) ([]models.RawRow, error) {
    switch strings.ToLower(filepath.Ext(filename)) {
    case ".csv":
        return parseCSV(r)
    case ".xlsx":
        return parseXLSX(r)
    default:
        return nil, ErrUnsupportedFile
    }
}

func parseCSV(r io.Reader) ([]models.RawRow, error) {
    reader := csv.NewReader(r)
    reader.FieldsPerRecord = -1

    records, err := reader.ReadAll()
    if err != nil {
        return nil, err
    }
    return rowsFromRecords(records), nil
}

func parseXLSX(r io.Reader) ([]models.RawRow, error) {
    book, err := excelize.OpenReader(r)
    if err != nil {
        return nil, err
    }
    defer book.Close()

    sheets := book.GetSheetList()
    if len(sheets) == 0 {
        return nil, errors.New("workbook has no sheets")
    }

    records, err := book.GetRows(sheets[0])
    if err != nil {
        return nil, err
    }
    return rowsFromRecords(records), nil
}

// rowsFromRecords maps header names to RawRow fields. Header matching is
// case-insensitive; unknown columns are ignored and missing cells stay empty.
func rowsFromRecords(records [][]string) []models.RawRow {
    if len(records) < 2 {
        return nil
    }

    columns := make(map[string]int, len(records[0]))
    for i, name := range records[0] {
        columns[strings.ToLower(strings.TrimSpace(name))] = i
    }

    cell := func(record []string, name string) string {
        i, ok := columns[name]
        if !ok || i >= len(record) {
            return ""
        }
        return record[i]
    }

    rows := make([]models.RawRow, 0, len(records)-1)
    for _, record := range records[1:] {
        row := models.RawRow{
            QuestionText: cell(record, "question_text"),
            OptionA:      cell(record, "option_a"),
            OptionB:      cell(record, "option_b"),
            OptionC:      cell(record, "option_c"),
            OptionD:      cell(record, "option_d"),
            Subject:      cell(record, "subject"),
        }
        if raw := cell(record, "correct_index"); raw != "" {
            row.CorrectIndex = raw
        }
        rows = append(rows, row)
    }
    return rows
}
