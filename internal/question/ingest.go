package question

import (
    "math"
    "strconv"
    "strings"

    "quizprep-server/internal/models"
)

// cleanRow is a raw row that survived cleaning: every text field non-empty
// after trimming and correct_index an integer in [0,3].
type cleanRow struct {
    QuestionText string
    OptionA      string
    OptionB      string
    OptionC      string
    OptionD      string
    CorrectIndex int
    Subject      string
}

// coerceIndex turns the loosely-typed correct_index into an int. JSON numbers
// arrive as float64, spreadsheet cells as strings; anything non-integral or
// absent is rejected.
func coerceIndex(v interface{}) (int, bool) {
    switch n := v.(type) {
    case nil:
        return 0, false
    case int:
        return n, true
    case float64:
        if n != math.Trunc(n) {
            return 0, false
        }
        return int(n), true
    case string:
        i, err := strconv.Atoi(strings.TrimSpace(n))
        if err != nil {
            return 0, false
        }
        return i, true
    default:
        return 0, false
    }
}

// cleanRows trims every text field, coerces correct_index and silently drops
// rows that fail validation.
func cleanRows(rows []models.RawRow) []cleanRow {
    cleaned := make([]cleanRow, 0, len(rows))
    for _, r := range rows {
        row := cleanRow{
            QuestionText: strings.TrimSpace(r.QuestionText),
            OptionA:      strings.TrimSpace(r.OptionA),
            OptionB:      strings.TrimSpace(r.OptionB),
            OptionC:      strings.TrimSpace(r.OptionC),
            OptionD:      strings.TrimSpace(r.OptionD),
            Subject:      strings.TrimSpace(r.Subject),
        }

        index, ok := coerceIndex(r.CorrectIndex)
        if !ok || index < 0 || index > 3 {
            continue
        }
        row.CorrectIndex = index

        if row.QuestionText == "" || row.OptionA == "" || row.OptionB == "" ||
            row.OptionC == "" || row.OptionD == "" || row.Subject == "" {
            continue
        }

        cleaned = append(cleaned, row)
    }
    return cleaned
}

// dedupeInFile collapses rows sharing the same normalized question text.
// The last occurrence wins; output order follows first occurrence.
func dedupeInFile(rows []cleanRow) []cleanRow {
    unique := make([]cleanRow, 0, len(rows))
    position := make(map[string]int, len(rows))
    for _, row := range rows {
        key := models.NormalizeKey(row.QuestionText)
        if at, seen := position[key]; seen {
            unique[at] = row
            continue
        }
        position[key] = len(unique)
        unique = append(unique, row)
    }
    return unique
}

// filterExisting drops rows whose normalized question text is already stored.
func filterExisting(rows []cleanRow, existing map[string]struct{}) []cleanRow {
    fresh := make([]cleanRow, 0, len(rows))
    for _, row := range rows {
        if _, dup := existing[models.NormalizeKey(row.QuestionText)]; dup {
            continue
        }
        fresh = append(fresh, row)
    }
    return fresh
}
