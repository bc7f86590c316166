package models

import (
    "strings"
    "time"
)

type Question struct {
    ID           uint      `json:"id" gorm:"primaryKey"`
    CreatedAt    time.Time `json:"created_at"`
    UpdatedAt    time.Time `json:"updated_at"`
    QuestionText string    `json:"question_text" gorm:"not null"`
    QuestionKey  string    `json:"-" gorm:"uniqueIndex;not null"`
    OptionA      string    `json:"option_a" gorm:"not null"`
    OptionB      string    `json:"option_b" gorm:"not null"`
    OptionC      string    `json:"option_c" gorm:"not null"`
    OptionD      string    `json:"option_d" gorm:"not null"`
    CorrectIndex int       `json:"correct_index" gorm:"not null"`
    Subject      string    `json:"subject" gorm:"index;not null"`
}

// NormalizeKey produces the canonical de-duplication key for a question text.
func NormalizeKey(text string) string {
    return strings.ToLower(strings.TrimSpace(text))
}

// NormalizeSubject is the single normalization policy for subjects on every
// write path: trimmed and lower-cased.
func NormalizeSubject(subject string) string {
    return strings.ToLower(strings.TrimSpace(subject))
}
