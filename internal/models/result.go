package models

import "time"

// QuizResult is write-once: created by the scoring pipeline, never updated or
// deleted afterwards.
type QuizResult struct {
    ID              string       `json:"id" gorm:"primaryKey;size:36"`
    CreatedAt       time.Time    `json:"created_at"`
    Subject         string       `json:"subject" gorm:"not null"`
    TotalQuestions  int          `json:"total_questions" gorm:"not null"`
    CorrectAnswers  int          `json:"correct_answers" gorm:"not null"`
    WrongAnswers    int          `json:"wrong_answers" gorm:"not null"`
    ScorePercentage int          `json:"score_percentage" gorm:"not null"`
    Items           []ResultItem `json:"results" gorm:"foreignKey:ResultID"`
}

// ResultItem snapshots the question text and both indices at scoring time so
// later edits or deletes in the question bank do not rewrite history.
type ResultItem struct {
    ID            uint   `json:"-" gorm:"primaryKey"`
    ResultID      string `json:"-" gorm:"index;size:36"`
    QuestionID    uint   `json:"questionId"`
    Question      string `json:"question"`
    SelectedIndex int    `json:"selectedIndex"`
    CorrectIndex  int    `json:"correctIndex"`
    IsCorrect     bool   `json:"isCorrect"`
}
