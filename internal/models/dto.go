package models

// QuestionInput is the request body for create/update of a single question.
type QuestionInput struct {
    QuestionText string `json:"question_text" validate:"required"`
    OptionA      string `json:"option_a" validate:"required"`
    OptionB      string `json:"option_b" validate:"required"`
    OptionC      string `json:"option_c" validate:"required"`
    OptionD      string `json:"option_d" validate:"required"`
    CorrectIndex *int   `json:"correct_index" validate:"required,min=0,max=3"`
    Subject      string `json:"subject" validate:"required"`
}

// RawRow is one loosely-typed spreadsheet row. Text fields may be absent and
// correct_index may arrive as a string, a number, or nothing at all.
type RawRow struct {
    QuestionText string      `json:"question_text"`
    OptionA      string      `json:"option_a"`
    OptionB      string      `json:"option_b"`
    OptionC      string      `json:"option_c"`
    OptionD      string      `json:"option_d"`
    CorrectIndex interface{} `json:"correct_index"`
    Subject      string      `json:"subject"`
}

// UploadSummary is the reconciliation report returned by bulk ingestion.
type UploadSummary struct {
    Received         int `json:"received"`
    Cleaned          int `json:"cleaned"`
    UniqueInFile     int `json:"unique_in_file"`
    Inserted         int `json:"inserted"`
    DuplicatesInFile int `json:"duplicates_in_file"`
    DuplicatesInDB   int `json:"duplicates_in_db"`
}

// Answer is one submitted answer. SelectedIndex -1 means the learner left the
// question unanswered.
type Answer struct {
    QuestionID    uint `json:"questionId"`
    SelectedIndex int  `json:"selectedIndex"`
}
