package question

import (
    "errors"
    "sort"

    "gorm.io/gorm"

    "quizprep-server/internal/models"
    "quizprep-server/pkg/logger"
)

var (
    // ErrNoRows is returned when an upload carries no rows at all.
    ErrNoRows = errors.New("no data received")
    // ErrAllRowsInvalid is returned when cleaning drops every row.
    ErrAllRowsInvalid = errors.New("all rows are invalid or empty")
    // ErrAllDuplicates is returned when nothing new is left to insert.
    ErrAllDuplicates = errors.New("all questions already exist")
    // ErrQuestionNotFound is returned for an unknown question id.
    ErrQuestionNotFound = errors.New("question not found")
)

// Store is the persistence surface the question service needs.
type Store interface {
    ListQuestions(subject string) ([]models.Question, error)
    GetQuestion(id uint) (*models.Question, error)
    CreateQuestion(q *models.Question) error
    UpdateQuestion(q *models.Question) error
    DeleteQuestion(id uint) error
    // ListQuestionKeys fetches only the normalized de-duplication keys,
    // not full records.
    ListQuestionKeys() ([]string, error)
    // InsertQuestions is a single batch write: all rows or none.
    InsertQuestions(qs []models.Question) error
    ListSubjects() ([]string, error)
}

// SubjectsCache caches the distinct subject list between question writes.
type SubjectsCache interface {
    GetSubjects() ([]string, error)
    SetSubjects(subjects []string) error
    InvalidateSubjects() error
}

type Service struct {
    store Store
    cache SubjectsCache
    log   *logger.Logger
}

func NewService(store Store, cache SubjectsCache, log *logger.Logger) *Service {
    return &Service{
        store: store,
        cache: cache,
        log:   log,
    }
}

func (s *Service) ListQuestions(subject string) ([]models.Question, error) {
    if subject != "" {
        subject = models.NormalizeSubject(subject)
    }
    return s.store.ListQuestions(subject)
}

func (s *Service) CreateQuestion(adminID uint, input models.QuestionInput) (*models.Question, error) {
    q := questionFromInput(input)
    if err := s.store.CreateQuestion(q); err != nil {
        if errors.Is(err, gorm.ErrDuplicatedKey) {
            return nil, ErrAllDuplicates
        }
        return nil, err
    }

    s.invalidateSubjects()
    s.log.WithAdminID(adminID).WithField("question_id", q.ID).Info("question created")
    return q, nil
}

func (s *Service) UpdateQuestion(adminID uint, id uint, input models.QuestionInput) (*models.Question, error) {
    q, err := s.store.GetQuestion(id)
    if err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return nil, ErrQuestionNotFound
        }
        return nil, err
    }

    updated := questionFromInput(input)
    updated.ID = q.ID
    updated.CreatedAt = q.CreatedAt
    if err := s.store.UpdateQuestion(updated); err != nil {
        if errors.Is(err, gorm.ErrDuplicatedKey) {
            return nil, ErrAllDuplicates
        }
        return nil, err
    }

    s.invalidateSubjects()
    s.log.WithAdminID(adminID).WithField("question_id", id).Info("question updated")
    return updated, nil
}

func (s *Service) DeleteQuestion(adminID uint, id uint) error {
    if _, err := s.store.GetQuestion(id); err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return ErrQuestionNotFound
        }
        return err
    }

    if err := s.store.DeleteQuestion(id); err != nil {
        return err
    }

    s.invalidateSubjects()
    s.log.WithAdminID(adminID).WithField("question_id", id).Info("question deleted")
    return nil
}

// UploadQuestions runs the bulk ingestion pipeline: clean, de-duplicate
// within the batch, de-duplicate against the store, then insert what is left
// in one batch write. Steps before the insert are pure.
func (s *Service) UploadQuestions(adminID uint, rows []models.RawRow) (models.UploadSummary, error) {
    summary := models.UploadSummary{Received: len(rows)}

    if len(rows) == 0 {
        return summary, ErrNoRows
    }

    cleaned := cleanRows(rows)
    summary.Cleaned = len(cleaned)
    if len(cleaned) == 0 {
        return summary, ErrAllRowsInvalid
    }

    unique := dedupeInFile(cleaned)
    summary.UniqueInFile = len(unique)
    summary.DuplicatesInFile = len(cleaned) - len(unique)

    keys, err := s.store.ListQuestionKeys()
    if err != nil {
        return summary, err
    }
    existing := make(map[string]struct{}, len(keys))
    for _, key := range keys {
        existing[key] = struct{}{}
    }

    finalInsert := filterExisting(unique, existing)
    summary.DuplicatesInDB = len(unique) - len(finalInsert)
    if len(finalInsert) == 0 {
        return summary, ErrAllDuplicates
    }

    questions := make([]models.Question, len(finalInsert))
    for i, row := range finalInsert {
        questions[i] = models.Question{
            QuestionText: row.QuestionText,
            QuestionKey:  models.NormalizeKey(row.QuestionText),
            OptionA:      row.OptionA,
            OptionB:      row.OptionB,
            OptionC:      row.OptionC,
            OptionD:      row.OptionD,
            CorrectIndex: row.CorrectIndex,
            Subject:      models.NormalizeSubject(row.Subject),
        }
    }

    if err := s.store.InsertQuestions(questions); err != nil {
        // Unique index on the question key backstops the check-then-insert
        // race between concurrent uploads.
        if errors.Is(err, gorm.ErrDuplicatedKey) {
            return summary, ErrAllDuplicates
        }
        return summary, err
    }
    summary.Inserted = len(finalInsert)

    s.invalidateSubjects()
    s.log.WithAdminID(adminID).WithFields(map[string]interface{}{
        "received": summary.Received,
        "inserted": summary.Inserted,
    }).Info("bulk upload complete")

    return summary, nil
}

// InsertDrafts saves AI-generated draft questions, applying the defaults the
// generator may omit. Invalid indices fall back to 0 and a missing subject
// becomes "general".
func (s *Service) InsertDrafts(adminID uint, drafts []models.RawRow) (int, error) {
    if len(drafts) == 0 {
        return 0, ErrNoRows
    }

    questions := make([]models.Question, 0, len(drafts))
    for _, d := range drafts {
        index, ok := coerceIndex(d.CorrectIndex)
        if !ok || index < 0 || index > 3 {
            index = 0
        }
        subject := d.Subject
        if subject == "" {
            subject = "General"
        }
        questions = append(questions, models.Question{
            QuestionText: d.QuestionText,
            QuestionKey:  models.NormalizeKey(d.QuestionText),
            OptionA:      d.OptionA,
            OptionB:      d.OptionB,
            OptionC:      d.OptionC,
            OptionD:      d.OptionD,
            CorrectIndex: index,
            Subject:      models.NormalizeSubject(subject),
        })
    }

    if err := s.store.InsertQuestions(questions); err != nil {
        if errors.Is(err, gorm.ErrDuplicatedKey) {
            return 0, ErrAllDuplicates
        }
        return 0, err
    }

    s.invalidateSubjects()
    s.log.WithAdminID(adminID).WithField("count", len(questions)).Info("draft questions saved")
    return len(questions), nil
}

// Subjects returns the deduplicated, normalized subject list, cache-aside.
func (s *Service) Subjects() ([]string, error) {
    if cached, err := s.cache.GetSubjects(); err == nil {
        return cached, nil
    }

    subjects, err := s.store.ListSubjects()
    if err != nil {
        return nil, err
    }

    seen := make(map[string]struct{}, len(subjects))
    cleaned := make([]string, 0, len(subjects))
    for _, subject := range subjects {
        normalized := models.NormalizeSubject(subject)
        if normalized == "" {
            continue
        }
        if _, dup := seen[normalized]; dup {
            continue
        }
        seen[normalized] = struct{}{}
        cleaned = append(cleaned, normalized)
    }
    sort.Strings(cleaned)

    if err := s.cache.SetSubjects(cleaned); err != nil {
        s.log.WithError(err).Debug("subjects cache write failed")
    }
    return cleaned, nil
}

func (s *Service) invalidateSubjects() {
    if err := s.cache.InvalidateSubjects(); err != nil {
        s.log.WithError(err).Debug("subjects cache invalidation failed")
    }
}

func questionFromInput(input models.QuestionInput) *models.Question {
    index := 0
    if input.CorrectIndex != nil {
        index = *input.CorrectIndex
    }
    return &models.Question{
        QuestionText: input.QuestionText,
        QuestionKey:  models.NormalizeKey(input.QuestionText),
        OptionA:      input.OptionA,
        OptionB:      input.OptionB,
        OptionC:      input.OptionC,
        OptionD:      input.OptionD,
        CorrectIndex: index,
        Subject:      models.NormalizeSubject(input.Subject),
    }
}
