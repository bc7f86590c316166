package quiz

import (
    "errors"
    "math"

    "github.com/google/uuid"
    "gorm.io/gorm"

    "quizprep-server/internal/models"
    "quizprep-server/pkg/logger"
)

var (
    // ErrEmptySubmission is returned when answers are missing or the subject
    // is blank.
    ErrEmptySubmission = errors.New("answers and subject are required")
    // ErrQuestionsNotFound is returned when none of the submitted question
    // ids resolve in the store.
    ErrQuestionsNotFound = errors.New("no matching questions found")
    // ErrResultNotFound is returned for an unknown result id.
    ErrResultNotFound = errors.New("result not found")
)

// Store is the persistence surface the scoring pipeline needs.
type Store interface {
    GetQuestionsByIDs(ids []uint) ([]models.Question, error)
    CreateResult(result *models.QuizResult) error
    GetResult(id string) (*models.QuizResult, error)
}

// ResultCache holds immutable results keyed by id.
type ResultCache interface {
    GetResult(id string) (*models.QuizResult, error)
    SetResult(result *models.QuizResult) error
}

type Service struct {
    store Store
    cache ResultCache
    log   *logger.Logger
}

func NewService(store Store, cache ResultCache, log *logger.Logger) *Service {
    return &Service{
        store: store,
        cache: cache,
        log:   log,
    }
}

// Submit scores a learner's answers against the stored questions and persists
// an immutable result, returning its id.
//
// The denominator is always the submitted answer count: an answer whose
// question id no longer resolves is dropped from the item list but still
// counts as wrong, as does selectedIndex -1 (unanswered).
func (s *Service) Submit(answers []models.Answer, subject string) (string, error) {
    subject = models.NormalizeSubject(subject)
    if len(answers) == 0 || subject == "" {
        return "", ErrEmptySubmission
    }

    ids := make([]uint, 0, len(answers))
    seen := make(map[uint]struct{}, len(answers))
    for _, a := range answers {
        if _, dup := seen[a.QuestionID]; dup {
            continue
        }
        seen[a.QuestionID] = struct{}{}
        ids = append(ids, a.QuestionID)
    }

    questions, err := s.store.GetQuestionsByIDs(ids)
    if err != nil {
        return "", err
    }
    if len(questions) == 0 {
        return "", ErrQuestionsNotFound
    }

    byID := make(map[uint]models.Question, len(questions))
    for _, q := range questions {
        byID[q.ID] = q
    }

    correct := 0
    items := make([]models.ResultItem, 0, len(answers))
    for _, a := range answers {
        q, found := byID[a.QuestionID]
        if !found {
            continue
        }

        isCorrect := a.SelectedIndex == q.CorrectIndex
        if isCorrect {
            correct++
        }
        items = append(items, models.ResultItem{
            QuestionID:    q.ID,
            Question:      q.QuestionText,
            SelectedIndex: a.SelectedIndex,
            CorrectIndex:  q.CorrectIndex,
            IsCorrect:     isCorrect,
        })
    }

    total := len(answers)
    result := &models.QuizResult{
        ID:              uuid.NewString(),
        Subject:         subject,
        TotalQuestions:  total,
        CorrectAnswers:  correct,
        WrongAnswers:    total - correct,
        ScorePercentage: int(math.Round(100 * float64(correct) / float64(total))),
        Items:           items,
    }

    if err := s.store.CreateResult(result); err != nil {
        return "", err
    }

    if err := s.cache.SetResult(result); err != nil {
        s.log.WithError(err).Debug("result cache write failed")
    }

    s.log.WithFields(map[string]interface{}{
        "result_id": result.ID,
        "subject":   subject,
        "score":     result.ScorePercentage,
    }).Info("quiz scored")

    return result.ID, nil
}

// GetResult fetches a result by id, cache-aside.
func (s *Service) GetResult(id string) (*models.QuizResult, error) {
    if cached, err := s.cache.GetResult(id); err == nil {
        return cached, nil
    }

    result, err := s.store.GetResult(id)
    if err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return nil, ErrResultNotFound
        }
        return nil, err
    }

    if err := s.cache.SetResult(result); err != nil {
        s.log.WithError(err).Debug("result cache write failed")
    }
    return result, nil
}
