package quiz

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"quizprep-server/internal/models"
	"quizprep-server/pkg/logger"
)

type fakeQuizStore struct {
	questions map[uint]models.Question
	results   map[string]*models.QuizResult

	createErr error
}

func newFakeQuizStore(questions ...models.Question) *fakeQuizStore {
	store := &fakeQuizStore{
		questions: make(map[uint]models.Question),
		results:   make(map[string]*models.QuizResult),
	}
	for _, q := range questions {
		store.questions[q.ID] = q
	}
	return store
}

func (f *fakeQuizStore) GetQuestionsByIDs(ids []uint) ([]models.Question, error) {
	var out []models.Question
	for _, id := range ids {
		if q, ok := f.questions[id]; ok {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeQuizStore) CreateResult(result *models.QuizResult) error {
	if f.createErr != nil {
		return f.createErr
	}
	copied := *result
	f.results[result.ID] = &copied
	return nil
}

func (f *fakeQuizStore) GetResult(id string) (*models.QuizResult, error) {
	result, ok := f.results[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return result, nil
}

type fakeResultCache struct {
	results map[string]*models.QuizResult
	gets    int
	hits    int
}

func newFakeResultCache() *fakeResultCache {
	return &fakeResultCache{results: make(map[string]*models.QuizResult)}
}

func (f *fakeResultCache) GetResult(id string) (*models.QuizResult, error) {
	f.gets++
	if result, ok := f.results[id]; ok {
		f.hits++
		return result, nil
	}
	return nil, errors.New("cache miss")
}

func (f *fakeResultCache) SetResult(result *models.QuizResult) error {
	f.results[result.ID] = result
	return nil
}

func mathQuestion(id uint, correct int) models.Question {
	return models.Question{
		ID:           id,
		QuestionText: "question",
		OptionA:      "a", OptionB: "b", OptionC: "c", OptionD: "d",
		CorrectIndex: correct,
		Subject:      "math",
	}
}

func newTestService(store Store) (*Service, *fakeResultCache) {
	cache := newFakeResultCache()
	return NewService(store, cache, logger.NewLogger("test")), cache
}

func TestSubmitAllCorrect(t *testing.T) {
	store := newFakeQuizStore(mathQuestion(1, 2))
	svc, _ := newTestService(store)

	id, err := svc.Submit([]models.Answer{{QuestionID: 1, SelectedIndex: 2}}, "math")
	require.NoError(t, err)

	result := store.results[id]
	require.NotNil(t, result)
	assert.Equal(t, 1, result.TotalQuestions)
	assert.Equal(t, 1, result.CorrectAnswers)
	assert.Equal(t, 0, result.WrongAnswers)
	assert.Equal(t, 100, result.ScorePercentage)
	require.Len(t, result.Items, 1)
	assert.True(t, result.Items[0].IsCorrect)
	assert.Equal(t, "question", result.Items[0].Question)
}

func TestSubmitScoringInvariants(t *testing.T) {
	store := newFakeQuizStore(
		mathQuestion(1, 0),
		mathQuestion(2, 1),
		mathQuestion(3, 2),
	)
	svc, _ := newTestService(store)

	answers := []models.Answer{
		{QuestionID: 1, SelectedIndex: 0},  // correct
		{QuestionID: 2, SelectedIndex: 3},  // wrong
		{QuestionID: 3, SelectedIndex: -1}, // unanswered, always wrong
	}

	id, err := svc.Submit(answers, "math")
	require.NoError(t, err)

	result := store.results[id]
	assert.Equal(t, len(answers), result.CorrectAnswers+result.WrongAnswers)
	assert.Equal(t, 1, result.CorrectAnswers)
	assert.Equal(t, 2, result.WrongAnswers)
	assert.Equal(t, 33, result.ScorePercentage) // round(100/3)
}

func TestSubmitUnansweredMarkedWrong(t *testing.T) {
	store := newFakeQuizStore(mathQuestion(1, 0))
	svc, _ := newTestService(store)

	id, err := svc.Submit([]models.Answer{{QuestionID: 1, SelectedIndex: -1}}, "math")
	require.NoError(t, err)

	result := store.results[id]
	require.Len(t, result.Items, 1)
	assert.False(t, result.Items[0].IsCorrect)
	assert.Equal(t, -1, result.Items[0].SelectedIndex)
	assert.Equal(t, 0, result.ScorePercentage)
}

func TestSubmitStaleIDCountsAsWrong(t *testing.T) {
	store := newFakeQuizStore(mathQuestion(1, 0))
	svc, _ := newTestService(store)

	answers := []models.Answer{
		{QuestionID: 1, SelectedIndex: 0},
		{QuestionID: 99, SelectedIndex: 0}, // unknown id, dropped from items
	}

	id, err := svc.Submit(answers, "math")
	require.NoError(t, err)

	result := store.results[id]
	// Denominator stays the submitted answer count.
	assert.Equal(t, 2, result.TotalQuestions)
	assert.Equal(t, 1, result.CorrectAnswers)
	assert.Equal(t, 1, result.WrongAnswers)
	assert.Equal(t, 50, result.ScorePercentage)
	assert.Len(t, result.Items, 1)
}

func TestSubmitValidation(t *testing.T) {
	svc, _ := newTestService(newFakeQuizStore())

	_, err := svc.Submit(nil, "math")
	assert.ErrorIs(t, err, ErrEmptySubmission)

	_, err = svc.Submit([]models.Answer{{QuestionID: 1}}, "   ")
	assert.ErrorIs(t, err, ErrEmptySubmission)
}

func TestSubmitNoQuestionsResolve(t *testing.T) {
	svc, _ := newTestService(newFakeQuizStore())

	_, err := svc.Submit([]models.Answer{{QuestionID: 42, SelectedIndex: 1}}, "math")
	assert.ErrorIs(t, err, ErrQuestionsNotFound)
}

func TestResultRoundTrip(t *testing.T) {
	store := newFakeQuizStore(mathQuestion(1, 1), mathQuestion(2, 2))
	svc, _ := newTestService(store)

	id, err := svc.Submit([]models.Answer{
		{QuestionID: 1, SelectedIndex: 1},
		{QuestionID: 2, SelectedIndex: 0},
	}, "math")
	require.NoError(t, err)

	fetched, err := svc.GetResult(id)
	require.NoError(t, err)
	assert.Equal(t, 2, fetched.TotalQuestions)
	assert.Equal(t, 1, fetched.CorrectAnswers)
	assert.Equal(t, 1, fetched.WrongAnswers)
	assert.Equal(t, 50, fetched.ScorePercentage)
	assert.Equal(t, "math", fetched.Subject)
}

func TestGetResultUsesCache(t *testing.T) {
	store := newFakeQuizStore(mathQuestion(1, 0))
	svc, cache := newTestService(store)

	id, err := svc.Submit([]models.Answer{{QuestionID: 1, SelectedIndex: 0}}, "math")
	require.NoError(t, err)

	// Submit already populated the cache; the fetch must not miss.
	_, err = svc.GetResult(id)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)
}

func TestGetResultNotFound(t *testing.T) {
	svc, _ := newTestService(newFakeQuizStore())

	_, err := svc.GetResult("b6d5a9e0-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrResultNotFound)
}
