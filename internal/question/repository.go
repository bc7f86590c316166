package question

import (
	"quizprep-server/internal/models"

	"gorm.io/gorm"
)

type Repository struct {
    db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
    return &Repository{db: db}
}

func (r *Repository) ListQuestions(subject string) ([]models.Question, error) {
    var questions []models.Question
    query := r.db.Order("created_at desc")
    if subject != "" {
        query = query.Where("subject = ?", subject)
    }
    if err := query.Find(&questions).Error; err != nil {
        return nil, err
    }
    return questions, nil
}

func (r *Repository) GetQuestion(id uint) (*models.Question, error) {
    var question models.Question
    if err := r.db.First(&question, id).Error; err != nil {
        return nil, err
    }
    return &question, nil
}

func (r *Repository) CreateQuestion(q *models.Question) error {
    return r.db.Create(q).Error
}

func (r *Repository) UpdateQuestion(q *models.Question) error {
    return r.db.Save(q).Error
}

func (r *Repository) DeleteQuestion(id uint) error {
    return r.db.Delete(&models.Question{}, id).Error
}

// ListQuestionKeys pulls only the normalized keys, not full rows. The dedup
// pass needs nothing else.
func (r *Repository) ListQuestionKeys() ([]string, error) {
    var keys []string
    if err := r.db.Model(&models.Question{}).Pluck("question_key", &keys).Error; err != nil {
        return nil, err
    }
    return keys, nil
}

func (r *Repository) InsertQuestions(qs []models.Question) error {
    return r.db.Create(&qs).Error
}

func (r *Repository) ListSubjects() ([]string, error) {
    var subjects []string
    if err := r.db.Model(&models.Question{}).Distinct("subject").Pluck("subject", &subjects).Error; err != nil {
        return nil, err
    }
    return subjects, nil
}
