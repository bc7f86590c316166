package quiz

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

func (r *Repository) GetQuestionsByIDs(ids []uint) ([]models.Question, error) {
    var questions []models.Question
    if err := r.db.Where("id IN ?", ids).Find(&questions).Error; err != nil {
        return nil, err
    }
    return questions, nil
}

// CreateResult writes the result and its snapshot items in one transaction.
func (r *Repository) CreateResult(result *models.QuizResult) error {
    return r.db.Create(result).Error
}

func (r *Repository) GetResult(id string) (*models.QuizResult, error) {
    var result models.QuizResult
    if err := r.db.Preload("Items").First(&result, "id = ?", id).Error; err != nil {
        return nil, err
    }
    return &result, nil
}
