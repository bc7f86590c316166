package auth

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

func (r *Repository) GetAdminByUsername(username string) (*models.Admin, error) {
    var admin models.Admin
    if err := r.db.Where("username = ?", username).First(&admin).Error; err != nil {
        return nil, err
    }
    return &admin, nil
}

func (r *Repository) GetAdminByID(id uint) (*models.Admin, error) {
    var admin models.Admin
    if err := r.db.First(&admin, id).Error; err != nil {
        return nil, err
    }
    return &admin, nil
}

func (r *Repository) CreateAdmin(admin *models.Admin) error {
    return r.db.Create(admin).Error
}
