package auth

import (
    "errors"

    "golang.org/x/crypto/bcrypt"
    "gorm.io/gorm"

    "quizprep-server/internal/models"
)

var (
    // ErrInvalidCredentials is returned for an unknown username or a wrong
    // password. Callers must not be able to tell the two apart.
    ErrInvalidCredentials = errors.New("invalid username or password")
    // ErrUsernameTaken is returned when signing up with an existing username.
    ErrUsernameTaken = errors.New("username already exists")
    // ErrAdminNotFound is returned when a session resolves to a deleted admin.
    ErrAdminNotFound = errors.New("admin not found")
)

// AdminStore is the persistence surface the auth service needs.
type AdminStore interface {
    GetAdminByUsername(username string) (*models.Admin, error)
    GetAdminByID(id uint) (*models.Admin, error)
    CreateAdmin(admin *models.Admin) error
}

type Service struct {
    store    AdminStore
    sessions *SessionManager
}

func NewService(store AdminStore, sessions *SessionManager) *Service {
    return &Service{
        store:    store,
        sessions: sessions,
    }
}

// Signup creates a new admin account with a bcrypt-hashed password.
func (s *Service) Signup(username, password string) (*models.Admin, error) {
    existing, err := s.store.GetAdminByUsername(username)
    if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
        return nil, err
    }
    if existing != nil {
        return nil, ErrUsernameTaken
    }

    hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
    if err != nil {
        return nil, err
    }

    admin := &models.Admin{
        Username: username,
        Password: string(hashed),
    }
    if err := s.store.CreateAdmin(admin); err != nil {
        return nil, err
    }
    return admin, nil
}

// Login checks the credentials and issues a session token on success.
func (s *Service) Login(username, password string) (string, *models.Admin, error) {
    admin, err := s.store.GetAdminByUsername(username)
    if err != nil {
        return "", nil, ErrInvalidCredentials
    }

    if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
        return "", nil, ErrInvalidCredentials
    }

    token, err := s.sessions.Issue(admin.ID)
    if err != nil {
        return "", nil, err
    }

    return token, admin, nil
}

// Verify loads the admin behind an already-verified session id.
func (s *Service) Verify(adminID uint) (*models.Admin, error) {
    admin, err := s.store.GetAdminByID(adminID)
    if err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return nil, ErrAdminNotFound
        }
        return nil, err
    }
    return admin, nil
}
