package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"quizprep-server/internal/models"
)

type fakeAdminStore struct {
	byUsername map[string]*models.Admin
	byID       map[uint]*models.Admin
	nextID     uint
}

func newFakeAdminStore() *fakeAdminStore {
	return &fakeAdminStore{
		byUsername: make(map[string]*models.Admin),
		byID:       make(map[uint]*models.Admin),
		nextID:     1,
	}
}

func (f *fakeAdminStore) GetAdminByUsername(username string) (*models.Admin, error) {
	admin, ok := f.byUsername[username]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return admin, nil
}

func (f *fakeAdminStore) GetAdminByID(id uint) (*models.Admin, error) {
	admin, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return admin, nil
}

func (f *fakeAdminStore) CreateAdmin(admin *models.Admin) error {
	admin.ID = f.nextID
	f.nextID++
	f.byUsername[admin.Username] = admin
	f.byID[admin.ID] = admin
	return nil
}

func newTestAuthService() (*Service, *fakeAdminStore) {
	store := newFakeAdminStore()
	return NewService(store, NewSessionManager("secret")), store
}

func TestSignupHashesPassword(t *testing.T) {
	svc, store := newTestAuthService()

	admin, err := svc.Signup("alice", "s3cret")
	require.NoError(t, err)
	require.NotZero(t, admin.ID)

	stored := store.byUsername["alice"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "s3cret", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("s3cret")))
}

func TestSignupDuplicateUsername(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.Signup("alice", "pw")
	require.NoError(t, err)

	_, err = svc.Signup("alice", "other")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc, _ := newTestAuthService()
	sessions := svc.sessions

	admin, err := svc.Signup("alice", "pw")
	require.NoError(t, err)

	token, loggedIn, err := svc.Login("alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, loggedIn.ID)

	adminID, ok := sessions.Verify(token)
	assert.True(t, ok)
	assert.Equal(t, admin.ID, adminID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.Signup("alice", "pw")
	require.NoError(t, err)

	_, _, err = svc.Login("alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := newTestAuthService()

	_, _, err := svc.Login("nobody", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyUnknownAdmin(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.Verify(99)
	assert.ErrorIs(t, err, ErrAdminNotFound)
}
