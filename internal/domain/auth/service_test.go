package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prepstock/internal/core/apperror"
	"prepstock/internal/core/id"
)

type fakeUserRepo struct {
	byEmail map[string]*User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, u *User) error {
	r.byEmail[u.Email] = u
	return nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, apperror.NewNotFound("user", email)
	}
	return u, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, userID id.ID) (*User, error) {
	for _, u := range r.byEmail {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, apperror.NewNotFound("user", userID.String())
}

// fakeTransactor counts invocations and runs the callback directly.
type fakeTransactor struct {
	calls int
}

func (t *fakeTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

func newAuthService() (*Service, *fakeUserRepo, *fakeTransactor) {
	repo := newFakeUserRepo()
	tx := &fakeTransactor{}
	svc := NewService(repo, NewJWTService(DefaultJWTConfig("test-secret")), tx)
	return svc, repo, tx
}

func TestRegister(t *testing.T) {
	svc, repo, tx := newAuthService()

	pair, err := svc.Register(context.Background(), RegisterRequest{
		Email:    " Baker@Example.com ",
		Name:     "Ann",
		Password: "longenough",
	})
	require.NoError(t, err)
	require.NotNil(t, pair.User)

	// Email normalized, user persisted, check and insert ran in one tx.
	assert.Equal(t, "baker@example.com", pair.User.Email)
	assert.Contains(t, repo.byEmail, "baker@example.com")
	assert.Equal(t, 1, tx.calls)

	got, err := svc.jwt.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, pair.User.ID, got)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, repo, _ := newAuthService()

	req := RegisterRequest{Email: "baker@example.com", Name: "Ann", Password: "longenough"}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
	assert.Len(t, repo.byEmail, 1)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _ := newAuthService()

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email: "baker@example.com", Name: "Ann", Password: "longenough",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), Credentials{
		Email: "baker@example.com", Password: "wrong-password",
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
}

func TestLogin_UnknownEmailSameAnswer(t *testing.T) {
	svc, _, _ := newAuthService()

	_, err := svc.Login(context.Background(), Credentials{
		Email: "nobody@example.com", Password: "whatever",
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
	assert.Equal(t, "invalid email or password", appErr.Message)
}
