package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskflow/core/internal/adapters/cache"
	"github.com/taskflow/core/internal/adapters/repository"
	"github.com/taskflow/core/internal/domain/entities"
	"github.com/taskflow/core/internal/infrastructure/config"
	"github.com/taskflow/core/internal/infrastructure/logger"
	"github.com/taskflow/core/internal/ports"
)

type failingUserRepo struct {
	err error
}

func (f failingUserRepo) Create(context.Context, *entities.User) error { return f.err }
func (f failingUserRepo) GetByID(context.Context, string) (*entities.User, error) {
	return nil, f.err
}
func (f failingUserRepo) GetByEmail(context.Context, string) (*entities.User, error) {
	return nil, f.err
}

func newTestAuthService(t *testing.T, users ports.UserRepository, revoker ports.TokenRevoker, revokeOnLogout bool) *AuthService {
	t.Helper()
	svc, err := NewAuthService(users, newTestTokenService(time.Hour), revoker, config.AuthConfig{
		TokenHeader:    "token",
		BcryptCost:     bcrypt.MinCost,
		RevokeOnLogout: revokeOnLogout,
		RevocationTTL:  time.Hour,
	}, logger.NewNop())
	require.NoError(t, err)
	return svc
}

var validSignup = ports.SignupRequest{Name: "Ann", Email: "Ann@Example.com ", Password: "Abc12!"}

func TestSignup_StoresHashNotPassword(t *testing.T) {
	users := repository.NewMemoryUserRepository()
	svc := newTestAuthService(t, users, nil, false)

	user, err := svc.Signup(context.Background(), validSignup)
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", user.Email)

	stored, err := users.GetByEmail(context.Background(), "ann@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, validSignup.Password, stored.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(validSignup.Password)))
}

func TestSignup_DuplicateEmail(t *testing.T) {
	svc := newTestAuthService(t, repository.NewMemoryUserRepository(), nil, false)

	_, err := svc.Signup(context.Background(), validSignup)
	require.NoError(t, err)

	dup := validSignup
	dup.Email = "ann@example.com"
	_, err = svc.Signup(context.Background(), dup)
	require.ErrorIs(t, err, entities.ErrDuplicateEmail)
}

func TestLogin_Success(t *testing.T) {
	svc := newTestAuthService(t, repository.NewMemoryUserRepository(), nil, false)

	user, err := svc.Signup(context.Background(), validSignup)
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), ports.LoginRequest{Email: "ANN@example.com", Password: validSignup.Password})
	require.NoError(t, err)

	claims, err := svc.Authenticate(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestLogin_UnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	svc := newTestAuthService(t, repository.NewMemoryUserRepository(), nil, false)

	_, err := svc.Signup(context.Background(), validSignup)
	require.NoError(t, err)

	_, errUnknown := svc.Login(context.Background(), ports.LoginRequest{Email: "bob@example.com", Password: "Abc12!"})
	_, errWrong := svc.Login(context.Background(), ports.LoginRequest{Email: "ann@example.com", Password: "Abc12?"})

	require.ErrorIs(t, errUnknown, entities.ErrInvalidCredentials)
	require.ErrorIs(t, errWrong, entities.ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrong.Error())
}

func TestLogin_StoreFailureIsNotInvalidCredentials(t *testing.T) {
	svc := newTestAuthService(t, failingUserRepo{err: errors.New("connection reset")}, nil, false)

	_, err := svc.Login(context.Background(), ports.LoginRequest{Email: "ann@example.com", Password: "Abc12!"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, entities.ErrInvalidCredentials)
}

func TestLogout_WithoutRevocationKeepsTokenValid(t *testing.T) {
	revoker := cache.NewMemoryRevoker()
	svc := newTestAuthService(t, repository.NewMemoryUserRepository(), revoker, false)

	tok, err := svc.tokens.Issue("64b7f0c2a1b2c3d4e5f60718")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), tok))

	_, err = svc.Authenticate(context.Background(), tok)
	require.NoError(t, err)
}

func TestLogout_RevokesToken(t *testing.T) {
	revoker := cache.NewMemoryRevoker()
	svc := newTestAuthService(t, repository.NewMemoryUserRepository(), revoker, true)

	tok, err := svc.tokens.Issue("64b7f0c2a1b2c3d4e5f60718")
	require.NoError(t, err)
	other, err := svc.tokens.Issue("64b7f0c2a1b2c3d4e5f60718")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), tok))

	_, err = svc.Authenticate(context.Background(), tok)
	require.ErrorIs(t, err, entities.ErrTokenRevoked)

	_, err = svc.Authenticate(context.Background(), other)
	require.NoError(t, err)
}

func TestLogout_RejectsInvalidTokenWhenRevoking(t *testing.T) {
	svc := newTestAuthService(t, repository.NewMemoryUserRepository(), cache.NewMemoryRevoker(), true)

	err := svc.Logout(context.Background(), "garbage")
	require.ErrorIs(t, err, entities.ErrInvalidToken)
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	svc := newTestAuthService(t, repository.NewMemoryUserRepository(), nil, false)

	_, err := svc.Authenticate(context.Background(), "")
	require.ErrorIs(t, err, entities.ErrInvalidToken)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ann@example.com", NormalizeEmail("  Ann@EXAMPLE.com\t"))
}

type unreachableRevoker struct{}

func (unreachableRevoker) Revoke(context.Context, string, time.Duration) error {
	return errors.New("dial tcp: connection refused")
}

func (unreachableRevoker) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("dial tcp: connection refused")
}

func TestAuthenticate_RevocationStoreOnlyUsedWhenEnabled(t *testing.T) {
	users := repository.NewMemoryUserRepository()

	off := newTestAuthService(t, users, unreachableRevoker{}, false)
	_, err := off.Signup(context.Background(), validSignup)
	require.NoError(t, err)

	resp, err := off.Login(context.Background(), ports.LoginRequest{Email: "ann@example.com", Password: validSignup.Password})
	require.NoError(t, err)

	_, err = off.Authenticate(context.Background(), resp.Token)
	require.NoError(t, err)
	require.NoError(t, off.Logout(context.Background(), resp.Token))

	on := newTestAuthService(t, users, unreachableRevoker{}, true)
	_, err = on.Authenticate(context.Background(), resp.Token)
	require.Error(t, err)
	assert.False(t, errors.Is(err, entities.ErrInvalidToken))
	assert.False(t, errors.Is(err, entities.ErrTokenRevoked))
}
