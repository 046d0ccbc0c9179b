package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/BerniceZTT/sales_tracker/models"
	"github.com/BerniceZTT/sales_tracker/repository"
	"github.com/BerniceZTT/sales_tracker/repository/mocks"
	"github.com/BerniceZTT/sales_tracker/utils"
)

const strongPassword = "Sup3r!Secret"

type authFixture struct {
	svc      *AuthService
	profiles *mocks.ProfileRepository
	sessions *mocks.SessionRepository
	tokens   *utils.TokenManager
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	profiles := &mocks.ProfileRepository{}
	sessions := &mocks.SessionRepository{}
	tokens := utils.NewTokenManager("test-secret", time.Hour)
	svc := NewAuthService(profiles, sessions, tokens, bcrypt.MinCost)
	t.Cleanup(func() {
		profiles.AssertExpectations(t)
		sessions.AssertExpectations(t)
	})
	return &authFixture{svc: svc, profiles: profiles, sessions: sessions, tokens: tokens}
}

func storedProfile(t *testing.T, email, password string, role models.UserRole) *models.Profile {
	t.Helper()
	hash, err := utils.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	return &models.Profile{ID: primitive.NewObjectID(), Email: email, PasswordHash: hash, Role: role}
}

func TestSignUpRejectsWeakPassword(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.SignUp(context.Background(), models.RegisterRequest{
		Email: "a@example.com", Password: "abc", ConfirmPassword: "abc",
	}, "")

	apiErr := requireAPIError(t, err, http.StatusBadRequest)
	assert.Equal(t, "WEAK_PASSWORD", apiErr.ErrorCode)
	assert.Equal(t, "weak password: minimum length, missing uppercase, missing digit, missing special character", apiErr.Message)
	assert.Equal(t, map[string]interface{}{
		"errors": []string{PasswordErrMinLength, PasswordErrUpper, PasswordErrDigit, PasswordErrSpecial},
	}, apiErr.Details)
}

func TestSignUpRejectsConfirmationMismatch(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.SignUp(context.Background(), models.RegisterRequest{
		Email: "a@example.com", Password: strongPassword, ConfirmPassword: strongPassword + "x",
	}, "")

	apiErr := requireAPIError(t, err, http.StatusBadRequest)
	assert.Equal(t, ErrMsgPasswordMismatch, apiErr.Message)
}

func TestSignUpRejectsOverlongPassword(t *testing.T) {
	f := newAuthFixture(t)
	long := strongPassword + strings.Repeat("a", utils.MaxPasswordBytes)

	_, err := f.svc.SignUp(context.Background(), models.RegisterRequest{
		Email: "a@example.com", Password: long, ConfirmPassword: long,
	}, "")

	apiErr := requireAPIError(t, err, http.StatusBadRequest)
	assert.Equal(t, ErrMsgPasswordTooLong, apiErr.Message)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	f.profiles.On("Create", mock.Anything, mock.AnythingOfType("*models.Profile")).
		Return(repository.ErrDuplicate).Once()

	_, err := f.svc.SignUp(context.Background(), models.RegisterRequest{
		Email: "a@example.com", Password: strongPassword, ConfirmPassword: strongPassword,
	}, "")

	requireAPIError(t, err, http.StatusConflict)
}

func TestSignUpCreatesSalesProfileAndSession(t *testing.T) {
	f := newAuthFixture(t)
	f.profiles.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Profile) bool {
		return p.Email == "new@example.com" && p.Role == models.UserRoleSales && p.FullName == "Budi" &&
			utils.VerifyPassword(strongPassword, p.PasswordHash)
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Profile).ID = primitive.NewObjectID()
	}).Return(nil).Once()
	f.sessions.On("Create", mock.Anything, mock.AnythingOfType("*models.Session")).Return(nil).Once()

	resp, err := f.svc.SignUp(context.Background(), models.RegisterRequest{
		Email: "  New@Example.com ", Password: strongPassword, ConfirmPassword: strongPassword, FullName: " Budi ",
	}, "go-test")
	require.NoError(t, err)
	require.NotNil(t, resp.User)

	claims, err := f.tokens.ParseToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID.Hex(), claims.UserID)

	session := f.sessions.Calls[0].Arguments.Get(1).(*models.Session)
	assert.Equal(t, claims.ID, session.SessionID)
	assert.Equal(t, resp.User.ID.Hex(), session.UserID)
	assert.Equal(t, "go-test", session.UserAgent)
}

func TestSignInWithPassword(t *testing.T) {
	f := newAuthFixture(t)
	profile := storedProfile(t, "sales@example.com", strongPassword, models.UserRoleSales)
	f.profiles.On("GetByEmail", mock.Anything, "sales@example.com").Return(profile, nil)
	f.sessions.On("Create", mock.Anything, mock.AnythingOfType("*models.Session")).Return(nil).Once()

	resp, err := f.svc.SignInWithPassword(context.Background(), "sales@example.com", strongPassword, "")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, profile, resp.User)

	_, err = f.svc.SignInWithPassword(context.Background(), "sales@example.com", "wrong", "")
	apiErr := requireAPIError(t, err, http.StatusUnauthorized)
	assert.Equal(t, ErrMsgInvalidCredentials, apiErr.Message)
}

func TestSignInUnknownEmailLooksLikeWrongPassword(t *testing.T) {
	f := newAuthFixture(t)
	f.profiles.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, repository.ErrNotFound)

	_, err := f.svc.SignInWithPassword(context.Background(), "nobody@example.com", strongPassword, "")
	apiErr := requireAPIError(t, err, http.StatusUnauthorized)
	assert.Equal(t, ErrMsgInvalidCredentials, apiErr.Message)
}

func TestGetCurrentUser(t *testing.T) {
	f := newAuthFixture(t)
	profile := storedProfile(t, "sales@example.com", strongPassword, models.UserRoleSales)
	token, expiresAt, err := f.tokens.GenerateToken(profile, "sess-1")
	require.NoError(t, err)

	f.sessions.On("Get", mock.Anything, "sess-1").Return(&models.Session{
		SessionID: "sess-1", UserID: profile.ID.Hex(), ExpiresAt: expiresAt,
	}, nil)
	f.profiles.On("GetByID", mock.Anything, profile.ID).Return(profile, nil)

	user, err := f.svc.GetCurrentUser(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, profile.ID.Hex(), user.ID)
	assert.Equal(t, "sales@example.com", user.Name)
	assert.Equal(t, "sess-1", user.SessionID)
	assert.False(t, user.IsAdmin())
}

func TestGetCurrentUserRejectsRevokedSession(t *testing.T) {
	f := newAuthFixture(t)
	profile := storedProfile(t, "sales@example.com", strongPassword, models.UserRoleSales)
	token, expiresAt, err := f.tokens.GenerateToken(profile, "sess-1")
	require.NoError(t, err)

	revoked := time.Now()
	f.sessions.On("Get", mock.Anything, "sess-1").Return(&models.Session{
		SessionID: "sess-1", UserID: profile.ID.Hex(), ExpiresAt: expiresAt, RevokedAt: &revoked,
	}, nil)

	_, err = f.svc.GetCurrentUser(context.Background(), token)
	requireAPIError(t, err, http.StatusUnauthorized)
}

func TestGetCurrentUserRejectsGarbageToken(t *testing.T) {
	f := newAuthFixture(t)
	_, err := f.svc.GetCurrentUser(context.Background(), "not-a-jwt")
	requireAPIError(t, err, http.StatusUnauthorized)
}

func TestSignOutRevokesSession(t *testing.T) {
	f := newAuthFixture(t)
	f.sessions.On("Revoke", mock.Anything, "sess-1", mock.AnythingOfType("time.Time")).Return(nil).Once()
	require.NoError(t, f.svc.SignOut(context.Background(), "sess-1"))

	f.sessions.On("Revoke", mock.Anything, "sess-2", mock.Anything).Return(errors.New("down")).Once()
	assert.Error(t, f.svc.SignOut(context.Background(), "sess-2"))
}

func TestUpdatePasswordRevokesOtherSessions(t *testing.T) {
	f := newAuthFixture(t)
	user := salesUser()
	id, _ := primitive.ObjectIDFromHex(user.ID)

	f.profiles.On("UpdatePassword", mock.Anything, id, mock.MatchedBy(func(hash string) bool {
		return utils.VerifyPassword("N3w!Password", hash)
	})).Return(nil).Once()
	f.sessions.On("RevokeOthers", mock.Anything, user.ID, user.SessionID, mock.Anything).Return(nil).Once()

	err := f.svc.UpdatePassword(context.Background(), user, models.ChangePasswordRequest{
		NewPassword: "N3w!Password", ConfirmPassword: "N3w!Password",
	})
	require.NoError(t, err)
}

func TestUpdatePasswordValidatesBeforeWriting(t *testing.T) {
	f := newAuthFixture(t)
	err := f.svc.UpdatePassword(context.Background(), salesUser(), models.ChangePasswordRequest{
		NewPassword: "weak", ConfirmPassword: "weak",
	})
	requireAPIError(t, err, http.StatusBadRequest)
}

func TestUpdateDisplayName(t *testing.T) {
	f := newAuthFixture(t)
	user := salesUser()
	id, _ := primitive.ObjectIDFromHex(user.ID)

	f.profiles.On("UpdateFullName", mock.Anything, id, "").Return(nil).Once()
	f.profiles.On("GetByID", mock.Anything, id).Return(&models.Profile{ID: id, Email: user.Email}, nil).Once()

	profile, err := f.svc.UpdateDisplayName(context.Background(), user, "   ")
	require.NoError(t, err)
	assert.Equal(t, user.Email, DisplayName(profile))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "", DisplayName(nil))
	assert.Equal(t, "a@example.com", DisplayName(&models.Profile{Email: "a@example.com", FullName: "  "}))
	assert.Equal(t, "Dewi", DisplayName(&models.Profile{Email: "a@example.com", FullName: " Dewi "}))
}

func TestCheckPassword(t *testing.T) {
	f := newAuthFixture(t)
	assert.True(t, f.svc.CheckPassword(strongPassword).Valid)
	assert.Equal(t, []string{PasswordErrSpecial}, f.svc.CheckPassword("Abcdefg12").Errors)
}

func TestEnsureAdmin(t *testing.T) {
	t.Run("skips when an admin exists", func(t *testing.T) {
		f := newAuthFixture(t)
		f.profiles.On("CountByRole", mock.Anything, models.UserRoleAdmin).Return(int64(1), nil).Once()
		require.NoError(t, f.svc.EnsureAdmin(context.Background(), "admin@example.com", strongPassword))
	})

	t.Run("creates the configured admin", func(t *testing.T) {
		f := newAuthFixture(t)
		f.profiles.On("CountByRole", mock.Anything, models.UserRoleAdmin).Return(int64(0), nil).Once()
		f.profiles.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Profile) bool {
			return p.Role == models.UserRoleAdmin && p.Email == "admin@example.com"
		})).Return(nil).Once()
		require.NoError(t, f.svc.EnsureAdmin(context.Background(), "Admin@Example.com", strongPassword))
	})

	t.Run("rejects a weak seed password", func(t *testing.T) {
		f := newAuthFixture(t)
		f.profiles.On("CountByRole", mock.Anything, models.UserRoleAdmin).Return(int64(0), nil).Once()
		assert.Error(t, f.svc.EnsureAdmin(context.Background(), "admin@example.com", "admin123"))
	})

	t.Run("no seed configured", func(t *testing.T) {
		f := newAuthFixture(t)
		require.NoError(t, f.svc.EnsureAdmin(context.Background(), "", ""))
	})
}
