package service

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lab-portal-api/internal/models"
	appErrors "github.com/noah-isme/lab-portal-api/pkg/errors"
	"github.com/noah-isme/lab-portal-api/pkg/validation"
)

const (
	testSecret   = "test-secret"
	testAdminKey = "super-admin-key"
)

type stubIdentityVerifier struct {
	identity *models.FederatedIdentity
	err      error
}

func (s stubIdentityVerifier) Verify(context.Context, string) (*models.FederatedIdentity, error) {
	return s.identity, s.err
}

func newTestAuthService(users *fakeUserStore, admins *fakeAdminStore, verifier IdentityVerifier) *AuthService {
	return NewAuthService(users, admins, verifier, validation.New(), nil, AuthConfig{
		TokenSecret: testSecret,
		TokenExpiry: 7 * 24 * time.Hour,
		Issuer:      "lab-portal",
		AdminSecret: testAdminKey,
	})
}

func TestSignUpUserHidesHashAndRejectsDuplicates(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users, newFakeAdminStore(), nil)

	info, err := svc.SignUpUser(context.Background(), models.SignUpRequest{Email: "Student@Example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "student@example.com", info.Email)
	assert.NotEmpty(t, info.ID)

	stored := users.byID[info.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret1", stored.PasswordHash)
	assert.True(t, stored.IsActive)

	_, err = svc.SignUpUser(context.Background(), models.SignUpRequest{Email: "student@example.com", Password: "other12"})
	assert.ErrorIs(t, err, appErrors.ErrDuplicateAccount)
	assert.Len(t, users.byID, 1)
}

func TestSignUpUserValidation(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore(), newFakeAdminStore(), nil)

	_, err := svc.SignUpUser(context.Background(), models.SignUpRequest{Email: "not-an-email", Password: ""})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)

	var fe validation.FieldError
	require.True(t, errors.As(err, &fe))
	assert.Contains(t, fe.FieldMessages(), "email")
	assert.Contains(t, fe.FieldMessages(), "password")
}

func TestSignUpAcceptsShortPasswords(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore(), newFakeAdminStore(), nil)

	_, err := svc.SignUpUser(context.Background(), models.SignUpRequest{Email: "short@example.com", Password: "abc"})
	require.NoError(t, err)

	_, err = svc.SignUpUser(context.Background(), models.SignUpRequest{Email: "long@example.com", Password: strings.Repeat("p", 73)})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestUserAndAdminNamespacesAreSeparate(t *testing.T) {
	users := newFakeUserStore()
	admins := newFakeAdminStore()
	svc := newTestAuthService(users, admins, nil)
	ctx := context.Background()

	_, err := svc.SignUpUser(ctx, models.SignUpRequest{Email: "same@example.com", Password: "secret1"})
	require.NoError(t, err)
	_, err = svc.SignUpAdmin(ctx, models.SignUpRequest{Email: "same@example.com", Password: "secret2"})
	require.NoError(t, err)

	_, err = svc.SignInAdmin(ctx, models.AdminSignInRequest{Email: "same@example.com", Password: "secret1", AdminKey: testAdminKey})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestSignInUserRoundTrip(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users, newFakeAdminStore(), nil)
	ctx := context.Background()

	info, err := svc.SignUpUser(ctx, models.SignUpRequest{Email: "u@example.com", Password: "secret1"})
	require.NoError(t, err)

	resp, err := svc.SignInUser(ctx, models.SignInRequest{Email: "U@example.com", Password: "secret1"})
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	assert.Nil(t, resp.Admin)
	assert.Equal(t, info.ID, resp.User.ID)

	principal, err := svc.VerifyToken(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, models.PrincipalUser, principal.Kind())
	up, ok := principal.(models.UserPrincipal)
	require.True(t, ok)
	assert.Equal(t, info.ID, up.User.ID)
}

func TestSignInUserFailuresAreIndistinguishable(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users, newFakeAdminStore(), nil)
	ctx := context.Background()

	_, err := svc.SignUpUser(ctx, models.SignUpRequest{Email: "u@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, wrongPassword := svc.SignInUser(ctx, models.SignInRequest{Email: "u@example.com", Password: "nope123"})
	_, unknownEmail := svc.SignInUser(ctx, models.SignInRequest{Email: "ghost@example.com", Password: "secret1"})

	assert.ErrorIs(t, wrongPassword, appErrors.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, appErrors.ErrInvalidCredentials)
	assert.Equal(t, appErrors.FromError(wrongPassword).Message, appErrors.FromError(unknownEmail).Message)
}

func TestSignInAdminChecksKeyBeforeLookup(t *testing.T) {
	admins := newFakeAdminStore()
	svc := newTestAuthService(newFakeUserStore(), admins, nil)
	ctx := context.Background()

	_, err := svc.SignUpAdmin(ctx, models.SignUpRequest{Email: "root@example.com", Password: "secret1"})
	require.NoError(t, err)
	callsBefore := admins.calls

	_, err = svc.SignInAdmin(ctx, models.AdminSignInRequest{Email: "root@example.com", Password: "secret1", AdminKey: "wrong"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidAdminSecret)
	assert.Equal(t, "Invalid admin key.", appErrors.FromError(err).Message)
	assert.Equal(t, callsBefore, admins.calls)

	resp, err := svc.SignInAdmin(ctx, models.AdminSignInRequest{Email: "root@example.com", Password: "secret1", AdminKey: testAdminKey})
	require.NoError(t, err)
	require.NotNil(t, resp.Admin)
	assert.Equal(t, models.DefaultAdminRole, resp.Admin.Role)

	principal, err := svc.VerifyToken(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, models.PrincipalAdmin, principal.Kind())
}

func TestSignInAdminRequiresConfiguredSecret(t *testing.T) {
	svc := NewAuthService(newFakeUserStore(), newFakeAdminStore(), nil, nil, nil, AuthConfig{TokenSecret: testSecret})
	_, err := svc.SignInAdmin(context.Background(), models.AdminSignInRequest{Email: "a@example.com", Password: "x", AdminKey: "guess"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidAdminSecret)
}

func TestSignInAdminMissingFieldsAreValidationErrors(t *testing.T) {
	admins := newFakeAdminStore()
	svc := newTestAuthService(newFakeUserStore(), admins, nil)

	_, err := svc.SignInAdmin(context.Background(), models.AdminSignInRequest{Email: "root@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	var fe validation.FieldError
	require.True(t, errors.As(err, &fe))
	assert.Contains(t, fe.FieldMessages(), "adminKey")

	_, err = svc.SignInAdmin(context.Background(), models.AdminSignInRequest{AdminKey: "wrong"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Zero(t, admins.calls)
}

func TestVerifyTokenExpiry(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users, newFakeAdminStore(), nil)
	ctx := context.Background()

	issued := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	_, err := svc.SignUpUser(ctx, models.SignUpRequest{Email: "u@example.com", Password: "secret1"})
	require.NoError(t, err)
	resp, err := svc.SignInUser(ctx, models.SignInRequest{Email: "u@example.com", Password: "secret1"})
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(7*24*time.Hour - time.Second) }
	_, err = svc.VerifyToken(ctx, resp.Token)
	assert.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(7*24*time.Hour + time.Second) }
	_, err = svc.VerifyToken(ctx, resp.Token)
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)
}

func TestVerifyTokenRejectsForgeries(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users, newFakeAdminStore(), nil)
	ctx := context.Background()

	info, err := svc.SignUpUser(ctx, models.SignUpRequest{Email: "u@example.com", Password: "secret1"})
	require.NoError(t, err)

	claims := models.SessionClaims{
		ID:    info.ID,
		Email: info.Email,
		Type:  models.PrincipalUser,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "lab-portal",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	wrongKey, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)
	_, err = svc.VerifyToken(ctx, wrongKey)
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.VerifyToken(ctx, unsigned)
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = svc.VerifyToken(ctx, hs512)
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)

	_, err = svc.VerifyToken(ctx, "garbage")
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)

	claims.Type = "root"
	unknownType, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = svc.VerifyToken(ctx, unknownType)
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)
}

func TestVerifyTokenForDeletedPrincipal(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users, newFakeAdminStore(), nil)
	ctx := context.Background()

	info, err := svc.SignUpUser(ctx, models.SignUpRequest{Email: "u@example.com", Password: "secret1"})
	require.NoError(t, err)
	resp, err := svc.SignInUser(ctx, models.SignInRequest{Email: "u@example.com", Password: "secret1"})
	require.NoError(t, err)

	users.remove(info.ID)
	_, err = svc.VerifyToken(ctx, resp.Token)
	assert.ErrorIs(t, err, appErrors.ErrPrincipalNotFound)
}

func TestSignInFederatedProvisionsOnce(t *testing.T) {
	users := newFakeUserStore()
	verifier := stubIdentityVerifier{identity: &models.FederatedIdentity{Subject: "g-1", Email: "Student@Gmail.com", EmailVerified: true}}
	svc := newTestAuthService(users, newFakeAdminStore(), verifier)
	ctx := context.Background()

	first, err := svc.SignInFederated(ctx, models.FederatedSignInRequest{Token: "id-token"})
	require.NoError(t, err)
	second, err := svc.SignInFederated(ctx, models.FederatedSignInRequest{Token: "id-token"})
	require.NoError(t, err)

	assert.Len(t, users.byID, 1)
	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Equal(t, "student@gmail.com", first.User.Email)

	principal, err := svc.VerifyToken(ctx, first.Token)
	require.NoError(t, err)
	assert.Equal(t, models.PrincipalUser, principal.Kind())

	_, err = svc.SignInUser(ctx, models.SignInRequest{Email: "student@gmail.com", Password: ""})
	require.Error(t, err)
}

func TestSignInFederatedFailures(t *testing.T) {
	ctx := context.Background()

	rejected := newTestAuthService(newFakeUserStore(), newFakeAdminStore(), stubIdentityVerifier{err: errors.New("audience mismatch")})
	_, err := rejected.SignInFederated(ctx, models.FederatedSignInRequest{Token: "bad"})
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)

	noEmail := newTestAuthService(newFakeUserStore(), newFakeAdminStore(), stubIdentityVerifier{identity: &models.FederatedIdentity{Subject: "g-2"}})
	_, err = noEmail.SignInFederated(ctx, models.FederatedSignInRequest{Token: "tok"})
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)

	down := appErrors.Wrap(&url.Error{Op: "Get", URL: "https://www.googleapis.com", Err: errors.New("dial")}, appErrors.ErrProviderUnavailable.Code, appErrors.ErrProviderUnavailable.Status, appErrors.ErrProviderUnavailable.Message)
	unavailable := newTestAuthService(newFakeUserStore(), newFakeAdminStore(), stubIdentityVerifier{err: down})
	_, err = unavailable.SignInFederated(ctx, models.FederatedSignInRequest{Token: "tok"})
	assert.ErrorIs(t, err, appErrors.ErrProviderUnavailable)

	_, err = rejected.SignInFederated(ctx, models.FederatedSignInRequest{})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestSignInFederatedRequiresVerifiedEmail(t *testing.T) {
	users := newFakeUserStore()
	ctx := context.Background()
	password := newTestAuthService(users, newFakeAdminStore(), nil)
	_, err := password.SignUpUser(ctx, models.SignUpRequest{Email: "owner@example.com", Password: "secret1"})
	require.NoError(t, err)

	verifier := stubIdentityVerifier{identity: &models.FederatedIdentity{Subject: "g-3", Email: "owner@example.com"}}
	svc := newTestAuthService(users, newFakeAdminStore(), verifier)
	callsBefore := users.calls

	resp, err := svc.SignInFederated(ctx, models.FederatedSignInRequest{Token: "id-token"})
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
	assert.Nil(t, resp)
	assert.Equal(t, callsBefore, users.calls)
	assert.Len(t, users.byID, 1)
}
