package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/lab-portal-api/internal/models"
	"github.com/noah-isme/lab-portal-api/internal/repository"
	appErrors "github.com/noah-isme/lab-portal-api/pkg/errors"
	applog "github.com/noah-isme/lab-portal-api/pkg/logger"
	"github.com/noah-isme/lab-portal-api/pkg/validation"
)

type authUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

type authAdminRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
	FindByID(ctx context.Context, id string) (*models.Admin, error)
	Create(ctx context.Context, admin *models.Admin) error
}

// IdentityVerifier validates ID tokens issued by an external provider.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*models.FederatedIdentity, error)
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	TokenSecret string
	TokenExpiry time.Duration
	Issuer      string
	AdminSecret string
}

// AuthService provides sign-up, sign-in and session verification for users
// and admins.
type AuthService struct {
	users     authUserRepository
	admins    authAdminRepository
	federated IdentityVerifier
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
	now       func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(users authUserRepository, admins authAdminRepository, federated IdentityVerifier, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validation.New()
	}
	if config.TokenExpiry <= 0 {
		config.TokenExpiry = 7 * 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		admins:    admins,
		federated: federated,
		validator: validate,
		logger:    logger,
		config:    config,
		now:       time.Now,
	}
}

// SignUpUser registers a user account. No token is issued.
func (s *AuthService) SignUpUser(ctx context.Context, req models.SignUpRequest) (*models.UserInfo, error) {
	req.Email = normalizeEmail(req.Email)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid sign up payload")
	}

	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, appErrors.Clone(appErrors.ErrDuplicateAccount, "user already exists")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check user")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	user := &models.User{Email: req.Email, PasswordHash: string(hash), IsActive: true}
	if err := s.users.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrDuplicateAccount, "user already exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create user")
	}

	applog.FromContext(ctx, s.logger).Info("user registered", zap.String("user_id", user.ID))
	return user.Info(), nil
}

// SignUpAdmin registers an admin account. Registration does not require the
// admin key; signing in does.
func (s *AuthService) SignUpAdmin(ctx context.Context, req models.SignUpRequest) (*models.AdminInfo, error) {
	req.Email = normalizeEmail(req.Email)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid sign up payload")
	}

	if _, err := s.admins.FindByEmail(ctx, req.Email); err == nil {
		return nil, appErrors.Clone(appErrors.ErrDuplicateAccount, "admin already exists")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check admin")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	admin := &models.Admin{Email: req.Email, PasswordHash: string(hash), Role: models.DefaultAdminRole}
	if err := s.admins.Create(ctx, admin); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrDuplicateAccount, "admin already exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create admin")
	}

	applog.FromContext(ctx, s.logger).Info("admin registered", zap.String("admin_id", admin.ID))
	return admin.Info(), nil
}

// SignInUser authenticates a user and issues a session token.
func (s *AuthService) SignInUser(ctx context.Context, req models.SignInRequest) (*models.SignInResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid sign in payload")
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid email or password")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch user")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid email or password")
	}

	token, err := s.issueToken(user.ID, user.Email, models.PrincipalUser)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create token")
	}
	return &models.SignInResponse{Message: "Signed in successfully", Token: token, User: user.Info()}, nil
}

// SignInAdmin validates the payload, checks the admin key before touching
// the store, then authenticates like SignInUser.
func (s *AuthService) SignInAdmin(ctx context.Context, req models.AdminSignInRequest) (*models.SignInResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid sign in payload")
	}
	if !s.adminKeyMatches(req.AdminKey) {
		return nil, appErrors.Clone(appErrors.ErrInvalidAdminSecret, "Invalid admin key.")
	}

	admin, err := s.admins.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid email or password")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch admin")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid email or password")
	}

	token, err := s.issueToken(admin.ID, admin.Email, models.PrincipalAdmin)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create token")
	}
	return &models.SignInResponse{Message: "Admin signed in successfully", Token: token, Admin: admin.Info()}, nil
}

// SignInFederated exchanges an external ID token for a session token,
// provisioning a user on first sight of the email.
func (s *AuthService) SignInFederated(ctx context.Context, req models.FederatedSignInRequest) (*models.SignInResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid token payload")
	}
	if s.federated == nil {
		return nil, appErrors.Clone(appErrors.ErrProviderUnavailable, "federated sign-in is not configured")
	}

	identity, err := s.federated.Verify(ctx, req.Token)
	if err != nil {
		if errors.Is(err, appErrors.ErrProviderUnavailable) {
			return nil, err
		}
		applog.FromContext(ctx, s.logger).Debug("federated token rejected", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid federated token")
	}
	email := normalizeEmail(identity.Email)
	if email == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "federated token carries no email")
	}
	if !identity.EmailVerified {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "federated email is not verified")
	}

	user, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
	case errors.Is(err, sql.ErrNoRows):
		user, err = s.provisionFederatedUser(ctx, email)
		if err != nil {
			return nil, err
		}
	default:
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch user")
	}

	token, err := s.issueToken(user.ID, user.Email, models.PrincipalUser)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create token")
	}
	applog.FromContext(ctx, s.logger).Info("federated sign-in", zap.String("user_id", user.ID), zap.String("subject", identity.Subject))
	return &models.SignInResponse{Message: "Signed in successfully", Token: token, User: user.Info()}, nil
}

func (s *AuthService) provisionFederatedUser(ctx context.Context, email string) (*models.User, error) {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to generate password")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(base64.RawStdEncoding.EncodeToString(secret)), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	user := &models.User{Email: email, PasswordHash: string(hash), IsActive: true}
	if err := s.users.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			// a concurrent sign-in created the account first
			existing, findErr := s.users.FindByEmail(ctx, email)
			if findErr == nil {
				return existing, nil
			}
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create user")
	}
	applog.FromContext(ctx, s.logger).Info("federated user provisioned", zap.String("user_id", user.ID))
	return user, nil
}

// VerifyToken validates a session token and resolves the principal it names.
func (s *AuthService) VerifyToken(ctx context.Context, tokenString string) (models.Principal, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	}
	if s.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.config.Issuer))
	}

	claims := &models.SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.config.TokenSecret), nil
	}, opts...)
	if err != nil || !token.Valid {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidToken.Code, appErrors.ErrInvalidToken.Status, appErrors.ErrInvalidToken.Message)
	}

	if !claims.Type.Valid() {
		return nil, appErrors.Clone(appErrors.ErrInvalidToken, "")
	}
	if claims.Type == models.PrincipalAdmin {
		admin, err := s.admins.FindByID(ctx, claims.ID)
		if err != nil {
			return nil, principalLookupError(err)
		}
		return models.AdminPrincipal{Admin: admin}, nil
	}
	user, err := s.users.FindByID(ctx, claims.ID)
	if err != nil {
		return nil, principalLookupError(err)
	}
	return models.UserPrincipal{User: user}, nil
}

// Logout acknowledges a sign-out. Sessions are stateless so nothing is revoked.
func (s *AuthService) Logout(ctx context.Context, principal models.Principal) {
	if principal != nil {
		applog.FromContext(ctx, s.logger).Debug("principal signed out", zap.String("id", principal.PrincipalID()), zap.String("type", string(principal.Kind())))
	}
}

func (s *AuthService) issueToken(id, email string, kind models.PrincipalKind) (string, error) {
	issuedAt := s.now().UTC()
	claims := &models.SessionClaims{
		ID:    id,
		Email: email,
		Type:  kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   id,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.config.TokenExpiry)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.TokenSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *AuthService) adminKeyMatches(key string) bool {
	if s.config.AdminSecret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(key), []byte(s.config.AdminSecret)) == 1
}

func principalLookupError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrPrincipalNotFound, "")
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve principal")
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validationError(err error, message string) error {
	return appErrors.Wrap(validation.Translate(err), appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
}
