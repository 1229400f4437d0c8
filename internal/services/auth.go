package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/youthcare-backend/internal/data/repos"
	types "github.com/yungbote/youthcare-backend/internal/domain"
	"github.com/yungbote/youthcare-backend/internal/domain/user"
	"github.com/yungbote/youthcare-backend/internal/normalization"
	"github.com/yungbote/youthcare-backend/internal/platform/apierr"
	"github.com/yungbote/youthcare-backend/internal/platform/ctxutil"
	"github.com/yungbote/youthcare-backend/internal/platform/dbctx"
	"github.com/yungbote/youthcare-backend/internal/platform/logger"
	"github.com/yungbote/youthcare-backend/internal/utils"
)

const (
	resetTokenBytes = 20
	resetTokenTTL   = time.Hour
)

var (
	ErrInvalidCredentials = apierr.New(http.StatusUnauthorized, "invalid_credentials", errors.New("invalid credentials"))
	ErrAccountInactive    = apierr.New(http.StatusForbidden, "account_inactive", errors.New("account is deactivated"))
	ErrInvalidToken       = apierr.New(http.StatusUnauthorized, "invalid_token", errors.New("invalid or expired token"))
)

type JWTClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type AuthConfig struct {
	JWTSecretKey string
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
	FrontendURL  string
	// Production hides the reset URL from forgot-password responses and
	// fails the request when the email cannot be sent.
	Production bool
	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
}

type RegisterInput struct {
	FirstName   string
	LastName    string
	Email       string
	Password    string
	Role        string
	DateOfBirth *time.Time
	PhoneNumber string
	Location    string
}

type Session struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresIn    int         `json:"expires_in"`
	User         *types.User `json:"user"`
}

type ForgotPasswordResult struct {
	ResetURL string `json:"reset_url,omitempty"`
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*Session, error)
	Provision(ctx context.Context, in RegisterInput) (*types.User, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	// Refresh rotates the token pair. An empty refreshToken falls back to the
	// one attached to the authenticated request.
	Refresh(ctx context.Context, refreshToken string) (*Session, error)
	Logout(ctx context.Context) error
	ForgotPassword(ctx context.Context, email string) (*ForgotPasswordResult, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	youthRepo     repos.YouthProfileRepo
	coachRepo     repos.CoachProfileRepo
	clinicianRepo repos.ClinicianProfileRepo
	parentRepo    repos.ParentProfileRepo
	mailer        Mailer
	cfg           AuthConfig
	clock         Clock
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	youthRepo repos.YouthProfileRepo,
	coachRepo repos.CoachProfileRepo,
	clinicianRepo repos.ClinicianProfileRepo,
	parentRepo repos.ParentProfileRepo,
	mailer Mailer,
	cfg AuthConfig,
	clock Clock,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		youthRepo:     youthRepo,
		coachRepo:     coachRepo,
		clinicianRepo: clinicianRepo,
		parentRepo:    parentRepo,
		mailer:        mailer,
		cfg:           cfg,
		clock:         clock,
	}
}

func (as *authService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	var session *Session
	u, err := as.createAccount(ctx, in, false, func(inner dbctx.Context, u *types.User) error {
		var err error
		session, err = as.issueSession(inner, u)
		return err
	})
	if err != nil {
		return nil, err
	}
	as.log.Info("User registered", "user_id", u.ID, "role", u.Role)
	return session, nil
}

// Provision creates an account of any role, admin included, without
// issuing a session. It backs operator tooling and is not routed.
func (as *authService) Provision(ctx context.Context, in RegisterInput) (*types.User, error) {
	u, err := as.createAccount(ctx, in, true, nil)
	if err != nil {
		return nil, err
	}
	as.log.Info("User provisioned", "user_id", u.ID, "role", u.Role)
	return u, nil
}

func (as *authService) createAccount(ctx context.Context, in RegisterInput, allowAdmin bool, then func(dbctx.Context, *types.User) error) (*types.User, error) {
	dbc := dbctx.Context{Ctx: ctx}
	u := &types.User{
		ID:          uuid.New(),
		FirstName:   normalization.Name(in.FirstName),
		LastName:    normalization.Name(in.LastName),
		Email:       normalization.Email(in.Email),
		Role:        normalization.ParseInputString(in.Role),
		DateOfBirth: in.DateOfBirth,
		PhoneNumber: strings.TrimSpace(in.PhoneNumber),
		Location:    strings.TrimSpace(in.Location),
		IsActive:    true,
	}
	if u.Role == "" {
		u.Role = user.RoleYouth
	}
	if err := validateRegistration(u, in.Password, allowAdmin); err != nil {
		return nil, err
	}
	exists, err := as.userRepo.EmailExists(dbc, u.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, conflict("email_taken", "a user with that email already exists")
	}
	hashed, err := utils.HashPassword(in.Password, as.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}
	u.Password = hashed

	err = inTx(dbc, as.db, func(inner dbctx.Context) error {
		if _, err := as.userRepo.Create(inner, []*types.User{u}); err != nil {
			return uniqueAs(err, "email_taken", "a user with that email already exists")
		}
		if err := as.createRoleProfile(inner, u); err != nil {
			return fmt.Errorf("create %s profile: %w", u.Role, err)
		}
		if then != nil {
			return then(inner, u)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

func validateRegistration(u *types.User, password string, allowAdmin bool) error {
	if u.FirstName == "" || u.LastName == "" {
		return badRequest("name_required", "first and last name are required")
	}
	if u.Email == "" || !strings.Contains(u.Email, "@") {
		return badRequest("invalid_email", "a valid email is required")
	}
	if len(password) < utils.MinPasswordLength {
		return badRequest("weak_password", "password must be at least %d characters", utils.MinPasswordLength)
	}
	if u.Role == user.RoleAdmin && !allowAdmin {
		return forbidden("admin accounts cannot be self-registered")
	}
	if !user.ValidRole(u.Role) {
		return badRequest("invalid_role", "invalid role %q", u.Role)
	}
	if u.Role == user.RoleYouth && u.DateOfBirth == nil {
		return badRequest("date_of_birth_required", "date of birth is required for youth accounts")
	}
	return nil
}

func (as *authService) createRoleProfile(dbc dbctx.Context, u *types.User) error {
	switch u.Role {
	case user.RoleYouth:
		return as.youthRepo.Create(dbc, &types.YouthProfile{UserID: u.ID, Level: 1})
	case user.RoleParent:
		return as.parentRepo.Create(dbc, &types.ParentProfile{
			UserID:         u.ID,
			Relationship:   "parent",
			EmailAlerts:    true,
			WeeklyReport:   true,
			CriticalAlerts: true,
			IsActive:       true,
		})
	case user.RoleCoach:
		return as.coachRepo.Create(dbc, &types.CoachProfile{UserID: u.ID, IsActive: true})
	case user.RoleClinician:
		return as.clinicianRepo.Create(dbc, &types.ClinicianProfile{UserID: u.ID, IsActive: true})
	}
	return nil
}

func (as *authService) Login(ctx context.Context, email, password string) (*Session, error) {
	dbc := dbctx.Context{Ctx: ctx}
	email = normalization.Email(email)
	if email == "" || password == "" {
		return nil, badRequest("credentials_required", "email and password are required")
	}
	u, err := as.userRepo.GetByEmail(dbc, email)
	if err != nil {
		return nil, fmt.Errorf("load user by email: %w", err)
	}
	if u == nil || !utils.CheckPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, ErrAccountInactive
	}

	now := as.clock.Now()
	var session *Session
	err = inTx(dbc, as.db, func(inner dbctx.Context) error {
		if err := as.userRepo.Update(inner, u.ID, map[string]interface{}{"last_login": now}); err != nil {
			return fmt.Errorf("stamp last login: %w", err)
		}
		u.LastLogin = &now
		var err error
		session, err = as.issueSession(inner, u)
		return err
	})
	if err != nil {
		return nil, err
	}
	if n, err := as.userTokenRepo.DeleteExpired(dbc, now); err != nil {
		as.log.Warn("Expired token cleanup failed", "error", err)
	} else if n > 0 {
		as.log.Debug("Expired tokens removed", "count", n)
	}
	return session, nil
}

func (as *authService) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	if refreshToken == "" {
		if rd := ctxutil.GetRequestData(ctx); rd != nil {
			refreshToken = rd.RefreshToken
		}
	}
	if refreshToken == "" {
		return nil, ErrInvalidToken
	}

	dbc := dbctx.Context{Ctx: ctx}
	var (
		session *Session
		expired bool
	)
	err := inTx(dbc, as.db, func(inner dbctx.Context) error {
		existing, err := as.userTokenRepo.FindByRefreshToken(inner, refreshToken)
		if err != nil {
			return fmt.Errorf("load refresh token: %w", err)
		}
		if existing == nil {
			return ErrInvalidToken
		}
		// The expired row is removed and committed; the caller still gets
		// ErrInvalidToken below.
		if existing.Expired(as.clock.Now()) {
			expired = true
			if err := as.userTokenRepo.Revoke(inner, existing.ID); err != nil {
				return fmt.Errorf("delete expired token: %w", err)
			}
			return nil
		}
		u, err := as.userRepo.GetByID(inner, existing.UserID)
		if err != nil {
			return fmt.Errorf("load user for refresh: %w", err)
		}
		if u == nil {
			return ErrInvalidToken
		}
		if !u.IsActive {
			return ErrAccountInactive
		}
		if err := as.userTokenRepo.Revoke(inner, existing.ID); err != nil {
			return fmt.Errorf("remove old refresh token: %w", err)
		}
		session, err = as.issueSession(inner, u)
		return err
	})
	if err != nil {
		return nil, err
	}
	if expired {
		return nil, ErrInvalidToken
	}
	return session, nil
}

func (as *authService) Logout(ctx context.Context) error {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.TokenString == "" {
		return ErrUnauthorized
	}
	dbc := dbctx.Context{Ctx: ctx}
	found, err := as.userTokenRepo.FindByAccessToken(dbc, rd.TokenString)
	if err != nil {
		return fmt.Errorf("load user token: %w", err)
	}
	if found == nil {
		return nil
	}
	if err := as.userTokenRepo.Revoke(dbc, found.ID); err != nil {
		return fmt.Errorf("delete user token: %w", err)
	}
	return nil
}

// ForgotPassword answers the same way whether or not the email is known.
func (as *authService) ForgotPassword(ctx context.Context, email string) (*ForgotPasswordResult, error) {
	dbc := dbctx.Context{Ctx: ctx}
	email = normalization.Email(email)
	if email == "" {
		return nil, badRequest("email_required", "email is required")
	}
	u, err := as.userRepo.GetByEmail(dbc, email)
	if err != nil {
		return nil, fmt.Errorf("load user by email: %w", err)
	}
	if u == nil {
		return &ForgotPasswordResult{}, nil
	}

	token, err := utils.RandomToken(resetTokenBytes)
	if err != nil {
		return nil, err
	}
	expires := as.clock.Now().Add(resetTokenTTL)
	if err := as.userRepo.Update(dbc, u.ID, map[string]interface{}{
		"reset_password_token":  utils.HashToken(token),
		"reset_password_expire": expires,
	}); err != nil {
		return nil, fmt.Errorf("store reset token: %w", err)
	}

	resetURL := strings.TrimRight(as.cfg.FrontendURL, "/") + "/reset-password?token=" + token
	if err := as.mailer.SendPasswordReset(ctx, u.Email, u.FirstName, resetURL); err != nil {
		if as.cfg.Production {
			if clearErr := as.userRepo.Update(dbc, u.ID, map[string]interface{}{
				"reset_password_token":  nil,
				"reset_password_expire": nil,
			}); clearErr != nil {
				as.log.Error("Failed to clear reset token", "user_id", u.ID, "error", clearErr)
			}
			return nil, apierr.New(http.StatusInternalServerError, "email_failed", errors.New("email could not be sent"))
		}
		as.log.Warn("Password reset email not sent", "user_id", u.ID, "error", err)
	}
	if as.cfg.Production {
		return &ForgotPasswordResult{}, nil
	}
	return &ForgotPasswordResult{ResetURL: resetURL}, nil
}

func (as *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return badRequest("invalid_reset_token", "invalid or expired reset token")
	}
	if len(newPassword) < utils.MinPasswordLength {
		return badRequest("weak_password", "password must be at least %d characters", utils.MinPasswordLength)
	}
	dbc := dbctx.Context{Ctx: ctx}
	u, err := as.userRepo.GetByResetToken(dbc, utils.HashToken(token), as.clock.Now())
	if err != nil {
		return fmt.Errorf("load user by reset token: %w", err)
	}
	if u == nil {
		return badRequest("invalid_reset_token", "invalid or expired reset token")
	}
	hashed, err := utils.HashPassword(newPassword, as.cfg.BcryptCost)
	if err != nil {
		return err
	}
	return inTx(dbc, as.db, func(inner dbctx.Context) error {
		if err := as.userRepo.Update(inner, u.ID, map[string]interface{}{
			"password":              hashed,
			"reset_password_token":  nil,
			"reset_password_expire": nil,
		}); err != nil {
			return fmt.Errorf("update password: %w", err)
		}
		if _, err := as.userTokenRepo.RevokeAllForUser(inner, u.ID); err != nil {
			return fmt.Errorf("revoke sessions: %w", err)
		}
		as.log.Info("Password reset", "user_id", u.ID)
		return nil
	})
}

func (as *authService) issueSession(dbc dbctx.Context, u *types.User) (*Session, error) {
	access, err := as.generateAccessToken(u)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	token := &types.UserToken{
		ID:           uuid.New(),
		UserID:       u.ID,
		AccessToken:  access,
		RefreshToken: uuid.NewString(),
		ExpiresAt:    as.clock.Now().Add(as.cfg.RefreshTTL),
	}
	if err := as.userTokenRepo.Create(dbc, token); err != nil {
		return nil, fmt.Errorf("create user token: %w", err)
	}
	return &Session{
		AccessToken:  access,
		RefreshToken: token.RefreshToken,
		ExpiresIn:    int(as.cfg.AccessTTL.Seconds()),
		User:         u,
	}, nil
}

func (as *authService) generateAccessToken(u *types.User) (string, error) {
	now := as.clock.Now()
	claims := JWTClaims{
		Role: u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   u.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.cfg.AccessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.cfg.JWTSecretKey))
}

// SetContextFromToken validates the JWT, requires its session row and
// attaches the caller to ctx.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, ErrInvalidToken
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.cfg.JWTSecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(as.clock.Now))
	if err != nil {
		return ctx, apierr.New(http.StatusUnauthorized, "invalid_token", fmt.Errorf("parse token: %w", err))
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid {
		return ctx, ErrInvalidToken
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, ErrInvalidToken
	}
	found, err := as.userTokenRepo.FindByAccessToken(dbctx.Context{Ctx: ctx}, tokenString)
	if err != nil {
		return ctx, fmt.Errorf("load user token: %w", err)
	}
	if found == nil || found.UserID != userID {
		return ctx, ErrInvalidToken
	}
	rd := &ctxutil.RequestData{
		TokenString:  tokenString,
		RefreshToken: found.RefreshToken,
		UserID:       userID,
		Role:         claims.Role,
	}
	return ctxutil.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.cfg.AccessTTL
}
