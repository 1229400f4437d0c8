package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/yungbote/youthcare-backend/internal/data/repos"
	"github.com/yungbote/youthcare-backend/internal/data/repos/testutil"
	"github.com/yungbote/youthcare-backend/internal/domain/user"
	"github.com/yungbote/youthcare-backend/internal/platform/ctxutil"
	"github.com/yungbote/youthcare-backend/internal/platform/dbctx"
)

// newTestAuth runs against the database directly: every auth operation opens
// its own transaction.
func newTestAuth(t *testing.T) (AuthService, repos.YouthProfileRepo) {
	t.Helper()
	svc, _, youth := newTestAuthAt(t, func() time.Time { return fixedNow })
	return svc, youth
}

func newTestAuthAt(t *testing.T, now func() time.Time) (AuthService, repos.UserTokenRepo, repos.YouthProfileRepo) {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	youth := repos.NewYouthProfileRepo(db, log)
	tokens := repos.NewUserTokenRepo(db, log)
	clock := Clock{NowFunc: now, Location: time.UTC}
	cfg := AuthConfig{
		JWTSecretKey: "test-secret",
		AccessTTL:    15 * time.Minute,
		RefreshTTL:   24 * time.Hour,
		FrontendURL:  "http://localhost:3000",
		BcryptCost:   bcrypt.MinCost,
	}
	svc := NewAuthService(
		db, log,
		repos.NewUserRepo(db, log),
		tokens,
		youth,
		repos.NewCoachProfileRepo(db, log),
		repos.NewClinicianProfileRepo(db, log),
		repos.NewParentProfileRepo(db, log),
		nil, cfg, clock,
	)
	return svc, tokens, youth
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestAuth(t)
	dob := time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name   string
		in     RegisterInput
		status int
		code   string
	}{
		{"missing name", RegisterInput{Email: "a@example.com", Password: "secret123", DateOfBirth: &dob}, http.StatusBadRequest, "name_required"},
		{"bad email", RegisterInput{FirstName: "A", LastName: "B", Email: "nope", Password: "secret123", DateOfBirth: &dob}, http.StatusBadRequest, "invalid_email"},
		{"short password", RegisterInput{FirstName: "A", LastName: "B", Email: "a@example.com", Password: "123", DateOfBirth: &dob}, http.StatusBadRequest, "weak_password"},
		{"admin", RegisterInput{FirstName: "A", LastName: "B", Email: "a@example.com", Password: "secret123", Role: user.RoleAdmin}, http.StatusForbidden, "forbidden"},
		{"unknown role", RegisterInput{FirstName: "A", LastName: "B", Email: "a@example.com", Password: "secret123", Role: "wizard"}, http.StatusBadRequest, "invalid_role"},
		{"youth without dob", RegisterInput{FirstName: "A", LastName: "B", Email: "a@example.com", Password: "secret123"}, http.StatusBadRequest, "date_of_birth_required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.in)
			wantCode(t, err, tc.status, tc.code)
		})
	}
}

func TestRegisterLoginRefreshLogout(t *testing.T) {
	svc, youth := newTestAuth(t)
	ctx := context.Background()
	dob := time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)

	session, err := svc.Register(ctx, RegisterInput{
		FirstName:   "sam",
		LastName:    "lee",
		Email:       "  Sam.Lee@Example.com ",
		Password:    "secret123",
		DateOfBirth: &dob,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if session.User.Email != "sam.lee@example.com" || session.User.Role != user.RoleYouth {
		t.Fatalf("Register user=%+v, want normalized youth", session.User)
	}
	if session.ExpiresIn != int((15 * time.Minute).Seconds()) {
		t.Fatalf("ExpiresIn=%d, want 900", session.ExpiresIn)
	}
	p, err := youth.GetByUserID(dbctx.Context{Ctx: ctx}, session.User.ID)
	if err != nil || p == nil || p.Level != 1 {
		t.Fatalf("youth profile=%+v err=%v, want level 1 profile", p, err)
	}

	_, err = svc.Register(ctx, RegisterInput{FirstName: "x", LastName: "y", Email: "sam.lee@example.com", Password: "secret123", DateOfBirth: &dob})
	wantCode(t, err, http.StatusConflict, "email_taken")

	_, err = svc.Login(ctx, "sam.lee@example.com", "wrong-password")
	wantCode(t, err, http.StatusUnauthorized, "invalid_credentials")

	login, err := svc.Login(ctx, "SAM.LEE@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	authed, err := svc.SetContextFromToken(ctx, login.AccessToken)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	rd := ctxutil.GetRequestData(authed)
	if rd == nil || rd.UserID != session.User.ID || rd.Role != user.RoleYouth || rd.RefreshToken != login.RefreshToken {
		t.Fatalf("request data=%+v, want caller %s", rd, session.User.ID)
	}

	refreshed, err := svc.Refresh(ctx, login.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if refreshed.RefreshToken == login.RefreshToken {
		t.Fatalf("Refresh kept the old refresh token")
	}
	_, err = svc.Refresh(ctx, login.RefreshToken)
	wantCode(t, err, http.StatusUnauthorized, "invalid_token")

	authed, err = svc.SetContextFromToken(ctx, refreshed.AccessToken)
	if err != nil {
		t.Fatalf("SetContextFromToken(refreshed): %v", err)
	}
	if err := svc.Logout(authed); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	_, err = svc.SetContextFromToken(ctx, refreshed.AccessToken)
	wantCode(t, err, http.StatusUnauthorized, "invalid_token")
}

func TestSetContextFromTokenRejectsGarbage(t *testing.T) {
	svc, _ := newTestAuth(t)
	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := svc.SetContextFromToken(context.Background(), tok)
		wantCode(t, err, http.StatusUnauthorized, "invalid_token")
	}
}

func TestProvisionAdmin(t *testing.T) {
	svc, _ := newTestAuth(t)
	ctx := context.Background()

	u, err := svc.Provision(ctx, RegisterInput{
		FirstName: "ops",
		LastName:  "admin",
		Email:     " Ops@Example.com ",
		Password:  "secret123",
		Role:      user.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("Provision: %v", err)
	}
	if u.Role != user.RoleAdmin || u.Email != "ops@example.com" || !u.IsActive {
		t.Fatalf("Provision user: got=%+v want active admin ops@example.com", u)
	}
	if _, err := svc.Login(ctx, "ops@example.com", "secret123"); err != nil {
		t.Fatalf("Login(provisioned): %v", err)
	}
	_, err = svc.Provision(ctx, RegisterInput{FirstName: "a", LastName: "b", Email: "ops@example.com", Password: "secret123", Role: user.RoleCoach})
	wantCode(t, err, http.StatusConflict, "email_taken")
}

func TestRefreshExpiredTokenIsDeleted(t *testing.T) {
	now := fixedNow
	svc, tokens, _ := newTestAuthAt(t, func() time.Time { return now })
	ctx := context.Background()
	dob := time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)

	session, err := svc.Register(ctx, RegisterInput{FirstName: "a", LastName: "b", Email: "late@example.com", Password: "secret123", DateOfBirth: &dob})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	now = now.Add(25 * time.Hour)
	_, err = svc.Refresh(ctx, session.RefreshToken)
	wantCode(t, err, http.StatusUnauthorized, "invalid_token")

	row, err := tokens.FindByRefreshToken(dbctx.Context{Ctx: ctx}, session.RefreshToken)
	if err != nil {
		t.Fatalf("FindByRefreshToken: %v", err)
	}
	if row != nil {
		t.Fatalf("expired token row: got=%+v want=nil", row)
	}
}
