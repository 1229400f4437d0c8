package services

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/yungbote/youthcare-backend/internal/db"
	"github.com/yungbote/youthcare-backend/internal/platform/apierr"
	"github.com/yungbote/youthcare-backend/internal/platform/ctxutil"
	"github.com/yungbote/youthcare-backend/internal/platform/dbctx"
	"github.com/yungbote/youthcare-backend/internal/policy"
)

var (
	ErrUnauthorized = apierr.New(http.StatusUnauthorized, "unauthorized", errors.New("unauthorized"))
	ErrForbidden    = apierr.New(http.StatusForbidden, "forbidden", policy.ErrForbidden)
)

func badRequest(code, format string, args ...any) error {
	return apierr.New(http.StatusBadRequest, code, fmt.Errorf(format, args...))
}

func notFound(code, format string, args ...any) error {
	return apierr.New(http.StatusNotFound, code, fmt.Errorf(format, args...))
}

func conflict(code, format string, args ...any) error {
	return apierr.New(http.StatusConflict, code, fmt.Errorf(format, args...))
}

func forbidden(format string, args ...any) error {
	return apierr.New(http.StatusForbidden, "forbidden", fmt.Errorf("%w: %s", policy.ErrForbidden, fmt.Sprintf(format, args...)))
}

// uniqueAs maps a unique-constraint violation to the given conflict and
// passes every other error through.
func uniqueAs(err error, code, msg string) error {
	if err != nil && db.IsUniqueViolation(err) {
		return apierr.New(http.StatusConflict, code, errors.New(msg))
	}
	return err
}

// actorFrom reads the authenticated caller from the request context.
func actorFrom(dbc dbctx.Context) (policy.Actor, error) {
	rd := ctxutil.GetRequestData(dbc.Ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return policy.Actor{}, ErrUnauthorized
	}
	return policy.Actor{UserID: rd.UserID, Role: rd.Role}, nil
}

// authorize resolves the caller and checks act against res.
func authorize(dbc dbctx.Context, act policy.Action, res policy.Resource) (policy.Actor, error) {
	actor, err := actorFrom(dbc)
	if err != nil {
		return actor, err
	}
	if err := policy.Check(actor, act, res); err != nil {
		return actor, apierr.New(http.StatusForbidden, "forbidden", err)
	}
	return actor, nil
}
