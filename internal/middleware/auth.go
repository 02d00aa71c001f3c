package middleware

import (
	"net/http"
	"slices"
	"time"

	"github.com/clerk/clerk-sdk-go/v2"
	clerkhttp "github.com/clerk/clerk-sdk-go/v2/http"
	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/go-quizbank/internal/errs"
	"github.com/deppfellow/go-quizbank/internal/server"
)

// Permissions checked on write routes.
const (
	PermissionCreateQuestions   = "create:questions"
	PermissionDeleteQuestions   = "delete:questions"
	PermissionAddParticipant    = "add:event-participant"
	PermissionRemoveParticipant = "remove:event-participant"
)

type AuthMiddleware struct {
	server *server.Server
}

func NewAuthMiddleware(s *server.Server) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
	}
}

// RequireAuth verifies the Clerk session token in the Authorization header
// and stores user id, role and permissions in the echo context.
//
// Clerk rejects bad tokens before the echo chain runs, so that failure is
// written here directly in the usual error shape.
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return echo.WrapMiddleware(
		clerkhttp.WithHeaderAuthorization(
			clerkhttp.AuthorizationFailureHandler(http.HandlerFunc(auth.writeUnauthorized))))(
		func(c echo.Context) error {
			start := time.Now()

			claims, ok := clerk.SessionClaimsFromContext(c.Request().Context())
			if !ok {
				auth.server.Logger.Error().
					Str("function", "RequireAuth").
					Str("request_id", GetRequestID(c)).
					Dur("duration", time.Since(start)).
					Msg("could not get session claims from context")

				return errs.NewUnauthorizedError("Unauthorized", false)
			}

			c.Set(UserIDKey, claims.Subject)
			c.Set(UserRoleKey, claims.ActiveOrganizationRole)
			c.Set(PermissionsKey, claims.Claims.ActiveOrganizationPermissions)

			auth.server.Logger.Info().
				Str("function", "RequireAuth").
				Str("user_id", claims.Subject).
				Str("request_id", GetRequestID(c)).
				Dur("duration", time.Since(start)).
				Msg("user authenticated successfully")

			return next(c)
		})
}

func (auth *AuthMiddleware) writeUnauthorized(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	w.WriteHeader(http.StatusUnauthorized)

	body := errs.NewUnauthorizedError("Unauthorized", false)
	if err := jsoniter.NewEncoder(w).Encode(body); err != nil {
		auth.server.Logger.Error().
			Err(err).
			Str("function", "RequireAuth").
			Msg("failed to write JSON response")
		return
	}

	auth.server.Logger.Warn().
		Str("function", "RequireAuth").
		Str("path", r.URL.Path).
		Msg("rejected request without a valid session")
}

// RequirePermission must run after RequireAuth. It answers 403 unless the
// session carries perm.
func (auth *AuthMiddleware) RequirePermission(perm string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !slices.Contains(GetPermissions(c), perm) {
				GetLogger(c).Warn().
					Str("user_id", GetUserID(c)).
					Str("permission", perm).
					Msg("permission denied")

				return errs.NewForbiddenError("Permission not found: "+perm, true)
			}
			return next(c)
		}
	}
}
