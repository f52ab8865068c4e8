package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lib-tools/library-atlas/pkg/models/domain"
	"github.com/lib-tools/library-atlas/pkg/services/auth"
)

type contextKey struct{}

var borrowerKey contextKey

// Authenticate verifies the Bearer token and stores the requesting borrower's
// identity in the request context.
func Authenticate(authService auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			header := req.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				unauthorized(w, "missing bearer token")
				return
			}

			claims, err := authService.Verify(token)
			if err != nil {
				zerolog.Ctx(req.Context()).Warn().Err(err).Msg("token rejected")
				unauthorized(w, "invalid token")
				return
			}

			ctx := WithBorrower(req.Context(), domain.Borrower{
				ID:      claims.BorrowerID,
				Name:    claims.Name,
				IsAdmin: claims.IsAdmin,
			})
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects requests from non-administrator borrowers. It must run
// after Authenticate.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		borrower, ok := BorrowerFromContext(req.Context())
		if !ok || !borrower.IsAdmin {
			http.Error(w, `{"status":"error","message":"administrator access required"}`, http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, req)
	})
}

// WithBorrower stores a borrower identity in the context the way Authenticate
// does.
func WithBorrower(ctx context.Context, borrower domain.Borrower) context.Context {
	return context.WithValue(ctx, borrowerKey, borrower)
}

// BorrowerFromContext returns the authenticated borrower, if any.
func BorrowerFromContext(ctx context.Context) (domain.Borrower, bool) {
	borrower, ok := ctx.Value(borrowerKey).(domain.Borrower)
	return borrower, ok
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"status":"error","message":"` + msg + `"}`))
}
