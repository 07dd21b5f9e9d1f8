// Package identity resolves the caller's identity once per request
// and makes it available through the request context.
package identity

import (
	"context"
	"net/http"

	authservice "github.com/postboard-app/postboard/backend/internal/auth/service"
	"github.com/postboard-app/postboard/backend/internal/auth/session"
	commonerrors "github.com/postboard-app/postboard/backend/internal/common/errors"
	"github.com/postboard-app/postboard/backend/internal/common/logger"
	userdomain "github.com/postboard-app/postboard/backend/internal/user/domain"
	userrepo "github.com/postboard-app/postboard/backend/internal/user/repository"
)

// Identity is the resolved authenticated caller.
type Identity struct {
	User userdomain.User
}

type contextKey string

const identityKey contextKey = "identity"

// Resolver turns the carried token into an Identity. Every failure
// mode on this path (no cookie, garbage token, expired token, deleted
// account) degrades to anonymous; the request always proceeds.
type Resolver struct {
	tokens  *authservice.TokenService
	users   userrepo.Repository
	carrier *session.Carrier
	log     *logger.Logger
}

func NewResolver(
	tokens *authservice.TokenService,
	users userrepo.Repository,
	carrier *session.Carrier,
	log *logger.Logger,
) *Resolver {
	return &Resolver{
		tokens:  tokens,
		users:   users,
		carrier: carrier,
		log:     log,
	}
}

// Middleware resolves the identity exactly once, before any handler
// runs. Handlers consult FromContext/Require and never re-parse
// credentials.
func (r *Resolver) Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ident, ok := r.resolve(req)
			if ok {
				ctx := context.WithValue(req.Context(), identityKey, ident)
				req = req.WithContext(ctx)
			}
			next.ServeHTTP(w, req)
		})
	}
}

func (r *Resolver) resolve(req *http.Request) (Identity, bool) {
	token, ok := r.carrier.Read(req)
	if !ok {
		return Identity{}, false
	}

	claims, err := r.tokens.Verify(token)
	if err != nil {
		r.log.WithFields(req.Context(), logger.Fields{
			"action": "identity_token_invalid",
		}).Debugf("identity resolution degraded to anonymous: %v", err)
		return Identity{}, false
	}

	user, err := r.users.FindByID(req.Context(), claims.UserID)
	if err != nil {
		// Deleted account or storage failure; either way the caller is
		// treated as anonymous rather than failing the request.
		r.log.WithFields(req.Context(), logger.Fields{
			"user_id": string(claims.UserID),
			"action":  "identity_subject_lookup_failed",
		}).Debugf("identity resolution degraded to anonymous: %v", err)
		return Identity{}, false
	}

	return Identity{User: user}, true
}

// FromContext reports the resolved identity, if any.
func FromContext(ctx context.Context) (Identity, bool) {
	ident, ok := ctx.Value(identityKey).(Identity)
	return ident, ok
}

// Require is the authentication half of the authorization gate: it
// fails with UNAUTHENTICATED before any storage is touched.
func Require(ctx context.Context) (Identity, error) {
	ident, ok := FromContext(ctx)
	if !ok {
		return Identity{}, commonerrors.ErrUnauthenticated
	}
	return ident, nil
}
