package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-StudioBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
)

// AgentEmailHeader carries the caller email verified by the identity provider
const AgentEmailHeader = "X-Agent-Email"

type callerKey struct{}

// Identity resolves the caller from the request headers
type Identity struct {
	admins map[string]struct{}
}

func NewIdentity(adminEmails []string) *Identity {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		if e = domain.NormalizeEmail(e); e != "" {
			admins[e] = struct{}{}
		}
	}
	return &Identity{admins: admins}
}

func (i *Identity) caller(r *http.Request) (domain.Caller, bool) {
	email := domain.NormalizeEmail(r.Header.Get(AgentEmailHeader))
	if email == "" || !strings.Contains(email, "@") {
		return domain.Caller{}, false
	}
	_, admin := i.admins[email]
	return domain.Caller{Email: email, IsAdmin: admin}, true
}

// Identify attaches the caller when present and lets anonymous requests through
func (i *Identity) Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, ok := i.caller(r); ok {
			r = r.WithContext(WithCaller(r.Context(), c))
		}
		next.ServeHTTP(w, r)
	})
}

// Auth rejects requests without a caller
func (i *Identity) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, ok := i.caller(r)
		if !ok {
			handlers.RespondUnauthorized(w, "missing or invalid "+AgentEmailHeader+" header")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), c)))
	})
}

func WithCaller(ctx context.Context, c domain.Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

// GetCaller returns the caller attached by Auth or Identify
func GetCaller(ctx context.Context) (domain.Caller, bool) {
	c, ok := ctx.Value(callerKey{}).(domain.Caller)
	return c, ok
}
