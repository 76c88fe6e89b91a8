package utils

import (
	"context"
	"net/http"
	"strings"

	"github.com/hilthontt/roomly/internal/domain"
)

type callerKey struct{}

func WithCaller(ctx context.Context, caller *domain.Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// CallerFrom returns the authenticated caller, or nil for anonymous requests.
func CallerFrom(ctx context.Context) *domain.Caller {
	caller, _ := ctx.Value(callerKey{}).(*domain.Caller)
	return caller
}

// BearerToken extracts the token from "Authorization: Bearer <token>". The
// websocket feed can't set headers from a browser, so it may also pass
// ?access_token=.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if found && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}

	return r.URL.Query().Get("access_token")
}
