package middleware

import (
	"context"
	"net/http"
)

type contextKey string

const (
	ownerIDKey   contextKey = "owner_id"
	requestIDKey contextKey = "request_id"
)

// SetOwnerID attaches the authenticated owner to the context.
func SetOwnerID(ctx context.Context, owner string) context.Context {
	return context.WithValue(ctx, ownerIDKey, owner)
}

// GetOwnerID returns the authenticated owner for the request, as set by
// the auth middleware.
func GetOwnerID(r *http.Request) (string, bool) {
	owner, ok := r.Context().Value(ownerIDKey).(string)
	return owner, ok
}

// SetRequestID attaches the request id assigned by the logging middleware.
func SetRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// GetRequestID returns the id the logging middleware assigned to the request.
func GetRequestID(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(requestIDKey).(string)
	return id, ok
}
