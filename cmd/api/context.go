package main

import (
	"context"
	"net/http"
)

type contextKey string

const requestIDContextKey = contextKey("request_id")

// returns a new copy of request with the request ID added to the context.
func (app *application) contextSetRequestID(r *http.Request, id string) *http.Request {
	ctx := context.WithValue(r.Context(), requestIDContextKey, id)
	return r.WithContext(ctx)
}

// retrieves the request ID from the request context, or "" outside the requestID middleware
func (app *application) contextGetRequestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDContextKey).(string)
	return id
}
