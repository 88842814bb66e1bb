// Package httpkit gives modules handler, routing and middleware helpers
// without importing internal/platform/net/http directly
package httpkit

import (
	"net/http"

	phttp "shopguide/internal/platform/net/http"
	"shopguide/internal/platform/net/http/bind"

	"github.com/go-chi/chi/v5"
)

type (
	// Envelope is the response body of every endpoint
	Envelope = phttp.Envelope

	// Response is what handlers return
	Response = phttp.Response

	// Handler is the platform handler type
	Handler = phttp.Handler

	// Router is the platform router seam
	Router = phttp.Router
)

// OK returns a 200 response
func OK(data any) Response { return phttp.OK(data) }

// Created returns a 201 response
func Created(data any) Response { return phttp.Created(data) }

// NoContent returns a 204 response
func NoContent() Response { return phttp.NoContent() }

// Error returns a response whose status derives from err
func Error(err error) Response { return phttp.Error(err) }

// respond wraps a handler result; a Response passes through untouched
func respond(out any, err error) Response {
	if err != nil {
		return phttp.Error(err)
	}
	if resp, ok := out.(Response); ok {
		return resp
	}
	return phttp.OK(out)
}

// JSON binds and validates a T body before calling fn
func JSON[T any](fn func(*http.Request, T) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return phttp.Error(err)
		}
		return respond(fn(r, in))
	})
}

// Call adapts a handler that reads no body
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) Response { return respond(fn(r)) })
}

// Param returns a named path parameter
func Param(r *http.Request, name string) string { return chi.URLParam(r, name) }
