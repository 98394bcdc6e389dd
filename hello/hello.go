// Package hello implements the hello-universe function handler.
//
// The handler is a constant function of (request, context): it ignores both
// arguments and always answers with status 200 and the body "hello universe".
package hello

import "context"

const (
	FieldStatusCode = "statusCode"
	FieldBody       = "body"
)

const (
	StatusCode = 200
	Body       = "hello universe"
)

// Request is the payload delivered by the host platform. It is never inspected.
type Request map[string]any

// Response is the payload handed back to the host platform.
type Response map[string]any

// StatusCode returns the statusCode field, or 0 when absent.
func (r Response) StatusCode() int {
	v, _ := r[FieldStatusCode].(int)
	return v
}

// Body returns the body field, or "" when absent.
func (r Response) Body() string {
	v, _ := r[FieldBody].(string)
	return v
}

// Handle answers every invocation with the same fixed response.
// A fresh Response is built on each call so callers own what they get back.
func Handle(_ context.Context, _ Request) (Response, error) {
	return Response{
		FieldStatusCode: StatusCode,
		FieldBody:       Body,
	}, nil
}
