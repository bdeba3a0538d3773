// Package apierr defines the structured error envelope every endpoint
// returns: { "error": { "status": ..., "title": ..., "message": ... } }.
package apierr

import "errors"

type Error struct {
	Status  int    `json:"status"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

func (e *Error) Error() string { return e.Message }

// Envelope is the wire shape of an error response.
type Envelope struct {
	Error *Error `json:"error"`
}

func (e *Error) Envelope() Envelope { return Envelope{Error: e} }

func New(status int, title, message string) *Error {
	return &Error{Status: status, Title: title, Message: message}
}

func BadRequest(message string) *Error {
	return New(400, "Bad Request", message)
}

func Unauthorized(message string) *Error {
	return New(401, "Unauthorized", message)
}

func Forbidden(message string) *Error {
	return New(403, "Forbidden", message)
}

func NotFound(message string) *Error {
	return New(404, "Not Found", message)
}

func Conflict(message string) *Error {
	return New(409, "Conflict", message)
}

func Internal() *Error {
	return New(500, "Internal Server Error", "Something bad happened.")
}

// From extracts an *Error from err, or wraps it as a 500 that carries
// no internal detail to the client.
func From(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return Internal()
}
