// Package api contains the HTTP handlers of the content generation service.
// Handlers decode and validate requests, call the services in
// internal/service and translate their errors into status codes with
// MapErrorToStatusCode. Error bodies carry a safe message and the request's
// trace ID; raw errors are only logged, after redaction.
package api
