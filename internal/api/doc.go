// Package api exposes the task service over HTTP. Handlers decode and
// validate requests, call the service and translate its errors into status
// codes with sanitized messages.
package api
