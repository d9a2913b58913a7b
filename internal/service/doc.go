// Package service contains the application use cases for threat ingestion.
// It coordinates the record store and the background task runner so that
// HTTP handlers never touch either directly.
//
// Error handling follows one pattern across the package: expected
// conditions come back as sentinel errors from internal/domain, and
// unexpected failures are wrapped in a TaskServiceError that keeps the
// operation name and the underlying cause.
package service
