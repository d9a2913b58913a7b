// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the task worker and the HTTP service, so neither depends on a specific
// database technology.
package store
