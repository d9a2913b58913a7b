// Package domain defines the core entities of the threat ingestion service:
// raw provider records, per-provider filters, normalized threat records and
// the task lifecycle states. It has no dependencies on storage or transport.
package domain
