// Package filter turns raw provider rows into normalized threat records.
//
// Normalize is a pure function: it applies each provider's year, country and
// level predicates, renames the provider-specific fields into the unified
// schema, stamps the task name and concatenates provider A rows before
// provider B rows, preserving input order within each provider.
package filter
