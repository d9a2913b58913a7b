// Package provider fetches raw threat feeds from the two upstream providers.
// Provider A serves a JSON array that is checked against an embedded JSON
// schema before decoding; provider B serves CSV with a header row.
package provider
