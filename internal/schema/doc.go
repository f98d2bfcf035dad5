// Package schema defines the bookmarker domain entities and their wire formats.
//
// Every entity comes with three shapes: the full record, a Create variant
// (the record without id and timestamps) and an Update variant where every
// Create field is optional. Parsing never panics; it yields a
// foundation.Outcome whose failure carries a *foundation.ValidationErrors.
//
// Timestamps travel as ISO-8601 UTC strings such as 2025-01-02T03:04:05.000Z
// and identifiers as canonical UUID strings.
package schema
