// Package handlers contains HTTP handlers for the bookmarker API.
//
// The API surface is deliberately small: a health endpoint consumed by the
// frontend connection badge and a version endpoint. Errors are rendered by
// the foundation/errors HTTP adapter and success bodies by writeJSON.
package handlers
