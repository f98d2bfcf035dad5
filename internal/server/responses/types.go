// Package responses defines API response types used by the bookmarker HTTP handlers.
package responses

import "github.com/matttelliott/bookmarker-ai/internal/version"

// VersionResponse is the /version payload.
type VersionResponse struct {
	Service string `json:"service"`
	version.Info
}
