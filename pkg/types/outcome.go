// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Credentials is an API key/token pair. A value is either fully present
// (authenticated) or absent entirely; callers pass nil for unauthenticated
// runs. Resolved once at startup and shared read-only by all fetch attempts.
type Credentials struct {
	APIKey string `json:"api_key" yaml:"api_key"`
	Token  string `json:"token" yaml:"token"`
}

// Outcome is the result of one attachment fetch attempt in one card context.
// The same attachment can recur across cards, so LocalPath is a function of
// the card and attachment names rather than of the attachment ID alone.
type Outcome struct {
	// AttachmentID identifies the attachment within the export.
	AttachmentID string

	// LocalPath is the path the content was written to. Empty on failure.
	LocalPath string

	// Succeeded reports whether the content was obtained. When false, no
	// bytes were written and the failure was appended to the destination
	// directory's attachment_info.md.
	Succeeded bool
}
