package domain

import "time"

// =============================================================================
// RawMessage - provider message with its MIME part tree
// =============================================================================

// RawMessage is a full provider message as returned by the mail provider.
// It is immutable once fetched; the pipeline only reads it.
type RawMessage struct {
	ID           string       `json:"id"`
	ThreadID     string       `json:"thread_id,omitempty"`
	Snippet      string       `json:"snippet,omitempty"`
	InternalDate int64        `json:"internal_date"` // provider epoch millis
	Headers      []PartHeader `json:"headers,omitempty"`
	Payload      *MessagePart `json:"payload,omitempty"`
}

// ReceivedAt converts the provider internal date to a time.Time.
func (m *RawMessage) ReceivedAt() time.Time {
	return time.UnixMilli(m.InternalDate)
}

// Header returns the first header with the given name (case-sensitive,
// provider headers are already canonical).
func (m *RawMessage) Header(name string) string {
	for _, h := range m.Headers {
		if h.Name == name {
			return h.Value
		}
	}
	return ""
}

// MessagePart is one node of the MIME part tree.
type MessagePart struct {
	PartID   string        `json:"part_id,omitempty"`
	MimeType string        `json:"mime_type,omitempty"`
	Filename string        `json:"filename,omitempty"`
	Headers  []PartHeader  `json:"headers,omitempty"`
	Body     *PartBody     `json:"body,omitempty"`
	Parts    []*MessagePart `json:"parts,omitempty"`
}

// PartHeader is a single MIME header.
type PartHeader struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// PartBody carries the payload of a leaf part. Data is base64url as the
// provider returns it; large parts carry an AttachmentID instead.
type PartBody struct {
	Data         string `json:"data,omitempty"`
	Size         int64  `json:"size,omitempty"`
	AttachmentID string `json:"attachment_id,omitempty"`
}

// ExtractedBody is the best-available rendition of a message body.
// Transient; never persisted.
type ExtractedBody struct {
	HTML string `json:"html,omitempty"`
	Text string `json:"text,omitempty"`
}

// IsEmpty reports whether neither rendition was found.
func (b ExtractedBody) IsEmpty() bool {
	return b.HTML == "" && b.Text == ""
}

// Combined returns HTML and text concatenated, for signature scanning.
func (b ExtractedBody) Combined() string {
	return b.HTML + b.Text
}
