// Package extract turns raw provider messages into parsed itineraries.
package extract

import (
	"encoding/base64"

	"tripscan/core/domain"
)

// ExtractBody walks the message part tree depth-first, current node before
// children, and returns the first text/html and first text/plain payloads
// decoded from base64url. Absence of either is a valid result.
func ExtractBody(msg *domain.RawMessage) domain.ExtractedBody {
	if msg == nil {
		return domain.ExtractedBody{}
	}
	return domain.ExtractedBody{
		HTML: firstPart(msg.Payload, "text/html"),
		Text: firstPart(msg.Payload, "text/plain"),
	}
}

func firstPart(node *domain.MessagePart, mimeType string) string {
	if node == nil {
		return ""
	}
	if node.MimeType == mimeType && node.Body != nil && node.Body.Data != "" {
		if data, err := base64.URLEncoding.DecodeString(node.Body.Data); err == nil {
			return string(data)
		}
		// Some providers pad; retry with raw encoding before giving up on
		// this leaf.
		if data, err := base64.RawURLEncoding.DecodeString(node.Body.Data); err == nil {
			return string(data)
		}
	}
	for _, part := range node.Parts {
		if got := firstPart(part, mimeType); got != "" {
			return got
		}
	}
	return ""
}

// FindCalendarPart returns the first part that looks like a calendar invite:
// a text/calendar leaf or an attachment named *.ics. Nil when none exists.
func FindCalendarPart(node *domain.MessagePart) *domain.MessagePart {
	if node == nil {
		return nil
	}
	if node.MimeType == "text/calendar" || hasICSName(node.Filename) {
		if node.Body != nil && (node.Body.Data != "" || node.Body.AttachmentID != "") {
			return node
		}
	}
	for _, part := range node.Parts {
		if got := FindCalendarPart(part); got != nil {
			return got
		}
	}
	return nil
}

func hasICSName(filename string) bool {
	n := len(filename)
	return n >= 4 && (filename[n-4:] == ".ics" || filename[n-4:] == ".ICS")
}
