// Package gmail wraps the Gmail REST API for the poll pipeline.
package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"tripscan/core/domain"

	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// Client is a thin typed wrapper over the Gmail service for one connection.
type Client struct {
	service *gmail.Service
}

// NewClient builds a Gmail client over an authenticated HTTP client.
func NewClient(ctx context.Context, httpClient *http.Client) (*Client, error) {
	service, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}
	return &Client{service: service}, nil
}

// ListMessageIDs returns message ids matching the search query, in the order
// Gmail returns them (newest first).
func (c *Client) ListMessageIDs(ctx context.Context, query string, maxResults int64) ([]string, error) {
	req := c.service.Users.Messages.List("me")
	if query != "" {
		req = req.Q(query)
	}
	if maxResults > 0 {
		req = req.MaxResults(maxResults)
	}

	resp, err := req.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	ids := make([]string, 0, len(resp.Messages))
	for _, m := range resp.Messages {
		ids = append(ids, m.Id)
	}
	return ids, nil
}

// GetMessage fetches one message with its full part tree.
func (c *Client) GetMessage(ctx context.Context, messageID string) (*domain.RawMessage, error) {
	msg, err := c.service.Users.Messages.Get("me", messageID).
		Format("full").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	return mapMessage(msg), nil
}

// GetAttachment fetches and decodes a single attachment body.
func (c *Client) GetAttachment(ctx context.Context, messageID, attachmentID string) ([]byte, error) {
	att, err := c.service.Users.Messages.Attachments.Get("me", messageID, attachmentID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get attachment: %w", err)
	}

	data, err := base64.URLEncoding.DecodeString(att.Data)
	if err != nil {
		data, err = base64.RawURLEncoding.DecodeString(att.Data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode attachment: %w", err)
	}
	return data, nil
}

// =============================================================================
// Mapping
// =============================================================================

func mapMessage(msg *gmail.Message) *domain.RawMessage {
	rm := &domain.RawMessage{
		ID:           msg.Id,
		ThreadID:     msg.ThreadId,
		Snippet:      msg.Snippet,
		InternalDate: msg.InternalDate,
	}
	if msg.Payload != nil {
		rm.Headers = mapHeaders(msg.Payload.Headers)
		rm.Payload = mapPart(msg.Payload)
	}
	return rm
}

func mapPart(part *gmail.MessagePart) *domain.MessagePart {
	if part == nil {
		return nil
	}

	mp := &domain.MessagePart{
		PartID:   part.PartId,
		MimeType: part.MimeType,
		Filename: part.Filename,
		Headers:  mapHeaders(part.Headers),
	}
	if part.Body != nil {
		mp.Body = &domain.PartBody{
			Data:         part.Body.Data,
			Size:         part.Body.Size,
			AttachmentID: part.Body.AttachmentId,
		}
	}
	for _, child := range part.Parts {
		mp.Parts = append(mp.Parts, mapPart(child))
	}
	return mp
}

func mapHeaders(headers []*gmail.MessagePartHeader) []domain.PartHeader {
	if len(headers) == 0 {
		return nil
	}
	mapped := make([]domain.PartHeader, 0, len(headers))
	for _, h := range headers {
		mapped = append(mapped, domain.PartHeader{Name: h.Name, Value: h.Value})
	}
	return mapped
}
