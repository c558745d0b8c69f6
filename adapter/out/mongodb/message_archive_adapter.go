// Package mongodb implements MongoDB adapters for the application.
package mongodb

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"time"

	"tripscan/core/domain"
	"tripscan/core/port/out"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// =============================================================================
// MongoDB Message Archive Adapter
// =============================================================================

const (
	collectionMessageArchive = "message_bodies"

	// Compression threshold - only compress if content is larger than this
	archiveCompressionThreshold = 1024 // 1KB

	// DefaultArchiveTTLDays is how long archived bodies are retained.
	DefaultArchiveTTLDays = 90
)

// MessageArchiveAdapter implements out.MessageArchive using MongoDB. Bodies
// are kept for reprocessing and debugging, gzip-compressed when large, and
// expire via a TTL index.
type MessageArchiveAdapter struct {
	collection *mongo.Collection
	ttlDays    int
}

// NewMessageArchiveAdapter creates a new message archive adapter.
func NewMessageArchiveAdapter(db *mongo.Database, ttlDays int) *MessageArchiveAdapter {
	if ttlDays <= 0 {
		ttlDays = DefaultArchiveTTLDays
	}
	return &MessageArchiveAdapter{
		collection: db.Collection(collectionMessageArchive),
		ttlDays:    ttlDays,
	}
}

// EnsureIndexes creates necessary indexes for the collection.
func (a *MessageArchiveAdapter) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "message_id", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0), // TTL index
		},
	}

	_, err := a.collection.Indexes().CreateMany(ctx, indexes)
	return err
}

// messageArchiveDocument represents the MongoDB document structure.
type messageArchiveDocument struct {
	UserID    string `bson:"user_id"`
	MessageID string `bson:"message_id"`

	// Content (potentially compressed)
	HTML         []byte `bson:"html,omitempty"`
	Text         []byte `bson:"text,omitempty"`
	IsCompressed bool   `bson:"is_compressed"`
	OriginalSize int64  `bson:"original_size"`

	ReceivedAt time.Time `bson:"received_at"`
	ArchivedAt time.Time `bson:"archived_at"`
	ExpiresAt  time.Time `bson:"expires_at"`
}

// Save archives a message body, replacing any earlier archive of the same
// message.
func (a *MessageArchiveAdapter) Save(ctx context.Context, userID, messageID string, body domain.ExtractedBody, receivedAt time.Time) error {
	if body.IsEmpty() {
		return nil
	}

	originalSize := int64(len(body.HTML) + len(body.Text))
	compress := originalSize > archiveCompressionThreshold

	html, err := maybeCompress([]byte(body.HTML), compress)
	if err != nil {
		return fmt.Errorf("failed to compress html: %w", err)
	}
	text, err := maybeCompress([]byte(body.Text), compress)
	if err != nil {
		return fmt.Errorf("failed to compress text: %w", err)
	}

	now := time.Now().UTC()
	doc := messageArchiveDocument{
		UserID:       userID,
		MessageID:    messageID,
		HTML:         html,
		Text:         text,
		IsCompressed: compress,
		OriginalSize: originalSize,
		ReceivedAt:   receivedAt.UTC(),
		ArchivedAt:   now,
		ExpiresAt:    now.AddDate(0, 0, a.ttlDays),
	}

	opts := options.Replace().SetUpsert(true)
	filter := bson.M{"user_id": userID, "message_id": messageID}

	if _, err := a.collection.ReplaceOne(ctx, filter, doc, opts); err != nil {
		return fmt.Errorf("failed to archive message body: %w", err)
	}
	return nil
}

// Get retrieves an archived body, or (nil, nil) when absent or expired.
func (a *MessageArchiveAdapter) Get(ctx context.Context, userID, messageID string) (*domain.ExtractedBody, error) {
	var doc messageArchiveDocument
	filter := bson.M{"user_id": userID, "message_id": messageID}

	err := a.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get archived body: %w", err)
	}

	html, err := maybeDecompress(doc.HTML, doc.IsCompressed)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress html: %w", err)
	}
	text, err := maybeDecompress(doc.Text, doc.IsCompressed)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress text: %w", err)
	}

	return &domain.ExtractedBody{HTML: string(html), Text: string(text)}, nil
}

func maybeCompress(data []byte, compress bool) ([]byte, error) {
	if !compress || len(data) == 0 {
		return data, nil
	}

	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func maybeDecompress(data []byte, compressed bool) ([]byte, error) {
	if !compressed || len(data) == 0 {
		return data, nil
	}

	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

// Ensure MessageArchiveAdapter implements out.MessageArchive
var _ out.MessageArchive = (*MessageArchiveAdapter)(nil)
