package gateway

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/shilpkart/server/internal/domain"
)

const (
	// DefaultMaxAttachmentBytes bounds uploaded image payloads. The original
	// boundary left this open; 10 MiB is generous for product photography.
	DefaultMaxAttachmentBytes = 10 << 20

	previewEncodedChars = 100
)

// Attachment is a validated, encoded image payload. The encoded form is kept
// for callers that persist it elsewhere; prompts only ever receive a
// reference, never the bytes.
type Attachment struct {
	MediaType string
	Size      int64
	Encoded   string
	Preview   string
}

// NewAttachment validates the declared media type and size bound, then
// derives the base64 form and a bounded preview for caller feedback.
func NewAttachment(data []byte, mediaType string, maxBytes int64) (*Attachment, error) {
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	if !strings.HasPrefix(mediaType, "image/") {
		return nil, fmt.Errorf("%w: media type %q is not an image", domain.ErrInvalidAttachment, mediaType)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", domain.ErrInvalidAttachment)
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxAttachmentBytes
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: payload of %d bytes exceeds limit of %d", domain.ErrInvalidAttachment, len(data), maxBytes)
	}
	encoded := base64.StdEncoding.EncodeToString(data)
	return &Attachment{
		MediaType: mediaType,
		Size:      int64(len(data)),
		Encoded:   encoded,
		Preview:   buildPreview(mediaType, encoded),
	}, nil
}

func buildPreview(mediaType, encoded string) string {
	head := encoded
	if len(head) > previewEncodedChars {
		head = head[:previewEncodedChars]
	}
	return fmt.Sprintf("data:%s;base64,%s...", mediaType, head)
}
