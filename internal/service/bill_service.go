package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sahil-mohite/hackathon-budget-planning-for-senior-citizens/internal/models"

	"go.uber.org/zap"
)

var (
	// ErrNoInput: neither an image, a base64 image nor a text explanation
	// was supplied. Checked before any model call.
	ErrNoInput = errors.New("please provide either an image or a text explanation to process")
	// ErrInvalidImage: the base64 payload could not be decoded.
	ErrInvalidImage = errors.New("invalid base64 image data")
	// ErrNoValidItems: the model produced an items list but every candidate
	// was missing a required field. Distinct from a failed model call.
	ErrNoValidItems = errors.New("no valid items were found to store after validation")
)

// IngestInput carries one bill-ingestion request. When both Image and
// ImageBase64 are present, Image wins.
type IngestInput struct {
	UserID      string
	Image       []byte
	ImageMIME   string
	ImageBase64 string
	Explanation string
}

// IngestResult is either a list of stored records or, on the degraded path, a
// conversational message from the model. Exactly one of the two is set.
type IngestResult struct {
	Stored  []*models.BillItem
	Message string
}

// Conversational reports whether the model answered in prose instead of
// producing storable bill data.
func (r *IngestResult) Conversational() bool {
	return r.Message != ""
}

// BillService orchestrates bill ingestion: build prompt, invoke the model,
// validate the response, store the surviving items.
type BillService struct {
	itemStore BillItemStore
	generator Generator
	logger    *zap.Logger
}

func NewBillService(itemStore BillItemStore, generator Generator, logger *zap.Logger) *BillService {
	return &BillService{
		itemStore: itemStore,
		generator: generator,
		logger:    logger,
	}
}

// Ingest runs one bill through extraction and storage. Items already written
// when a later step fails are not rolled back.
func (s *BillService) Ingest(ctx context.Context, in *IngestInput) (*IngestResult, error) {
	if len(in.Image) == 0 && in.ImageBase64 == "" && strings.TrimSpace(in.Explanation) == "" {
		return nil, ErrNoInput
	}

	att, inputType, err := resolveAttachment(in)
	if err != nil {
		return nil, err
	}

	prompt := BuildExtractionPrompt(in.Explanation)

	raw, err := s.generator.Generate(ctx, prompt, att)
	if err != nil {
		return nil, err
	}

	outcome := ParseExtraction(raw, in.UserID, inputType, time.Now().UTC())
	switch outcome.Kind {
	case OutcomeConversational:
		s.logger.Info("Model responded conversationally",
			zap.String("user_id", in.UserID),
			zap.String("input_type", string(inputType)),
		)
		return &IngestResult{Message: outcome.Message}, nil
	case OutcomeNoValidItems:
		return nil, ErrNoValidItems
	}

	if err := s.itemStore.CreateBatch(ctx, outcome.Items); err != nil {
		return nil, fmt.Errorf("failed to store bill items: %w", err)
	}

	s.logger.Info("Bill items stored",
		zap.String("user_id", in.UserID),
		zap.String("input_type", string(inputType)),
		zap.Int("count", len(outcome.Items)),
	)

	return &IngestResult{Stored: outcome.Items}, nil
}

// resolveAttachment picks the attachment and the input-type tag. An uploaded
// image takes precedence over a base64 one; the explanation only affects the
// tag.
func resolveAttachment(in *IngestInput) (*Attachment, models.InputType, error) {
	hasText := strings.TrimSpace(in.Explanation) != ""

	if len(in.Image) > 0 {
		inputType := models.InputTypeImageOnly
		if hasText {
			inputType = models.InputTypeImage
		}
		return &Attachment{Data: in.Image, MIMEType: in.ImageMIME}, inputType, nil
	}

	if in.ImageBase64 != "" {
		encoded := in.ImageBase64
		mimeType := "image/png"
		// Data-URL form: "data:image/png;base64,...."
		if idx := strings.Index(encoded, ","); idx >= 0 {
			header := encoded[:idx]
			if start := strings.Index(header, ":"); start >= 0 {
				if end := strings.Index(header, ";"); end > start {
					mimeType = header[start+1 : end]
				}
			}
			encoded = encoded[idx+1:]
		}

		data, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, "", ErrInvalidImage
		}

		inputType := models.InputTypeImageOnlyBase64
		if hasText {
			inputType = models.InputTypeImageBase64
		}
		return &Attachment{Data: data, MIMEType: mimeType}, inputType, nil
	}

	return nil, models.InputTypeText, nil
}
