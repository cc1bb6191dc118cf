package service

import (
	"context"

	"go.uber.org/zap"
)

// TranscriptionService turns an uploaded audio clip into text via the model.
type TranscriptionService struct {
	generator Generator
	logger    *zap.Logger
}

func NewTranscriptionService(generator Generator, logger *zap.Logger) *TranscriptionService {
	return &TranscriptionService{
		generator: generator,
		logger:    logger,
	}
}

// Transcribe sends the audio bytes with a transcription prompt and returns
// the model's text verbatim.
func (s *TranscriptionService) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	text, err := s.generator.Generate(ctx, transcriptionPrompt, &Attachment{
		Data:     audio,
		MIMEType: mimeType,
	})
	if err != nil {
		return "", err
	}

	s.logger.Info("Audio transcribed",
		zap.String("mime_type", mimeType),
		zap.Int("audio_bytes", len(audio)),
		zap.Int("text_length", len(text)),
	)

	return sanitizeUTF8(text), nil
}
