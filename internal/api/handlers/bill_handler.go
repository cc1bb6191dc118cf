package handlers

import (
	"errors"
	"io"
	"strings"
	"time"

	"github.com/sahil-mohite/hackathon-budget-planning-for-senior-citizens/internal/dto"
	"github.com/sahil-mohite/hackathon-budget-planning-for-senior-citizens/internal/models"
	"github.com/sahil-mohite/hackathon-budget-planning-for-senior-citizens/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type BillHandler struct {
	billService          *service.BillService
	transcriptionService *service.TranscriptionService
	maxUploadBytes       int64
	logger               *zap.Logger
}

func NewBillHandler(billService *service.BillService, transcriptionService *service.TranscriptionService, maxUploadMB int64, logger *zap.Logger) *BillHandler {
	return &BillHandler{
		billService:          billService,
		transcriptionService: transcriptionService,
		maxUploadBytes:       maxUploadMB << 20,
		logger:               logger,
	}
}

// Process godoc
// @Summary Extract and store bill line items from an image or text description
// @Tags bills
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file false "Bill photo"
// @Param image_base64 formData string false "Bill photo as a base64 data URL"
// @Param user_explanation formData string false "Free-text description of the purchase"
// @Success 201 {array} dto.BillItemResponse
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /process [post]
func (h *BillHandler) Process(c *fiber.Ctx) error {
	input := service.IngestInput{
		UserID:      getUserEmail(c),
		ImageBase64: c.FormValue("image_base64"),
		Explanation: c.FormValue("user_explanation"),
	}

	if fileHeader, err := c.FormFile("image"); err == nil && fileHeader != nil {
		if fileHeader.Size > h.maxUploadBytes {
			return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
				"error": "Uploaded image is too large",
			})
		}
		contentType := fileHeader.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "image/") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Uploaded file must be an image",
			})
		}

		file, err := fileHeader.Open()
		if err != nil {
			h.logger.Error("Failed to open uploaded image", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to read uploaded image",
			})
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			h.logger.Error("Failed to read uploaded image", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to read uploaded image",
			})
		}
		input.Image = data
		input.ImageMIME = contentType
	}

	result, err := h.billService.Ingest(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoInput):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Please provide either an image or a text explanation to process.",
			})
		case errors.Is(err, service.ErrInvalidImage):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid base64 image data",
			})
		case errors.Is(err, service.ErrNoValidItems):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": "No valid items could be extracted from the input",
			})
		case errors.Is(err, service.ErrNotConfigured):
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "AI service is not configured",
			})
		}
		h.logger.Error("Bill processing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Bill processing failed",
		})
	}

	if result.Conversational() {
		return c.Status(fiber.StatusCreated).JSON(dto.ConversationalResponse{
			Message: result.Message,
		})
	}

	items := make([]dto.BillItemResponse, 0, len(result.Stored))
	for _, item := range result.Stored {
		items = append(items, billItemResponse(item))
	}
	return c.Status(fiber.StatusCreated).JSON(items)
}

func billItemResponse(item *models.BillItem) dto.BillItemResponse {
	return dto.BillItemResponse{
		ID:          item.ID.String(),
		UserID:      item.UserID,
		StoreName:   item.StoreName,
		BillDate:    item.BillDate,
		TotalAmount: item.TotalAmount,
		ItemName:    item.ItemName,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		Category:    string(item.Category),
		InputType:   string(item.InputType),
		CreatedAt:   item.CreatedAt.Format(time.RFC3339),
	}
}

// Transcribe godoc
// @Summary Transcribe an uploaded audio recording
// @Tags bills
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param audio_file formData file true "Audio recording"
// @Success 200 {object} dto.TranscriptionResponse
// @Failure 400 {object} map[string]string
// @Router /transcribe [post]
func (h *BillHandler) Transcribe(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("audio_file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "audio_file is required",
		})
	}
	if fileHeader.Size > h.maxUploadBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
			"error": "Uploaded audio is too large",
		})
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "audio/") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Uploaded file must be audio",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("Failed to open uploaded audio", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read uploaded audio",
		})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("Failed to read uploaded audio", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read uploaded audio",
		})
	}

	text, err := h.transcriptionService.Transcribe(c.Context(), data, contentType)
	if err != nil {
		if errors.Is(err, service.ErrNotConfigured) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "AI service is not configured",
			})
		}
		h.logger.Error("Transcription failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Transcription failed",
		})
	}

	return c.JSON(dto.TranscriptionResponse{Text: text})
}
