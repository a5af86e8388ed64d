package handlers

import (
	"errors"

	"github.com/clinichq/clinic-backend/internal/dto"
	"github.com/clinichq/clinic-backend/internal/middleware"
	"github.com/clinichq/clinic-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type MediaHandler struct {
	media *services.MediaService
}

func NewMediaHandler(media *services.MediaService) *MediaHandler {
	return &MediaHandler{media: media}
}

// Upload accepts a multipart form with a "file" field.
func (h *MediaHandler) Upload(c *fiber.Ctx) error {
	callerID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "file field is required",
		})
	}

	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "failed to read uploaded file",
		})
	}
	defer f.Close()

	resp, err := h.media.Upload(callerID, fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"), fileHeader.Size, f)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFileRequired),
			errors.Is(err, services.ErrFileTooLarge),
			errors.Is(err, services.ErrUnsupportedType):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to upload file",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *MediaHandler) Delete(c *fiber.Ctx) error {
	callerID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	if err := h.media.Delete(c.Params("publicId"), callerID, middleware.GetRole(c)); err != nil {
		switch {
		case errors.Is(err, services.ErrMediaNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrNotOwner):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Forbidden: not the owner",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete media",
		})
	}

	return c.JSON(fiber.Map{"message": "Media deleted"})
}

func (h *MediaHandler) ListByOwner(c *fiber.Ctx) error {
	ownerID, err := uuid.Parse(c.Params("ownerId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid owner id",
		})
	}

	callerID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	items, err := h.media.ListByOwner(ownerID, callerID, middleware.GetRole(c))
	if err != nil {
		if errors.Is(err, services.ErrNotOwner) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Forbidden: not the owner",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list media",
		})
	}

	return c.JSON(items)
}

// Serve streams a blob by public id. Public: the id is an unguessable
// handle.
func (h *MediaHandler) Serve(c *fiber.Ctx) error {
	media, rc, err := h.media.Open(c.Params("publicId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Media not found",
		})
	}

	c.Set(fiber.HeaderContentType, media.ContentType)
	return c.SendStream(rc, int(media.SizeBytes))
}
