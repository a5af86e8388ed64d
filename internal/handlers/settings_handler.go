package handlers

import (
	"encoding/json"
	"log/slog"
	"strconv"

	"github.com/clinichq/clinic-backend/internal/dto"
	"github.com/clinichq/clinic-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsHandler serves clinic-wide settings: public read, admin write.
type SettingsHandler struct {
	db *gorm.DB
}

func NewSettingsHandler(db *gorm.DB) *SettingsHandler {
	return &SettingsHandler{db: db}
}

// GetSettings returns all settings as a typed key-value map.
func (h *SettingsHandler) GetSettings(c *fiber.Ctx) error {
	var settings []models.Setting
	if err := h.db.Find(&settings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch settings",
		})
	}

	result := make(map[string]interface{})
	for _, s := range settings {
		var value interface{}
		switch s.Type {
		case "bool":
			value, _ = strconv.ParseBool(s.Value)
		case "int":
			value, _ = strconv.Atoi(s.Value)
		case "json":
			json.Unmarshal([]byte(s.Value), &value)
		default:
			value = s.Value
		}
		result[s.Key] = value
	}

	return c.JSON(result)
}

// SetKey upserts a setting (admin only).
func (h *SettingsHandler) SetKey(c *fiber.Ctx) error {
	key := c.Params("key", "")
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Key parameter is required",
		})
	}

	var payload struct {
		Value string `json:"value"`
		Type  string `json:"type"` // string, bool, int, json
	}
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if payload.Value == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Value is required",
		})
	}
	if payload.Type == "" {
		payload.Type = "string"
	}

	setting := models.Setting{Key: key, Value: payload.Value, Type: payload.Type}
	err := h.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "type", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to save setting",
		})
	}

	return c.JSON(fiber.Map{"key": key, "value": payload.Value, "type": payload.Type})
}

// DeleteKey removes a setting (admin only).
func (h *SettingsHandler) DeleteKey(c *fiber.Ctx) error {
	key := c.Params("key", "")
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Key parameter is required",
		})
	}

	result := h.db.Where("key = ?", key).Delete(&models.Setting{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete setting",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Setting not found",
		})
	}

	return c.JSON(fiber.Map{"message": "Setting deleted"})
}

// SeedDefaults inserts missing default settings at startup.
func (h *SettingsHandler) SeedDefaults() {
	defaults := []models.Setting{
		{Key: "clinic_name", Value: "Clinic", Type: "string"},
		{Key: "opening_hours", Value: `{"mon-fri": "08:00-18:00", "sat": "09:00-13:00"}`, Type: "json"},
		{Key: "appointments_enabled", Value: "true", Type: "bool"},
		{Key: "max_upcoming_appointments", Value: "5", Type: "int"},
	}

	for _, d := range defaults {
		err := h.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoNothing: true,
		}).Create(&d).Error
		if err != nil {
			slog.Error("failed to seed setting", "key", d.Key, "error", err)
		}
	}
}
