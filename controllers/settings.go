package controllers

import (
	"net/http"

	"servicetrack-backend/utils"

	"github.com/gin-gonic/gin"
)

type UpdateSettingsInput struct {
	EmailNotifications *bool `json:"emailNotifications"`
	ReminderDays       *int  `json:"reminderDays" binding:"omitempty,min=1"`
	DailyDigest        *bool `json:"dailyDigest"`
}

// GetSettings returns the notification preferences. They are stored only.
func (h *Handler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.registry.Settings())
}

func (h *Handler) UpdateSettings(c *gin.Context) {
	var input UpdateSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	settings := h.registry.Settings()
	if input.EmailNotifications != nil {
		settings.EmailNotifications = *input.EmailNotifications
	}
	if input.ReminderDays != nil {
		settings.ReminderDays = *input.ReminderDays
	}
	if input.DailyDigest != nil {
		settings.DailyDigest = *input.DailyDigest
	}

	updated, err := h.registry.UpdateSettings(settings)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, updated)
}
