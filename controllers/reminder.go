// controllers/reminder.go
package controllers

import (
	"errors"
	"net/http"

	"servicetrack-backend/models"
	"servicetrack-backend/services"
	"servicetrack-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetUpcomingReminders lists the services due within the next week
func (h *Handler) GetUpcomingReminders(c *gin.Context) {
	reminders, ok := h.upcomingReminders(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, reminders)
}

func (h *Handler) upcomingReminders(c *gin.Context) ([]models.ServiceReminder, bool) {
	reminders, err := h.registry.UpcomingReminders(c.Request.Context(), h.registry.Now())
	if err != nil {
		h.reminderError(c, err)
		return nil, false
	}
	return reminders, true
}

func (h *Handler) reminderError(c *gin.Context, err error) {
	var integrityErr *services.DataIntegrityError
	if errors.As(err, &integrityErr) {
		h.log.Error("reminder query aborted",
			zap.Stringer("appliance_id", integrityErr.ApplianceID),
			zap.Stringer("customer_id", integrityErr.CustomerID),
		)
		utils.RespondWithError(c, http.StatusInternalServerError, "Data integrity error: "+err.Error())
		return
	}
	h.internalError(c, "Failed to retrieve reminders", err)
}
