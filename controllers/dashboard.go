package controllers

import (
	"net/http"

	"servicetrack-backend/models"

	"github.com/gin-gonic/gin"
)

type DashboardOverview struct {
	models.DashboardStats
	UpcomingReminders []models.ServiceReminder `json:"upcomingReminders"`
}

func (h *Handler) GetDashboardOverview(c *gin.Context) {
	stats, reminders, err := h.registry.Overview(c.Request.Context(), h.registry.Now())
	if err != nil {
		h.reminderError(c, err)
		return
	}

	c.JSON(http.StatusOK, DashboardOverview{
		DashboardStats:    stats,
		UpcomingReminders: reminders,
	})
}
