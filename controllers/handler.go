package controllers

import (
	"net/http"

	"servicetrack-backend/services"
	"servicetrack-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler exposes a Registry over HTTP. Required-field validation happens
// here, not in the registry.
type Handler struct {
	registry *services.Registry
	log      *zap.Logger
}

func NewHandler(registry *services.Registry, log *zap.Logger) *Handler {
	return &Handler{registry: registry, log: log}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// parseID reads the :id path parameter, answering 400 when it is not a uuid.
func parseID(c *gin.Context, kind string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+kind+" ID format")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) internalError(c *gin.Context, message string, err error) {
	h.log.Error(message, zap.Error(err), zap.String("path", c.Request.URL.Path))
	utils.RespondWithError(c, http.StatusInternalServerError, message)
}
