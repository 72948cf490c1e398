package controllers

import (
	"net/http"
	"time"

	"servicetrack-backend/models"
	"servicetrack-backend/services"
	"servicetrack-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateApplianceInput defines the expected JSON structure for creating an appliance
type CreateApplianceInput struct {
	CustomerID            string  `json:"customerId" binding:"required,uuid"`
	Type                  string  `json:"type" binding:"required"`
	Model                 string  `json:"model" binding:"required"`
	SerialNumber          string  `json:"serialNumber" binding:"required"`
	PurchaseDate          string  `json:"purchaseDate" binding:"required"`
	LastServiceDate       *string `json:"lastServiceDate"`
	ServiceIntervalMonths int     `json:"serviceIntervalMonths" binding:"min=0"` // 0 selects the type default
	Notes                 string  `json:"notes"`
}

// UpdateApplianceInput defines the expected JSON structure for updating an appliance.
// An empty lastServiceDate clears it.
type UpdateApplianceInput struct {
	CustomerID            *string `json:"customerId" binding:"omitempty,uuid"`
	Type                  *string `json:"type"`
	Model                 *string `json:"model"`
	SerialNumber          *string `json:"serialNumber"`
	PurchaseDate          *string `json:"purchaseDate"`
	LastServiceDate       *string `json:"lastServiceDate"`
	ServiceIntervalMonths *int    `json:"serviceIntervalMonths" binding:"omitempty,min=1"`
	Notes                 *string `json:"notes"`
}

type RecordServiceInput struct {
	ServiceDate string `json:"serviceDate" binding:"required"`
}

// CreateAppliance registers an appliance for an existing customer
func (h *Handler) CreateAppliance(c *gin.Context) {
	var input CreateApplianceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	applianceType, err := models.ParseApplianceType(input.Type)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	purchaseDate, err := utils.ParseTimestamp(input.PurchaseDate)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid purchaseDate: "+err.Error())
		return
	}
	lastServiceDate, err := parseOptionalTimestamp(input.LastServiceDate)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid lastServiceDate: "+err.Error())
		return
	}

	customerID := uuid.MustParse(input.CustomerID)
	if !h.customerExists(c, customerID) {
		return
	}

	appliance, err := h.registry.AddAppliance(c.Request.Context(), models.ApplianceFields{
		CustomerID:            customerID,
		Type:                  applianceType,
		Model:                 input.Model,
		SerialNumber:          input.SerialNumber,
		PurchaseDate:          purchaseDate,
		LastServiceDate:       lastServiceDate,
		ServiceIntervalMonths: input.ServiceIntervalMonths,
		Notes:                 input.Notes,
	})
	if err != nil {
		h.internalError(c, "Failed to create appliance", err)
		return
	}

	c.JSON(http.StatusCreated, appliance)
}

// GetAppliances retrieves all appliances, optionally narrowed by ?q= and ?type=
func (h *Handler) GetAppliances(c *gin.Context) {
	filter := services.ApplianceFilter{Query: c.Query("q")}
	if raw := c.Query("type"); raw != "" && raw != "all" {
		applianceType, err := models.ParseApplianceType(raw)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		filter.Type = applianceType
	}

	appliances, err := h.registry.SearchAppliances(c.Request.Context(), filter)
	if err != nil {
		h.internalError(c, "Failed to retrieve appliances", err)
		return
	}

	c.JSON(http.StatusOK, appliances)
}

// GetAppliance retrieves a specific appliance by ID
func (h *Handler) GetAppliance(c *gin.Context) {
	applianceID, ok := parseID(c, "appliance")
	if !ok {
		return
	}

	appliance, found, err := h.registry.GetAppliance(c.Request.Context(), applianceID)
	if err != nil {
		h.internalError(c, "Failed to retrieve appliance", err)
		return
	}
	if !found {
		utils.RespondWithError(c, http.StatusNotFound, "Appliance not found")
		return
	}

	c.JSON(http.StatusOK, appliance)
}

// UpdateAppliance updates an appliance; nextServiceDate is always recomputed
func (h *Handler) UpdateAppliance(c *gin.Context) {
	applianceID, ok := parseID(c, "appliance")
	if !ok {
		return
	}

	var input UpdateApplianceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	appliance, found, err := h.registry.GetAppliance(c.Request.Context(), applianceID)
	if err != nil {
		h.internalError(c, "Failed to retrieve appliance", err)
		return
	}
	if !found {
		utils.RespondWithError(c, http.StatusNotFound, "Appliance not found")
		return
	}

	if input.CustomerID != nil {
		customerID := uuid.MustParse(*input.CustomerID)
		if customerID != appliance.CustomerID && !h.customerExists(c, customerID) {
			return
		}
		appliance.CustomerID = customerID
	}
	if input.Type != nil {
		if appliance.Type, err = models.ParseApplianceType(*input.Type); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
	}
	if input.Model != nil {
		appliance.Model = *input.Model
	}
	if input.SerialNumber != nil {
		appliance.SerialNumber = *input.SerialNumber
	}
	if input.PurchaseDate != nil {
		if appliance.PurchaseDate, err = utils.ParseTimestamp(*input.PurchaseDate); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid purchaseDate: "+err.Error())
			return
		}
	}
	if input.LastServiceDate != nil {
		if appliance.LastServiceDate, err = parseOptionalTimestamp(input.LastServiceDate); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid lastServiceDate: "+err.Error())
			return
		}
	}
	if input.ServiceIntervalMonths != nil {
		appliance.ServiceIntervalMonths = *input.ServiceIntervalMonths
	}
	if input.Notes != nil {
		appliance.Notes = *input.Notes
	}
	if appliance.Model == "" || appliance.SerialNumber == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Model and serial number are required")
		return
	}

	updated, err := h.registry.UpdateAppliance(c.Request.Context(), appliance)
	if err != nil {
		h.internalError(c, "Failed to update appliance", err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteAppliance deletes an appliance
func (h *Handler) DeleteAppliance(c *gin.Context) {
	applianceID, ok := parseID(c, "appliance")
	if !ok {
		return
	}

	removed, err := h.registry.DeleteAppliance(c.Request.Context(), applianceID)
	if err != nil {
		h.internalError(c, "Failed to delete appliance", err)
		return
	}
	if !removed {
		utils.RespondWithError(c, http.StatusNotFound, "Appliance not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appliance deleted successfully"})
}

// RecordService records a completed service and reschedules the next one
func (h *Handler) RecordService(c *gin.Context) {
	applianceID, ok := parseID(c, "appliance")
	if !ok {
		return
	}

	var input RecordServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	serviceDate, err := utils.ParseTimestamp(input.ServiceDate)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid serviceDate: "+err.Error())
		return
	}

	appliance, found, err := h.registry.RecordService(c.Request.Context(), applianceID, serviceDate)
	if err != nil {
		h.internalError(c, "Failed to record service", err)
		return
	}
	if !found {
		utils.RespondWithError(c, http.StatusNotFound, "Appliance not found")
		return
	}

	c.JSON(http.StatusOK, appliance)
}

// GetApplianceTypes lists appliance types with their default service intervals
func (h *Handler) GetApplianceTypes(c *gin.Context) {
	c.JSON(http.StatusOK, h.registry.ApplianceTypes())
}

// customerExists answers 400 and returns false when the customer is unknown,
// so the API never creates appliances that would break the reminder join.
func (h *Handler) customerExists(c *gin.Context, customerID uuid.UUID) bool {
	_, found, err := h.registry.GetCustomer(c.Request.Context(), customerID)
	if err != nil {
		h.internalError(c, "Failed to retrieve customer", err)
		return false
	}
	if !found {
		utils.RespondWithError(c, http.StatusBadRequest, "Customer not found")
		return false
	}
	return true
}

func parseOptionalTimestamp(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := utils.ParseTimestamp(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
