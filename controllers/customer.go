package controllers

import (
	"net/http"

	"servicetrack-backend/models"
	"servicetrack-backend/utils"

	"github.com/gin-gonic/gin"
)

// CreateCustomerInput defines the expected JSON structure for creating a customer
type CreateCustomerInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Address string `json:"address"`
}

// UpdateCustomerInput defines the expected JSON structure for updating a customer
type UpdateCustomerInput struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// CreateCustomer creates a new customer
func (h *Handler) CreateCustomer(c *gin.Context) {
	var input CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	customer, err := h.registry.AddCustomer(c.Request.Context(), models.CustomerFields{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Address: input.Address,
	})
	if err != nil {
		h.internalError(c, "Failed to create customer", err)
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// GetCustomers retrieves all customers, optionally narrowed by ?q=
func (h *Handler) GetCustomers(c *gin.Context) {
	customers, err := h.registry.SearchCustomers(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.internalError(c, "Failed to retrieve customers", err)
		return
	}

	c.JSON(http.StatusOK, customers)
}

// GetCustomer retrieves a specific customer by ID
func (h *Handler) GetCustomer(c *gin.Context) {
	customerID, ok := parseID(c, "customer")
	if !ok {
		return
	}

	customer, found, err := h.registry.GetCustomer(c.Request.Context(), customerID)
	if err != nil {
		h.internalError(c, "Failed to retrieve customer", err)
		return
	}
	if !found {
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	}

	c.JSON(http.StatusOK, customer)
}

// GetCustomerAppliances lists the appliances owned by a customer
func (h *Handler) GetCustomerAppliances(c *gin.Context) {
	customerID, ok := parseID(c, "customer")
	if !ok {
		return
	}

	appliances, err := h.registry.ListAppliancesForCustomer(c.Request.Context(), customerID)
	if err != nil {
		h.internalError(c, "Failed to retrieve appliances", err)
		return
	}

	c.JSON(http.StatusOK, appliances)
}

// UpdateCustomer updates an existing customer
func (h *Handler) UpdateCustomer(c *gin.Context) {
	customerID, ok := parseID(c, "customer")
	if !ok {
		return
	}

	var input UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Retrieve existing customer
	customer, found, err := h.registry.GetCustomer(c.Request.Context(), customerID)
	if err != nil {
		h.internalError(c, "Failed to retrieve customer", err)
		return
	}
	if !found {
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Email != nil {
		customer.Email = *input.Email
	}
	if input.Phone != nil {
		customer.Phone = *input.Phone
	}
	if input.Address != nil {
		customer.Address = *input.Address
	}
	if customer.Name == "" || customer.Email == "" || customer.Phone == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Name, email and phone are required")
		return
	}

	updated, err := h.registry.UpdateCustomer(c.Request.Context(), customer)
	if err != nil {
		h.internalError(c, "Failed to update customer", err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteCustomer deletes a customer together with its appliances
func (h *Handler) DeleteCustomer(c *gin.Context) {
	customerID, ok := parseID(c, "customer")
	if !ok {
		return
	}

	removed, err := h.registry.DeleteCustomer(c.Request.Context(), customerID)
	if err != nil {
		h.internalError(c, "Failed to delete customer", err)
		return
	}
	if !removed {
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}
