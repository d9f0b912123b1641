package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"washline/services/billing"
	"washline/services/customer"
	"washline/utils"
)

// CustomerHandler serves the customer endpoints, including the nested
// bill listing/creation routes.
type CustomerHandler struct {
	Service customer.CustomerService
	Billing billing.BillingService
}

// ListCustomersHandler handles GET /customers.
func (h *CustomerHandler) ListCustomersHandler(c *gin.Context) {
	customers, err := h.Service.List(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": customers})
}

// CreateCustomerHandler handles POST /customers.
func (h *CustomerHandler) CreateCustomerHandler(c *gin.Context) {
	var req customer.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	created, err := h.Service.Create(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetCustomerHandler handles GET /customers/:customerId.
func (h *CustomerHandler) GetCustomerHandler(c *gin.Context) {
	cust, err := h.Service.Get(c.Request.Context(), c.Param("customerId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cust)
}

// DeleteCustomerHandler handles DELETE /customers/:customerId, cascading
// to every bill the customer owns.
func (h *CustomerHandler) DeleteCustomerHandler(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("customerId")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListCustomerBillsHandler handles GET /customers/:customerId/bills.
func (h *CustomerHandler) ListCustomerBillsHandler(c *gin.Context) {
	bills, err := h.Billing.ListByCustomer(c.Request.Context(), c.Param("customerId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": bills})
}

// CreateCustomerBillHandler handles POST /customers/:customerId/bills.
func (h *CustomerHandler) CreateCustomerBillHandler(c *gin.Context) {
	req, ok := bindBillPayload(c)
	if !ok {
		return
	}
	bill, err := h.Billing.CreateBill(c.Request.Context(), c.Param("customerId"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bill)
}
