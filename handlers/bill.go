package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"washline/services/billing"
	"washline/utils"
)

// BillHandler serves the bill endpoints addressed by bill id.
type BillHandler struct {
	Service billing.BillingService
}

type billPayload struct {
	CustomerID string              `json:"customerId"`
	Items      []billing.ItemInput `json:"items"`
	PaidAmount *float64            `json:"paidAmount"`
	DueDate    *string             `json:"dueDate"`
}

// bindBillPayload parses a bill request body, answering 400 on
// malformed JSON.
func bindBillPayload(c *gin.Context) (billing.BillRequest, bool) {
	var payload billPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid JSON body")
		return billing.BillRequest{}, false
	}
	return billing.BillRequest{
		CustomerID: payload.CustomerID,
		Items:      payload.Items,
		PaidAmount: payload.PaidAmount,
		DueDate:    payload.DueDate,
	}, true
}

// UpsertBillHandler handles PUT /bills/:billId: create-or-replace with
// 201 on create, 200 on replace.
func (h *BillHandler) UpsertBillHandler(c *gin.Context) {
	req, ok := bindBillPayload(c)
	if !ok {
		return
	}
	bill, created, err := h.Service.UpsertBill(c.Request.Context(), c.Param("billId"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, bill)
}

// GetBillHandler handles GET /bills/:billId.
func (h *BillHandler) GetBillHandler(c *gin.Context) {
	bill, err := h.Service.GetBill(c.Request.Context(), c.Param("billId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bill)
}

// DeleteBillHandler handles DELETE /bills/:billId.
func (h *BillHandler) DeleteBillHandler(c *gin.Context) {
	if err := h.Service.DeleteBill(c.Request.Context(), c.Param("billId")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// BillPDFHandler handles GET /bills/:billId/pdf. Rendering is not
// implemented; the endpoint confirms the bill exists and says so.
func (h *BillHandler) BillPDFHandler(c *gin.Context) {
	billID := c.Param("billId")
	if _, err := h.Service.GetSummary(c.Request.Context(), billID); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "PDF generation not yet implemented. Integrate a renderer.",
		"billId":  billID,
	})
}
