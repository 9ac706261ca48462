package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cash-advance-monitoring/cam-api/internal/middleware"
	"github.com/cash-advance-monitoring/cam-api/internal/models"
	"github.com/cash-advance-monitoring/cam-api/internal/service"
	appErrors "github.com/cash-advance-monitoring/cam-api/pkg/errors"
	"github.com/cash-advance-monitoring/cam-api/pkg/export"
	"github.com/cash-advance-monitoring/cam-api/pkg/response"
)

type cashAdvanceService interface {
	Create(ctx context.Context, req service.CreateCashAdvanceRequest) (*models.CashAdvance, error)
	Get(ctx context.Context, id string) (*models.CashAdvance, error)
	List(ctx context.Context, filter models.CashAdvanceFilter) ([]models.CashAdvance, error)
	ListForStaff(ctx context.Context, staffID, status string) ([]models.CashAdvance, error)
	UpdateStatus(ctx context.Context, id string, req service.UpdateStatusRequest, actingStaffID string) (*models.CashAdvance, error)
	AddRetirementNotes(ctx context.Context, id string, req service.RetirementRequest) (*models.CashAdvance, error)
	Stats(ctx context.Context) (*models.CashAdvanceStats, error)
	BuildExport(ctx context.Context, filter models.CashAdvanceFilter) (export.Dataset, error)
}

// CashAdvanceHandler wires the cash-advance service to HTTP routes.
type CashAdvanceHandler struct {
	advances cashAdvanceService
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
}

// NewCashAdvanceHandler constructs a CashAdvanceHandler.
func NewCashAdvanceHandler(advances cashAdvanceService) *CashAdvanceHandler {
	return &CashAdvanceHandler{
		advances: advances,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
	}
}

// Create godoc
// @Summary Create cash advance request
// @Tags Cash Advances
// @Accept json
// @Produce json
// @Param payload body service.CreateCashAdvanceRequest true "Request payload"
// @Success 201 {object} map[string]interface{}
// @Router /api/cash-advance [post]
func (h *CashAdvanceHandler) Create(c *gin.Context) {
	var req service.CreateCashAdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid cash advance payload"))
		return
	}
	advance, err := h.advances.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, response.Fields{
		"message":     "Cash advance request submitted successfully",
		"cashAdvance": advance,
	})
}

// List godoc
// @Summary List cash advance requests
// @Tags Cash Advances
// @Produce json
// @Param status query string false "Filter by status"
// @Param staffId query string false "Filter by staff record ID"
// @Param page query int false "Accepted but not applied"
// @Param limit query int false "Accepted but not applied"
// @Success 200 {object} map[string]interface{}
// @Router /api/cash-advance [get]
func (h *CashAdvanceHandler) List(c *gin.Context) {
	filter := models.CashAdvanceFilter{
		Status:  c.Query("status"),
		StaffID: c.Query("staffId"),
	}
	// Pagination params are accepted for contract compatibility but not
	// applied to the query.
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "10")); err == nil {
		filter.Limit = limit
	}

	advances, err := h.advances.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, response.Fields{"count": len(advances), "cashAdvances": advances})
}

// ListForStaff godoc
// @Summary List cash advances for one staff member
// @Tags Cash Advances
// @Produce json
// @Param staffId path string true "Staff record ID"
// @Param status query string false "Filter by status"
// @Success 200 {object} map[string]interface{}
// @Router /api/cash-advance/staff/{staffId} [get]
func (h *CashAdvanceHandler) ListForStaff(c *gin.Context) {
	advances, err := h.advances.ListForStaff(c.Request.Context(), c.Param("staffId"), c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, response.Fields{"count": len(advances), "cashAdvances": advances})
}

// Get godoc
// @Summary Get one cash advance request
// @Tags Cash Advances
// @Produce json
// @Param id path string true "Cash advance ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/cash-advance/{id} [get]
func (h *CashAdvanceHandler) Get(c *gin.Context) {
	advance, err := h.advances.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, response.Fields{"cashAdvance": advance})
}

// UpdateStatus godoc
// @Summary Transition cash advance status
// @Tags Cash Advances
// @Accept json
// @Produce json
// @Param id path string true "Cash advance ID"
// @Param payload body service.UpdateStatusRequest true "Status payload"
// @Success 200 {object} map[string]interface{}
// @Router /api/cash-advance/{id}/status [put]
func (h *CashAdvanceHandler) UpdateStatus(c *gin.Context) {
	var req service.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Status is required"))
		return
	}
	advance, err := h.advances.UpdateStatus(c.Request.Context(), c.Param("id"), req, middleware.ActingStaffID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, response.Fields{
		"message":     fmt.Sprintf("Cash advance request %s successfully", advance.Status),
		"cashAdvance": advance,
	})
}

// AddRetirementNotes godoc
// @Summary Add retirement notes
// @Tags Cash Advances
// @Accept json
// @Produce json
// @Param id path string true "Cash advance ID"
// @Param payload body service.RetirementRequest true "Retirement payload"
// @Success 200 {object} map[string]interface{}
// @Router /api/cash-advance/{id}/retirement [put]
func (h *CashAdvanceHandler) AddRetirementNotes(c *gin.Context) {
	var req service.RetirementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Retirement notes are required"))
		return
	}
	advance, err := h.advances.AddRetirementNotes(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, response.Fields{
		"message":     "Retirement notes added successfully",
		"cashAdvance": advance,
	})
}

// Stats godoc
// @Summary Aggregate cash advance statistics
// @Tags Cash Advances
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/cash-advance/stats/overview [get]
func (h *CashAdvanceHandler) Stats(c *gin.Context) {
	stats, err := h.advances.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, response.Fields{"stats": stats})
}

// Export godoc
// @Summary Export cash advances as CSV or PDF
// @Tags Cash Advances
// @Produce octet-stream
// @Param format query string false "csv (default) or pdf"
// @Param status query string false "Filter by status"
// @Param staffId query string false "Filter by staff record ID"
// @Router /api/cash-advance/export [get]
func (h *CashAdvanceHandler) Export(c *gin.Context) {
	filter := models.CashAdvanceFilter{
		Status:  c.Query("status"),
		StaffID: c.Query("staffId"),
	}
	dataset, err := h.advances.BuildExport(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	format := c.DefaultQuery("format", "csv")
	switch format {
	case "csv":
		payload, err := h.csv.Render(dataset)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export"))
			return
		}
		c.Header("Content-Disposition", `attachment; filename="cash-advances.csv"`)
		c.Data(http.StatusOK, "text/csv", payload)
	case "pdf":
		payload, err := h.pdf.Render(dataset, "Cash Advance Requests")
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export"))
			return
		}
		c.Header("Content-Disposition", `attachment; filename="cash-advances.pdf"`)
		c.Data(http.StatusOK, "application/pdf", payload)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "unsupported export format"))
	}
}
