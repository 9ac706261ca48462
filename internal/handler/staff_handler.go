package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cash-advance-monitoring/cam-api/internal/models"
	"github.com/cash-advance-monitoring/cam-api/internal/service"
	appErrors "github.com/cash-advance-monitoring/cam-api/pkg/errors"
	"github.com/cash-advance-monitoring/cam-api/pkg/response"
)

type staffService interface {
	Register(ctx context.Context, req service.RegisterStaffRequest) (*models.Staff, string, error)
	Get(ctx context.Context, id string) (*models.Staff, error)
	List(ctx context.Context) ([]models.Staff, error)
	Search(ctx context.Context, term string) ([]models.Staff, error)
	Update(ctx context.Context, id string, req service.UpdateStaffRequest) (*models.Staff, error)
	Delete(ctx context.Context, id string) error
}

// StaffHandler wires the staff service to HTTP routes.
type StaffHandler struct {
	staff staffService
}

// NewStaffHandler constructs a StaffHandler.
func NewStaffHandler(staff staffService) *StaffHandler {
	return &StaffHandler{staff: staff}
}

// Register godoc
// @Summary Register staff
// @Tags Staff
// @Accept json
// @Produce json
// @Param payload body service.RegisterStaffRequest true "Staff payload"
// @Success 201 {object} map[string]interface{}
// @Router /api/staff/register [post]
func (h *StaffHandler) Register(c *gin.Context) {
	var req service.RegisterStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid staff payload"))
		return
	}
	staff, token, err := h.staff.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, response.Fields{
		"message": "Staff registered successfully",
		"token":   token,
		"staff":   staff,
	})
}

// List godoc
// @Summary List staff
// @Tags Staff
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/staff [get]
func (h *StaffHandler) List(c *gin.Context) {
	staff, err := h.staff.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, response.Fields{"count": len(staff), "staff": staff})
}

// Search godoc
// @Summary Search staff
// @Tags Staff
// @Produce json
// @Param query path string true "Search term"
// @Success 200 {object} map[string]interface{}
// @Router /api/staff/search/{query} [get]
func (h *StaffHandler) Search(c *gin.Context) {
	staff, err := h.staff.Search(c.Request.Context(), c.Param("query"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, response.Fields{"count": len(staff), "staff": staff})
}

// Get godoc
// @Summary Get staff detail
// @Tags Staff
// @Produce json
// @Param id path string true "Staff record ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/staff/{id} [get]
func (h *StaffHandler) Get(c *gin.Context) {
	staff, err := h.staff.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, response.Fields{"staff": staff})
}

// Update godoc
// @Summary Update staff
// @Tags Staff
// @Accept json
// @Produce json
// @Param id path string true "Staff record ID"
// @Param payload body service.UpdateStaffRequest true "Partial staff payload"
// @Success 200 {object} map[string]interface{}
// @Router /api/staff/{id} [put]
func (h *StaffHandler) Update(c *gin.Context) {
	var req service.UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid staff payload"))
		return
	}
	staff, err := h.staff.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, response.Fields{"message": "Staff updated successfully", "staff": staff})
}

// Delete godoc
// @Summary Delete staff
// @Tags Staff
// @Param id path string true "Staff record ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/staff/{id} [delete]
func (h *StaffHandler) Delete(c *gin.Context) {
	if err := h.staff.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, response.Fields{"message": "Staff deleted successfully"})
}
