package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fstr/pereval/internal/app/models/dto"
	"github.com/fstr/pereval/internal/app/services"
	"github.com/fstr/pereval/internal/middleware"
	"github.com/fstr/pereval/internal/pkg/apperrors"
)

// PerevalController handles pass registry operations
type PerevalController struct {
	perevalService services.PerevalService
}

// NewPerevalController creates a new PerevalController
func NewPerevalController(perevalService services.PerevalService) *PerevalController {
	return &PerevalController{
		perevalService: perevalService,
	}
}

// SubmitData handles pass submission
// @Summary Submit a new pass record
// @Description Creates a pass record with submitter, coordinates and seasonal difficulty data. The record always enters with status "new".
// @Tags pereval
// @Accept json
// @Produce json
// @Param request body dto.SubmitPerevalRequest true "Pass submission"
// @Success 200 {object} dto.SubmitResponse "Record created"
// @Failure 400 {object} dto.ErrorResponse "Missing or malformed fields"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /pereval/submitData [post]
func (c *PerevalController) SubmitData(ctx *gin.Context) {
	var req dto.SubmitPerevalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Status:  http.StatusBadRequest,
			Message: "Invalid JSON data",
		})
		return
	}

	id, err := c.perevalService.Submit(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SubmitResponse{
		Status:  http.StatusOK,
		Message: "Pass added successfully",
		ID:      id,
	})
}

// GetByID retrieves a pass record by ID
// @Summary Get a pass record
// @Description Retrieves a pass record with its submitter, coordinates, difficulty grades and images
// @Tags pereval
// @Accept json
// @Produce json
// @Param id path int true "Pass ID" Format(int64) minimum(1)
// @Success 200 {object} dto.DataResponse{data=dto.PerevalResponse} "Record retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.DataResponse "Record not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /pereval/submitData/{id} [get]
func (c *PerevalController) GetByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Status:  http.StatusBadRequest,
			Message: "Pass ID must be a valid number",
		})
		return
	}

	pereval, err := c.perevalService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DataResponse{
		Status:  http.StatusOK,
		Message: "Data retrieved successfully",
		Data:    dto.NewPerevalResponse(pereval),
	})
}

// SearchByEmail retrieves all passes submitted under an email
// @Summary Search pass records by submitter email
// @Description Lists every pass record whose submitter has the given email. An unknown email yields an empty list.
// @Tags pereval
// @Accept json
// @Produce json
// @Param user__email query string true "Submitter email"
// @Success 200 {object} dto.DataResponse{data=[]dto.PerevalResponse} "Records retrieved"
// @Failure 400 {object} dto.ErrorResponse "Missing email parameter"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /pereval/submitData [get]
func (c *PerevalController) SearchByEmail(ctx *gin.Context) {
	email := ctx.Query("user__email")
	if email == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Status:  http.StatusBadRequest,
			Message: "user__email query parameter is required",
		})
		return
	}

	perevals, err := c.perevalService.GetByEmail(ctx, email)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DataResponse{
		Status:  http.StatusOK,
		Message: fmt.Sprintf("Found %d passes", len(perevals)),
		Data:    dto.NewPerevalResponseList(perevals),
	})
}

// Update applies a merge patch to a pass record
// @Summary Update a pass record
// @Description Applies a partial update to a record still in "new" status. Success and failure are signaled by the state body flag, a fixed quirk of this API.
// @Tags pereval
// @Accept json
// @Produce json
// @Param id path int true "Pass ID" Format(int64) minimum(1)
// @Param request body dto.UpdatePerevalRequest true "Fields to change"
// @Success 200 {object} dto.UpdateResponse "state 1, record updated"
// @Failure 400 {object} dto.UpdateResponse "state 0, update rejected"
// @Failure 500 {object} dto.UpdateResponse "state 0, server error"
// @Router /pereval/submitData/{id} [patch]
func (c *PerevalController) Update(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.UpdateResponse{
			State:   0,
			Message: "Pass ID must be a valid number",
		})
		return
	}

	var req dto.UpdatePerevalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.UpdateResponse{
			State:   0,
			Message: "Invalid JSON data",
		})
		return
	}

	if err := c.perevalService.Update(ctx, id, &req); err != nil {
		c.handleUpdateError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.UpdateResponse{
		State:   1,
		Message: "Record updated successfully",
	})
}

// handleUpdateError maps errors to the update endpoint's state-flag
// envelope. Business failures answer 400 with state 0; only unexpected
// errors answer 500.
func (c *PerevalController) handleUpdateError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrPerevalNotFound):
		ctx.JSON(http.StatusBadRequest, dto.UpdateResponse{
			State:   0,
			Message: "Pass not found",
		})
	case errors.Is(err, apperrors.ErrNothingToUpdate):
		ctx.JSON(http.StatusBadRequest, dto.UpdateResponse{
			State:   0,
			Message: "No fields to update",
		})
	case errors.Is(err, apperrors.ErrUpdateRejected):
		ctx.JSON(http.StatusBadRequest, dto.UpdateResponse{
			State:   0,
			Message: "Update not allowed: " + rejectionReason(err),
		})
	case errors.Is(err, apperrors.ErrValidationFailed):
		ctx.JSON(http.StatusBadRequest, dto.UpdateResponse{
			State:   0,
			Message: err.Error(),
		})
	default:
		ctx.JSON(http.StatusInternalServerError, dto.UpdateResponse{
			State:   0,
			Message: "Internal server error",
		})
	}
}

func rejectionReason(err error) string {
	var ce *apperrors.CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return "record is not in new status"
}
