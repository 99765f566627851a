package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/octobees/lead-capture/internal/dto"
	middlewarepkg "github.com/octobees/lead-capture/internal/middleware"
	"github.com/octobees/lead-capture/internal/service"
)

// LeadHandler exposes the duplicate check and lead creation endpoints.
type LeadHandler struct {
	lookup *service.LookupService
	leads  *service.LeadsService
	log    *zap.SugaredLogger
}

// NewLeadHandler constructs a LeadHandler.
func NewLeadHandler(lookup *service.LookupService, leads *service.LeadsService, log *zap.SugaredLogger) *LeadHandler {
	return &LeadHandler{lookup: lookup, leads: leads, log: log}
}

// Check handles POST /api/check requests.
func (h *LeadHandler) Check(c echo.Context) error {
	var req dto.CheckRequest
	if err := bindJSON(c, &req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	if err := c.Validate(&req); err != nil {
		return Error(c, http.StatusBadRequest, "Missing email or phone")
	}

	ctx := c.Request().Context()
	var (
		result service.LookupResult
		err    error
	)
	if req.Email != "" {
		result, err = h.lookup.LookupEmail(ctx, req.Email)
	} else {
		result, err = h.lookup.LookupPhone(ctx, req.Phone)
	}
	if err != nil {
		h.logCRMError("check", middlewarepkg.RequestIDFromContext(c), err)
		return Error(c, http.StatusBadGateway, "CRM lookup failed")
	}

	return c.JSON(http.StatusOK, checkResponse(result))
}

// Create handles POST /api/create requests.
func (h *LeadHandler) Create(c echo.Context) error {
	var req dto.CreateRequest
	if err := bindJSON(c, &req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Address = strings.TrimSpace(req.Address)
	if err := c.Validate(&req); err != nil {
		return Error(c, http.StatusBadRequest, "Missing fields")
	}

	created, err := h.leads.Create(c.Request().Context(), service.LeadInput{
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		rid := middlewarepkg.RequestIDFromContext(c)
		var createErr *service.CreateLeadError
		switch {
		case errors.As(err, &createErr):
			h.log.Warnw("create", "request_id", rid, "error", createErr.Message)
			return ErrorWithDetails(c, http.StatusInternalServerError, createErr.Message, createErr.Details)
		case errors.Is(err, service.ErrCRMUnavailable):
			h.logCRMError("create", rid, err)
			return Error(c, http.StatusBadGateway, "CRM request failed")
		default:
			h.log.Errorw("create", "request_id", rid, "error", err)
			return Error(c, http.StatusInternalServerError, "Could not create lead")
		}
	}

	return c.JSON(http.StatusOK, dto.CreateResponse{Success: true, ID: created.ID, URL: created.URL})
}

// logCRMError keeps client disconnects out of the error log.
func (h *LeadHandler) logCRMError(op, rid string, err error) {
	if errors.Is(err, context.Canceled) {
		h.log.Warnw(op, "request_id", rid, "error", err, "reason", "client canceled")
		return
	}
	h.log.Errorw(op, "request_id", rid, "error", err)
}

func checkResponse(result service.LookupResult) dto.CheckResponse {
	switch r := result.(type) {
	case service.Found:
		return dto.CheckResponse{Found: true, Where: string(r.Where), ID: r.ID}
	default:
		return dto.CheckResponse{Found: false}
	}
}
