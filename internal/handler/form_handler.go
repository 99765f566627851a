package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/lead-capture/web"
)

// FormHandler serves the lead capture page.
type FormHandler struct {
	page []byte
}

// NewFormHandler returns a handler for the embedded form page.
func NewFormHandler() *FormHandler {
	return &FormHandler{page: web.FormPage}
}

// Show handles GET / requests.
func (h *FormHandler) Show(c echo.Context) error {
	return c.HTMLBlob(http.StatusOK, h.page)
}
