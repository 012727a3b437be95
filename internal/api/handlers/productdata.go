package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ktnkk/crosslist/internal/source"
)

// ProductDataHandler accepts product-data fetch requests from source
// marketplaces.
type ProductDataHandler struct {
	intake *source.Intake
}

// NewProductDataHandler creates a new ProductDataHandler.
func NewProductDataHandler(intake *source.Intake) *ProductDataHandler {
	return &ProductDataHandler{intake: intake}
}

// Create handles POST /api/v1/product-data.
func (h *ProductDataHandler) Create(c echo.Context) error {
	const failMsg = "Failed to accept product data request"

	var req source.FetchRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, failMsg, err)
	}

	ack, err := h.intake.Accept(&req)
	if err != nil {
		return respondError(c, http.StatusBadRequest, failMsg, err)
	}

	return respond(c, http.StatusOK, "Accepted product data request", ack)
}
