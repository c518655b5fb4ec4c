package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (h *Handler) ListCategories(c echo.Context) error {
	categories, err := h.categoryService.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, categories)
}
