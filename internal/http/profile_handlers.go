package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "skillhub.com/skillhub/internal/data_models"
	middleware "skillhub.com/skillhub/internal/http/middlewares"
	"skillhub.com/skillhub/internal/services"
)

func (h *Handler) GetSessionProfile(c echo.Context) error {
	actor := middleware.ActorFrom(c)

	profile, err := h.profileService.GetSessionProfile(c.Request().Context(), actor.ID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, profile)
}

func (h *Handler) GetProfile(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "profile id is required")
	}

	profile, err := h.profileService.Lookup(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, profile)
}

func (h *Handler) UpdateProfile(c echo.Context) error {
	var req dto.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	actor := middleware.ActorFrom(c)

	profile, err := h.profileService.Update(c.Request().Context(), actor, services.UpdateProfileInput{
		FullName:   req.FullName,
		Username:   req.Username,
		AvatarURL:  req.AvatarURL,
		Bio:        req.Bio,
		Skills:     req.Skills,
		HourlyRate: req.HourlyRate,
		City:       req.City,
		State:      req.State,
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, profile)
}
