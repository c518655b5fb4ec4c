package http

import (
	"time"

	"github.com/labstack/echo/v4"

	middleware "skillhub.com/skillhub/internal/http/middlewares"
)

func Register(e *echo.Echo, h *Handler, authMiddleware echo.MiddlewareFunc, rateLimitPerMinute int) {
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))

	e.GET("/health", h.Health)
	e.POST("/auth/register", h.Register)
	e.POST("/auth/login", h.Login)
	e.GET("/categories", h.ListCategories)

	api := e.Group("", authMiddleware)

	api.GET("/profile", h.GetSessionProfile)
	api.PUT("/profile", h.UpdateProfile)
	api.GET("/profiles/:id", h.GetProfile)

	api.GET("/tasks", h.ListTasks)
	api.POST("/tasks", h.CreateTask)
	api.GET("/tasks/:id", h.GetTask)
	api.PUT("/tasks/:id/status", h.TransitionTask)

	api.GET("/tasks/:id/applications", h.ListTaskApplications)
	api.POST("/tasks/:id/applications", h.ApplyToTask)
	api.GET("/applications", h.ListOwnApplications)
	api.PUT("/applications/:id", h.UpdateApplication)

	api.GET("/tasks/:id/messages", h.ListMessages)
	api.POST("/tasks/:id/messages", h.SendMessage)
	api.GET("/tasks/:id/messages/stream", h.StreamMessages)
	api.POST("/messages/:id/read", h.MarkMessageRead)
}
