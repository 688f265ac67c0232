package controller

import "github.com/gofiber/fiber/v2"

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
}

type healthController struct{}

func NewHealthController() IHealthController {
	return &healthController{}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"message": "RAG Chatbot Backend is running"})
	})
	r.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"status": "healthy"})
	})
}
