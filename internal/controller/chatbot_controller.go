package controller

import (
	"kuliner-chatbot-be/internal/dto"
	"kuliner-chatbot-be/internal/pkg/logger"
	"kuliner-chatbot-be/internal/pkg/serverutils"
	"kuliner-chatbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatbotController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
}

type chatbotController struct {
	chatbotService service.IChatbotService
	logger         logger.ILogger
}

func NewChatbotController(chatbotService service.IChatbotService, log logger.ILogger) IChatbotController {
	return &chatbotController{
		chatbotService: chatbotService,
		logger:         log,
	}
}

func (c *chatbotController) RegisterRoutes(r fiber.Router) {
	r.Post("/chat", c.Chat)
}

func (c *chatbotController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatbotService.Chat(ctx.UserContext(), &req)
	if err != nil {
		c.logger.Error("Chatbot", "Error processing request", map[string]interface{}{
			"session_id": req.SessionId,
			"error":      err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, "Error processing request"))
	}

	return ctx.JSON(res)
}
