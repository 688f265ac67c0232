package controller

import (
	"kuliner-chatbot-be/internal/dto"
	"kuliner-chatbot-be/internal/pkg/serverutils"
	"kuliner-chatbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultPostsPage  = 1
	defaultPostsLimit = 20
)

type IPostController interface {
	RegisterRoutes(r fiber.Router)
	GetPosts(ctx *fiber.Ctx) error
}

type postController struct {
	postService service.IPostService
}

func NewPostController(postService service.IPostService) IPostController {
	return &postController{postService: postService}
}

func (c *postController) RegisterRoutes(r fiber.Router) {
	r.Get("/posts", c.GetPosts)
}

func (c *postController) GetPosts(ctx *fiber.Ctx) error {
	req := dto.GetPostsRequest{
		Page:  ctx.QueryInt("page", defaultPostsPage),
		Limit: ctx.QueryInt("limit", defaultPostsLimit),
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	ctx.Set(fiber.HeaderCacheControl, "no-cache, no-store, must-revalidate")

	res, err := c.postService.GetPosts(ctx.UserContext(), &req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(res)
}
