package controller

import (
	"rag-chat-be/internal/pkg/serverutils"
	"rag-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IKnowledgebaseController interface {
	RegisterRoutes(r fiber.Router)
	Documents(ctx *fiber.Ctx) error
	Keywords(ctx *fiber.Ctx) error
}

type knowledgebaseController struct {
	service service.IKnowledgeService
}

func NewKnowledgebaseController(service service.IKnowledgeService) IKnowledgebaseController {
	return &knowledgebaseController{service: service}
}

func (c *knowledgebaseController) RegisterRoutes(r fiber.Router) {
	kb := r.Group("/knowledgebase/v1", serverutils.JwtMiddleware)
	kb.Get("/documents", c.Documents)
	kb.Get("/keywords", c.Keywords)
}

func (c *knowledgebaseController) Documents(ctx *fiber.Ctx) error {
	res, err := c.service.ListDocuments(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Documents retrieved", res))
}

func (c *knowledgebaseController) Keywords(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Keywords retrieved", c.service.Keywords()))
}
