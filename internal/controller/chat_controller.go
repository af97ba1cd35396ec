package controller

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"rag-chat-be/internal/dto"
	"rag-chat-be/internal/pkg/logger"
	"rag-chat-be/internal/pkg/serverutils"
	"rag-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Response(ctx *fiber.Ctx) error
	Greeting(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
	log     logger.ILogger
}

func NewChatController(service service.IChatService, log logger.ILogger) IChatController {
	return &chatController{
		service: service,
		log:     log,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	chat := r.Group("/chat/v1", serverutils.JwtMiddleware)
	chat.Post("/response", c.Response)

	r.Get("/greeting/v1", c.Greeting)
}

// Response validates the request, then hands the connection to a stream
// writer that forwards generation fragments as server-sent events. All
// validation happens before the stream starts; once streaming, errors can
// only end the stream.
func (c *chatController) Response(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewValidationError("Invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}
	if req.Message == "" {
		return serverutils.NewValidationError("Missing required property: 'message'")
	}
	if err := serverutils.ValidateSessionID(req.SessionId); err != nil {
		return err
	}

	ctx.Set("Content-Type", "text/event-stream")
	ctx.Set("Cache-Control", "no-cache")
	ctx.Set("Connection", "keep-alive")
	ctx.Set("X-Accel-Buffering", "no")

	sessionID := req.SessionId
	message := req.Message

	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		streamCtx, cancel := context.WithCancel(context.Background())
		defer cancel()

		emit := func(token string) error {
			payload, err := json.Marshal(token)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
				cancel()
				return err
			}
			if err := w.Flush(); err != nil {
				// Client disconnected; stop pulling the stream.
				cancel()
				return err
			}
			return nil
		}

		if _, err := c.service.Respond(streamCtx, sessionID, message, emit); err != nil {
			c.log.Warn("chat_controller", "Response stream ended early", map[string]interface{}{
				"error":      err.Error(),
				"session_id": sessionID,
			})
			return
		}

		fmt.Fprint(w, "data: [DONE]\n\n")
		w.Flush()
	}))

	return nil
}

func (c *chatController) Greeting(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Greeting retrieved", dto.GreetingResponse{
		Message: c.service.Greeting(),
	}))
}
