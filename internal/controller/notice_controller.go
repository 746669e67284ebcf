package controller

import (
	"notekeeper-be/internal/pkg/serverutils"
	"notekeeper-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type INoticeController interface {
	RegisterRoutes(r fiber.Router, guard fiber.Handler)
	GetAll(ctx *fiber.Ctx) error
}

type noticeController struct {
	service service.INoticeService
}

func NewNoticeController(service service.INoticeService) INoticeController {
	return &noticeController{service: service}
}

func (c *noticeController) RegisterRoutes(r fiber.Router, guard fiber.Handler) {
	h := r.Group("/notice/v1")
	h.Use(guard)
	h.Get("", c.GetAll)
}

func (c *noticeController) GetAll(ctx *fiber.Ctx) error {
	res := c.service.List(ctx.QueryInt("limit", 20))
	return ctx.JSON(serverutils.SuccessResponse("Success get notices", res))
}
