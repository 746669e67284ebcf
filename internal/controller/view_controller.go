package controller

import (
	"notekeeper-be/internal/dto"
	"notekeeper-be/internal/pkg/serverutils"
	"notekeeper-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IViewController interface {
	RegisterRoutes(r fiber.Router, guard fiber.Handler)
	Open(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Refresh(ctx *fiber.Ctx) error
	Close(ctx *fiber.Ctx) error
}

type viewController struct {
	service service.IViewService
}

func NewViewController(service service.IViewService) IViewController {
	return &viewController{service: service}
}

func (c *viewController) RegisterRoutes(r fiber.Router, guard fiber.Handler) {
	h := r.Group("/view/v1")
	h.Use(guard)
	h.Post("", c.Open)
	h.Get(":id", c.Show)
	h.Post(":id/refresh", c.Refresh)
	h.Delete(":id", c.Close)
}

func (c *viewController) Open(ctx *fiber.Ctx) error {
	var req dto.OpenViewRequest
	if len(ctx.Body()) > 0 {
		if err := parseBody(ctx, &req); err != nil {
			return err
		}
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Open(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success open view", res))
}

func (c *viewController) Show(ctx *fiber.Ctx) error {
	res, err := c.service.Show(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show view", res))
}

func (c *viewController) Refresh(ctx *fiber.Ctx) error {
	res, err := c.service.Refresh(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success refresh view", res))
}

func (c *viewController) Close(ctx *fiber.Ctx) error {
	if err := c.service.Close(ctx.UserContext(), ctx.Params("id")); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success close view", nil))
}
