package serverutils

import (
	"errors"

	"notekeeper-be/internal/apperror"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware turns errors returned by handlers into the response
// envelope.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		return WriteError(ctx, err)
	}
}

func WriteError(ctx *fiber.Ctx, err error) error {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		res := ErrorResponse(appErr.HTTPStatus(), appErr.Message)
		res.Error = string(appErr.Code)
		return ctx.Status(appErr.HTTPStatus()).JSON(res)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
	}

	res := ErrorResponse(fiber.StatusInternalServerError, err.Error())
	res.Error = string(apperror.CodeInternal)
	return ctx.Status(fiber.StatusInternalServerError).JSON(res)
}
