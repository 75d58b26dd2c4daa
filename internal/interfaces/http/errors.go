package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/cstanesvoda/facturitrendy/internal/application/billing"
	"github.com/cstanesvoda/facturitrendy/internal/application/dto"
	"github.com/cstanesvoda/facturitrendy/internal/domain"
)

// writeError traduce erorile de domeniu în răspunsuri HTTP.
// Erorile structurate își poartă singure codul de stare; restul cad
// pe maparea sentinelelor.
func writeError(c *fiber.Ctx, err error) error {
	var already *billing.AlreadyInvoicedError
	if errors.As(err, &already) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "ALREADY_INVOICED",
			Message: already.Error(),
			Series:  already.Series,
			Number:  already.Number,
		})
	}

	if status := domain.StatusOf(err); status != 0 {
		return c.Status(status).JSON(dto.ErrorResponse{Code: codeForStatus(status), Message: err.Error()})
	}

	switch {
	case errors.Is(err, domain.ErrTrendyolNotConfigured),
		errors.Is(err, domain.ErrSmartBillNotConfigured):
		// Credențiale lipsă = problemă de autorizare față de furnizor, nu de cerere.
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "NOT_CONFIGURED", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "utilizator sau parolă greșită"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acces interzis"})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrUsernameTaken), errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func codeForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusConflict:
		return "CONFLICT"
	case fiber.StatusBadGateway:
		return "UPSTREAM"
	default:
		return "UPSTREAM_ERROR"
	}
}
