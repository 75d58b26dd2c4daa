package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cstanesvoda/facturitrendy/internal/application/auth"
	"github.com/cstanesvoda/facturitrendy/internal/application/dto"
)

// AuthHandler gestionează autentificarea.
type AuthHandler struct {
	uc *auth.UseCase
}

func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Autentificare
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corp invalid"})
	}
	if in.Username == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "username și password sunt obligatorii"})
	}
	resp, err := h.uc.Login(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// Me godoc
// @Summary      Profilul utilizatorului curent
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token invalid"})
	}
	return c.JSON(dto.NewUserResponse(user))
}

// Warehouse godoc
// @Summary      Gestiunea SmartBill configurată pentru utilizatorul curent
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  object{warehouse=string,useStock=bool}
// @Router       /api/warehouse [get]
func (h *AuthHandler) Warehouse(c *fiber.Ctx) error {
	user := GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token invalid"})
	}
	return c.JSON(fiber.Map{
		"warehouse": user.SmartBill.Warehouse,
		"useStock":  user.SmartBill.Warehouse != "",
	})
}
