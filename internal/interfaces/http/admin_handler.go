package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/cstanesvoda/facturitrendy/internal/application/dto"
	"github.com/cstanesvoda/facturitrendy/internal/application/usecase"
)

// AdminHandler expune administrarea utilizatorilor și a legăturilor
// comandă → factură. Toate rutele cer rol de administrator.
type AdminHandler struct {
	users    *usecase.UserUseCase
	mappings *usecase.MappingUseCase
}

func NewAdminHandler(users *usecase.UserUseCase, mappings *usecase.MappingUseCase) *AdminHandler {
	return &AdminHandler{users: users, mappings: mappings}
}

// ── Utilizatori ──

// ListUsers godoc
// @Summary      Listare utilizatori
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.UserResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	out, err := h.users.List()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetUser godoc
// @Summary      Profilul unui utilizator
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "id-ul utilizatorului"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/users/{id} [get]
func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	out, err := h.users.Get(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateUser godoc
// @Summary      Creare utilizator
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.UpsertUserRequest  true  "datele utilizatorului"
// @Success      201  {object}  dto.UserResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/admin/users [post]
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var in dto.UpsertUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corp invalid"})
	}
	out, err := h.users.Create(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateUser godoc
// @Summary      Actualizare utilizator
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                 true  "id-ul utilizatorului"
// @Param        body  body  dto.UpsertUserRequest  true  "câmpurile de modificat (cele goale rămân neschimbate)"
// @Success      200  {object}  dto.UserResponse
// @Router       /api/admin/users/{id} [put]
func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	var in dto.UpsertUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corp invalid"})
	}
	out, err := h.users.Update(c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteUser godoc
// @Summary      Ștergere utilizator
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "id-ul utilizatorului"
// @Success      204
// @Router       /api/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.users.Delete(c.Params("id"), GetUserID(c)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Legături comandă → factură ──

// SearchMappings godoc
// @Summary      Căutare în toate legăturile comandă → factură
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        q  query  string  false  "termen: comandă, serie, număr sau username"
// @Success      200  {array}  dto.MappingResponse
// @Router       /api/admin/mappings [get]
func (h *AdminHandler) SearchMappings(c *fiber.Ctx) error {
	out, err := h.mappings.Search(c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateMapping godoc
// @Summary      Adăugare manuală a unei legături
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path  string                   true  "proprietarul legăturii"
// @Param        body    body  dto.MappingUpsertRequest  true  "comanda, seria, numărul"
// @Success      201  {object}  dto.MappingResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/admin/users/{userId}/mappings [post]
func (h *AdminHandler) CreateMapping(c *fiber.Ctx) error {
	var in dto.MappingUpsertRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corp invalid"})
	}
	out, err := h.mappings.Create(c.Params("userId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateMapping godoc
// @Summary      Editare legătură
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path  string                   true  "proprietarul legăturii"
// @Param        id      path  int                      true  "id-ul legăturii"
// @Param        body    body  dto.MappingUpsertRequest  true  "comanda, seria, numărul"
// @Success      200  {object}  dto.MappingResponse
// @Router       /api/admin/users/{userId}/mappings/{id} [put]
func (h *AdminHandler) UpdateMapping(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id trebuie să fie numeric"})
	}
	var in dto.MappingUpsertRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corp invalid"})
	}
	out, err := h.mappings.Update(id, c.Params("userId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteMapping godoc
// @Summary      Ștergere legătură
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path  string  true  "proprietarul legăturii"
// @Param        id      path  int     true  "id-ul legăturii"
// @Success      204
// @Router       /api/admin/users/{userId}/mappings/{id} [delete]
func (h *AdminHandler) DeleteMapping(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id trebuie să fie numeric"})
	}
	if err := h.mappings.Delete(id, c.Params("userId")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
