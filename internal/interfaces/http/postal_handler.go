package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cstanesvoda/facturitrendy/internal/application/billing"
)

// PostalHandler expune căutarea în directorul de coduri poștale —
// același colaborator folosit la construirea facturilor.
type PostalHandler struct {
	directory billing.PostalDirectory
}

func NewPostalHandler(directory billing.PostalDirectory) *PostalHandler {
	return &PostalHandler{directory: directory}
}

// Lookup godoc
// @Summary      Localitatea și județul unui cod poștal
// @Tags         postal
// @Produce      json
// @Security     BearerAuth
// @Param        code  path  string  true  "codul poștal"
// @Success      200  {object}  entity.PostalPlace
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/postal/{code} [get]
func (h *PostalHandler) Lookup(c *fiber.Ctx) error {
	place, err := h.directory.Lookup(c.Context(), c.Params("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(place)
}
