package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cstanesvoda/facturitrendy/internal/application/billing"
	"github.com/cstanesvoda/facturitrendy/internal/application/dto"
	"github.com/cstanesvoda/facturitrendy/internal/application/orders"
)

// OrderHandler expune consultarea marketplace-ului: comenzi, pachete,
// produse, etichete de livrare.
type OrderHandler struct {
	orders     *orders.UseCase
	invoiceOps *billing.InvoiceOpsUseCase
}

func NewOrderHandler(ordersUC *orders.UseCase, invoiceOps *billing.InvoiceOpsUseCase) *OrderHandler {
	return &OrderHandler{orders: ordersUC, invoiceOps: invoiceOps}
}

// List godoc
// @Summary      Listare comenzi Trendyol
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        page         query  int     false  "pagina (implicit 0)"
// @Param        size         query  int     false  "mărimea paginii (implicit 50)"
// @Param        status       query  string  false  "unul sau mai multe statusuri, separate prin virgulă"
// @Param        startDate    query  string  false  "YYYY-MM-DD (ora României)"
// @Param        endDate      query  string  false  "YYYY-MM-DD (ora României)"
// @Param        orderNumber  query  string  false  "număr de comandă exact"
// @Param        sku          query  string  false  "filtrare client-side după SKU/barcode"
// @Success      200  {object}  entity.OrderPage
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	user := GetUser(c)
	var q dto.OrderQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parametri de interogare invalizi"})
	}
	page, err := h.orders.List(c.Context(), user, q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(page)
}

// OrderInvoice godoc
// @Summary      Factura asociată unei comenzi
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        orderNumber  path  string  true  "numărul comenzii"
// @Success      200  {object}  dto.OrderMappingResponse
// @Router       /api/orders/{orderNumber}/invoice [get]
func (h *OrderHandler) OrderInvoice(c *fiber.Ctx) error {
	user := GetUser(c)
	orderNumber := c.Params("orderNumber")
	if orderNumber == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "orderNumber este obligatoriu"})
	}
	resp, err := h.invoiceOps.MappingForOrder(user.ID, orderNumber)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// Packages godoc
// @Summary      Listare pachete de livrare
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  object
// @Router       /api/packages [get]
func (h *OrderHandler) Packages(c *fiber.Ctx) error {
	user := GetUser(c)
	var q dto.PackageQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parametri de interogare invalizi"})
	}
	raw, err := h.orders.Packages(c.Context(), user, q)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(raw)
}

// Products godoc
// @Summary      Catalogul de produse al vânzătorului
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  object
// @Router       /api/products [get]
func (h *OrderHandler) Products(c *fiber.Ctx) error {
	user := GetUser(c)
	var q dto.ProductQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parametri de interogare invalizi"})
	}
	raw, err := h.orders.Products(c.Context(), user, q)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(raw)
}

// ShippingLabel godoc
// @Summary      Eticheta de livrare a unui pachet
// @Tags         orders
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        packageId  path  string  true  "id-ul pachetului de livrare"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/packages/{packageId}/label [get]
func (h *OrderHandler) ShippingLabel(c *fiber.Ctx) error {
	user := GetUser(c)
	packageID := c.Params("packageId")
	if packageID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "packageId este obligatoriu"})
	}
	label, err := h.orders.ShippingLabel(c.Context(), user, packageID)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(label)
}
