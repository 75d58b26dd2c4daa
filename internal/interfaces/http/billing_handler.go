package http

import (
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/cstanesvoda/facturitrendy/internal/application/billing"
	"github.com/cstanesvoda/facturitrendy/internal/application/dto"
)

// BillingHandler expune emiterea de facturi și fluxurile bulk.
type BillingHandler struct {
	bulkCreate *billing.BulkCreateUseCase
	bulkUpload *billing.BulkUploadUseCase
	invoiceOps *billing.InvoiceOpsUseCase
}

func NewBillingHandler(
	bulkCreate *billing.BulkCreateUseCase,
	bulkUpload *billing.BulkUploadUseCase,
	invoiceOps *billing.InvoiceOpsUseCase,
) *BillingHandler {
	return &BillingHandler{
		bulkCreate: bulkCreate,
		bulkUpload: bulkUpload,
		invoiceOps: invoiceOps,
	}
}

// ── Emitere ──

// CreateInvoice godoc
// @Summary      Emitere factură pentru o comandă
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  object{orderNumber=string}  true  "numărul comenzii"
// @Success      201  {object}  dto.CreateInvoiceResult
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *BillingHandler) CreateInvoice(c *fiber.Ctx) error {
	user := GetUser(c)
	var in struct {
		OrderNumber string `json:"orderNumber"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corp invalid"})
	}
	result, err := h.invoiceOps.CreateInvoice(c.Context(), user, in.OrderNumber)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// BulkCreate godoc
// @Summary      Emitere facturi în masă pentru comenzile nefacturate
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.BulkCreateRequest  true  "filtre și limită"
// @Success      200  {object}  dto.BulkSummary
// @Router       /api/invoices/bulk-create [post]
func (h *BillingHandler) BulkCreate(c *fiber.Ctx) error {
	user := GetUser(c)
	var in dto.BulkCreateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corp invalid"})
	}
	summary, err := h.bulkCreate.Run(c.Context(), user, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}

// BulkUpload godoc
// @Summary      Urcare în masă a PDF-urilor de factură la Trendyol
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.BulkUploadRequest  true  "filtre și limită"
// @Success      200  {object}  dto.BulkSummary
// @Router       /api/invoices/bulk-upload [post]
func (h *BillingHandler) BulkUpload(c *fiber.Ctx) error {
	user := GetUser(c)
	var in dto.BulkUploadRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corp invalid"})
	}
	summary, err := h.bulkUpload.Run(c.Context(), user, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}

// Mappings godoc
// @Summary      Legăturile comandă → factură ale utilizatorului curent
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.MappingResponse
// @Router       /api/invoices/mappings [get]
func (h *BillingHandler) Mappings(c *fiber.Ctx) error {
	user := GetUser(c)
	out, err := h.invoiceOps.MappingsForUser(user.ID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ── SmartBill ──

// Series godoc
// @Summary      Seriile de documente din contul SmartBill
// @Tags         smartbill
// @Produce      json
// @Security     BearerAuth
// @Param        type  query  string  false  "tipul documentului (implicit f)"
// @Success      200  {object}  entity.SeriesList
// @Router       /api/smartbill/series [get]
func (h *BillingHandler) Series(c *fiber.Ctx) error {
	user := GetUser(c)
	series, err := h.invoiceOps.Series(c.Context(), user, c.Query("type"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(series)
}

// NextNumber godoc
// @Summary      Seria și numărul următoarei facturi
// @Tags         smartbill
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.NextInvoiceNumberResponse
// @Router       /api/smartbill/next-number [get]
func (h *BillingHandler) NextNumber(c *fiber.Ctx) error {
	user := GetUser(c)
	resp, err := h.invoiceOps.NextInvoiceNumber(c.Context(), user)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// ListInvoices godoc
// @Summary      Listare documente emise în SmartBill
// @Tags         smartbill
// @Produce      json
// @Security     BearerAuth
// @Param        series  query  string  false  "seria"
// @Param        number  query  string  false  "numărul"
// @Param        date    query  string  false  "data emiterii YYYY-MM-DD"
// @Success      200  {object}  object
// @Router       /api/smartbill/invoices [get]
func (h *BillingHandler) ListInvoices(c *fiber.Ctx) error {
	user := GetUser(c)
	var filter dto.InvoiceListFilter
	if err := c.QueryParser(&filter); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parametri de interogare invalizi"})
	}
	raw, err := h.invoiceOps.ListInvoices(c.Context(), user, filter)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(raw)
}

// InvoicePDF godoc
// @Summary      PDF-ul unei facturi emise
// @Tags         smartbill
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        series  path  string  true  "seria"
// @Param        number  path  string  true  "numărul"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/smartbill/invoices/{series}/{number}/pdf [get]
func (h *BillingHandler) InvoicePDF(c *fiber.Ctx) error {
	user := GetUser(c)
	series, number := c.Params("series"), c.Params("number")
	pdf, err := h.invoiceOps.InvoicePDF(c.Context(), user, series, number)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="invoice_`+series+`_`+number+`.pdf"`)
	return c.Send(pdf)
}

// Reverse godoc
// @Summary      Stornare factură
// @Tags         smartbill
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.ReverseInvoiceRequest  true  "seria, numărul, data"
// @Success      200  {object}  object
// @Router       /api/smartbill/invoices/reverse [post]
func (h *BillingHandler) Reverse(c *fiber.Ctx) error {
	user := GetUser(c)
	var in dto.ReverseInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corp invalid"})
	}
	raw, err := h.invoiceOps.Reverse(c.Context(), user, in)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(raw)
}

// ── Urcare la marketplace ──

// UploadInvoiceFile godoc
// @Summary      Urcare PDF extern la pachetul de livrare
// @Tags         invoices
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file                 formData  file    true  "fișierul PDF"
// @Param        shipment_package_id  formData  string  true  "id-ul pachetului"
// @Success      200  {object}  object{success=bool}
// @Router       /api/invoices/upload [post]
func (h *BillingHandler) UploadInvoiceFile(c *fiber.Ctx) error {
	user := GetUser(c)
	packageID := c.FormValue("shipment_package_id")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fișierul PDF lipsește"})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fișier ilizibil"})
	}
	defer f.Close()
	pdf, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fișier ilizibil"})
	}

	if err := h.invoiceOps.UploadInvoiceFile(c.Context(), user, packageID, pdf, fileHeader.Filename); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// RelayInvoice godoc
// @Summary      Descărcare din SmartBill și urcare la Trendyol
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.RelayUploadRequest  true  "pachetul, seria, numărul"
// @Success      200  {object}  object{success=bool}
// @Router       /api/invoices/relay [post]
func (h *BillingHandler) RelayInvoice(c *fiber.Ctx) error {
	user := GetUser(c)
	var in dto.RelayUploadRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corp invalid"})
	}
	if err := h.invoiceOps.RelayInvoice(c.Context(), user, in); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// SendInvoiceLink godoc
// @Summary      Trimitere link de factură către Trendyol
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        packageId  path  int  true  "id-ul pachetului de livrare"
// @Param        body  body  dto.InvoiceLinkRequest  true  "link-ul și numărul facturii"
// @Success      200  {object}  object{success=bool}
// @Router       /api/packages/{packageId}/invoice-link [post]
func (h *BillingHandler) SendInvoiceLink(c *fiber.Ctx) error {
	user := GetUser(c)
	packageID, err := strconv.ParseInt(c.Params("packageId"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "packageId trebuie să fie numeric"})
	}
	var in dto.InvoiceLinkRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corp invalid"})
	}
	if err := h.invoiceOps.SendInvoiceLink(c.Context(), user, packageID, in.InvoiceLink, in.InvoiceNumber); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
