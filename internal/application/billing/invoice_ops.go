package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cstanesvoda/facturitrendy/internal/application/dto"
	"github.com/cstanesvoda/facturitrendy/internal/domain"
	"github.com/cstanesvoda/facturitrendy/internal/domain/entity"
	"github.com/cstanesvoda/facturitrendy/internal/domain/repository"
	"github.com/cstanesvoda/facturitrendy/pkg/logger"
)

// AlreadyInvoicedError semnalează că o comandă are deja factură emisă.
// Poartă seria și numărul existent pentru răspunsul de conflict.
type AlreadyInvoicedError struct {
	Series string
	Number string
}

func (e *AlreadyInvoicedError) Error() string {
	return fmt.Sprintf("invoice already exists: %s-%s", e.Series, e.Number)
}

// InvoiceOpsUseCase acoperă operațiile pe o singură factură: emitere,
// PDF, stornare, listare, urcare la marketplace.
type InvoiceOpsUseCase struct {
	mappings       repository.MappingRepository
	newMarketplace MarketplaceFactory
	newInvoicing   InvoicingFactory
	directory      PostalDirectory
	log            *logger.Logger
}

func NewInvoiceOpsUseCase(
	mappings repository.MappingRepository,
	newMarketplace MarketplaceFactory,
	newInvoicing InvoicingFactory,
	directory PostalDirectory,
	log *logger.Logger,
) *InvoiceOpsUseCase {
	return &InvoiceOpsUseCase{
		mappings:       mappings,
		newMarketplace: newMarketplace,
		newInvoicing:   newInvoicing,
		directory:      directory,
		log:            log,
	}
}

// CreateInvoice emite factura pentru o singură comandă. Dacă există deja
// o factură pentru comanda respectivă, întoarce AlreadyInvoicedError.
func (uc *InvoiceOpsUseCase) CreateInvoice(ctx context.Context, user *entity.User, orderNumber string) (*dto.CreateInvoiceResult, error) {
	if !user.Trendyol.Configured() {
		return nil, domain.ErrTrendyolNotConfigured
	}
	if !user.SmartBill.Configured() {
		return nil, domain.ErrSmartBillNotConfigured
	}
	if orderNumber == "" {
		return nil, domain.NewError(http.StatusBadRequest, "orderNumber este obligatoriu")
	}

	existing, err := uc.mappings.GetByOrder(user.ID, orderNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &AlreadyInvoicedError{Series: existing.Series, Number: existing.Number}
	}

	marketplace := uc.newMarketplace(user.Trendyol)
	order, err := uc.findOrder(ctx, marketplace, orderNumber)
	if err != nil {
		return nil, err
	}

	invoicing := uc.newInvoicing(user.SmartBill)
	cfg := DraftConfig{
		CompanyVatCode: user.SmartBill.CompanyCIF,
		SeriesName:     uc.resolveSeries(ctx, invoicing),
		WarehouseName:  user.SmartBill.Warehouse,
		UseStock:       user.SmartBill.Warehouse != "",
	}

	draft := BuildDraft(ctx, order, cfg, uc.directory)
	issued, err := invoicing.CreateInvoice(ctx, draft)
	if err != nil {
		return nil, err
	}
	if err := uc.mappings.Replace(&entity.InvoiceMapping{
		UserID:      user.ID,
		OrderNumber: orderNumber,
		Series:      issued.Series,
		Number:      issued.Number,
	}); err != nil {
		// Factura a fost emisă; pierderea legăturii este raportată, nu ascunsă.
		uc.log.Error().
			Str("order_number", orderNumber).
			Str("series", issued.Series).
			Str("number", issued.Number).
			Err(err).
			Msg("factura emisă dar legătura nu a putut fi salvată")
		return nil, err
	}

	return &dto.CreateInvoiceResult{
		Success: true,
		Series:  issued.Series,
		Number:  issued.Number,
		Message: fmt.Sprintf("Invoice %s-%s created for order %s", issued.Series, issued.Number, orderNumber),
	}, nil
}

// findOrder caută comanda după număr; prima potrivire câștigă.
func (uc *InvoiceOpsUseCase) findOrder(ctx context.Context, marketplace MarketplaceClient, orderNumber string) (*entity.Order, error) {
	page, err := marketplace.GetOrders(ctx, dto.OrderQuery{
		Page:        0,
		Size:        bulkPageSize,
		OrderNumber: orderNumber,
	})
	if err != nil {
		return nil, err
	}
	if len(page.Content) == 0 {
		return nil, domain.NewError(http.StatusNotFound, "Order not found: %s", orderNumber)
	}
	return &page.Content[0], nil
}

// resolveSeries — prima serie de factură din cont, altfel seria de rezervă.
func (uc *InvoiceOpsUseCase) resolveSeries(ctx context.Context, invoicing InvoicingClient) string {
	series, err := invoicing.GetSeries(ctx, "f")
	if err != nil || series == nil || len(series.List) == 0 {
		uc.log.Warn().Err(err).Msg("serii SmartBill indisponibile, folosesc seria de rezervă")
		return fallbackSeries
	}
	return series.List[0].Name
}

// InvoicePDF descarcă PDF-ul unei facturi emise.
func (uc *InvoiceOpsUseCase) InvoicePDF(ctx context.Context, user *entity.User, series, number string) ([]byte, error) {
	if !user.SmartBill.Configured() {
		return nil, domain.ErrSmartBillNotConfigured
	}
	return uc.newInvoicing(user.SmartBill).GetInvoicePDF(ctx, series, number)
}

// Reverse stornează o factură emisă.
func (uc *InvoiceOpsUseCase) Reverse(ctx context.Context, user *entity.User, req dto.ReverseInvoiceRequest) (json.RawMessage, error) {
	if !user.SmartBill.Configured() {
		return nil, domain.ErrSmartBillNotConfigured
	}
	if req.Series == "" || req.Number == "" {
		return nil, domain.NewError(http.StatusBadRequest, "series și number sunt obligatorii")
	}
	return uc.newInvoicing(user.SmartBill).ReverseInvoice(ctx, req.Series, req.Number, req.IssueDate)
}

// Series întoarce seriile de documente din contul SmartBill.
func (uc *InvoiceOpsUseCase) Series(ctx context.Context, user *entity.User, docType string) (*entity.SeriesList, error) {
	if !user.SmartBill.Configured() {
		return nil, domain.ErrSmartBillNotConfigured
	}
	return uc.newInvoicing(user.SmartBill).GetSeries(ctx, docType)
}

// NextInvoiceNumber întoarce seria și numărul următoarei facturi,
// cu numărul completat la patru cifre.
func (uc *InvoiceOpsUseCase) NextInvoiceNumber(ctx context.Context, user *entity.User) (*dto.NextInvoiceNumberResponse, error) {
	if !user.SmartBill.Configured() {
		return nil, domain.ErrSmartBillNotConfigured
	}
	series, err := uc.newInvoicing(user.SmartBill).GetSeries(ctx, "f")
	if err != nil {
		return nil, err
	}
	if series == nil || len(series.List) == 0 {
		return nil, domain.NewError(http.StatusNotFound, "no invoice series configured in SmartBill")
	}
	first := series.List[0]
	padded := fmt.Sprintf("%04d", first.NextNumber)
	return &dto.NextInvoiceNumberResponse{
		SeriesName: first.Name,
		NextNumber: padded,
		Combined:   first.Name + padded,
		CIF:        user.SmartBill.CompanyCIF,
	}, nil
}

// ListInvoices listează documentele emise, cu filtre opționale.
func (uc *InvoiceOpsUseCase) ListInvoices(ctx context.Context, user *entity.User, filter dto.InvoiceListFilter) (json.RawMessage, error) {
	if !user.SmartBill.Configured() {
		return nil, domain.ErrSmartBillNotConfigured
	}
	return uc.newInvoicing(user.SmartBill).ListInvoices(ctx, filter.Series, filter.Number, filter.Date)
}

// UploadInvoiceFile urcă un PDF extern (primit de la client) la pachetul
// de livrare din marketplace.
func (uc *InvoiceOpsUseCase) UploadInvoiceFile(ctx context.Context, user *entity.User, shipmentPackageID string, pdf []byte, filename string) error {
	if !user.Trendyol.Configured() {
		return domain.ErrTrendyolNotConfigured
	}
	if shipmentPackageID == "" {
		return domain.NewError(http.StatusBadRequest, "shipment_package_id este obligatoriu")
	}
	if len(pdf) == 0 {
		return domain.NewError(http.StatusBadRequest, "fișier PDF gol")
	}
	if filename == "" {
		filename = fmt.Sprintf("invoice_%s.pdf", shipmentPackageID)
	}
	return uc.newMarketplace(user.Trendyol).UploadInvoiceFile(ctx, shipmentPackageID, pdf, filename)
}

// RelayInvoice descarcă PDF-ul din SmartBill și îl urcă la pachetul de
// livrare din marketplace, într-un singur pas.
func (uc *InvoiceOpsUseCase) RelayInvoice(ctx context.Context, user *entity.User, req dto.RelayUploadRequest) error {
	if !user.Trendyol.Configured() {
		return domain.ErrTrendyolNotConfigured
	}
	if !user.SmartBill.Configured() {
		return domain.ErrSmartBillNotConfigured
	}
	if req.ShipmentPackageID == "" || req.Series == "" || req.Number == "" {
		return domain.NewError(http.StatusBadRequest, "shipment_package_id, series și number sunt obligatorii")
	}

	pdf, err := uc.newInvoicing(user.SmartBill).GetInvoicePDF(ctx, req.Series, req.Number)
	if err != nil {
		return err
	}
	filename := fmt.Sprintf("invoice_%s_%s_%s.pdf", req.ShipmentPackageID, req.Series, req.Number)
	return uc.newMarketplace(user.Trendyol).UploadInvoiceFile(ctx, req.ShipmentPackageID, pdf, filename)
}

// MappingForOrder întoarce factura asociată unei comenzi, dacă există.
func (uc *InvoiceOpsUseCase) MappingForOrder(userID, orderNumber string) (*dto.OrderMappingResponse, error) {
	mapping, err := uc.mappings.GetByOrder(userID, orderNumber)
	if err != nil {
		return nil, err
	}
	if mapping == nil {
		return &dto.OrderMappingResponse{HasInvoice: false}, nil
	}
	return &dto.OrderMappingResponse{
		HasInvoice: true,
		Series:     mapping.Series,
		Number:     mapping.Number,
		CreatedAt:  mapping.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}

// MappingsForUser listează toate legăturile comandă → factură ale
// utilizatorului curent.
func (uc *InvoiceOpsUseCase) MappingsForUser(userID string) ([]dto.MappingResponse, error) {
	mappings, err := uc.mappings.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MappingResponse, 0, len(mappings))
	for _, m := range mappings {
		out = append(out, dto.MappingResponse{
			ID:          m.ID,
			OrderNumber: m.OrderNumber,
			Series:      m.Series,
			Number:      m.Number,
			CreatedAt:   m.CreatedAt,
		})
	}
	return out, nil
}

// SendInvoiceLink trimite către marketplace link-ul unei facturi deja emise.
func (uc *InvoiceOpsUseCase) SendInvoiceLink(ctx context.Context, user *entity.User, shipmentPackageID int64, invoiceLink, invoiceNumber string) error {
	if !user.Trendyol.Configured() {
		return domain.ErrTrendyolNotConfigured
	}
	if shipmentPackageID == 0 || invoiceLink == "" {
		return domain.NewError(http.StatusBadRequest, "shipmentPackageId și invoiceLink sunt obligatorii")
	}
	return uc.newMarketplace(user.Trendyol).SendInvoiceLink(ctx, shipmentPackageID, invoiceLink, invoiceNumber)
}
