package billing

import (
	"context"
	"fmt"

	"github.com/cstanesvoda/facturitrendy/internal/application/dto"
	"github.com/cstanesvoda/facturitrendy/internal/domain"
	"github.com/cstanesvoda/facturitrendy/internal/domain/entity"
	"github.com/cstanesvoda/facturitrendy/internal/domain/repository"
	"github.com/cstanesvoda/facturitrendy/pkg/logger"
)

const (
	// Mărimea paginii la parcurgerea comenzilor în fluxurile bulk.
	bulkPageSize = 200

	defaultOrderCount = 10

	// Serie de rezervă când contul SmartBill nu are serii configurate.
	fallbackSeries = "SERIE_FACTURA"

	// Câte erori individuale intră în răspunsul bulk.
	maxReportedErrors = 10
)

// BulkCreateUseCase emite facturi pentru comenzile care nu au încă una.
type BulkCreateUseCase struct {
	mappings       repository.MappingRepository
	newMarketplace MarketplaceFactory
	newInvoicing   InvoicingFactory
	directory      PostalDirectory
	log            *logger.Logger
}

func NewBulkCreateUseCase(
	mappings repository.MappingRepository,
	newMarketplace MarketplaceFactory,
	newInvoicing InvoicingFactory,
	directory PostalDirectory,
	log *logger.Logger,
) *BulkCreateUseCase {
	return &BulkCreateUseCase{
		mappings:       mappings,
		newMarketplace: newMarketplace,
		newInvoicing:   newInvoicing,
		directory:      directory,
		log:            log,
	}
}

// Run parcurge comenzile după filtrele cerute, sare peste cele deja
// facturate și emite cel mult req.OrderCount facturi. Eșecurile
// individuale nu opresc lotul.
func (uc *BulkCreateUseCase) Run(ctx context.Context, user *entity.User, req dto.BulkCreateRequest) (*dto.BulkSummary, error) {
	if !user.Trendyol.Configured() {
		return nil, domain.ErrTrendyolNotConfigured
	}
	if !user.SmartBill.Configured() {
		return nil, domain.ErrSmartBillNotConfigured
	}

	limit := req.OrderCount
	if limit <= 0 {
		limit = defaultOrderCount
	}

	marketplace := uc.newMarketplace(user.Trendyol)
	invoicing := uc.newInvoicing(user.SmartBill)

	invoiced, err := uc.invoicedOrders(user.ID)
	if err != nil {
		return nil, err
	}

	candidates, err := uc.collectCandidates(ctx, marketplace, req, invoiced, limit)
	if err != nil {
		return nil, err
	}

	cfg := DraftConfig{
		CompanyVatCode: user.SmartBill.CompanyCIF,
		SeriesName:     uc.resolveSeries(ctx, invoicing),
		WarehouseName:  user.SmartBill.Warehouse,
		UseStock:       user.SmartBill.Warehouse != "",
	}

	summary := &dto.BulkSummary{Total: len(candidates)}
	for i := range candidates {
		order := &candidates[i]
		if err := uc.invoiceOrder(ctx, invoicing, user.ID, order, cfg); err != nil {
			summary.Failed++
			if len(summary.Errors) < maxReportedErrors {
				summary.Errors = append(summary.Errors, fmt.Sprintf("Order %s: %s", order.OrderNumber, err.Error()))
			}
			uc.log.Warn().
				Str("order_number", order.OrderNumber).
				Err(err).
				Msg("emitere factură eșuată")
			continue
		}
		summary.Successful++
	}
	summary.Success = summary.Failed == 0

	uc.log.Info().
		Str("user_id", user.ID).
		Int("total", summary.Total).
		Int("successful", summary.Successful).
		Int("failed", summary.Failed).
		Msg("facturare bulk încheiată")

	return summary, nil
}

// invoicedOrders întoarce mulțimea comenzilor cu factură deja emisă.
func (uc *BulkCreateUseCase) invoicedOrders(userID string) (map[string]bool, error) {
	existing, err := uc.mappings.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	invoiced := make(map[string]bool, len(existing))
	for _, m := range existing {
		invoiced[m.OrderNumber] = true
	}
	return invoiced, nil
}

// collectCandidates parcurge paginile de comenzi până adună limit
// comenzi nefacturate sau până se termină rezultatele.
func (uc *BulkCreateUseCase) collectCandidates(
	ctx context.Context,
	marketplace MarketplaceClient,
	req dto.BulkCreateRequest,
	invoiced map[string]bool,
	limit int,
) ([]entity.Order, error) {
	var candidates []entity.Order
	for page := 0; ; page++ {
		result, err := marketplace.GetOrders(ctx, dto.OrderQuery{
			Page:        page,
			Size:        bulkPageSize,
			Status:      req.Status,
			StartDate:   req.StartDate,
			EndDate:     req.EndDate,
			OrderNumber: req.OrderNumber,
			SKU:         req.SKU,
		})
		if err != nil {
			return nil, err
		}
		for _, order := range result.Content {
			if invoiced[order.OrderNumber] {
				continue
			}
			// Comenzile cu link de factură au fost facturate din altă parte.
			if order.InvoiceLink != "" {
				continue
			}
			candidates = append(candidates, order)
			if len(candidates) == limit {
				return candidates, nil
			}
		}
		if len(result.Content) < bulkPageSize {
			return candidates, nil
		}
	}
}

// resolveSeries alege seria de facturare o singură dată per lot:
// prima serie din contul SmartBill, altfel seria de rezervă.
func (uc *BulkCreateUseCase) resolveSeries(ctx context.Context, invoicing InvoicingClient) string {
	series, err := invoicing.GetSeries(ctx, "f")
	if err != nil || series == nil || len(series.List) == 0 {
		uc.log.Warn().Err(err).Msg("serii SmartBill indisponibile, folosesc seria de rezervă")
		return fallbackSeries
	}
	return series.List[0].Name
}

func (uc *BulkCreateUseCase) invoiceOrder(
	ctx context.Context,
	invoicing InvoicingClient,
	userID string,
	order *entity.Order,
	cfg DraftConfig,
) error {
	draft := BuildDraft(ctx, order, cfg, uc.directory)
	issued, err := invoicing.CreateInvoice(ctx, draft)
	if err != nil {
		return err
	}
	return uc.mappings.Replace(&entity.InvoiceMapping{
		UserID:      userID,
		OrderNumber: order.OrderNumber,
		Series:      issued.Series,
		Number:      issued.Number,
	})
}
