package billing

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/cstanesvoda/facturitrendy/internal/application/dto"
	"github.com/cstanesvoda/facturitrendy/internal/domain"
	"github.com/cstanesvoda/facturitrendy/internal/domain/entity"
	"github.com/cstanesvoda/facturitrendy/internal/domain/repository"
	"github.com/cstanesvoda/facturitrendy/pkg/logger"
)

// BulkUploadUseCase descarcă PDF-urile facturilor emise și le atașează
// pachetelor de livrare din marketplace.
type BulkUploadUseCase struct {
	mappings       repository.MappingRepository
	newMarketplace MarketplaceFactory
	newInvoicing   InvoicingFactory
	log            *logger.Logger
}

func NewBulkUploadUseCase(
	mappings repository.MappingRepository,
	newMarketplace MarketplaceFactory,
	newInvoicing InvoicingFactory,
	log *logger.Logger,
) *BulkUploadUseCase {
	return &BulkUploadUseCase{
		mappings:       mappings,
		newMarketplace: newMarketplace,
		newInvoicing:   newInvoicing,
		log:            log,
	}
}

// Run încarcă în marketplace facturile comenzilor care au una emisă dar
// nu au încă link de factură atașat pachetului.
func (uc *BulkUploadUseCase) Run(ctx context.Context, user *entity.User, req dto.BulkUploadRequest) (*dto.BulkSummary, error) {
	if !user.Trendyol.Configured() {
		return nil, domain.ErrTrendyolNotConfigured
	}
	if !user.SmartBill.Configured() {
		return nil, domain.ErrSmartBillNotConfigured
	}

	limit := req.UploadCount
	if limit <= 0 {
		limit = defaultOrderCount
	}

	existing, err := uc.mappings.ListByUser(user.ID)
	if err != nil {
		return nil, err
	}
	if len(existing) == 0 {
		return nil, domain.NewError(http.StatusBadRequest, "No SmartBill invoices found in database")
	}
	byOrder := make(map[string]*entity.InvoiceMapping, len(existing))
	for _, m := range existing {
		byOrder[m.OrderNumber] = m
	}

	marketplace := uc.newMarketplace(user.Trendyol)
	invoicing := uc.newInvoicing(user.SmartBill)

	candidates, err := uc.collectCandidates(ctx, marketplace, req, byOrder, limit)
	if err != nil {
		return nil, err
	}

	summary := &dto.BulkSummary{Total: len(candidates)}
	for i := range candidates {
		order := &candidates[i]
		mapping := byOrder[order.OrderNumber]
		if err := uc.uploadInvoice(ctx, marketplace, invoicing, order, mapping); err != nil {
			summary.Failed++
			if len(summary.Errors) < maxReportedErrors {
				summary.Errors = append(summary.Errors, fmt.Sprintf("Order %s: %s", order.OrderNumber, err.Error()))
			}
			uc.log.Warn().
				Str("order_number", order.OrderNumber).
				Err(err).
				Msg("încărcare factură eșuată")
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
		Msg("încărcare bulk încheiată")

	return summary, nil
}

// collectCandidates adună comenzile cu factură emisă și fără link
// de factură deja atașat în marketplace.
func (uc *BulkUploadUseCase) collectCandidates(
	ctx context.Context,
	marketplace MarketplaceClient,
	req dto.BulkUploadRequest,
	byOrder map[string]*entity.InvoiceMapping,
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
			if byOrder[order.OrderNumber] == nil {
				continue
			}
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

func (uc *BulkUploadUseCase) uploadInvoice(
	ctx context.Context,
	marketplace MarketplaceClient,
	invoicing InvoicingClient,
	order *entity.Order,
	mapping *entity.InvoiceMapping,
) error {
	pdf, err := invoicing.GetInvoicePDF(ctx, mapping.Series, mapping.Number)
	if err != nil {
		return err
	}
	packageID := strconv.FormatInt(order.ID, 10)
	filename := fmt.Sprintf("invoice_%s_%s_%s.pdf", packageID, mapping.Series, mapping.Number)
	return marketplace.UploadInvoiceFile(ctx, packageID, pdf, filename)
}
