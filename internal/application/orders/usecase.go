// Package orders expune operațiile de consultare a marketplace-ului:
// comenzi, pachete de livrare, produse, etichete.
package orders

import (
	"context"
	"encoding/json"

	"github.com/cstanesvoda/facturitrendy/internal/application/billing"
	"github.com/cstanesvoda/facturitrendy/internal/application/dto"
	"github.com/cstanesvoda/facturitrendy/internal/domain"
	"github.com/cstanesvoda/facturitrendy/internal/domain/entity"
	"github.com/cstanesvoda/facturitrendy/pkg/logger"
)

// UseCase consultă marketplace-ul cu credențialele utilizatorului curent.
type UseCase struct {
	newMarketplace billing.MarketplaceFactory
	log            *logger.Logger
}

func NewUseCase(newMarketplace billing.MarketplaceFactory, log *logger.Logger) *UseCase {
	return &UseCase{newMarketplace: newMarketplace, log: log}
}

func (uc *UseCase) client(user *entity.User) (billing.MarketplaceClient, error) {
	if !user.Trendyol.Configured() {
		return nil, domain.ErrTrendyolNotConfigured
	}
	return uc.newMarketplace(user.Trendyol), nil
}

// List întoarce pagina de comenzi cerută, cu filtrele aplicate.
func (uc *UseCase) List(ctx context.Context, user *entity.User, q dto.OrderQuery) (*entity.OrderPage, error) {
	client, err := uc.client(user)
	if err != nil {
		return nil, err
	}
	q.Defaults()
	return client.GetOrders(ctx, q)
}

// Packages întoarce pachetele de livrare, nealterate, așa cum le dă API-ul.
func (uc *UseCase) Packages(ctx context.Context, user *entity.User, q dto.PackageQuery) (json.RawMessage, error) {
	client, err := uc.client(user)
	if err != nil {
		return nil, err
	}
	return client.GetShipmentPackages(ctx, q)
}

// Products întoarce catalogul de produse al vânzătorului.
func (uc *UseCase) Products(ctx context.Context, user *entity.User, q dto.ProductQuery) (json.RawMessage, error) {
	client, err := uc.client(user)
	if err != nil {
		return nil, err
	}
	return client.GetProducts(ctx, q)
}

// ShippingLabel întoarce eticheta de livrare (PDF/ZPL) a unui pachet.
func (uc *UseCase) ShippingLabel(ctx context.Context, user *entity.User, packageID string) ([]byte, error) {
	client, err := uc.client(user)
	if err != nil {
		return nil, err
	}
	return client.GetShippingLabel(ctx, packageID)
}
