package usecase

import (
	"net/http"
	"strings"

	"github.com/cstanesvoda/facturitrendy/internal/application/dto"
	"github.com/cstanesvoda/facturitrendy/internal/domain"
	"github.com/cstanesvoda/facturitrendy/internal/domain/entity"
	"github.com/cstanesvoda/facturitrendy/internal/domain/repository"
	"github.com/cstanesvoda/facturitrendy/pkg/logger"
)

// MappingUseCase acoperă administrarea legăturilor comandă → factură:
// corecții manuale când emiterea automată a mers pe un drum greșit.
type MappingUseCase struct {
	mappings repository.MappingRepository
	log      *logger.Logger
}

func NewMappingUseCase(mappings repository.MappingRepository, log *logger.Logger) *MappingUseCase {
	return &MappingUseCase{mappings: mappings, log: log}
}

// Create adaugă manual o legătură pentru utilizatorul dat.
func (uc *MappingUseCase) Create(userID string, req dto.MappingUpsertRequest) (*dto.MappingResponse, error) {
	if err := validateUpsert(req); err != nil {
		return nil, err
	}
	m := &entity.InvoiceMapping{
		UserID:      userID,
		OrderNumber: strings.TrimSpace(req.OrderNumber),
		Series:      req.Series,
		Number:      req.Number,
	}
	if err := uc.mappings.Create(m); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("user_id", userID).
		Str("order_number", m.OrderNumber).
		Msg("legătură comandă-factură adăugată manual")
	return toMappingResponse(m), nil
}

// Update rescrie seria și numărul unei legături existente.
func (uc *MappingUseCase) Update(id int64, userID string, req dto.MappingUpsertRequest) (*dto.MappingResponse, error) {
	if err := validateUpsert(req); err != nil {
		return nil, err
	}
	m, err := uc.mappings.GetByID(id, userID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	m.OrderNumber = strings.TrimSpace(req.OrderNumber)
	m.Series = req.Series
	m.Number = req.Number
	if err := uc.mappings.Update(m); err != nil {
		return nil, err
	}
	return toMappingResponse(m), nil
}

// Delete șterge o legătură; comanda redevine eligibilă pentru facturare.
func (uc *MappingUseCase) Delete(id int64, userID string) error {
	m, err := uc.mappings.GetByID(id, userID)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.ErrNotFound
	}
	if err := uc.mappings.Delete(id, userID); err != nil {
		return err
	}
	uc.log.Info().
		Int64("mapping_id", id).
		Str("order_number", m.OrderNumber).
		Msg("legătură comandă-factură ștearsă")
	return nil
}

// Search caută în toate legăturile, indiferent de utilizator (admin).
func (uc *MappingUseCase) Search(term string) ([]dto.MappingResponse, error) {
	mappings, err := uc.mappings.Search(strings.TrimSpace(term))
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
			Username:    m.Username,
		})
	}
	return out, nil
}

func validateUpsert(req dto.MappingUpsertRequest) error {
	if strings.TrimSpace(req.OrderNumber) == "" || req.Series == "" || req.Number == "" {
		return domain.NewError(http.StatusBadRequest, "order_id, series și number sunt obligatorii")
	}
	return nil
}

func toMappingResponse(m *entity.InvoiceMapping) *dto.MappingResponse {
	return &dto.MappingResponse{
		ID:          m.ID,
		OrderNumber: m.OrderNumber,
		Series:      m.Series,
		Number:      m.Number,
		CreatedAt:   m.CreatedAt,
	}
}
