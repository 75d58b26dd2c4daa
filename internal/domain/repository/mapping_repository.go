package repository

import "github.com/cstanesvoda/facturitrendy/internal/domain/entity"

// MappingRepository definește portul de persistență pentru legăturile
// comandă → factură. Constrângerea unică (user_id, order_number) din schemă
// garantează invariantul "cel mult o factură per comandă per utilizator".
type MappingRepository interface {
	// GetByOrder întoarce legătura pentru (utilizator, comandă) sau nil dacă nu există.
	GetByOrder(userID, orderNumber string) (*entity.InvoiceMapping, error)
	// GetByID întoarce legătura utilizatorului cu id-ul dat sau nil.
	GetByID(id int64, userID string) (*entity.InvoiceMapping, error)
	ListByUser(userID string) ([]*entity.InvoiceMapping, error)
	// Create inserează un rând nou; ErrDuplicate dacă legătura există deja.
	Create(m *entity.InvoiceMapping) error
	// Replace șterge orice rând anterior pentru (utilizator, comandă) și inserează
	// unul nou — folosit de fluxul bulk pentru a păstra invariantul de unicitate.
	Replace(m *entity.InvoiceMapping) error
	Update(m *entity.InvoiceMapping) error
	Delete(id int64, userID string) error
	// Search caută în toate legăturile (admin), cu username-ul proprietarului.
	Search(term string) ([]*entity.InvoiceMapping, error)
}
