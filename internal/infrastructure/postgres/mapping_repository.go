package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cstanesvoda/facturitrendy/internal/domain"
	"github.com/cstanesvoda/facturitrendy/internal/domain/entity"
	"github.com/cstanesvoda/facturitrendy/internal/domain/repository"
)

var _ repository.MappingRepository = (*MappingRepo)(nil)

// MappingRepo implementează portul MappingRepository peste PostgreSQL.
// Constraint-ul unic (user_id, order_number) din schemă susține invariantul
// "cel mult o factură per comandă per utilizator".
type MappingRepo struct {
	pool *pgxpool.Pool
}

func NewMappingRepository(pool *pgxpool.Pool) *MappingRepo {
	return &MappingRepo{pool: pool}
}

// GetByOrder întoarce legătura pentru (utilizator, comandă) sau nil.
func (r *MappingRepo) GetByOrder(userID, orderNumber string) (*entity.InvoiceMapping, error) {
	query := `
		SELECT id, user_id, order_number, series, number, created_at
		FROM order_invoices WHERE user_id = $1 AND order_number = $2`
	var m entity.InvoiceMapping
	err := r.pool.QueryRow(context.Background(), query, userID, orderNumber).Scan(
		&m.ID, &m.UserID, &m.OrderNumber, &m.Series, &m.Number, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select mapping după comandă: %w", err)
	}
	return &m, nil
}

// GetByID întoarce legătura utilizatorului cu id-ul dat sau nil.
func (r *MappingRepo) GetByID(id int64, userID string) (*entity.InvoiceMapping, error) {
	query := `
		SELECT id, user_id, order_number, series, number, created_at
		FROM order_invoices WHERE id = $1 AND user_id = $2`
	var m entity.InvoiceMapping
	err := r.pool.QueryRow(context.Background(), query, id, userID).Scan(
		&m.ID, &m.UserID, &m.OrderNumber, &m.Series, &m.Number, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select mapping după id: %w", err)
	}
	return &m, nil
}

// ListByUser întoarce toate legăturile unui utilizator, cele mai noi primele.
func (r *MappingRepo) ListByUser(userID string) ([]*entity.InvoiceMapping, error) {
	query := `
		SELECT id, user_id, order_number, series, number, created_at
		FROM order_invoices WHERE user_id = $1
		ORDER BY created_at DESC`
	rows, err := r.pool.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("select mappings utilizator: %w", err)
	}
	defer rows.Close()
	return scanMappings(rows, false)
}

// Create inserează o legătură nouă; ErrDuplicate dacă există deja una
// pentru aceeași comandă.
func (r *MappingRepo) Create(m *entity.InvoiceMapping) error {
	query := `
		INSERT INTO order_invoices (user_id, order_number, series, number)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	err := r.pool.QueryRow(context.Background(), query,
		m.UserID, m.OrderNumber, m.Series, m.Number,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert mapping: %w", err)
	}
	return nil
}

// Replace șterge orice rând anterior pentru (utilizator, comandă) și
// inserează unul nou, în aceeași tranzacție.
func (r *MappingRepo) Replace(m *entity.InvoiceMapping) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace mapping: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM order_invoices WHERE user_id = $1 AND order_number = $2`,
		m.UserID, m.OrderNumber,
	); err != nil {
		return fmt.Errorf("delete mapping vechi: %w", err)
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO order_invoices (user_id, order_number, series, number)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		m.UserID, m.OrderNumber, m.Series, m.Number,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert mapping nou: %w", err)
	}

	return tx.Commit(ctx)
}

// Update rescrie comanda, seria și numărul unei legături existente.
func (r *MappingRepo) Update(m *entity.InvoiceMapping) error {
	query := `
		UPDATE order_invoices
		SET order_number = $1, series = $2, number = $3
		WHERE id = $4 AND user_id = $5`
	tag, err := r.pool.Exec(context.Background(), query,
		m.OrderNumber, m.Series, m.Number, m.ID, m.UserID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update mapping: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete șterge legătura utilizatorului cu id-ul dat.
func (r *MappingRepo) Delete(id int64, userID string) error {
	tag, err := r.pool.Exec(context.Background(),
		`DELETE FROM order_invoices WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete mapping: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Search caută în toate legăturile (admin), cu username-ul proprietarului.
// Termenul gol întoarce tot.
func (r *MappingRepo) Search(term string) ([]*entity.InvoiceMapping, error) {
	query := `
		SELECT oi.id, oi.user_id, oi.order_number, oi.series, oi.number, oi.created_at, u.username
		FROM order_invoices oi
		JOIN users u ON u.id = oi.user_id
		WHERE $1 = ''
		   OR oi.order_number ILIKE '%' || $1 || '%'
		   OR oi.series ILIKE '%' || $1 || '%'
		   OR oi.number ILIKE '%' || $1 || '%'
		   OR u.username ILIKE '%' || $1 || '%'
		ORDER BY oi.created_at DESC`
	rows, err := r.pool.Query(context.Background(), query, term)
	if err != nil {
		return nil, fmt.Errorf("search mappings: %w", err)
	}
	defer rows.Close()
	return scanMappings(rows, true)
}

func scanMappings(rows pgx.Rows, withUsername bool) ([]*entity.InvoiceMapping, error) {
	var out []*entity.InvoiceMapping
	for rows.Next() {
		var m entity.InvoiceMapping
		var err error
		if withUsername {
			err = rows.Scan(&m.ID, &m.UserID, &m.OrderNumber, &m.Series, &m.Number, &m.CreatedAt, &m.Username)
		} else {
			err = rows.Scan(&m.ID, &m.UserID, &m.OrderNumber, &m.Series, &m.Number, &m.CreatedAt)
		}
		if err != nil {
			return nil, fmt.Errorf("scan mapping: %w", err)
		}
		out = append(out, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterare mappings: %w", err)
	}
	return out, nil
}
