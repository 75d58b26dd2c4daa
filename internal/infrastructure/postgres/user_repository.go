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
	"github.com/cstanesvoda/facturitrendy/internal/infrastructure/secretbox"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementează portul UserRepository peste PostgreSQL.
// Credențialele API sunt sigilate cu cheia master la scriere și
// deschise la citire; în baza de date nu ajung niciodată în clar.
type UserRepo struct {
	pool  *pgxpool.Pool
	vault *secretbox.Vault
}

func NewUserRepository(pool *pgxpool.Pool, vault *secretbox.Vault) *UserRepo {
	return &UserRepo{pool: pool, vault: vault}
}

const userColumns = `
	id, username, password_hash, role,
	trendyol_api_key, trendyol_api_secret, trendyol_supplier_id,
	smartbill_token, smartbill_email, smartbill_cif, smartbill_warehouse,
	created_at, updated_at`

// Create inserează utilizatorul; ErrUsernameTaken dacă username-ul există.
func (r *UserRepo) Create(u *entity.User) error {
	sealed, err := r.sealCredentials(u)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO users (
			id, username, password_hash, role,
			trendyol_api_key, trendyol_api_secret, trendyol_supplier_id,
			smartbill_token, smartbill_email, smartbill_cif, smartbill_warehouse,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err = r.pool.Exec(context.Background(), query,
		u.ID, u.Username, u.PasswordHash, u.Role,
		sealed.trendyolKey, sealed.trendyolSecret, sealed.trendyolSupplier,
		sealed.smartbillToken, sealed.smartbillEmail, sealed.smartbillCIF, sealed.smartbillWarehouse,
		u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID întoarce utilizatorul cu id-ul dat sau nil.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	return r.findOne(`SELECT`+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByUsername întoarce utilizatorul cu username-ul dat sau nil.
func (r *UserRepo) GetByUsername(username string) (*entity.User, error) {
	return r.findOne(`SELECT`+userColumns+` FROM users WHERE username = $1`, username)
}

// List întoarce toți utilizatorii, în ordinea creării.
func (r *UserRepo) List() ([]*entity.User, error) {
	query := `SELECT` + userColumns + ` FROM users ORDER BY created_at`
	rows, err := r.pool.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	defer rows.Close()

	var out []*entity.User
	for rows.Next() {
		u, err := r.scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterare users: %w", err)
	}
	return out, nil
}

// Update rescrie utilizatorul, cu credențialele sigilate din nou.
func (r *UserRepo) Update(u *entity.User) error {
	sealed, err := r.sealCredentials(u)
	if err != nil {
		return err
	}
	query := `
		UPDATE users SET
			username = $1, password_hash = $2, role = $3,
			trendyol_api_key = $4, trendyol_api_secret = $5, trendyol_supplier_id = $6,
			smartbill_token = $7, smartbill_email = $8, smartbill_cif = $9, smartbill_warehouse = $10,
			updated_at = $11
		WHERE id = $12`
	tag, err := r.pool.Exec(context.Background(), query,
		u.Username, u.PasswordHash, u.Role,
		sealed.trendyolKey, sealed.trendyolSecret, sealed.trendyolSupplier,
		sealed.smartbillToken, sealed.smartbillEmail, sealed.smartbillCIF, sealed.smartbillWarehouse,
		u.UpdatedAt, u.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Delete șterge utilizatorul și, prin FK în cascadă, legăturile lui.
func (r *UserRepo) Delete(id string) error {
	tag, err := r.pool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) findOne(query string, arg any) (*entity.User, error) {
	row := r.pool.QueryRow(context.Background(), query, arg)
	u, err := r.scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

type sealedCredentials struct {
	trendyolKey        string
	trendyolSecret     string
	trendyolSupplier   string
	smartbillToken     string
	smartbillEmail     string
	smartbillCIF       string
	smartbillWarehouse string
}

func (r *UserRepo) sealCredentials(u *entity.User) (*sealedCredentials, error) {
	var s sealedCredentials
	var err error
	seal := func(dst *string, plain string) {
		if err != nil {
			return
		}
		*dst, err = r.vault.Seal(plain)
	}
	seal(&s.trendyolKey, u.Trendyol.APIKey)
	seal(&s.trendyolSecret, u.Trendyol.APISecret)
	seal(&s.trendyolSupplier, u.Trendyol.SupplierID)
	seal(&s.smartbillToken, u.SmartBill.Token)
	seal(&s.smartbillEmail, u.SmartBill.Email)
	seal(&s.smartbillCIF, u.SmartBill.CompanyCIF)
	seal(&s.smartbillWarehouse, u.SmartBill.Warehouse)
	if err != nil {
		return nil, fmt.Errorf("sigilare credențiale: %w", err)
	}
	return &s, nil
}

func (r *UserRepo) scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var s sealedCredentials
	err := row.Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.Role,
		&s.trendyolKey, &s.trendyolSecret, &s.trendyolSupplier,
		&s.smartbillToken, &s.smartbillEmail, &s.smartbillCIF, &s.smartbillWarehouse,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}

	open := func(dst *string, sealed string) {
		if err != nil {
			return
		}
		*dst, err = r.vault.Open(sealed)
	}
	open(&u.Trendyol.APIKey, s.trendyolKey)
	open(&u.Trendyol.APISecret, s.trendyolSecret)
	open(&u.Trendyol.SupplierID, s.trendyolSupplier)
	open(&u.SmartBill.Token, s.smartbillToken)
	open(&u.SmartBill.Email, s.smartbillEmail)
	open(&u.SmartBill.CompanyCIF, s.smartbillCIF)
	open(&u.SmartBill.Warehouse, s.smartbillWarehouse)
	if err != nil {
		return nil, fmt.Errorf("desigilare credențiale: %w", err)
	}
	return &u, nil
}
