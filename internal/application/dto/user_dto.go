package dto

import (
	"time"

	"github.com/cstanesvoda/facturitrendy/internal/domain/entity"
)

// LoginRequest cererea de autentificare.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse token-ul JWT plus profilul utilizatorului.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse profilul unui utilizator. Credențialele API nu se expun
// niciodată în clar; doar flag-urile "configurat".
type UserResponse struct {
	ID                  string    `json:"id"`
	Username            string    `json:"username"`
	Role                string    `json:"role"`
	TrendyolConfigured  bool      `json:"trendyol_configured"`
	SmartBillConfigured bool      `json:"smartbill_configured"`
	Warehouse           string    `json:"warehouse,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// NewUserResponse construiește profilul public al unui utilizator.
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:                  u.ID,
		Username:            u.Username,
		Role:                u.Role,
		TrendyolConfigured:  u.Trendyol.Configured(),
		SmartBillConfigured: u.SmartBill.Configured(),
		Warehouse:           u.SmartBill.Warehouse,
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
	}
}

// UpsertUserRequest cererea admin de creare/actualizare a unui utilizator.
// La update, câmpurile goale lasă valoarea existentă neschimbată
// (parola goală nu o rescrie).
type UpsertUserRequest struct {
	Username           string `json:"username"`
	Password           string `json:"password"`
	Role               string `json:"role"`
	TrendyolAPIKey     string `json:"trendyol_api_key"`
	TrendyolAPISecret  string `json:"trendyol_api_secret"`
	TrendyolSupplierID string `json:"trendyol_supplier_id"`
	SmartBillToken     string `json:"smartbill_api_token"`
	SmartBillEmail     string `json:"smartbill_email"`
	SmartBillCIF       string `json:"smartbill_company_cif"`
	SmartBillWarehouse string `json:"smartbill_gestiune"`
}
