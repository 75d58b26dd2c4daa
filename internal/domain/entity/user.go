package entity

import "time"

// Roluri de utilizator.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// TrendyolCredentials sunt credențialele API Trendyol ale unui vânzător.
type TrendyolCredentials struct {
	APIKey     string
	APISecret  string
	SupplierID string
}

// Configured spune dacă toate cele trei câmpuri sunt setate.
func (c TrendyolCredentials) Configured() bool {
	return c.APIKey != "" && c.APISecret != "" && c.SupplierID != ""
}

// SmartBillCredentials sunt credențialele API SmartBill ale unui vânzător.
// Warehouse (gestiunea) este opțional: gol înseamnă facturare fără stoc.
type SmartBillCredentials struct {
	Token      string
	Email      string
	CompanyCIF string
	Warehouse  string
}

// Configured spune dacă token, email și CIF sunt setate (gestiunea nu e obligatorie).
func (c SmartBillCredentials) Configured() bool {
	return c.Token != "" && c.Email != "" && c.CompanyCIF != ""
}

// User este un operator al aplicației, cu credențialele sale decriptate.
// Criptarea/decriptarea la stocare este treaba stratului de persistență.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         string
	Trendyol     TrendyolCredentials
	SmartBill    SmartBillCredentials
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin spune dacă utilizatorul are rol de administrator.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
