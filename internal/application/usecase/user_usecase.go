// Package usecase conține operațiile administrative: gestiunea
// utilizatorilor și a legăturilor comandă → factură.
package usecase

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/cstanesvoda/facturitrendy/internal/application/dto"
	"github.com/cstanesvoda/facturitrendy/internal/domain"
	"github.com/cstanesvoda/facturitrendy/internal/domain/entity"
	"github.com/cstanesvoda/facturitrendy/internal/domain/repository"
	"github.com/cstanesvoda/facturitrendy/pkg/logger"
)

// UserUseCase acoperă CRUD-ul de utilizatori, accesibil doar adminilor.
type UserUseCase struct {
	users repository.UserRepository
	log   *logger.Logger
}

func NewUserUseCase(users repository.UserRepository, log *logger.Logger) *UserUseCase {
	return &UserUseCase{users: users, log: log}
}

// List întoarce toți utilizatorii, fără credențiale în clar.
func (uc *UserUseCase) List() ([]dto.UserResponse, error) {
	users, err := uc.users.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.NewUserResponse(u))
	}
	return out, nil
}

// Get întoarce profilul unui utilizator.
func (uc *UserUseCase) Get(id string) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// Create adaugă un utilizator nou cu credențialele API primite.
func (uc *UserUseCase) Create(req dto.UpsertUserRequest) (*dto.UserResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return nil, domain.NewError(http.StatusBadRequest, "username și password sunt obligatorii")
	}
	role := req.Role
	if role == "" {
		role = entity.RoleUser
	}
	if role != entity.RoleUser && role != entity.RoleAdmin {
		return nil, domain.NewError(http.StatusBadRequest, "rol necunoscut: %s", role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         role,
		Trendyol: entity.TrendyolCredentials{
			APIKey:     req.TrendyolAPIKey,
			APISecret:  req.TrendyolAPISecret,
			SupplierID: req.TrendyolSupplierID,
		},
		SmartBill: entity.SmartBillCredentials{
			Token:      req.SmartBillToken,
			Email:      req.SmartBillEmail,
			CompanyCIF: req.SmartBillCIF,
			Warehouse:  req.SmartBillWarehouse,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.users.Create(user); err != nil {
		return nil, err
	}

	uc.log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("utilizator creat")
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// Update modifică un utilizator existent. Câmpurile goale din cerere
// păstrează valoarea curentă; parola goală nu se rescrie.
func (uc *UserUseCase) Update(id string, req dto.UpsertUserRequest) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	if username := strings.TrimSpace(req.Username); username != "" {
		user.Username = username
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if req.Role != "" {
		if req.Role != entity.RoleUser && req.Role != entity.RoleAdmin {
			return nil, domain.NewError(http.StatusBadRequest, "rol necunoscut: %s", req.Role)
		}
		user.Role = req.Role
	}
	if req.TrendyolAPIKey != "" {
		user.Trendyol.APIKey = req.TrendyolAPIKey
	}
	if req.TrendyolAPISecret != "" {
		user.Trendyol.APISecret = req.TrendyolAPISecret
	}
	if req.TrendyolSupplierID != "" {
		user.Trendyol.SupplierID = req.TrendyolSupplierID
	}
	if req.SmartBillToken != "" {
		user.SmartBill.Token = req.SmartBillToken
	}
	if req.SmartBillEmail != "" {
		user.SmartBill.Email = req.SmartBillEmail
	}
	if req.SmartBillCIF != "" {
		user.SmartBill.CompanyCIF = req.SmartBillCIF
	}
	if req.SmartBillWarehouse != "" {
		user.SmartBill.Warehouse = req.SmartBillWarehouse
	}
	user.UpdatedAt = time.Now()

	if err := uc.users.Update(user); err != nil {
		return nil, err
	}

	uc.log.Info().Str("user_id", user.ID).Msg("utilizator actualizat")
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// Delete șterge un utilizator. Adminul nu se poate șterge pe sine.
func (uc *UserUseCase) Delete(id, callerID string) error {
	if id == callerID {
		return domain.NewError(http.StatusBadRequest, "nu îți poți șterge propriul cont")
	}
	user, err := uc.users.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := uc.users.Delete(id); err != nil {
		return err
	}
	uc.log.Info().Str("user_id", id).Msg("utilizator șters")
	return nil
}
