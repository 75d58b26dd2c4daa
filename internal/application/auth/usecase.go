// Package auth conține autentificarea operatorilor aplicației.
package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/cstanesvoda/facturitrendy/internal/application/dto"
	"github.com/cstanesvoda/facturitrendy/internal/domain"
	"github.com/cstanesvoda/facturitrendy/internal/domain/repository"
	"github.com/cstanesvoda/facturitrendy/pkg/jwt"
	"github.com/cstanesvoda/facturitrendy/pkg/logger"
)

// UseCase verifică parola și emite token-uri JWT.
type UseCase struct {
	users      repository.UserRepository
	jwtSecret  string
	jwtIssuer  string
	expMinutes int
	log        *logger.Logger
}

func NewUseCase(users repository.UserRepository, jwtSecret, jwtIssuer string, expMinutes int, log *logger.Logger) *UseCase {
	return &UseCase{
		users:      users,
		jwtSecret:  jwtSecret,
		jwtIssuer:  jwtIssuer,
		expMinutes: expMinutes,
		log:        log,
	}
}

// Login verifică username + parola și întoarce un token de sesiune.
// Răspunsul nu distinge între utilizator inexistent și parolă greșită.
func (uc *UseCase) Login(req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.GetByUsername(req.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		uc.log.Warn().Str("username", req.Username).Msg("autentificare eșuată")
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.jwtSecret, user.ID, user.Role, uc.jwtIssuer, uc.expMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  dto.NewUserResponse(user),
	}, nil
}
