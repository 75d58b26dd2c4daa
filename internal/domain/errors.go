package domain

import (
	"errors"
	"fmt"
)

// Erori de domeniu (fără dependențe externe).
var (
	ErrNotFound      = errors.New("resursă negăsită")
	ErrInvalidInput  = errors.New("date de intrare invalide")
	ErrDuplicate     = errors.New("resursă duplicată")
	ErrUnauthorized  = errors.New("neautorizat")
	ErrForbidden     = errors.New("acces interzis")
	ErrConflict      = errors.New("conflict cu starea curentă")
	ErrUserNotFound  = errors.New("utilizator negăsit")
	ErrUsernameTaken = errors.New("numele de utilizator există deja")

	// Erori de configurare: lipsesc credențialele — nu se face niciun apel de rețea.
	ErrTrendyolNotConfigured  = errors.New("Trendyol credentials not configured")
	ErrSmartBillNotConfigured = errors.New("SmartBill credentials not configured")
)

// Error este o eroare structurată venită de la un furnizor extern:
// mesaj plus cod de stare HTTP. Niciodată text brut de excepție necategorisit.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

// NewError construiește o eroare structurată cu status HTTP.
func NewError(status int, format string, args ...any) *Error {
	return &Error{Status: status, Message: fmt.Sprintf(format, args...)}
}

// StatusOf extrage codul de stare dintr-o eroare structurată; 0 dacă nu este una.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}
