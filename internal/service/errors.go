package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrValidation       = errors.New("validation failed")
	ErrConflict         = errors.New("conflict")
	ErrCapacity         = errors.New("slot is full")
	ErrAlreadyBooked    = errors.New("slot already booked by student")
	ErrAlreadyCancelled = errors.New("booking already cancelled")
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("forbidden")
)

// validationError оборачивает ошибку validator в ErrValidation с перечнем полей
func validationError(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	fields := make([]string, 0, len(ve))
	for _, fieldErr := range ve {
		if fieldErr.Param() != "" {
			fields = append(fields, fmt.Sprintf("%s (%s=%s)", fieldErr.Field(), fieldErr.Tag(), fieldErr.Param()))
		} else {
			fields = append(fields, fmt.Sprintf("%s (%s)", fieldErr.Field(), fieldErr.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(fields, ", "))
}
