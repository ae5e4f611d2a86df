package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9\s\-]{7,15}$`)
)

// init registers the domain rules on gin's binding engine so request structs
// can enforce them with binding tags.
func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("phone", validatePhone)
	_ = v.RegisterValidation("service_type", validateServiceType)
	_ = v.RegisterValidation("booking_status", validateBookingStatus)
	_ = v.RegisterValidation("vehicle_type", validateVehicleType)
}

// validatePhone checks if phone number is in an accepted local or E.164-ish format
func validatePhone(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(strings.TrimSpace(fl.Field().String()))
}

// validateServiceType checks if a review/booking target kind is valid
func validateServiceType(fl validator.FieldLevel) bool {
	return contains([]string{"guide", "vehicle"}, fl.Field().String())
}

// validateBookingStatus checks if booking status is valid
func validateBookingStatus(fl validator.FieldLevel) bool {
	return contains([]string{"pending", "confirmed", "completed", "cancelled"}, fl.Field().String())
}

// validateVehicleType checks if vehicle type is one of the supported kinds
func validateVehicleType(fl validator.FieldLevel) bool {
	return contains([]string{"car", "van", "tuktuk", "bus", "suv"}, fl.Field().String())
}

func contains(slice []string, item string) bool {
	item = strings.ToLower(strings.TrimSpace(item))
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// ValidateEmail validates email format
func ValidateEmail(email string) bool {
	email = strings.TrimSpace(email)
	return len(email) > 0 && emailRegex.MatchString(email)
}

// ValidatePhoneNumber validates phone number format
func ValidatePhoneNumber(phone string) bool {
	return phoneRegex.MatchString(strings.TrimSpace(phone))
}

// ValidateRating validates rating value (1-5)
func ValidateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5, got: %d", rating)
	}
	return nil
}

// ValidateStringLength bounds the trimmed length in characters, not bytes,
// so Sinhala or Tamil text is not cut short.
func ValidateStringLength(s string, min, max int) error {
	length := utf8.RuneCountInString(strings.TrimSpace(s))
	if length < min {
		return fmt.Errorf("string length must be at least %d characters, got: %d", min, length)
	}
	if max > 0 && length > max {
		return fmt.Errorf("string length must be at most %d characters, got: %d", max, length)
	}
	return nil
}
