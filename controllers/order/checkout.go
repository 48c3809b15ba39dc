package orderControllers

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopsphere-dev/storefront-api/models"
)

// deliveryLeadTime is the fixed estimate shown on confirmation.
const deliveryLeadTime = 72 * time.Hour

var (
	cardNumberPattern = regexp.MustCompile(`^\d{16}$`)
	expiryPattern     = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvvPattern        = regexp.MustCompile(`^\d{3,4}$`)
	upiPattern        = regexp.MustCompile(`^[\w.-]+@[\w.-]+$`)
	emailPattern      = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	mobilePattern     = regexp.MustCompile(`^\d{10}$`)
)

// ErrValidation wraps every payment/shipping rejection so handlers can map
// the whole class to 400 with the specific message inline.
var ErrValidation = errors.New("validation failed")

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// PaymentDetails is the method selection plus its method-specific fields.
type PaymentDetails struct {
	Method     models.PaymentMethod `json:"method" binding:"required"`
	Name       string               `json:"name"`
	CardNumber string               `json:"card_number"`
	Expiry     string               `json:"expiry"`
	CVV        string               `json:"cvv"`
	UPIID      string               `json:"upi_id"`
	Bank       string               `json:"bank"`
}

// ValidatePayment gates the transition from payment selection to shipping.
func ValidatePayment(p PaymentDetails) error {
	return validatePaymentAt(p, time.Now())
}

func validatePaymentAt(p PaymentDetails, now time.Time) error {
	switch p.Method {
	case models.PaymentMethodCard:
		if strings.TrimSpace(p.Name) == "" {
			return validationError("name is required")
		}
		if !cardNumberPattern.MatchString(strings.ReplaceAll(p.CardNumber, " ", "")) {
			return validationError("card number must be 16 digits")
		}
		if !expiryPattern.MatchString(p.Expiry) {
			return validationError("expiry must be in MM/YY format")
		}
		if expired(p.Expiry, now) {
			return validationError("card is expired")
		}
		if !cvvPattern.MatchString(p.CVV) {
			return validationError("CVV must be 3 or 4 digits")
		}
	case models.PaymentMethodUPI:
		if !upiPattern.MatchString(p.UPIID) {
			return validationError("enter a valid UPI ID (eg: name@bank)")
		}
	case models.PaymentMethodNetBanking:
		if p.Bank == "" {
			return validationError("please select a bank")
		}
	case models.PaymentMethodCOD:
		// no validation
	default:
		return validationError("unknown payment method")
	}
	return nil
}

// expired reports whether an MM/YY expiry lies before the current month.
// Assumes the pattern already matched.
func expired(expiry string, now time.Time) bool {
	parts := strings.Split(expiry, "/")
	month, _ := strconv.Atoi(parts[0])
	year, _ := strconv.Atoi(parts[1])
	year += 2000
	if year != now.Year() {
		return year < now.Year()
	}
	return month < int(now.Month())
}

// ValidateShipping requires every field and pattern-checks email and mobile.
func ValidateShipping(s models.ShippingAddress) error {
	required := []struct {
		value, name string
	}{
		{s.FullName, "full name"},
		{s.Email, "email"},
		{s.Mobile, "mobile"},
		{s.Address, "address"},
		{s.City, "city"},
		{s.State, "state"},
		{s.PostalCode, "postal code"},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return validationError(f.name + " is required")
		}
	}
	if !emailPattern.MatchString(s.Email) {
		return validationError("invalid email address")
	}
	if !mobilePattern.MatchString(s.Mobile) {
		return validationError("mobile must be 10 digits")
	}
	return nil
}

// PaymentReference builds the summary persisted on the order. Raw card data
// is never stored.
func PaymentReference(p PaymentDetails) string {
	switch p.Method {
	case models.PaymentMethodCard:
		digits := strings.ReplaceAll(p.CardNumber, " ", "")
		if len(digits) >= 4 {
			return "card ending " + digits[len(digits)-4:]
		}
		return "card"
	case models.PaymentMethodUPI:
		return p.UPIID
	case models.PaymentMethodNetBanking:
		return p.Bank
	case models.PaymentMethodCOD:
		return "cash on delivery"
	}
	return ""
}
