package checkout

import (
	"strings"

	"github.com/fjod/kshop/internal/domain"
)

const phoneDigits = 10

const (
	FieldName    = "name"
	FieldPhone   = "phone"
	FieldAddress = "address"
)

// Validate checks the delivery form. It returns a *ValidationError listing
// every failing field, or nil.
func Validate(info domain.UserInfo) error {
	fields := make(map[string]string)

	if strings.TrimSpace(info.Name) == "" {
		fields[FieldName] = "Name is required."
	}

	phone := strings.TrimSpace(info.Phone)
	switch {
	case phone == "":
		fields[FieldPhone] = "Phone number is required."
	case !isDigits(phone, phoneDigits):
		fields[FieldPhone] = "Phone number must be 10 digits."
	}

	if strings.TrimSpace(info.Address) == "" {
		fields[FieldAddress] = "Address is required."
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func normalize(info domain.UserInfo) domain.UserInfo {
	return domain.UserInfo{
		Name:                 strings.TrimSpace(info.Name),
		Phone:                strings.TrimSpace(info.Phone),
		Address:              strings.TrimSpace(info.Address),
		DeliveryInstructions: strings.TrimSpace(info.DeliveryInstructions),
	}
}
