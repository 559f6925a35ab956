package reservation

import (
	"errors"
	"strings"
)

var (
	ErrMissingFullName = errors.New("full name is required")
	ErrMissingCountry  = errors.New("country is required")
	ErrMissingPhone    = errors.New("phone is required")
)

// KYC is the buyer identification payload attached to an admission request.
// Only presence is validated here; format checks belong to the compliance
// service upstream.
type KYC struct {
	fullName string
	country  string
	phone    string
}

func NewKYC(fullName, country, phone string) (KYC, error) {
	fullName = strings.TrimSpace(fullName)
	country = strings.TrimSpace(country)
	phone = strings.TrimSpace(phone)

	if fullName == "" {
		return KYC{}, ErrMissingFullName
	}
	if country == "" {
		return KYC{}, ErrMissingCountry
	}
	if phone == "" {
		return KYC{}, ErrMissingPhone
	}
	return KYC{fullName: fullName, country: country, phone: phone}, nil
}

func (k KYC) FullName() string { return k.fullName }
func (k KYC) Country() string  { return k.country }
func (k KYC) Phone() string    { return k.phone }
