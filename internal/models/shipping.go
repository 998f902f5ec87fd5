package models

import (
	"errors"
	"strings"
)

// ShippingDetails is what the checkout form asks for
type ShippingDetails struct {
	FirstName string
	LastName  string
	Address   string
	Province  string
	PostCode  string
}

// Domain errors
var (
	ErrMissingFirstName = errors.New("first name cannot be empty")
	ErrMissingLastName  = errors.New("last name cannot be empty")
	ErrMissingAddress   = errors.New("address cannot be empty")
	ErrMissingProvince  = errors.New("province cannot be empty")
	ErrMissingPostCode  = errors.New("post code cannot be empty")
)

// NewShippingDetails creates shipping details with validation
func NewShippingDetails(firstName, lastName, address, province, postCode string) (*ShippingDetails, error) {
	d := &ShippingDetails{
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Address:   strings.TrimSpace(address),
		Province:  strings.TrimSpace(province),
		PostCode:  strings.TrimSpace(postCode),
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// SampleShippingDetails returns the address the checkout scenarios submit
func SampleShippingDetails() ShippingDetails {
	return ShippingDetails{
		FirstName: "John",
		LastName:  "Doe",
		Address:   "123 Main St",
		Province:  "Ontario",
		PostCode:  "12345",
	}
}

// Validate reports every blank field, joined in form order
func (d ShippingDetails) Validate() error {
	checks := []struct {
		value string
		err   error
	}{
		{d.FirstName, ErrMissingFirstName},
		{d.LastName, ErrMissingLastName},
		{d.Address, ErrMissingAddress},
		{d.Province, ErrMissingProvince},
		{d.PostCode, ErrMissingPostCode},
	}

	var errs []error
	for _, c := range checks {
		if strings.TrimSpace(c.value) == "" {
			errs = append(errs, c.err)
		}
	}
	return errors.Join(errs...)
}

// FullName returns first and last name separated by a space
func (d ShippingDetails) FullName() string {
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}
