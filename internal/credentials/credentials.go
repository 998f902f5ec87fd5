// Package credentials is the fixed directory of storefront accounts the scenarios sign in with.
package credentials

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnknownCredential is returned when a scenario asks for an identity that is not in the directory
var ErrUnknownCredential = errors.New("unknown credential")

// Credential is an immutable username/password pair with the reason the account exists
type Credential struct {
	Name        string
	Username    string
	Password    string
	Description string
}

const sharedPassword = "testingisfun99"

// Directory entries
var (
	NoImage = Credential{
		Name:        "NO_IMAGE_CREDS",
		Username:    "image_not_loading_user",
		Password:    sharedPassword,
		Description: "User account that simulates image loading problems",
	}
	Demo = Credential{
		Name:        "DEMO_USER",
		Username:    "demouser",
		Password:    sharedPassword,
		Description: "Standard demo user account",
	}
	ExistingOrders = Credential{
		Name:        "EXISTING_ORDERS_USER",
		Username:    "existing_orders_user",
		Password:    sharedPassword,
		Description: "User account with pre-existing orders",
	}
	Fav = Credential{
		Name:        "FAV_USER",
		Username:    "fav_user",
		Password:    sharedPassword,
		Description: "User account with favorite items",
	}
	Locked = Credential{
		Name:        "LOCKED_USER",
		Username:    "locked_user",
		Password:    sharedPassword,
		Description: "Locked user account for testing error scenarios",
	}
)

var directory = map[string]Credential{
	NoImage.Name:        NoImage,
	Demo.Name:           Demo,
	ExistingOrders.Name: ExistingOrders,
	Fav.Name:            Fav,
	Locked.Name:         Locked,
}

// Lookup returns the credential registered under name
func Lookup(name string) (Credential, error) {
	c, ok := directory[name]
	if !ok {
		return Credential{}, fmt.Errorf("%w: %q", ErrUnknownCredential, name)
	}
	return c, nil
}

// All returns every credential ordered by name
func All() []Credential {
	all := make([]Credential, 0, len(directory))
	for _, c := range directory {
		all = append(all, c)
	}
	slices.SortFunc(all, func(a, b Credential) int { return strings.Compare(a.Name, b.Name) })
	return all
}

// String hides the password so credentials can be logged
func (c Credential) String() string {
	return fmt.Sprintf("%s(%s)", c.Name, c.Username)
}
