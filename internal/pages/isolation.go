package pages

import (
	"context"
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/testathon/storefront-e2e/internal/credentials"
)

// IsolationReport is what one user saw in the cart after another user filled it on the same page
type IsolationReport struct {
	From   Identity
	To     Identity
	Before CartSnapshot
	After  CartSnapshot

	// Leaked holds item names from the first user's cart that the second user also sees
	Leaked []string
}

// Isolated reports whether the second user started with an empty cart
func (r IsolationReport) Isolated() bool {
	return r.After.ItemCount == 0 && len(r.After.ItemNames) == 0
}

// CheckCartIsolation signs in from, adds the first product, signs out, signs in to and compares
// the two carts. It only observes; deciding whether a leak fails anything is left to the caller.
func CheckCartIsolation(ctx context.Context, set *Set, from, to credentials.Credential) (IsolationReport, error) {
	log := set.surface.log.WithFields(logrus.Fields{"from": from.Name, "to": to.Name})
	var report IsolationReport

	if err := set.Listing.Open(); err != nil {
		return report, err
	}
	if err := set.SignIn.SignIn(from); err != nil {
		return report, err
	}
	report.From = set.SignIn.Identity()

	if err := ctx.Err(); err != nil {
		return report, err
	}
	if err := set.Listing.AddFirstProductToCart(); err != nil {
		return report, err
	}
	report.Before = set.Cart.Snapshot()

	if err := set.SignIn.Logout(); err != nil {
		return report, err
	}
	if err := ctx.Err(); err != nil {
		return report, err
	}
	if err := set.SignIn.SignIn(to); err != nil {
		return report, fmt.Errorf("second identity: %w", err)
	}
	report.To = set.SignIn.Identity()
	report.After = set.Cart.Snapshot()

	for _, name := range report.After.ItemNames {
		if slices.Contains(report.Before.ItemNames, name) {
			report.Leaked = append(report.Leaked, name)
		}
	}

	log.WithFields(logrus.Fields{
		"before":   report.Before.ItemCount,
		"after":    report.After.ItemCount,
		"isolated": report.Isolated(),
	}).Info("cart isolation checked")
	return report, nil
}
