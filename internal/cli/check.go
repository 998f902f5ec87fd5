package cli

import (
	"context"
	"fmt"

	"github.com/testathon/storefront-e2e/internal/session"
)

// CheckResult is one line of the smoke check
type CheckResult struct {
	Name   string
	OK     bool
	Detail string
}

// RunCheck opens the storefront and reports whether its basic surfaces respond
func RunCheck(ctx context.Context, deps Dependencies) ([]CheckResult, error) {
	var results []CheckResult
	err := withSession(ctx, deps, func(s *session.Session) error {
		results = check(s)
		return nil
	})
	if err != nil {
		return nil, err
	}

	failed := 0
	for _, r := range results {
		fmt.Fprintf(deps.Out, "%s  %-16s %s\n", status(r.OK), r.Name, r.Detail)
		if !r.OK {
			failed++
		}
	}
	if failed > 0 {
		return results, fmt.Errorf("%w: %d of %d checks", ErrCheckFailed, failed, len(results))
	}
	return results, nil
}

func check(s *session.Session) []CheckResult {
	set := s.Pages
	var results []CheckResult
	add := func(name string, ok bool, detail string) {
		results = append(results, CheckResult{Name: name, OK: ok, Detail: detail})
	}

	openErr := set.Listing.Open()
	add("home page", openErr == nil, errDetail(openErr, set.Listing.CurrentURL()))

	title := set.Listing.PageTitle()
	add("title", title != "", fmt.Sprintf("%q", title))

	add("spinner settles", set.Listing.WaitForSpinner(), "")

	loadErr := set.Listing.WaitForProductsToLoad()
	count := set.Listing.ProductCount()
	add("products", loadErr == nil && count > 0, fmt.Sprintf("%d product(s) found", count))

	add("cart indicator", set.Cart.IsIndicatorVisible(), fmt.Sprintf("%d item(s)", set.Cart.ItemCount()))

	signInErr := set.SignIn.NavigateToSignIn()
	loaded := signInErr == nil && set.SignIn.IsSignInPageLoaded()
	add("sign in page", loaded, errDetail(signInErr, set.SignIn.CurrentURL()))

	return results
}

func errDetail(err error, otherwise string) string {
	if err != nil {
		return err.Error()
	}
	return otherwise
}
