package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/testathon/storefront-e2e/internal/credentials"
	"github.com/testathon/storefront-e2e/internal/pages"
	"github.com/testathon/storefront-e2e/internal/session"
)

// RunIsolation fills the cart as one user, signs in as another and reports what the second user sees
func RunIsolation(ctx context.Context, deps Dependencies, fromName, toName string) (pages.IsolationReport, error) {
	from, err := credentials.Lookup(fromName)
	if err != nil {
		return pages.IsolationReport{}, err
	}
	to, err := credentials.Lookup(toName)
	if err != nil {
		return pages.IsolationReport{}, err
	}

	var report pages.IsolationReport
	err = withSession(ctx, deps, func(s *session.Session) error {
		var err error
		report, err = pages.CheckCartIsolation(ctx, s.Pages, from, to)
		return err
	})
	if err != nil {
		return report, err
	}

	printIsolation(deps.Out, report)
	if !report.Isolated() {
		return report, fmt.Errorf("%w: %s sees %d item(s) left by %s", ErrCartLeak, report.To, report.After.ItemCount, report.From)
	}
	return report, nil
}

func printIsolation(out io.Writer, r pages.IsolationReport) {
	fmt.Fprintf(out, "first user:  %s, cart %d [%s]\n", r.From, r.Before.ItemCount, strings.Join(r.Before.ItemNames, ", "))
	fmt.Fprintf(out, "second user: %s, cart %d [%s]\n", r.To, r.After.ItemCount, strings.Join(r.After.ItemNames, ", "))
	if r.Isolated() {
		fmt.Fprintf(out, "%s  carts are isolated\n", status(true))
		return
	}
	fmt.Fprintf(out, "%s  cart leaked: %s\n", status(false), strings.Join(r.Leaked, ", "))
}
