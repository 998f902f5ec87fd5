// Package pages holds the page objects that drive the StackDemo storefront.
//
// Every page object is built on an explicit playwright.Page and reads state through probe, so a
// missing or slow element degrades to a default instead of failing the caller. Mutating actions
// return errors and always settle the spinner before returning.
package pages

import (
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"

	"github.com/testathon/storefront-e2e/internal/config"
	"github.com/testathon/storefront-e2e/internal/logger"
	"github.com/testathon/storefront-e2e/internal/probe"
	"github.com/testathon/storefront-e2e/internal/settle"
)

// Deps holds what every page object needs besides the page itself
type Deps struct {
	Target   config.TargetConfig
	Timeouts config.TimeoutConfig
	Log      logrus.FieldLogger
}

// NewDeps builds Deps from loaded configuration
func NewDeps(cfg *config.Config, log logrus.FieldLogger) Deps {
	return Deps{
		Target:   cfg.Target,
		Timeouts: cfg.Timeouts,
		Log:      log,
	}
}

// surface is the per-page plumbing shared by the page objects of one Set
type surface struct {
	page     playwright.Page
	reader   *probe.Reader
	settler  *settle.Settler
	target   config.TargetConfig
	timeouts config.TimeoutConfig
	log      logrus.FieldLogger
}

func newSurface(page playwright.Page, deps Deps) *surface {
	log := logger.OrDiscard(deps.Log)
	timeouts := deps.Timeouts.WithDefaults()
	reader := probe.NewReader(log, timeouts.Read)
	return &surface{
		page:     page,
		reader:   reader,
		settler:  settle.New(page.Locator(spinnerSelector), page, reader, timeouts, log),
		target:   deps.Target,
		timeouts: timeouts,
		log:      log,
	}
}

func (s *surface) visible(l probe.Waiter) bool {
	return s.reader.IsVisible(l, s.timeouts.Visibility).Value
}

func (s *surface) visibleSoon(l probe.Waiter) bool {
	return s.reader.IsVisible(l, s.timeouts.ShortVisibility).Value
}

// waitVisible is the failing counterpart of visible, for actions that cannot proceed without l
func (s *surface) waitVisible(l probe.Waiter, timeout time.Duration) error {
	return l.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(config.Millis(timeout)),
	})
}

func (s *surface) byText(text interface{}) playwright.Locator {
	return s.page.GetByText(text, playwright.PageGetByTextOptions{Exact: playwright.Bool(true)})
}

func (s *surface) link(name string) playwright.Locator {
	return s.page.GetByRole(*playwright.AriaRoleLink, playwright.PageGetByRoleOptions{Name: name})
}

func (s *surface) button(name string) playwright.Locator {
	return s.page.GetByRole(*playwright.AriaRoleButton, playwright.PageGetByRoleOptions{Name: name})
}
