// Package settle waits for the storefront to become quiet before state is read.
package settle

import (
	"context"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"

	"github.com/testathon/storefront-e2e/internal/config"
	"github.com/testathon/storefront-e2e/internal/logger"
	"github.com/testathon/storefront-e2e/internal/probe"
)

// LoadStateWaiter is the part of playwright.Page used to wait for network idle
type LoadStateWaiter interface {
	WaitForLoadState(options ...playwright.PageWaitForLoadStateOptions) error
}

// Settler runs the wait protocol for one page
type Settler struct {
	spinner  probe.Waiter
	page     LoadStateWaiter
	reader   *probe.Reader
	timeouts config.TimeoutConfig
	log      logrus.FieldLogger
	after    func(time.Duration) <-chan time.Time
}

// New creates a Settler. spinner locates the loading indicator; page may be nil when network idle
// waits are never needed. Non-positive timeouts take their defaults.
func New(spinner probe.Waiter, page LoadStateWaiter, reader *probe.Reader, timeouts config.TimeoutConfig, log logrus.FieldLogger) *Settler {
	return &Settler{
		spinner:  spinner,
		page:     page,
		reader:   reader,
		timeouts: timeouts.WithDefaults(),
		log:      logger.OrDiscard(log),
		after:    time.After,
	}
}

// Settle waits for the spinner with the configured spinner timeout
func (s *Settler) Settle() bool {
	return s.WaitForSpinnerHidden(s.timeouts.Spinner)
}

// WaitForSpinnerHidden returns true once no spinner is visible. An absent spinner counts as hidden.
// A spinner still showing after timeout is logged and reported as false.
func (s *Settler) WaitForSpinnerHidden(timeout time.Duration) bool {
	if s.reader.IsHidden(s.spinner, timeout).Value {
		return true
	}
	s.log.WithField("timeout", timeout).Warn("spinner still visible, continuing")
	return false
}

// WaitForNetworkIdle waits for the networkidle load state
func (s *Settler) WaitForNetworkIdle(timeout time.Duration) (idle bool) {
	if s.page == nil {
		return false
	}
	defer func() {
		if p := recover(); p != nil {
			s.log.WithField("reason", p).Warn("network idle wait aborted")
			idle = false
		}
	}()
	err := s.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateNetworkidle,
		Timeout: playwright.Float(config.Millis(max(timeout, probe.MinWait))),
	})
	if err != nil {
		s.log.WithError(err).WithField("timeout", timeout).Warn("network did not go idle")
		return false
	}
	return true
}

// Pause sleeps for d. Only used where the UI offers nothing to wait on.
func (s *Settler) Pause(ctx context.Context, d time.Duration, reason string) {
	s.log.WithFields(logrus.Fields{"duration": d, "reason": reason}).Debug("pausing")
	select {
	case <-ctx.Done():
	case <-s.after(d):
	}
}

// PollUntil evaluates cond every poll interval until it holds, the timeout elapses or ctx is done.
// A non-positive timeout checks cond once.
func (s *Settler) PollUntil(ctx context.Context, timeout time.Duration, cond func() bool) bool {
	if cond() {
		return true
	}
	if timeout <= 0 {
		return false
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(s.timeouts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return false
		case <-deadline.C:
			// one last look so a condition that flips right at the deadline still counts
			return cond()
		case <-ticker.C:
			if cond() {
				return true
			}
		}
	}
}
