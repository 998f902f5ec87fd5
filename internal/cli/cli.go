package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/testathon/storefront-e2e/internal/config"
	"github.com/testathon/storefront-e2e/internal/session"
)

// Errors that make the CLI exit non-zero after a completed run
var (
	ErrCheckFailed = errors.New("storefront check failed")
	ErrCartLeak    = errors.New("cart leaked between users")
)

// SessionOpener opens a browser session and returns a func that releases everything it started
type SessionOpener func(ctx context.Context) (*session.Session, func() error, error)

// Dependencies holds all dependencies needed by the commands
type Dependencies struct {
	Config  *config.Config
	Log     logrus.FieldLogger
	Out     io.Writer
	Open    SessionOpener
	Install func(browsers ...string) error
}

// LaunchOpener opens sessions on a freshly launched browser, closed again by the release func
func LaunchOpener(cfg *config.Config, log logrus.FieldLogger) SessionOpener {
	return func(ctx context.Context) (*session.Session, func() error, error) {
		launcher, err := session.Launch(cfg, log)
		if err != nil {
			return nil, nil, err
		}
		s, err := launcher.NewSession(ctx)
		if err != nil {
			_ = launcher.Close()
			return nil, nil, err
		}
		release := func() error {
			return errors.Join(s.Close(), launcher.Close())
		}
		return s, release, nil
	}
}

// WithSignals returns a context cancelled on SIGINT or SIGTERM
func WithSignals(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// withSession opens a session, runs fn and always releases the session
func withSession(ctx context.Context, deps Dependencies, fn func(s *session.Session) error) (err error) {
	s, release, err := deps.Open(ctx)
	if err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	defer func() {
		if cerr := release(); cerr != nil {
			deps.Log.WithError(cerr).Warn("session release failed")
		}
	}()
	return fn(s)
}

var (
	passLabel = color.New(color.FgGreen, color.Bold).SprintFunc()
	failLabel = color.New(color.FgRed, color.Bold).SprintFunc()
)

func status(ok bool) string {
	if ok {
		return passLabel("PASS")
	}
	return failLabel("FAIL")
}
