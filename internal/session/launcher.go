// Package session launches browsers and owns the isolated browser contexts scenarios run in.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"

	"github.com/testathon/storefront-e2e/internal/config"
	"github.com/testathon/storefront-e2e/internal/logger"
	"github.com/testathon/storefront-e2e/internal/pages"
)

// Launcher owns the playwright driver and one browser process
type Launcher struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	cfg     *config.Config
	log     logrus.FieldLogger
}

// Install downloads the named browsers and the playwright driver
func Install(browsers ...string) error {
	if err := playwright.Install(&playwright.RunOptions{Browsers: browsers}); err != nil {
		return fmt.Errorf("install playwright browsers %v: %w", browsers, err)
	}
	return nil
}

// Launch starts the driver and the browser named in cfg
func Launch(cfg *config.Config, log logrus.FieldLogger) (*Launcher, error) {
	log = logger.OrDiscard(log)

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}

	bt, err := browserType(pw, cfg.Browser.Name)
	if err != nil {
		_ = pw.Stop()
		return nil, err
	}

	browser, err := bt.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Browser.Headless),
		SlowMo:   playwright.Float(config.Millis(cfg.Browser.SlowMo)),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("launch %s: %w", cfg.Browser.Name, err)
	}

	log.WithFields(logrus.Fields{
		"browser":  cfg.Browser.Name,
		"headless": cfg.Browser.Headless,
	}).Info("browser launched")

	return &Launcher{pw: pw, browser: browser, cfg: cfg, log: log}, nil
}

func browserType(pw *playwright.Playwright, name string) (playwright.BrowserType, error) {
	switch name {
	case config.BrowserChromium:
		return pw.Chromium, nil
	case config.BrowserFirefox:
		return pw.Firefox, nil
	case config.BrowserWebKit:
		return pw.WebKit, nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnsupportedBrowser, name)
	}
}

// NewSession opens a fresh browser context, so cookies and storage start empty
func (l *Launcher) NewSession(ctx context.Context) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bctx, err := l.browser.NewContext(playwright.BrowserNewContextOptions{
		BaseURL: playwright.String(l.cfg.Target.BaseURL),
	})
	if err != nil {
		return nil, fmt.Errorf("new browser context: %w", err)
	}

	page, err := bctx.NewPage()
	if err != nil {
		_ = bctx.Close()
		return nil, fmt.Errorf("new page: %w", err)
	}
	page.SetDefaultTimeout(config.Millis(l.cfg.Timeouts.PageLoad))

	return New(uuid.NewString(), bctx, page, pages.NewDeps(l.cfg, l.log), l.cfg.Browser.ArtifactsDir), nil
}

// NewSessions opens n independent sessions, closing the ones already opened if any fails
func (l *Launcher) NewSessions(ctx context.Context, n int) ([]*Session, error) {
	sessions := make([]*Session, 0, n)
	for i := 0; i < n; i++ {
		s, err := l.NewSession(ctx)
		if err != nil {
			for _, opened := range sessions {
				_ = opened.Close()
			}
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

// Close shuts the browser and the driver down
func (l *Launcher) Close() error {
	return errors.Join(l.browser.Close(), l.pw.Stop())
}
