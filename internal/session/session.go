package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/testathon/storefront-e2e/internal/logger"
	"github.com/testathon/storefront-e2e/internal/pages"
)

// Route patterns for traffic the scenarios interfere with
const (
	ImageRequests = "**/*.{png,jpg,jpeg,gif,webp}"
	APIRequests   = "**/api/**"
	CartRequests  = "**/cart/**"
	AllRequests   = "**/*"
)

const (
	clearStorageScript = `() => { localStorage.clear(); sessionStorage.clear(); }`
	corruptCartScript  = `() => { localStorage.setItem("cart", "invalid-json-data"); sessionStorage.setItem("cartItems", "corrupted-data"); }`
)

// Session is one isolated browser context and its first tab. Tabs opened with NewTab share the
// context's cookies and storage; separate Sessions share nothing.
type Session struct {
	ID      string
	Context playwright.BrowserContext
	Page    playwright.Page
	Pages   *pages.Set

	deps         pages.Deps
	artifactsDir string
	log          logrus.FieldLogger

	mu     sync.Mutex
	routes []string
}

// New wraps an open context and page
func New(id string, bctx playwright.BrowserContext, page playwright.Page, deps pages.Deps, artifactsDir string) *Session {
	deps.Log = logger.OrDiscard(deps.Log).WithField("session", id)
	return &Session{
		ID:           id,
		Context:      bctx,
		Page:         page,
		Pages:        pages.NewSet(page, deps),
		deps:         deps,
		artifactsDir: artifactsDir,
		log:          deps.Log,
	}
}

// NewTab opens another page in the same context
func (s *Session) NewTab() (*pages.Set, error) {
	page, err := s.Context.NewPage()
	if err != nil {
		return nil, fmt.Errorf("session %s: new tab: %w", s.ID, err)
	}
	return pages.NewSet(page, s.deps), nil
}

// ClearStorage empties local and session storage of the current origin and drops the context's cookies
func (s *Session) ClearStorage() error {
	if _, err := s.Page.Evaluate(clearStorageScript); err != nil {
		return fmt.Errorf("clear storage: %w", err)
	}
	if err := s.Context.ClearCookies(); err != nil {
		return fmt.Errorf("clear cookies: %w", err)
	}
	return nil
}

// CorruptCart overwrites the cart entries the storefront keeps in web storage with unparsable data
func (s *Session) CorruptCart() error {
	if _, err := s.Page.Evaluate(corruptCartScript); err != nil {
		return fmt.Errorf("corrupt cart storage: %w", err)
	}
	s.log.Debug("cart storage corrupted")
	return nil
}

// Block aborts every request matching pattern until Unblock
func (s *Session) Block(pattern string) error {
	err := s.Page.Route(pattern, func(route playwright.Route) {
		_ = route.Abort()
	})
	if err != nil {
		return fmt.Errorf("block %s: %w", pattern, err)
	}
	s.remember(pattern)
	s.log.WithField("pattern", pattern).Debug("requests blocked")
	return nil
}

// Throttle delays every request matching pattern by delay
func (s *Session) Throttle(pattern string, delay time.Duration) error {
	err := s.Page.Route(pattern, func(route playwright.Route) {
		time.Sleep(delay)
		_ = route.Continue()
	})
	if err != nil {
		return fmt.Errorf("throttle %s: %w", pattern, err)
	}
	s.remember(pattern)
	return nil
}

func (s *Session) remember(pattern string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes = append(s.routes, pattern)
}

// Unblock removes the handlers installed for pattern
func (s *Session) Unblock(pattern string) error {
	if err := s.Page.Unroute(pattern); err != nil {
		return fmt.Errorf("unblock %s: %w", pattern, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.routes[:0]
	for _, r := range s.routes {
		if r != pattern {
			kept = append(kept, r)
		}
	}
	s.routes = kept
	return nil
}

// UnblockAll removes every handler installed through Block and Throttle
func (s *Session) UnblockAll() error {
	s.mu.Lock()
	patterns := append([]string(nil), s.routes...)
	s.mu.Unlock()

	for _, p := range patterns {
		if err := s.Unblock(p); err != nil {
			return err
		}
	}
	return nil
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// ArtifactPath is where an artifact called name for this session is written
func (s *Session) ArtifactPath(name, ext string) string {
	return filepath.Join(s.artifactsDir, s.ID+"-"+unsafeFileChars.ReplaceAllString(name, "_")+ext)
}

// Screenshot saves a full page screenshot and returns its path
func (s *Session) Screenshot(name string) (string, error) {
	if err := os.MkdirAll(s.artifactsDir, 0o755); err != nil {
		return "", fmt.Errorf("create artifacts dir: %w", err)
	}
	path := s.ArtifactPath(name, ".png")
	if _, err := s.Page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	}); err != nil {
		return "", fmt.Errorf("screenshot %s: %w", name, err)
	}
	s.log.WithField("path", path).Info("screenshot saved")
	return path, nil
}

// Close closes the context and every tab in it
func (s *Session) Close() error {
	if err := s.Context.Close(); err != nil {
		return fmt.Errorf("close session %s: %w", s.ID, err)
	}
	return nil
}

// Each runs fn for every session concurrently. The first error cancels ctx for the others and is
// returned once all have finished.
func Each(ctx context.Context, sessions []*Session, fn func(ctx context.Context, s *Session) error) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, s := range sessions {
		g.Go(func() error {
			if err := fn(ctx, s); err != nil {
				return fmt.Errorf("session %s: %w", s.ID, err)
			}
			return nil
		})
	}
	return g.Wait()
}
