package pagetest

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/playwright-community/playwright-go"
)

// FakePage implements the subset of playwright.Page the page objects use, backed by a DOM
type FakePage struct {
	playwright.Page
	DOM *DOM

	mu           sync.Mutex
	url          string
	title        string
	visits       []string
	reloads      int
	loadStateErr error
	downloadPath string
	scripts      []string

	// OnGoto runs after every navigation with the requested URL
	OnGoto func(url string)

	// OnReload runs after every reload
	OnReload func()
}

// NewPage creates a page on an empty DOM
func NewPage() *FakePage {
	return &FakePage{DOM: NewDOM(), url: "about:blank"}
}

// SetTitle sets the document title
func (p *FakePage) SetTitle(title string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.title = title
}

// SetURL moves the page without recording a visit, as a client-side redirect would
func (p *FakePage) SetURL(url string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.url = url
}

// SetLoadStateError makes WaitForLoadState fail with err
func (p *FakePage) SetLoadStateError(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loadStateErr = err
}

// SetDownload makes ExpectDownload report a file at path
func (p *FakePage) SetDownload(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.downloadPath = path
}

// Visits returns every URL passed to Goto
func (p *FakePage) Visits() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.visits...)
}

// Reloads returns how many times the page was reloaded
func (p *FakePage) Reloads() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reloads
}

func (p *FakePage) locator(key string) playwright.Locator {
	return &FakeLocator{dom: p.DOM, key: key}
}

func (p *FakePage) Locator(selector string, options ...playwright.PageLocatorOptions) playwright.Locator {
	return p.locator(selector)
}

func (p *FakePage) GetByText(text interface{}, options ...playwright.PageGetByTextOptions) playwright.Locator {
	exact := len(options) > 0 && options[0].Exact != nil && *options[0].Exact
	return p.locator(Text(text, exact))
}

func (p *FakePage) GetByRole(role playwright.AriaRole, options ...playwright.PageGetByRoleOptions) playwright.Locator {
	name := ""
	if len(options) > 0 && options[0].Name != nil {
		name = fmt.Sprint(options[0].Name)
	}
	return p.locator(Role(string(role), name))
}

func (p *FakePage) Goto(url string, options ...playwright.PageGotoOptions) (playwright.Response, error) {
	p.mu.Lock()
	p.url = url
	p.visits = append(p.visits, url)
	hook := p.OnGoto
	p.mu.Unlock()

	if hook != nil {
		hook(url)
	}
	return nil, nil
}

func (p *FakePage) Reload(options ...playwright.PageReloadOptions) (playwright.Response, error) {
	p.mu.Lock()
	p.reloads++
	hook := p.OnReload
	p.mu.Unlock()

	if hook != nil {
		hook()
	}
	return nil, nil
}

func (p *FakePage) URL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.url
}

func (p *FakePage) Title() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.title, nil
}

func (p *FakePage) WaitForLoadState(options ...playwright.PageWaitForLoadStateOptions) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loadStateErr
}

// WaitForURL understands regular expressions and globs of the form "**/path"
func (p *FakePage) WaitForURL(url interface{}, options ...playwright.PageWaitForURLOptions) error {
	current := p.URL()
	var ok bool
	switch u := url.(type) {
	case *regexp.Regexp:
		ok = u.MatchString(current)
	case string:
		ok = strings.Contains(current, strings.TrimRight(strings.TrimPrefix(u, "**"), "*"))
	}
	if !ok {
		return fmt.Errorf("%w: waiting for URL %v, at %s", ErrTimeout, url, current)
	}
	return nil
}

func (p *FakePage) ExpectDownload(cb func() error, options ...playwright.PageExpectDownloadOptions) (playwright.Download, error) {
	if err := cb(); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.downloadPath == "" {
		return nil, fmt.Errorf("%w: no download started", ErrTimeout)
	}
	return &FakeDownload{path: p.downloadPath}, nil
}

// Evaluate records the script and returns nil
func (p *FakePage) Evaluate(expression string, arg ...interface{}) (interface{}, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scripts = append(p.scripts, expression)
	return nil, nil
}

// Scripts returns every expression passed to Evaluate
func (p *FakePage) Scripts() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.scripts...)
}

// FakeDownload is a completed download
type FakeDownload struct {
	playwright.Download
	path string
}

func (d *FakeDownload) Path() (string, error) {
	return d.path, nil
}

func (d *FakeDownload) SuggestedFilename() string {
	return d.path[strings.LastIndex(d.path, "/")+1:]
}
