// Package probe reads unreliable UI state and reports a best-effort value instead of failing.
//
// Every probe terminates within its timeout and never returns an error. When the DOM could not be
// read the probe logs the reason at debug level and returns the zero value with Observed set to false.
package probe

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"

	"github.com/testathon/storefront-e2e/internal/config"
	"github.com/testathon/storefront-e2e/internal/logger"
)

// Result is a value read from the UI together with whether the read actually succeeded
type Result[T any] struct {
	Value    T
	Observed bool
}

func observed[T any](v T) Result[T] {
	return Result[T]{Value: v, Observed: true}
}

// Waiter is the part of playwright.Locator used by visibility probes
type Waiter interface {
	WaitFor(options ...playwright.LocatorWaitForOptions) error
}

// Counter is the part of playwright.Locator used by Count
type Counter interface {
	Count() (int, error)
}

// TextReader is the part of playwright.Locator used by Text and NumericLabel
type TextReader interface {
	TextContent(options ...playwright.LocatorTextContentOptions) (string, error)
}

// TextsReader is the part of playwright.Locator used by Texts
type TextsReader interface {
	AllTextContents() ([]string, error)
}

// AttributeReader is the part of playwright.Locator used by Attribute
type AttributeReader interface {
	GetAttribute(name string, options ...playwright.LocatorGetAttributeOptions) (string, error)
}

// MinWait is the shortest wait a probe hands to playwright. Playwright reads a zero timeout as
// "wait forever", so non-positive timeouts are raised to it.
const MinWait = time.Millisecond

func waitMillis(d time.Duration) *float64 {
	if d < MinWait {
		d = MinWait
	}
	return playwright.Float(config.Millis(d))
}

// Reader performs probes with a shared logger and read timeout
type Reader struct {
	log         logrus.FieldLogger
	readTimeout time.Duration
}

// NewReader creates a Reader. A nil logger discards output and a non-positive read timeout
// takes the configured default.
func NewReader(log logrus.FieldLogger, readTimeout time.Duration) *Reader {
	if readTimeout <= 0 {
		readTimeout = config.DefaultTimeouts().Read
	}
	return &Reader{
		log:         logger.OrDiscard(log),
		readTimeout: readTimeout,
	}
}

func (r *Reader) fallback(probe string, reason interface{}) {
	r.log.WithFields(logrus.Fields{
		"probe":  probe,
		"reason": fmt.Sprint(reason),
	}).Debug("probe fell back to default")
}

// recoverInto turns a driver panic into the probe's fallback value
func recoverInto[T any](r *Reader, probe string, res *Result[T], fallback T) {
	if p := recover(); p != nil {
		r.fallback(probe, p)
		*res = Result[T]{Value: fallback}
	}
}

// IsVisible waits up to timeout for the element to become visible
func (r *Reader) IsVisible(l Waiter, timeout time.Duration) (res Result[bool]) {
	defer recoverInto(r, "IsVisible", &res, false)
	err := l.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: waitMillis(timeout),
	})
	if err != nil {
		r.fallback("IsVisible", err)
		return Result[bool]{}
	}
	return observed(true)
}

// IsHidden waits up to timeout for the element to be hidden or detached
func (r *Reader) IsHidden(l Waiter, timeout time.Duration) (res Result[bool]) {
	defer recoverInto(r, "IsHidden", &res, false)
	err := l.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateHidden,
		Timeout: waitMillis(timeout),
	})
	if err != nil {
		r.fallback("IsHidden", err)
		return Result[bool]{}
	}
	return observed(true)
}

// Count returns the number of matching elements, 0 when the query fails
func (r *Reader) Count(l Counter) (res Result[int]) {
	defer recoverInto(r, "Count", &res, 0)
	n, err := l.Count()
	if err != nil {
		r.fallback("Count", err)
		return Result[int]{}
	}
	return observed(n)
}

// Text returns the element's text content, "" when it cannot be read within the read timeout
func (r *Reader) Text(l TextReader) (res Result[string]) {
	defer recoverInto(r, "Text", &res, "")
	s, err := l.TextContent(playwright.LocatorTextContentOptions{
		Timeout: waitMillis(r.readTimeout),
	})
	if err != nil {
		r.fallback("Text", err)
		return Result[string]{}
	}
	return observed(s)
}

// Texts returns the text content of every matching element
func (r *Reader) Texts(l TextsReader) (res Result[[]string]) {
	defer recoverInto(r, "Texts", &res, []string{})
	texts, err := l.AllTextContents()
	if err != nil {
		r.fallback("Texts", err)
		return Result[[]string]{Value: []string{}}
	}
	if texts == nil {
		texts = []string{}
	}
	return observed(texts)
}

// Attribute returns the named attribute, "" when absent or unreadable
func (r *Reader) Attribute(l AttributeReader, name string) (res Result[string]) {
	defer recoverInto(r, "Attribute", &res, "")
	v, err := l.GetAttribute(name, playwright.LocatorGetAttributeOptions{
		Timeout: waitMillis(r.readTimeout),
	})
	if err != nil {
		r.fallback("Attribute", err)
		return Result[string]{}
	}
	return observed(v)
}

// NumericLabel reads the element's text and extracts the first integer matched by pattern
func (r *Reader) NumericLabel(l TextReader, pattern *regexp.Regexp) Result[int] {
	text := r.Text(l)
	if !text.Observed {
		return Result[int]{}
	}
	res := ParseNumericLabel(text.Value, pattern)
	if !res.Observed {
		r.fallback("NumericLabel", fmt.Sprintf("%q does not match %s", text.Value, pattern))
	}
	return res
}

// ParseNumericLabel extracts an integer from text. Capture group 1 is used when the pattern has one,
// otherwise the whole match. Anything that does not parse yields an unobserved 0.
func ParseNumericLabel(text string, pattern *regexp.Regexp) Result[int] {
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return Result[int]{}
	}
	digits := m[0]
	if len(m) > 1 {
		digits = m[1]
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return Result[int]{}
	}
	return observed(n)
}
