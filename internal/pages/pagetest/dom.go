// Package pagetest provides an in-memory stand-in for a playwright page so page objects can be
// tested without a browser.
//
// Elements are registered under the selector key the page object will build. Chained calls compose
// keys the same way playwright composes selectors, see Text, Role, HasText, HasNotText and Nth.
package pagetest

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"sync"
)

// Errors returned by fake locators
var (
	ErrNotFound = errors.New("pagetest: element not found")
	ErrTimeout  = errors.New("pagetest: timeout exceeded")
)

// Element is the state behind one selector key
type Element struct {
	Count   int
	Visible bool
	Text    string
	Texts   []string
	Attrs   map[string]string
	Value   string
	Checked bool

	// Err is returned from every read and action on the element
	Err error

	// OnClick runs after a successful click, check or uncheck, outside the DOM lock
	OnClick func()

	// OnFill runs after a successful fill
	OnFill func(value string)

	Clicks int
}

// Visible returns a single visible element with the given text
func Visible(text string) *Element {
	return &Element{Count: 1, Visible: true, Text: text}
}

// Hidden returns a single element that is attached but not visible
func Hidden() *Element {
	return &Element{Count: 1}
}

// List returns count visible elements whose text contents are texts
func List(texts ...string) *Element {
	return &Element{Count: len(texts), Visible: len(texts) > 0, Texts: texts}
}

// DOM is a thread-safe registry of elements keyed by selector
type DOM struct {
	mu       sync.Mutex
	elements map[string]*Element
}

// NewDOM creates an empty DOM
func NewDOM() *DOM {
	return &DOM{elements: make(map[string]*Element)}
}

// Set registers el under key, replacing anything already there
func (d *DOM) Set(key string, el *Element) *Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.elements[key] = el
	return el
}

// Remove detaches the element under key
func (d *DOM) Remove(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.elements, key)
}

// Update mutates the element under key while holding the DOM lock. Missing keys are created.
func (d *DOM) Update(key string, fn func(el *Element)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	el, ok := d.elements[key]
	if !ok {
		el = &Element{}
		d.elements[key] = el
	}
	fn(el)
}

// Snapshot returns a copy of the element under key, and whether it exists
func (d *DOM) Snapshot(key string) (Element, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	el, ok := d.resolve(key)
	if !ok {
		return Element{}, false
	}
	return el.view, true
}

// Clicks reports how many times the element under key was clicked
func (d *DOM) Clicks(key string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if el, ok := d.elements[key]; ok {
		return el.Clicks
	}
	return 0
}

var nthSuffix = regexp.MustCompile(`^(.*) >> nth=(\d+)$`)

// resolved pairs the element as seen by reads with the element that receives clicks and writes
type resolved struct {
	view   Element
	target *Element
}

// resolve finds the element behind key. An unregistered nth key is derived from its parent list.
// Callers hold d.mu.
func (d *DOM) resolve(key string) (resolved, bool) {
	if el, ok := d.elements[key]; ok {
		return resolved{view: *el, target: el}, true
	}
	m := nthSuffix.FindStringSubmatch(key)
	if m == nil {
		return resolved{}, false
	}
	i, _ := strconv.Atoi(m[2])
	parent, ok := d.resolve(m[1])
	if !ok || i >= parent.view.Count {
		return resolved{}, false
	}
	view := parent.view
	view.Count = 1
	if i < len(view.Texts) {
		view.Text = view.Texts[i]
	}
	view.Texts = []string{view.Text}
	return resolved{view: view, target: parent.target}, true
}

// Text is the key built by GetByText
func Text(text interface{}, exact bool) string {
	if re, ok := text.(*regexp.Regexp); ok {
		return "text=/" + re.String() + "/"
	}
	if exact {
		return fmt.Sprintf("text=%q", text)
	}
	return fmt.Sprintf("text=%v", text)
}

// Role is the key built by GetByRole
func Role(role, name string) string {
	return fmt.Sprintf("role=%s[name=%q]", role, name)
}

// HasText is the key built by Filter with HasText
func HasText(key string, text interface{}) string {
	return key + " >> has-text=" + filterValue(text)
}

// HasNotText is the key built by Filter with HasNotText
func HasNotText(key string, text interface{}) string {
	return key + " >> has-not-text=" + filterValue(text)
}

// Nth is the key built by Nth, and by First with i set to 0
func Nth(key string, i int) string {
	return key + " >> nth=" + strconv.Itoa(i)
}

func filterValue(v interface{}) string {
	if re, ok := v.(*regexp.Regexp); ok {
		return "/" + re.String() + "/"
	}
	return fmt.Sprintf("%q", fmt.Sprint(v))
}
