package pagetest

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// FakeLocator implements the subset of playwright.Locator the page objects use.
// Calling any other method panics on the nil embedded interface.
type FakeLocator struct {
	playwright.Locator
	dom *DOM
	key string
}

// Key returns the selector key this locator resolves
func (l *FakeLocator) Key() string {
	return l.key
}

func (l *FakeLocator) child(key string) playwright.Locator {
	return &FakeLocator{dom: l.dom, key: key}
}

func (l *FakeLocator) view() (Element, bool) {
	l.dom.mu.Lock()
	defer l.dom.mu.Unlock()
	r, ok := l.dom.resolve(l.key)
	return r.view, ok
}

func (l *FakeLocator) notFound() error {
	return fmt.Errorf("%w: %s", ErrNotFound, l.key)
}

// act applies fn to the element behind the locator and then runs its click hook
func (l *FakeLocator) act(fn func(el *Element) bool) error {
	l.dom.mu.Lock()
	r, ok := l.dom.resolve(l.key)
	if !ok || r.view.Count == 0 {
		l.dom.mu.Unlock()
		return l.notFound()
	}
	if r.view.Err != nil {
		l.dom.mu.Unlock()
		return r.view.Err
	}
	fire := fn(r.target)
	hook := r.target.OnClick
	l.dom.mu.Unlock()

	if fire && hook != nil {
		hook()
	}
	return nil
}

func (l *FakeLocator) WaitFor(options ...playwright.LocatorWaitForOptions) error {
	el, ok := l.view()
	if ok && el.Err != nil {
		return el.Err
	}
	visible := ok && el.Visible && el.Count > 0
	attached := ok && el.Count > 0

	state := playwright.WaitForSelectorStateVisible
	if len(options) > 0 && options[0].State != nil {
		state = options[0].State
	}

	var met bool
	switch *state {
	case *playwright.WaitForSelectorStateVisible:
		met = visible
	case *playwright.WaitForSelectorStateHidden:
		met = !visible
	case *playwright.WaitForSelectorStateAttached:
		met = attached
	case *playwright.WaitForSelectorStateDetached:
		met = !attached
	}
	if !met {
		return fmt.Errorf("%w: waiting for %s to be %s", ErrTimeout, l.key, *state)
	}
	return nil
}

func (l *FakeLocator) IsVisible(options ...playwright.LocatorIsVisibleOptions) (bool, error) {
	el, ok := l.view()
	return ok && el.Visible && el.Count > 0, nil
}

func (l *FakeLocator) Count() (int, error) {
	el, ok := l.view()
	if !ok {
		return 0, nil
	}
	if el.Err != nil {
		return 0, el.Err
	}
	return el.Count, nil
}

func (l *FakeLocator) TextContent(options ...playwright.LocatorTextContentOptions) (string, error) {
	el, ok := l.view()
	if !ok || el.Count == 0 {
		return "", l.notFound()
	}
	if el.Err != nil {
		return "", el.Err
	}
	return el.Text, nil
}

func (l *FakeLocator) AllTextContents() ([]string, error) {
	el, ok := l.view()
	if !ok {
		return []string{}, nil
	}
	if el.Err != nil {
		return nil, el.Err
	}
	if el.Texts != nil {
		return append([]string(nil), el.Texts...), nil
	}
	texts := make([]string, el.Count)
	for i := range texts {
		texts[i] = el.Text
	}
	return texts, nil
}

func (l *FakeLocator) GetAttribute(name string, options ...playwright.LocatorGetAttributeOptions) (string, error) {
	el, ok := l.view()
	if !ok || el.Count == 0 {
		return "", l.notFound()
	}
	if el.Err != nil {
		return "", el.Err
	}
	return el.Attrs[name], nil
}

func (l *FakeLocator) Click(options ...playwright.LocatorClickOptions) error {
	return l.act(func(el *Element) bool {
		el.Clicks++
		return true
	})
}

func (l *FakeLocator) Check(options ...playwright.LocatorCheckOptions) error {
	return l.act(func(el *Element) bool {
		if el.Checked {
			return false
		}
		el.Checked = true
		el.Clicks++
		return true
	})
}

func (l *FakeLocator) Uncheck(options ...playwright.LocatorUncheckOptions) error {
	return l.act(func(el *Element) bool {
		if !el.Checked {
			return false
		}
		el.Checked = false
		el.Clicks++
		return true
	})
}

func (l *FakeLocator) Fill(value string, options ...playwright.LocatorFillOptions) error {
	var hook func(string)
	err := l.act(func(el *Element) bool {
		el.Value = value
		hook = el.OnFill
		return false
	})
	if err == nil && hook != nil {
		hook(value)
	}
	return err
}

func (l *FakeLocator) Clear(options ...playwright.LocatorClearOptions) error {
	return l.act(func(el *Element) bool {
		el.Value = ""
		return false
	})
}

func (l *FakeLocator) First() playwright.Locator {
	return l.child(Nth(l.key, 0))
}

func (l *FakeLocator) Nth(index int) playwright.Locator {
	return l.child(Nth(l.key, index))
}

func (l *FakeLocator) Filter(options ...playwright.LocatorFilterOptions) playwright.Locator {
	key := l.key
	for _, o := range options {
		if o.HasText != nil {
			key = HasText(key, o.HasText)
		}
		if o.HasNotText != nil {
			key = HasNotText(key, o.HasNotText)
		}
	}
	return l.child(key)
}

func (l *FakeLocator) All() ([]playwright.Locator, error) {
	el, ok := l.view()
	if !ok {
		return nil, nil
	}
	if el.Err != nil {
		return nil, el.Err
	}
	all := make([]playwright.Locator, el.Count)
	for i := range all {
		all[i] = l.Nth(i)
	}
	return all, nil
}
