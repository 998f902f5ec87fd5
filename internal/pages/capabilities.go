package pages

import "fmt"

// SpinnerAware page objects can wait for the loading spinner to clear
type SpinnerAware interface {
	WaitForSpinner() bool
}

// NetworkAware page objects can wait for the network to go idle
type NetworkAware interface {
	WaitForPageLoad() bool
}

// ErrorMessageAware page objects can read the shared alert banners
type ErrorMessageAware interface {
	HasErrorMessage() bool
	ErrorMessageText() string
	HasSuccessMessage() bool
	SuccessMessageText() string
}

// Navigable page objects can move the page around the storefront
type Navigable interface {
	NavigateTo(path string) error
	Refresh() error
	CurrentURL() string
	PageTitle() string
}

// Spinner implements SpinnerAware
type Spinner struct {
	s *surface
}

// WaitForSpinner waits for the spinner with the configured timeout. False means it never cleared.
func (c Spinner) WaitForSpinner() bool {
	return c.s.settler.Settle()
}

// Network implements NetworkAware
type Network struct {
	s *surface
}

// WaitForPageLoad waits for network idle with the configured timeout
func (c Network) WaitForPageLoad() bool {
	return c.s.settler.WaitForNetworkIdle(c.s.timeouts.NetworkIdle)
}

// Messages implements ErrorMessageAware
type Messages struct {
	s *surface
}

func (c Messages) HasErrorMessage() bool {
	return c.s.visible(c.s.page.Locator(errorSelector))
}

// ErrorMessageText returns the first error banner's text, "" when none is shown
func (c Messages) ErrorMessageText() string {
	l := c.s.page.Locator(errorSelector).First()
	if !c.s.visible(l) {
		return ""
	}
	return c.s.reader.Text(l).Value
}

func (c Messages) HasSuccessMessage() bool {
	return c.s.visible(c.s.page.Locator(successSelector))
}

// SuccessMessageText returns the first success banner's text, "" when none is shown
func (c Messages) SuccessMessageText() string {
	l := c.s.page.Locator(successSelector).First()
	if !c.s.visible(l) {
		return ""
	}
	return c.s.reader.Text(l).Value
}

// Navigator implements Navigable
type Navigator struct {
	s *surface
}

// NavigateTo opens a site-relative path and waits for the page to load
func (c Navigator) NavigateTo(path string) error {
	url := c.s.target.URL(path)
	if _, err := c.s.page.Goto(url); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	Network(c).WaitForPageLoad()
	return nil
}

// Refresh reloads the page and waits for it to load
func (c Navigator) Refresh() error {
	if _, err := c.s.page.Reload(); err != nil {
		return fmt.Errorf("reload %s: %w", c.s.page.URL(), err)
	}
	Network(c).WaitForPageLoad()
	return nil
}

func (c Navigator) CurrentURL() string {
	return c.s.page.URL()
}

// PageTitle returns the document title, "" when it cannot be read
func (c Navigator) PageTitle() string {
	title, err := c.s.page.Title()
	if err != nil {
		c.s.log.WithError(err).Debug("page title unavailable")
		return ""
	}
	return title
}

// Open loads the storefront home page
func (c Navigator) Open() error {
	return c.NavigateTo("/")
}

var (
	_ SpinnerAware      = Spinner{}
	_ NetworkAware      = Network{}
	_ ErrorMessageAware = Messages{}
	_ Navigable         = Navigator{}
)
