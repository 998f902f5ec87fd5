package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"

	"github.com/testathon/storefront-e2e/internal/config"
	"github.com/testathon/storefront-e2e/internal/models"
)

// Checkout drives the mini cart, the shipping form and the confirmation page
type Checkout struct {
	Spinner
	Navigator
	Messages

	s   *surface
	log logrus.FieldLogger
}

func newCheckout(s *surface) *Checkout {
	return &Checkout{
		Spinner:   Spinner{s},
		Navigator: Navigator{s},
		Messages:  Messages{s},
		s:         s,
		log:       s.log.WithField("page", "checkout"),
	}
}

// AddProductToCart presses Add to cart on the shelf item titled name
func (p *Checkout) AddProductToCart(name string) error {
	if err := p.s.page.Locator(addToCartXPath(name)).Click(); err != nil {
		return fmt.Errorf("add %q to cart: %w", name, err)
	}
	p.WaitForSpinner()
	return nil
}

// OpenMiniCart clicks the bag icon unless the mini cart is already open
func (p *Checkout) OpenMiniCart() error {
	if p.s.visibleSoon(p.s.page.Locator(miniCartCloseSelector)) {
		return nil
	}
	if err := p.s.page.Locator(miniCartIconSelector).Click(); err != nil {
		return fmt.Errorf("open mini cart: %w", err)
	}
	p.WaitForSpinner()
	return nil
}

func (p *Checkout) AddProductToCartAndOpenMiniCart(name string) error {
	if err := p.AddProductToCart(name); err != nil {
		return err
	}
	return p.OpenMiniCart()
}

// ClickCheckout presses the mini cart's checkout button
func (p *Checkout) ClickCheckout() error {
	if err := p.s.page.Locator(checkoutButtonXPath).Click(); err != nil {
		return fmt.Errorf("click checkout: %w", err)
	}
	p.WaitForSpinner()
	return nil
}

// FillShippingForm types d into the shipping form as given. Blank fields are typed too, so the
// storefront's own validation can be exercised.
func (p *Checkout) FillShippingForm(d models.ShippingDetails) error {
	fields := []struct {
		selector string
		value    string
	}{
		{firstNameSelector, d.FirstName},
		{lastNameSelector, d.LastName},
		{addressSelector, d.Address},
		{provinceSelector, d.Province},
		{postCodeSelector, d.PostCode},
	}
	for _, f := range fields {
		if err := p.s.page.Locator(f.selector).Fill(f.value); err != nil {
			return fmt.Errorf("fill %s: %w", f.selector, err)
		}
	}
	p.log.WithFields(logrus.Fields{
		"recipient": d.FullName(),
		"complete":  d.Validate() == nil,
	}).Debug("shipping form filled")
	return nil
}

func (p *Checkout) SubmitForm() error {
	if err := p.s.page.Locator(submitSelector).Click(); err != nil {
		return fmt.Errorf("submit shipping form: %w", err)
	}
	p.WaitForSpinner()
	return nil
}

// WaitForConfirmation waits for the storefront to land on the order confirmation page
func (p *Checkout) WaitForConfirmation() error {
	err := p.s.page.WaitForURL(confirmationURL, playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(config.Millis(p.s.timeouts.PageLoad)),
	})
	if err != nil {
		return fmt.Errorf("wait for confirmation: %w", err)
	}
	return nil
}

// DownloadConfirmation clicks the PDF link on the confirmation page and returns where the file landed
func (p *Checkout) DownloadConfirmation() (string, error) {
	download, err := p.s.page.ExpectDownload(func() error {
		return p.s.page.Locator(downloadPDFSelector).Click()
	})
	if err != nil {
		return "", fmt.Errorf("download confirmation: %w", err)
	}
	path, err := download.Path()
	if err != nil {
		return "", fmt.Errorf("download confirmation path: %w", err)
	}
	p.log.WithField("path", path).Info("confirmation downloaded")
	return path, nil
}
