package pages

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"
)

// CartSnapshot is one observation of the cart. Each field comes from its own probe, so a cart that
// changes while being read can produce fields that disagree with each other.
type CartSnapshot struct {
	ItemCount int
	ItemNames []string
	Empty     bool
}

// Contains reports whether name is among the item names
func (c CartSnapshot) Contains(name string) bool {
	return slices.Contains(c.ItemNames, name)
}

// cartAnimation is how long the float cart takes to redraw its totals after an add
const cartAnimation = time.Second

// Cart drives the floating cart panel
type Cart struct {
	Spinner

	s   *surface
	log logrus.FieldLogger
}

func newCart(s *surface) *Cart {
	return &Cart{
		Spinner: Spinner{s},
		s:       s,
		log:     s.log.WithField("page", "cart"),
	}
}

func (p *Cart) quantity() playwright.Locator {
	return p.s.page.Locator(cartQuantitySelector).
		Filter(playwright.LocatorFilterOptions{HasText: cartQuantityFilter}).
		First()
}

func (p *Cart) isOpen() bool {
	return p.s.visibleSoon(p.s.page.Locator(miniCartCloseSelector))
}

// OpenCart opens the float cart unless it is already open
func (p *Cart) OpenCart() error {
	if p.isOpen() {
		return nil
	}
	if err := p.s.page.Locator(miniCartIconSelector).Click(); err != nil {
		return fmt.Errorf("open cart: %w", err)
	}
	p.WaitForSpinner()
	return nil
}

// CloseCart clicks the X when it is shown. Failures are logged and ignored.
func (p *Cart) CloseCart() {
	closeButton := p.s.byText(cartCloseText)
	if !p.s.visibleSoon(closeButton) {
		return
	}
	if err := closeButton.Click(); err != nil {
		p.log.WithError(err).Debug("cart did not close")
	}
}

// ItemCount reads the number on the cart indicator, 0 when it cannot be read
func (p *Cart) ItemCount() int {
	return p.s.reader.NumericLabel(p.quantity(), cartQuantityPattern).Value
}

// IsEmpty trusts a zero indicator; otherwise it opens the cart and looks for the empty message
func (p *Cart) IsEmpty() bool {
	if p.ItemCount() == 0 {
		return true
	}
	if err := p.OpenCart(); err != nil {
		p.log.WithError(err).Debug("cart could not be opened, trusting indicator")
		return false
	}
	defer p.CloseCart()
	return p.s.visibleSoon(p.s.byText(cartEmptyText))
}

// ItemsCount counts the rows inside the open cart
func (p *Cart) ItemsCount() int {
	if err := p.OpenCart(); err != nil {
		p.log.WithError(err).Debug("cart could not be opened")
		return 0
	}
	defer p.CloseCart()
	return p.s.reader.Count(p.s.page.Locator(cartItemsSelector)).Value
}

// ItemNames returns the product names listed in the cart
func (p *Cart) ItemNames() []string {
	if err := p.OpenCart(); err != nil {
		p.log.WithError(err).Debug("cart could not be opened")
		return []string{}
	}
	defer p.CloseCart()

	rows := p.s.page.Locator(cartItemTextSelector).
		Filter(playwright.LocatorFilterOptions{HasNotText: cartItemNoise})
	names := []string{}
	for _, text := range p.s.reader.Texts(rows).Value {
		if strings.TrimSpace(text) != "" {
			names = append(names, text)
		}
	}
	return names
}

// IsIndicatorVisible reports whether the cart or its Bag label is on screen
func (p *Cart) IsIndicatorVisible() bool {
	return p.s.visibleSoon(p.s.page.Locator(cartSelector)) || p.s.visibleSoon(p.s.byText(cartBagText))
}

func (p *Cart) IsIndicatorShowingItems() bool {
	return p.ItemCount() > 0
}

func (p *Cart) WaitForCartToLoad() error {
	if err := p.s.waitVisible(p.s.page.Locator(cartSelector), p.s.timeouts.PageLoad); err != nil {
		return fmt.Errorf("wait for cart: %w", err)
	}
	return nil
}

// WaitForContentToUpdate gives the cart time to redraw and then settles the spinner
func (p *Cart) WaitForContentToUpdate(ctx context.Context) {
	p.s.settler.Pause(ctx, cartAnimation, "float cart totals redraw without a loading signal")
	p.WaitForSpinner()
}

// VerifyProductAdded reports whether the indicator is non-zero, the cart is showing and name is in it
func (p *Cart) VerifyProductAdded(name string) bool {
	if p.ItemCount() <= 0 {
		return false
	}
	if !p.IsIndicatorVisible() {
		return false
	}
	return slices.Contains(p.ItemNames(), name)
}

func (p *Cart) VerifyMiniCartOpened() bool {
	return p.IsIndicatorVisible()
}

// Snapshot observes count, names and emptiness
func (p *Cart) Snapshot() CartSnapshot {
	return CartSnapshot{
		ItemCount: p.ItemCount(),
		ItemNames: p.ItemNames(),
		Empty:     p.IsEmpty(),
	}
}

// ClickCheckout presses the cart's checkout button
func (p *Cart) ClickCheckout() error {
	if err := p.s.page.Locator(cartCheckoutSelector).Click(); err != nil {
		return fmt.Errorf("click checkout: %w", err)
	}
	p.WaitForSpinner()
	return nil
}
