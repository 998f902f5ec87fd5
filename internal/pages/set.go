package pages

import (
	"github.com/playwright-community/playwright-go"

	"github.com/testathon/storefront-e2e/internal/probe"
	"github.com/testathon/storefront-e2e/internal/settle"
)

// Set is every page object bound to one playwright.Page. Page objects of one Set share the page's
// spinner and reader; two Sets on different pages can be driven concurrently.
type Set struct {
	Page      playwright.Page
	SignIn    *SignIn
	Listing   *Listing
	Cart      *Cart
	Checkout  *Checkout
	Favorites *Favorites

	surface *surface
}

// NewSet binds the page objects to page
func NewSet(page playwright.Page, deps Deps) *Set {
	s := newSurface(page, deps)
	return &Set{
		Page:      page,
		SignIn:    newSignIn(s),
		Listing:   newListing(s),
		Cart:      newCart(s),
		Checkout:  newCheckout(s),
		Favorites: newFavorites(s),
		surface:   s,
	}
}

// Reader returns the probe reader the page objects use
func (set *Set) Reader() *probe.Reader {
	return set.surface.reader
}

// Settler returns the wait protocol bound to this page
func (set *Set) Settler() *settle.Settler {
	return set.surface.settler
}
