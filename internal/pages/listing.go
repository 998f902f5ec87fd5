package pages

import (
	"errors"
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"
)

// Brand is a filter checkbox on the listing and the word every product of that brand carries
type Brand struct {
	Name    string
	Keyword string
}

// Brand filters offered by the storefront
var (
	Apple   = Brand{Name: "Apple", Keyword: "iPhone"}
	Samsung = Brand{Name: "Samsung", Keyword: "Galaxy"}
	Google  = Brand{Name: "Google", Keyword: "Pixel"}
	OnePlus = Brand{Name: "OnePlus", Keyword: "One Plus"}
)

// Brands returns every brand filter in the order the storefront lists them
func Brands() []Brand {
	return []Brand{Apple, Samsung, Google, OnePlus}
}

// Listing drives the product shelf and its brand filters
type Listing struct {
	Spinner
	Navigator
	Messages

	s   *surface
	log logrus.FieldLogger
}

func newListing(s *surface) *Listing {
	return &Listing{
		Spinner:   Spinner{s},
		Navigator: Navigator{s},
		Messages:  Messages{s},
		s:         s,
		log:       s.log.WithField("page", "listing"),
	}
}

func (p *Listing) brandFilter(b Brand) playwright.Locator {
	return p.s.page.Locator(brandLabelSelector).Filter(playwright.LocatorFilterOptions{HasText: b.Name})
}

// SelectBrand ticks the brand's filter and waits for the shelf to refresh
func (p *Listing) SelectBrand(b Brand) error {
	if err := p.brandFilter(b).Check(); err != nil {
		return fmt.Errorf("select %s filter: %w", b.Name, err)
	}
	p.WaitForSpinner()
	p.log.WithField("brand", b.Name).Debug("filter applied")
	return nil
}

// ClearAllFilters unticks every brand filter
func (p *Listing) ClearAllFilters() error {
	var errs []error
	for _, b := range Brands() {
		if err := p.brandFilter(b).Uncheck(); err != nil {
			errs = append(errs, fmt.Errorf("clear %s filter: %w", b.Name, err))
		}
	}
	p.WaitForSpinner()
	return errors.Join(errs...)
}

// ProductNames returns the titles currently on the shelf
func (p *Listing) ProductNames() []string {
	return p.s.reader.Texts(p.s.page.Locator(productTitleSelector)).Value
}

// AllProductsContain reports whether every shelf title contains keyword, ignoring case.
// An empty shelf never matches.
func (p *Listing) AllProductsContain(keyword string) bool {
	names := p.ProductNames()
	if len(names) == 0 {
		return false
	}
	keyword = strings.ToLower(keyword)
	for _, name := range names {
		if !strings.Contains(strings.ToLower(name), keyword) {
			return false
		}
	}
	return true
}

// ProductCount reads the "N Product(s) found." label, 0 when it is missing or unreadable
func (p *Listing) ProductCount() int {
	label := p.s.page.GetByText(productsFoundPattern)
	return p.s.reader.NumericLabel(label, productsFoundPattern).Value
}

func (p *Listing) WaitForProductsToLoad() error {
	if err := p.s.waitVisible(p.s.page.Locator(productTitleSelector).First(), p.s.timeouts.PageLoad); err != nil {
		return fmt.Errorf("wait for products: %w", err)
	}
	return nil
}

// ProductImageSources returns the src of every product image, "" for images without one
func (p *Listing) ProductImageSources() []string {
	images, err := p.s.page.Locator(productImageSelector).All()
	if err != nil {
		p.log.WithError(err).Debug("product images unavailable")
		return []string{}
	}
	sources := make([]string, 0, len(images))
	for _, img := range images {
		sources = append(sources, p.s.reader.Attribute(img, "src").Value)
	}
	return sources
}

// AllImagesHaveSource reports whether no product image has a blank src
func (p *Listing) AllImagesHaveSource() bool {
	return p.ImagesWithEmptySource() == 0
}

func (p *Listing) ImagesWithEmptySource() int {
	n := 0
	for _, src := range p.ProductImageSources() {
		if strings.TrimSpace(src) == "" {
			n++
		}
	}
	return n
}

func (p *Listing) AddFirstProductToCart() error {
	return p.AddProductToCartByIndex(0)
}

// AddProductToCartByIndex adds the product at the zero-based shelf position
func (p *Listing) AddProductToCartByIndex(index int) error {
	sel := productByID(index+1) + " " + buyButtonSelector
	if err := p.s.page.Locator(sel).Click(); err != nil {
		return fmt.Errorf("add product %d to cart: %w", index, err)
	}
	p.WaitForSpinner()
	return nil
}

func (p *Listing) AddProductToCartByName(name string) error {
	if err := p.s.page.Locator(addToCartXPath(name)).Click(); err != nil {
		return fmt.Errorf("add %q to cart: %w", name, err)
	}
	p.WaitForSpinner()
	return nil
}

// FirstProductName returns the title of the first shelf item, "" when the shelf is empty
func (p *Listing) FirstProductName() string {
	title := p.s.page.Locator(productByID(1) + " " + productTitleSelector).First()
	return p.s.reader.Text(title).Value
}

func (p *Listing) IsAddToCartButtonVisible() bool {
	return p.s.visibleSoon(p.s.page.Locator(productByID(1) + " " + buyButtonSelector))
}

// RapidAddFirstProduct clicks the first product's add button n times without settling in between
func (p *Listing) RapidAddFirstProduct(n int) error {
	button := p.s.page.Locator(productByID(1) + " " + buyButtonSelector)
	for i := 0; i < n; i++ {
		if err := button.Click(); err != nil {
			return fmt.Errorf("rapid add click %d: %w", i+1, err)
		}
	}
	p.WaitForSpinner()
	return nil
}
