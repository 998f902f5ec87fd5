package pages

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"
)

// FavoriteState is what the heart button on a shelf item shows
type FavoriteState int

// Favorite states. FavoriteUnknown means the button could not be found or read.
const (
	FavoriteUnknown FavoriteState = iota
	Favorited
	NotFavorited
)

func (s FavoriteState) String() string {
	switch s {
	case Favorited:
		return "favorited"
	case NotFavorited:
		return "not-favorited"
	default:
		return "unknown"
	}
}

// ErrFavoriteNotToggled is returned when a heart click never shows up as a state change
var ErrFavoriteNotToggled = errors.New("favorite state did not change")

// FavoriteItemStructure reports which parts of a favorite item are on screen
type FavoriteItemStructure struct {
	HasTitle bool
	HasPrice bool
	HasImage bool
}

// Complete reports whether title, price and image are all shown
func (f FavoriteItemStructure) Complete() bool {
	return f.HasTitle && f.HasPrice && f.HasImage
}

// Favorites drives the heart buttons on the shelf and the /favourites page
type Favorites struct {
	Spinner
	Navigator

	s   *surface
	log logrus.FieldLogger
}

func newFavorites(s *surface) *Favorites {
	return &Favorites{
		Spinner:   Spinner{s},
		Navigator: Navigator{s},
		s:         s,
		log:       s.log.WithField("page", "favorites"),
	}
}

func (p *Favorites) NavigateToFavorites() error {
	return p.NavigateTo(favoritesPath)
}

// NavigateViaLink follows the header's Favourites link
func (p *Favorites) NavigateViaLink() error {
	if err := p.s.page.Locator(favoritesLinkSelector).Click(); err != nil {
		return fmt.Errorf("click favourites link: %w", err)
	}
	Network(p.Navigator).WaitForPageLoad()
	return nil
}

func (p *Favorites) heart(name string) playwright.Locator {
	return p.s.page.Locator(heartButtonXPath(name)).First()
}

// FavoriteStatus reads the heart button of the shelf item titled name
func (p *Favorites) FavoriteStatus(name string) FavoriteState {
	class := p.s.reader.Attribute(p.heart(name), "class")
	if !class.Observed {
		return FavoriteUnknown
	}
	if slices.Contains(strings.Fields(class.Value), favoriteClickedClass) {
		return Favorited
	}
	return NotFavorited
}

// IsProductFavorited is FavoriteStatus collapsed to a bool. An unreadable heart counts as not favorited.
func (p *Favorites) IsProductFavorited(name string) bool {
	return p.FavoriteStatus(name) == Favorited
}

// AddProductToFavorites clicks the heart unless the item already shows as favorited
func (p *Favorites) AddProductToFavorites(ctx context.Context, name string) error {
	if p.FavoriteStatus(name) == Favorited {
		p.log.WithField("product", name).Debug("already favorited")
		return nil
	}
	return p.toggle(ctx, name, Favorited)
}

// RemoveProductFromFavorites clicks the heart only when the item shows as favorited
func (p *Favorites) RemoveProductFromFavorites(ctx context.Context, name string) error {
	if p.FavoriteStatus(name) != Favorited {
		p.log.WithField("product", name).Debug("not favorited, nothing to remove")
		return nil
	}
	return p.toggle(ctx, name, NotFavorited)
}

func (p *Favorites) toggle(ctx context.Context, name string, want FavoriteState) error {
	log := p.log.WithFields(logrus.Fields{"product": name, "want": want})
	if err := p.heart(name).Click(); err != nil {
		return fmt.Errorf("click heart of %q: %w", name, err)
	}
	p.WaitForSpinner()

	flipped := p.s.settler.PollUntil(ctx, p.s.timeouts.Visibility, func() bool {
		return p.FavoriteStatus(name) == want
	})
	if !flipped {
		return fmt.Errorf("%w: %q is %s, want %s", ErrFavoriteNotToggled, name, p.FavoriteStatus(name), want)
	}
	log.Info("favorite toggled")
	return nil
}

// CountFromLabel reads the "N Product(s) found." label of the favourites page
func (p *Favorites) CountFromLabel() int {
	return p.s.reader.NumericLabel(p.s.page.Locator(favoritesCountSelector), favoritesCountPattern).Value
}

// IsEmpty reports a zero count label. An unreadable label counts as empty.
func (p *Favorites) IsEmpty() bool {
	return p.CountFromLabel() == 0
}

func (p *Favorites) ItemsCount() int {
	return p.s.reader.Count(p.s.page.Locator(favoriteItemsSelector)).Value
}

func (p *Favorites) ItemNames() []string {
	return p.s.reader.Texts(p.s.page.Locator(favoriteTitlesSelector)).Value
}

func (p *Favorites) ItemPrices() []string {
	return p.s.reader.Texts(p.s.page.Locator(favoritePricesSelector)).Value
}

// IsProductInFavorites looks for name among the listed favorites, ignoring case
func (p *Favorites) IsProductInFavorites(name string) bool {
	name = strings.ToLower(name)
	for _, item := range p.ItemNames() {
		if strings.Contains(strings.ToLower(item), name) {
			return true
		}
	}
	return false
}

// IsPageLoaded accepts the favourites URL, a favorites heading or a rendered item list
func (p *Favorites) IsPageLoaded() bool {
	if strings.Contains(p.CurrentURL(), strings.TrimPrefix(favoritesPath, "/")) {
		return true
	}
	title := p.s.page.Locator(favoritesTitleSelector).
		Filter(playwright.LocatorFilterOptions{HasText: favoritesTitlePattern})
	return p.s.visible(title) || p.s.visible(p.s.page.Locator(favoriteItemsSelector).First())
}

// EmptyMessage returns the count label text, which doubles as the empty state
func (p *Favorites) EmptyMessage() string {
	return p.s.reader.Text(p.s.page.Locator(favoritesCountSelector)).Value
}

// ValidateItemStructure checks title, price and image of the favorite at the zero-based index
func (p *Favorites) ValidateItemStructure(index int) FavoriteItemStructure {
	part := func(selector string) bool {
		return p.s.visible(p.s.page.Locator(favoriteItemPart(index, selector)).First())
	}
	return FavoriteItemStructure{
		HasTitle: part(favoriteItemTitlePart),
		HasPrice: part(favoriteItemPricePart),
		HasImage: part(favoriteItemImagePart),
	}
}
