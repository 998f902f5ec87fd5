package pages

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/testathon/storefront-e2e/internal/config"
	"github.com/testathon/storefront-e2e/internal/credentials"
	"github.com/testathon/storefront-e2e/internal/pages/pagetest"
)

// storefront simulates the parts of StackDemo the page objects touch, on top of a fake DOM
type storefront struct {
	page *pagetest.FakePage

	mu        sync.Mutex
	products  []string
	brands    map[string]bool
	user      string
	pending   string
	carts     map[string][]string
	favorites map[string]map[string]bool
	cartOpen  bool

	heartClicks int

	// sharedCart makes every user see the same cart, reproducing the leak the isolation check hunts
	sharedCart bool

	// stuckHearts makes heart clicks do nothing
	stuckHearts bool
}

func catalogue() []string {
	names := make([]string, 0, 25)
	for i := 1; i <= 9; i++ {
		names = append(names, fmt.Sprintf("iPhone %d", i+3))
	}
	for i := 1; i <= 7; i++ {
		names = append(names, fmt.Sprintf("Galaxy S%d", i+14))
	}
	for i := 1; i <= 3; i++ {
		names = append(names, fmt.Sprintf("Pixel %d", i+2))
	}
	for i := 1; i <= 6; i++ {
		names = append(names, fmt.Sprintf("One Plus %dT", i+5))
	}
	return names
}

func brandOf(product string) string {
	for _, b := range Brands() {
		if strings.HasPrefix(product, b.Keyword) {
			return b.Name
		}
	}
	return ""
}

func newStorefront() *storefront {
	sf := &storefront{
		page:      pagetest.NewPage(),
		products:  catalogue(),
		brands:    map[string]bool{},
		carts:     map[string][]string{},
		favorites: map[string]map[string]bool{},
	}
	sf.page.SetTitle("StackDemo")
	sf.wire()
	sf.render()
	return sf
}

func testDeps() Deps {
	timeouts := config.DefaultTimeouts()
	timeouts.Visibility = 50 * time.Millisecond
	timeouts.ShortVisibility = 20 * time.Millisecond
	timeouts.PollInterval = time.Millisecond
	log, _ := test.NewNullLogger()
	return Deps{
		Target:   config.TargetConfig{BaseURL: "https://testathon.live"},
		Timeouts: timeouts,
		Log:      log,
	}
}

func (sf *storefront) set() *Set {
	return NewSet(sf.page, testDeps())
}

func (sf *storefront) dom() *pagetest.DOM {
	return sf.page.DOM
}

func (sf *storefront) clickable(key string, fn func()) {
	sf.dom().Set(key, &pagetest.Element{Count: 1, Visible: true, OnClick: func() {
		sf.mu.Lock()
		fn()
		sf.mu.Unlock()
		sf.render()
	}})
}

// wire registers the elements whose behaviour does not depend on state
func (sf *storefront) wire() {
	sf.clickable(pagetest.Role("link", signInLinkName), func() {})
	sf.clickable(usernameDropdown, func() {})
	sf.clickable(passwordDropdown, func() {})
	for _, c := range []credentials.Credential{credentials.Demo, credentials.Fav, credentials.ExistingOrders, credentials.NoImage} {
		username := c.Username
		sf.clickable(pagetest.Text(username, true), func() { sf.pending = username })
	}
	sf.clickable(pagetest.Text(credentials.Demo.Password, true), func() {})
	sf.clickable(pagetest.Role("button", logInButtonName), func() {
		sf.user = sf.pending
		sf.page.SetURL("https://testathon.live/?signin=true")
	})

	for _, b := range Brands() {
		name := b.Name
		sf.dom().Set(pagetest.HasText(brandLabelSelector, name), &pagetest.Element{Count: 1, Visible: true, OnClick: func() {
			sf.mu.Lock()
			sf.brands[name] = !sf.brands[name]
			sf.mu.Unlock()
			sf.render()
		}})
	}

	for i, product := range sf.products {
		name := product
		add := func() { sf.addToCart(name) }
		sf.clickable(productByID(i+1)+" "+buyButtonSelector, add)
		sf.clickable(addToCartXPath(name), add)
	}

	sf.clickable(miniCartIconSelector, func() { sf.cartOpen = true })
	sf.clickable(pagetest.Text(cartCloseText, true), func() { sf.cartOpen = false })
}

// addToCart runs with sf.mu held
func (sf *storefront) addToCart(name string) {
	key := sf.cartKey()
	sf.carts[key] = append(sf.carts[key], name)
	sf.cartOpen = true
}

func (sf *storefront) cartKey() string {
	if sf.sharedCart {
		return ""
	}
	return sf.user
}

// shelf lists the products matching the ticked brands, or everything when none is ticked
func (sf *storefront) shelf() []string {
	var shown []string
	for _, p := range sf.products {
		if sf.brands[brandOf(p)] {
			shown = append(shown, p)
		}
	}
	if len(shown) == 0 {
		return sf.products
	}
	return shown
}

// render redraws every state dependent element
func (sf *storefront) render() {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	dom := sf.dom()

	shelf := sf.shelf()
	dom.Set(productTitleSelector, pagetest.List(shelf...))
	dom.Set(pagetest.Text(productsFoundPattern, false), pagetest.Visible(fmt.Sprintf("%d Product(s) found.", len(shelf))))
	dom.Set(productByID(1)+" "+productTitleSelector, pagetest.Visible(sf.products[0]))

	if sf.user != "" {
		dom.Set(logoutTextSelector, pagetest.Visible("Logout"))
		dom.Set(loggedInUserSelector, pagetest.Visible(sf.user))
		dom.Set(pagetest.Role("link", logoutLinkName), &pagetest.Element{Count: 1, Visible: true, OnClick: func() {
			sf.mu.Lock()
			sf.user = ""
			sf.mu.Unlock()
			sf.render()
		}})
	} else {
		dom.Remove(logoutTextSelector)
		dom.Remove(loggedInUserSelector)
		dom.Set(pagetest.Role("link", logoutLinkName), pagetest.Hidden())
	}

	cart := sf.carts[sf.cartKey()]
	dom.Set(cartSelector, pagetest.Visible(""))
	dom.Set(pagetest.Nth(pagetest.HasText(cartQuantitySelector, cartQuantityFilter), 0), pagetest.Visible(strconv.Itoa(len(cart))))
	if sf.cartOpen {
		dom.Set(miniCartCloseSelector, pagetest.Visible(""))
		dom.Set(pagetest.Text(cartCloseText, true), &pagetest.Element{Count: 1, Visible: true, OnClick: func() {
			sf.mu.Lock()
			sf.cartOpen = false
			sf.mu.Unlock()
			sf.render()
		}})
		dom.Set(cartItemsSelector, pagetest.List(cart...))
		dom.Set(pagetest.HasNotText(cartItemTextSelector, cartItemNoise), pagetest.List(cart...))
		if len(cart) == 0 {
			dom.Set(pagetest.Text(cartEmptyText, true), pagetest.Visible(cartEmptyText))
		} else {
			dom.Remove(pagetest.Text(cartEmptyText, true))
		}
	} else {
		dom.Remove(miniCartCloseSelector)
		dom.Set(pagetest.Text(cartCloseText, true), pagetest.Hidden())
		dom.Remove(cartItemsSelector)
		dom.Remove(pagetest.HasNotText(cartItemTextSelector, cartItemNoise))
		dom.Remove(pagetest.Text(cartEmptyText, true))
	}

	favs := sf.favorites[sf.user]
	for _, product := range sf.products {
		name := product
		class := "MuiButtonBase-root MuiIconButton-root Button"
		if favs[name] {
			class += " " + favoriteClickedClass
		}
		dom.Set(pagetest.Nth(heartButtonXPath(name), 0), &pagetest.Element{
			Count:   1,
			Visible: true,
			Attrs:   map[string]string{"class": class},
			OnClick: func() { sf.toggleFavorite(name) },
		})
	}
}

func (sf *storefront) toggleFavorite(name string) {
	sf.mu.Lock()
	sf.heartClicks++
	if !sf.stuckHearts {
		if sf.favorites[sf.user] == nil {
			sf.favorites[sf.user] = map[string]bool{}
		}
		sf.favorites[sf.user][name] = !sf.favorites[sf.user][name]
	}
	sf.mu.Unlock()
	sf.render()
}

func (sf *storefront) cartOf(user string) []string {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	return append([]string(nil), sf.carts[user]...)
}
