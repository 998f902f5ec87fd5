package pages

import (
	"fmt"
	"regexp"
	"strings"
)

// Shared
const (
	spinnerSelector = "div.spinner"
	errorSelector   = ".error-message, .alert-error, [role='alert']"
	successSelector = ".success-message, .alert-success"
)

// Sign in
const (
	signInPath           = "/signin"
	usernameDropdown     = "#username svg"
	passwordDropdown     = "#password svg"
	usernameField        = "#username"
	passwordField        = "#password"
	logoutTextSelector   = `text="Logout"`
	loggedInUserSelector = `.username, [data-testid="username"]`
	signInLinkName       = "Sign In"
	logInButtonName      = "Log In"
	logoutLinkName       = "Logout"
)

// Listing
const (
	brandLabelSelector   = "label"
	productTitleSelector = "p.shelf-item__title"
	productImageSelector = "div.shelf-item img"
	buyButtonSelector    = ".shelf-item__buy-btn"
)

var productsFoundPattern = regexp.MustCompile(`(\d+) Product\(s\) found\.`)

// productByID matches the shelf item with the one-based id the storefront assigns
func productByID(id int) string {
	return fmt.Sprintf(`[id="%d"]`, id)
}

// Cart
const (
	cartSelector         = ".float-cart"
	cartQuantitySelector = "div, span"
	cartItemsSelector    = ".float-cart__content .float-cart__shelf-container"
	cartItemTextSelector = cartItemsSelector + " p"
	cartEmptyText        = "Add some products in the bag :)"
	cartBagText          = "Bag"
	cartCloseText        = "X"
	cartCheckoutSelector = ".buy-btn"
)

var (
	cartQuantityPattern = regexp.MustCompile(`^\s*(\d+)\s*$`)
	cartQuantityFilter  = regexp.MustCompile(`^\d+$`)
)

// cartItemNoise matches cart paragraphs holding quantity, price or brand rather than a product name
var cartItemNoise = regexp.MustCompile(`Quantity:|\$|Apple|Samsung|Google|OnePlus`)

// Checkout
const (
	miniCartIconSelector  = "//span[@class='bag bag--float-cart-closed']"
	miniCartCloseSelector = "//div[@class='float-cart__close-btn']"
	checkoutButtonXPath   = "//div[@class='buy-btn']"
	firstNameSelector     = "#firstNameInput"
	lastNameSelector      = "#lastNameInput"
	addressSelector       = "#addressLine1Input"
	provinceSelector      = "#provinceInput"
	postCodeSelector      = "#postCodeInput"
	submitSelector        = "#checkout-shipping-continue"
	confirmationURL       = "**/confirmation"
	downloadPDFSelector   = "#downloadpdf"
)

// Favorites
const (
	favoritesPath          = "/favourites"
	favoritesLinkSelector  = "//a[@id='favourites' and @href='/favourites']"
	favoritesTitleSelector = "h1, .page-title"
	favoritesCountSelector = "//small[@class='products-found']"
	favoriteItemsSelector  = "//div[@class='shelf-item']"
	favoriteTitlesSelector = "//p[@class='shelf-item__title']"
	favoritePricesSelector = "//div[@class='val']"
	favoriteClickedClass   = "clicked"
)

var (
	favoritesTitlePattern = regexp.MustCompile(`(?i)favorites|wishlist`)
	favoritesCountPattern = regexp.MustCompile(`(\d+)`)
)

// xpathLiteral quotes s for use inside an XPath expression
func xpathLiteral(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	parts := strings.Split(s, "'")
	return "concat('" + strings.Join(parts, `', "'", '`) + "')"
}

// shelfItemXPath matches the shelf item whose title is exactly name
func shelfItemXPath(name string) string {
	return fmt.Sprintf("//p[@class='shelf-item__title' and normalize-space()=%s]/ancestor::div[@class='shelf-item']", xpathLiteral(name))
}

func addToCartXPath(name string) string {
	return shelfItemXPath(name) + "//div[@class='shelf-item__buy-btn' and normalize-space()='Add to cart']"
}

func heartButtonXPath(name string) string {
	return shelfItemXPath(name) + "//button[contains(@class,'MuiIconButton-root')]"
}

// favoriteItemPart scopes selector to the i-th favorite item, zero based
func favoriteItemPart(i int, selector string) string {
	return fmt.Sprintf("(%s)[%d]%s", favoriteItemsSelector, i+1, selector)
}

const (
	favoriteItemTitlePart = "//*[contains(@class,'shelf-item__title') or self::h3 or contains(@class,'product-name')]"
	favoriteItemPricePart = "//*[contains(@class,'shelf-item__price') or contains(@class,'product-price')]"
	favoriteItemImagePart = "//div[@class='shelf-item__thumb']/img"
)
