package pages

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/testathon/storefront-e2e/internal/config"
	"github.com/testathon/storefront-e2e/internal/credentials"
	"github.com/testathon/storefront-e2e/internal/pages/pagetest"
)

func signedInFavorites(t *testing.T) (*storefront, *Favorites) {
	t.Helper()
	sf := newStorefront()
	set := sf.set()
	require.NoError(t, set.SignIn.SignIn(credentials.Fav))
	return sf, set.Favorites
}

func TestFavorites_AddIsIdempotent(t *testing.T) {
	sf, favs := signedInFavorites(t)
	ctx := context.Background()

	require.NoError(t, favs.AddProductToFavorites(ctx, "iPhone 12"))
	require.NoError(t, favs.AddProductToFavorites(ctx, "iPhone 12"))

	assert.Equal(t, Favorited, favs.FavoriteStatus("iPhone 12"))
	assert.True(t, favs.IsProductFavorited("iPhone 12"))
	assert.Equal(t, 1, sf.heartClicks)
}

func TestFavorites_AddRemoveRoundTrip(t *testing.T) {
	sf, favs := signedInFavorites(t)
	ctx := context.Background()
	require.Equal(t, NotFavorited, favs.FavoriteStatus("Galaxy S20"))

	require.NoError(t, favs.AddProductToFavorites(ctx, "Galaxy S20"))
	require.NoError(t, favs.RemoveProductFromFavorites(ctx, "Galaxy S20"))
	assert.Equal(t, NotFavorited, favs.FavoriteStatus("Galaxy S20"))

	// removing again is a no-op
	require.NoError(t, favs.RemoveProductFromFavorites(ctx, "Galaxy S20"))
	assert.Equal(t, 2, sf.heartClicks)
}

func TestFavorites_UnknownProduct(t *testing.T) {
	sf, favs := signedInFavorites(t)
	ctx := context.Background()

	assert.Equal(t, FavoriteUnknown, favs.FavoriteStatus("Nokia 3310"))
	assert.False(t, favs.IsProductFavorited("Nokia 3310"))

	assert.NoError(t, favs.RemoveProductFromFavorites(ctx, "Nokia 3310"))
	assert.Error(t, favs.AddProductToFavorites(ctx, "Nokia 3310"))
	assert.Zero(t, sf.heartClicks)
}

func TestFavorites_ClickWithoutEffect(t *testing.T) {
	sf, favs := signedInFavorites(t)
	sf.stuckHearts = true

	err := favs.AddProductToFavorites(context.Background(), "Pixel 4")
	assert.ErrorIs(t, err, ErrFavoriteNotToggled)
	assert.Equal(t, NotFavorited, favs.FavoriteStatus("Pixel 4"))
}

func TestFavorites_StateIsPerUser(t *testing.T) {
	sf := newStorefront()
	set := sf.set()
	ctx := context.Background()

	require.NoError(t, set.SignIn.SignIn(credentials.Fav))
	require.NoError(t, set.Favorites.AddProductToFavorites(ctx, "One Plus 7T"))
	require.NoError(t, set.SignIn.Logout())
	require.NoError(t, set.SignIn.SignIn(credentials.Demo))

	assert.Equal(t, NotFavorited, set.Favorites.FavoriteStatus("One Plus 7T"))
}

func TestFavorites_Page(t *testing.T) {
	sf, favs := signedInFavorites(t)

	sf.dom().Set(favoritesCountSelector, pagetest.Visible("2 Product(s) found."))
	sf.dom().Set(favoriteItemsSelector, &pagetest.Element{Count: 2, Visible: true})
	sf.dom().Set(favoriteTitlesSelector, pagetest.List("iPhone 12", "Galaxy S20"))
	sf.dom().Set(favoritePricesSelector, pagetest.List("$799.00", "$999.00"))

	require.NoError(t, favs.NavigateToFavorites())
	assert.True(t, favs.IsPageLoaded())
	assert.Equal(t, 2, favs.CountFromLabel())
	assert.False(t, favs.IsEmpty())
	assert.Equal(t, 2, favs.ItemsCount())
	assert.Equal(t, []string{"iPhone 12", "Galaxy S20"}, favs.ItemNames())
	assert.Equal(t, []string{"$799.00", "$999.00"}, favs.ItemPrices())
	assert.True(t, favs.IsProductInFavorites("galaxy s20"))
	assert.False(t, favs.IsProductInFavorites("Pixel"))
	assert.Equal(t, "2 Product(s) found.", favs.EmptyMessage())
	assert.Equal(t, "StackDemo", favs.PageTitle())
}

func TestFavorites_EmptyPage(t *testing.T) {
	sf, favs := signedInFavorites(t)
	sf.dom().Set(favoritesCountSelector, pagetest.Visible("0 Product(s) found."))

	assert.True(t, favs.IsEmpty())
	assert.Equal(t, 0, favs.ItemsCount())
	assert.Empty(t, favs.ItemNames())

	sf.dom().Remove(favoritesCountSelector)
	assert.True(t, favs.IsEmpty())
	assert.Equal(t, "", favs.EmptyMessage())
}

func TestFavorites_IsPageLoadedWithoutURL(t *testing.T) {
	sf, favs := signedInFavorites(t)
	assert.False(t, favs.IsPageLoaded())

	sf.dom().Set(pagetest.HasText(favoritesTitleSelector, favoritesTitlePattern), pagetest.Visible("My Favorites"))
	assert.True(t, favs.IsPageLoaded())
}

func TestFavorites_NavigateViaLink(t *testing.T) {
	sf, favs := signedInFavorites(t)
	assert.Error(t, favs.NavigateViaLink())

	sf.dom().Set(favoritesLinkSelector, &pagetest.Element{Count: 1, Visible: true, OnClick: func() {
		sf.page.SetURL("https://testathon.live/favourites")
	}})
	require.NoError(t, favs.NavigateViaLink())
	assert.True(t, favs.IsPageLoaded())
}

func TestFavorites_ValidateItemStructure(t *testing.T) {
	sf, favs := signedInFavorites(t)

	sf.dom().Set(pagetest.Nth(favoriteItemPart(0, favoriteItemTitlePart), 0), pagetest.Visible("iPhone 12"))
	sf.dom().Set(pagetest.Nth(favoriteItemPart(0, favoriteItemPricePart), 0), pagetest.Visible("$799.00"))
	sf.dom().Set(pagetest.Nth(favoriteItemPart(0, favoriteItemImagePart), 0), pagetest.Visible(""))
	sf.dom().Set(pagetest.Nth(favoriteItemPart(1, favoriteItemTitlePart), 0), pagetest.Visible("Galaxy S20"))

	first := favs.ValidateItemStructure(0)
	assert.Equal(t, FavoriteItemStructure{HasTitle: true, HasPrice: true, HasImage: true}, first)
	assert.True(t, first.Complete())

	second := favs.ValidateItemStructure(1)
	assert.Equal(t, FavoriteItemStructure{HasTitle: true}, second)
	assert.False(t, second.Complete())

	assert.Equal(t, FavoriteItemStructure{}, favs.ValidateItemStructure(5))
}

func TestFavoriteState_String(t *testing.T) {
	assert.Equal(t, "favorited", Favorited.String())
	assert.Equal(t, "not-favorited", NotFavorited.String())
	assert.Equal(t, "unknown", FavoriteUnknown.String())
}

func TestFavorites_ZeroDepsUseDefaultTimeouts(t *testing.T) {
	sf := newStorefront()
	set := NewSet(sf.page, Deps{})
	require.NoError(t, set.SignIn.SignIn(credentials.Fav))

	assert.NotPanics(t, func() {
		require.NoError(t, set.Favorites.AddProductToFavorites(context.Background(), "Pixel 4"))
	})
	assert.Equal(t, Favorited, set.Favorites.FavoriteStatus("Pixel 4"))
	assert.Equal(t, config.DefaultTimeouts(), set.surface.timeouts)
}
