package pages

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/testathon/storefront-e2e/internal/models"
	"github.com/testathon/storefront-e2e/internal/pages/pagetest"
)

func withCheckoutForm(sf *storefront) {
	for _, sel := range []string{firstNameSelector, lastNameSelector, addressSelector, provinceSelector, postCodeSelector} {
		sf.dom().Set(sel, pagetest.Visible(""))
	}
	sf.dom().Set(checkoutButtonXPath, &pagetest.Element{Count: 1, Visible: true, OnClick: func() {
		sf.page.SetURL("https://testathon.live/checkout")
	}})
	sf.dom().Set(submitSelector, &pagetest.Element{Count: 1, Visible: true, OnClick: func() {
		sf.page.SetURL("https://testathon.live/confirmation")
	}})
	sf.dom().Set(downloadPDFSelector, pagetest.Visible("Download order receipt"))
}

func TestCheckout_FullFlow(t *testing.T) {
	sf := newStorefront()
	withCheckoutForm(sf)
	sf.page.SetDownload("/tmp/playwright-artifacts/confirmation.pdf")
	checkout := sf.set().Checkout

	require.NoError(t, checkout.AddProductToCartAndOpenMiniCart("iPhone 12"))
	assert.Equal(t, []string{"iPhone 12"}, sf.cartOf(""))

	require.NoError(t, checkout.ClickCheckout())
	require.NoError(t, checkout.FillShippingForm(models.SampleShippingDetails()))

	first, _ := sf.dom().Snapshot(firstNameSelector)
	postCode, _ := sf.dom().Snapshot(postCodeSelector)
	assert.Equal(t, "John", first.Value)
	assert.Equal(t, "12345", postCode.Value)

	assert.Error(t, checkout.WaitForConfirmation())
	require.NoError(t, checkout.SubmitForm())
	require.NoError(t, checkout.WaitForConfirmation())

	path, err := checkout.DownloadConfirmation()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/playwright-artifacts/confirmation.pdf", path)
}

func TestCheckout_OpenMiniCartWhenAlreadyOpen(t *testing.T) {
	sf := newStorefront()
	checkout := sf.set().Checkout

	// adding opens the cart on its own
	require.NoError(t, checkout.AddProductToCart("Pixel 5"))
	require.NoError(t, checkout.OpenMiniCart())
	assert.Zero(t, sf.dom().Clicks(miniCartIconSelector))
}

func TestCheckout_ActionErrorsPropagate(t *testing.T) {
	sf := newStorefront()
	checkout := sf.set().Checkout

	assert.Error(t, checkout.AddProductToCart("Nokia 3310"))
	assert.Error(t, checkout.AddProductToCartAndOpenMiniCart("Nokia 3310"))
	assert.Error(t, checkout.ClickCheckout())
	assert.Error(t, checkout.FillShippingForm(models.SampleShippingDetails()))
	assert.Error(t, checkout.SubmitForm())

	_, err := checkout.DownloadConfirmation()
	assert.ErrorIs(t, err, pagetest.ErrNotFound)
}

func TestCheckout_BlankFieldsAreTyped(t *testing.T) {
	sf := newStorefront()
	withCheckoutForm(sf)
	checkout := sf.set().Checkout

	details := models.ShippingDetails{FirstName: "Jane"}
	require.Error(t, details.Validate())
	require.NoError(t, checkout.FillShippingForm(details))

	last, _ := sf.dom().Snapshot(lastNameSelector)
	assert.Equal(t, "", last.Value)
}

func TestCheckout_FillShippingFormLogsRecipient(t *testing.T) {
	sf := newStorefront()
	withCheckoutForm(sf)
	deps := testDeps()
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	deps.Log = log
	checkout := NewSet(sf.page, deps).Checkout

	details, err := models.NewShippingDetails(" Jane ", "Roe", "42 Queen St", "Quebec", "H2X 1Y4")
	require.NoError(t, err)
	require.NoError(t, checkout.FillShippingForm(*details))

	first, _ := sf.dom().Snapshot(firstNameSelector)
	assert.Equal(t, "Jane", first.Value)
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "shipping form filled", entry.Message)
	assert.Equal(t, "Jane Roe", entry.Data["recipient"])
	assert.Equal(t, true, entry.Data["complete"])

	require.NoError(t, checkout.FillShippingForm(models.ShippingDetails{LastName: "Roe"}))
	assert.Equal(t, "Roe", hook.LastEntry().Data["recipient"])
	assert.Equal(t, false, hook.LastEntry().Data["complete"])
}
