package pages

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/testathon/storefront-e2e/internal/credentials"
)

// SignIn drives the dropdown based sign in form
type SignIn struct {
	Spinner
	Navigator
	Messages

	s   *surface
	log logrus.FieldLogger
}

func newSignIn(s *surface) *SignIn {
	return &SignIn{
		Spinner:   Spinner{s},
		Navigator: Navigator{s},
		Messages:  Messages{s},
		s:         s,
		log:       s.log.WithField("page", "signin"),
	}
}

// ClickSignIn follows the header's Sign In link
func (p *SignIn) ClickSignIn() error {
	if err := p.s.link(signInLinkName).Click(); err != nil {
		return fmt.Errorf("click sign in link: %w", err)
	}
	return nil
}

// SelectUsername opens the username dropdown and picks username
func (p *SignIn) SelectUsername(username string) error {
	return p.selectOption(usernameDropdown, username)
}

// SelectPassword opens the password dropdown and picks password
func (p *SignIn) SelectPassword(password string) error {
	return p.selectOption(passwordDropdown, password)
}

func (p *SignIn) selectOption(dropdown, option string) error {
	if err := p.s.page.Locator(dropdown).Click(); err != nil {
		return fmt.Errorf("open dropdown %s: %w", dropdown, err)
	}
	if err := p.s.byText(option).Click(); err != nil {
		return fmt.Errorf("select option from %s: %w", dropdown, err)
	}
	return nil
}

func (p *SignIn) ClickLogIn() error {
	if err := p.s.button(logInButtonName).Click(); err != nil {
		return fmt.Errorf("click log in: %w", err)
	}
	return nil
}

// SignIn runs the whole form for cred and waits for the spinner
func (p *SignIn) SignIn(cred credentials.Credential) error {
	log := p.log.WithField("credential", cred.String())
	log.Debug("signing in")

	steps := []func() error{
		p.ClickSignIn,
		func() error { return p.SelectUsername(cred.Username) },
		func() error { return p.SelectPassword(cred.Password) },
		p.ClickLogIn,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return fmt.Errorf("sign in as %s: %w", cred, err)
		}
	}

	p.WaitForSpinner()
	log.Info("signed in")
	return nil
}

// SignInAndVerify signs in and reports whether the storefront shows the user as logged in
func (p *SignIn) SignInAndVerify(cred credentials.Credential) bool {
	if err := p.SignIn(cred); err != nil {
		p.log.WithError(err).Warn("sign in failed")
		return false
	}
	return p.IsUserLoggedIn()
}

// Logout clicks the Logout link when it is shown. Logging out a guest is a no-op.
func (p *SignIn) Logout() error {
	link := p.s.link(logoutLinkName)
	if !p.s.visibleSoon(link) {
		p.log.Debug("logout link not shown, nothing to do")
		return nil
	}
	if err := link.Click(); err != nil {
		return fmt.Errorf("click logout: %w", err)
	}
	p.WaitForSpinner()
	return nil
}

func (p *SignIn) NavigateToSignIn() error {
	return p.NavigateTo(signInPath)
}

// WaitForSignInPage fails when the username and password dropdowns do not appear
func (p *SignIn) WaitForSignInPage() error {
	for _, sel := range []string{usernameField, passwordField} {
		if err := p.s.waitVisible(p.s.page.Locator(sel), p.s.timeouts.PageLoad); err != nil {
			return fmt.Errorf("sign in page: %s not shown: %w", sel, err)
		}
	}
	return nil
}

func (p *SignIn) IsSignInPageLoaded() bool {
	return p.s.visible(p.s.page.Locator(usernameField)) && p.s.visible(p.s.page.Locator(passwordField))
}

// IsUserLoggedIn looks for the Logout control
func (p *SignIn) IsUserLoggedIn() bool {
	return p.s.visible(p.s.page.Locator(logoutTextSelector))
}

// LoggedInUsername returns the username shown in the header, "" when there is none
func (p *SignIn) LoggedInUsername() string {
	return p.s.reader.Text(p.s.page.Locator(loggedInUserSelector).First()).Value
}

// Identity observes who the storefront currently shows as signed in
func (p *SignIn) Identity() Identity {
	if !p.IsUserLoggedIn() {
		return Guest()
	}
	return LoggedInAs(p.LoggedInUsername())
}
