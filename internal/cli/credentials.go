package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/testathon/storefront-e2e/internal/credentials"
)

// RunCredentials prints the credential directory. Passwords are included, they are public test data.
func RunCredentials(out io.Writer) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tUSERNAME\tPASSWORD\tDESCRIPTION")
	for _, c := range credentials.All() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.Name, c.Username, c.Password, c.Description)
	}
	return w.Flush()
}

// RunInstall downloads the configured browser
func RunInstall(deps Dependencies) error {
	deps.Log.WithField("browser", deps.Config.Browser.Name).Info("installing browser")
	return deps.Install(deps.Config.Browser.Name)
}
