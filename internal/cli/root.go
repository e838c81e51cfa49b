package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/stationone-hq/stationone-menu/pkg/menuapi"
)

// ClientFactory returns the menu API of the selected deployment. An empty
// deployment selects the configured default.
type ClientFactory func(deployment string) (menuapi.API, error)

type options struct {
	deployment string
	json       bool
	factory    ClientFactory
}

func (o *options) client() (menuapi.API, error) {
	if o.factory == nil {
		return nil, errors.New("no menu api configured")
	}
	api, err := o.factory(o.deployment)
	if err != nil {
		return nil, fmt.Errorf("connect to deployment: %w", err)
	}
	return api, nil
}

// NewRootCommand builds the menuctl command tree.
func NewRootCommand(factory ClientFactory) *cobra.Command {
	opts := &options{factory: factory}

	root := &cobra.Command{
		Use:           "menuctl",
		Short:         "Browse the lounge menu and submit reviews from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.deployment, "deployment", "d", "", "deployment id from the deployments file")
	root.PersistentFlags().BoolVar(&opts.json, "json", false, "print raw JSON instead of text")

	root.AddCommand(
		categoriesCmd(opts),
		categoryCmd(opts),
		subCategoriesCmd(opts),
		subCategoryCmd(opts),
		productsCmd(opts),
		productCmd(opts),
		offersCmd(opts),
		offerCmd(opts),
		reviewCmd(opts),
		treeCmd(opts),
	)
	return root
}

// Run executes the command line and prints failures the way the menu pages
// do. It returns the process exit code.
func Run(ctx context.Context, args []string, factory ClientFactory, stdout, stderr io.Writer) int {
	root := NewRootCommand(factory)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var le *loadError
	var re *reviewError
	switch {
	case errors.As(err, &le):
		fmt.Fprintf(stderr, "Error loading %s: %v\n", le.what, le.err)
	case errors.As(err, &re):
		fmt.Fprintln(stderr, re.message)
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return 1
}

// loadError reports a failed read of a menu page.
type loadError struct {
	what string
	err  error
}

func (e *loadError) Error() string { return "error loading " + e.what + ": " + e.err.Error() }
func (e *loadError) Unwrap() error { return e.err }

func failedLoading(what string, err error) error {
	return &loadError{what: what, err: err}
}

// reviewError carries the message shown for a rejected review.
type reviewError struct {
	message string
	err     error
}

func (e *reviewError) Error() string { return e.message }
func (e *reviewError) Unwrap() error { return e.err }

func writeJSON(w io.Writer, raw json.RawMessage, v any) error {
	if len(raw) > 0 {
		_, err := fmt.Fprintln(w, string(raw))
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
