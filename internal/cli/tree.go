package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/stationone-hq/stationone-menu/internal/harvest"
	"github.com/stationone-hq/stationone-menu/internal/logger"
	"github.com/stationone-hq/stationone-menu/internal/view"
)

func treeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Walk the whole menu and print it as a tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			api, err := opts.client()
			if err != nil {
				return err
			}
			log := logger.New(zapcore.WarnLevel, zapcore.AddSync(cmd.ErrOrStderr()))
			snap, walkErr := harvest.NewWalker(api, 0, log).Walk(cmd.Context())
			if walkErr != nil && len(snap.Categories) == 0 {
				return failedLoading("menu", walkErr)
			}

			if opts.json {
				err = writeJSON(cmd.OutOrStdout(), nil, snap)
			} else {
				err = printTree(cmd.OutOrStdout(), snap)
			}
			if err != nil {
				return err
			}
			if walkErr != nil {
				return failedLoading("parts of the menu", walkErr)
			}
			return nil
		},
	}
}

// printTree nests products under the listing that returned them, not under
// the refs the products carry.
func printTree(w io.Writer, snap harvest.Snapshot) error {
	lines := make(map[string]string, len(snap.Products))
	for _, p := range snap.Products {
		line := p.Title
		if tag := view.NewPriceTag(p); tag.Shown {
			line += "  " + tag.String()
		}
		lines[p.ID] = line
	}

	var b strings.Builder
	for _, c := range snap.Categories {
		fmt.Fprintf(&b, "%s [%s]\n", c.Title, c.ID)
		for _, id := range snap.ProductsByCategory[c.ID] {
			fmt.Fprintf(&b, "  - %s\n", lines[id])
		}
		for _, sc := range snap.SubCategories[c.ID] {
			fmt.Fprintf(&b, "  %s [%s]\n", sc.Title, sc.ID)
			for _, id := range snap.ProductsBySubCategory[sc.ID] {
				fmt.Fprintf(&b, "    - %s\n", lines[id])
			}
		}
	}
	if len(snap.Offers) > 0 {
		b.WriteString("Offers\n")
		for _, o := range snap.Offers {
			line := o.Title
			if price := view.OfferPrice(o); price != "" {
				line += "  " + price
			}
			fmt.Fprintf(&b, "  %s [%s] (%d items)\n", line, o.ID, len(o.Items))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
