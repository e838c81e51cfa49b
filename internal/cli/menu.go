package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/stationone-hq/stationone-menu/internal/view"
)

func categoriesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List menu categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			api, err := opts.client()
			if err != nil {
				return err
			}
			cats, err := api.ListCategories(cmd.Context())
			if err != nil {
				return failedLoading("categories", err)
			}
			if opts.json {
				return writeJSON(cmd.OutOrStdout(), nil, cats)
			}
			return view.Categories(cmd.OutOrStdout(), cats)
		},
	}
}

func categoryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "category <id>",
		Short: "Show one category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := opts.client()
			if err != nil {
				return err
			}
			env, err := api.GetCategory(cmd.Context(), args[0])
			if err != nil {
				return failedLoading("category", err)
			}
			if opts.json {
				return writeJSON(cmd.OutOrStdout(), env.Raw, env)
			}
			return describe(cmd.OutOrStdout(), env.Data.Title, env.Data.Description, api.ImageURL(env.Data.Image))
		},
	}
}

func subCategoriesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "subcategories <categoryId>",
		Short: "List the subcategories of a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := opts.client()
			if err != nil {
				return err
			}
			subs, err := api.ListSubCategoriesByCategory(cmd.Context(), args[0])
			if err != nil {
				return failedLoading("subcategories", err)
			}
			if opts.json {
				return writeJSON(cmd.OutOrStdout(), nil, subs)
			}
			heading := ""
			if cat, err := api.GetCategory(cmd.Context(), args[0]); err == nil {
				heading = cat.Data.Title
			}
			return view.SubCategories(cmd.OutOrStdout(), heading, subs)
		},
	}
}

func subCategoryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "subcategory <id>",
		Short: "Show one subcategory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := opts.client()
			if err != nil {
				return err
			}
			env, err := api.GetSubCategory(cmd.Context(), args[0])
			if err != nil {
				return failedLoading("subcategory", err)
			}
			if opts.json {
				return writeJSON(cmd.OutOrStdout(), env.Raw, env)
			}
			if err := describe(cmd.OutOrStdout(), env.Data.Title, env.Data.Description, api.ImageURL(env.Data.Image)); err != nil {
				return err
			}
			if parent := view.ParentCategoryID(env.Data); parent != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Category: %s\n", parent)
			}
			return nil
		},
	}
}

func productsCmd(opts *options) *cobra.Command {
	var categoryID, subCategoryID string
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List the products of a subcategory or a whole category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			api, err := opts.client()
			if err != nil {
				return err
			}
			listing, err := view.ProductsFor(cmd.Context(), api, categoryID, subCategoryID)
			if err != nil {
				return failedLoading("products", err)
			}
			if opts.json {
				return writeJSON(cmd.OutOrStdout(), nil, listing.Products)
			}
			return view.Products(cmd.OutOrStdout(), listing)
		},
	}
	cmd.Flags().StringVar(&categoryID, "category", "", "list every product of this category")
	cmd.Flags().StringVar(&subCategoryID, "subcategory", "", "list the products of this subcategory")
	cmd.MarkFlagsOneRequired("category", "subcategory")
	return cmd
}

func productCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "product <id>",
		Short: "Show product details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := opts.client()
			if err != nil {
				return err
			}
			env, err := api.GetProduct(cmd.Context(), args[0])
			if err != nil {
				return failedLoading("product details", err)
			}
			if opts.json {
				return writeJSON(cmd.OutOrStdout(), env.Raw, env)
			}
			return view.Product(cmd.OutOrStdout(), api, env.Data)
		},
	}
}

func offersCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "offers",
		Short: "List the offers slider",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			api, err := opts.client()
			if err != nil {
				return err
			}
			offers, err := api.ListOffers(cmd.Context())
			if err != nil {
				return failedLoading("offers", err)
			}
			if opts.json {
				return writeJSON(cmd.OutOrStdout(), nil, offers)
			}
			return view.Offers(cmd.OutOrStdout(), offers)
		},
	}
}

func offerCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "offer <id>",
		Short: "Show an offer with the items it includes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := opts.client()
			if err != nil {
				return err
			}
			offer, err := api.GetOfferDetails(cmd.Context(), args[0])
			if err != nil {
				return failedLoading("offer details", err)
			}
			if opts.json {
				return writeJSON(cmd.OutOrStdout(), nil, offer)
			}
			return view.Offer(cmd.OutOrStdout(), api, offer)
		},
	}
}

func describe(w io.Writer, title, description, image string) error {
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	if desc := view.PlainText(description); desc != "" {
		fmt.Fprintln(w, desc)
	}
	if image != "" {
		fmt.Fprintf(w, "Image: %s\n", image)
	}
	return nil
}
