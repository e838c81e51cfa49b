package view

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/stationone-hq/stationone-menu/internal/domain"
	"github.com/stationone-hq/stationone-menu/pkg/menuapi"
)

const descriptionWidth = 60

// Categories writes one row per category.
func Categories(w io.Writer, cats []domain.Category) error {
	if len(cats) == 0 {
		_, err := fmt.Fprintln(w, "No categories available")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tDESCRIPTION")
	for _, c := range cats {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.ID, c.Title, Truncate(PlainText(c.Description), descriptionWidth))
	}
	return tw.Flush()
}

// SubCategories writes the subcategories of one category under its heading.
func SubCategories(w io.Writer, heading string, subs []domain.SubCategory) error {
	if heading == "" {
		heading = "Subcategories"
	}
	fmt.Fprintln(w, heading)
	if len(subs) == 0 {
		_, err := fmt.Fprintln(w, "No subcategories available in this category")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tDESCRIPTION")
	for _, sc := range subs {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", sc.ID, sc.Title, Truncate(PlainText(sc.Description), descriptionWidth))
	}
	return tw.Flush()
}

// Products writes a product listing with prices.
func Products(w io.Writer, listing Listing) error {
	if listing.Title != "" {
		fmt.Fprintln(w, listing.Title)
	}
	if len(listing.Products) == 0 {
		_, err := fmt.Fprintln(w, "No products available")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tPRICE")
	for _, p := range listing.Products {
		title := p.Title
		if Unavailable(p) {
			title += " (Unavailable)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.ID, title, NewPriceTag(p))
	}
	return tw.Flush()
}

// Product writes the detail view of a single product.
func Product(w io.Writer, images menuapi.ImageResolver, p domain.Product) error {
	var b strings.Builder
	b.WriteString(p.Title + "\n")
	if tag := NewPriceTag(p); tag.Shown {
		b.WriteString("Price: " + tag.String() + "\n")
	}
	if Unavailable(p) {
		b.WriteString("Unavailable\n")
	}
	if desc := PlainText(p.Description); desc != "" {
		b.WriteString("Description: " + desc + "\n")
	}
	if labels := IngredientLabels(p); len(labels) > 0 {
		b.WriteString("Ingredients: " + strings.Join(labels, ", ") + "\n")
	}
	if len(p.Extras) > 0 {
		b.WriteString("Available Extras:\n")
		for _, ex := range p.Extras {
			fmt.Fprintf(&b, "  %s  +%s\n", ex.Name, FormatAmount(ex.Price))
		}
	}
	if cat := p.Category.Label(); cat != "" {
		b.WriteString("Category: " + cat + "\n")
	}
	if img := imageURL(images, p.Image); img != "" {
		b.WriteString("Image: " + img + "\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Offers writes the offer slider entries.
func Offers(w io.Writer, offers []domain.Offer) error {
	if len(offers) == 0 {
		_, err := fmt.Fprintln(w, "No offers available")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tPRICE\tSTATUS")
	for _, o := range offers {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", o.ID, o.Title, OfferPrice(o), OfferStatus(o))
	}
	return tw.Flush()
}

// Offer writes an offer with the items it includes.
func Offer(w io.Writer, images menuapi.ImageResolver, o domain.Offer) error {
	var b strings.Builder
	b.WriteString(o.Title + "\n")
	if desc := PlainText(o.Description); desc != "" {
		b.WriteString(desc + "\n")
	}
	if price := OfferPrice(o); price != "" {
		b.WriteString("Special Offer Price: " + price + "\n")
	}
	if status := OfferStatus(o); status != "" {
		b.WriteString(status + "\n")
	}
	if img := imageURL(images, o.Image); img != "" {
		b.WriteString("Image: " + img + "\n")
	}
	if len(o.Items) > 0 {
		fmt.Fprintf(&b, "Items Included (%d)\n", len(o.Items))
		for _, item := range o.Items {
			line := "  - " + item.Title
			if item.Price != 0 {
				line += "  " + FormatAmount(item.Price)
			}
			if Unavailable(item) {
				line += "  (Unavailable)"
			}
			b.WriteString(line + "\n")
			if ings := IngredientPreview(item); ings != "" {
				b.WriteString("    " + ings + "\n")
			}
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func imageURL(images menuapi.ImageResolver, path string) string {
	if images == nil || path == "" {
		return ""
	}
	return images.ImageURL(path)
}
