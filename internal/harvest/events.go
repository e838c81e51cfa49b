package harvest

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/stationone-hq/stationone-menu/pkg/menuapi"
	"github.com/stationone-hq/stationone-menu/pkg/publishers"
)

// Events turns a snapshot into one event per menu item.
func Events(deploymentID string, snap Snapshot, images menuapi.ImageResolver) ([]publishers.Event, error) {
	var out []publishers.Event
	add := func(kind, id, title, image string, item any) error {
		payload, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", kind, id, err)
		}
		imageURL := ""
		if image != "" && images != nil {
			imageURL = images.ImageURL(image)
		}
		out = append(out, publishers.NewEvent(deploymentID, kind, id, title, imageURL, payload))
		return nil
	}

	for _, c := range snap.Categories {
		if err := add(publishers.KindCategory, c.ID, c.Title, c.Image, c); err != nil {
			return nil, err
		}
		for _, sc := range snap.SubCategories[c.ID] {
			if err := add(publishers.KindSubCategory, sc.ID, sc.Title, sc.Image, sc); err != nil {
				return nil, err
			}
		}
	}
	for _, p := range snap.Products {
		if err := add(publishers.KindProduct, p.ID, p.Title, p.Image, p); err != nil {
			return nil, err
		}
	}
	for _, o := range snap.Offers {
		if err := add(publishers.KindOffer, o.ID, o.Title, o.Image, o); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Fingerprint identifies the published content of an event.
func Fingerprint(evt publishers.Event) string {
	sum := sha256.New()
	sum.Write([]byte(evt.Title))
	sum.Write([]byte{0})
	sum.Write([]byte(evt.ImageURL))
	sum.Write([]byte{0})
	sum.Write(evt.Payload)
	return hex.EncodeToString(sum.Sum(nil))
}
