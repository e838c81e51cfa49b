package publishers

import (
	"encoding/json"
	"time"
)

// Item kinds carried by events.
const (
	KindCategory    = "category"
	KindSubCategory = "subcategory"
	KindProduct     = "product"
	KindOffer       = "offer"
)

// Event represents a new or changed menu item published downstream.
type Event struct {
	DeploymentID string          `json:"deployment_id"`
	Kind         string          `json:"kind"`
	ItemID       string          `json:"item_id"`
	Title        string          `json:"title,omitempty"`
	ImageURL     string          `json:"image_url,omitempty"`
	Payload      json.RawMessage `json:"payload,omitempty"`
	CollectedAt  time.Time       `json:"collected_at"`
}

// NewEvent constructs an Event for a menu item of the given deployment.
func NewEvent(deploymentID, kind, itemID, title, imageURL string, payload json.RawMessage) Event {
	return Event{
		DeploymentID: deploymentID,
		Kind:         kind,
		ItemID:       itemID,
		Title:        title,
		ImageURL:     imageURL,
		Payload:      payload,
		CollectedAt:  time.Now().UTC(),
	}
}

// Key identifies the item across walks.
func (e Event) Key() string {
	return e.DeploymentID + "/" + e.Kind + "/" + e.ItemID
}

// attributes are attached as message attributes by queue/topic sinks.
func (e Event) attributes() map[string]string {
	return map[string]string{
		"deployment_id": e.DeploymentID,
		"kind":          e.Kind,
		"item_id":       e.ItemID,
	}
}
