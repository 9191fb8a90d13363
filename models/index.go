package models

// Index is a domain event published on the Redis bus. The worker uses it to
// keep derived state (autocomplete index, popularity counters) current.
type Index struct {
	EntityType string `json:"entity_type"`
	Method     string `json:"method"`
	EntityId   string `json:"entity_id"`
	ItemId     string `json:"item_id,omitempty"`
	ItemType   string `json:"item_type,omitempty"`
}
