package discovery

import "riseleads_backend/platform/ai/gemini"

// SearchRequest asks for businesses of a niche around a location. Coordinates
// are optional and only bias the maps search.
type SearchRequest struct {
	Niche     string   `json:"niche" validate:"required,min=2,max=100"`
	Location  string   `json:"location" validate:"required,min=2,max=200"`
	Latitude  *float64 `json:"latitude,omitempty" validate:"omitempty,min=-90,max=90,required_with=Longitude"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,min=-180,max=180,required_with=Latitude"`
}

// Entity is one grounding source. Only maps entities describe a business that
// can be promoted into the pipeline.
type Entity = gemini.Source

// SearchResult is the narrative answer plus the entities it was grounded on.
type SearchResult struct {
	Text     string   `json:"text"`
	Entities []Entity `json:"entities"`
}

// PromoteRequest turns a search entity into a lead. Niche and location are the
// search inputs that produced the entity.
type PromoteRequest struct {
	Entity   Entity `json:"entity" validate:"required"`
	Niche    string `json:"niche" validate:"max=100"`
	Location string `json:"location" validate:"max=200"`
}
