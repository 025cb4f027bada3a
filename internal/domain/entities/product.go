package entities

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Product sources
const (
	SourceGenerated    = "generated"
	SourceMercadoLivre = "mercadolivre"
	SourceGoogleShop   = "googleshopping"
)

// Product is a candidate gift/novelty item, either synthesized by the
// generation model or collected from a shopping site. The URL is the
// stable identity key across both origins.
type Product struct {
	URL              string    `json:"product_url" db:"product_url"`
	Title            string    `json:"title" db:"title"`
	Description      string    `json:"description" db:"description"`
	PriceBRL         float64   `json:"price_brl" db:"price_brl"`
	ImageURL         string    `json:"image_url" db:"image_url"`
	Source           string    `json:"source" db:"source"`
	MarketingPersona string    `json:"marketing_persona,omitempty" db:"marketing_persona"`
	InnovationScore  int       `json:"innovation_score" db:"innovation_score"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`

	// Utility is recomputed on every ranking pass against the current
	// candidate pool. It is never persisted and not comparable across pools.
	Utility float64 `json:"utility,omitempty" db:"-"`
}

// Text returns the lower-cased title+description blob the innovation
// score is computed from.
func (p *Product) Text() string {
	return strings.ToLower(p.Title + " " + p.Description)
}

// SyntheticURL builds the stable identity key for a generated idea: a
// shopping-search link derived from the product name.
func SyntheticURL(name string) string {
	return "https://www.google.com/search?tbm=shop&q=" + url.QueryEscape(name)
}

// PlaceholderImageURL builds a placeholder image link for a generated idea.
func PlaceholderImageURL(name string) string {
	return fmt.Sprintf("https://via.placeholder.com/400x300.png?text=%s", url.QueryEscape(name))
}
