package gemini_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trendia-ai/trendia/internal/domain/entities"
	"github.com/trendia-ai/trendia/internal/infrastructure/clients/gemini"
)

func TestParseIdeas_WellFormedResponse(t *testing.T) {
	text := "```json\n" +
		`[{"product_name": "Caneca Térmica", "description": "mantém o café quente", "estimated_price_brl": 89.9, "marketing_persona": "profissionais em home office"}]` +
		"\n```"

	products, err := gemini.ParseIdeas(text)

	assert.NoError(t, err)
	assert.Len(t, products, 1)

	p := products[0]
	assert.Equal(t, "Caneca Térmica", p.Title)
	assert.Equal(t, "mantém o café quente", p.Description)
	assert.InDelta(t, 89.9, p.PriceBRL, 1e-9)
	assert.Equal(t, "profissionais em home office", p.MarketingPersona)
	assert.Equal(t, entities.SourceGenerated, p.Source)
	assert.Equal(t, entities.SyntheticURL("Caneca Térmica"), p.URL)
	assert.Equal(t, entities.PlaceholderImageURL("Caneca Térmica"), p.ImageURL)
}

func TestParseIdeas_PriceAsString(t *testing.T) {
	text := `[{"product_name": "Luminária", "estimated_price_brl": "64.50"}]`

	products, err := gemini.ParseIdeas(text)

	assert.NoError(t, err)
	assert.InDelta(t, 64.5, products[0].PriceBRL, 1e-9)
}

func TestParseIdeas_NullAndJunkPricesBecomeZero(t *testing.T) {
	text := `[{"product_name": "A", "estimated_price_brl": null}, {"product_name": "B", "estimated_price_brl": "uns 50 reais"}]`

	products, err := gemini.ParseIdeas(text)

	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Zero(t, products[0].PriceBRL)
	assert.Zero(t, products[1].PriceBRL)
}

func TestParseIdeas_MissingNameGetsPlaceholder(t *testing.T) {
	text := `[{"description": "produto misterioso", "estimated_price_brl": 10}]`

	products, err := gemini.ParseIdeas(text)

	assert.NoError(t, err)
	assert.Equal(t, "Produto Sem Nome", products[0].Title)
}

func TestParseIdeas_RepairsUnescapedQuotes(t *testing.T) {
	text := `[{"product_name": "Kit "Churrasco" Premium", "description": "para quem ama um "bom churrasco"", "estimated_price_brl": 150}]`

	products, err := gemini.ParseIdeas(text)

	assert.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, "Kit 'Churrasco' Premium", products[0].Title)
}

func TestParseIdeas_NoArrayInResponse(t *testing.T) {
	_, err := gemini.ParseIdeas("Desculpe, não consegui gerar ideias.")

	assert.Error(t, err)
}
