package generation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/trendia-ai/trendia/internal/domain/entities"
	"github.com/trendia-ai/trendia/internal/domain/providers"
)

// MockGenerationProvider implements a deterministic generation provider for
// development and testing. It returns the same canned catalog regardless of
// the prompt, lightly themed by the prompt's first word.
type MockGenerationProvider struct{}

// NewMockGenerationProvider creates a new mock generation provider
func NewMockGenerationProvider() providers.GenerationProvider {
	return &MockGenerationProvider{}
}

type mockIdea struct {
	name        string
	description string
	price       float64
	persona     string
}

var mockIdeas = []mockIdea{
	{
		name:        "Caneca Térmica Inteligente",
		description: "Caneca com display de temperatura e design exclusivo, ideal para presentear",
		price:       89.90,
		persona:     "Profissionais que trabalham em home office",
	},
	{
		name:        "Luminária Lua 3D",
		description: "Luminária decorativa inovadora em formato de lua com controle remoto",
		price:       64.50,
		persona:     "Jovens que decoram o quarto com itens criativos",
	},
	{
		name:        "Kit Jardim Vertical",
		description: "Kit criativo de jardim vertical para apartamentos pequenos",
		price:       120.00,
		persona:     "Moradores de apartamento que gostam de plantas",
	},
	{
		name:        "Quebra-Cabeça Personalizado",
		description: "Quebra-cabeça com foto personalizada, presente divertido e afetivo",
		price:       45.00,
		persona:     "Casais em datas comemorativas",
	},
	{
		name:        "Porta-Copos Magnético",
		description: "Conjunto de porta-copos magnéticos com design moderno",
		price:       32.90,
		persona:     "Anfitriões que recebem visitas em casa",
	},
}

// GenerateIdeas returns the canned catalog themed by the prompt.
func (m *MockGenerationProvider) GenerateIdeas(ctx context.Context, prompt string) ([]*entities.Product, error) {
	theme := firstWord(prompt)
	now := time.Now().UTC()

	products := make([]*entities.Product, 0, len(mockIdeas))
	for _, idea := range mockIdeas {
		name := idea.name
		if theme != "" {
			name = fmt.Sprintf("%s (%s)", idea.name, theme)
		}
		products = append(products, &entities.Product{
			URL:              entities.SyntheticURL(name),
			Title:            name,
			Description:      idea.description,
			PriceBRL:         idea.price,
			ImageURL:         entities.PlaceholderImageURL(name),
			Source:           entities.SourceGenerated,
			MarketingPersona: idea.persona,
			CreatedAt:        now,
		})
	}
	return products, nil
}

func firstWord(prompt string) string {
	fields := strings.Fields(strings.TrimSpace(prompt))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
