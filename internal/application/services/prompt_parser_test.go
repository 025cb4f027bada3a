package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trendia-ai/trendia/internal/application/services"
)

func TestParsePrompt_ExtractsPriceCeiling(t *testing.T) {
	parsed := services.ParsePrompt("presente criativo até 50 reais")

	assert.Equal(t, 50.0, parsed.MaxPrice)
	assert.Equal(t, []string{"presente", "criativo"}, parsed.Keywords)
}

func TestParsePrompt_PriceWithoutSpace(t *testing.T) {
	parsed := services.ParsePrompt("caneca por 80reais")

	assert.Equal(t, 80.0, parsed.MaxPrice)
	assert.Equal(t, []string{"caneca"}, parsed.Keywords)
}

func TestParsePrompt_NoPriceMention(t *testing.T) {
	parsed := services.ParsePrompt("luminária para quarto jovem")

	assert.Zero(t, parsed.MaxPrice)
	assert.Equal(t, []string{"luminária", "quarto", "jovem"}, parsed.Keywords)
}

func TestParsePrompt_StripsStopwordsAndPunctuation(t *testing.T) {
	parsed := services.ParsePrompt("Um presente de Natal, para o escritório!")

	assert.Equal(t, []string{"presente", "natal", "escritório"}, parsed.Keywords)
}

func TestParsePrompt_EmptyPrompt(t *testing.T) {
	parsed := services.ParsePrompt("")

	assert.Zero(t, parsed.MaxPrice)
	assert.Empty(t, parsed.Keywords)
}
