package gemini

import "fmt"

const ideaPromptTemplate = `Aja como um especialista em tendências de produtos e e-commerce.
Sua tarefa é gerar uma lista de 8 ideias de produtos inovadores e interessantes baseados na busca do usuário: "%s".

Para cada produto, forneça as seguintes informações em formato JSON, dentro de uma lista JSON:
- "product_name": O nome do produto.
- "description": Uma descrição curta e atrativa.
- "estimated_price_brl": Uma estimativa de preço de venda em Reais (BRL), apenas o número.
- "marketing_persona": Uma descrição curta (uma frase) do cliente ideal para este produto.

Retorne APENAS a lista JSON. Não use aspas duplas dentro dos valores das strings. Use aspas simples se necessário.`

func buildIdeaPrompt(userPrompt string) string {
	return fmt.Sprintf(ideaPromptTemplate, userPrompt)
}
