package insight

import (
	"fmt"
	"strings"

	"github.com/EducAI25/intellidash-insights-ai/domain/dataset"
)

// BuildChatContext produces the deterministic data-context string handed
// to the chat assistant together with the user's question. Same insights
// and columns always yield the same bytes.
func BuildChatContext(title string, columns []string, insights dataset.DataInsights) string {
	if insights.TotalRecords == 0 {
		return "Nenhum dado disponível."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Dados do dashboard %q:\n", title)
	fmt.Fprintf(&b, "- Total de registros: %d\n", insights.TotalRecords)
	fmt.Fprintf(&b, "- Colunas: %s\n", strings.Join(columns, ", "))
	if len(insights.NumericColumns) > 0 {
		fmt.Fprintf(&b, "- Colunas numéricas: %s\n", strings.Join(insights.NumericColumns, ", "))
	}
	fmt.Fprintf(&b, "- Qualidade dos dados: %d/100\n", insights.Quality)
	return b.String()
}

// BuildPrompt composes the full prompt for the narrative collaborator.
func BuildPrompt(context, question string) string {
	return fmt.Sprintf("%s\nPergunta do usuário: %s\n\nPor favor, responda de forma clara e precisa sobre os dados apresentados. Se possível, forneça insights, cálculos ou análises relevantes.", context, question)
}

// LocalAnswer is the deterministic fallback used when no LLM is
// configured: keyword-matched summaries over the data itself.
func LocalAnswer(question string, columns []string, rows []dataset.Row, insights dataset.DataInsights) string {
	lower := strings.ToLower(question)

	switch {
	case insights.TotalRecords == 0:
		return "Nenhum dado disponível para análise."
	case strings.Contains(lower, "total") || strings.Contains(lower, "soma"):
		return totalsAnswer(columns, rows, insights)
	case strings.Contains(lower, "coluna"):
		return fmt.Sprintf("O dataset possui %d colunas: %s.", len(columns), strings.Join(columns, ", "))
	case strings.Contains(lower, "registro") || strings.Contains(lower, "linha"):
		return fmt.Sprintf("O dataset possui %d registros.", insights.TotalRecords)
	default:
		return fmt.Sprintf("Analisei seus %d registros com %d colunas. Pergunte sobre totais, colunas ou registros para um resumo específico.",
			insights.TotalRecords, len(columns))
	}
}

func totalsAnswer(columns []string, rows []dataset.Row, insights dataset.DataInsights) string {
	if len(insights.NumericColumns) == 0 {
		return "Não encontrei colunas numéricas para somar."
	}

	parts := make([]string, 0, len(insights.NumericColumns))
	for _, col := range insights.NumericColumns {
		sum := 0.0
		for _, row := range rows {
			if f, ok := row.Get(col).Float(); ok {
				sum += f
			}
		}
		parts = append(parts, fmt.Sprintf("%s: %.2f", col, sum))
	}
	return "Totais das colunas numéricas: " + strings.Join(parts, "; ")
}
