package assist

import "fmt"

func extractPrompt(text string) string {
	return fmt.Sprintf(`Analyse the report below and extract the data for a document protocol.
Report: %q
Answer ONLY with a JSON object, no prose:
{"title": "string", "category": "string", "priority": "High|Medium|Low", "executive_summary": "string"}
Write the values in Portuguese.`, text)
}

func summarizePrompt(text string) string {
	return fmt.Sprintf(`You are a legal and administrative assistant. Rewrite the following document description as a concise, professional protocol summary in Portuguese: %q`, text)
}

func categoryPrompt(text string) string {
	return fmt.Sprintf(`Based on the document description %q, suggest a short category (e.g. Contrato, Nota Fiscal, Ofício, Pessoal, RH). Answer with the category word only.`, text)
}
