package relay

import (
	"fmt"

	"github.com/riordanpawley/translate-ai/internal/domain"
)

const translatePrompt = `You are a professional translator.
Task: Translate the following text to %[1]s.
Rules:
1. Translate naturally and accurately to %[1]s.
2. IMPORTANT: Preserve the original formatting, paragraph breaks, and lists. Do not merge paragraphs.
3. If the text is already in %[1]s, correct any grammar or stylistic errors but keep it in %[1]s.
4. Return ONLY the translated/corrected text, no explanations.

Text to translate: "%[2]s"`

const summarizePrompt = `You are an intelligent AI assistant.
Task: Summarize the following web page content in %[1]s.
Rules:
1. Provide a concise summary of the main points.
2. Use bullet points for readability if there are multiple key topics.
3. Keep the tone neutral and professional.
4. If the text seems to be just navigation or footer noise, ignore it and summarize the main content.
5. Output must be in %[1]s.

Text to summarize:
"%[2]s"`

// BuildPrompt renders the instruction for req. The source text is embedded
// as-is.
func BuildPrompt(req domain.RelayRequest) string {
	lang := req.TargetLanguage
	if lang == "" {
		lang = domain.DefaultRelayLanguage
	}
	if req.Action == domain.ActionSummarize {
		return fmt.Sprintf(summarizePrompt, lang, req.Text)
	}
	return fmt.Sprintf(translatePrompt, lang, req.Text)
}
