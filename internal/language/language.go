// Package language builds the natural-language instructions injected into
// prompts so the model answers in the caller's language with the right
// professional register.
package language

import "strings"

// locale holds everything prompt builders need for one supported language.
type locale struct {
	displayName   string
	instruction   string
	cvInstruction string
}

var locales = map[string]locale{
	"en": {
		displayName: "English",
		instruction: "Respond entirely in English. Use clear, professional business English " +
			"and the terminology common in English-speaking job markets.",
		cvInstruction: "Write every section of the CV in English. Use action verbs, direct " +
			"phrasing and the concise achievement-driven style expected by English-speaking " +
			"recruiters and applicant tracking systems.",
	},
	"es": {
		displayName: "Spanish",
		instruction: "Responde completamente en español. Utiliza un español profesional y " +
			"la terminología habitual de los mercados laborales hispanohablantes.",
		cvInstruction: "Redacta todas las secciones del CV en español. Usa un registro formal " +
			"pero cercano, con verbos de acción y logros cuantificados, como esperan los " +
			"reclutadores hispanohablantes.",
	},
	"fr": {
		displayName: "French",
		instruction: "Réponds entièrement en français. Utilise un français professionnel et " +
			"la terminologie courante du marché du travail francophone.",
		cvInstruction: "Rédige toutes les sections du CV en français. Adopte un ton formel et " +
			"précis, avec des verbes d'action et des résultats chiffrés, conformément aux " +
			"usages des recruteurs francophones.",
	},
	"zh": {
		displayName: "Chinese",
		instruction: "请完全使用中文回答。使用专业的商务中文以及中文就业市场常用的术语。",
		cvInstruction: "请用中文撰写简历的所有部分。采用正式、简洁的表达方式，突出量化成果，" +
			"符合中文招聘市场和人事部门的阅读习惯。",
	},
}

// normalize lowercases a locale code and drops any region suffix ("es-MX" -> "es").
// Unknown codes resolve to English; there is deliberately no error path.
func normalize(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if idx := strings.IndexAny(code, "-_"); idx >= 0 {
		code = code[:idx]
	}
	if _, ok := locales[code]; !ok {
		return "en"
	}
	return code
}

// DisplayName returns the canonical language name for prompt embedding.
func DisplayName(code string) string {
	return locales[normalize(code)].displayName
}

// Instruction returns the response-language instruction for analysis prompts.
func Instruction(code string) string {
	return locales[normalize(code)].instruction
}

// CVInstruction returns the language and register instruction for CV
// generation prompts.
func CVInstruction(code string) string {
	return locales[normalize(code)].cvInstruction
}

// Supported lists the locale codes with dedicated instructions.
func Supported() []string {
	return []string{"en", "es", "fr", "zh"}
}
