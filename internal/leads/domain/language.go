package domain

// Language is the output language for generated text.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageSpanish Language = "es"
	LanguageChinese Language = "zh"
)

// DefaultLanguage is used when a request names none.
const DefaultLanguage = LanguageEnglish

// IsKnownLanguage reports whether l is a supported output language.
func IsKnownLanguage(l Language) bool {
	switch l {
	case LanguageEnglish, LanguageSpanish, LanguageChinese:
		return true
	}
	return false
}
