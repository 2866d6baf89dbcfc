package models

import "strings"

type Language string

const (
	LangEnglish Language = "en"
	LangHindi   Language = "hi"
)

// ParseLanguage maps user input to a supported language, defaulting to English.
func ParseLanguage(value string) Language {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(LangHindi):
		return LangHindi
	default:
		return LangEnglish
	}
}

// Other returns the language used as fallback for l.
func (l Language) Other() Language {
	if l == LangHindi {
		return LangEnglish
	}
	return LangHindi
}

type BilingualText struct {
	En string `json:"en" yaml:"en" validate:"required"`
	Hi string `json:"hi" yaml:"hi" validate:"required"`
}

func Text(en, hi string) BilingualText {
	return BilingualText{En: en, Hi: hi}
}

func (t BilingualText) In(lang Language) string {
	if lang == LangHindi {
		return t.Hi
	}
	return t.En
}

func (t BilingualText) IsZero() bool {
	return strings.TrimSpace(t.En) == "" && strings.TrimSpace(t.Hi) == ""
}

// Resolve returns the text for lang, or the fallback language's text when
// the requested one is blank.
func Resolve(text BilingualText, lang, fallback Language) string {
	if value := text.In(lang); strings.TrimSpace(value) != "" {
		return value
	}
	if value := text.In(fallback); strings.TrimSpace(value) != "" {
		return value
	}
	return ""
}
