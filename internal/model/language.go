package model

import (
	"errors"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

var ErrUnsupportedLanguage = errors.New("unsupported language")

// Language is one of the document languages offered in the selection menus.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageFrench  Language = "fr"
	LanguageSpanish Language = "es"
	LanguageArabic  Language = "ar"
)

// SupportedLanguages lists the menu options in display order.
var SupportedLanguages = []Language{
	LanguageEnglish,
	LanguageFrench,
	LanguageSpanish,
	LanguageArabic,
}

// ParseLanguage accepts one of the supported ISO 639-1 codes.
func ParseLanguage(code string) (Language, error) {
	normalized := Language(strings.ToLower(strings.TrimSpace(code)))
	for _, lang := range SupportedLanguages {
		if lang == normalized {
			return lang, nil
		}
	}
	return "", ErrUnsupportedLanguage
}

func (l Language) String() string {
	return string(l)
}

// Tag returns the BCP 47 tag for the language.
func (l Language) Tag() language.Tag {
	return language.Make(string(l))
}

// Label renders the button text, e.g. "French (FR)".
func (l Language) Label() string {
	name := display.English.Tags().Name(l.Tag())
	if name == "" {
		name = string(l)
	}
	return name + " (" + strings.ToUpper(string(l)) + ")"
}
