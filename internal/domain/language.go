package domain

import "strings"

// Language is a selectable target language
type Language struct {
	Code  string
	Label string
}

// Languages is the list offered in menus. Code is what gets sent to the
// provider, so it is the English name of the language.
var Languages = []Language{
	{Code: "English", Label: "English"},
	{Code: "Italian", Label: "Italiano"},
	{Code: "Spanish", Label: "Español"},
	{Code: "French", Label: "Français"},
	{Code: "German", Label: "Deutsch"},
	{Code: "Portuguese", Label: "Português"},
	{Code: "Dutch", Label: "Nederlands"},
	{Code: "Russian", Label: "Русский"},
	{Code: "Chinese", Label: "中文"},
	{Code: "Japanese", Label: "日本語"},
	{Code: "Korean", Label: "한국어"},
	{Code: "Arabic", Label: "العربية"},
}

// DefaultRelayLanguage is used when a request carries no target language
const DefaultRelayLanguage = "English"

// LookupLanguage finds a language by code or label, case-insensitively
func LookupLanguage(name string) (Language, bool) {
	for _, l := range Languages {
		if strings.EqualFold(l.Code, name) || strings.EqualFold(l.Label, name) {
			return l, true
		}
	}
	return Language{}, false
}

// LanguageIndex returns the index of code in Languages, or 0
func LanguageIndex(code string) int {
	for i, l := range Languages {
		if l.Code == code {
			return i
		}
	}
	return 0
}
