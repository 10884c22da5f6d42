package domain

// Language describes a supported language.
type Language struct {
	// Code is the ISO 639-1 code.
	Code string
	// Name is the English name.
	Name string
	// NativeName is the name in the language itself.
	NativeName string
	// Speakers is the approximate number of speakers, in millions.
	Speakers int
}

var languages = []Language{ //nolint: gochecknoglobals
	{Code: "en", Name: "English", NativeName: "English", Speakers: 1500},
	{Code: "es", Name: "Spanish", NativeName: "Español", Speakers: 560},
	{Code: "zh", Name: "Chinese", NativeName: "中文", Speakers: 1100},
	{Code: "hi", Name: "Hindi", NativeName: "हिन्दी", Speakers: 600},
	{Code: "ar", Name: "Arabic", NativeName: "العربية", Speakers: 370},
	{Code: "fr", Name: "French", NativeName: "Français", Speakers: 310},
	{Code: "de", Name: "German", NativeName: "Deutsch", Speakers: 130},
	{Code: "pl", Name: "Polish", NativeName: "Polski", Speakers: 45},
}

// Languages returns the supported languages in display order. The returned slice is a copy.
func Languages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)

	return out
}
