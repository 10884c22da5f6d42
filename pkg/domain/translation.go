package domain

// translations maps a "from-to" language pair to source text and its translation.
var translations = map[string]map[string]string{ //nolint: gochecknoglobals
	"en-pl": {
		"Hello":     "Cześć",
		"Goodbye":   "Do widzenia",
		"Thank you": "Dziękuję",
		"Yes":       "Tak",
		"No":        "Nie",
	},
	"en-es": {
		"Hello":     "Hola",
		"Goodbye":   "Adiós",
		"Thank you": "Gracias",
		"Yes":       "Sí",
		"No":        "No",
	},
	"en-fr": {
		"Hello":     "Bonjour",
		"Goodbye":   "Au revoir",
		"Thank you": "Merci",
		"Yes":       "Oui",
		"No":        "Non",
	},
	"en-de": {
		"Hello":     "Hallo",
		"Goodbye":   "Auf Wiedersehen",
		"Thank you": "Danke",
		"Yes":       "Ja",
		"No":        "Nein",
	},
	"pl-en": {
		"Cześć":       "Hello",
		"Do widzenia": "Goodbye",
		"Dziękuję":    "Thank you",
		"Tak":         "Yes",
		"Nie":         "No",
	},
}

// Translate looks text up in the translation table for the from-to pair.
// The boolean reports whether an entry was found. When it was not, the
// returned translation is the text prefixed with the target code in brackets.
func Translate(from, to, text string) (string, bool) {
	if translated, ok := translations[from+"-"+to][text]; ok {
		return translated, true
	}

	return "[" + to + "] " + text, false
}
