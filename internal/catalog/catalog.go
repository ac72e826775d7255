package catalog

import (
	"sort"
	"strings"

	"github.com/Jadebat79/tts-web/internal/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Catalog is the full set of voices and derived languages known to the
// client, plus the defaults seeded into new sessions. Immutable after
// Load; shared read-only across sessions.
type Catalog struct {
	Source          models.CatalogSource
	Voices          []models.Voice
	Languages       []models.Language
	DefaultLanguage string
	DefaultVoice    string

	// Advisory is a non-fatal, user-facing notice set when the catalog
	// had to fall back to the built-in voice.
	Advisory string
}

// VoicesForLanguage returns the voices whose language code matches.
func (c *Catalog) VoicesForLanguage(code string) []models.Voice {
	return FilterVoices(c.Voices, code)
}

// FilterVoices returns the subset of voices for one language code.
func FilterVoices(voices []models.Voice, code string) []models.Voice {
	filtered := make([]models.Voice, 0, len(voices))
	for _, v := range voices {
		if v.LanguageCode == code {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

// DeriveLanguages computes the distinct language set across the voices.
// When several voices share a code with differing display names, the name
// of the last voice in catalog order wins. Results are sorted by display
// name using a locale-aware comparison.
func DeriveLanguages(voices []models.Voice) []models.Language {
	names := make(map[string]string, len(voices))
	order := make([]string, 0, len(voices))
	for _, v := range voices {
		if _, seen := names[v.LanguageCode]; !seen {
			order = append(order, v.LanguageCode)
		}
		names[v.LanguageCode] = v.LanguageName
	}

	languages := make([]models.Language, 0, len(order))
	for _, code := range order {
		languages = append(languages, models.Language{Code: code, Name: names[code]})
	}

	c := collate.New(language.English)
	sort.SliceStable(languages, func(i, j int) bool {
		return c.CompareString(languages[i].Name, languages[j].Name) < 0
	})
	return languages
}

// defaultLanguage picks the startup language: the first whose code has an
// "en-" prefix, else the first in sorted order, else none.
func defaultLanguage(languages []models.Language) string {
	for _, l := range languages {
		if strings.HasPrefix(l.Code, "en-") {
			return l.Code
		}
	}
	if len(languages) > 0 {
		return languages[0].Code
	}
	return ""
}
