package catalog

import (
	"context"

	"github.com/Jadebat79/tts-web/internal/models"
	"github.com/Jadebat79/tts-web/internal/services"
	"go.uber.org/zap"
)

// AdvisoryUnavailable is the fixed, non-technical notice surfaced when
// the remote catalog could not be loaded.
const AdvisoryUnavailable = "remote service unavailable"

// fallbackVoice keeps the UI usable when the remote catalog is down:
// a single US-English voice supporting both engines. The system must
// never be left with zero selectable options.
var fallbackVoice = models.Voice{
	ID:               "Joanna",
	LanguageCode:     "en-US",
	LanguageName:     "US English",
	Gender:           "Female",
	SupportedEngines: []string{"standard", "neural"},
}

// Loader fetches the voice catalog once at startup.
type Loader struct {
	speech services.SpeechService
	log    *zap.SugaredLogger
}

func NewLoader(speech services.SpeechService, log *zap.SugaredLogger) *Loader {
	return &Loader{speech: speech, log: log}
}

// Load performs the single catalog fetch of the process lifetime and
// derives languages and defaults. A failed or malformed listing is not
// propagated as an error: the loader substitutes the fallback voice and
// tags the catalog accordingly.
func (l *Loader) Load(ctx context.Context) *Catalog {
	voices, err := l.speech.ListVoices(ctx)
	if err != nil || len(voices) == 0 {
		l.log.Warnw("voice catalog load failed, using fallback voice", "error", err)
		return l.fallback()
	}

	languages := DeriveLanguages(voices)
	lang := defaultLanguage(languages)

	voice := ""
	if matching := FilterVoices(voices, lang); len(matching) > 0 {
		voice = matching[0].ID
	}

	l.log.Infow("voice catalog loaded",
		"voices", len(voices), "languages", len(languages), "defaultLanguage", lang)

	return &Catalog{
		Source:          models.CatalogSourceLoaded,
		Voices:          voices,
		Languages:       languages,
		DefaultLanguage: lang,
		DefaultVoice:    voice,
	}
}

func (l *Loader) fallback() *Catalog {
	return &Catalog{
		Source:          models.CatalogSourceFallback,
		Voices:          []models.Voice{fallbackVoice},
		Languages:       []models.Language{{Code: fallbackVoice.LanguageCode, Name: fallbackVoice.LanguageName}},
		DefaultLanguage: fallbackVoice.LanguageCode,
		DefaultVoice:    fallbackVoice.ID,
		Advisory:        AdvisoryUnavailable,
	}
}
