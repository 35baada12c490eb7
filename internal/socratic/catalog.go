package socratic

import (
	"fmt"

	"golang.org/x/text/language"
)

const defaultLocale = "id"

// Catalog holds the user-facing wording for one locale.
type Catalog struct {
	Tag language.Tag

	summaries      map[Tone]string
	unhandledAsync string
	errorSwallow   string
	sideEffect     string
	magicNumber    string
	failure        string
	unknownError   string
}

// The first entry is the fallback for unmatched locales.
var catalogs = []*Catalog{
	{
		Tag: language.Indonesian,
		summaries: map[Tone]string{
			ToneFormal:   "Ditemukan %d area yang memerlukan klarifikasi dalam implementasi kode Anda.",
			ToneFriendly: "Hei! Ada %d hal yang bisa kita diskusikan tentang kode ini 🤔",
			ToneRoasting: "Wah, sepertinya ada %d hal yang... menarik di sini 🔥",
		},
		unhandledAsync: "Kalau fetch gagal atau response bukan JSON, apa yang terjadi?",
		errorSwallow:   "Catch block kosong. Apa yang harus dilakukan kalau error terjadi?",
		sideEffect:     "Fungsi '%s' namanya 'get' tapi kayaknya ada side effect. Apakah ini disengaja?",
		magicNumber:    "Angka %s muncul begitu saja. Apa artinya angka ini?",
		failure:        "Gagal menganalisis kode: %s",
		unknownError:   "Unknown error",
	},
	{
		Tag: language.English,
		summaries: map[Tone]string{
			ToneFormal:   "Found %d areas that need clarification in your code's implementation.",
			ToneFriendly: "Hey! There are %d things we could talk about in this code 🤔",
			ToneRoasting: "Wow, looks like there are %d... interesting things in here 🔥",
		},
		unhandledAsync: "If fetch fails or the response isn't JSON, what happens?",
		errorSwallow:   "Empty catch block. What should happen when an error occurs?",
		sideEffect:     "Function '%s' is named 'get' but seems to have side effects. Is that intentional?",
		magicNumber:    "The number %s shows up out of nowhere. What does it mean?",
		failure:        "Failed to analyze code: %s",
		unknownError:   "Unknown error",
	},
}

var localeMatcher = language.NewMatcher(catalogTags())

func catalogTags() []language.Tag {
	tags := make([]language.Tag, 0, len(catalogs))
	for _, c := range catalogs {
		tags = append(tags, c.Tag)
	}
	return tags
}

// CatalogFor returns the catalog best matching a BCP 47 locale such as
// "en-GB". Unknown or empty locales get the Indonesian catalog.
func CatalogFor(locale string) *Catalog {
	_, index := language.MatchStrings(localeMatcher, locale)
	if index < 0 || index >= len(catalogs) {
		return catalogs[0]
	}
	return catalogs[index]
}

// Summary renders the summary line for tone. Unknown tones use the
// friendly wording.
func (c *Catalog) Summary(tone Tone, count int) string {
	format, ok := c.summaries[tone]
	if !ok {
		format = c.summaries[ToneFriendly]
	}
	return fmt.Sprintf(format, count)
}

// Failure renders the summary of a degraded result.
func (c *Catalog) Failure(err error) string {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	if msg == "" {
		msg = c.unknownError
	}
	return fmt.Sprintf(c.failure, msg)
}
