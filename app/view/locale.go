package view

import (
	"golang.org/x/text/language"

	"newslens/app/state"
)

// localeStrings holds the user-facing wording for one supported locale.
type localeStrings struct {
	justNow     string
	minutesAgo  string
	hoursAgo    string
	daysAgo     string
	dateLayout  string
	emptyFeed   string
	loadingFeed string
	loadError   string
}

var (
	supportedLocales = []language.Tag{language.English, language.Russian}
	localeMatcher    = language.NewMatcher(supportedLocales)

	stringsByLocale = map[language.Tag]localeStrings{
		language.English: {
			justNow:     "just now",
			minutesAgo:  "%dm ago",
			hoursAgo:    "%dh ago",
			daysAgo:     "%dd ago",
			dateLayout:  "Jan 2, 2006",
			emptyFeed:   "No news yet",
			loadingFeed: "Loading news...",
			loadError:   "Failed to load news",
		},
		language.Russian: {
			justNow:     "только что",
			minutesAgo:  "%d мин назад",
			hoursAgo:    "%d ч назад",
			daysAgo:     "%d дн назад",
			dateLayout:  "02.01.2006",
			emptyFeed:   "Пока нет новостей",
			loadingFeed: "Загрузка новостей...",
			loadError:   "Не удалось загрузить новости",
		},
	}
)

// localized resolves a locale to its wording table; unknown locales match
// to English.
func localized(locale state.Locale) localeStrings {
	tag, err := language.Parse(string(locale))
	if err != nil {
		tag = language.English
	}
	_, idx, _ := localeMatcher.Match(tag)
	return stringsByLocale[supportedLocales[idx]]
}

// LoadingMessage returns the locale-appropriate in-flight indicator text.
func LoadingMessage(locale state.Locale) string {
	return localized(locale).loadingFeed
}

// ErrorMessage returns the locale-appropriate fetch failure text.
func ErrorMessage(locale state.Locale) string {
	return localized(locale).loadError
}
