package httpapi

import (
	"net/http"

	"golang.org/x/text/language"

	"rapv/site/internal/http/handlers"
	"rapv/site/internal/httpctx"
	"rapv/site/internal/models"
)

var languageMatcher = language.NewMatcher([]language.Tag{language.English, language.Hindi})

// negotiateLanguage prefers an explicit ?lang, then the language cookie, then
// Accept-Language.
func negotiateLanguage(r *http.Request) models.Language {
	if raw := r.URL.Query().Get("lang"); raw != "" {
		return models.ParseLanguage(raw)
	}
	if cookie, err := r.Cookie(handlers.LanguageCookie); err == nil && cookie.Value != "" {
		return models.ParseLanguage(cookie.Value)
	}
	tag, _ := language.MatchStrings(languageMatcher, r.Header.Get("Accept-Language"))
	base, _ := tag.Base()
	return models.ParseLanguage(base.String())
}

func withLanguage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(httpctx.WithLanguage(r.Context(), negotiateLanguage(r))))
	})
}
