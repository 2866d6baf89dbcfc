package httpctx

import (
	"context"

	"rapv/site/internal/auth"
	"rapv/site/internal/models"
)

type ctxKey string

const (
	claimsKey    ctxKey = "claims"
	langKey      ctxKey = "lang"
	requestIDKey ctxKey = "request_id"
)

func WithClaims(ctx context.Context, claims auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func ClaimsFromContext(ctx context.Context) *auth.Claims {
	if val := ctx.Value(claimsKey); val != nil {
		if claims, ok := val.(auth.Claims); ok {
			return &claims
		}
	}
	return nil
}

func WithLanguage(ctx context.Context, lang models.Language) context.Context {
	return context.WithValue(ctx, langKey, lang)
}

// LanguageFromContext defaults to English when no language was negotiated.
func LanguageFromContext(ctx context.Context) models.Language {
	if lang, ok := ctx.Value(langKey).(models.Language); ok {
		return lang
	}
	return models.LangEnglish
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
