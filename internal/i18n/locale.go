// Package i18n resolves the active locale of a request.
package i18n

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

const (
	// LangParam is the query parameter used to select a language
	LangParam = "lang"
	// LangCookieName stores the learner's language preference
	LangCookieName = "embed_lang"
)

type contextKey string

const localeKey contextKey = "locale"

// Resolver matches request language preferences against the platform locales
type Resolver struct {
	supported []language.Tag
	matcher   language.Matcher
}

// NewResolver creates a resolver for the given locales; the first one is the default
func NewResolver(locales []string) (*Resolver, error) {
	if len(locales) == 0 {
		return nil, fmt.Errorf("at least one locale is required")
	}

	tags := make([]language.Tag, 0, len(locales))
	for _, l := range locales {
		tag, err := language.Parse(strings.TrimSpace(l))
		if err != nil {
			return nil, fmt.Errorf("invalid locale %q: %w", l, err)
		}
		tags = append(tags, tag)
	}

	return &Resolver{
		supported: tags,
		matcher:   language.NewMatcher(tags),
	}, nil
}

// Default returns the default locale
func (r *Resolver) Default() string {
	return r.supported[0].String()
}

// Match returns the supported locale closest to the given preferences
func (r *Resolver) Match(preferred ...language.Tag) string {
	_, index, confidence := r.matcher.Match(preferred...)
	if confidence == language.No {
		return r.Default()
	}
	return r.supported[index].String()
}

// Resolve determines the locale of a request from the lang query parameter,
// the language cookie, then the Accept-Language header.
func (r *Resolver) Resolve(req *http.Request) string {
	if value := strings.TrimSpace(req.URL.Query().Get(LangParam)); value != "" {
		if tag, err := language.Parse(value); err == nil {
			return r.Match(tag)
		}
	}

	if cookie, err := req.Cookie(LangCookieName); err == nil {
		if tag, err := language.Parse(cookie.Value); err == nil {
			return r.Match(tag)
		}
	}

	if accept := strings.TrimSpace(req.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			return r.Match(tags...)
		}
	}

	return r.Default()
}

// Middleware stores the resolved locale in the request context
func Middleware(resolver *Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := resolver.Resolve(r)
			w.Header().Set("Content-Language", locale)
			next.ServeHTTP(w, r.WithContext(WithLocale(r.Context(), locale)))
		})
	}
}

// WithLocale returns a context carrying the given locale
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeKey, locale)
}

// LocaleFromContext retrieves the locale from context
func LocaleFromContext(ctx context.Context) string {
	if locale, ok := ctx.Value(localeKey).(string); ok {
		return locale
	}
	return ""
}
