package block

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
)

// FallbackLocale is used when no translation is packaged for the active locale
const FallbackLocale = "en"

// TranslationPath returns the packaged translation script path for a locale
func TranslationPath(locale string) string {
	return fmt.Sprintf("static/js/translations/%s/text.js", locale)
}

// TranslationContent returns the translation script for the active locale,
// falling back to English when the locale has none packaged.
func (b *LessonEmbedBlock) TranslationContent(ctx context.Context) (string, error) {
	data, err := b.runtime.Resources.Load(TranslationPath(b.runtime.Locale(ctx)))
	if errors.Is(err, fs.ErrNotExist) {
		data, err = b.runtime.Resources.Load(TranslationPath(FallbackLocale))
	}
	if err != nil {
		return "", fmt.Errorf("failed to load translations: %w", err)
	}
	return string(data), nil
}
