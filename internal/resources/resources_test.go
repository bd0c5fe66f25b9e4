package resources

import (
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Load(t *testing.T) {
	loader := NewLoader(FS())

	tests := []struct {
		name        string
		path        string
		expectedErr error
		contains    string
	}{
		{name: "english translations", path: "static/js/translations/en/text.js", contains: "LessonEmbedI18N"},
		{name: "player script", path: "static/js/exploration_player.js", contains: "LESSON_EMBED_PLAYER"},
		{name: "glue script", path: "static/js/lesson_embed.js", contains: "function LessonEmbedBlock("},
		{name: "editor script", path: "static/js/lesson_embed_edit.js", contains: "function LessonEmbedBlockEditor("},
		{name: "missing translations", path: "static/js/translations/xx/text.js", expectedErr: fs.ErrNotExist},
		{name: "path traversal", path: "../resources.go", expectedErr: fs.ErrNotExist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := loader.Load(tt.path)

			if tt.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, data)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, string(data), tt.contains)
		})
	}
}

func TestLoader_Locales(t *testing.T) {
	locales, err := NewLoader(FS()).Locales()

	require.NoError(t, err)
	assert.Equal(t, []string{"en", "eo", "ja", "ru"}, locales)
}

func TestLoader_Locales_Empty(t *testing.T) {
	locales, err := NewLoader(fstest.MapFS{}).Locales()

	require.NoError(t, err)
	assert.Empty(t, locales)
}

func TestRenderer_Render(t *testing.T) {
	renderer, err := NewRenderer(FS())
	require.NoError(t, err)

	t.Run("student template", func(t *testing.T) {
		html, err := renderer.Render("lesson_embed.html", map[string]any{
			"src":       "https://lessons.example.org",
			"lesson_id": "X",
		})

		require.NoError(t, err)
		assert.Contains(t, html, `lesson-id="X"`)
		assert.Contains(t, html, `src="https://lessons.example.org"`)
	})

	t.Run("edit template", func(t *testing.T) {
		html, err := renderer.Render("lesson_embed_edit.html", map[string]any{
			"src":          "https://lessons.example.org",
			"lesson_id":    "",
			"display_name": "Fractions",
		})

		require.NoError(t, err)
		assert.Contains(t, html, `value="Fractions"`)
		assert.Contains(t, html, `name="lesson_id" type="text" value=""`)
	})

	t.Run("values are escaped by the template engine", func(t *testing.T) {
		html, err := renderer.Render("lesson_embed_preview.html", map[string]any{
			"src":       "https://lessons.example.org",
			"lesson_id": "<script>",
		})

		require.NoError(t, err)
		assert.Contains(t, html, "&lt;script&gt;")
		assert.NotContains(t, html, "<script>")
	})

	t.Run("unknown template", func(t *testing.T) {
		_, err := renderer.Render("missing.html", map[string]any{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to execute template missing.html")
	})
}

func TestNewRenderer_NoTemplates(t *testing.T) {
	renderer, err := NewRenderer(fstest.MapFS{})

	assert.Nil(t, renderer)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse templates")
}
