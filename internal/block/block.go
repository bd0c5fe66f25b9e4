// Package block implements the lesson embed block: view rendering, event relay
// and studio configuration on top of host-provided services.
package block

import (
	"context"
	"fmt"

	"github.com/japanesestudent/embed-service/internal/models"
)

const (
	TemplateStudent = "lesson_embed.html"
	TemplatePreview = "lesson_embed_preview.html"
	TemplateEdit    = "lesson_embed_edit.html"

	ScriptPlayer = "static/js/exploration_player.js"
	ScriptGlue   = "static/js/lesson_embed.js"
	ScriptEditor = "static/js/lesson_embed_edit.js"

	InitStudent = "LessonEmbedBlock"
	InitEditor  = "LessonEmbedBlockEditor"
)

// LessonEmbedBlock is one placed block instance bound to a host runtime
type LessonEmbedBlock struct {
	id      int
	config  models.BlockConfig
	runtime Runtime
}

// New creates a block with the given stored configuration
func New(id int, cfg models.BlockConfig, rt Runtime) (*LessonEmbedBlock, error) {
	if err := rt.Validate(); err != nil {
		return nil, err
	}
	return &LessonEmbedBlock{
		id:      id,
		config:  cfg,
		runtime: rt,
	}, nil
}

// ID returns the block instance ID
func (b *LessonEmbedBlock) ID() int {
	return b.id
}

// Config returns the current configuration
func (b *LessonEmbedBlock) Config() models.BlockConfig {
	return b.config
}

// StudentView renders the interactive player shown to learners
func (b *LessonEmbedBlock) StudentView(ctx context.Context) (*models.Fragment, error) {
	frag, err := b.renderFragment(ctx, TemplateStudent, map[string]any{
		"src":       b.config.SourceURL,
		"lesson_id": b.config.LessonID,
	})
	if err != nil {
		return nil, err
	}

	for _, path := range []string{ScriptPlayer, ScriptGlue} {
		script, err := b.resourceString(path)
		if err != nil {
			return nil, err
		}
		frag.AddJavaScript(script)
	}
	frag.InitializeJS(InitStudent)

	return frag, nil
}

// AuthorView renders the placeholder shown in the authoring preview, where
// the interactive player does not display.
func (b *LessonEmbedBlock) AuthorView(ctx context.Context) (*models.Fragment, error) {
	return b.renderFragment(ctx, TemplatePreview, map[string]any{
		"src":       b.config.SourceURL,
		"lesson_id": b.config.LessonID,
	})
}

// StudioView renders the studio edit form
func (b *LessonEmbedBlock) StudioView(ctx context.Context) (*models.Fragment, error) {
	frag, err := b.renderFragment(ctx, TemplateEdit, map[string]any{
		"src":          b.config.SourceURL,
		"lesson_id":    b.config.LessonID,
		"display_name": b.config.DisplayName,
	})
	if err != nil {
		return nil, err
	}

	script, err := b.resourceString(ScriptEditor)
	if err != nil {
		return nil, err
	}
	frag.AddJavaScript(script)
	frag.InitializeJS(InitEditor)

	return frag, nil
}

// renderFragment fills a template and attaches the translation script
func (b *LessonEmbedBlock) renderFragment(ctx context.Context, name string, data map[string]any) (*models.Fragment, error) {
	html, err := b.runtime.Templates.Render(name, data)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", name, err)
	}

	translations, err := b.TranslationContent(ctx)
	if err != nil {
		return nil, err
	}

	frag := models.NewFragment(html)
	frag.AddJavaScript(translations)
	return frag, nil
}

func (b *LessonEmbedBlock) resourceString(path string) (string, error) {
	data, err := b.runtime.Resources.Load(path)
	if err != nil {
		return "", fmt.Errorf("failed to load resource %s: %w", path, err)
	}
	return string(data), nil
}
