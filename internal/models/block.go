package models

import "time"

const (
	// DefaultDisplayName is the label of a newly placed block
	DefaultDisplayName = "Interactive lesson"
	// DefaultLessonID is the exploration embedded by a newly placed block
	DefaultLessonID = "2DB88aOgiXgD"
	// DefaultSourceURL is the lesson-hosting site of a newly placed block
	DefaultSourceURL = "https://lessons.openclassroom.edu.vn"
)

// BlockConfig holds the author-editable fields of a lesson embed block
type BlockConfig struct {
	DisplayName string `json:"display_name"`
	LessonID    string `json:"lesson_id"`
	SourceURL   string `json:"src"`
}

// DefaultBlockConfig returns the configuration a block is created with
func DefaultBlockConfig() BlockConfig {
	return BlockConfig{
		DisplayName: DefaultDisplayName,
		LessonID:    DefaultLessonID,
		SourceURL:   DefaultSourceURL,
	}
}

// WithFallback fills unset fields from defaults
func (c BlockConfig) WithFallback(defaults BlockConfig) BlockConfig {
	if c.DisplayName == "" {
		c.DisplayName = defaults.DisplayName
	}
	if c.LessonID == "" {
		c.LessonID = defaults.LessonID
	}
	if c.SourceURL == "" {
		c.SourceURL = defaults.SourceURL
	}
	return c
}

// LessonEmbedBlock represents one placed lesson embed block
type LessonEmbedBlock struct {
	ID        int         `json:"id"`
	Config    BlockConfig `json:"config"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// CreateBlockRequest represents a request to place a new block (all fields optional)
type CreateBlockRequest struct {
	DisplayName string `json:"display_name,omitempty" example:"Fractions"`
	LessonID    string `json:"lesson_id,omitempty" example:"2DB88aOgiXgD"`
	SourceURL   string `json:"src,omitempty" example:"https://lessons.openclassroom.edu.vn"`
}

// HandlerResult is the acknowledgement returned by JSON handlers
type HandlerResult struct {
	Result string `json:"result" example:"success"`
}

// ResultSuccess is the acknowledgement of a successful handler call
var ResultSuccess = HandlerResult{Result: "success"}
