package block

import (
	"encoding/xml"
	"fmt"

	"github.com/japanesestudent/embed-service/internal/models"
)

// ScenarioLessonID is the lesson ID declared by the canned workbench scenario
const ScenarioLessonID = "0"

// WorkbenchScenarios returns the canned scenarios for a host test harness
func WorkbenchScenarios(sourceURL string) []models.Scenario {
	return []models.Scenario{
		{
			Title: "Lesson Embedding",
			XML: fmt.Sprintf(`<vertical_demo>
  <lesson_embed lesson_id=%q src=%q/>
</vertical_demo>`, ScenarioLessonID, sourceURL),
		},
	}
}

type scenarioMarkup struct {
	XMLName xml.Name `xml:"vertical_demo"`
	Blocks  []struct {
		DisplayName string `xml:"display_name,attr"`
		LessonID    string `xml:"lesson_id,attr"`
		SourceURL   string `xml:"src,attr"`
	} `xml:"lesson_embed"`
}

// ParseScenario extracts the block configurations declared by scenario markup.
// Attributes left out of the markup take their values from defaults.
func ParseScenario(markup string, defaults models.BlockConfig) ([]models.BlockConfig, error) {
	var doc scenarioMarkup
	if err := xml.Unmarshal([]byte(markup), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if len(doc.Blocks) == 0 {
		return nil, fmt.Errorf("scenario declares no lesson_embed blocks")
	}

	configs := make([]models.BlockConfig, 0, len(doc.Blocks))
	for _, b := range doc.Blocks {
		cfg := models.BlockConfig{
			DisplayName: b.DisplayName,
			LessonID:    b.LessonID,
			SourceURL:   b.SourceURL,
		}
		configs = append(configs, cfg.WithFallback(defaults))
	}
	return configs, nil
}
