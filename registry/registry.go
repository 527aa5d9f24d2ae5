// Package registry holds the closed set of component type definitions shared
// by the authoring and playback surfaces. The list is static configuration:
// loaded once, never mutated at runtime.
package registry

import "encoding/json"

// Categories a component type can belong to.
const (
	CategoryContent     = "content"
	CategoryInteractive = "interactive"
	CategoryGamified    = "gamified"
)

// Prop definition types understood by the property editor.
const (
	PropString         = "string"
	PropNumber         = "number"
	PropBoolean        = "boolean"
	PropSelect         = "select"
	PropRichText       = "richText"
	PropImage          = "image"
	PropComponentArray = "componentArray"
)

// PropDef describes one editable property of a component type.
type PropDef struct {
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	Type        string   `json:"type"`
	Required    bool     `json:"required,omitempty"`
	Options     []string `json:"options,omitempty"`
	Min         float64  `json:"min,omitempty"`
	Max         float64  `json:"max,omitempty"`
	Step        float64  `json:"step,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
	Description string   `json:"description,omitempty"`
}

// ComponentDefinition is one entry of the component registry.
type ComponentDefinition struct {
	Type            string         `json:"type"`
	Label           string         `json:"label"`
	Description     string         `json:"description"`
	Category        string         `json:"category"`
	Icon            string         `json:"icon"`
	Scored          bool           `json:"scored"`
	DefaultProps    map[string]any `json:"defaultProps"`
	PropDefinitions []PropDef      `json:"propDefinitions"`
}

var definitions = []ComponentDefinition{
	{
		Type:        "paragraph",
		Label:       "Paragraph",
		Description: "A block of text",
		Category:    CategoryContent,
		Icon:        "📝",
		DefaultProps: map[string]any{
			"text": "Enter your text here",
		},
		PropDefinitions: []PropDef{
			{Name: "text", Label: "Text", Type: PropRichText, Required: true},
		},
	},
	{
		Type:        "heading",
		Label:       "Heading",
		Description: "A section heading",
		Category:    CategoryContent,
		Icon:        "🔤",
		DefaultProps: map[string]any{
			"text":  "Heading",
			"level": 2,
		},
		PropDefinitions: []PropDef{
			{Name: "text", Label: "Text", Type: PropString, Required: true},
			{Name: "level", Label: "Level", Type: PropNumber, Min: 1, Max: 6, Step: 1},
		},
	},
	{
		Type:        "bulletList",
		Label:       "Bullet List",
		Description: "A list of bullet points",
		Category:    CategoryContent,
		Icon:        "•",
		DefaultProps: map[string]any{
			"items": []any{"First item", "Second item"},
		},
		PropDefinitions: []PropDef{
			{Name: "items", Label: "Items", Type: PropComponentArray, Required: true},
		},
	},
	{
		Type:        "image",
		Label:       "Image",
		Description: "A picture with an optional caption",
		Category:    CategoryContent,
		Icon:        "🖼️",
		DefaultProps: map[string]any{
			"url":     "",
			"alt":     "",
			"caption": "",
		},
		PropDefinitions: []PropDef{
			{Name: "url", Label: "Image", Type: PropImage, Required: true},
			{Name: "alt", Label: "Alt text", Type: PropString},
			{Name: "caption", Label: "Caption", Type: PropString},
		},
	},
	{
		Type:        "table",
		Label:       "Table",
		Description: "Rows and columns of text",
		Category:    CategoryContent,
		Icon:        "▦",
		DefaultProps: map[string]any{
			"headers": []any{"Column 1", "Column 2"},
			"rows":    []any{},
		},
		PropDefinitions: []PropDef{
			{Name: "headers", Label: "Headers", Type: PropComponentArray, Required: true},
			{Name: "rows", Label: "Rows", Type: PropComponentArray},
		},
	},
	{
		Type:        "quiz",
		Label:       "Quiz",
		Description: "Multiple choice questions",
		Category:    CategoryGamified,
		Icon:        "❓",
		Scored:      true,
		DefaultProps: map[string]any{
			"title":     "Quiz",
			"questions": []any{},
			"points":    15,
		},
		PropDefinitions: []PropDef{
			{Name: "title", Label: "Title", Type: PropString},
			{Name: "questions", Label: "Questions", Type: PropComponentArray, Required: true},
			{Name: "points", Label: "Points", Type: PropNumber, Min: 0, Step: 5},
		},
	},
	{
		Type:        "matchingPairs",
		Label:       "Matching Pairs",
		Description: "Match items from two columns",
		Category:    CategoryGamified,
		Icon:        "🔗",
		Scored:      true,
		DefaultProps: map[string]any{
			"title":    "Match the items",
			"pairs":    []any{},
			"shuffled": true,
			"points":   15,
		},
		PropDefinitions: []PropDef{
			{Name: "title", Label: "Title", Type: PropString},
			{Name: "pairs", Label: "Pairs", Type: PropComponentArray, Required: true},
			{Name: "shuffled", Label: "Shuffle right column", Type: PropBoolean},
			{Name: "points", Label: "Points", Type: PropNumber, Min: 0, Step: 5},
		},
	},
	{
		Type:        "dragDrop",
		Label:       "Drag and Drop",
		Description: "Arrange items in the correct order",
		Category:    CategoryGamified,
		Icon:        "↕️",
		Scored:      true,
		DefaultProps: map[string]any{
			"title":    "Arrange in the correct order",
			"items":    []any{},
			"shuffled": true,
			"points":   15,
		},
		PropDefinitions: []PropDef{
			{Name: "title", Label: "Title", Type: PropString},
			{Name: "items", Label: "Items", Type: PropComponentArray, Required: true},
			{Name: "shuffled", Label: "Shuffle items", Type: PropBoolean},
			{Name: "points", Label: "Points", Type: PropNumber, Min: 0, Step: 5},
		},
	},
	{
		Type:        "fillInTheBlank",
		Label:       "Fill in the Blank",
		Description: "Type the missing words into a text",
		Category:    CategoryGamified,
		Icon:        "✏️",
		Scored:      true,
		DefaultProps: map[string]any{
			"title":         "Fill in the blanks",
			"text":          "",
			"blanks":        []any{},
			"caseSensitive": false,
			"points":        10,
		},
		PropDefinitions: []PropDef{
			{Name: "title", Label: "Title", Type: PropString},
			{Name: "text", Label: "Text", Type: PropRichText, Required: true,
				Description: "Use {{blank}} to mark each blank"},
			{Name: "blanks", Label: "Blanks", Type: PropComponentArray, Required: true},
			{Name: "caseSensitive", Label: "Case sensitive", Type: PropBoolean},
			{Name: "points", Label: "Points", Type: PropNumber, Min: 0, Step: 5},
		},
	},
	{
		Type:        "codeEditor",
		Label:       "Code Editor",
		Description: "Write code and run it against test cases",
		Category:    CategoryGamified,
		Icon:        "💻",
		Scored:      true,
		DefaultProps: map[string]any{
			"title":       "Code Editor",
			"initialCode": "",
			"language":    "javascript",
			"readOnly":    false,
			"testCases":   []any{},
			"points":      10,
		},
		PropDefinitions: []PropDef{
			{Name: "title", Label: "Title", Type: PropString},
			{Name: "initialCode", Label: "Initial code", Type: PropRichText},
			{Name: "language", Label: "Language", Type: PropSelect,
				Options: []string{"javascript", "python", "html"}},
			{Name: "readOnly", Label: "Read only", Type: PropBoolean},
			{Name: "testCases", Label: "Test cases", Type: PropComponentArray},
			{Name: "points", Label: "Points", Type: PropNumber, Min: 0, Step: 5},
		},
	},
	{
		Type:        "flashcards",
		Label:       "Flashcards",
		Description: "Flip cards to review terms",
		Category:    CategoryInteractive,
		Icon:        "🃏",
		DefaultProps: map[string]any{
			"title": "Flashcards",
			"cards": []any{},
		},
		PropDefinitions: []PropDef{
			{Name: "title", Label: "Title", Type: PropString},
			{Name: "cards", Label: "Cards", Type: PropComponentArray, Required: true},
		},
	},
	{
		Type:        "hotspot",
		Label:       "Hotspot",
		Description: "Click areas of an image to reveal information",
		Category:    CategoryInteractive,
		Icon:        "🎯",
		DefaultProps: map[string]any{
			"title":    "Explore the image",
			"imageUrl": "",
			"hotspots": []any{},
		},
		PropDefinitions: []PropDef{
			{Name: "title", Label: "Title", Type: PropString},
			{Name: "imageUrl", Label: "Image", Type: PropImage, Required: true},
			{Name: "hotspots", Label: "Hotspots", Type: PropComponentArray},
		},
	},
	{
		Type:        "scoreBoard",
		Label:       "Score Board",
		Description: "Shows the learner's score for this lesson",
		Category:    CategoryGamified,
		Icon:        "🏆",
		DefaultProps: map[string]any{
			"title":          "Your Score",
			"showTotal":      true,
			"showPercentage": true,
		},
		PropDefinitions: []PropDef{
			{Name: "title", Label: "Title", Type: PropString},
			{Name: "showTotal", Label: "Show total", Type: PropBoolean},
			{Name: "showPercentage", Label: "Show percentage", Type: PropBoolean},
		},
	},
}

var byType = func() map[string]ComponentDefinition {
	m := make(map[string]ComponentDefinition, len(definitions)+1)
	for _, def := range definitions {
		m[def.Type] = def
	}
	// Legacy alias kept for old lesson files.
	slideTitle := m["heading"]
	slideTitle.Type = "slideTitle"
	m["slideTitle"] = slideTitle
	return m
}()

// Definitions returns every registry entry in declaration order.
func Definitions() []ComponentDefinition {
	out := make([]ComponentDefinition, len(definitions))
	copy(out, definitions)
	return out
}

// Lookup returns the definition for a component type. The second return is
// false for unknown types; callers fall back to a placeholder rather than fail.
func Lookup(componentType string) (ComponentDefinition, bool) {
	def, ok := byType[componentType]
	return def, ok
}

// IsScored reports whether a component type awards points toward the lesson
// score.
func IsScored(componentType string) bool {
	def, ok := byType[componentType]
	return ok && def.Scored
}

// DefaultProps returns a fresh copy of a type's default props so callers can
// mutate it freely. The copy is deep: nested lists are never shared with the
// registry or with earlier callers.
func DefaultProps(componentType string) map[string]any {
	def, ok := byType[componentType]
	if !ok {
		return map[string]any{}
	}
	b, err := json.Marshal(def.DefaultProps)
	if err != nil {
		return map[string]any{}
	}
	out := map[string]any{}
	if err := json.Unmarshal(b, &out); err != nil {
		return map[string]any{}
	}
	return out
}
