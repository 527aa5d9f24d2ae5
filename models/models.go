package models

import (
	"time"
)

// Lesson is the root authored document: an ordered sequence of slides.
// The string ID field (not the Mongo _id) is the lookup key everywhere.
type Lesson struct {
	ID          string    `bson:"id" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Author      string    `bson:"author" json:"author"`
	Level       string    `bson:"level" json:"level"`
	Duration    int       `bson:"duration" json:"duration"`
	ThemeID     string    `bson:"theme_id,omitempty" json:"themeId,omitempty"`
	Slides      []Slide   `bson:"slides" json:"slides"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}

type Slide struct {
	ID         string      `bson:"id" json:"id"`
	Title      string      `bson:"title" json:"title"`
	Components []Component `bson:"components" json:"components"`
}

// Component is a typed content or interactive unit. The props bag is shaped
// by the registry entry for the component's type.
type Component struct {
	ID    string         `bson:"id" json:"id"`
	Type  string         `bson:"type" json:"type"`
	Props map[string]any `bson:"props" json:"props"`
}

// ComponentState is one component's persisted interaction snapshot.
type ComponentState map[string]any

// InteractionRecord is the per-user-per-lesson record of every component's
// in-progress or completed state, keyed by (userId, lessonId).
type InteractionRecord struct {
	UserID          string                    `bson:"user_id" json:"userId"`
	LessonID        string                    `bson:"lesson_id" json:"lessonId"`
	ComponentsState map[string]ComponentState `bson:"components_state" json:"componentsState"`
	Completed       bool                      `bson:"completed" json:"completed"`
	LastUpdated     time.Time                 `bson:"last_updated" json:"lastUpdated"`
}

// UserLessonSummary is one row of a user's lesson list: interaction records
// joined to lesson metadata.
type UserLessonSummary struct {
	LessonID      string    `json:"lessonId"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Completed     bool      `json:"completed"`
	LastOpened    time.Time `json:"lastOpened"`
	Score         int       `json:"score"`
	TotalPossible int       `json:"totalPossible"`
}

// SaveInteractionRequest is the body of the interaction upsert; user and
// lesson come from the URL.
type SaveInteractionRequest struct {
	ComponentsState map[string]ComponentState `json:"componentsState"`
	Completed       bool                      `json:"completed"`
}

type PDFImportRequest struct {
	PDFURL string `json:"pdf_url" binding:"required"`
	Title  string `json:"title"`
	Author string `json:"author"`
}
