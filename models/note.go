package models

import (
	"encoding/json"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// NoteType distinguishes user-authored notes from generated insights.
type NoteType string

const (
	UserNote  NoteType = "user_note"
	AIInsight NoteType = "ai_insight"
)

// InsightState tracks whether an insight has been handled. It only ever
// moves from default to resolved.
type InsightState string

const (
	InsightDefault  InsightState = "default"
	InsightResolved InsightState = "resolved"
)

type Note struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	Type         NoteType      `gorm:"not null" json:"type"`
	Text         string        `gorm:"not null" json:"text"`
	Tags         []string      `gorm:"serializer:json" json:"tags,omitempty"`
	FilePath     *string       `json:"file_path,omitempty"`
	Editable     bool          `gorm:"not null" json:"editable"`
	InsightState *InsightState `json:"insight_state,omitempty"`
	FromThreadID *uint         `json:"from_thread_id,omitempty"`
	CreatedAt    time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt    *time.Time    `gorm:"autoUpdateTime:false" json:"updated_at,omitempty"`
}

func (n *Note) IsInsight() bool {
	return n.Type == AIInsight
}

// ToResponse returns the outward-facing projection of the note. Editable is
// recomputed from the type rather than read from the stored column, so a
// stale persisted value can never leak an editable insight.
func (n Note) ToResponse() Note {
	n.Editable = n.Type != AIInsight
	return n
}

func (n *Note) FromJSON(data []byte) error {
	return json.Unmarshal(data, n)
}

func (n *Note) ToJSON() ([]byte, error) {
	return json.Marshal(n)
}

// NoteCreateInput is the request body for creating a note.
type NoteCreateInput struct {
	Text         string   `json:"text"`
	Type         NoteType `json:"type"`
	Tags         []string `json:"tags"`
	FilePath     *string  `json:"file_path"`
	FromThreadID *uint    `json:"from_thread_id"`
}

func (in NoteCreateInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Text, validation.Required),
		validation.Field(&in.Type, validation.Required, validation.In(UserNote, AIInsight)),
	)
}

// NoteUpdateInput is a partial patch: only non-nil fields are applied.
type NoteUpdateInput struct {
	Text     *string   `json:"text"`
	Tags     *[]string `json:"tags"`
	FilePath *string   `json:"file_path"`
}

func (in NoteUpdateInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Text, validation.NilOrNotEmpty),
	)
}
