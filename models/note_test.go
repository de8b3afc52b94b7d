package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoteToJSON(t *testing.T) {
	note := Note{
		ID:       1,
		Type:     UserNote,
		Text:     "Test Text",
		Tags:     []string{"tag1", "tag2"},
		Editable: true,
	}

	data, err := note.ToJSON()
	assert.NoError(t, err)

	var result Note
	err = json.Unmarshal(data, &result)
	assert.NoError(t, err)
	assert.Equal(t, note, result)
}

func TestNoteFromJSON(t *testing.T) {
	data := `{
		"id": 7,
		"type": "ai_insight",
		"text": "Test Insight",
		"tags": ["tag1"],
		"editable": false,
		"insight_state": "default",
		"from_thread_id": 3
	}`

	var note Note
	err := note.FromJSON([]byte(data))
	assert.NoError(t, err)
	assert.Equal(t, AIInsight, note.Type)
	assert.Equal(t, "Test Insight", note.Text)
	assert.Equal(t, []string{"tag1"}, note.Tags)
	if assert.NotNil(t, note.InsightState) {
		assert.Equal(t, InsightDefault, *note.InsightState)
	}
	if assert.NotNil(t, note.FromThreadID) {
		assert.Equal(t, uint(3), *note.FromThreadID)
	}
}

func TestToResponseRecomputesEditable(t *testing.T) {
	// A stale stored value must not leak through the projection
	insight := Note{ID: 1, Type: AIInsight, Text: "Insight", Editable: true}
	assert.False(t, insight.ToResponse().Editable)

	userNote := Note{ID: 2, Type: UserNote, Text: "Note", Editable: false}
	assert.True(t, userNote.ToResponse().Editable)
}

func TestResponseOmitsInapplicableFields(t *testing.T) {
	note := Note{ID: 1, Type: UserNote, Text: "Note", Editable: true}

	data, err := json.Marshal(note.ToResponse())
	assert.NoError(t, err)
	assert.NotContains(t, string(data), "insight_state")
	assert.NotContains(t, string(data), "updated_at")
	assert.NotContains(t, string(data), "from_thread_id")
}

func TestNoteCreateInputValidate(t *testing.T) {
	assert.NoError(t, NoteCreateInput{Text: "hi", Type: UserNote}.Validate())
	assert.NoError(t, NoteCreateInput{Text: "hi", Type: AIInsight}.Validate())
	assert.Error(t, NoteCreateInput{Type: UserNote}.Validate())
	assert.Error(t, NoteCreateInput{Text: "hi", Type: NoteType("nonsense")}.Validate())
}

func TestNoteUpdateInputValidate(t *testing.T) {
	text := "hi"
	empty := ""

	assert.NoError(t, NoteUpdateInput{}.Validate())
	assert.NoError(t, NoteUpdateInput{Text: &text}.Validate())
	assert.Error(t, NoteUpdateInput{Text: &empty}.Validate())
}

func TestIsInsight(t *testing.T) {
	insight := Note{Type: AIInsight}
	note := Note{Type: UserNote}
	assert.True(t, insight.IsInsight())
	assert.False(t, note.IsInsight())
}
