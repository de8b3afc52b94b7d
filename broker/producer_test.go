package broker

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thinkstack/models"
)

func TestPublishOnNilProducer(t *testing.T) {
	var producer *Producer

	assert.NotPanics(t, func() {
		producer.Publish(NoteCreated, models.Note{ID: 1, Type: models.UserNote, Text: "x"})
		producer.Close()
	})
}

func TestEventEnvelope(t *testing.T) {
	state := models.InsightResolved
	note := models.Note{ID: 42, Type: models.AIInsight, Text: "done", InsightState: &state}

	data, err := json.Marshal(Event{Type: InsightResolved, NoteID: note.ID, Data: note.ToResponse()})
	assert.NoError(t, err)

	var decoded map[string]interface{}
	assert.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "insight.resolved", decoded["event"])
	assert.Equal(t, float64(42), decoded["note_id"])
}
