package services

import (
	"errors"
	"time"

	"github.com/thinkstack/broker"
	"github.com/thinkstack/database"
	"github.com/thinkstack/models"

	"gorm.io/gorm"
)

// DefaultListLimit bounds list windows when the caller does not supply one.
const DefaultListLimit = 100

type NoteServiceInterface interface {
	CreateNote(db *database.Database, input models.NoteCreateInput) (models.Note, error)
	GetNoteById(db *database.Database, id uint) (models.Note, error)
	GetNotes(db *database.Database, offset, limit int) ([]models.Note, error)
	UpdateNote(db *database.Database, id uint, patch models.NoteUpdateInput) (models.Note, error)
	DeleteNote(db *database.Database, id uint) (models.Note, error)
	ResolveInsight(db *database.Database, id uint) (models.Note, error)
}

type NoteService struct {
	producer *broker.Producer
}

// NewNoteService creates a new instance of NoteService. The producer may be
// nil when the broker is unavailable; lifecycle events are then skipped.
func NewNoteService(producer *broker.Producer) NoteServiceInterface {
	return &NoteService{producer: producer}
}

// CreateNote persists a new note. Type fixes the lifecycle policy at
// creation: insights are never editable and start in the default state.
func (s *NoteService) CreateNote(db *database.Database, input models.NoteCreateInput) (models.Note, error) {
	if input.Type == "" {
		input.Type = models.UserNote
	}
	if err := input.Validate(); err != nil {
		return models.Note{}, err
	}

	isInsight := input.Type == models.AIInsight
	note := models.Note{
		Type:         input.Type,
		Text:         input.Text,
		Tags:         input.Tags,
		FilePath:     input.FilePath,
		FromThreadID: input.FromThreadID,
		Editable:     !isInsight,
		CreatedAt:    time.Now().UTC(),
	}
	if isInsight {
		state := models.InsightDefault
		note.InsightState = &state
	}

	if err := db.DB.Create(&note).Error; err != nil {
		return models.Note{}, err
	}

	s.producer.Publish(broker.NoteCreated, note)
	return note, nil
}

func (s *NoteService) GetNoteById(db *database.Database, id uint) (models.Note, error) {
	var note models.Note
	if err := db.DB.First(&note, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Note{}, ErrNoteNotFound
		}
		return models.Note{}, err
	}
	return note, nil
}

// GetNotes returns notes in insertion order, skipping offset rows and
// returning at most limit.
func (s *NoteService) GetNotes(db *database.Database, offset, limit int) ([]models.Note, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}

	notes := []models.Note{}
	if err := db.DB.Order("id").Offset(offset).Limit(limit).Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

// UpdateNote applies a partial patch to an editable note. Fields absent from
// the patch keep their stored values. Type, editable and insight_state are
// never touched here. An empty patch still stamps updated_at and succeeds.
func (s *NoteService) UpdateNote(db *database.Database, id uint, patch models.NoteUpdateInput) (models.Note, error) {
	if err := patch.Validate(); err != nil {
		return models.Note{}, err
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Note{}, tx.Error
	}

	var note models.Note
	if err := tx.First(&note, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Note{}, ErrNoteNotFound
		}
		return models.Note{}, err
	}

	if !note.Editable {
		tx.Rollback()
		return models.Note{}, ErrNoteNotEditable
	}

	if patch.Text != nil {
		note.Text = *patch.Text
	}
	if patch.Tags != nil {
		note.Tags = *patch.Tags
	}
	if patch.FilePath != nil {
		note.FilePath = patch.FilePath
	}

	now := time.Now().UTC()
	note.UpdatedAt = &now

	if err := tx.Save(&note).Error; err != nil {
		tx.Rollback()
		return models.Note{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Note{}, err
	}

	s.producer.Publish(broker.NoteUpdated, note)
	return note, nil
}

// DeleteNote removes a note permanently. Editability is not checked and
// notes referencing the removed one via from_thread_id are left alone.
func (s *NoteService) DeleteNote(db *database.Database, id uint) (models.Note, error) {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Note{}, tx.Error
	}

	var note models.Note
	if err := tx.First(&note, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Note{}, ErrNoteNotFound
		}
		return models.Note{}, err
	}

	if err := tx.Delete(&note).Error; err != nil {
		tx.Rollback()
		return models.Note{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Note{}, err
	}

	s.producer.Publish(broker.NoteDeleted, note)
	return note, nil
}

// ResolveInsight marks an insight as handled. Resolving an already resolved
// insight re-succeeds and re-stamps updated_at; resolving a user note fails.
func (s *NoteService) ResolveInsight(db *database.Database, id uint) (models.Note, error) {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Note{}, tx.Error
	}

	var note models.Note
	if err := tx.First(&note, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Note{}, ErrNoteNotFound
		}
		return models.Note{}, err
	}

	if !note.IsInsight() {
		tx.Rollback()
		return models.Note{}, ErrNotInsight
	}

	state := models.InsightResolved
	note.InsightState = &state
	now := time.Now().UTC()
	note.UpdatedAt = &now

	if err := tx.Save(&note).Error; err != nil {
		tx.Rollback()
		return models.Note{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Note{}, err
	}

	s.producer.Publish(broker.InsightResolved, note)
	return note, nil
}
