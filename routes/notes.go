package routes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/thinkstack/database"
	"github.com/thinkstack/models"
	"github.com/thinkstack/services"
)

func RegisterNoteRoutes(router *gin.Engine, db *database.Database, noteService services.NoteServiceInterface) {
	group := router.Group("/notes")

	// Collection endpoints
	group.GET("", func(c *gin.Context) { GetNotes(c, db, noteService) })
	group.POST("", func(c *gin.Context) { CreateNote(c, db, noteService) })

	// Resource-specific endpoints
	group.GET("/:id", func(c *gin.Context) { GetNoteById(c, db, noteService) })
	group.PUT("/:id", func(c *gin.Context) { UpdateNote(c, db, noteService) })
	group.DELETE("/:id", func(c *gin.Context) { DeleteNote(c, db, noteService) })
	group.POST("/:id/resolve", func(c *gin.Context) { ResolveInsight(c, db, noteService) })
}

func noteID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// validationDetail unwraps ozzo field errors so clients see which field
// failed, not just that something did.
func validationDetail(err error) (interface{}, bool) {
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		return fieldErrs, true
	}
	return nil, false
}

func CreateNote(c *gin.Context, db *database.Database, noteService services.NoteServiceInterface) {
	var input models.NoteCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note, err := noteService.CreateNote(db, input)
	if err != nil {
		if detail, ok := validationDetail(err); ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "detail": detail})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, note.ToResponse())
}

func GetNoteById(c *gin.Context, db *database.Database, noteService services.NoteServiceInterface) {
	id, ok := noteID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
		return
	}

	note, err := noteService.GetNoteById(db, id)
	if err != nil {
		if errors.Is(err, services.ErrNoteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, note.ToResponse())
}

func GetNotes(c *gin.Context, db *database.Database, noteService services.NoteServiceInterface) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	notes, err := noteService.GetNotes(db, skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	responses := make([]models.Note, 0, len(notes))
	for _, note := range notes {
		responses = append(responses, note.ToResponse())
	}
	c.JSON(http.StatusOK, responses)
}

func UpdateNote(c *gin.Context, db *database.Database, noteService services.NoteServiceInterface) {
	id, ok := noteID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
		return
	}

	var patch models.NoteUpdateInput
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note, err := noteService.UpdateNote(db, id, patch)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoteNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
		case errors.Is(err, services.ErrNoteNotEditable):
			c.JSON(http.StatusForbidden, gin.H{"error": "Note is not editable"})
		default:
			if detail, ok := validationDetail(err); ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "detail": detail})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, note.ToResponse())
}

func DeleteNote(c *gin.Context, db *database.Database, noteService services.NoteServiceInterface) {
	id, ok := noteID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
		return
	}

	if _, err := noteService.DeleteNote(db, id); err != nil {
		if errors.Is(err, services.ErrNoteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func ResolveInsight(c *gin.Context, db *database.Database, noteService services.NoteServiceInterface) {
	id, ok := noteID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot resolve this note"})
		return
	}

	note, err := noteService.ResolveInsight(db, id)
	if err != nil {
		if errors.Is(err, services.ErrNoteNotFound) || errors.Is(err, services.ErrNotInsight) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot resolve this note"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, note.ToResponse())
}
