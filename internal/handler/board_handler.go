package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskboard/internal/board"
	"taskboard/internal/model"
	"taskboard/internal/session"
)

type BoardHandler struct {
	session *session.Session
}

func NewBoardHandler(s *session.Session) *BoardHandler {
	return &BoardHandler{session: s}
}

// TaskCreateRequest представляет запрос на создание задачи
type TaskCreateRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low medium high"`
	Due         *time.Time `json:"due"`
	Tag         string     `json:"tag"`
	ColumnID    string     `json:"column_id"`
}

// TaskUpdateRequest представляет частичное обновление задачи
type TaskUpdateRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Priority    *string    `json:"priority" binding:"omitempty,oneof=low medium high"`
	Due         *time.Time `json:"due"`
	ClearDue    bool       `json:"clear_due"`
	Tag         *string    `json:"tag"`
}

// TaskMoveRequest представляет событие окончания перетаскивания: over — это
// идентификатор колонки или карточки, на которую бросили задачу, либо null,
// если перетаскивание отменено.
type TaskMoveRequest struct {
	Over *string `json:"over"`
}

// GetBoard возвращает текущий снимок доски
func (h *BoardHandler) GetBoard(c *gin.Context) {
	c.JSON(http.StatusOK, h.session.Board())
}

// GetByColumn возвращает задачи колонки в порядке отображения
func (h *BoardHandler) GetByColumn(c *gin.Context) {
	snapshot := h.session.Board()
	columnID := c.Param("id")
	if !snapshot.HasColumn(columnID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Column not found"})
		return
	}

	tasks := make([]*model.Task, 0, len(snapshot.Order[columnID]))
	for _, id := range snapshot.Order[columnID] {
		if task, ok := snapshot.Tasks[id]; ok {
			tasks = append(tasks, task)
		}
	}
	c.JSON(http.StatusOK, tasks)
}

// Create создает новую задачу
func (h *BoardHandler) Create(c *gin.Context) {
	var req TaskCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task, err := h.session.CreateTask(c.Request.Context(), board.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    model.Priority(req.Priority),
		Due:         req.Due,
		Tag:         req.Tag,
		ColumnID:    req.ColumnID,
	})
	if err != nil {
		switch {
		case errors.Is(err, board.ErrTitleRequired), errors.Is(err, board.ErrInvalidPriority):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, board.ErrColumnNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Column not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		}
		return
	}

	c.JSON(http.StatusCreated, task)
}

// Update обновляет поля существующей задачи
func (h *BoardHandler) Update(c *gin.Context) {
	var req TaskUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var priority *model.Priority
	if req.Priority != nil {
		p := model.Priority(*req.Priority)
		priority = &p
	}

	task, err := h.session.UpdateTask(c.Request.Context(), c.Param("id"), board.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    priority,
		Due:         req.Due,
		ClearDue:    req.ClearDue,
		Tag:         req.Tag,
	})
	if err != nil {
		switch {
		case errors.Is(err, board.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		case errors.Is(err, board.ErrTitleRequired), errors.Is(err, board.ErrInvalidPriority):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		}
		return
	}

	c.JSON(http.StatusOK, task)
}

// Delete удаляет задачу. Удаление несуществующей задачи не является ошибкой.
func (h *BoardHandler) Delete(c *gin.Context) {
	h.session.DeleteTask(c.Request.Context(), c.Param("id"))
	c.Status(http.StatusNoContent)
}

// Move применяет событие перетаскивания и возвращает новый снимок доски
func (h *BoardHandler) Move(c *gin.Context) {
	var req TaskMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	snapshot, err := h.session.MoveTask(c.Request.Context(), c.Param("id"), req.Over)
	if err != nil {
		switch {
		case errors.Is(err, board.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		case errors.Is(err, board.ErrBoardInconsistent):
			c.JSON(http.StatusConflict, gin.H{"error": "Board was inconsistent and has been repaired, retry the move"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to move task"})
		}
		return
	}

	c.JSON(http.StatusOK, snapshot)
}
