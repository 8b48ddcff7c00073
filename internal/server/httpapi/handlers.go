package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/todobook/todobook/internal/errs"
	"github.com/todobook/todobook/internal/model"
)

// Liveness reports that the server is up.
func (s *Server) Liveness(c *gin.Context) {
	c.String(http.StatusOK, "Todobook server running!")
}

// IssueToken signs caller-supplied claims and returns the opaque token.
func (s *Server) IssueToken(c *gin.Context) {
	var claims map[string]any
	if err := c.ShouldBindJSON(&claims); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body"})
		return
	}
	tok, err := s.auth.IssueToken(c.Request.Context(), claims, c.ClientIP())
	if err != nil {
		s.fail(c, "issue token", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": tok})
}

// RegisterUser stores a user record once per email.
func (s *Server) RegisterUser(c *gin.Context) {
	var user model.Document
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body"})
		return
	}
	res, err := s.auth.RegisterUser(c.Request.Context(), user)
	if err != nil {
		s.fail(c, "register user", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// CreateTodo inserts a todo owned by the authenticated caller.
func (s *Server) CreateTodo(c *gin.Context) {
	var todo model.Document
	if err := c.ShouldBindJSON(&todo); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body"})
		return
	}
	res, err := s.todos.Create(c.Request.Context(), ClaimEmail(c), todo)
	if err != nil {
		s.fail(c, "create todo", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ListTodos returns all todos of the email in the path.
func (s *Server) ListTodos(c *gin.Context) {
	res, err := s.todos.List(c.Request.Context(), ClaimEmail(c), c.Param("email"))
	if err != nil {
		s.fail(c, "list todos", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetTodo returns a single todo by id, or JSON null when there is none.
func (s *Server) GetTodo(c *gin.Context) {
	doc, err := s.todos.Get(c.Request.Context(), ClaimEmail(c), c.Query("email"), c.Param("id"))
	if errors.Is(err, errs.ErrNotFound) {
		c.JSON(http.StatusOK, nil)
		return
	}
	if err != nil {
		s.fail(c, "get todo", err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// DeleteTodo removes a todo by id and reports the deletion count.
func (s *Server) DeleteTodo(c *gin.Context) {
	res, err := s.todos.Delete(c.Request.Context(), ClaimEmail(c), c.Query("email"), c.Param("id"))
	if err != nil {
		s.fail(c, "delete todo", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// UpdateTodo merges the supplied fields into the todo at id.
func (s *Server) UpdateTodo(c *gin.Context) {
	var fields model.Document
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body"})
		return
	}
	res, err := s.todos.Update(c.Request.Context(), ClaimEmail(c), c.Param("id"), fields)
	if err != nil {
		s.fail(c, "update todo", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// MarkCompleted sets the todo's status to completed.
func (s *Server) MarkCompleted(c *gin.Context) {
	res, err := s.todos.MarkCompleted(c.Request.Context(), ClaimEmail(c), c.Query("email"), c.Param("id"))
	if err != nil {
		s.fail(c, "mark completed", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// fail maps service errors onto a terminating response. Every handler path
// answers the caller; store and signing failures become a generic 500.
func (s *Server) fail(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, errs.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": "forbidden access"})
	case errors.Is(err, errs.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"message": "too many requests"})
	default:
		s.log.Error(op, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
	}
}
