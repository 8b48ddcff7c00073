// Package httpapi exposes the todobook HTTP API handlers.
package httpapi

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/todobook/todobook/internal/observability"
	"github.com/todobook/todobook/internal/service"
	"github.com/todobook/todobook/internal/token"
)

// Server wires services into HTTP handlers.
type Server struct {
	auth    service.AuthService
	todos   service.TodoService
	tokens  *token.Service
	metrics *observability.Metrics // optional
	log     *zap.Logger
}

// New constructs the HTTP server with injected services. metrics may be nil.
func New(auth service.AuthService, todos service.TodoService, tokens *token.Service, metrics *observability.Metrics, log *zap.Logger) *Server {
	return &Server{auth: auth, todos: todos, tokens: tokens, metrics: metrics, log: log}
}

// Router builds the gin engine with middleware and the route table.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(Recover(s.log))
	r.Use(RequestLogger(s.log))
	r.Use(CORS())
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	if s.metrics != nil {
		r.Use(s.metrics.Middleware())
		r.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	// open endpoints
	r.GET("/", s.Liveness)
	r.POST("/jwt", s.IssueToken)
	r.POST("/users", s.RegisterUser)

	// bearer-guarded endpoints
	guard := AuthGuard(s.tokens, s.log)
	r.POST("/todos", guard, s.CreateTodo)
	r.GET("/todos/:email", guard, s.ListTodos)
	r.DELETE("/todos/:id", guard, s.DeleteTodo)
	r.PUT("/todos/:id", guard, s.UpdateTodo)
	r.GET("/singleTodos/:id", guard, s.GetTodo)
	r.PUT("/makeCompleted/:id", guard, s.MarkCompleted)

	return r
}
