package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/user-management/internal/api/metrics"
)

// Handler is one step of an authentication pipeline. It either rejects the
// request by writing a response and returning without calling next, or
// passes control on by calling next.
type Handler interface {
	Handle(c echo.Context, next echo.HandlerFunc) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(c echo.Context, next echo.HandlerFunc) error

func (f HandlerFunc) Handle(c echo.Context, next echo.HandlerFunc) error { return f(c, next) }

// Chain is an ordered list of handlers run front to back.
type Chain struct {
	handlers []Handler
}

func NewChain(handlers ...Handler) *Chain {
	return &Chain{handlers: append([]Handler(nil), handlers...)}
}

// Add appends h and returns the chain for fluent construction.
func (ch *Chain) Add(h Handler) *Chain {
	ch.handlers = append(ch.handlers, h)
	return ch
}

func (ch *Chain) Len() int { return len(ch.handlers) }

// Middleware returns the chain as Echo middleware. Later calls to Add do not
// affect middleware already returned.
func (ch *Chain) Middleware() echo.MiddlewareFunc {
	handlers := append([]Handler(nil), ch.handlers...)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		h := next
		for i := len(handlers) - 1; i >= 0; i-- {
			step, inner := handlers[i], h
			h = func(c echo.Context) error { return step.Handle(c, inner) }
		}
		return h
	}
}

// Then wraps a route handler with the chain.
func (ch *Chain) Then(h echo.HandlerFunc) echo.HandlerFunc {
	return ch.Middleware()(h)
}

type rejection struct {
	Error string `json:"error"`
}

// reject writes the error envelope and stops the pipeline.
func reject(c echo.Context, status int, reason, msg string) error {
	metrics.PipelineRejectionsTotal.WithLabelValues(reason).Inc()
	return c.JSON(status, rejection{Error: msg})
}

func unauthorized(c echo.Context, reason, msg string) error {
	return reject(c, http.StatusUnauthorized, reason, msg)
}

func forbidden(c echo.Context, reason, msg string) error {
	return reject(c, http.StatusForbidden, reason, msg)
}
