package http

import (
	"github.com/gin-gonic/gin"

	"isms-assistant/internal/assistant"
	"isms-assistant/internal/routing"
	pkgLog "isms-assistant/pkg/log"
)

// Handler is the interface for the assistant HTTP delivery handler.
type Handler interface {
	Chat(c *gin.Context)
	RoutingLog(c *gin.Context)
}

type handler struct {
	l          pkgLog.Logger
	uc         assistant.UseCase
	comparator *routing.Comparator // optional, nil when shadow routing is off
}

// New creates the assistant HTTP handler.
func New(l pkgLog.Logger, uc assistant.UseCase, comparator *routing.Comparator) Handler {
	return &handler{
		l:          l,
		uc:         uc,
		comparator: comparator,
	}
}
