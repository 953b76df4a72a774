package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/royalsilk/storefront/internal/api/middleware"
	"github.com/royalsilk/storefront/internal/core/ports"
)

// param reads a request parameter with the storefront's precedence: POST form
// value first, query string second.
func param(c echo.Context, name string) string {
	if v := c.Request().PostFormValue(name); v != "" {
		return v
	}
	return c.QueryParam(name)
}

// formInput flattens the request's parameters into the field → value map the
// validator consumes. POST form values shadow query parameters.
func formInput(c echo.Context) map[string]string {
	input := make(map[string]string)
	for name, values := range c.QueryParams() {
		if len(values) > 0 {
			input[name] = values[0]
		}
	}
	_ = c.Request().ParseForm()
	for name, values := range c.Request().PostForm {
		if len(values) > 0 {
			input[name] = values[0]
		}
	}
	return input
}

// auditSink accepts activity records for asynchronous persistence. Handlers
// never block on it.
type auditSink interface {
	Enqueue(entry ports.AuditEntry)
}

// noopAudit satisfies auditSink when auditing is disabled.
type noopAudit struct{}

func (noopAudit) Enqueue(ports.AuditEntry) {}

func auditEntry(c echo.Context, route, action, detail string) ports.AuditEntry {
	return ports.AuditEntry{
		SessionID: middleware.SessionID(c),
		Route:     route,
		Action:    action,
		Detail:    detail,
		Timestamp: time.Now().UTC(),
	}
}
