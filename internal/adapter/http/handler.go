package http

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"cv-portfolio/internal/domain"
	"cv-portfolio/internal/usecase"
	"cv-portfolio/pkg/document"
)

type Exporter interface {
	Export(ctx context.Context, flags []string) (*usecase.ExportResult, error)
}

type Handler struct {
	portfolio *usecase.Portfolio
	exporter  Exporter
	ready     func(ctx context.Context) error
}

// NewHandler wires the pages. ready backs /readyz and may be nil.
func NewHandler(p *usecase.Portfolio, x Exporter, ready func(ctx context.Context) error) *Handler {
	return &Handler{portfolio: p, exporter: x, ready: ready}
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	msg := "internal error"
	switch {
	case errors.Is(err, domain.ErrNoActiveProfile):
		status, msg = fiber.StatusNotFound, "no hay un perfil activo"
	case errors.Is(err, domain.ErrPrintingNotAllowed):
		status, msg = fiber.StatusForbidden, "la impresión no está permitida para este perfil"
	case errors.Is(err, domain.ErrNotFound):
		status, msg = fiber.StatusNotFound, "no encontrado"
	default:
		slog.ErrorContext(c.UserContext(), "request failed", "path", c.Path(), "error", err)
	}
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

func (h *Handler) Home(c *fiber.Ctx) error {
	home, err := h.portfolio.Home(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(home)
}

func (h *Handler) PersonalData(c *fiber.Ctx) error {
	p, err := h.portfolio.ActiveProfile(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"profile": p})
}

// Section returns the handler listing one section's visible entries.
func (h *Handler) Section(s domain.Section) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, items, err := h.portfolio.Section(c.UserContext(), s)
		if err != nil {
			return h.fail(c, err)
		}
		return c.JSON(fiber.Map{"profile": p, "section": s, "title": s.Title(), "items": items})
	}
}

func (h *Handler) Garage(c *fiber.Ctx) error {
	p, items, err := h.portfolio.Garage(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"profile": p, "items": items})
}

// Print streams the exported résumé. Every query key is a section flag.
func (h *Handler) Print(c *fiber.Ctx) error {
	var flags []string
	for k := range c.Queries() {
		flags = append(flags, k)
	}
	res, err := h.exporter.Export(c.UserContext(), flags)
	if err != nil {
		return h.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+document.ExportFilename+`"`)
	c.Set("X-Export-Id", res.ID)
	return c.Send(res.PDF)
}

// Certificate shows one stored certificate: a redirect for remote media,
// the file itself for local media.
func (h *Handler) Certificate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return h.fail(c, domain.ErrNotFound)
	}
	r, err := h.portfolio.Certificate(c.UserContext(), c.Params("tipo"), int64(id))
	if err != nil {
		return h.fail(c, err)
	}
	if r.IsRemote() {
		return c.Redirect(r.URL, fiber.StatusFound)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+strings.ReplaceAll(filepath.Base(r.Path), `"`, "")+`"`)
	if err := c.SendFile(r.Path); err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) && fe.Code == fiber.StatusNotFound {
			return h.fail(c, domain.ErrNotFound)
		}
		return h.fail(c, err)
	}
	return nil
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *Handler) Ready(c *fiber.Ctx) error {
	if h.ready != nil {
		if err := h.ready(c.UserContext()); err != nil {
			slog.WarnContext(c.UserContext(), "readiness check failed", "error", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
		}
	}
	return c.JSON(fiber.Map{"status": "ready"})
}
