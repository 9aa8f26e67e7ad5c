package app

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/Spok95/school-backoffice/internal/ctxutil"
	"github.com/Spok95/school-backoffice/internal/db"
	"github.com/Spok95/school-backoffice/internal/metrics"
	"github.com/Spok95/school-backoffice/internal/observability"
)

func created(c *fiber.Ctx, id int64) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

func okJSON(c *fiber.Ctx, payload interface{}) error {
	return c.JSON(payload)
}

// fail переводит ошибки ядра в HTTP-ответ: бизнес-правило — 400,
// ненайденная запись — 404, нарушение уникальности — 409 с откатом
// всего пакета, остальное — 500 плюс сигнал в Sentry.
func (s *Server) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, db.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "запись не найдена"})
	case db.IsValidation(err):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case isUniqueViolation(err):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "операция не прошла, изменения отменены"})
	default:
		metrics.HandlerErrors.Inc()
		observability.CaptureErr(err)
		reqid, _ := ctxutil.RequestID(c.UserContext())
		s.log.Error("ошибка обработчика",
			zap.String("reqid", reqid),
			zap.String("path", c.Path()),
			zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "внутренняя ошибка"})
	}
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
