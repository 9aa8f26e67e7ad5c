package app

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Spok95/school-backoffice/internal/ctxutil"
	"github.com/Spok95/school-backoffice/internal/db"
	"github.com/Spok95/school-backoffice/internal/models"
)

func (s *Server) listStudentLevels(c *fiber.Ctx) error {
	before, err := parseDatePtr(c.Query("date_before"))
	if err != nil {
		return badRequest(c, "date_before: ожидается ГГГГ-ММ-ДД")
	}
	after, err := parseDatePtr(c.Query("date_after"))
	if err != nil {
		return badRequest(c, "date_after: ожидается ГГГГ-ММ-ДД")
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.Context())
	defer cancel()

	list, err := db.ListStudentLevels(ctx, s.db, db.StudentLevelFilter{
		StudentName: c.Query("student"),
		DateBefore:  before,
		DateAfter:   after,
	})
	if err != nil {
		return s.fail(c, err)
	}
	return okJSON(c, list)
}

type editStudentLevelPayload struct {
	StudentID int64  `json:"student_id" validate:"required,gt=0"`
	Level     string `json:"level" validate:"required"`
	CourseID  *int64 `json:"course_id"`
	Date      string `json:"date" validate:"required"`
}

func (s *Server) editStudentLevel(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var p editStudentLevelPayload
	if err := s.parseBody(c, &p); err != nil {
		return err
	}
	if !models.ValidLevel(p.Level) {
		return badRequest(c, "неизвестный уровень: "+p.Level)
	}
	date, err := parseDate(p.Date)
	if err != nil {
		return badRequest(c, "date: ожидается ГГГГ-ММ-ДД")
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.Context())
	defer cancel()

	err = db.UpdateStudentLevel(ctx, s.db, models.StudentLevel{
		ID:        id,
		StudentID: p.StudentID,
		CourseID:  p.CourseID,
		Level:     models.Level(p.Level),
		Date:      date,
	})
	if err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) deleteStudentLevel(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.Context())
	defer cancel()

	if err := db.DeactivateStudentLevel(ctx, s.db, id); err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
