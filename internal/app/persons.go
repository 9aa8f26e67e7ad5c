package app

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Spok95/school-backoffice/internal/ctxutil"
	"github.com/Spok95/school-backoffice/internal/db"
	"github.com/Spok95/school-backoffice/internal/models"
)

// Преподаватели и сотрудники — одинаковые анкеты, разная оплата:
// у преподавателя почасовая ставка, у сотрудника месячный оклад.

type teacherPayload struct {
	FName      string `json:"fname" validate:"required"`
	LName      string `json:"lname" validate:"required"`
	Register   string `json:"register" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
	Birthday   string `json:"birthday" validate:"required"`
	HourlyWage int64  `json:"hourly_wage" validate:"required,gt=0"`
}

type workerPayload struct {
	FName       string `json:"fname" validate:"required"`
	LName       string `json:"lname" validate:"required"`
	Register    string `json:"register" validate:"required"`
	Phone       string `json:"phone" validate:"required"`
	Birthday    string `json:"birthday" validate:"required"`
	MonthlyWage int64  `json:"monthly_wage" validate:"required,gt=0"`
}

func personFilter(c *fiber.Ctx) db.PersonFilter {
	return db.PersonFilter{
		FName:      c.Query("fname"),
		Register:   c.Query("register"),
		Phone:      c.Query("phone"),
		OnlyActive: c.QueryBool("active"),
	}
}

func (s *Server) listTeachers(c *fiber.Ctx) error {
	ctx, cancel := ctxutil.WithDBTimeout(c.Context())
	defer cancel()

	list, err := db.ListTeachers(ctx, s.db, personFilter(c))
	if err != nil {
		return s.fail(c, err)
	}
	return okJSON(c, list)
}

func (s *Server) addTeacher(c *fiber.Ctx) error {
	var p teacherPayload
	if err := s.parseBody(c, &p); err != nil {
		return err
	}
	bd, err := parseDate(p.Birthday)
	if err != nil {
		return badRequest(c, "birthday: ожидается ГГГГ-ММ-ДД")
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.Context())
	defer cancel()

	id, err := db.CreateTeacher(ctx, s.db, models.Teacher{
		FName: p.FName, LName: p.LName, Register: p.Register,
		Phone: p.Phone, Birthday: bd, HourlyWage: p.HourlyWage,
	})
	if err != nil {
		return s.fail(c, err)
	}
	return created(c, id)
}

// teacherDetail — анкета и потоки, которые преподаватель ведёт.
func (s *Server) teacherDetail(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.Context())
	defer cancel()

	t, err := db.GetTeacherByID(ctx, s.db, id)
	if err != nil {
		return s.fail(c, err)
	}
	courses, err := db.ListTeacherCourses(ctx, s.db, id)
	if err != nil {
		return s.fail(c, err)
	}
	return okJSON(c, fiber.Map{"teacher": t, "courses": courses})
}

func (s *Server) editTeacher(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var p teacherPayload
	if err := s.parseBody(c, &p); err != nil {
		return err
	}
	bd, err := parseDate(p.Birthday)
	if err != nil {
		return badRequest(c, "birthday: ожидается ГГГГ-ММ-ДД")
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.Context())
	defer cancel()

	err = db.UpdateTeacher(ctx, s.db, models.Teacher{
		ID: id, FName: p.FName, LName: p.LName, Register: p.Register,
		Phone: p.Phone, Birthday: bd, HourlyWage: p.HourlyWage,
	})
	if err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) deleteTeacher(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.Context())
	defer cancel()

	if err := db.DeactivateTeacher(ctx, s.db, id); err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) listWorkers(c *fiber.Ctx) error {
	ctx, cancel := ctxutil.WithDBTimeout(c.Context())
	defer cancel()

	list, err := db.ListWorkers(ctx, s.db, personFilter(c))
	if err != nil {
		return s.fail(c, err)
	}
	return okJSON(c, list)
}

func (s *Server) addWorker(c *fiber.Ctx) error {
	var p workerPayload
	if err := s.parseBody(c, &p); err != nil {
		return err
	}
	bd, err := parseDate(p.Birthday)
	if err != nil {
		return badRequest(c, "birthday: ожидается ГГГГ-ММ-ДД")
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.Context())
	defer cancel()

	id, err := db.CreateWorker(ctx, s.db, models.Worker{
		FName: p.FName, LName: p.LName, Register: p.Register,
		Phone: p.Phone, Birthday: bd, MonthlyWage: p.MonthlyWage,
	})
	if err != nil {
		return s.fail(c, err)
	}
	return created(c, id)
}

func (s *Server) workerDetail(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.Context())
	defer cancel()

	w, err := db.GetWorkerByID(ctx, s.db, id)
	if err != nil {
		return s.fail(c, err)
	}
	return okJSON(c, w)
}

func (s *Server) editWorker(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var p workerPayload
	if err := s.parseBody(c, &p); err != nil {
		return err
	}
	bd, err := parseDate(p.Birthday)
	if err != nil {
		return badRequest(c, "birthday: ожидается ГГГГ-ММ-ДД")
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.Context())
	defer cancel()

	err = db.UpdateWorker(ctx, s.db, models.Worker{
		ID: id, FName: p.FName, LName: p.LName, Register: p.Register,
		Phone: p.Phone, Birthday: bd, MonthlyWage: p.MonthlyWage,
	})
	if err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) deleteWorker(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.Context())
	defer cancel()

	if err := db.DeactivateWorker(ctx, s.db, id); err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
