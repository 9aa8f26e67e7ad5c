package app

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Spok95/school-backoffice/internal/ctxutil"
	"github.com/Spok95/school-backoffice/internal/db"
	"github.com/Spok95/school-backoffice/internal/models"
	"github.com/Spok95/school-backoffice/internal/payroll"
)

type courseTypePayload struct {
	Price  int64  `json:"price" validate:"required,gt=0"`
	Length int    `json:"length" validate:"required,gt=0"`
	Level  string `json:"level" validate:"required"`
	Info   string `json:"info"`
}

func (s *Server) listCourseTypes(c *fiber.Ctx) error {
	ctx, cancel := ctxutil.WithDBTimeout(c.Context())
	defer cancel()

	list, err := db.ListCourseTypes(ctx, s.db, c.Query("level"))
	if err != nil {
		return s.fail(c, err)
	}
	return okJSON(c, list)
}

func (s *Server) addCourseType(c *fiber.Ctx) error {
	var p courseTypePayload
	if err := s.parseBody(c, &p); err != nil {
		return err
	}
	if !models.ValidLevel(p.Level) {
		return badRequest(c, "неизвестный уровень: "+p.Level)
	}

	ct := models.CourseType{
		Price:  p.Price,
		Length: p.Length,
		// часовая цена фиксируется при создании тарифа
		HourlyPrice: p.Price / int64(p.Length),
		Level:       p.Level,
	}
	if p.Info != "" {
		ct.Info = &p.Info
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.Context())
	defer cancel()

	id, err := db.CreateCourseType(ctx, s.db, ct)
	if err != nil {
		return s.fail(c, err)
	}
	return created(c, id)
}

func (s *Server) editCourseType(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var p courseTypePayload
	if err := s.parseBody(c, &p); err != nil {
		return err
	}
	if !models.ValidLevel(p.Level) {
		return badRequest(c, "неизвестный уровень: "+p.Level)
	}

	ct := models.CourseType{
		ID:          id,
		Price:       p.Price,
		Length:      p.Length,
		HourlyPrice: p.Price / int64(p.Length),
		Level:       p.Level,
	}
	if p.Info != "" {
		ct.Info = &p.Info
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.Context())
	defer cancel()

	if err := db.UpdateCourseType(ctx, s.db, ct); err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) deleteCourseType(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.Context())
	defer cancel()

	if err := db.DeactivateCourseType(ctx, s.db, id); err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type courseTeacherPayload struct {
	TeacherID int64  `json:"teacher_id" validate:"required,gt=0"`
	Lesson    string `json:"lesson"`
}

type coursePayload struct {
	CTypeID   int64                  `json:"ctype_id" validate:"required,gt=0"`
	StartDate string                 `json:"start_date" validate:"required"`
	Info      string                 `json:"info"`
	Teachers  []courseTeacherPayload `json:"teachers" validate:"dive"`
}

func (p coursePayload) toModel() (models.Course, []models.CourseTeacher, error) {
	start, err := parseDate(p.StartDate)
	if err != nil {
		return models.Course{}, nil, fiber.NewError(fiber.StatusBadRequest, "start_date: ожидается ГГГГ-ММ-ДД")
	}
	ids := make([]int64, 0, len(p.Teachers))
	teachers := make([]models.CourseTeacher, 0, len(p.Teachers))
	for _, t := range p.Teachers {
		ids = append(ids, t.TeacherID)
		teachers = append(teachers, models.CourseTeacher{TeacherID: t.TeacherID, Lesson: t.Lesson})
	}
	if payroll.HasDuplicates(ids) {
		return models.Course{}, nil, fiber.NewError(fiber.StatusBadRequest, "преподаватель указан дважды")
	}

	course := models.Course{CTypeID: p.CTypeID, StartDate: start}
	if p.Info != "" {
		course.Info = &p.Info
	}
	return course, teachers, nil
}

func (s *Server) listCourses(c *fiber.Ctx) error {
	before, err := parseDatePtr(c.Query("start_before"))
	if err != nil {
		return badRequest(c, "start_before: ожидается ГГГГ-ММ-ДД")
	}
	after, err := parseDatePtr(c.Query("start_after"))
	if err != nil {
		return badRequest(c, "start_after: ожидается ГГГГ-ММ-ДД")
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.Context())
	defer cancel()

	list, err := db.ListCourses(ctx, s.db, db.CourseFilter{
		CTypeID:     int64(c.QueryInt("ctype_id")),
		StartBefore: before,
		StartAfter:  after,
		OnlyActive:  c.QueryBool("active"),
	})
	if err != nil {
		return s.fail(c, err)
	}
	return okJSON(c, list)
}

func (s *Server) addCourse(c *fiber.Ctx) error {
	var p coursePayload
	if err := s.parseBody(c, &p); err != nil {
		return err
	}
	course, teachers, err := p.toModel()
	if err != nil {
		return err
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.Context())
	defer cancel()

	// тариф должен существовать и быть действующим
	ct, err := db.GetCourseTypeByID(ctx, s.db, p.CTypeID)
	if err != nil {
		return s.fail(c, err)
	}
	if !ct.IsActive {
		return badRequest(c, "этот тариф уже закрыт")
	}

	id, err := db.CreateCourse(ctx, s.db, course, teachers)
	if err != nil {
		return s.fail(c, err)
	}
	return created(c, id)
}

// courseDetail — карточка потока: тариф, преподаватели, договоры и
// количество учеников.
func (s *Server) courseDetail(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.Context())
	defer cancel()

	course, err := db.GetCourseByID(ctx, s.db, id)
	if err != nil {
		return s.fail(c, err)
	}
	teachers, err := db.ListCourseTeachers(ctx, s.db, id)
	if err != nil {
		return s.fail(c, err)
	}
	contracts, err := db.ListContractsByCourse(ctx, s.db, id)
	if err != nil {
		return s.fail(c, err)
	}
	count, err := db.CountCourseStudents(ctx, s.db, id)
	if err != nil {
		return s.fail(c, err)
	}
	return okJSON(c, fiber.Map{
		"course":        course,
		"teachers":      teachers,
		"contracts":     contracts,
		"student_count": count,
	})
}

func (s *Server) editCourse(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var p coursePayload
	if err := s.parseBody(c, &p); err != nil {
		return err
	}
	course, teachers, err := p.toModel()
	if err != nil {
		return err
	}
	course.ID = id

	ctx, cancel := ctxutil.WithDBTimeout(c.Context())
	defer cancel()

	if err := db.UpdateCourse(ctx, s.db, course, teachers); err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) deleteCourse(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.Context())
	defer cancel()

	if err := db.DeactivateCourse(ctx, s.db, id); err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
