package app

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Spok95/school-backoffice/internal/ctxutil"
	"github.com/Spok95/school-backoffice/internal/db"
	"github.com/Spok95/school-backoffice/internal/models"
)

type studentPayload struct {
	FName    string  `json:"fname" validate:"required"`
	LName    *string `json:"lname"`
	Register *string `json:"register"`
	Phone    string  `json:"phone" validate:"required"`
	Birthday string  `json:"birthday"`
}

func (p studentPayload) toModel() (models.Student, error) {
	s := models.Student{
		FName:    p.FName,
		LName:    p.LName,
		Register: p.Register,
		Phone:    p.Phone,
	}
	bd, err := parseDatePtr(p.Birthday)
	if err != nil {
		return s, fiber.NewError(fiber.StatusBadRequest, "birthday: ожидается ГГГГ-ММ-ДД")
	}
	s.Birthday = bd
	return s, nil
}

func (s *Server) listStudents(c *fiber.Ctx) error {
	ctx, cancel := ctxutil.WithDBTimeout(c.Context())
	defer cancel()

	list, err := db.ListStudents(ctx, s.db, db.StudentFilter{
		FName:    c.Query("fname"),
		Register: c.Query("register"),
		Phone:    c.Query("phone"),
	})
	if err != nil {
		return s.fail(c, err)
	}
	return okJSON(c, list)
}

func (s *Server) addStudent(c *fiber.Ctx) error {
	var p studentPayload
	if err := s.parseBody(c, &p); err != nil {
		return err
	}
	st, err := p.toModel()
	if err != nil {
		return err
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.Context())
	defer cancel()

	id, err := db.CreateStudent(ctx, s.db, st)
	if err != nil {
		return s.fail(c, err)
	}
	return created(c, id)
}

// studentDetail — карточка ученика: анкета, его группы и история уровней.
func (s *Server) studentDetail(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.Context())
	defer cancel()

	st, err := db.GetStudentByID(ctx, s.db, id)
	if err != nil {
		return s.fail(c, err)
	}
	classes, err := db.ListStudentClasses(ctx, s.db, id)
	if err != nil {
		return s.fail(c, err)
	}
	levels, err := db.ListStudentLevels(ctx, s.db, db.StudentLevelFilter{StudentID: id})
	if err != nil {
		return s.fail(c, err)
	}
	return okJSON(c, fiber.Map{
		"student": st,
		"classes": classes,
		"levels":  levels,
	})
}

func (s *Server) editStudent(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var p studentPayload
	if err := s.parseBody(c, &p); err != nil {
		return err
	}
	st, err := p.toModel()
	if err != nil {
		return err
	}
	st.ID = id

	ctx, cancel := ctxutil.WithDBTimeout(c.Context())
	defer cancel()

	if err := db.UpdateStudent(ctx, s.db, st); err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) deleteStudent(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.Context())
	defer cancel()

	if err := db.DeactivateStudent(ctx, s.db, id); err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type studentLevelPayload struct {
	Level    string `json:"level" validate:"required"`
	CourseID *int64 `json:"course_id"`
	Date     string `json:"date" validate:"required"`
}

func (s *Server) addStudentLevel(c *fiber.Ctx) error {
	studentID, err := idParam(c)
	if err != nil {
		return err
	}
	var p studentLevelPayload
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

	// уровень без ученика не имеет смысла
	if _, err := db.GetStudentByID(ctx, s.db, studentID); err != nil {
		return s.fail(c, err)
	}

	id, err := db.CreateStudentLevel(ctx, s.db, models.StudentLevel{
		StudentID: studentID,
		CourseID:  p.CourseID,
		Level:     models.Level(p.Level),
		Date:      date,
	})
	if err != nil {
		return s.fail(c, err)
	}
	return created(c, id)
}

// addContractForStudent — договор для уже заведённого ученика.
// Цена считается из текущего тарифа потока.
func (s *Server) addContractForStudent(c *fiber.Ctx) error {
	studentID, err := idParam(c)
	if err != nil {
		return err
	}
	var p contractTermsPayload
	if err := s.parseBody(c, &p); err != nil {
		return err
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.Context())
	defer cancel()

	con, payment, method, err := s.buildContract(ctx, p, time.Now().In(s.cfg.Location))
	if err != nil {
		return s.fail(c, err)
	}

	id, err := db.CreateContractForStudent(ctx, s.db, studentID, con, payment, method)
	if err != nil {
		return s.fail(c, err)
	}
	return created(c, id)
}
