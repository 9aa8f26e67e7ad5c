package app

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Spok95/school-backoffice/internal/ctxutil"
	"github.com/Spok95/school-backoffice/internal/db"
	"github.com/Spok95/school-backoffice/internal/metrics"
	"github.com/Spok95/school-backoffice/internal/models"
	"github.com/Spok95/school-backoffice/internal/pricing"
)

// contractTermsPayload — условия договора. Цена берётся из тарифа
// потока на момент заключения, клиент её не присылает.
type contractTermsPayload struct {
	CourseID       int64  `json:"course_id" validate:"required,gt=0"`
	Date           string `json:"date"`
	MinusLength    int    `json:"minus_length" validate:"gte=0"`
	OffPercent     int    `json:"off_percent"`
	Payment        int64  `json:"payment" validate:"gte=0"`
	Method         string `json:"method" validate:"required,oneof=BY_BANK BY_CASH"`
	ContractNumber string `json:"contract_number"`
	Description    string `json:"description"`
}

type newContractPayload struct {
	Student  studentPayload       `json:"student" validate:"required"`
	Contract contractTermsPayload `json:"contract" validate:"required"`
}

// buildContract превращает условия в готовую к записи модель:
// проверяет поток, считает req_payment, подставляет номер договора.
func (s *Server) buildContract(ctx context.Context, p contractTermsPayload, now time.Time) (models.Contract, int64, models.TxnMethod, error) {
	var con models.Contract

	course, err := db.GetCourseByID(ctx, s.db, p.CourseID)
	if err != nil {
		return con, 0, "", err
	}
	if !course.IsActive {
		return con, 0, "", db.ValidationError("этот курс уже закрыт")
	}

	date := now
	if p.Date != "" {
		d, err := parseDate(p.Date)
		if err != nil {
			return con, 0, "", db.ValidationError("date: ожидается ГГГГ-ММ-ДД")
		}
		date = d
	}
	if p.MinusLength > course.Length {
		return con, 0, "", db.ValidationError("minus_length больше длительности курса")
	}

	q := pricing.Calculate(course.Price, course.HourlyPrice, course.Length, p.MinusLength, p.OffPercent)

	number := p.ContractNumber
	if number == "" {
		number = uuid.NewString()
	}

	con = models.Contract{
		CourseID:       p.CourseID,
		Date:           date,
		MinusLength:    p.MinusLength,
		ReqPayment:     q.ReqPayment,
		OffPercent:     p.OffPercent,
		ContractNumber: &number,
	}
	if p.Description != "" {
		con.Description = &p.Description
	}
	return con, p.Payment, models.TxnMethod(p.Method), nil
}

// addContract — договор с новым учеником: анкета и условия одним
// запросом, всё пишется одной транзакцией.
func (s *Server) addContract(c *fiber.Ctx) error {
	var p newContractPayload
	if err := s.parseBody(c, &p); err != nil {
		return err
	}
	st, err := p.Student.toModel()
	if err != nil {
		return err
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.Context())
	defer cancel()

	con, payment, method, err := s.buildContract(ctx, p.Contract, time.Now().In(s.cfg.Location))
	if err != nil {
		return s.fail(c, err)
	}

	id, err := db.CreateContract(ctx, s.db, st, con, payment, method)
	if err != nil {
		return s.fail(c, err)
	}
	metrics.ContractsCreated.Inc()
	return created(c, id)
}

func (s *Server) listContracts(c *fiber.Ctx) error {
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

	list, err := db.ListContracts(ctx, s.db, db.ContractFilter{
		StudentName: c.Query("student"),
		CourseID:    int64(c.QueryInt("course_id")),
		DateBefore:  before,
		DateAfter:   after,
		OnlyActive:  c.QueryBool("active"),
	})
	if err != nil {
		return s.fail(c, err)
	}
	return okJSON(c, list)
}

// contractDetail — карточка договора: остаток к оплате и вся история
// операций по нему.
func (s *Server) contractDetail(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.Context())
	defer cancel()

	con, err := db.GetContractByID(ctx, s.db, id)
	if err != nil {
		return s.fail(c, err)
	}
	txns, err := db.ListContractTransactions(ctx, s.db, id)
	if err != nil {
		return s.fail(c, err)
	}
	return okJSON(c, fiber.Map{
		"contract":  con,
		"remainder": con.RemainderPayment(),
		"txns":      txns,
	})
}

type paymentPayload struct {
	Amount int64  `json:"amount" validate:"required,gt=0"`
	Method string `json:"method" validate:"required,oneof=BY_BANK BY_CASH"`
	Date   string `json:"date"`
	Info   string `json:"info"`
}

func (s *Server) addContractPayment(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var p paymentPayload
	if err := s.parseBody(c, &p); err != nil {
		return err
	}

	date := time.Now().In(s.cfg.Location)
	if p.Date != "" {
		d, err := parseDate(p.Date)
		if err != nil {
			return badRequest(c, "date: ожидается ГГГГ-ММ-ДД")
		}
		date = d
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.Context())
	defer cancel()

	if err := db.AddContractPayment(ctx, s.db, id, p.Amount, models.TxnMethod(p.Method), date, p.Info); err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type changeCoursePayload struct {
	CourseID int64  `json:"course_id" validate:"required,gt=0"`
	Policy   string `json:"policy" validate:"required,oneof=FREE NON_FREE"`
	Method   string `json:"method" validate:"required,oneof=BY_BANK BY_CASH"`
	Info     string `json:"info"`
}

func (s *Server) changeContractCourse(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var p changeCoursePayload
	if err := s.parseBody(c, &p); err != nil {
		return err
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.Context())
	defer cancel()

	course, err := db.GetCourseByID(ctx, s.db, p.CourseID)
	if err != nil {
		return s.fail(c, err)
	}
	if !course.IsActive {
		return badRequest(c, "этот курс уже закрыт")
	}

	err = db.ChangeContractCourse(ctx, s.db, id, p.CourseID,
		models.ClassChangePolicy(p.Policy), models.TxnMethod(p.Method),
		p.Info, s.cfg.ClassChangeFee, time.Now().In(s.cfg.Location))
	if err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) deleteContract(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.Context())
	defer cancel()

	if err := db.DeactivateContract(ctx, s.db, id); err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
