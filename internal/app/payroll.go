package app

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Spok95/school-backoffice/internal/ctxutil"
	"github.com/Spok95/school-backoffice/internal/db"
	"github.com/Spok95/school-backoffice/internal/export"
	"github.com/Spok95/school-backoffice/internal/metrics"
	"github.com/Spok95/school-backoffice/internal/models"
	"github.com/Spok95/school-backoffice/internal/payroll"
)

type teacherSalaryPayload struct {
	Year  int    `json:"year" validate:"required,gte=2000,lte=2100"`
	Month string `json:"month" validate:"required"`
	Shift string `json:"shift" validate:"required,oneof=FIRST SECOND"`
	Items []struct {
		TeacherID int64 `json:"teacher_id" validate:"required,gt=0"`
		Hours     int   `json:"hours" validate:"gte=0"`
	} `json:"items" validate:"required,min=1,dive"`
}

type workerSalaryPayload struct {
	Year  int    `json:"year" validate:"required,gte=2000,lte=2100"`
	Month string `json:"month" validate:"required"`
	Shift string `json:"shift" validate:"required,oneof=FIRST SECOND"`
	Items []struct {
		WorkerID int64 `json:"worker_id" validate:"required,gt=0"`
		Wage     int64 `json:"wage" validate:"gte=0"`
	} `json:"items" validate:"required,min=1,dive"`
}

// runTeacherSalaryBatch начисляет зарплату преподавателям за период.
// Кто уже получал за (год, месяц, смена) — пропускается, остальные
// пишутся одной транзакцией вместе с расходными операциями.
func (s *Server) runTeacherSalaryBatch(c *fiber.Ctx) error {
	var p teacherSalaryPayload
	if err := s.parseBody(c, &p); err != nil {
		return err
	}
	if !models.ValidMonth(p.Month) {
		return badRequest(c, "неизвестный месяц: "+p.Month)
	}
	ids := make([]int64, 0, len(p.Items))
	for _, it := range p.Items {
		ids = append(ids, it.TeacherID)
	}
	if payroll.HasDuplicates(ids) {
		return badRequest(c, "преподаватель указан в пакете дважды")
	}

	month := models.Month(p.Month)
	shift := models.Shift(p.Shift)

	ctx, cancel := ctxutil.WithDBTimeout(c.Context())
	defer cancel()

	paid, err := db.PaidTeacherIDs(ctx, s.db, p.Year, month, shift)
	if err != nil {
		return s.fail(c, err)
	}

	entries := make([]payroll.TeacherEntry, 0, len(p.Items))
	for _, it := range p.Items {
		t, err := db.GetTeacherByID(ctx, s.db, it.TeacherID)
		if err != nil {
			return s.fail(c, err)
		}
		entries = append(entries, payroll.TeacherEntry{Teacher: *t, Hours: it.Hours})
	}

	b := payroll.BuildTeacherBatch(p.Year, month, shift, entries, paid, time.Now().In(s.cfg.Location))
	if err := s.saveBatch(c, b); err != nil {
		return err
	}
	return okJSON(c, fiber.Map{
		"inserted": len(b.Records),
		"skipped":  len(p.Items) - len(b.Records),
	})
}

func (s *Server) runWorkerSalaryBatch(c *fiber.Ctx) error {
	var p workerSalaryPayload
	if err := s.parseBody(c, &p); err != nil {
		return err
	}
	if !models.ValidMonth(p.Month) {
		return badRequest(c, "неизвестный месяц: "+p.Month)
	}
	ids := make([]int64, 0, len(p.Items))
	for _, it := range p.Items {
		ids = append(ids, it.WorkerID)
	}
	if payroll.HasDuplicates(ids) {
		return badRequest(c, "сотрудник указан в пакете дважды")
	}

	month := models.Month(p.Month)
	shift := models.Shift(p.Shift)

	ctx, cancel := ctxutil.WithDBTimeout(c.Context())
	defer cancel()

	paid, err := db.PaidWorkerIDs(ctx, s.db, p.Year, month, shift)
	if err != nil {
		return s.fail(c, err)
	}

	// сумма берётся из формы: оклад из анкеты — только подсказка,
	// бухгалтер может начислить больше или меньше
	entries := make([]payroll.WorkerEntry, 0, len(p.Items))
	for _, it := range p.Items {
		w, err := db.GetWorkerByID(ctx, s.db, it.WorkerID)
		if err != nil {
			return s.fail(c, err)
		}
		entries = append(entries, payroll.WorkerEntry{Worker: *w, Wage: it.Wage})
	}

	b := payroll.BuildWorkerBatch(p.Year, month, shift, entries, paid, time.Now().In(s.cfg.Location))
	if err := s.saveBatch(c, b); err != nil {
		return err
	}
	return okJSON(c, fiber.Map{
		"inserted": len(b.Records),
		"skipped":  len(p.Items) - len(b.Records),
	})
}

func (s *Server) saveBatch(c *fiber.Ctx, b payroll.Batch) error {
	if len(b.Records) == 0 {
		return nil
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.Context())
	defer cancel()

	if err := db.SaveSalaryBatch(ctx, s.db, b); err != nil {
		return s.fail(c, err)
	}
	metrics.SalaryBatches.Inc()
	return nil
}

func (s *Server) salaryFilter(c *fiber.Ctx) (db.SalaryFilter, error) {
	f := db.SalaryFilter{
		PersonName: c.Query("name"),
		Year:       c.QueryInt("year"),
		Kind:       c.Query("kind"),
	}
	if m := c.Query("month"); m != "" {
		if !models.ValidMonth(strings.ToUpper(m)) {
			return f, fiber.NewError(fiber.StatusBadRequest, "неизвестный месяц: "+m)
		}
		f.Month = strings.ToUpper(m)
	}
	return f, nil
}

func (s *Server) listSalaries(c *fiber.Ctx) error {
	f, err := s.salaryFilter(c)
	if err != nil {
		return err
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.Context())
	defer cancel()

	list, err := db.ListSalaries(ctx, s.db, f)
	if err != nil {
		return s.fail(c, err)
	}
	return okJSON(c, list)
}

func (s *Server) exportSalaries(c *fiber.Ctx) error {
	f, err := s.salaryFilter(c)
	if err != nil {
		return err
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.Context())
	defer cancel()

	list, err := db.ListSalaries(ctx, s.db, f)
	if err != nil {
		return s.fail(c, err)
	}

	data, err := export.WorkbookBytes([]export.SheetSpec{export.SalarySheet(list)})
	if err != nil {
		return s.fail(c, err)
	}
	return sendXLSX(c, "зарплаты_"+time.Now().In(s.cfg.Location).Format("2006-01-02")+".xlsx", data)
}
