package app

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Spok95/school-backoffice/internal/ctxutil"
	"github.com/Spok95/school-backoffice/internal/db"
	"github.com/Spok95/school-backoffice/internal/export"
	"github.com/Spok95/school-backoffice/internal/models"
)

// Руками в леджер заводятся только прочие доходы и расходы: оплаты по
// договорам, платы за перевод и зарплаты пишут свои операции сами.
type txnPayload struct {
	Amount int64  `json:"amount" validate:"required,gt=0"`
	Type   string `json:"type" validate:"required,oneof=INCOME EXPENSE"`
	Method string `json:"method" validate:"omitempty,oneof=BY_BANK BY_CASH"`
	Date   string `json:"date" validate:"required"`
	Info   string `json:"info"`
}

func (p txnPayload) toModel() (models.Transaction, error) {
	date, err := parseDate(p.Date)
	if err != nil {
		return models.Transaction{}, fiber.NewError(fiber.StatusBadRequest, "date: ожидается ГГГГ-ММ-ДД")
	}
	t := models.Transaction{
		Amount: p.Amount,
		Type:   models.TxnType(p.Type),
		Date:   date,
		Info:   p.Info,
	}
	if p.Method != "" {
		m := models.TxnMethod(p.Method)
		t.Method = &m
	}
	return t, nil
}

func (s *Server) txnFilter(c *fiber.Ctx) (db.TxnFilter, error) {
	var f db.TxnFilter
	if t := c.Query("type"); t != "" {
		if !models.ValidTxnType(t) {
			return f, fiber.NewError(fiber.StatusBadRequest, "неизвестный тип операции: "+t)
		}
		f.Type = t
	}
	before, err := parseDatePtr(c.Query("date_before"))
	if err != nil {
		return f, fiber.NewError(fiber.StatusBadRequest, "date_before: ожидается ГГГГ-ММ-ДД")
	}
	after, err := parseDatePtr(c.Query("date_after"))
	if err != nil {
		return f, fiber.NewError(fiber.StatusBadRequest, "date_after: ожидается ГГГГ-ММ-ДД")
	}
	f.DateBefore = before
	f.DateAfter = after
	return f, nil
}

// listTransactions — выборка леджера с итогами прихода и расхода.
func (s *Server) listTransactions(c *fiber.Ctx) error {
	f, err := s.txnFilter(c)
	if err != nil {
		return err
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.Context())
	defer cancel()

	txns, totals, err := db.ListTransactions(ctx, s.db, f)
	if err != nil {
		return s.fail(c, err)
	}
	return okJSON(c, fiber.Map{
		"txns":    txns,
		"income":  totals.Income,
		"expense": totals.Expense,
	})
}

func (s *Server) addTransaction(c *fiber.Ctx) error {
	var p txnPayload
	if err := s.parseBody(c, &p); err != nil {
		return err
	}
	t, err := p.toModel()
	if err != nil {
		return err
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.Context())
	defer cancel()

	id, err := db.CreateTransaction(ctx, s.db, t)
	if err != nil {
		return s.fail(c, err)
	}
	return created(c, id)
}

func (s *Server) editTransaction(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var p txnPayload
	if err := s.parseBody(c, &p); err != nil {
		return err
	}
	t, err := p.toModel()
	if err != nil {
		return err
	}
	t.ID = id

	ctx, cancel := ctxutil.WithDBTimeout(c.Context())
	defer cancel()

	if err := db.UpdateTransaction(ctx, s.db, t); err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) deleteTransaction(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.Context())
	defer cancel()

	if err := db.DeactivateTransaction(ctx, s.db, id); err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// verifyTransaction — односторонняя отметка сверки: назад не снимается.
func (s *Server) verifyTransaction(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.Context())
	defer cancel()

	if err := db.VerifyTransaction(ctx, s.db, id); err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) exportTransactions(c *fiber.Ctx) error {
	f, err := s.txnFilter(c)
	if err != nil {
		return err
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.Context())
	defer cancel()

	txns, totals, err := db.ListTransactions(ctx, s.db, f)
	if err != nil {
		return s.fail(c, err)
	}

	data, err := export.WorkbookBytes([]export.SheetSpec{export.TransactionSheet(txns, totals)})
	if err != nil {
		return s.fail(c, err)
	}
	return sendXLSX(c, "операции_"+time.Now().In(s.cfg.Location).Format("2006-01-02")+".xlsx", data)
}

func sendXLSX(c *fiber.Ctx, filename string, data []byte) error {
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
