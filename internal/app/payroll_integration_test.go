//go:build testutil
// +build testutil

package app

import (
	"context"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Spok95/school-backoffice/internal/config"
	"github.com/Spok95/school-backoffice/internal/db"
	"github.com/Spok95/school-backoffice/internal/models"
	"github.com/Spok95/school-backoffice/internal/testutil/testdb"
)

// Сумма начисления сотруднику приходит из формы: бухгалтер может
// начислить не оклад, а произвольную сумму (аванс, урезанный месяц).
func TestWorkerSalaryBatchUsesSubmittedWage(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()
	ctx := context.Background()

	workerID, err := db.CreateWorker(ctx, h.DB, models.Worker{
		FName: "Ганаа", LName: "Тест", Register: "РЕГ-Г", Phone: "77110011",
		Birthday: time.Date(1992, 5, 5, 0, 0, 0, 0, time.UTC), MonthlyWage: 900000,
	})
	if err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{
		JWTSecret:      testSecret,
		Location:       time.UTC,
		ClassChangeFee: 88000,
	}
	srv := New(cfg, h.DB, zap.NewNop())
	token := signToken(t, []string{"accounting"})

	body := `{"year":2026,"month":"JANUARY","shift":"FIRST",` +
		`"items":[{"worker_id":` + strconv.FormatInt(workerID, 10) + `,"wage":750000}]}`
	req := httptest.NewRequest("POST", "/api/workers/salary", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.App().Test(req, 30000)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("начисление не прошло: %d", resp.StatusCode)
	}

	list, err := db.ListSalaries(ctx, h.DB, db.SalaryFilter{Kind: "worker"})
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Fatalf("строк начислений: %d, ожидалась одна", len(list))
	}
	// записана сумма из формы, не оклад из анкеты
	if list[0].Salary != 750000 {
		t.Fatalf("salary = %d, ожидалось 750000", list[0].Salary)
	}
}
