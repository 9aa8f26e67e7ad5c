package app

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"github.com/Spok95/school-backoffice/internal/config"
)

const testSecret = "test-secret"

// сервер без БД: до обработчиков эти запросы дойти не должны,
// проверяется только цепочка прав на маршрутах
func testServer() *Server {
	cfg := &config.Config{
		JWTSecret:      testSecret,
		Location:       time.UTC,
		ClassChangeFee: 88000,
	}
	return New(cfg, nil, zap.NewNop())
}

func signToken(t *testing.T, perms []string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"perms": perms,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatal(err)
	}
	return token
}

// Начисление зарплаты живёт под /teachers, но право на него — у
// бухгалтерии, а не у ведущего анкеты. Проверка прав группы не должна
// цеплять этот маршрут по префиксу.
func TestTeacherSalaryRouteNeedsOnlyAccounting(t *testing.T) {
	srv := testServer()
	token := signToken(t, []string{"accounting"})

	// тело намеренно пустое: пройдя права, запрос падает на разборе
	// тела (400), а не на 403
	req := httptest.NewRequest("POST", "/api/teachers/salary", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := srv.App().Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode == fiber.StatusForbidden || resp.StatusCode == fiber.StatusUnauthorized {
		t.Fatalf("бухгалтерский токен не прошёл на начисление: %d", resp.StatusCode)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("ожидался 400 на пустом теле, получили %d", resp.StatusCode)
	}
}

func TestTeacherCRUDNeedsMain(t *testing.T) {
	srv := testServer()

	// бухгалтерии анкеты преподавателей не видны
	req := httptest.NewRequest("GET", "/api/teachers/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, []string{"accounting"}))
	resp, err := srv.App().Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("анкеты без права main: %d, ожидался 403", resp.StatusCode)
	}

	// и наоборот: main не начисляет зарплату
	req = httptest.NewRequest("POST", "/api/teachers/salary", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, []string{"main"}))
	resp, err = srv.App().Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("начисление с правом main: %d, ожидался 403", resp.StatusCode)
	}
}
