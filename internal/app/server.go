package app

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Spok95/school-backoffice/internal/app/middleware"
	"github.com/Spok95/school-backoffice/internal/config"
	"github.com/Spok95/school-backoffice/internal/ctxutil"
	"github.com/Spok95/school-backoffice/internal/metrics"
)

// Server — HTTP-поверхность бэк-офиса. Бизнес-логика живёт в db и
// pricing/payroll, здесь только разбор запросов и маршрутизация.
type Server struct {
	app      *fiber.App
	db       *sql.DB
	cfg      *config.Config
	log      *zap.Logger
	validate *validator.Validate
}

func New(cfg *config.Config, database *sql.DB, log *zap.Logger) *Server {
	s := &Server{
		db:       database,
		cfg:      cfg,
		log:      log,
		validate: validator.New(),
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           90 * time.Second,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(s.requestLog)

	app.Get("/healthz", s.handleHealth)
	app.Get("/metrics", adaptorHTTP(metrics.Handler()))

	api := app.Group("/api", middleware.Auth(cfg.JWTSecret))

	students := api.Group("/students", middleware.RequirePermission("s_composer"))
	students.Get("/", s.listStudents)
	students.Post("/", s.addStudent)
	students.Get("/:id", s.studentDetail)
	students.Put("/:id", s.editStudent)
	students.Delete("/:id", s.deleteStudent)
	students.Post("/:id/contract", s.addContractForStudent)
	students.Post("/:id/level", s.addStudentLevel)

	ctypes := api.Group("/course_types", middleware.RequirePermission("main"))
	ctypes.Get("/", s.listCourseTypes)
	ctypes.Post("/", s.addCourseType)
	ctypes.Put("/:id", s.editCourseType)
	ctypes.Delete("/:id", s.deleteCourseType)

	courses := api.Group("/courses", middleware.RequirePermission("main"))
	courses.Get("/", s.listCourses)
	courses.Post("/", s.addCourse)
	courses.Get("/:id", s.courseDetail)
	courses.Put("/:id", s.editCourse)
	courses.Delete("/:id", s.deleteCourse)

	contracts := api.Group("/contracts", middleware.RequirePermission("main"))
	contracts.Get("/", s.listContracts)
	contracts.Post("/", s.addContract)
	contracts.Get("/:id", s.contractDetail)
	contracts.Post("/:id/payment", s.addContractPayment)
	contracts.Post("/:id/change", s.changeContractCourse)
	contracts.Delete("/:id", s.deleteContract)

	// /teachers делится между двумя ролями: анкеты ведёт main, а
	// начисление зарплаты — только бухгалтерия. Право вешается на
	// маршрут, а не на группу, иначе проверка группы по префиксу
	// зацепит и /teachers/salary.
	teachers := api.Group("/teachers")
	mainOnly := middleware.RequirePermission("main")
	teachers.Get("/", mainOnly, s.listTeachers)
	teachers.Post("/", mainOnly, s.addTeacher)
	teachers.Post("/salary", middleware.RequirePermission("accounting"), s.runTeacherSalaryBatch)
	teachers.Get("/:id", mainOnly, s.teacherDetail)
	teachers.Put("/:id", mainOnly, s.editTeacher)
	teachers.Delete("/:id", mainOnly, s.deleteTeacher)

	workers := api.Group("/workers", middleware.RequirePermission("accounting"))
	workers.Get("/", s.listWorkers)
	workers.Post("/", s.addWorker)
	workers.Get("/:id", s.workerDetail)
	workers.Put("/:id", s.editWorker)
	workers.Delete("/:id", s.deleteWorker)
	workers.Post("/salary", s.runWorkerSalaryBatch)

	salaries := api.Group("/salaries", middleware.RequirePermission("accounting"))
	salaries.Get("/", s.listSalaries)
	salaries.Get("/export", s.exportSalaries)

	txns := api.Group("/transactions", middleware.RequirePermission("accounting"))
	txns.Get("/", s.listTransactions)
	txns.Get("/export", s.exportTransactions)
	txns.Post("/", s.addTransaction)
	txns.Put("/:id", s.editTransaction)
	txns.Delete("/:id", s.deleteTransaction)
	txns.Post("/:id/verify", s.verifyTransaction)

	levels := api.Group("/student_levels", middleware.RequirePermission("s_composer"))
	levels.Get("/", s.listStudentLevels)
	levels.Put("/:id", s.editStudentLevel)
	levels.Delete("/:id", s.deleteStudentLevel)

	s.app = app
	return s
}

func (s *Server) Listen(addr string) error { return s.app.Listen(addr) }

func (s *Server) Shutdown(ctx context.Context) error { return s.app.ShutdownWithContext(ctx) }

// App отдаёт fiber.App — нужно тестам.
func (s *Server) App() *fiber.App { return s.app }

func (s *Server) handleHealth(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 800*time.Millisecond)
	defer cancel()
	t0 := time.Now()
	if err := s.db.PingContext(ctx); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).SendString("db not ok: " + err.Error())
	}
	metrics.ObserveDBPing(time.Since(t0))
	return c.SendString("ok")
}

// requestLog — request-id + тайминг каждого запроса.
func (s *Server) requestLog(c *fiber.Ctx) error {
	id := c.Get("X-Request-ID")
	if id == "" {
		id = uuid.NewString()
	}
	c.Set("X-Request-ID", id)
	c.SetUserContext(ctxutil.WithRequestID(c.UserContext(), id))

	start := time.Now()
	err := c.Next()
	status := c.Response().StatusCode()
	metrics.HTTPRequests.WithLabelValues(c.Method(), statusClass(status)).Inc()
	s.log.Info("запрос",
		zap.String("reqid", id),
		zap.String("method", c.Method()),
		zap.String("path", c.OriginalURL()),
		zap.Int("status", status),
		zap.Duration("dur", time.Since(start)),
	)
	return err
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	default:
		return "2xx"
	}
}
