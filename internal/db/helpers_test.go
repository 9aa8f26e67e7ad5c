//go:build testutil
// +build testutil

package db_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/Spok95/school-backoffice/internal/db"
	"github.com/Spok95/school-backoffice/internal/models"
)

func mustSeedCourse(t *testing.T, database *sql.DB, start time.Time) int64 {
	t.Helper()
	ctx := context.Background()

	ctID, err := db.CreateCourseType(ctx, database, models.CourseType{
		Price: 100000, Length: 10, HourlyPrice: 10000, Level: string(models.Beginner),
	})
	if err != nil {
		t.Fatal(err)
	}
	courseID, err := db.CreateCourse(ctx, database, models.Course{
		CTypeID: ctID, StartDate: start,
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	return courseID
}

func mustSeedStudent(t *testing.T, database *sql.DB, name string) int64 {
	t.Helper()
	id, err := db.CreateStudent(context.Background(), database, models.Student{
		FName: name, Phone: "99110011",
	})
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func mustSeedTeacher(t *testing.T, database *sql.DB, name string, wage int64) int64 {
	t.Helper()
	id, err := db.CreateTeacher(context.Background(), database, models.Teacher{
		FName: name, LName: "Тест", Register: "РЕГ-" + name, Phone: "88110011",
		Birthday: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), HourlyWage: wage,
	})
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func mustSeedWorker(t *testing.T, database *sql.DB, name string, wage int64) int64 {
	t.Helper()
	id, err := db.CreateWorker(context.Background(), database, models.Worker{
		FName: name, LName: "Тест", Register: "РЕГ-" + name, Phone: "77110011",
		Birthday: time.Date(1992, 5, 5, 0, 0, 0, 0, time.UTC), MonthlyWage: wage,
	})
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func countClassRows(t *testing.T, database *sql.DB, studentID, courseID int64) int {
	t.Helper()
	var n int
	err := database.QueryRow(`SELECT COUNT(*) FROM classes WHERE student_id = $1 AND course_id = $2`,
		studentID, courseID).Scan(&n)
	if err != nil {
		t.Fatal(err)
	}
	return n
}
