package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Spok95/school-backoffice/internal/models"
)

func CreateCourseType(ctx context.Context, database *sql.DB, ct models.CourseType) (int64, error) {
	var id int64
	err := database.QueryRowContext(ctx, `
INSERT INTO course_types (price, length, hourly_price, level, info)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`,
		ct.Price, ct.Length, ct.HourlyPrice, ct.Level, ct.Info).Scan(&id)
	return id, err
}

func GetCourseTypeByID(ctx context.Context, database *sql.DB, id int64) (*models.CourseType, error) {
	row := database.QueryRowContext(ctx, `
SELECT id, price, length, hourly_price, level, info, is_active
FROM course_types WHERE id = $1`, id)

	var ct models.CourseType
	err := row.Scan(&ct.ID, &ct.Price, &ct.Length, &ct.HourlyPrice, &ct.Level, &ct.Info, &ct.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ct, nil
}

// ListCourseTypes отдаёт только активные шаблоны — удалённые уровни в
// формах не предлагаются.
func ListCourseTypes(ctx context.Context, database *sql.DB, level string) ([]models.CourseType, error) {
	rows, err := database.QueryContext(ctx, `
SELECT id, price, length, hourly_price, level, info, is_active
FROM course_types
WHERE is_active AND ($1 = '' OR level ILIKE '%' || $1 || '%')
ORDER BY id`, level)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.CourseType
	for rows.Next() {
		var ct models.CourseType
		if err := rows.Scan(&ct.ID, &ct.Price, &ct.Length, &ct.HourlyPrice, &ct.Level, &ct.Info, &ct.IsActive); err != nil {
			return nil, err
		}
		result = append(result, ct)
	}
	return result, rows.Err()
}

func UpdateCourseType(ctx context.Context, database *sql.DB, ct models.CourseType) error {
	res, err := database.ExecContext(ctx, `
UPDATE course_types SET price = $1, length = $2, hourly_price = $3, level = $4, info = $5
WHERE id = $6`,
		ct.Price, ct.Length, ct.HourlyPrice, ct.Level, ct.Info, ct.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func DeactivateCourseType(ctx context.Context, database *sql.DB, id int64) error {
	return deactivate(ctx, database, "course_types", id)
}
