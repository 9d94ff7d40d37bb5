package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/course-service/internal/domain"
)

// CourseRepository defines persistence access for published courses.
type CourseRepository interface {
	Create(ctx context.Context, course *domain.Course) error
	List(ctx context.Context) ([]domain.Course, error)
	GetByID(ctx context.Context, id string) (*domain.Course, error)
}

type courseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository returns a Postgres-backed implementation.
func NewCourseRepository(pool *pgxpool.Pool) CourseRepository {
	return &courseRepository{pool: pool}
}

func (r *courseRepository) Create(ctx context.Context, course *domain.Course) error {
	const query = `
        INSERT INTO courses (name, description, price, preview_url, full_video_url)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		course.Name,
		course.Description,
		course.Price,
		course.PreviewURL,
		course.FullVideoURL,
	).Scan(&course.ID, &course.CreatedAt)
}

func (r *courseRepository) List(ctx context.Context) ([]domain.Course, error) {
	const query = `
        SELECT id, name, description, price, preview_url, full_video_url, created_at
        FROM courses ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Course
	for rows.Next() {
		var course domain.Course
		if err := rows.Scan(
			&course.ID,
			&course.Name,
			&course.Description,
			&course.Price,
			&course.PreviewURL,
			&course.FullVideoURL,
			&course.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, course)
	}
	return result, rows.Err()
}

func (r *courseRepository) GetByID(ctx context.Context, id string) (*domain.Course, error) {
	const query = `
        SELECT id, name, description, price, preview_url, full_video_url, created_at
        FROM courses WHERE id=$1`

	var course domain.Course
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&course.ID,
		&course.Name,
		&course.Description,
		&course.Price,
		&course.PreviewURL,
		&course.FullVideoURL,
		&course.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &course, nil
}
