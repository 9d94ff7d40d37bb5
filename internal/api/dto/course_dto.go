package dto

import (
	"time"

	"github.com/spec-kit/course-service/internal/domain"
)

// CourseResponse is the JSON shape for a published course.
type CourseResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	VideoPreview string    `json:"videoPreview"`
	FullVideo    string    `json:"fullVideo"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewCourseResponse maps the domain model to its JSON shape.
func NewCourseResponse(course *domain.Course) CourseResponse {
	return CourseResponse{
		ID:           course.ID,
		Name:         course.Name,
		Description:  course.Description,
		Price:        course.Price,
		VideoPreview: course.PreviewURL,
		FullVideo:    course.FullVideoURL,
		CreatedAt:    course.CreatedAt,
	}
}
