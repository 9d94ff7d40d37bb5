package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/course-service/internal/api/dto"
	"github.com/spec-kit/course-service/internal/service"
	apperrors "github.com/spec-kit/course-service/pkg/util"
)

// CoursesHandler exposes the course catalog endpoints.
type CoursesHandler struct {
	service *service.CourseService
}

// NewCoursesHandler constructs handler.
func NewCoursesHandler(courseService *service.CourseService) *CoursesHandler {
	return &CoursesHandler{service: courseService}
}

// Publish handles POST /courses (multipart form).
func (h *CoursesHandler) Publish(c *fiber.Ctx) error {
	name := c.FormValue("courseName")
	description := c.FormValue("description")
	priceStr := c.FormValue("price")
	if name == "" || description == "" || priceStr == "" {
		return apperrors.NewValidationError("courseName, description, price required", nil)
	}

	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil {
		return apperrors.NewValidationError("price must be numeric", nil)
	}

	preview, err := c.FormFile("videoPreview")
	if err != nil {
		return apperrors.NewValidationError("videoPreview file required", nil)
	}
	full, err := c.FormFile("fullVideo")
	if err != nil {
		return apperrors.NewValidationError("fullVideo file required", nil)
	}

	course, err := h.service.Publish(c.Context(), service.PublishInput{
		Name:        name,
		Description: description,
		Price:       price,
		Preview:     preview,
		FullVideo:   full,
	}, c.BaseURL())
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "course created",
		"course":  dto.NewCourseResponse(course),
	})
}

// List handles GET /courses.
func (h *CoursesHandler) List(c *fiber.Ctx) error {
	courses, err := h.service.List(c.Context())
	if err != nil {
		return err
	}

	items := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		items = append(items, dto.NewCourseResponse(&courses[i]))
	}
	return c.JSON(items)
}

// Get handles GET /courses/:id.
func (h *CoursesHandler) Get(c *fiber.Ctx) error {
	course, err := h.service.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewCourseResponse(course))
}
