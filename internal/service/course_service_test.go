package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/course-service/internal/storage"
	apperrors "github.com/spec-kit/course-service/pkg/util"
)

func videoFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", "video/mp4")
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}

func newTestCourseService(t *testing.T, repo *fakeCourseRepo) (*CourseService, string) {
	t.Helper()
	dir := t.TempDir()
	return NewCourseService(repo, storage.NewDiskStore(dir, 1024*1024)), dir
}

func TestCourseService_Publish(t *testing.T) {
	t.Parallel()

	repo := &fakeCourseRepo{}
	svc, dir := newTestCourseService(t, repo)

	input := PublishInput{
		Name:        "Intro",
		Description: "Basics",
		Price:       9.99,
		Preview:     videoFileHeader(t, "sample.mp4", []byte("preview")),
		FullVideo:   videoFileHeader(t, "sample2.mp4", []byte("full-video")),
	}

	course, err := svc.Publish(context.Background(), input, "http://host")
	require.NoError(t, err)

	assert.NotEmpty(t, course.ID)
	assert.Equal(t, "Intro", course.Name)
	assert.Equal(t, 9.99, course.Price)
	assert.True(t, strings.HasPrefix(course.PreviewURL, "http://host/uploads/"))
	assert.True(t, strings.HasPrefix(course.FullVideoURL, "http://host/uploads/"))
	assert.True(t, strings.HasSuffix(course.FullVideoURL, "-sample2.mp4"))

	// Both media URLs must resolve to files under the upload root.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	require.Len(t, repo.courses, 1)
}

func TestCourseService_Publish_MissingInputs(t *testing.T) {
	t.Parallel()

	repo := &fakeCourseRepo{}
	svc, dir := newTestCourseService(t, repo)

	valid := func(t *testing.T) PublishInput {
		return PublishInput{
			Name:        "Intro",
			Description: "Basics",
			Price:       9.99,
			Preview:     videoFileHeader(t, "a.mp4", []byte("a")),
			FullVideo:   videoFileHeader(t, "b.mp4", []byte("b")),
		}
	}

	tests := []struct {
		name   string
		mutate func(*PublishInput)
	}{
		{name: "missing name", mutate: func(in *PublishInput) { in.Name = "" }},
		{name: "missing description", mutate: func(in *PublishInput) { in.Description = "" }},
		{name: "negative price", mutate: func(in *PublishInput) { in.Price = -1 }},
		{name: "missing preview", mutate: func(in *PublishInput) { in.Preview = nil }},
		{name: "missing full video", mutate: func(in *PublishInput) { in.FullVideo = nil }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			input := valid(t)
			tt.mutate(&input)

			_, err := svc.Publish(context.Background(), input, "http://host")
			require.Error(t, err)

			var domainErr *apperrors.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
		})
	}

	assert.Empty(t, repo.courses, "no partial record may be persisted")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCourseService_Publish_StoreFault(t *testing.T) {
	t.Parallel()

	repo := &fakeCourseRepo{err: errors.New("connection refused")}
	svc, _ := newTestCourseService(t, repo)

	_, err := svc.Publish(context.Background(), PublishInput{
		Name:        "Intro",
		Description: "Basics",
		Price:       1,
		Preview:     videoFileHeader(t, "a.mp4", []byte("a")),
		FullVideo:   videoFileHeader(t, "b.mp4", []byte("b")),
	}, "http://host")
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "PERSISTENCE_ERROR", domainErr.Code)
	assert.Equal(t, 500, domainErr.HTTPStatus)
}

func TestCourseService_GetByID(t *testing.T) {
	t.Parallel()

	repo := &fakeCourseRepo{}
	svc, _ := newTestCourseService(t, repo)
	ctx := context.Background()

	published, err := svc.Publish(ctx, PublishInput{
		Name:        "Intro",
		Description: "Basics",
		Price:       1,
		Preview:     videoFileHeader(t, "a.mp4", []byte("a")),
		FullVideo:   videoFileHeader(t, "b.mp4", []byte("b")),
	}, "http://host")
	require.NoError(t, err)

	found, err := svc.GetByID(ctx, published.ID)
	require.NoError(t, err)
	assert.Equal(t, published.ID, found.ID)

	_, err = svc.GetByID(ctx, "not-a-uuid")
	require.Error(t, err)
	assert.Equal(t, "INVALID_IDENTIFIER", domainCode(t, err))

	_, err = svc.GetByID(ctx, uuid.NewString())
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", domainCode(t, err))
}

func TestCourseService_List(t *testing.T) {
	t.Parallel()

	repo := &fakeCourseRepo{}
	svc, _ := newTestCourseService(t, repo)
	ctx := context.Background()

	courses, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, courses)

	_, err = svc.Publish(ctx, PublishInput{
		Name:        "Intro",
		Description: "Basics",
		Price:       1,
		Preview:     videoFileHeader(t, "a.mp4", []byte("a")),
		FullVideo:   videoFileHeader(t, "b.mp4", []byte("b")),
	}, "http://host")
	require.NoError(t, err)

	courses, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Intro", courses[0].Name)
}

func TestCourseService_List_StoreFault(t *testing.T) {
	t.Parallel()

	svc, _ := newTestCourseService(t, &fakeCourseRepo{err: errors.New("down")})

	_, err := svc.List(context.Background())
	require.Error(t, err)
	assert.Equal(t, "PERSISTENCE_ERROR", domainCode(t, err))
}
