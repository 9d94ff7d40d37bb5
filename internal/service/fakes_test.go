package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/course-service/internal/domain"
	"github.com/spec-kit/course-service/internal/repository"
)

type fakeUserRepo struct {
	byEmail   map[string]*domain.User
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, exists := r.byEmail[user.Email]; exists {
		return repository.ErrDuplicateEmail
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	stored := *user
	r.byEmail[user.Email] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	for _, user := range r.byEmail {
		if user.ID == id {
			found := *user
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	found := *user
	return &found, nil
}

type fakeAdminRepo struct {
	byUsername map[string]*domain.Admin
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{byUsername: make(map[string]*domain.Admin)}
}

func (r *fakeAdminRepo) Create(_ context.Context, admin *domain.Admin) error {
	admin.ID = uuid.NewString()
	admin.CreatedAt = time.Now()
	stored := *admin
	r.byUsername[admin.Username] = &stored
	return nil
}

func (r *fakeAdminRepo) GetByUsername(_ context.Context, username string) (*domain.Admin, error) {
	admin, ok := r.byUsername[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	found := *admin
	return &found, nil
}

func (r *fakeAdminRepo) UpdatePasswordHash(_ context.Context, id, passwordHash string) error {
	for _, admin := range r.byUsername {
		if admin.ID == id {
			admin.PasswordHash = passwordHash
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeAdminRepo) UpdateToken(_ context.Context, id, token string) error {
	for _, admin := range r.byUsername {
		if admin.ID == id {
			admin.CurrentToken = &token
			return nil
		}
	}
	return pgx.ErrNoRows
}

type fakeTokenCache struct {
	tokens map[string]string
}

func newFakeTokenCache() *fakeTokenCache {
	return &fakeTokenCache{tokens: make(map[string]string)}
}

func (c *fakeTokenCache) Set(_ context.Context, username, token string, _ time.Duration) error {
	c.tokens[username] = token
	return nil
}

func (c *fakeTokenCache) Get(_ context.Context, username string) (string, error) {
	token, ok := c.tokens[username]
	if !ok {
		return "", errors.New("cache miss")
	}
	return token, nil
}

type fakeCourseRepo struct {
	courses []domain.Course
	err     error
}

func (r *fakeCourseRepo) Create(_ context.Context, course *domain.Course) error {
	if r.err != nil {
		return r.err
	}
	course.ID = uuid.NewString()
	course.CreatedAt = time.Now()
	r.courses = append(r.courses, *course)
	return nil
}

func (r *fakeCourseRepo) List(_ context.Context) ([]domain.Course, error) {
	if r.err != nil {
		return nil, r.err
	}
	return append([]domain.Course(nil), r.courses...), nil
}

func (r *fakeCourseRepo) GetByID(_ context.Context, id string) (*domain.Course, error) {
	if r.err != nil {
		return nil, r.err
	}
	for i := range r.courses {
		if r.courses[i].ID == id {
			found := r.courses[i]
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}
