package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"dinebook/config"
	"dinebook/infras/otel/mocks"
	userMocks "dinebook/internal/domains/user/mocks"
	"dinebook/internal/domains/user/model"
	"dinebook/internal/domains/user/model/dto"
	"dinebook/internal/domains/user/service"
	s3Mocks "dinebook/infras/s3/mocks"
	cacheMocks "dinebook/shared/cache/mocks"
	"dinebook/shared/constant"
	gDto "dinebook/shared/dto"
	"dinebook/shared/failure"
)

var errCacheMiss = errors.New("cache miss")

func newService(ctrl *gomock.Controller) (service.User, *userMocks.MockUser, *cacheMocks.MockRedisCache) {
	svc, repo, cache, _ := newServiceWithStorage(ctrl)

	return svc, repo, cache
}

func newServiceWithStorage(ctrl *gomock.Controller) (service.User, *userMocks.MockUser, *cacheMocks.MockRedisCache, *s3Mocks.MockS3) {
	repo := userMocks.NewMockUser(ctrl)
	cache := cacheMocks.NewMockRedisCache(ctrl)
	storage := s3Mocks.NewMockS3(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return service.New(repo, cfg, cache, storage, mocks.NewOtel()), repo, cache, storage
}

func asUser(id, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, id)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func strPtr(s string) *string {
	return &s
}

func TestUserService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, _ := newService(ctrl)
	ctx := asUser("admin-1", constant.RoleAdmin)

	t.Run("success", func(t *testing.T) {
		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		res, err := svc.Create(ctx, dto.CreateUserRequest{Email: " New@Example.com ", Password: "password123"})

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, "new@example.com", res.Email)
		assert.Equal(t, constant.RoleUser, res.Level)
		assert.Equal(t, "admin-1", res.CreatedBy)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := svc.Create(ctx, dto.CreateUserRequest{Email: "taken@example.com", Password: "password123"})

		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("admin cannot mint a superadmin", func(t *testing.T) {
		_, err := svc.Create(ctx, dto.CreateUserRequest{
			Email:    "boss@example.com",
			Password: "password123",
			Level:    constant.RoleSuperAdmin,
		})

		assert.Equal(t, 403, failure.GetCode(err))
	})
}

func TestUserService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, cache := newService(ctrl)
	params := gDto.QueryParams{Page: 1, Limit: 2, SortBy: "password", SortDir: "ASC"}

	cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss)
	repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.User, error) {
			assert.NotEqual(t, "password", p.SortBy)

			return []model.User{{ID: "u1", Email: "a@example.com"}, {ID: "u2", Email: "b@example.com"}}, nil
		})

	res, err := svc.GetAll(context.Background(), params, dto.ListFilter{Level: constant.RoleUser})

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
	assert.Equal(t, 3, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
	assert.Len(t, res.Users, 2)
}

func TestUserService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, cache := newService(ctrl)

	t.Run("cache hit", func(t *testing.T) {
		cache.EXPECT().Get(gomock.Any(), "user:get:u1", gomock.Any()).Return(nil)

		_, err := svc.Get(context.Background(), "u1")

		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss)
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)

		_, err := svc.Get(context.Background(), "missing")

		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestUserService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, _ := newService(ctrl)
	ctx := asUser("admin-1", constant.RoleAdmin)
	inactive := false

	t.Run("empty request", func(t *testing.T) {
		err := svc.Update(ctx, "u1", dto.UpdateUserRequest{})

		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("deactivate another user", func(t *testing.T) {
		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, &inactive, fields[model.FieldActive])
				assert.Equal(t, "admin-1", fields[constant.FieldModifiedBy])

				return nil
			})

		err := svc.Update(ctx, "u1", dto.UpdateUserRequest{Active: &inactive})

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("deactivate self", func(t *testing.T) {
		err := svc.Update(ctx, "admin-1", dto.UpdateUserRequest{Active: &inactive})

		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("promote to superadmin as admin", func(t *testing.T) {
		err := svc.Update(ctx, "u1", dto.UpdateUserRequest{Level: strPtr(constant.RoleSuperAdmin)})

		assert.Equal(t, 403, failure.GetCode(err))
	})

	t.Run("missing user", func(t *testing.T) {
		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Update(ctx, "ghost", dto.UpdateUserRequest{Level: strPtr(constant.RoleAdmin)})

		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestUserService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, _ := newService(ctrl)
	ctx := asUser("admin-1", constant.RoleAdmin)

	t.Run("success", func(t *testing.T) {
		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		err := svc.Delete(ctx, "u1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("self", func(t *testing.T) {
		err := svc.Delete(ctx, "admin-1")

		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("repository error", func(t *testing.T) {
		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("db down"))

		err := svc.Delete(ctx, "u1")

		assert.ErrorContains(t, err, "db down")
	})
}

func TestUserService_Profile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, cache := newService(ctrl)

	t.Run("anonymous", func(t *testing.T) {
		_, err := svc.GetProfile(context.Background())

		assert.Equal(t, 401, failure.GetCode(err))
	})

	t.Run("get", func(t *testing.T) {
		cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss)
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "u1", Email: "me@example.com"}, nil)

		res, err := svc.GetProfile(asUser("u1", constant.RoleUser))

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, "me@example.com", res.Email)
	})

	t.Run("update", func(t *testing.T) {
		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		err := svc.UpdateProfile(asUser("u1", constant.RoleUser), dto.UpdateProfileRequest{FullName: strPtr("Ana Silva")})

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})
}

func TestUserService_UpdateProfileAvatar(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, _, storage := newServiceWithStorage(ctrl)
	ctx := asUser("u1", constant.RoleUser)

	t.Run("avatar is stored and linked", func(t *testing.T) {
		storage.EXPECT().PutObject(gomock.Any(), "avatars", "u1.png", "image/png", []byte("png")).
			Return("https://cdn.test/avatars/u1.png", nil)
		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				image, ok := fields[model.FieldProfileImage].(*string)
				assert.True(t, ok)
				assert.Equal(t, "https://cdn.test/avatars/u1.png", *image)
				assert.NotContains(t, fields, "avatar")

				return nil
			})

		err := svc.UpdateProfile(ctx, dto.UpdateProfileRequest{Avatar: strPtr("data:image/png;base64,cG5n")})

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("malformed data uri", func(t *testing.T) {
		err := svc.UpdateProfile(ctx, dto.UpdateProfileRequest{Avatar: strPtr("not-a-data-uri")})

		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("upload failure", func(t *testing.T) {
		storage.EXPECT().PutObject(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", errors.New("bucket unavailable"))

		err := svc.UpdateProfile(ctx, dto.UpdateProfileRequest{Avatar: strPtr("data:image/png;base64,cG5n")})

		assert.Equal(t, 500, failure.GetCode(err))
	})
}
