package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"dinebook/config"
	"dinebook/infras/jwt"
	"dinebook/infras/otel"
	"dinebook/internal/domains/auth/model/dto"
	userModel "dinebook/internal/domains/user/model"
	userRepo "dinebook/internal/domains/user/repository"
	"dinebook/shared"
	"dinebook/shared/constant"
	gDto "dinebook/shared/dto"
	"dinebook/shared/failure"
	"dinebook/shared/password"
	"dinebook/shared/timezone"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
)

var (
	errInvalidCredentials = failure.WithReason(http.StatusBadRequest, "invalid_credentials", "invalid email or password")
	errInvalidRefresh     = failure.Unauthorized("invalid refresh token")
	errEmailTaken         = failure.Conflict("email already registered")
	errDeactivated        = failure.Forbidden("user account is deactivated")
)

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) error
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) error
}

type serviceImpl struct {
	users  userRepo.User
	cfg    *config.Config
	otel   otel.Otel
	tokens jwt.JWT
}

func New(users userRepo.User, cfg *config.Config, otel otel.Otel, tokens jwt.JWT) Auth {
	return &serviceImpl{
		users:  users,
		cfg:    cfg,
		otel:   otel,
		tokens: tokens,
	}
}

func (s *serviceImpl) scope(ctx context.Context, operation string) (context.Context, otel.Scope) {
	return s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+"."+operation)
}

// find returns the user matching filter, or missing when there is none.
func (s *serviceImpl) find(ctx context.Context, filter gDto.FilterGroup, missing error) (userModel.User, error) {
	user, err := s.users.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return user, fmt.Errorf("failed to get user: %w", err)
	}

	if !user.Found() {
		return user, missing
	}

	return user, nil
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (err error) {
	ctx, scope := s.scope(ctx, "Register")
	defer scope.End()
	defer scope.TraceIfError(&err)

	taken, err := s.users.Exist(ctx, userRepo.ByEmail(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to check email")

		return fmt.Errorf("failed to check email: %w", err)
	}

	if taken {
		return errEmailTaken
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToUserModel(hashed)

	err = s.users.Insert(ctx, user)

	switch {
	case shared.IsPqError(err, constant.PqErrorCodeUniqueViolation):
		// lost a race with a concurrent registration
		return errEmailTaken
	case err != nil:
		log.Error().Err(err).Msg("failed to create user")

		return fmt.Errorf("failed to create user: %w", err)
	}

	log.Info().Str("user_id", user.ID).Msg("user registered")

	return nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.scope(ctx, "Login")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, err := s.find(ctx, userRepo.ByEmail(req.Email), errInvalidCredentials)
	if err != nil {
		return res, err
	}

	// unknown email and wrong password are indistinguishable to the caller
	if password.Verify(req.Password, user.Password) != nil {
		log.Warn().Str("user_id", user.ID).Msg("login with wrong password")

		return res, errInvalidCredentials
	}

	if !user.Active {
		return res, errDeactivated
	}

	pair, err := s.tokens.GenerateTokenPair(ctx, user.ID, user.Email, user.Level)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	s.touchLastLogin(ctx, user.ID)

	res.FromTokenPair(pair)
	res.User.FromModel(user)

	return res, nil
}

// touchLastLogin is best effort. A failed bookkeeping write does not fail the login.
func (s *serviceImpl) touchLastLogin(ctx context.Context, userID string) {
	fields := shared.TransformFields(dto.UpdateLastLoginRequest{LastLogin: timezone.Now()}, userID)

	if err := s.users.Update(ctx, fields, shared.FilterByID(userID, userModel.FieldID, userModel.TableName)); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("failed to update last login")
	}
}

// RefreshToken reissues the pair from the account's current state, so a role change or
// deactivation takes effect at the next refresh.
func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	ctx, scope := s.scope(ctx, "RefreshToken")
	defer scope.End()
	defer scope.TraceIfError(&err)

	claims, err := s.tokens.ValidateToken(ctx, req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		log.Debug().Err(err).Msg("rejected refresh token")

		return res, errInvalidRefresh
	}

	user, err := s.find(ctx, shared.FilterByID(claims.UserID, userModel.FieldID, userModel.TableName), errInvalidRefresh)
	if err != nil {
		return res, err
	}

	if !user.Active {
		return res, errDeactivated
	}

	pair, err := s.tokens.GenerateTokenPair(ctx, user.ID, user.Email, user.Level)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.FromTokenPair(pair)

	return res, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.scope(ctx, "ChangePassword")
	defer scope.End()
	defer scope.TraceIfError(&err)

	userID := shared.UserID(ctx)
	if userID == constant.Empty {
		return failure.Unauthorized("authentication required")
	}

	filter := shared.FilterByID(userID, userModel.FieldID, userModel.TableName)

	user, err := s.find(ctx, filter, failure.NotFound("user not found"))
	if err != nil {
		return err
	}

	if password.Verify(req.CurrentPassword, user.Password) != nil {
		return failure.BadRequestFromString("current password is incorrect")
	}

	hashed, err := password.Hash(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err = s.users.Update(ctx, shared.TransformFields(dto.UpdatePasswordRequest{Password: hashed}, userID), filter); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
