package usecase

import (
	"context"

	"vet-clinic/internal/converter"
	"vet-clinic/internal/delivery/dto"
	"vet-clinic/internal/domain/entity"
	"vet-clinic/internal/domain/repository"
	"vet-clinic/internal/service"
	"vet-clinic/pkg/clock"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type UserUsecase interface {
	GetUsers(ctx context.Context, activeOnly bool) (*dto.UserListResponse, error)
	DeleteUser(ctx context.Context, adminID, userID uuid.UUID) error
}

type userUsecase struct {
	log          *logrus.Logger
	clock        clock.Clock
	userRepo     repository.UserRepository
	tokenStore   service.TokenStore
	auditService service.AuditService
}

func NewUserUsecase(
	log *logrus.Logger,
	clk clock.Clock,
	userRepo repository.UserRepository,
	tokenStore service.TokenStore,
	auditService service.AuditService,
) UserUsecase {
	return &userUsecase{
		log:          log,
		clock:        clk,
		userRepo:     userRepo,
		tokenStore:   tokenStore,
		auditService: auditService,
	}
}

func (u *userUsecase) GetUsers(ctx context.Context, activeOnly bool) (*dto.UserListResponse, error) {
	var (
		users []entity.User
		err   error
	)
	if activeOnly {
		users, err = u.userRepo.FindAllByStatus(ctx, entity.UserStatusActive)
	} else {
		users, err = u.userRepo.FindAll(ctx)
	}
	if err != nil {
		u.log.Warnf("Failed to find users: %+v", err)
		return nil, err
	}

	return &dto.UserListResponse{
		Users: converter.UsersToResponses(users),
		Total: len(users),
	}, nil
}

// DeleteUser soft deletes the user together with their pets and upcoming
// appointments, then revokes their tokens.
func (u *userUsecase) DeleteUser(ctx context.Context, adminID, userID uuid.UUID) error {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", userID, err)
		return err
	}
	if user == nil || !user.IsActive() {
		return ErrUserNotFound
	}

	if err := u.userRepo.SoftDelete(ctx, userID, u.clock.Now()); err != nil {
		u.log.Warnf("Failed to delete user %s: %+v", userID, err)
		return err
	}

	if err := u.tokenStore.RevokeAll(ctx, userID); err != nil {
		u.log.Warnf("Failed to revoke tokens of deleted user %s: %+v", userID, err)
	}

	u.auditService.LogDelete(ctx, &adminID, entity.AuditActionUserDelete, "user", userID.String(), converter.UserToResponse(user))

	u.log.Infof("User deleted: id=%s", userID)
	return nil
}
