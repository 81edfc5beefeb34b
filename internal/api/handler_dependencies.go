package api

import (
	"github.com/sablegrove/sitterly/internal/db"
	"github.com/sablegrove/sitterly/internal/services"
)

type handlerDependencies struct {
	repositories  *db.Repositories
	auth          *services.AuthService
	groups        *services.GroupService
	tasks         *services.TaskService
	claims        *services.ClaimService
	visibility    *services.VisibilityService
	invites       *services.InviteService
	notifications *services.NotificationService
}

func (handler *Handler) wireDependencies() {
	repositories := db.NewRepositories(handler.db)
	notifications := services.NewNotificationService(repositories.Notifications, repositories.Invites)

	handler.deps = handlerDependencies{
		repositories:  repositories,
		auth:          services.NewAuthService(repositories.Users),
		groups:        services.NewGroupService(repositories.Groups, repositories.Pets, repositories.Invites, notifications),
		tasks:         services.NewTaskService(repositories.Tasks, repositories.Groups, notifications),
		claims:        services.NewClaimService(repositories.Tasks, notifications),
		visibility:    services.NewVisibilityService(repositories.Tasks),
		invites:       services.NewInviteService(repositories.Invites, repositories.Groups, notifications),
		notifications: notifications,
	}
}
