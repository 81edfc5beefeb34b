package db

import "gorm.io/gorm"

type Repositories struct {
	Users         *UserRepository
	Pets          *PetRepository
	Groups        *GroupRepository
	Invites       *InviteRepository
	Tasks         *TaskRepository
	Notifications *NotificationRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:         NewUserRepository(database),
		Pets:          NewPetRepository(database),
		Groups:        NewGroupRepository(database),
		Invites:       NewInviteRepository(database),
		Tasks:         NewTaskRepository(database),
		Notifications: NewNotificationRepository(database),
	}
}
