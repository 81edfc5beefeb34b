package api

import (
	"time"

	"gorm.io/gorm"
)

const (
	authCookieName  = "sitterly_auth"
	contextUserKey  = "sitterly_user"
	defaultTokenTTL = 7 * 24 * time.Hour
)

// Mutating task operations share one per-user budget.
const (
	taskOpLimit  = 5
	taskOpWindow = 10 * time.Second
)

type Handler struct {
	db           *gorm.DB
	secretKey    []byte
	cookieSecure bool
	taskLimiter  *slidingLimiter

	deps handlerDependencies
}

func NewHandler(database *gorm.DB, secretKey string, cookieSecure bool) *Handler {
	handler := &Handler{
		db:           database,
		secretKey:    []byte(secretKey),
		cookieSecure: cookieSecure,
		taskLimiter:  newSlidingLimiter(),
	}
	handler.wireDependencies()
	return handler
}
