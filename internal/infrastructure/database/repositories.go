package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/carebridge/billing-service/internal/adapter/repository"
)

// Repositories holds all repository instances
type Repositories struct {
	Webhook repository.WebhookRepository
}

// NewRepositories creates new repository instances with database connection
func NewRepositories(db *gorm.DB, logger *zap.Logger) *Repositories {
	return &Repositories{
		Webhook: repository.NewWebhookRepository(db, logger),
	}
}
