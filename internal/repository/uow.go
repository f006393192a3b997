package repository

import (
	"gorm.io/gorm"
)

// GormUnitOfWork implements UnitOfWork on top of a gorm transaction
type GormUnitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork creates a new unit of work backed by the given database
func NewUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

// Do runs fn inside a single database transaction. The repositories handed
// to fn all share that transaction; returning an error rolls everything back.
func (u *GormUnitOfWork) Do(fn func(tx *TxRepositories) error) error {
	return u.db.Transaction(func(tx *gorm.DB) error {
		return fn(&TxRepositories{
			Users:         NewUserRepository(tx),
			Projects:      NewProjectRepository(tx),
			Requests:      NewFormationRequestRepository(tx),
			Groups:        NewGroupRepository(tx),
			Approvals:     NewApprovalTaskRepository(tx),
			Notifications: NewNotificationRepository(tx),
		})
	})
}
