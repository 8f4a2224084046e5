package leaverequest

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leaverequest_repo.go -destination=mock/leaverequest_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindAll(ctx context.Context, filter ListFilter) ([]LeaveRequest, error)
	FindByID(ctx context.Context, id uint) (*LeaveRequest, error)
	Update(ctx context.Context, l *LeaveRequest) error
	DeleteByIDs(ctx context.Context, ids []uint) (int64, error)
	HasOverlappingRange(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx carries the caller's transaction handle alongside the gorm session;
// statements still execute on the session's own pool connection.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]LeaveRequest, error) {
	db := r.db.WithContext(ctx).Model(&LeaveRequest{})
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.EmployeeID != "" {
		db = db.Where("employee_id = ?", filter.EmployeeID)
	}

	var requests []LeaveRequest
	err := db.Order("created_at DESC").Find(&requests).Error
	return requests, err
}

func (r *repository) FindByID(ctx context.Context, id uint) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) Update(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *repository) DeleteByIDs(ctx context.Context, ids []uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&LeaveRequest{}, "id IN ?", ids)
	return res.RowsAffected, res.Error
}

// HasOverlappingRange reports whether any non-rejected request of the same
// employee intersects [startDate, endDate]. Boundaries are inclusive: a
// shared single day counts as an overlap.
func (r *repository) HasOverlappingRange(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("employee_id = ?", employeeID).
		Where("status <> ?", StatusRejected).
		Where("start_date <= ? AND end_date >= ?", endDate, startDate).
		Count(&count).Error
	return count > 0, err
}
