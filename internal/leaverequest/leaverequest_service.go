package leaverequest

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"leave-desk/internal/events"
	leaverequesterrors "leave-desk/internal/leaverequest/errors"
	"leave-desk/internal/shared/contextutil"

	"go.uber.org/zap"
)

//go:generate mockgen -source=leaverequest_service.go -destination=mock/leaverequest_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, req SubmitLeaveRequest) (LeaveRequestResponse, error)
	GetAll(ctx context.Context, filter ListFilter) ([]LeaveRequestResponse, error)
	GetByID(ctx context.Context, id uint) (LeaveRequestResponse, error)
	UpdateStatus(ctx context.Context, id uint, status string) (LeaveRequestResponse, error)
	DeleteMany(ctx context.Context, ids []uint) (int64, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	publisher EventPublisher
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leaverequest.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leaverequest.service")
	}
	return &service{db: db, repo: repo, publisher: noopEventPublisher{}, logger: l}
}

func NewServiceWithPublisher(db *sql.DB, repo Repository, publisher EventPublisher, logger ...*zap.Logger) Service {
	s := NewService(db, repo, logger...).(*service)
	if publisher != nil {
		s.publisher = publisher
	}
	return s
}

// Submit runs validator -> overlap check -> insert. The Begin/Commit pair
// brackets the repository calls, but the gorm session executes on its own
// pool connection and the check and insert are two separate statements that
// are not atomic: two concurrent submissions for the same employee and range
// can both pass the check. The original system has the same window and it is
// kept as-is.
func (s *service) Submit(ctx context.Context, req SubmitLeaveRequest) (LeaveRequestResponse, error) {
	s.logger.Debug("submit leave request",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("employee_id", req.EmployeeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	validated, err := ValidateSubmission(req)
	if err != nil {
		s.logger.Warn("submit validation failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit begin tx failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	overlap, err := qtx.HasOverlappingRange(ctx, req.EmployeeID, validated.StartDate, validated.EndDate)
	if err != nil {
		s.logger.Error("submit overlap check failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	if overlap {
		s.logger.Warn("submit overlap detected",
			zap.String("employee_id", req.EmployeeID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveRequestResponse{}, leaverequesterrors.ErrDuplicateRequest
	}

	l := &LeaveRequest{
		Name:       req.Name,
		EmployeeID: req.EmployeeID,
		LeaveType:  req.LeaveType,
		StartDate:  validated.StartDate,
		EndDate:    validated.EndDate,
		Comments:   req.Comments,
		Status:     StatusPending,
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("submit persist failed", zap.Error(err))
		return LeaveRequestResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit commit failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	s.logger.Info("submit success",
		zap.Uint("leave_request_id", l.ID),
		zap.String("employee_id", l.EmployeeID),
	)

	s.publishLifecycle(ctx, events.LeaveRequestLifecycleEvent{
		EventType:      events.EventLeaveRequestSubmitted,
		LeaveRequestID: l.ID,
		EmployeeID:     l.EmployeeID,
		Status:         l.Status,
		OccurredAt:     time.Now().UTC(),
	})

	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, filter ListFilter) ([]LeaveRequestResponse, error) {
	requests, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("list leave requests failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) GetByID(ctx context.Context, id uint) (LeaveRequestResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveRequestResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*l), nil
}

// UpdateStatus overwrites the record's status with approved or rejected. The
// current status is deliberately not consulted: an already-approved record
// can be flipped to rejected and vice versa.
func (s *service) UpdateStatus(ctx context.Context, id uint, status string) (LeaveRequestResponse, error) {
	s.logger.Debug("update leave request status",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.Uint("leave_request_id", id),
		zap.String("target_status", status),
	)

	if status != StatusApproved && status != StatusRejected {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidStatus
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update status begin tx failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		return LeaveRequestResponse{}, mapRepositoryError(err)
	}

	l.Status = status
	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("update status persist failed",
			zap.Uint("leave_request_id", id),
			zap.Error(err),
		)
		return LeaveRequestResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update status commit failed",
			zap.Uint("leave_request_id", id),
			zap.Error(err),
		)
		return LeaveRequestResponse{}, err
	}
	s.logger.Info("update status success",
		zap.Uint("leave_request_id", id),
		zap.String("status", status),
	)

	eventType := events.EventLeaveRequestApproved
	if status == StatusRejected {
		eventType = events.EventLeaveRequestRejected
	}
	s.publishLifecycle(ctx, events.LeaveRequestLifecycleEvent{
		EventType:      eventType,
		LeaveRequestID: l.ID,
		EmployeeID:     l.EmployeeID,
		Status:         status,
		OccurredAt:     time.Now().UTC(),
	})

	return mapToResponse(*l), nil
}

// DeleteMany removes all existing records among ids and returns the number
// actually deleted. Ids that do not exist are skipped, not reported as
// errors.
func (s *service) DeleteMany(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, leaverequesterrors.ErrEmptySelection
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete many begin tx failed", zap.Error(err))
		return 0, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	deleted, err := qtx.DeleteByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("delete many persist failed", zap.Error(err))
		return 0, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete many commit failed", zap.Error(err))
		return 0, err
	}
	s.logger.Info("delete many success",
		zap.Int("requested", len(ids)),
		zap.Int64("deleted", deleted),
	)

	s.publishLifecycle(ctx, events.LeaveRequestLifecycleEvent{
		EventType:  events.EventLeaveRequestDeleted,
		DeletedIDs: ids,
		OccurredAt: time.Now().UTC(),
	})

	return deleted, nil
}

// publishLifecycle is best effort: a broker failure is logged and never
// surfaces to the API caller.
func (s *service) publishLifecycle(ctx context.Context, event events.LeaveRequestLifecycleEvent) {
	if err := s.publisher.PublishLifecycle(ctx, event); err != nil {
		s.logger.Warn("publish lifecycle event failed",
			zap.String("event_type", event.EventType),
			zap.Error(err),
		)
	}
}

// DeleteResultMessage is the wire text the bulk delete endpoint returns.
func DeleteResultMessage(deleted int64) string {
	return fmt.Sprintf("%d record(s) deleted successfully", deleted)
}
