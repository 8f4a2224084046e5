package leaverequest_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"leave-desk/internal/events"
	"leave-desk/internal/leaverequest"
	leaverequesterrors "leave-desk/internal/leaverequest/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepository struct {
	withTxFn              func(tx *sql.Tx) leaverequest.Repository
	createFn              func(ctx context.Context, l *leaverequest.LeaveRequest) error
	findAllFn             func(ctx context.Context, filter leaverequest.ListFilter) ([]leaverequest.LeaveRequest, error)
	findByIDFn            func(ctx context.Context, id uint) (*leaverequest.LeaveRequest, error)
	updateFn              func(ctx context.Context, l *leaverequest.LeaveRequest) error
	deleteByIDsFn         func(ctx context.Context, ids []uint) (int64, error)
	hasOverlappingRangeFn func(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error)
}

func (f *fakeRepository) WithTx(tx *sql.Tx) leaverequest.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeRepository) Create(ctx context.Context, l *leaverequest.LeaveRequest) error {
	if f.createFn != nil {
		return f.createFn(ctx, l)
	}
	return nil
}

func (f *fakeRepository) FindAll(ctx context.Context, filter leaverequest.ListFilter) ([]leaverequest.LeaveRequest, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, filter)
	}
	return nil, nil
}

func (f *fakeRepository) FindByID(ctx context.Context, id uint) (*leaverequest.LeaveRequest, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeRepository) Update(ctx context.Context, l *leaverequest.LeaveRequest) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, l)
	}
	return nil
}

func (f *fakeRepository) DeleteByIDs(ctx context.Context, ids []uint) (int64, error) {
	if f.deleteByIDsFn != nil {
		return f.deleteByIDsFn(ctx, ids)
	}
	return 0, nil
}

func (f *fakeRepository) HasOverlappingRange(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error) {
	if f.hasOverlappingRangeFn != nil {
		return f.hasOverlappingRangeFn(ctx, employeeID, startDate, endDate)
	}
	return false, nil
}

type fakePublisher struct {
	published []events.LeaveRequestLifecycleEvent
	err       error
}

func (f *fakePublisher) PublishLifecycle(_ context.Context, event events.LeaveRequestLifecycleEvent) error {
	f.published = append(f.published, event)
	return f.err
}

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   leaverequest.Service
	repo      *fakeRepository
	publisher *fakePublisher
}

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeRepository{}
	publisher := &fakePublisher{}
	svc := leaverequest.NewServiceWithPublisher(db, repo, publisher)

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		publisher: publisher,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("success forces pending and stores values untrimmed", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		req := validSubmission()
		req.Name = "  John Smith  "
		req.Comments = "  taking care of family matters  "

		deps.repo.hasOverlappingRangeFn = func(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error) {
			assert.Equal(t, "ATS0012", employeeID)
			assert.Equal(t, "2024-01-10", startDate.Format("2006-01-02"))
			assert.Equal(t, "2024-01-15", endDate.Format("2006-01-02"))
			return false, nil
		}
		deps.repo.createFn = func(ctx context.Context, l *leaverequest.LeaveRequest) error {
			assert.Equal(t, "  John Smith  ", l.Name)
			assert.Equal(t, "  taking care of family matters  ", l.Comments)
			assert.Equal(t, leaverequest.StatusPending, l.Status)
			l.ID = 42
			l.CreatedAt = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
			return nil
		}

		resp, err := deps.service.Submit(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, uint(42), resp.ID)
		assert.Equal(t, "  John Smith  ", resp.Name)
		assert.Equal(t, leaverequest.StatusPending, resp.Status)
		assert.Equal(t, "2024-01-10", resp.StartDate)
		assert.Equal(t, "2024-01-15", resp.EndDate)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())

		assert.Len(t, deps.publisher.published, 1)
		assert.Equal(t, events.EventLeaveRequestSubmitted, deps.publisher.published[0].EventType)
		assert.Equal(t, uint(42), deps.publisher.published[0].LeaveRequestID)
	})

	t.Run("overlap rejected before insert", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.hasOverlappingRangeFn = func(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error) {
			return true, nil
		}
		deps.repo.createFn = func(ctx context.Context, l *leaverequest.LeaveRequest) error {
			t.Fatal("create must not be called when the range overlaps")
			return nil
		}

		_, err := deps.service.Submit(ctx, validSubmission())

		assert.ErrorIs(t, err, leaverequesterrors.ErrDuplicateRequest)
		assert.Empty(t, deps.publisher.published)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("validation rejects before any persistence call", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		req := validSubmission()
		req.EmployeeID = "ATS12"

		deps.repo.hasOverlappingRangeFn = func(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error) {
			t.Fatal("overlap check must not run for an invalid submission")
			return false, nil
		}

		_, err := deps.service.Submit(ctx, req)

		assert.ErrorIs(t, err, leaverequesterrors.ErrInvalidEmployeeID)
		// No transaction was expected and none should have been opened.
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("overlap check failure surfaces", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		boom := errors.New("connection reset")
		deps.repo.hasOverlappingRangeFn = func(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error) {
			return false, boom
		}

		_, err := deps.service.Submit(ctx, validSubmission())

		assert.ErrorIs(t, err, boom)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("publisher failure does not fail the submission", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.publisher.err = errors.New("broker down")

		resp, err := deps.service.Submit(ctx, validSubmission())

		assert.NoError(t, err)
		assert.Equal(t, leaverequest.StatusPending, resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestService_GetAll(t *testing.T) {
	ctx := context.Background()

	deps := setupServiceTest(t)
	defer deps.db.Close()

	deps.repo.findAllFn = func(ctx context.Context, filter leaverequest.ListFilter) ([]leaverequest.LeaveRequest, error) {
		assert.Equal(t, "approved", filter.Status)
		assert.Equal(t, "ATS0002", filter.EmployeeID)
		return []leaverequest.LeaveRequest{
			{ID: 2, EmployeeID: "ATS0002", Status: "approved", CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
			{ID: 1, EmployeeID: "ATS0002", Status: "approved", CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		}, nil
	}

	resp, err := deps.service.GetAll(ctx, leaverequest.ListFilter{Status: "approved", EmployeeID: "ATS0002"})

	assert.NoError(t, err)
	assert.Len(t, resp, 2)
	// Repository ordering (created_at DESC) is preserved.
	assert.Equal(t, uint(2), resp[0].ID)
	assert.Equal(t, uint(1), resp[1].ID)
}

func TestService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id uint) (*leaverequest.LeaveRequest, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.GetByID(ctx, 7)

		assert.ErrorIs(t, err, leaverequesterrors.ErrLeaveRequestNotFound)
	})

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id uint) (*leaverequest.LeaveRequest, error) {
			assert.Equal(t, uint(7), id)
			return &leaverequest.LeaveRequest{ID: 7, EmployeeID: "ATS0001", Status: leaverequest.StatusPending}, nil
		}

		resp, err := deps.service.GetByID(ctx, 7)

		assert.NoError(t, err)
		assert.Equal(t, uint(7), resp.ID)
	})
}

func TestService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("pending is not a valid target", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.UpdateStatus(ctx, 1, leaverequest.StatusPending)

		assert.ErrorIs(t, err, leaverequesterrors.ErrInvalidStatus)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("approve overwrites regardless of current status", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDFn = func(ctx context.Context, id uint) (*leaverequest.LeaveRequest, error) {
			return &leaverequest.LeaveRequest{ID: id, EmployeeID: "ATS0001", Status: leaverequest.StatusRejected}, nil
		}
		deps.repo.updateFn = func(ctx context.Context, l *leaverequest.LeaveRequest) error {
			assert.Equal(t, leaverequest.StatusApproved, l.Status)
			return nil
		}

		resp, err := deps.service.UpdateStatus(ctx, 5, leaverequest.StatusApproved)

		assert.NoError(t, err)
		assert.Equal(t, leaverequest.StatusApproved, resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())

		assert.Len(t, deps.publisher.published, 1)
		assert.Equal(t, events.EventLeaveRequestApproved, deps.publisher.published[0].EventType)
	})

	t.Run("reject publishes the rejected event", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDFn = func(ctx context.Context, id uint) (*leaverequest.LeaveRequest, error) {
			return &leaverequest.LeaveRequest{ID: id, EmployeeID: "ATS0001", Status: leaverequest.StatusPending}, nil
		}

		resp, err := deps.service.UpdateStatus(ctx, 5, leaverequest.StatusRejected)

		assert.NoError(t, err)
		assert.Equal(t, leaverequest.StatusRejected, resp.Status)
		assert.Len(t, deps.publisher.published, 1)
		assert.Equal(t, events.EventLeaveRequestRejected, deps.publisher.published[0].EventType)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDFn = func(ctx context.Context, id uint) (*leaverequest.LeaveRequest, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.UpdateStatus(ctx, 99, leaverequest.StatusApproved)

		assert.ErrorIs(t, err, leaverequesterrors.ErrLeaveRequestNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestService_DeleteMany(t *testing.T) {
	ctx := context.Background()

	t.Run("empty selection rejected before the store", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.DeleteMany(ctx, nil)

		assert.ErrorIs(t, err, leaverequesterrors.ErrEmptySelection)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("missing ids are skipped, not errors", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.deleteByIDsFn = func(ctx context.Context, ids []uint) (int64, error) {
			assert.Equal(t, []uint{1, 2, 3}, ids)
			return 2, nil
		}

		deleted, err := deps.service.DeleteMany(ctx, []uint{1, 2, 3})

		assert.NoError(t, err)
		assert.Equal(t, int64(2), deleted)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())

		assert.Len(t, deps.publisher.published, 1)
		assert.Equal(t, events.EventLeaveRequestDeleted, deps.publisher.published[0].EventType)
		assert.Equal(t, []uint{1, 2, 3}, deps.publisher.published[0].DeletedIDs)
	})
}
