package leaverequest

import (
	"net/http"
	"strconv"

	leaverequesterrors "leave-desk/internal/leaverequest/errors"
	"leave-desk/internal/shared/apperror"
	"leave-desk/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leaverequest.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leaverequest.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.Error(err),
	)
	response.Error(c, httpErr.Status, httpErr.Message)
}

func (h *Handler) Submit(c *gin.Context) {
	var req SubmitLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http submit bind failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, resp)
}

func (h *Handler) GetAll(c *gin.Context) {
	filter := ListFilter{
		Status:     c.Query("status"),
		EmployeeID: c.Query("employee_id"),
	}

	resp, err := h.service.GetAll(c.Request.Context(), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, resp)
}

func (h *Handler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, resp)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update status bind failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, leaverequesterrors.ErrInvalidStatus.Message)
		return
	}

	resp, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, resp)
}

func (h *Handler) DeleteMany(c *gin.Context) {
	var req BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http delete bind failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, leaverequesterrors.ErrEmptySelection.Message)
		return
	}

	deleted, err := h.service.DeleteMany(c.Request.Context(), req.IDs)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Message(c, http.StatusOK, DeleteResultMessage(deleted))
}

// pathID parses the :id segment. A non-numeric id cannot address any record,
// so it is reported the same way as a missing one.
func (h *Handler) pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusNotFound, leaverequesterrors.ErrLeaveRequestNotFound.Message)
		return 0, false
	}
	return uint(id), true
}
