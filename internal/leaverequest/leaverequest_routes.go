package leaverequest

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the leave-request endpoints on the /api group.
// submitGuards are applied to the submission endpoint only (e.g. the
// Redis idempotency middleware when a broker is configured).
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	submitGuards ...gin.HandlerFunc,
) {
	requests := r.Group("/leave-requests")
	{
		requests.GET("", handler.GetAll)
		requests.GET("/:id", handler.GetByID)
		requests.POST("", append(submitGuards, handler.Submit)...)
		requests.PUT("/:id", handler.UpdateStatus)
		requests.DELETE("", handler.DeleteMany)
	}
}
