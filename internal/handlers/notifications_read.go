package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"panascoop/internal/present"
)

// ReadNotification godoc
// @Summary Отметить уведомление прочитанным
// @Tags notifications
// @Produce json
// @Param id path string true "ID уведомления"
// @Success 200 {object} handlers.UnreadResponse
// @Failure 404 {object} ErrorResponse
// @Router /notifications/{id}/read [patch]
func ReadNotification(ad *present.Adapter) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if !ad.MarkRead(id) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "invalid notification"})
			return
		}
		c.JSON(http.StatusOK, UnreadResponse{Unread: ad.UnreadCount()})
	}
}
