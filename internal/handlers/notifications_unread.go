package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"panascoop/internal/present"
)

// UnreadCountResponse — счётчик непрочитанных и флаг новых уведомлений.
type UnreadCountResponse struct {
	Count  int  `json:"count"`
	HasNew bool `json:"hasNew"`
}

// UnreadCount godoc
// @Summary Счётчик непрочитанных уведомлений
// @Tags notifications
// @Produce json
// @Success 200 {object} handlers.UnreadCountResponse
// @Router /notifications/unread-count [get]
func UnreadCount(ad *present.Adapter) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, UnreadCountResponse{
			Count:  ad.UnreadCount(),
			HasNew: ad.HasNew(),
		})
	}
}
