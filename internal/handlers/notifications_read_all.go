package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"panascoop/internal/present"
)

// NotificationsReadAllResponse — ответ на массовое чтение уведомлений.
type NotificationsReadAllResponse struct {
	Count int `json:"count"`
}

// ReadAllNotifications godoc
// @Summary Отметить все уведомления прочитанными (открытие панели)
// @Tags notifications
// @Produce json
// @Success 200 {object} handlers.NotificationsReadAllResponse
// @Router /notifications/read-all [post]
func ReadAllNotifications(ad *present.Adapter) gin.HandlerFunc {
	return func(c *gin.Context) {
		count := ad.OpenPanel()
		c.JSON(http.StatusOK, NotificationsReadAllResponse{Count: count})
	}
}
