package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"panascoop/internal/present"
)

// RemoveNotification godoc
// @Summary Удалить уведомление
// @Tags notifications
// @Produce json
// @Param id path string true "ID уведомления"
// @Success 200 {object} handlers.UnreadResponse
// @Failure 404 {object} ErrorResponse
// @Router /notifications/{id} [delete]
func RemoveNotification(ad *present.Adapter) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if !ad.Remove(id) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "invalid notification"})
			return
		}
		c.JSON(http.StatusOK, UnreadResponse{Unread: ad.UnreadCount()})
	}
}

// ClearNotifications godoc
// @Summary Очистить все уведомления пользователя
// @Description Удаляет список и сохранённую запись пользователя целиком.
// @Tags notifications
// @Produce json
// @Success 200 {object} handlers.UnreadResponse
// @Router /notifications [delete]
func ClearNotifications(ad *present.Adapter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ad.Clear()
		c.JSON(http.StatusOK, UnreadResponse{Unread: 0})
	}
}
