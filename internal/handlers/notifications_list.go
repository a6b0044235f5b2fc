package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"panascoop/internal/models"
	"panascoop/internal/store"
)

// ListNotifications godoc
// @Summary Список уведомлений активного пользователя
// @Tags notifications
// @Produce json
// @Param limit query int false "лимит"
// @Param offset query int false "смещение"
// @Success 200 {array} models.Notification
// @Router /notifications [get]
func ListNotifications(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := parsePagination(c)
		list := st.List()
		if offset >= len(list) {
			c.JSON(http.StatusOK, []models.Notification{})
			return
		}
		end := offset + limit
		if end > len(list) {
			end = len(list)
		}
		c.JSON(http.StatusOK, list[offset:end])
	}
}
