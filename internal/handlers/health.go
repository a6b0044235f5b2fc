package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"panascoop/internal/connmgr"
	"panascoop/internal/store"
)

// Health godoc
// @Summary Состояние демона и соединения с брокером
// @Tags health
// @Produce json
// @Success 200 {object} StatusResponse
// @Router /health [get]
func Health(mgr *connmgr.Manager, st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, StatusResponse{
			Status:     "ok",
			Connection: string(mgr.Status()),
			UserID:     st.UserID(),
		})
	}
}
