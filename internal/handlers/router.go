package handlers

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"panascoop/internal/connmgr"
	"panascoop/internal/present"
	"panascoop/internal/restapi"
	"panascoop/internal/store"
)

// NewRouter собирает локальный управляющий API, которым пользуется UI.
func NewRouter(mgr *connmgr.Manager, st *store.Store, ad *present.Adapter, api *restapi.Client, allowedOrigin string) *gin.Engine {
	r := gin.Default()
	if allowedOrigin != "" {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  []string{allowedOrigin},
			AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
			AllowHeaders:  []string{"Content-Type", "Authorization"},
			ExposeHeaders: []string{"Content-Length"},
			MaxAge:        12 * time.Hour,
		}))
	}

	r.GET("/health", Health(mgr, st))

	n := r.Group("/notifications")
	n.GET("", ListNotifications(st))
	n.GET("/unread-count", UnreadCount(ad))
	n.PATCH("/:id/read", ReadNotification(ad))
	n.POST("/read-all", ReadAllNotifications(ad))
	n.DELETE("/:id", RemoveNotification(ad))
	n.DELETE("", ClearNotifications(ad))

	if api != nil {
		rm := r.Group("/reminders")
		rm.GET("", ListReminders(api))
		rm.POST("", PutReminder(api))
		rm.PUT("/:id", PutReminder(api))
		rm.DELETE("/:id", DeleteReminder(api))
	}

	return r
}
