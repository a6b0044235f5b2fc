package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"panascoop/internal/models"
	"panascoop/internal/restapi"
)

// ListReminders godoc
// @Summary Список настроек напоминаний
// @Tags reminders
// @Produce json
// @Success 200 {array} models.ReminderConfig
// @Failure 502 {object} ErrorResponse
// @Router /reminders [get]
func ListReminders(api *restapi.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := api.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusBadGateway, ErrorResponse{Error: "backend error"})
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// PutReminder godoc
// @Summary Создать или обновить настройку напоминания
// @Description Срок напоминания 1–30 дней, проверяется до обращения к бэкенду.
// @Tags reminders
// @Accept json
// @Produce json
// @Param id path string false "ID настройки"
// @Param config body models.ReminderConfig true "настройка"
// @Success 200 {object} models.ReminderConfig
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /reminders/{id} [put]
func PutReminder(api *restapi.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var cfg models.ReminderConfig
		if err := c.ShouldBindJSON(&cfg); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
			return
		}
		if id := c.Param("id"); id != "" {
			cfg.ID = id
		}
		saved, err := api.Upsert(c.Request.Context(), cfg)
		if err != nil {
			var vErrs validator.ValidationErrors
			if errors.As(err, &vErrs) {
				c.JSON(http.StatusBadRequest, ErrorResponse{Error: "lead time must be between 1 and 30 days"})
				return
			}
			c.JSON(http.StatusBadGateway, ErrorResponse{Error: "backend error"})
			return
		}
		c.JSON(http.StatusOK, saved)
	}
}

// DeleteReminder godoc
// @Summary Удалить настройку напоминания
// @Tags reminders
// @Produce json
// @Param id path string true "ID настройки"
// @Success 200 {object} StatusResponse
// @Failure 502 {object} ErrorResponse
// @Router /reminders/{id} [delete]
func DeleteReminder(api *restapi.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := api.Delete(c.Request.Context(), c.Param("id")); err != nil {
			c.JSON(http.StatusBadGateway, ErrorResponse{Error: "backend error"})
			return
		}
		c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
	}
}
