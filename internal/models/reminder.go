package models

// ReminderConfig — запись настройки напоминания на бэкенде.
// Идентификатор генерируется клиентом, запись создаётся и обновляется
// идемпотентным upsert.
// swagger:model
type ReminderConfig struct {
	ID           string `json:"id"`
	TaskID       string `json:"taskId" validate:"required"`
	LeadTimeDays int    `json:"leadTimeDays" validate:"required,min=1,max=30"`
}
