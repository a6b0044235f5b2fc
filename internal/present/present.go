package present

import (
	"github.com/sirupsen/logrus"

	"panascoop/internal/models"
	"panascoop/internal/store"
)

// Alerter — необязательный платформенный алерт (системный баннер).
// Разрешение запрашивается один раз при создании адаптера; его
// отсутствие не влияет на путь данных.
type Alerter interface {
	RequestPermission() bool
	Alert(n models.Notification) error
}

// LogAlerter пишет алерты в лог; дев-режим без системных уведомлений.
type LogAlerter struct {
	Log *logrus.Logger
}

func (a *LogAlerter) RequestPermission() bool { return true }

func (a *LogAlerter) Alert(n models.Notification) error {
	if a.Log != nil {
		a.Log.Infof("notification: %s — %s", n.Title, n.Message)
	}
	return nil
}

// Adapter отдаёт производное состояние для UI. Собственной копии списка
// не держит — счётчики каждый раз пересчитываются из Store.
type Adapter struct {
	store   *store.Store
	alerter Alerter
	allowed bool
	log     *logrus.Logger
}

// New создаёт адаптер и единожды запрашивает разрешение на алерты.
func New(st *store.Store, alerter Alerter, log *logrus.Logger) *Adapter {
	if log == nil {
		log = logrus.New()
	}
	a := &Adapter{store: st, alerter: alerter, log: log}
	if alerter != nil {
		a.allowed = alerter.RequestPermission()
	}
	return a
}

// UnreadCount — число непрочитанных, живой пересчёт из Store.
func (a *Adapter) UnreadCount() int {
	count := 0
	for _, n := range a.store.List() {
		if !n.Read {
			count++
		}
	}
	return count
}

// HasNew сообщает, есть ли непрочитанные уведомления.
func (a *Adapter) HasNew() bool {
	return a.UnreadCount() > 0
}

// OpenPanel реализует контракт открытия панели: все непрочитанные
// помечаются прочитанными. Возвращает число помеченных.
func (a *Adapter) OpenPanel() int {
	return a.store.MarkAllRead()
}

// MarkRead делегирует в Store.
func (a *Adapter) MarkRead(id string) bool {
	return a.store.MarkRead(id)
}

// Remove делегирует в Store.
func (a *Adapter) Remove(id string) bool {
	return a.store.Remove(id)
}

// Clear делегирует в Store.
func (a *Adapter) Clear() {
	a.store.Clear()
}

// Notify поднимает платформенный алерт для принятой вставки.
// Ошибка алерта только логируется.
func (a *Adapter) Notify(n models.Notification) {
	if a.alerter == nil || !a.allowed {
		return
	}
	if err := a.alerter.Alert(n); err != nil {
		a.log.Warnf("alert: %v", err)
	}
}
