package session

import (
	"github.com/sirupsen/logrus"

	"panascoop/internal/connmgr"
	"panascoop/internal/models"
	"panascoop/internal/present"
	"panascoop/internal/store"
)

// Session связывает менеджер соединения, Store и адаптер презентации
// в явный жизненный цикл Init/Dispose вместо неявных глобальных
// провайдеров.
type Session struct {
	manager *connmgr.Manager
	store   *store.Store
	adapter *present.Adapter
	log     *logrus.Logger
}

// New собирает сессию из готовых компонентов.
func New(manager *connmgr.Manager, st *store.Store, adapter *present.Adapter, log *logrus.Logger) *Session {
	if log == nil {
		log = logrus.New()
	}
	return &Session{manager: manager, store: st, adapter: adapter, log: log}
}

// Init начинает сессию пользователя: загружает его сохранённые
// уведомления, подписывается на события брокера и подключается.
// Смена пользователя — это Dispose предыдущей сессии и Init новой.
func (s *Session) Init(userID string) {
	s.store.Load(userID)
	s.manager.OnEvent(func(raw models.RawEvent) {
		if n, ok := s.store.Ingest(raw); ok {
			s.adapter.Notify(n)
		}
	})
	s.manager.Connect(userID)
	s.log.Infof("session started for %q", userID)
}

// Dispose завершает сессию: рвёт соединение и очищает список в памяти.
// Сохранённая запись пользователя остаётся и восстановится при
// следующем Init в пределах окна хранения.
func (s *Session) Dispose() {
	s.manager.Disconnect()
	s.store.Reset()
	s.log.Info("session disposed")
}

// Store возвращает хранилище сессии.
func (s *Session) Store() *store.Store { return s.store }

// Adapter возвращает адаптер презентации сессии.
func (s *Session) Adapter() *present.Adapter { return s.adapter }

// Manager возвращает менеджер соединения сессии.
func (s *Session) Manager() *connmgr.Manager { return s.manager }
