package connmgr

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"panascoop/internal/models"
)

// State — состояние соединения с брокером.
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
)

// Брокер присылает уведомления под несколькими именами событий,
// все они считаются эквивалентными.
var eventAliases = map[string]bool{
	"notification":     true,
	"NOTIFICATION":     true,
	"new_notification": true,
}

const (
	eventAuth = "auth"
	eventPing = "ping"
	eventPong = "pong"
)

// frame — кадр протокола брокера.
type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type authPayload struct {
	UserID string `json:"userId"`
}

// Options задаёт интервалы менеджера; нулевые значения заменяются
// значениями по умолчанию.
type Options struct {
	HeartbeatInterval time.Duration
	PongWait          time.Duration
	AuthRetryDelay    time.Duration
	ReconnectDelay    time.Duration
	ReconnectMaxDelay time.Duration
	MaxReconnects     int
}

func (o *Options) defaults() {
	if o.HeartbeatInterval <= 0 {
		o.HeartbeatInterval = 30 * time.Second
	}
	if o.PongWait <= 0 {
		o.PongWait = 5 * time.Second
	}
	if o.AuthRetryDelay <= 0 {
		o.AuthRetryDelay = 5 * time.Second
	}
	if o.ReconnectDelay <= 0 {
		o.ReconnectDelay = time.Second
	}
	if o.ReconnectMaxDelay <= 0 {
		o.ReconnectMaxDelay = 5 * time.Second
	}
	if o.MaxReconnects <= 0 {
		o.MaxReconnects = 15
	}
}

// Manager держит не более одного живого соединения с брокером уведомлений:
// подключение, аутентификация канала пользователя, heartbeat и
// ограниченное автоматическое переподключение. Ошибки транспорта наружу
// не поднимаются, они видны только как смена состояния.
type Manager struct {
	url  string
	opts Options
	log  *logrus.Logger

	mu         sync.Mutex
	state      State
	conn       *websocket.Conn
	userID     string
	handler    func(models.RawEvent)
	stopCh     chan struct{}
	pongCh     chan struct{}
	authTimer  *time.Timer
	reconTimer *time.Timer
	gen        int
	attempts   int
	manual     bool
}

// New создаёт менеджер для адреса брокера.
func New(url string, opts Options, log *logrus.Logger) *Manager {
	opts.defaults()
	if log == nil {
		log = logrus.New()
	}
	return &Manager{url: url, opts: opts, log: log, state: StateDisconnected}
}

// OnEvent регистрирует единственный обработчик нормализованных событий.
func (m *Manager) OnEvent(h func(models.RawEvent)) {
	m.mu.Lock()
	m.handler = h
	m.mu.Unlock()
}

// Status возвращает текущее состояние, не блокируясь на сетевых операциях.
func (m *Manager) Status() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Connect идемпотентно подключает пользователя: при живом соединении
// повторно шлётся только auth-сообщение, второй транспорт не открывается.
// Ошибки подключения не возвращаются — менеджер сам уходит в
// переподключение.
func (m *Manager) Connect(userID string) {
	m.mu.Lock()
	m.userID = userID
	m.manual = false
	m.attempts = 0
	switch m.state {
	case StateConnected:
		m.sendLocked(eventAuth, authPayload{UserID: userID})
		m.mu.Unlock()
		return
	case StateConnecting:
		m.mu.Unlock()
		return
	}
	m.state = StateConnecting
	m.mu.Unlock()
	go m.dial()
}

// Disconnect рвёт соединение и отменяет все таймеры. Безопасен для
// повторных вызовов и при отсутствии соединения; автоматического
// переподключения после него не будет до следующего Connect.
func (m *Manager) Disconnect() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.manual = true
	if m.reconTimer != nil {
		m.reconTimer.Stop()
		m.reconTimer = nil
	}
	m.teardownLocked()
}

func (m *Manager) dial() {
	conn, _, err := websocket.DefaultDialer.Dial(m.url, nil)

	m.mu.Lock()
	if m.manual {
		m.mu.Unlock()
		if conn != nil {
			conn.Close()
		}
		return
	}
	if err != nil {
		m.log.Warnf("broker dial: %v", err)
		m.state = StateDisconnected
		m.scheduleReconnectLocked()
		m.mu.Unlock()
		return
	}

	m.conn = conn
	m.state = StateConnected
	m.attempts = 0
	m.stopCh = make(chan struct{})
	m.pongCh = make(chan struct{}, 1)
	m.gen++
	gen := m.gen
	stop := m.stopCh

	m.sendLocked(eventAuth, authPayload{UserID: m.userID})
	// Повтор auth на случай не завершившегося на сервере join, отправка идемпотентна.
	m.authTimer = time.AfterFunc(m.opts.AuthRetryDelay, func() {
		m.mu.Lock()
		if m.gen == gen && m.state == StateConnected {
			m.sendLocked(eventAuth, authPayload{UserID: m.userID})
		}
		m.mu.Unlock()
	})
	m.mu.Unlock()

	go m.readLoop(conn, gen)
	go m.heartbeat(stop)
}

// readLoop читает кадры до ошибки транспорта, раскладывает алиасы
// событий в один нормализованный вид и отдаёт их обработчику.
func (m *Manager) readLoop(conn *websocket.Conn, gen int) {
	for {
		var f frame
		if err := conn.ReadJSON(&f); err != nil {
			break
		}
		switch {
		case f.Event == eventPong:
			m.mu.Lock()
			ch := m.pongCh
			m.mu.Unlock()
			if ch != nil {
				select {
				case ch <- struct{}{}:
				default:
				}
			}
		case eventAliases[f.Event]:
			var raw models.RawEvent
			if len(f.Data) > 0 {
				if err := json.Unmarshal(f.Data, &raw); err != nil {
					m.log.Warnf("event decode: %v", err)
					continue
				}
			}
			m.mu.Lock()
			h := m.handler
			m.mu.Unlock()
			if h != nil {
				h(raw)
			}
		}
	}

	m.mu.Lock()
	if m.gen != gen {
		// Соединение уже разобрано явным Disconnect.
		m.mu.Unlock()
		return
	}
	m.teardownLocked()
	if !m.manual {
		m.scheduleReconnectLocked()
	}
	m.mu.Unlock()
}

// heartbeat шлёт ping с фиксированным интервалом и ждёт pong
// ограниченное время; отсутствие ответа не вешает цикл.
func (m *Manager) heartbeat(stop chan struct{}) {
	ticker := time.NewTicker(m.opts.HeartbeatInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.mu.Lock()
			m.sendLocked(eventPing, nil)
			pong := m.pongCh
			m.mu.Unlock()
			select {
			case <-pong:
			case <-time.After(m.opts.PongWait):
				m.log.Warn("pong timeout")
			case <-stop:
				return
			}
		case <-stop:
			return
		}
	}
}

// teardownLocked закрывает соединение и отменяет таймеры текущей сессии.
// Каждый путь разборки обязан пройти здесь, иначе отставший таймер
// выстрелит по мёртвому соединению.
func (m *Manager) teardownLocked() {
	if m.authTimer != nil {
		m.authTimer.Stop()
		m.authTimer = nil
	}
	if m.stopCh != nil {
		close(m.stopCh)
		m.stopCh = nil
	}
	if m.conn != nil {
		m.conn.Close()
		m.conn = nil
	}
	m.gen++
	m.state = StateDisconnected
}

// scheduleReconnectLocked планирует следующую попытку с растущей
// задержкой; после MaxReconnects попыток менеджер остаётся отключённым
// до следующего явного Connect.
func (m *Manager) scheduleReconnectLocked() {
	if m.attempts >= m.opts.MaxReconnects {
		m.log.Warnf("reconnect attempts exhausted after %d tries", m.attempts)
		return
	}
	m.attempts++
	delay := time.Duration(m.attempts) * m.opts.ReconnectDelay
	if delay > m.opts.ReconnectMaxDelay {
		delay = m.opts.ReconnectMaxDelay
	}
	m.reconTimer = time.AfterFunc(delay, func() {
		m.mu.Lock()
		if m.manual || m.state != StateDisconnected {
			m.mu.Unlock()
			return
		}
		m.state = StateConnecting
		m.mu.Unlock()
		m.dial()
	})
}

// sendLocked пишет кадр в соединение; вызывается только под мьютексом.
// Ошибка записи логируется, обрыв заметит цикл чтения.
func (m *Manager) sendLocked(event string, data any) {
	if m.conn == nil {
		return
	}
	f := frame{Event: event}
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			m.log.Warnf("frame encode: %v", err)
			return
		}
		f.Data = b
	}
	if err := m.conn.WriteJSON(f); err != nil {
		m.log.Warnf("frame write: %v", err)
	}
}
