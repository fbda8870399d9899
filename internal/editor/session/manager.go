package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"seatmap-service/internal/backend"
	"seatmap-service/internal/editor/persist"
	"seatmap-service/internal/editor/reservation"
)

// ============================================================
// Session Manager
// ============================================================

// Manager держит активные сессии редактирования. Сессия живет на одном
// инстансе сервиса и не разделяется.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	api      *backend.Client
	adapter  *persist.Adapter
	gridUnit float64
}

func NewManager(api *backend.Client, gridUnit float64) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		api:      api,
		adapter:  persist.New(api),
		gridUnit: gridUnit,
	}
}

// Open загружает сектор с апстрима и открывает сессию редактора раскладки.
func (m *Manager) Open(ctx context.Context, token, venueID, sectorID string) (*Session, error) {
	sec, err := m.adapter.Reload(ctx, token, venueID, sectorID)
	if err != nil {
		return nil, err
	}

	s := newSession(uuid.NewString(), ModeLayout, sec, m.adapter, m.gridUnit)
	m.put(s)
	return s, nil
}

// OpenReservation открывает сессию рассадки: та же модель раскладки
// плюс оверлей броней события.
func (m *Manager) OpenReservation(ctx context.Context, token, venueID, sectorID, eventID string) (*Session, error) {
	sec, err := m.adapter.Reload(ctx, token, venueID, sectorID)
	if err != nil {
		return nil, err
	}

	overlay := reservation.NewOverlay(m.api, eventID)
	if err := overlay.LoadReservations(ctx, token); err != nil {
		return nil, err
	}

	s := newSession(uuid.NewString(), ModeReservation, sec, m.adapter, m.gridUnit)
	s.EventID = eventID
	s.AttachOverlay(overlay)
	m.put(s)
	return s, nil
}

func (m *Manager) put(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
}

// Resolve находит сессию по идентификатору.
func (m *Manager) Resolve(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s, nil
}

// Close снимает сессию с учета и сбрасывает ее состояние ввода.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		s.Close()
	}
}

// SweepIdle закрывает сессии, к которым не обращались дольше maxIdle.
func (m *Manager) SweepIdle(maxIdle time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	closed := 0
	cutoff := time.Now().Add(-maxIdle)
	for id, s := range m.sessions {
		s.mu.Lock()
		idle := s.lastUsed.Before(cutoff)
		s.mu.Unlock()
		if idle {
			delete(m.sessions, id)
			closed++
		}
	}
	return closed
}

// Len возвращает число активных сессий.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
