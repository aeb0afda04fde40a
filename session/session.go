package session

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Session hält das Bearer-Token der aktuellen Anmeldung. Das Token wird
// in einer Datei persistiert, damit ein Neustart die Anmeldung überlebt —
// mehr lokaler Zustand existiert nicht.
type Session struct {
	mu     sync.RWMutex
	token  string
	path   string
	logger *zap.Logger
}

// New erstellt eine Session und stellt ein ggf. persistiertes Token wieder her.
func New(path string, logger *zap.Logger) *Session {
	s := &Session{path: path, logger: logger}
	data, err := os.ReadFile(path)
	if err == nil {
		s.token = strings.TrimSpace(string(data))
		logger.Info("Restored persisted session token")
	}
	return s
}

// Token gibt das aktuelle Bearer-Token zurück; leer, wenn nicht angemeldet.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Set übernimmt ein neues Token (Login) und persistiert es.
func (s *Session) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		s.logger.Warn("Failed to persist session token", zap.Error(err))
	}
}

// Clear verwirft das Token (Logout) und löscht die persistierte Datei.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("Failed to remove session token file", zap.Error(err))
	}
}

// Authenticated meldet, ob ein Token vorhanden ist.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}
