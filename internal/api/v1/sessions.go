package v1

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"ledgerlens/internal/model"
)

const sessionTTL = 30 * time.Minute

// uploadSession 一次上传的会话：保留解析后的表格供多轮对齐/重分析
type uploadSession struct {
	table       *model.Table
	filename    string
	sheetName   string
	headerRow   int
	fingerprint string
	expiresAt   time.Time
}

type uploadSessionStore struct {
	mu    sync.Mutex
	items map[string]uploadSession
}

func newUploadSessionStore() *uploadSessionStore {
	return &uploadSessionStore{
		items: make(map[string]uploadSession),
	}
}

func (s *uploadSessionStore) put(session uploadSession) (token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())

	token = uuid.NewString()
	session.expiresAt = time.Now().Add(sessionTTL)
	s.items[token] = session
	return token
}

func (s *uploadSessionStore) get(token string) (uploadSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())

	v, ok := s.items[token]
	if !ok {
		return uploadSession{}, false
	}
	if time.Now().After(v.expiresAt) {
		delete(s.items, token)
		return uploadSession{}, false
	}
	return v, true
}

func (s *uploadSessionStore) purgeExpiredLocked(now time.Time) {
	for k, v := range s.items {
		if now.After(v.expiresAt) {
			delete(s.items, k)
		}
	}
}
