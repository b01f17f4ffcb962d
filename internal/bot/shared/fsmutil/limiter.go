package fsmutil

import "sync"

// Chats — общий замок чатов. Под ним выполняются и обработчики апдейтов
// (диспетчер запускает каждый в своей горутине), и фоновые горутины,
// дописывающие состояние сценария после сетевого вызова. Сам сетевой вызов
// под замок не берём: зависший запрос не должен блокировать чат целиком.
var Chats = NewChatLimiter()

// ChatLimiter предотвращает одновременную обработку двух апдейтов одного чата.
type ChatLimiter struct {
	mu   sync.Mutex
	byID map[int64]*sync.Mutex
}

func NewChatLimiter() *ChatLimiter {
	return &ChatLimiter{byID: make(map[int64]*sync.Mutex)}
}

func (l *ChatLimiter) lock(chatID int64) func() {
	l.mu.Lock()
	m, ok := l.byID[chatID]
	if !ok {
		m = &sync.Mutex{}
		l.byID[chatID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return func() { m.Unlock() }
}

// Do выполняет fn под замком чата. Замок не реентерабельный: код, уже
// работающий под Do, не должен вызывать Do того же чата.
func (l *ChatLimiter) Do(chatID int64, fn func()) {
	unlock := l.lock(chatID)
	defer unlock()
	fn()
}
