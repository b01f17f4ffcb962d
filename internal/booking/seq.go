package booking

import "sync"

// SlotFetchSeq — монотонный номер запроса слотов на чат. Ответ с номером
// меньше текущего устарел (пользователь уже поменял курс/машину/дату) и
// должен быть отброшен, а не перезаписать более новое состояние.
type SlotFetchSeq struct {
	mu  sync.Mutex
	cur map[int64]uint64
}

func NewSlotFetchSeq() *SlotFetchSeq {
	return &SlotFetchSeq{cur: make(map[int64]uint64)}
}

// Next выдаёт номер очередного запроса для чата.
func (s *SlotFetchSeq) Next(chatID int64) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur[chatID]++
	return s.cur[chatID]
}

// IsCurrent — ответ ещё актуален (никто не запрашивал слоты позже).
func (s *SlotFetchSeq) IsCurrent(chatID int64, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur[chatID] == seq
}
