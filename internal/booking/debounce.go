package booking

import (
	"sync"
	"time"
)

// Debouncer перезапускает таймер на каждый ввод адреса: геокодируем не раньше,
// чем пользователь замолчал на delay. Flush запускает действие немедленно
// (кнопка «Пересчитать» обходит дебаунс).
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
	fn    func()
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger (пере)ставит таймер; предыдущий несработавший отменяется.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.fn = fn
	d.timer = time.AfterFunc(d.delay, fn)
}

// Flush отменяет ожидание и выполняет последнее действие сразу. Действие
// остаётся запомненным: повторный Flush («Пересчитать» ещё раз) выполняет
// его снова.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	fn := d.fn
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Stop отменяет ожидание без выполнения.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.fn = nil
}
