package booking

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerRestartsOnTrigger(t *testing.T) {
	var calls int32
	d := NewDebouncer(50 * time.Millisecond)

	// каждый новый ввод перезапускает таймер — сработать должен только последний
	for i := 0; i < 5; i++ {
		d.Trigger(func() { atomic.AddInt32(&calls, 1) })
		time.Sleep(10 * time.Millisecond)
	}
	time.Sleep(120 * time.Millisecond)

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("сработок %d, ожидали 1", got)
	}
}

func TestDebouncerFlushRunsImmediately(t *testing.T) {
	var calls int32
	d := NewDebouncer(time.Hour)
	d.Trigger(func() { atomic.AddInt32(&calls, 1) })
	d.Flush()
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("Flush не выполнил действие: %d", got)
	}
	// повторный Flush выполняет последнее действие ещё раз (ручной пересчёт)
	d.Flush()
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("повторный Flush должен выполнить действие снова: %d", got)
	}
}

func TestDebouncerStop(t *testing.T) {
	var calls int32
	d := NewDebouncer(30 * time.Millisecond)
	d.Trigger(func() { atomic.AddInt32(&calls, 1) })
	d.Stop()
	time.Sleep(80 * time.Millisecond)
	if got := atomic.LoadInt32(&calls); got != 0 {
		t.Fatalf("Stop не отменил действие: %d", got)
	}
	// после Stop действие забыто — Flush ничего не выполняет
	d.Flush()
	if got := atomic.LoadInt32(&calls); got != 0 {
		t.Fatalf("Flush после Stop не должен выполнять действие: %d", got)
	}
}

func TestSlotFetchSeqDiscardsStale(t *testing.T) {
	seq := NewSlotFetchSeq()
	first := seq.Next(100)
	second := seq.Next(100)

	if seq.IsCurrent(100, first) {
		t.Fatal("ранний запрос обязан считаться устаревшим")
	}
	if !seq.IsCurrent(100, second) {
		t.Fatal("последний запрос актуален")
	}
	// чаты независимы
	other := seq.Next(200)
	if !seq.IsCurrent(200, other) || !seq.IsCurrent(100, second) {
		t.Fatal("номера запросов должны вестись на чат")
	}
}
