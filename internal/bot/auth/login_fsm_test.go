package auth

import (
	"sync"
	"testing"
)

// Вход могут одновременно проходить несколько чатов: карта состояний должна
// выдерживать параллельные создание, чтение и сброс.
func TestLoginStatesParallelChats(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		chatID := int64(800000 + i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 300; j++ {
				setLoginState(chatID, &LoginState{Step: StepLoginPhone})
				st := GetLoginState(chatID)
				if st == nil {
					t.Errorf("чат %d: состояние входа потеряно", chatID)
					return
				}
				ClearLoginState(chatID)
			}
		}()
	}
	wg.Wait()

	for i := 0; i < 8; i++ {
		if GetLoginState(int64(800000+i)) != nil {
			t.Fatalf("чат %d: после сброса состояние не должно оставаться", 800000+i)
		}
	}
}
