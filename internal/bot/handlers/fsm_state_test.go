package handlers

import (
	"sync"
	"testing"
)

// Апдейты разных чатов обрабатываются параллельно, поэтому карты состояний
// сценариев должны выдерживать одновременные создание, чтение и сброс.
func TestStateMapsParallelChats(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		chatID := int64(900000 + i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 300; j++ {
				setEnrollState(chatID, &EnrollState{Step: StepEnrollName})
				if GetEnrollState(chatID) == nil {
					t.Errorf("чат %d: состояние записи потеряно", chatID)
					return
				}
				ClearEnrollState(chatID)

				setRescheduleState(chatID, &RescheduleState{Step: StepReschedDate})
				if GetRescheduleState(chatID) == nil {
					t.Errorf("чат %d: состояние переноса потеряно", chatID)
					return
				}
				ClearRescheduleState(chatID)

				setBulkTimeState(chatID, &BulkTimeState{Step: StepBulkVehicle})
				ClearBulkTimeState(chatID)

				setPriceAdjustState(chatID, &PriceAdjustState{Step: StepAdjustCustomer})
				ClearPriceAdjustState(chatID)
			}
		}()
	}
	wg.Wait()

	for i := 0; i < 8; i++ {
		chatID := int64(900000 + i)
		if GetEnrollState(chatID) != nil || GetRescheduleState(chatID) != nil ||
			GetBulkTimeState(chatID) != nil || GetPriceAdjustState(chatID) != nil {
			t.Fatalf("чат %d: после сброса состояние не должно оставаться", chatID)
		}
	}
}
