package auth

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// StartSweeper периодически удаляет из хранилища истёкшие отзывы.
// Возвращает функцию остановки; повторный вызов безопасен.
func (t *Tokens) StartSweeper(every time.Duration, log *zap.Logger) func() {
	if every <= 0 {
		return func() {}
	}

	ticker := time.NewTicker(every)
	stop := make(chan struct{})
	done := make(chan struct{})
	var once sync.Once
	go func() {
		defer close(done)
		for {
			select {
			case <-ticker.C:
				t.sweepOnce(log)
			case <-stop:
				ticker.Stop()
				return
			}
		}
	}()

	return func() {
		once.Do(func() {
			close(stop)
			<-done
		})
	}
}

func (t *Tokens) sweepOnce(log *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := t.revoked.PurgeExpired(ctx, t.now())
	if err != nil {
		log.Warn("purge revoked tokens", zap.Error(err))
		return
	}
	if n > 0 {
		log.Debug("purged revoked tokens", zap.Int64("count", n))
	}
}
