package shutdown

import (
	"context"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/honeycarbs/vacancy-etl/pkg/logging"
)

type recorder struct {
	called chan struct{}
}

func (r *recorder) Shutdown(context.Context) error {
	close(r.called)
	return nil
}

func TestGracefulReturnsWhenContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := &recorder{called: make(chan struct{})}

	done := make(chan struct{})
	go func() {
		Graceful(ctx, []os.Signal{syscall.SIGUSR2}, r, time.Second, logging.NewNop())
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Graceful did not return after the context was cancelled")
	}
	select {
	case <-r.called:
		t.Error("Shutdown must not run when the context ends first")
	default:
	}
}
