package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_Do(t *testing.T) {
	t.Parallel()

	var g SingleFlight[string]
	var counter atomic.Int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err, _ := g.Do("scoreboard-20250315", func() (string, error) {
				counter.Add(1)
				time.Sleep(20 * time.Millisecond)
				return "ok", nil
			})
			if err != nil || v != "ok" {
				t.Errorf("unexpected result: v=%q err=%v", v, err)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := counter.Load(); got != 1 {
		t.Fatalf("unexpected call count: got=%d want=1", got)
	}
}

func TestSingleFlight_SequentialCallsRunAgain(t *testing.T) {
	t.Parallel()

	var g SingleFlight[int]
	calls := 0
	for i := 0; i < 3; i++ {
		_, _, shared := g.Do("k", func() (int, error) {
			calls++
			return calls, nil
		})
		if shared {
			t.Fatalf("expected sequential call %d not to be shared", i)
		}
	}
	if calls != 3 {
		t.Fatalf("unexpected call count: got=%d want=3", calls)
	}
}
