package preview

import (
	"sync"
	"time"
)

// Task runs a callback periodically until stopped.
type Task struct {
	stop chan struct{}
	once sync.Once
	done chan struct{}
}

// Every calls fn every interval on a background goroutine. fn should only
// hand work to the UI loop, such as posting an event.
func Every(interval time.Duration, fn func()) *Task {
	t := &Task{stop: make(chan struct{}), done: make(chan struct{})}
	ticker := time.NewTicker(interval)
	go func() {
		defer close(t.done)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				fn()
			case <-t.stop:
				return
			}
		}
	}()
	return t
}

// Stop cancels the task and waits for its goroutine to exit. It is safe to
// call more than once.
func (t *Task) Stop() {
	if t == nil {
		return
	}
	t.once.Do(func() { close(t.stop) })
	<-t.done
}
