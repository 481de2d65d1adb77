package clients

import "sync"

type outcome struct {
	completion *Completion
	err        error
}

// latch settles a call exactly once. The first resolve wins; later calls
// are dropped and report false.
type latch struct {
	once sync.Once
	done chan outcome
}

func newLatch() *latch {
	return &latch{done: make(chan outcome, 1)}
}

func (l *latch) resolve(completion *Completion, err error) bool {
	won := false
	l.once.Do(func() {
		won = true
		l.done <- outcome{completion: completion, err: err}
	})
	return won
}

func (l *latch) wait() outcome {
	return <-l.done
}
