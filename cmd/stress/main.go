// Command stress drives many goroutines logging concurrently through a
// deliberately small queue, once with the blocking overflow policy and
// once with overwrite-oldest, to demonstrate the two policies' different
// behavior under saturation (the core distinction between scenarios S2 and
// S3 of the delivery pipeline's testable properties).
package main

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/lixenwraith/alog"
)

const (
	numWorkers   = 200
	logsPerWkr   = 200
	queueCap     = 64
	poolWorkers  = 2
	maxMsgSize   = 200
)

func randomMessage(size int) string {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 "
	var sb strings.Builder
	sb.Grow(size)
	for i := 0; i < size; i++ {
		sb.WriteByte(chars[rand.Intn(len(chars))])
	}
	return sb.String()
}

func runStress(name string, policy string) {
	dir := "./logs/" + name
	_ = os.RemoveAll(dir)

	pool, err := alog.NewWorkerPool(queueCap, poolWorkers)
	if err != nil {
		fmt.Fprintln(os.Stderr, "pool creation failed:", err)
		os.Exit(1)
	}

	logger, err := alog.NewBuilder().
		Name("stress").
		Directory(dir).
		Level("debug").
		MaxSizeMB(1).
		MaxHistory(5).
		OverflowPolicy(policy).
		BuildAsync(pool)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger creation failed:", err)
		os.Exit(1)
	}

	fmt.Printf("--- %s (overflow=%s, queue_cap=%d, workers=%d) ---\n", name, policy, queueCap, poolWorkers)

	start := time.Now()
	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < logsPerWkr; i++ {
				msg := randomMessage(rand.Intn(maxMsgSize) + 10)
				logger.Info(msg, "wkr", id, "seq", i)
			}
		}(w)
	}
	wg.Wait()
	submitDuration := time.Since(start)

	if err := logger.FlushAndWait(5 * time.Second); err != nil {
		fmt.Fprintln(os.Stderr, "flush error:", err)
	}

	fmt.Printf("submitted %d logs in %v (overrun=%d)\n",
		numWorkers*logsPerWkr, submitDuration.Round(time.Millisecond), pool.Overrun())

	if err := pool.Close(); err != nil {
		fmt.Fprintln(os.Stderr, "pool close error:", err)
	}
}

func main() {
	rand.Seed(time.Now().UnixNano())
	runStress("block", "block")
	runStress("overwrite_oldest", "overwrite_oldest")
	fmt.Println("--- Stress Test Finished --- check ./logs/{block,overwrite_oldest}/")
}
