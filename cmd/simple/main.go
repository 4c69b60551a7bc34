// Command simple demonstrates the package-level default logger: no
// explicit pool or config wiring, just Info/Warn/Error calls from several
// goroutines followed by a flush-and-wait at shutdown.
package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/lixenwraith/alog"
)

func main() {
	fmt.Println("--- Simple Logger Example ---")

	alog.Info("application starting")
	alog.Debug("debug detail", "user_id", 123)
	alog.Warn("potential issue detected", "threshold", 0.95)
	alog.Error("an error occurred", "code", 500)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			alog.Info("goroutine started", "id", id)
			time.Sleep(time.Duration(50+id*25) * time.Millisecond)
			alog.Info("goroutine finished", "id", id)
		}(i)
	}
	wg.Wait()

	fmt.Println("flushing logger...")
	if err := alog.FlushAndWait(2 * time.Second); err != nil {
		fmt.Println("flush error:", err)
	}

	fmt.Println("--- Example Finished --- check ./logs/app.log")
}
