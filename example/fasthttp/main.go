// Example fasthttp server wired to alog through the compat package, with a
// custom level detector layered on top of DetectLogLevel's defaults.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/lixenwraith/alog"
	"github.com/lixenwraith/alog/compat"
	"github.com/valyala/fasthttp"
)

func main() {
	logger, err := alog.NewBuilder().
		Directory("/var/log/fasthttp").
		Level("debug").
		Format("txt").
		QueueCapacity(2048).
		BuildAsync(alog.DefaultPool())
	if err != nil {
		panic(err)
	}
	defer logger.FlushAndWait(2 * time.Second)

	fasthttpAdapter := compat.NewFastHTTPAdapter(
		logger,
		compat.WithDefaultLevel(alog.Info),
		compat.WithLevelDetector(customLevelDetector),
	)

	server := &fasthttp.Server{
		Handler: requestHandler,
		Logger:  fasthttpAdapter,

		Name:              "MyServer",
		Concurrency:       fasthttp.DefaultConcurrency,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		TCPKeepalive:      true,
		ReduceMemoryUsage: true,
	}

	fmt.Println("Starting server on :8080")
	if err := server.ListenAndServe(":8080"); err != nil {
		panic(err)
	}
}

func requestHandler(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("text/plain")
	fmt.Fprintf(ctx, "Hello, world! Path: %s\n", ctx.Path())
}

func customLevelDetector(msg string) alog.Severity {
	if strings.Contains(msg, "connection cannot be served") {
		return alog.Warn
	}
	if strings.Contains(msg, "error when serving connection") {
		return alog.Error
	}
	return compat.DetectLogLevel(msg)
}
