// Example gnet server wired to alog through the compat package.
package main

import (
	"time"

	"github.com/lixenwraith/alog"
	"github.com/lixenwraith/alog/compat"
	"github.com/panjf2000/gnet/v2"
)

type echoServer struct {
	gnet.BuiltinEventEngine
}

func (es *echoServer) OnTraffic(c gnet.Conn) gnet.Action {
	buf, _ := c.Next(-1)
	c.Write(buf)
	return gnet.None
}

func main() {
	logger, err := alog.NewBuilder().
		Directory("/var/log/gnet").
		Level("debug").
		Format("json").
		BuildAsync(alog.DefaultPool())
	if err != nil {
		panic(err)
	}
	defer logger.FlushAndWait(2 * time.Second)

	gnetAdapter := compat.NewGnetAdapter(logger)

	err = gnet.Run(
		&echoServer{},
		"tcp://127.0.0.1:9000",
		gnet.WithMulticore(true),
		gnet.WithLogger(gnetAdapter),
		gnet.WithReusePort(true),
	)
	if err != nil {
		panic(err)
	}
}
