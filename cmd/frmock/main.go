package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/DenserMeerkat/fr-frontend-next/internal/mockfeed"
)

func main() {
	addr := flag.String("addr", ":8600", "listen address")
	debug := flag.Bool("debug", false, "enable gin debug logging")
	flag.Parse()

	if !*debug {
		gin.SetMode(gin.ReleaseMode)
	}

	server := mockfeed.NewServer()
	fmt.Printf("mock upstreams listening on %s\n", *addr)
	fmt.Printf("  market data: http://localhost%s/api/stock\n", *addr)
	fmt.Printf("  trading:     http://localhost%s/api/trading\n", *addr)

	if err := server.Router().Run(*addr); err != nil {
		log.Fatalf("serve: %v", err)
	}
}
