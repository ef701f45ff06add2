package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/harrier-data/vertex.report/internal/monitor"
	"github.com/harrier-data/vertex.report/internal/recondb"
)

func main() {
	var dbPath string
	var listenAddr string

	flag.StringVar(&dbPath, "db", "runs.db", "path to sqlite run db")
	flag.StringVar(&listenAddr, "listen", "127.0.0.1:8080", "address to serve on")
	flag.Parse()

	db, err := recondb.NewDB(dbPath)
	if err != nil {
		log.Fatalf("open run db: %v", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ws := monitor.NewWebServer(monitor.WebServerConfig{
		Address: listenAddr,
		DB:      db,
	})
	if err := ws.Start(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
