package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/labrat-0/event-ticket-scraper/cmd/ticketscraper/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	commands.ExecuteContext(ctx)
}
