package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github-issue-upsert/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cmd.Execute(ctx); err != nil {
		stop()
		log.Fatal(err)
	}
}
