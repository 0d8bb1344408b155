package main

import (
	"context"
	"log"

	"github.com/brewlabs/coffee-store-api/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("coffee-store api exited: %v", err)
	}
}
