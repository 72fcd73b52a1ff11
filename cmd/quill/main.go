package main

import (
	"log"

	"github.com/atshaw/quill/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("quill failed to start: %v", err)
	}
}
