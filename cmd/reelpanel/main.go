package main

import (
	"log"

	"github.com/MrSnakeDoc/reelpanel/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		log.Fatalf("❌ reelpanel failed to start: %v", err)
	}
	if err := a.Run(); err != nil {
		log.Fatalf("❌ reelpanel failed: %v", err)
	}
}
