package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"tourplan/internal/ai"
	"tourplan/internal/config"
	"tourplan/internal/modules/itinerary"
	"tourplan/internal/modules/preference"
)

// Runs a scripted conversation against the configured model and prints the resulting plan.
func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	provider, err := ai.NewProvider(ctx, cfg.AI)
	if err != nil {
		log.Fatalf("Failed to initialize AI provider: %v", err)
	}
	defer provider.Close()

	messages := os.Args[1:]
	if len(messages) == 0 {
		messages = []string{
			"I'd like to spend a day in Rome, mostly museums and old churches.",
			"Budget is around 120 euros.",
			"Start at 9 AM and finish by 7 PM.",
		}
	}

	collector := preference.NewCollector(provider)
	var state preference.State
	for _, msg := range messages {
		fmt.Printf("User: %s\n", msg)
		var reply string
		reply, state, err = collector.Process(ctx, msg, state)
		if err != nil {
			log.Fatalf("Error processing message: %v", err)
		}
		fmt.Printf("Assistant: %s\n", reply)
	}

	collected, _ := json.MarshalIndent(state, "", "  ")
	fmt.Printf("Collected (%s):\n%s\n", state.Status(), collected)
	if !state.Complete() {
		return
	}

	plan, err := itinerary.NewBuilder(provider).Build(ctx, itinerary.Request{Preferences: state.Values()})
	if err != nil {
		log.Fatalf("Error building itinerary: %v", err)
	}
	fmt.Printf("\nItinerary:\n%s\n", plan)
}
