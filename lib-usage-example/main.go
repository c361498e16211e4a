package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/hirewatch/hirewatch/pkg/api"
	"github.com/hirewatch/hirewatch/pkg/demo"
	"github.com/hirewatch/hirewatch/pkg/repo"
	"github.com/hirewatch/hirewatch/pkg/session"
)

func main() {
	// Usage: go run main.go -base-url "http://localhost:8000/api"

	baseURL := flag.String("base-url", api.DefaultBaseURL, "Backend API base URL")

	// Parse the command-line flags
	flag.Parse()

	client, err := api.New(api.Config{BaseURL: *baseURL})
	if err != nil {
		fmt.Println("Bad client config:", err)
		return
	}

	// The session degrades to the bundled demo dataset when the backend is
	// unreachable, so this example also works offline.
	provider := demo.NewProvider()
	store := session.New(client, provider, session.Options{})

	ctx := context.Background()
	if err := store.Bootstrap(ctx); err != nil {
		fmt.Println("Bootstrap degraded:", err)
	}

	hub := repo.New(store, client, provider)
	matches, err := hub.Matches().Refresh(ctx)
	if err != nil {
		matches = store.Matches()
	}

	for _, m := range matches {
		fmt.Printf("%s -> %s: %.0f%% (%s)\n",
			store.CandidateName(m.CandidateID), store.RoleTitle(m.RoleID), m.MatchScore, m.Status)
	}
}
