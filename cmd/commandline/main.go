package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ethanbaker/ragify/pkg/sdk"
	"github.com/ethanbaker/ragify/pkg/utils"
)

func main() {
	// Load global config
	cfg := utils.NewConfigFromEnv(utils.EnvFile())

	client := sdk.NewClient(strings.TrimRight(cfg.GetWithDefault("ASSISTANT_URL", "http://localhost:8080"), "/"))

	// Start interactive session
	ctx := context.Background()
	if err := startInteractiveSession(ctx, client); err != nil {
		log.Fatalf("[COMMANDLINE]: Failed to start interactive session: %v", err)
	}
}

// startInteractiveSession runs a line-oriented chat against the server
func startInteractiveSession(ctx context.Context, client *sdk.Client) error {
	fmt.Println("Ragify started. Type '/clear' to reset, '/key <value>' to set an API key, 'exit' to quit.")

	// Create a single session on startup for the entire conversation
	sess, err := client.CreateSession(ctx)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	defer client.DeleteSession(ctx, sess.ID)

	fmt.Printf("Session created: %s\n", sess.ID)
	if !sess.CanChat {
		fmt.Println("No API key is configured on the server. Use '/key <value>' before asking.")
	}

	// Create scanner for reading user input
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("\n> ")

		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())

		switch {
		case input == "exit":
			return nil

		case input == "":
			continue

		case input == "/clear":
			if err := client.ClearSession(ctx, sess.ID); err != nil {
				fmt.Printf("Error: %v\n", describe(err))
				continue
			}
			fmt.Println("Conversation cleared.")

		case input == "/key" || strings.HasPrefix(input, "/key "):
			key := strings.TrimSpace(strings.TrimPrefix(input, "/key"))
			if err := client.SetAPIKey(ctx, sess.ID, key); err != nil {
				fmt.Printf("Error: %v\n", describe(err))
				continue
			}
			if key == "" {
				fmt.Println("API key removed; the server's configured key will be used.")
			} else {
				fmt.Println("API key saved for this session.")
			}

		default:
			reply, err := client.SendMessage(ctx, sess.ID, input)
			if err != nil {
				fmt.Printf("Error: %v\n", describe(err))
				continue
			}
			fmt.Printf("Assistant: %s\n", reply.Content)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}

	return nil
}

// describe returns the server's user-facing message when one is available
func describe(err error) string {
	var apiErr *sdk.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
