package main

import (
	"log"

	"github.com/ethanbaker/ragify/internal/api"
	"github.com/ethanbaker/ragify/internal/document"
	"github.com/ethanbaker/ragify/internal/prompt"
	"github.com/ethanbaker/ragify/pkg/utils"
)

// Start the API server
func main() {
	// Load global config
	cfg := utils.NewConfigFromEnv(utils.EnvFile())

	// Load the knowledge base once; the server cannot answer without it
	loader := document.NewLoader(cfg.GetWithDefault("PDF_PATH", document.DefaultPath))
	text, err := loader.Text()
	if err != nil {
		log.Fatalf("[API-MAIN]: Failed to load knowledge base: %v", err)
	}

	persona, err := prompt.LoadPersona(cfg.Get("PERSONA_PATH"))
	if err != nil {
		log.Fatalf("[API-MAIN]: Failed to load persona: %v", err)
	}

	// Start
	api.Start(cfg, text, persona)
}
