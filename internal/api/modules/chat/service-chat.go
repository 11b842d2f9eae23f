package chat_module

import (
	"log"

	"github.com/ethanbaker/ragify/internal/chat"
	"github.com/ethanbaker/ragify/internal/llm"
	"github.com/ethanbaker/ragify/internal/prompt"
	"github.com/ethanbaker/ragify/pkg/utils"
)

// Service bundles the session registry with the controller that runs turns
type Service struct {
	store      *chat.Store
	controller *chat.Controller
	sweeper    *chat.Sweeper
	model      string
}

var service *Service

// Init builds the chat service from configuration and the already loaded document
func Init(cfg *utils.Config, document string, persona *prompt.Persona) *Service {
	model := llm.NewOpenAIClient(llm.Options{
		BaseURL:     cfg.Get("LLM_BASE_URL"),
		Model:       cfg.Get("LLM_MODEL"),
		Temperature: cfg.GetFloatWithDefault("LLM_TEMPERATURE", llm.DefaultTemperature),
		Timeout:     cfg.GetDurationWithDefault("LLM_TIMEOUT", llm.DefaultTimeout),
	})

	store := chat.NewStore()
	keys := chat.NewKeyResolver(cfg)
	controller := chat.NewController(document, persona, model, keys)

	sweeper, err := chat.NewSweeper(
		store,
		cfg.GetWithDefault("SESSION_SWEEP_SPEC", chat.DefaultSweepSpec),
		cfg.GetDurationWithDefault("SESSION_TTL", chat.DefaultSessionTTL),
	)
	if err != nil {
		log.Fatalf("[CHAT]: Failed to initialize session sweeper: %v", err)
	}
	sweeper.Start()

	if !keys.HasFallback() {
		log.Printf("[CHAT]: No GOOGLE_API_KEY or GEMINI_API_KEY configured; users must paste a key")
	}
	log.Printf("[CHAT]: Using model %s with persona %s (version %s)", model.Model(), persona.Name, persona.Version)

	service = &Service{
		store:      store,
		controller: controller,
		sweeper:    sweeper,
		model:      model.Model(),
	}
	return service
}

// Use installs an already built service
func Use(store *chat.Store, controller *chat.Controller) *Service {
	service = &Service{
		store:      store,
		controller: controller,
	}
	return service
}

// Return the service instance
func GetService() *Service {
	if service == nil {
		log.Fatal("[CHAT]: Service is not initialized")
	}
	return service
}

// Model returns the name of the model answering questions
func (s *Service) Model() string {
	return s.model
}

// HasFallbackKey reports whether a key is configured on the server
func (s *Service) HasFallbackKey() bool {
	return s.controller.Keys().HasFallback()
}

// Stop halts background work
func (s *Service) Stop() {
	if s.sweeper != nil {
		s.sweeper.Stop()
	}
}
