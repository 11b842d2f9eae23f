// Package prompt holds the assistant persona and assembles the message list sent to the model.
package prompt

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/ethanbaker/ragify/pkg/utils"
	"gopkg.in/yaml.v3"
)

//go:embed personas/ragify.yaml
var defaultPersona []byte

// RecommendationFields are the labels of the retriever recommendation template, in order
var RecommendationFields = []string{
	"Recommended Retriever",
	"Reason",
	"Secondary Options",
	"Implementation Notes",
}

// Persona is the versioned system instruction given to the model
type Persona struct {
	Version          string `yaml:"version"`
	Name             string `yaml:"name"`
	Title            string `yaml:"title"`
	Instructions     string `yaml:"instructions"`
	GroundingPreface string `yaml:"grounding_preface"`
}

// DefaultPersona returns the persona bundled with the binary
func DefaultPersona() (*Persona, error) {
	return ParsePersona(defaultPersona)
}

// LoadPersona reads a persona file. An empty path selects the bundled persona
func LoadPersona(path string) (*Persona, error) {
	if path == "" {
		return DefaultPersona()
	}

	data, err := utils.LoadPrompt(path)
	if err != nil {
		return nil, err
	}

	persona, err := ParsePersona(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load persona %s: %w", path, err)
	}
	return persona, nil
}

// ParsePersona decodes and validates a YAML persona definition
func ParsePersona(data []byte) (*Persona, error) {
	var p Persona
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse persona: %w", err)
	}

	p.Instructions = strings.TrimSpace(p.Instructions)
	p.GroundingPreface = strings.TrimSpace(p.GroundingPreface)

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks that the persona carries a version, instructions and the full
// recommendation template with its labels in order
func (p *Persona) Validate() error {
	if p.Version == "" {
		return errors.New("persona version is required")
	}
	if p.Instructions == "" {
		return errors.New("persona instructions are required")
	}

	offset := 0
	for _, field := range RecommendationFields {
		idx := strings.Index(p.Instructions[offset:], field+":")
		if idx < 0 {
			return fmt.Errorf("persona instructions are missing the %q template field", field)
		}
		offset += idx + len(field)
	}

	return nil
}
