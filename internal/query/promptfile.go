package query

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/adrg/frontmatter"
)

// PromptFile is a markdown prompt with optional YAML frontmatter. The body
// seeds the prompt editor; the frontmatter overrides per-run settings.
type PromptFile struct {
	Model  string `yaml:"model"`
	System string `yaml:"system"`
	Body   string `yaml:"-"`
}

// ParsePrompt splits data into frontmatter and body. Data without
// frontmatter is all body.
func ParsePrompt(data []byte) (PromptFile, error) {
	var pf PromptFile
	rest, err := frontmatter.Parse(bytes.NewReader(data), &pf)
	if err != nil {
		return PromptFile{}, fmt.Errorf("parse frontmatter: %w", err)
	}
	pf.Body = strings.Trim(string(rest), "\n")
	pf.Model = strings.TrimSpace(pf.Model)
	return pf, nil
}

// LoadPromptFile reads and parses the prompt file at path.
func LoadPromptFile(path string) (PromptFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PromptFile{}, fmt.Errorf("read prompt file: %w", err)
	}
	return ParsePrompt(data)
}

// SystemOr returns the frontmatter system prompt, or fallback when unset.
func (p PromptFile) SystemOr(fallback string) string {
	if strings.TrimSpace(p.System) == "" {
		return fallback
	}
	return p.System
}
