// ============================================================================
// lectern - Lecture Capture & Translation Utility
// ============================================================================
//
// Package:     llm
// Description: Prompt templates for translation and summarization
// Author:      Ethan Koester-Schmidt
// Created:     2026-08-14
// License:     MIT
// ============================================================================

package llm

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Prompts holds the instruction templates. Templates use {text} and
// {language} markers which are substituted at call time.
type Prompts struct {
	Translate string `yaml:"translate"`
	Summarize string `yaml:"summarize"`
}

// DefaultPrompts returns the built-in templates.
func DefaultPrompts() Prompts {
	return Prompts{
		Translate: "Translate the following text to {language}. " +
			"Reply with the translation only, no explanations:\n\n{text}",
		Summarize: "Summarize the following lecture transcript. " +
			"Structure the summary with the main topics, key points, and " +
			"any assignments or deadlines mentioned:\n\n{text}",
	}
}

// LoadPrompts reads templates from a YAML file. Missing fields keep
// their defaults.
func LoadPrompts(path string) (Prompts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Prompts{}, fmt.Errorf("failed to read prompts file: %w", err)
	}

	var p Prompts
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Prompts{}, fmt.Errorf("failed to parse prompts file: %w", err)
	}
	return p.withDefaults(), nil
}

func (p Prompts) withDefaults() Prompts {
	def := DefaultPrompts()
	if p.Translate == "" {
		p.Translate = def.Translate
	}
	if p.Summarize == "" {
		p.Summarize = def.Summarize
	}
	return p
}

func (p Prompts) translatePrompt(text, language string) string {
	s := strings.ReplaceAll(p.Translate, "{language}", language)
	return strings.ReplaceAll(s, "{text}", text)
}

func (p Prompts) summarizePrompt(text string) string {
	return strings.ReplaceAll(p.Summarize, "{text}", text)
}
