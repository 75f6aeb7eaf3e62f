package provider

import (
	"github.com/anthropics/anthropic-sdk-go"
)

// NewAnthropicClient returns a client using API key from the env.
func NewAnthropicClient() *anthropic.Client {
	c := anthropic.NewClient()
	return &c
}

// Model maps a configured model name to its SDK value, falling back to the
// default when name is empty.
func Model(name string) anthropic.Model {
	if name == "" {
		return DefaultModel
	}
	return anthropic.Model(name)
}

const DefaultModel = anthropic.ModelClaude3_7SonnetLatest
const APIVersion = "2023-06-01"
