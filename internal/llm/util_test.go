package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"json fence", "```json\n[\"Nova\"]\n```", `["Nova"]`},
		{"bare fence", "```\n1. Nova\n2. Brightly\n```", "1. Nova\n2. Brightly"},
		{"fence with inline content", "```[\"Nova\"]```", `["Nova"]`},
		{"no fence", "  Nova Labs  ", "Nova Labs"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripCodeFence(tt.input))
		})
	}
}

func TestExtractJSONArray(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple array", `["a", "b"]`, `["a", "b"]`},
		{"preamble", "Here are some names:\n[\"Nova\", \"Brightly\"]", `["Nova", "Brightly"]`},
		{"trailing text", `["Nova"] hope this helps`, `["Nova"]`},
		{"brackets inside strings", `["Bits [and] Bytes", "Nova"]`, `["Bits [and] Bytes", "Nova"]`},
		{"escaped quote", `["Say \"hi\"", "x"]`, `["Say \"hi\"", "x"]`},
		{"nested", `[["a"], ["b"]] end`, `[["a"], ["b"]]`},
		{"fenced", "```json\n[\"Nova\"]\n```", `["Nova"]`},
		{"no array", "1. Nova\n2. Brightly", ""},
		{"unbalanced", `["Nova", "Bright`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractJSONArray(tt.input))
		})
	}
}
