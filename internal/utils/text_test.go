package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanUTF8(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    string
		wasModified bool
	}{
		{name: "plain ascii", input: "Chrono Trigger", expected: "Chrono Trigger"},
		{name: "valid multibyte", input: "Pokémon Red", expected: "Pokémon Red"},
		{name: "nul byte", input: "Zel\x00da", expected: "Zelda", wasModified: true},
		{name: "invalid sequence", input: "Mega\xffMan", expected: "MegaMan", wasModified: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleaned, modified := CleanUTF8(tt.input)
			assert.Equal(t, tt.expected, cleaned)
			assert.Equal(t, tt.wasModified, modified)
		})
	}
}
