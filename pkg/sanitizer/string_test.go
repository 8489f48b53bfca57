package sanitizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"only whitespace", "   \t\n  ", ""},
		{"leading and trailing", "  fine line tattoo  ", "fine line tattoo"},
		{"internal runs collapse", "fine   line\t\ttattoo", "fine line tattoo"},
		{"newlines become spaces", "first\nsecond", "first second"},
		{"already clean", "piercing", "piercing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TrimAndNormalize(tt.input))
		})
	}
}

func TestNormalizeStudioID(t *testing.T) {
	assert.Equal(t, "studio-north", NormalizeStudioID("  Studio-North "))
}
