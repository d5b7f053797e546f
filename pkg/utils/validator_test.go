package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type lookupKeyHolder struct {
	Key string `validate:"lookup_key"`
}

func TestLookupKeyValidation(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		key   string
		valid bool
	}{
		{"pro_monthly", true},
		{"starter-2024.v2", true},
		{"", false},
		{"pro monthly", false},
		{"pro_monthly\n", false},
		{strings.Repeat("k", 200), true},
		{strings.Repeat("k", 201), false},
	}

	for _, tt := range tests {
		err := v.Struct(lookupKeyHolder{Key: tt.key})
		if tt.valid {
			assert.NoError(t, err, "key %q", tt.key)
		} else {
			assert.Error(t, err, "key %q", tt.key)
		}
	}
}
