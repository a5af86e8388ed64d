package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateItems(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"empty input", "", true},
		{"empty array", "[]", true},
		{"not an array", `{"drug":"amoxicillin"}`, true},
		{"array of non-objects", `["amoxicillin"]`, true},
		{"single item", `[{"drug":"amoxicillin","dose":"500mg","frequency":"3x daily"}]`, false},
		{"multiple items", `[{"drug":"a"},{"drug":"b"}]`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateItems(json.RawMessage(tt.raw))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrItemsRequired)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
