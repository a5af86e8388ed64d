package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterContent(t *testing.T) {
	ms := NewModerationService()

	tests := []struct {
		name       string
		text       string
		wantOK     bool
		wantReason string
	}{
		{"empty text passes", "", true, ""},
		{"plain text passes", "Great consultation, very helpful.", true, ""},
		{"banned word", "this clinic is shit", false, "inappropriate_language"},
		{"banned word case insensitive", "SPAM offer inside", false, "inappropriate_language"},
		{"banned word inside another word passes", "classic assessment", true, ""},
		{"url rejected", "visit https://example.com for deals", false, "url_not_allowed"},
		{"www url rejected", "see www.cheap-pills.biz now", false, "url_not_allowed"},
		{"phone number rejected", "call me at 555-123-4567", false, "contact_info_not_allowed"},
		{"repeated characters rejected", "soooooo good", false, "spam_detected"},
		{"shouting rejected", "AMAZING WONDERFUL INCREDIBLE treatment here", false, "excessive_caps"},
		{"two caps words pass", "AMAZING WONDERFUL treatment", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := ms.FilterContent(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}

func TestGetRejectionMessage(t *testing.T) {
	ms := NewModerationService()

	assert.Equal(t, "URLs and web links are not allowed.", ms.GetRejectionMessage("url_not_allowed"))
	assert.Equal(t, "Your text does not meet our content guidelines.", ms.GetRejectionMessage("unknown_reason"))
}
