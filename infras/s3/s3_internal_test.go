package s3

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectKeyFromURL(t *testing.T) {
	tests := []struct {
		name         string
		publicDomain string
		url          string
		want         string
	}{
		{
			name:         "public domain",
			publicDomain: "https://cdn.dinebook.io",
			url:          "https://cdn.dinebook.io/receipts/r-1.json",
			want:         "receipts/r-1.json",
		},
		{
			name: "api endpoint with bucket",
			url:  "https://s3.local/receipts-bucket/receipts/r-1.json",
			want: "receipts/r-1.json",
		},
		{
			name:         "foreign url",
			publicDomain: "https://cdn.dinebook.io",
			url:          "https://elsewhere.example/receipts/r-1.json",
			want:         "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := objectKeyFromURL(tt.publicDomain, "https://s3.local", "receipts-bucket", tt.url)
			assert.Equal(t, tt.want, got)
		})
	}
}
