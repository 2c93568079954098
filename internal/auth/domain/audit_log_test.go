package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuditLog_HasValidSignature(t *testing.T) {
	tests := []struct {
		name     string
		log      AuditLog
		expected bool
	}{
		{
			name:     "Valid signature",
			log:      AuditLog{IsSigned: true, KeyID: AuditSignatureKeyID, Signature: make([]byte, 32)},
			expected: true,
		},
		{
			name:     "Not signed",
			log:      AuditLog{IsSigned: false, KeyID: AuditSignatureKeyID, Signature: make([]byte, 32)},
			expected: false,
		},
		{
			name:     "Missing key id",
			log:      AuditLog{IsSigned: true, Signature: make([]byte, 32)},
			expected: false,
		},
		{
			name:     "Invalid signature length",
			log:      AuditLog{IsSigned: true, KeyID: AuditSignatureKeyID, Signature: make([]byte, 31)},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.log.HasValidSignature())
		})
	}
}
