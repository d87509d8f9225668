package version

import (
	"testing"

	"github.com/rxtech-lab/synthetic-data-lab/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCatalogVersion(t *testing.T) {
	tests := []struct {
		name          string
		version       string
		expectError   bool
		code          errors.ErrorCode
		errorContains string
	}{
		{
			name:    "exact match",
			version: "1.0.0",
		},
		{
			name:    "minor higher",
			version: "1.3.0",
		},
		{
			name:    "patch higher",
			version: "1.0.7",
		},
		{
			name:    "v prefix",
			version: "v1.2.0",
		},
		{
			name:          "major version higher",
			version:       "2.0.0",
			expectError:   true,
			code:          errors.ErrCodeUnsupportedCatalogVersion,
			errorContains: "does not satisfy",
		},
		{
			name:          "major version zero",
			version:       "0.9.0",
			expectError:   true,
			code:          errors.ErrCodeUnsupportedCatalogVersion,
			errorContains: "does not satisfy",
		},
		{
			name:          "not a version",
			version:       "latest",
			expectError:   true,
			code:          errors.ErrCodeInvalidCatalog,
			errorContains: "invalid catalog version",
		},
		{
			name:          "empty",
			version:       "",
			expectError:   true,
			code:          errors.ErrCodeInvalidCatalog,
			errorContains: "invalid catalog version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckCatalogVersion(tt.version)
			if !tt.expectError {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.HasCode(err, tt.code))
			assert.Contains(t, err.Error(), tt.errorContains)
		})
	}
}

func TestGetVersion(t *testing.T) {
	original := Version
	defer func() { Version = original }()

	assert.Equal(t, "main", GetVersion())

	Version = "1.2.3"
	assert.Equal(t, "1.2.3", GetVersion())
}
