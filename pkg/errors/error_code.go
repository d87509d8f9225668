package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeUnknownKey           ErrorCode = 100
	ErrCodeOutOfRange           ErrorCode = 101
	ErrCodeInvalidChoice        ErrorCode = 102
	ErrCodeInvalidType          ErrorCode = 103
	ErrCodeInvalidParameter     ErrorCode = 104
	ErrCodeInvalidConfiguration ErrorCode = 105

	// Preset errors (200-299)
	ErrCodeUnknownPreset             ErrorCode = 200
	ErrCodeInvalidPreset             ErrorCode = 201
	ErrCodeInvalidCatalog            ErrorCode = 202
	ErrCodeDuplicatePreset           ErrorCode = 203
	ErrCodeReservedPreset            ErrorCode = 204
	ErrCodeUnsupportedCatalogVersion ErrorCode = 205

	// Session errors (300-399)
	ErrCodeUnknownGroup    ErrorCode = 300
	ErrCodeApplyInProgress ErrorCode = 301

	// Settings errors (400-499)
	ErrCodeSettingsLoadFailed ErrorCode = 400
	ErrCodeSettingsSaveFailed ErrorCode = 401
	ErrCodeInvalidSetting     ErrorCode = 402
)

// IsValidation reports whether code belongs to the validation range.
func (c ErrorCode) IsValidation() bool {
	return c >= 100 && c < 200
}
