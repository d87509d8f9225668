package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func TestErrorSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

func (suite *ErrorTestSuite) TestNewError() {
	err := New(ErrCodeUnknownKey, "unknown key")
	suite.NotNil(err)
	suite.Equal(ErrCodeUnknownKey, err.Code)
	suite.Equal("unknown key", err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestNewfError() {
	err := Newf(ErrCodeOutOfRange, "volatility must be within [%s, %s]", "0.01", "500")
	suite.NotNil(err)
	suite.Equal(ErrCodeOutOfRange, err.Code)
	suite.Equal("volatility must be within [0.01, 500]", err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestWrapError() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeSettingsLoadFailed, "failed to read settings", cause)
	suite.NotNil(err)
	suite.Equal(ErrCodeSettingsLoadFailed, err.Code)
	suite.Equal("failed to read settings", err.Message)
	suite.Equal(cause, err.Cause)
}

func (suite *ErrorTestSuite) TestWrapfError() {
	cause := errors.New("underlying error")
	err := Wrapf(ErrCodeInvalidCatalog, cause, "invalid catalog for group %s", "Price")
	suite.NotNil(err)
	suite.Equal(ErrCodeInvalidCatalog, err.Code)
	suite.Equal("invalid catalog for group Price", err.Message)
	suite.Equal(cause, err.Cause)
}

func (suite *ErrorTestSuite) TestErrorString() {
	err := New(ErrCodeUnknownKey, "unknown key")
	suite.Equal("[100] unknown key", err.Error())
}

func (suite *ErrorTestSuite) TestErrorStringWithCause() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeUnknownPreset, "preset not found", cause)
	suite.Equal("[200] preset not found: underlying error", err.Error())
}

func (suite *ErrorTestSuite) TestUnwrap() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeUnknownPreset, "preset not found", cause)
	suite.Equal(cause, err.Unwrap())
}

func (suite *ErrorTestSuite) TestUnwrapNil() {
	err := New(ErrCodeUnknownKey, "unknown key")
	suite.Nil(err.Unwrap())
}

func (suite *ErrorTestSuite) TestGetCode() {
	err := New(ErrCodeInvalidChoice, "invalid choice")
	suite.Equal(ErrCodeInvalidChoice, GetCode(err))
}

func (suite *ErrorTestSuite) TestGetCodeFromWrapped() {
	cause := New(ErrCodeOutOfRange, "out of range")
	err := Wrap(ErrCodeInvalidCatalog, "invalid catalog", cause)
	// GetCode should return the outermost error's code
	suite.Equal(ErrCodeInvalidCatalog, GetCode(err))
}

func (suite *ErrorTestSuite) TestGetCodeThroughFmtWrap() {
	cause := New(ErrCodeUnknownGroup, "unknown group")
	err := fmt.Errorf("select preset: %w", cause)
	suite.Equal(ErrCodeUnknownGroup, GetCode(err))
}

func (suite *ErrorTestSuite) TestGetCodeFromPlainError() {
	err := errors.New("standard error")
	suite.Equal(ErrCodeUnknown, GetCode(err))
	suite.Equal(ErrCodeUnknown, GetCode(nil))
}

func (suite *ErrorTestSuite) TestHasCode() {
	err := New(ErrCodeUnknownKey, "unknown key")
	suite.True(HasCode(err, ErrCodeUnknownKey))
	suite.False(HasCode(err, ErrCodeUnknownPreset))
}

func (suite *ErrorTestSuite) TestIsError() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeSettingsSaveFailed, "failed to save settings", cause)
	suite.True(Is(err, cause))
}

func (suite *ErrorTestSuite) TestAsError() {
	err := New(ErrCodeUnknownKey, "unknown key")
	var codedErr *Error
	suite.True(As(err, &codedErr))
	suite.Equal(ErrCodeUnknownKey, codedErr.Code)
}

func (suite *ErrorTestSuite) TestErrorCodeValues() {
	suite.Equal(ErrorCode(1), ErrCodeUnknown)
	suite.Equal(ErrorCode(100), ErrCodeUnknownKey)
	suite.Equal(ErrorCode(101), ErrCodeOutOfRange)
	suite.Equal(ErrorCode(200), ErrCodeUnknownPreset)
	suite.Equal(ErrorCode(300), ErrCodeUnknownGroup)
	suite.Equal(ErrorCode(400), ErrCodeSettingsLoadFailed)
}

func (suite *ErrorTestSuite) TestIsValidation() {
	suite.True(ErrCodeOutOfRange.IsValidation())
	suite.True(ErrCodeInvalidType.IsValidation())
	suite.False(ErrCodeUnknownPreset.IsValidation())
	suite.False(ErrCodeUnknown.IsValidation())
}

func (suite *ErrorTestSuite) TestInvalidPresetError() {
	cause := Newf(ErrCodeOutOfRange, "volatility must be within [0.01, 500]")
	err := NewInvalidPresetError("Flash Crash", "volatility", cause)

	suite.Equal("Flash Crash", err.Preset)
	suite.Equal("volatility", err.Key)
	suite.Equal(cause, err.Unwrap())
	suite.Contains(err.Error(), `invalid preset "Flash Crash" at "volatility"`)
	suite.Contains(err.Error(), "[201]")
}

func (suite *ErrorTestSuite) TestInvalidPresetErrorCodes() {
	cause := New(ErrCodeInvalidChoice, "invalid choice")
	err := NewInvalidPresetError("Bull Run", "trend_direction", cause)

	suite.Equal(ErrCodeInvalidPreset, GetCode(err))
	suite.True(HasCode(err, ErrCodeInvalidPreset))
	suite.Equal(ErrCodeInvalidChoice, FieldCode(err))

	// the field-level cause is still reachable through the chain
	var codedErr *Error
	suite.True(As(err, &codedErr))
	suite.Equal(ErrCodeInvalidChoice, codedErr.Code)

	// wrapping keeps the preset code when the preset error is outermost
	wrapped := Wrap(ErrCodeInvalidCatalog, "invalid catalog", err)
	suite.Equal(ErrCodeInvalidCatalog, GetCode(wrapped))
	suite.Equal(ErrCodeInvalidChoice, FieldCode(wrapped))
}

func (suite *ErrorTestSuite) TestIsInvalidPresetError() {
	presetErr := NewInvalidPresetError("Bull Run", "drift", New(ErrCodeOutOfRange, "out of range"))
	suite.True(IsInvalidPresetError(presetErr))
	suite.True(IsInvalidPresetError(fmt.Errorf("apply: %w", presetErr)))

	suite.False(IsInvalidPresetError(errors.New("standard error")))
	suite.False(IsInvalidPresetError(New(ErrCodeUnknownKey, "unknown key")))
	suite.False(IsInvalidPresetError(nil))
}

func (suite *ErrorTestSuite) TestFieldCodeWithoutPreset() {
	err := New(ErrCodeOutOfRange, "out of range")
	suite.Equal(ErrCodeOutOfRange, FieldCode(err))
}
