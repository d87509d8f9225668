package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rxtech-lab/synthetic-data-lab/internal/logger"
	"github.com/rxtech-lab/synthetic-data-lab/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type SettingsTestSuite struct {
	suite.Suite
	path string
	log  *logger.Logger
}

func TestSettingsSuite(t *testing.T) {
	suite.Run(t, new(SettingsTestSuite))
}

func (suite *SettingsTestSuite) SetupTest() {
	suite.path = filepath.Join(suite.T().TempDir(), dirName, fileName)
	suite.log = logger.NewNopLogger()
}

func (suite *SettingsTestSuite) write(content string) {
	suite.Require().NoError(os.MkdirAll(filepath.Dir(suite.path), 0755))
	suite.Require().NoError(os.WriteFile(suite.path, []byte(content), 0644))
}

func (suite *SettingsTestSuite) readDocument() map[string]any {
	data, err := os.ReadFile(suite.path)
	suite.Require().NoError(err)

	var doc map[string]any
	suite.Require().NoError(json.Unmarshal(data, &doc))

	return doc
}

func (suite *SettingsTestSuite) TestMissingFileWritesDefaults() {
	s := Load(suite.path, suite.log)

	suite.Equal(ThemeDark, s.Theme())
	suite.Equal(suite.path, s.Path())
	suite.Equal(map[string]any{"theme": "dark"}, suite.readDocument())
}

func (suite *SettingsTestSuite) TestLoadStoredTheme() {
	suite.write(`{"theme": "light"}`)

	suite.Equal(ThemeLight, Load(suite.path, suite.log).Theme())
}

func (suite *SettingsTestSuite) TestCorruptDocumentsFallBackToDefault() {
	tests := []struct {
		name    string
		content string
	}{
		{name: "not json", content: "{theme: light"},
		{name: "not an object", content: `["light"]`},
		{name: "empty file", content: ""},
		{name: "unknown theme", content: `{"theme": "solarized"}`},
		{name: "wrong case", content: `{"theme": "Light"}`},
		{name: "theme not a string", content: `{"theme": 1}`},
		{name: "theme missing", content: `{"font": "mono"}`},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.write(tt.content)

			s := Load(suite.path, suite.log)
			suite.Equal(DefaultTheme, s.Theme())

			// the broken file is left alone until the next save
			data, err := os.ReadFile(suite.path)
			suite.Require().NoError(err)
			suite.Equal(tt.content, string(data))
		})
	}
}

func (suite *SettingsTestSuite) TestSetThemePersists() {
	s := Load(suite.path, suite.log)
	suite.Require().NoError(s.SetTheme(ThemeLight))
	suite.Equal(ThemeLight, s.Theme())

	suite.Equal(ThemeLight, Load(suite.path, suite.log).Theme())
	suite.NoFileExists(suite.path + ".tmp")
}

func (suite *SettingsTestSuite) TestSetThemeRejectsUnknownTheme() {
	s := Load(suite.path, suite.log)

	err := s.SetTheme("blue")
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidSetting))
	suite.Equal(ThemeDark, s.Theme())
	suite.Equal(map[string]any{"theme": "dark"}, suite.readDocument())
}

func (suite *SettingsTestSuite) TestUnknownKeysArePreserved() {
	suite.write(`{"theme": "dark", "window": {"width": 1200}, "recent": ["a.csv"]}`)

	s := Load(suite.path, suite.log)
	suite.Require().NoError(s.SetTheme(ThemeLight))

	doc := suite.readDocument()
	suite.Equal("light", doc["theme"])
	suite.Equal(map[string]any{"width": 1200.0}, doc["window"])
	suite.Equal([]any{"a.csv"}, doc["recent"])
}

func (suite *SettingsTestSuite) TestSaveFailureKeepsPreviousTheme() {
	dir := suite.T().TempDir()
	// a directory where the file should be makes the rename fail
	path := filepath.Join(dir, fileName)
	suite.Require().NoError(os.MkdirAll(filepath.Join(path, "child"), 0755))

	s := Load(path, suite.log)
	suite.Equal(DefaultTheme, s.Theme())

	err := s.SetTheme(ThemeLight)
	suite.True(errors.HasCode(err, errors.ErrCodeSettingsSaveFailed))
	suite.Equal(DefaultTheme, s.Theme())
}

func (suite *SettingsTestSuite) TestParseTheme() {
	theme, err := ParseTheme("light")
	suite.Require().NoError(err)
	suite.Equal(ThemeLight, theme)

	_, err = ParseTheme("")
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidSetting))
}

func (suite *SettingsTestSuite) TestToggle() {
	suite.Equal(ThemeLight, ThemeDark.Toggle())
	suite.Equal(ThemeDark, ThemeLight.Toggle())
}

func (suite *SettingsTestSuite) TestDefaultPath() {
	suite.T().Setenv("HOME", suite.T().TempDir())

	path, err := DefaultPath()
	suite.Require().NoError(err)
	suite.Equal(filepath.Join(os.Getenv("HOME"), ".synthetic_data_lab", "settings.json"), path)
}

func (suite *SettingsTestSuite) TestNilLogger() {
	suite.NotPanics(func() {
		Load(suite.path, nil)
	})
}
