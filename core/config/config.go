package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

//go:embed default/config.yaml
var defaultConfigData []byte

const (
	ConfigurationName = "config.yaml"
)

// Configuration holds the user-tunable parts of the shell.
type Configuration struct {
	configDir string
	configFs  afero.Fs

	// Prompt is shown before every input line.
	Prompt string `json:"prompt" validate:"required"`
	// Welcome is printed once when an interactive session starts.
	Welcome string `json:"welcome"`
	// Author is what the author built-in prints.
	Author string `json:"author" validate:"required"`
	// HistoryFile is the line-recall history, relative to the config dir.
	HistoryFile string `json:"history_file" validate:"required"`
	// SessionLog is the JSON-lines event log, relative to the config dir.
	SessionLog string `json:"session_log" validate:"required"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

func (c *Configuration) fs() afero.Fs {
	if c.configFs == nil {
		c.configFs = afero.NewBasePathFs(afero.NewOsFs(), c.configDir)
	}
	return c.configFs
}

// OpenSessionLog opens the session log in an append only state.
func (c *Configuration) OpenSessionLog() (afero.File, error) {
	return c.fs().OpenFile(c.SessionLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

// HistoryPath returns the path of the line-recall history file.
func (c *Configuration) HistoryPath() string {
	return filepath.Join(c.configDir, c.HistoryFile)
}

// Default returns the embedded default configuration, rooted at the
// current directory.
func Default() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	out.configDir = "."
	return &out
}
