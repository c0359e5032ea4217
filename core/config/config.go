package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/anmitsu/go-shlex"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

//go:embed default/config.yaml
var defaultConfigData []byte

const (
	ConfigurationName = "config.yaml"
)

// Color modes.
const (
	ColorAlways = "always"
	ColorAuto   = "auto"
	ColorNever  = "never"
)

type Configuration struct {
	configurationDir string
	configFs         afero.Fs

	Prompt      string `json:"prompt" validate:"required"`
	HistoryFile string `json:"history_file"`
	SessionLog  string `json:"session_log"`
	Color       string `json:"color" validate:"oneof=always auto never"`

	Env        map[string]string `json:"env" validate:"dive,keys,required,excludesall==,endkeys"`
	AliasLines map[string]string `json:"aliases" validate:"dive,keys,required,endkeys,required"`

	WorkingDir string `json:"working_dir"`
	Sandbox    bool   `json:"sandbox"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	if err := validate.Struct(c); err != nil {
		return err
	}

	_, err := c.Aliases()
	return err
}

func (c *Configuration) fs() afero.Fs {
	if c.configFs == nil {
		c.configFs = afero.NewBasePathFs(afero.NewOsFs(), c.configurationDir)
	}
	return c.configFs
}

// Dir returns the directory the configuration was loaded from.
func (c *Configuration) Dir() string {
	return c.configurationDir
}

// Aliases splits every alias definition into words.
func (c *Configuration) Aliases() (map[string][]string, error) {
	out := make(map[string][]string, len(c.AliasLines))
	for name, line := range c.AliasLines {
		words, err := shlex.Split(line, true)
		if err != nil {
			return nil, fmt.Errorf("alias %q: %w", name, err)
		}
		if len(words) == 0 {
			return nil, fmt.Errorf("alias %q: empty definition", name)
		}
		out[name] = words
	}
	return out, nil
}

// Environ returns the initial session variables as sorted "key=value"
// entries.
func (c *Configuration) Environ() []string {
	var out []string
	for k, v := range c.Env {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}

// HistoryPath returns the absolute path of the readline history, or the empty
// string if history is disabled.
func (c *Configuration) HistoryPath() string {
	if c.HistoryFile == "" {
		return ""
	}
	return c.resolve(c.HistoryFile)
}

// StartDir returns the directory sessions start in.
func (c *Configuration) StartDir() (string, error) {
	if c.WorkingDir != "" {
		return filepath.Abs(c.WorkingDir)
	}
	return os.Getwd()
}

// SessionFs is the filesystem builtins see. A sandboxed session reads the
// real filesystem but keeps its writes in memory. External programs always
// see the real filesystem.
func (c *Configuration) SessionFs() afero.Fs {
	base := afero.NewOsFs()
	if !c.Sandbox {
		return base
	}
	return afero.NewCopyOnWriteFs(afero.NewReadOnlyFs(base), afero.NewMemMapFs())
}

func (c *Configuration) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.configurationDir, name)
}

// OpenSessionLog opens the session log in an append only state. It returns
// nil and no error if logging is disabled.
func (c *Configuration) OpenSessionLog() (afero.File, error) {
	if c.SessionLog == "" {
		return nil, nil
	}
	return c.logFs().OpenFile(c.logName(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

// ReadSessionLog opens the session log for reading.
func (c *Configuration) ReadSessionLog() (afero.File, error) {
	if c.SessionLog == "" {
		return nil, fmt.Errorf("session logging is disabled")
	}
	return c.logFs().OpenFile(c.logName(), os.O_RDONLY, 0600)
}

// Absolute log paths bypass the configuration directory.
func (c *Configuration) logFs() afero.Fs {
	if filepath.IsAbs(c.SessionLog) {
		return afero.NewOsFs()
	}
	return c.fs()
}

func (c *Configuration) logName() string {
	return c.SessionLog
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}

// Default returns the built in configuration, rooted at dir.
func Default(dir string) *Configuration {
	out := defaultConfig()
	out.configurationDir = dir
	return out
}
