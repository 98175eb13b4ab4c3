package store

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/ideabook/pkg/layout"
)

const (
	KeyRoot              = "root"
	KeyTagBackend        = "tags.backend"
	KeyDefaultCategories = "categories.defaults"
	KeyLogLevel          = "log.level"
	KeyLogDevelopment    = "log.development"

	BackendFile  = "file"
	BackendDiskv = "diskv"
)

// Config is the resolved runtime configuration.
type Config interface {
	// Root is the storage root every idea, tag and category lives under.
	Root() string
	// TagBackend is BackendFile or BackendDiskv.
	TagBackend() string
	// DefaultCategories seeds a fresh category list.
	DefaultCategories() []string
	LogLevel() string
	Development() bool
}

// LoadConfig reads the optional .ideabook config file and IDEABOOK_*
// environment overrides.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetConfigName(".ideabook") // .yaml is implicit
	v.SetEnvPrefix("IDEABOOK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("IDEABOOK_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}
	return LoadConfigFrom(v)
}

// LoadConfigFrom resolves a Config from an already populated viper instance.
func LoadConfigFrom(v *viper.Viper) (Config, error) {
	v.SetDefault(KeyTagBackend, BackendFile)
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogDevelopment, false)

	root := strings.TrimSpace(v.GetString(KeyRoot))
	if root == "" {
		dir, err := DefaultDirectory()
		if err != nil {
			return nil, err
		}
		root = filepath.Join(dir, layout.DefaultFolder)
	} else {
		expanded, err := homedir.Expand(root)
		if err != nil {
			return nil, fmt.Errorf("store: expand root %q: %w", root, err)
		}
		root = expanded
	}

	backend := strings.ToLower(strings.TrimSpace(v.GetString(KeyTagBackend)))
	switch backend {
	case BackendFile, BackendDiskv:
	default:
		return nil, fmt.Errorf("store: unknown tag backend %q", backend)
	}

	return &Settings{
		RootDir:    filepath.Clean(root),
		Backend:    backend,
		Categories: v.GetStringSlice(KeyDefaultCategories),
		Level:      v.GetString(KeyLogLevel),
		Dev:        v.GetBool(KeyLogDevelopment),
	}, nil
}

// Settings is a plain Config.
type Settings struct {
	RootDir    string   `json:"root" yaml:"root"`
	Backend    string   `json:"tagBackend" yaml:"tagBackend"`
	Categories []string `json:"defaultCategories,omitempty" yaml:"defaultCategories,omitempty"`
	Level      string   `json:"logLevel" yaml:"logLevel"`
	Dev        bool     `json:"development" yaml:"development"`
}

var _ Config = (*Settings)(nil)

func (s *Settings) Root() string { return s.RootDir }

func (s *Settings) TagBackend() string {
	if s.Backend == "" {
		return BackendFile
	}
	return s.Backend
}

func (s *Settings) DefaultCategories() []string { return s.Categories }
func (s *Settings) LogLevel() string            { return s.Level }
func (s *Settings) Development() bool           { return s.Dev }

// DefaultDirectory is the per-user application data directory the storage
// root is created in.
func DefaultDirectory() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("store: resolve home directory: %w", err)
	}
	return defaultDirectory(runtime.GOOS, os.Getenv("APPDATA"), home), nil
}

func defaultDirectory(goos, appData, home string) string {
	switch goos {
	case "windows":
		if appData != "" {
			return appData
		}
		return home
	case "darwin":
		return filepath.Join(home, "Library", "Application Support")
	default:
		return home
	}
}
