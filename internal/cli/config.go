package cli

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"artist-portfolio/internal/gallery"
)

const (
	keyAPIURL   = "api_url"
	keyToken    = "token"
	keyPageSize = "page_size"
)

type Config struct {
	APIURL   string `mapstructure:"api_url"`
	Token    string `mapstructure:"token"`
	PageSize int    `mapstructure:"page_size"`
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".galleryctl.yaml"
	}
	return filepath.Join(home, ".galleryctl.yaml")
}

// newViper reads path (when it exists) and GALLERYCTL_* variables. Flags are
// bound by the root command and win over both.
func newViper(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("GALLERYCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault(keyAPIURL, "http://localhost:8080")
	v.SetDefault(keyToken, "")
	v.SetDefault(keyPageSize, gallery.DefaultPageSize)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return v, nil
}

func loadConfig(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	cfg.APIURL = strings.TrimRight(strings.TrimSpace(cfg.APIURL), "/")
	if cfg.PageSize <= 0 {
		cfg.PageSize = gallery.DefaultPageSize
	}
	return cfg, nil
}

// saveToken persists the token next to the other settings with 0600 rights.
func saveToken(v *viper.Viper, path, token string) error {
	v.Set(keyToken, token)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := v.WriteConfigAs(path); err != nil {
		return err
	}
	return os.Chmod(path, 0o600)
}
