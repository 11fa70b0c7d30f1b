package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Settings is the kiosk's operator-editable configuration. It lives as a
// YAML file in the user config directory and is created with defaults on
// first run.
type Settings struct {
	// SaveDirectory is where the per-date workbooks are written.
	SaveDirectory string `mapstructure:"save_directory"`
	// SheetPassword gates workbook edits outside the kiosk.
	SheetPassword string `mapstructure:"sheet_password"`
	AppTitle      string `mapstructure:"app_title"`
	// AdminMode enables the staff administration endpoints.
	AdminMode bool `mapstructure:"admin_mode"`

	ListenAddress string `mapstructure:"listen_address"`
	DatabasePath  string `mapstructure:"database_path"`
	LogLevel      string `mapstructure:"log_level"`

	// AdminPassword and JWTSecret back the admin login. Both should be
	// changed from their defaults on any shared machine.
	AdminPassword string `mapstructure:"admin_password"`
	JWTSecret     string `mapstructure:"jwt_secret"`
}

// Load reads the settings file, writing one with defaults when missing.
func Load() (*Settings, error) {
	path, err := configFilePath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads settings from an explicit file path. Tests point this
// at a temp directory.
func LoadFrom(path string) (*Settings, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("error creating config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := setDefaults(v); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok || os.IsNotExist(err) {
			if err := v.WriteConfigAs(path); err != nil {
				return nil, fmt.Errorf("error creating config file: %w", err)
			}
		} else {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	return &settings, nil
}

func setDefaults(v *viper.Viper) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("error locating home directory: %w", err)
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return fmt.Errorf("error locating config directory: %w", err)
	}

	v.SetDefault("save_directory", filepath.Join(homeDir, "Desktop", "SignInSheet"))
	v.SetDefault("sheet_password", "lsst1234")
	v.SetDefault("app_title", "LSST")
	v.SetDefault("admin_mode", false)
	v.SetDefault("listen_address", "127.0.0.1:8847")
	v.SetDefault("database_path", filepath.Join(configDir, "signin", "tap_history.db"))
	v.SetDefault("log_level", "warn")
	v.SetDefault("admin_password", "admin")
	v.SetDefault("jwt_secret", "change-me-before-deploying")
	return nil
}

func configFilePath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("error locating config directory: %w", err)
	}
	return filepath.Join(configDir, "signin", "settings.yml"), nil
}
