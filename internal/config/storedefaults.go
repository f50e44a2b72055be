package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// StoreDefaults is the visual theme applied to every newly created store.
type StoreDefaults struct {
	PrimaryColor   string `mapstructure:"primaryColor"`
	SecondaryColor string `mapstructure:"secondaryColor"`
	FontFamily     string `mapstructure:"fontFamily"`
	Layout         string `mapstructure:"layout"`
}

func DefaultStoreDefaults() StoreDefaults {
	return StoreDefaults{
		PrimaryColor:   "#1A1A2E",
		SecondaryColor: "#E94560",
		FontFamily:     "Cairo",
		Layout:         "classic",
	}
}

// StoreDefaultsHolder serves the current store defaults and hot-reloads
// them when the underlying config file changes.
type StoreDefaultsHolder struct {
	current atomic.Value // holds StoreDefaults
}

func NewStoreDefaultsHolder() (*StoreDefaultsHolder, error) {
	v := viper.New()

	v.SetConfigName("store")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/smartsell/config")
	v.AddConfigPath("/etc/smartsell")
	v.AddConfigPath(".")

	v.SetEnvPrefix("SMARTSELL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultStoreDefaults()
		v.SetDefault("store.theme.primaryColor", defaults.PrimaryColor)
		v.SetDefault("store.theme.secondaryColor", defaults.SecondaryColor)
		v.SetDefault("store.theme.fontFamily", defaults.FontFamily)
		v.SetDefault("store.theme.layout", defaults.Layout)
	}

	var cfg StoreDefaults
	if err := v.UnmarshalKey("store.theme", &cfg); err != nil {
		return nil, err
	}
	if err := validateStoreDefaults(cfg); err != nil {
		return nil, err
	}

	holder := &StoreDefaultsHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated StoreDefaults
		if err := v.UnmarshalKey("store.theme", &updated); err != nil {
			log.Printf("[store-config] reload failed: %v", err)
			return
		}
		if err := validateStoreDefaults(updated); err != nil {
			log.Printf("[store-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[store-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// NewStaticStoreDefaultsHolder wraps fixed defaults, used by tests.
func NewStaticStoreDefaultsHolder(cfg StoreDefaults) *StoreDefaultsHolder {
	holder := &StoreDefaultsHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *StoreDefaultsHolder) Get() StoreDefaults {
	return h.current.Load().(StoreDefaults)
}

func validateStoreDefaults(cfg StoreDefaults) error {
	if strings.TrimSpace(cfg.PrimaryColor) == "" {
		return errors.New("store.theme.primaryColor cannot be empty")
	}
	if strings.TrimSpace(cfg.Layout) == "" {
		return errors.New("store.theme.layout cannot be empty")
	}
	return nil
}
