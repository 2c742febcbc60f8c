package bubbleview

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix for config overrides,
// e.g. BUBBLEVIEW_TAP_TIME=400ms.
const envPrefix = "BUBBLEVIEW"

// ErrInvalidConfig is returned (wrapped) by Validate and LoadConfig when a
// setting is out of range.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the tunable constants of the interaction core. The defaults
// were chosen empirically and are kept configurable rather than derived.
type Config struct {
	// BaseWorldHeight is the visible world height at zoom 1.
	BaseWorldHeight float64 `mapstructure:"base_world_height"`
	// CameraZ is the Z position of the orthographic camera; rays are cast
	// from it toward -Z.
	CameraZ float64 `mapstructure:"camera_z"`
	MinZoom float64 `mapstructure:"min_zoom"`
	MaxZoom float64 `mapstructure:"max_zoom"`

	// PickMargin scales a target's screen radius in the fallback pick phase.
	PickMargin float64 `mapstructure:"pick_margin"`

	TapMovePx     float64       `mapstructure:"tap_move_px"`
	TapTime       time.Duration `mapstructure:"tap_time"`
	DoubleTapTime time.Duration `mapstructure:"double_tap_time"`
	DoubleTapPx   float64       `mapstructure:"double_tap_px"`

	MiddleMovePx    float64       `mapstructure:"middle_move_px"`
	MiddleClickTime time.Duration `mapstructure:"middle_click_time"`

	// PanelDisarm is how long a freshly shown overlay region swallows
	// pointer events.
	PanelDisarm time.Duration `mapstructure:"panel_disarm"`

	// PanModifiers names the modifier keys that turn a primary-button press
	// into a pan: any of "shift", "ctrl", "alt", "meta".
	PanModifiers []string `mapstructure:"pan_modifiers"`

	ReadoutLabel string `mapstructure:"readout_label"`
	DetailMode   bool   `mapstructure:"detail_mode"`
}

// DefaultConfig returns the stock thresholds.
func DefaultConfig() Config {
	return Config{
		BaseWorldHeight: 12,
		CameraZ:         60,
		MinZoom:         0.5,
		MaxZoom:         3.5,
		PickMargin:      1.12,
		TapMovePx:       10,
		TapTime:         320 * time.Millisecond,
		DoubleTapTime:   320 * time.Millisecond,
		DoubleTapPx:     18,
		MiddleMovePx:    4,
		MiddleClickTime: 250 * time.Millisecond,
		PanelDisarm:     140 * time.Millisecond,
		PanModifiers:    []string{"alt"},
		ReadoutLabel:    "AIR",
		DetailMode:      true,
	}
}

// Validate reports the first out-of-range setting.
func (c Config) Validate() error {
	switch {
	case c.BaseWorldHeight <= 0:
		return fmt.Errorf("%w: base_world_height must be > 0, got %v", ErrInvalidConfig, c.BaseWorldHeight)
	case c.MinZoom <= 0:
		return fmt.Errorf("%w: min_zoom must be > 0, got %v", ErrInvalidConfig, c.MinZoom)
	case c.MaxZoom < c.MinZoom:
		return fmt.Errorf("%w: max_zoom %v below min_zoom %v", ErrInvalidConfig, c.MaxZoom, c.MinZoom)
	case c.MinZoom > 1 || c.MaxZoom < 1:
		return fmt.Errorf("%w: zoom range [%v, %v] must contain 1", ErrInvalidConfig, c.MinZoom, c.MaxZoom)
	case c.PickMargin < 1:
		return fmt.Errorf("%w: pick_margin must be >= 1, got %v", ErrInvalidConfig, c.PickMargin)
	case c.TapMovePx < 0 || c.DoubleTapPx < 0 || c.MiddleMovePx < 0:
		return fmt.Errorf("%w: pixel thresholds must be >= 0", ErrInvalidConfig)
	case c.TapTime < 0 || c.DoubleTapTime < 0 || c.MiddleClickTime < 0 || c.PanelDisarm < 0:
		return fmt.Errorf("%w: durations must be >= 0", ErrInvalidConfig)
	}
	if _, err := ParseModifiers(c.PanModifiers); err != nil {
		return err
	}
	return nil
}

// ParseModifiers converts modifier names into a KeyModifiers mask.
func ParseModifiers(names []string) (KeyModifiers, error) {
	var mods KeyModifiers
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "shift":
			mods |= ModShift
		case "ctrl", "control":
			mods |= ModCtrl
		case "alt", "option":
			mods |= ModAlt
		case "meta", "cmd", "super":
			mods |= ModMeta
		default:
			return 0, fmt.Errorf("%w: unknown modifier %q", ErrInvalidConfig, name)
		}
	}
	return mods, nil
}

// newViper builds a Viper instance seeded with DefaultConfig so that a
// partial file only overrides what it names.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := DefaultConfig()
	v.SetDefault("base_world_height", d.BaseWorldHeight)
	v.SetDefault("camera_z", d.CameraZ)
	v.SetDefault("min_zoom", d.MinZoom)
	v.SetDefault("max_zoom", d.MaxZoom)
	v.SetDefault("pick_margin", d.PickMargin)
	v.SetDefault("tap_move_px", d.TapMovePx)
	v.SetDefault("tap_time", d.TapTime)
	v.SetDefault("double_tap_time", d.DoubleTapTime)
	v.SetDefault("double_tap_px", d.DoubleTapPx)
	v.SetDefault("middle_move_px", d.MiddleMovePx)
	v.SetDefault("middle_click_time", d.MiddleClickTime)
	v.SetDefault("panel_disarm", d.PanelDisarm)
	v.SetDefault("pan_modifiers", d.PanModifiers)
	v.SetDefault("readout_label", d.ReadoutLabel)
	v.SetDefault("detail_mode", d.DetailMode)
	return v
}

func decodeConfig(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads the config file at path (YAML, TOML or JSON, chosen by
// extension), applies BUBBLEVIEW_* environment overrides and fills unset
// keys from DefaultConfig.
func LoadConfig(path string) (Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("read config %q: %w", path, err)
	}
	return decodeConfig(v)
}

// WatchConfig calls onChange with the re-read Config each time the file at
// path changes on disk. Changes that fail to decode or validate are
// dropped and reported to onError when it is non-nil. The watcher runs on
// viper's goroutine; callers must hand the result to the UI thread before
// applying it.
func WatchConfig(path string, onChange func(Config), onError func(error)) error {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %q: %w", path, err)
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := decodeConfig(v)
		if err != nil {
			if onError != nil {
				onError(fmt.Errorf("reload %q: %w", e.Name, err))
			}
			return
		}
		onChange(cfg)
	})
	v.WatchConfig()
	return nil
}
