package zoneamento

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/rcbarbosa/zoneamento/domain"
)

// Config holds the project configuration. When a config directory is set via
// WithConfigDir the configuration is backed by a config.yaml file and the
// setter methods persist their changes; without one the zero values apply and
// changes stay in memory.
type Config struct {
	viper             *viper.Viper
	ConfigDir         string  `mapstructure:"config_dir"`          // Current config dir
	TargetCRS         string  `mapstructure:"target_crs"`          // Common frame override; empty means "use the base layer's frame"
	SliverToleranceHa float64 `mapstructure:"sliver_tolerance_ha"` // Overlap tolerance of the sliver audit; 0 disables it
	PublishExclusives bool    `mapstructure:"publish_exclusives"`  // Also publish per-layer "Área Camada NN" outputs in generic mode
	StyleDir          string  `mapstructure:"style_dir"`           // Directory for .qml style sidecars; empty disables styling
}

// SetTargetCRS overrides the common coordinate frame of future runs. An empty
// value restores the default of conditioning to the base layer's frame.
func (cfg *Config) SetTargetCRS(crs string) error {
	if crs != "" && !domain.CRS(crs).Valid() {
		return errors.New("target crs must be authority-qualified, e.g. EPSG:31982")
	}
	cfg.TargetCRS = crs
	return cfg.save("target_crs", crs)
}

// SetSliverTolerance sets the hectare tolerance of the generic-mode sliver
// audit. Zero or negative disables the audit.
func (cfg *Config) SetSliverTolerance(hectares float64) error {
	cfg.SliverToleranceHa = hectares
	return cfg.save("sliver_tolerance_ha", hectares)
}

// SetPublishExclusives toggles publication of the per-layer exclusive regions
// in generic mode.
func (cfg *Config) SetPublishExclusives(enabled bool) error {
	cfg.PublishExclusives = enabled
	return cfg.save("publish_exclusives", enabled)
}

// SetStyleDir sets the directory that receives .qml style sidecars for
// published layers. Empty disables style output.
func (cfg *Config) SetStyleDir(dir string) error {
	cfg.StyleDir = dir
	return cfg.save("style_dir", dir)
}

func (cfg *Config) save(key string, value any) error {
	if cfg.viper == nil {
		return nil
	}
	cfg.viper.Set(key, value)
	if err := cfg.viper.WriteConfig(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	if err := cfg.viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unmarshalling config to struct : %w", err)
	}
	return nil
}
