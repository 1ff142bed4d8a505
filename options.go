package zoneamento

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/viper"

	"github.com/rcbarbosa/zoneamento/domain"
	"github.com/rcbarbosa/zoneamento/engine"
)

// WithOptions applies a series of configuration functions to the project.
// Each option function can modify the project configuration and return an
// error if it fails.
func (project *Project) WithOptions(options ...func(*Project) error) error {
	for _, option := range options {
		err := option(project)
		if err != nil {
			return fmt.Errorf("applying option on zoneamento : %w", err)
		}
	}
	return nil
}

// WithConfigDir configures the project to use the specified configuration
// directory. It creates the directory if it doesn't exist and initializes the
// configuration file using Viper.
func WithConfigDir(appConfigDir string) func(*Project) error {
	return func(project *Project) error {
		_, err := os.ReadDir(appConfigDir)
		if err != nil {
			if os.IsNotExist(err) {
				project.Logger.Info("creating config dir", "dir", appConfigDir)
				err := os.MkdirAll(appConfigDir, 0700)
				if err != nil {
					return fmt.Errorf("creating config dir %s: %w", appConfigDir, err)
				}
			} else {
				return fmt.Errorf("checking if directory exists %s: %w", appConfigDir, err)
			}
		}
		// At this point, the directory exists or was created successfully
		project.ConfigDir = appConfigDir

		v := viper.New()
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(appConfigDir)
		v.SetDefault("target_crs", "")
		v.SetDefault("sliver_tolerance_ha", 0.0)
		v.SetDefault("publish_exclusives", false)
		v.SetDefault("style_dir", "")
		err = v.ReadInConfig()
		if err != nil {
			// need to check if the error is config file doesn't exist
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				// Config file is not found
				err = v.SafeWriteConfig()
				if err != nil {
					return fmt.Errorf("writing config file : %w", err)
				}
			} else {
				return fmt.Errorf("reading config file : %w", err)
			}
		}
		if err := v.Unmarshal(project.Config); err != nil {
			return fmt.Errorf("unmarshalling config to struct : %w", err)
		}

		project.Config.viper = v
		project.Config.ConfigDir = appConfigDir
		v.Set("config_dir", appConfigDir)
		// Rewrite entire file from struct
		err = v.WriteConfig()
		if err != nil {
			return fmt.Errorf("writing config after unmarshalling : %w", err)
		}
		return nil
	}
}

// WithLogger sets the structured logger used by the project. A nil logger
// keeps the default discarding logger, so logging calls stay safe.
func WithLogger(logger *slog.Logger) func(*Project) error {
	return func(project *Project) error {
		if logger == nil {
			return nil
		}
		project.Logger = logger
		return nil
	}
}

// WithEngine sets the geometry engine that supplies the overlay primitives.
func WithEngine(geometryEngine engine.Engine) func(*Project) error {
	return func(project *Project) error {
		if geometryEngine == nil {
			return errors.New("engine must not be nil")
		}
		project.Engine = geometryEngine
		return nil
	}
}

// WithRepo sets the repository that persists runs, partitions and logs.
func WithRepo(repo domain.Repository) func(*Project) error {
	return func(project *Project) error {
		if repo == nil {
			return errors.New("repository must not be nil")
		}
		project.Repo = repo
		return nil
	}
}

// WithRegistry replaces the project's layer registry, letting a host share
// one registry across projects.
func WithRegistry(registry *Registry) func(*Project) error {
	return func(project *Project) error {
		if registry == nil {
			return errors.New("registry must not be nil")
		}
		project.Registry = registry
		return nil
	}
}

// WithPublishHandler takes a handler function that will be executed on each
// published partition.
func WithPublishHandler(handler func(layer *domain.Layer) error) func(*Project) error {
	return func(project *Project) error {
		if project.OnPublish != nil {
			return errors.New("project already has a publish handler defined")
		}
		project.OnPublish = handler
		return nil
	}
}

// WithTargetCRS overrides the common coordinate frame for conditioning
// without requiring a config directory.
func WithTargetCRS(crs domain.CRS) func(*Project) error {
	return func(project *Project) error {
		if crs != "" && !crs.Valid() {
			return errors.New("target crs must be authority-qualified, e.g. EPSG:31982")
		}
		project.Config.TargetCRS = string(crs)
		return nil
	}
}
