package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const envPrefix = "FINANZ_"

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Application struct {
	Host     string   `koanf:"host"`
	Database Database `koanf:"db"`
	Seed     Seed     `koanf:"seed"`
}

type Database struct {
	Driver string `koanf:"driver"`
	// Path is the SQLite database file, ":memory:" for a throwaway store.
	Path   string `koanf:"path"`
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

type Seed struct {
	SampleData bool `koanf:"sampledata"`
}

func defaults() Application {
	return Application{
		Host: ":8181",
		Database: Database{
			Driver: DriverSQLite,
			Path:   "finanzapp.db",
			Host:   "localhost",
			Port:   5432,
			User:   "finanzapp",
			Name:   "finanzapp",
			Schema: "public",
		},
		Seed: Seed{
			SampleData: true,
		},
	}
}

// Load reads configuration from defaults, then the YAML file at path, then
// a .env file in the working directory and finally FINANZ_* variables.
func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(defaults(), "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	// Existing environment variables win over .env entries.
	if err := godotenv.Load(); err == nil {
		log.Debug("Loaded environment from .env")
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, envPrefix)), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	if err := app.Validate(); err != nil {
		return Application{}, err
	}

	return app, nil
}

func (a Application) Validate() error {
	var errs []error
	if a.Host == "" {
		errs = append(errs, errors.New("host must not be empty"))
	}
	switch a.Database.Driver {
	case DriverSQLite:
		if a.Database.Path == "" {
			errs = append(errs, errors.New("db.path is required for the sqlite driver"))
		}
	case DriverPostgres:
		if a.Database.Host == "" || a.Database.Name == "" {
			errs = append(errs, errors.New("db.host and db.name are required for the postgres driver"))
		}
		if a.Database.Port <= 0 || a.Database.Port > 65535 {
			errs = append(errs, fmt.Errorf("db.port %d out of range", a.Database.Port))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported db.driver %q", a.Database.Driver))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}
