package webapp

import (
	"crypto/rand"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/pflag"
	fs "github.com/ungerik/go-fs"
	"gopkg.in/yaml.v3"

	"github.com/verisms/datatable"
)

// Defaults applied by Config.Validate
const (
	DefaultListen   = ":8080"
	DefaultPageSize = 10
	DefaultTitle    = "Activations"
)

// Config of the web frontend service.
//
// Values are read from a YAML file and
// can be overridden by command line flags,
// see NewFlagSet and LoadConfig.
type Config struct {
	// Listen is the TCP address of the HTTP server
	Listen string `yaml:"listen"`
	// AuthBaseURL of the authentication API.
	// Defaults to the mock API served under /api.
	AuthBaseURL string `yaml:"auth_base_url"`
	// MockAuthAPI serves an in-memory authentication API under /api
	MockAuthAPI bool `yaml:"mock_auth_api"`
	// PageSize of the dashboard table, negative disables pagination
	PageSize int `yaml:"page_size"`
	// DataFile is a CSV or Excel file with the dashboard rows,
	// sample activations are shown if empty
	DataFile string `yaml:"data_file"`
	// Database is used for the dashboard rows if its DSN is set
	Database Database `yaml:"database"`
	// Title of the dashboard table
	Title string `yaml:"title"`
	// DemoMode enables the demo login bypass
	DemoMode bool `yaml:"demo_mode"`
	// SessionKey signs the session cookies,
	// a random key is used if empty so sessions
	// don't survive a restart
	SessionKey string `yaml:"session_key"`
	// LogJSON writes JSON log records instead of text
	LogJSON bool `yaml:"log_json"`
	// Columns of the dashboard table,
	// ActivationColumns are used if empty
	Columns []datatable.Column `yaml:"columns"`
}

// Database selects the dashboard rows from a SQL database.
type Database struct {
	// Driver is the database/sql driver name, defaults to "sqlite"
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
	// Query selects the rows, result columns are
	// matched to table columns by key or title
	Query string `yaml:"query"`
}

// NewFlagSet returns the command line flags
// that override the values of a Config file.
func NewFlagSet(name string) *pflag.FlagSet {
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.String("config", "", "YAML config file")
	flags.String("listen", DefaultListen, "TCP address to listen on")
	flags.String("auth-url", "", "base URL of the authentication API (default: mock API of this server)")
	flags.Bool("mock-auth-api", true, "serve an in-memory authentication API under /api")
	flags.Int("page-size", DefaultPageSize, "rows per dashboard page, negative disables pagination")
	flags.String("data", "", "CSV or Excel file with the dashboard rows (default: sample activations)")
	flags.String("db-dsn", "", "SQL data source of the dashboard rows, takes precedence over --data")
	flags.String("db-query", "", "SQL query selecting the dashboard rows")
	flags.String("title", DefaultTitle, "title of the dashboard table")
	flags.Bool("demo", false, "enable the demo login (never in production)")
	flags.Bool("log-json", false, "write JSON log records")
	flags.BoolP("help", "h", false, "show help")
	return flags
}

// LoadConfig reads the YAML file named by the --config flag if set,
// then applies all flags that were explicitly passed,
// and finally validates the result.
// Flags that were not passed only apply
// their default if no config file was given.
func LoadConfig(flags *pflag.FlagSet) (*Config, error) {
	config := new(Config)

	configFile, _ := flags.GetString("config")
	if configFile != "" {
		err := config.ReadFile(fs.File(configFile))
		if err != nil {
			return nil, err
		}
	}

	var errs []error
	flags.VisitAll(func(flag *pflag.Flag) {
		if configFile != "" && !flag.Changed {
			return
		}
		errs = append(errs, config.applyFlag(flags, flag.Name))
	})
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// ReadFile unmarshals the YAML file into the config.
func (c *Config) ReadFile(file fs.FileReader) error {
	data, err := file.ReadAll()
	if err != nil {
		return fmt.Errorf("can't read config: %w", err)
	}
	err = yaml.Unmarshal(data, c)
	if err != nil {
		return fmt.Errorf("invalid config file %s: %w", file.Name(), err)
	}
	return nil
}

func (c *Config) applyFlag(flags *pflag.FlagSet, name string) (err error) {
	switch name {
	case "listen":
		c.Listen, err = flags.GetString(name)
	case "auth-url":
		c.AuthBaseURL, err = flags.GetString(name)
	case "mock-auth-api":
		c.MockAuthAPI, err = flags.GetBool(name)
	case "page-size":
		c.PageSize, err = flags.GetInt(name)
	case "data":
		c.DataFile, err = flags.GetString(name)
	case "db-dsn":
		c.Database.DSN, err = flags.GetString(name)
	case "db-query":
		c.Database.Query, err = flags.GetString(name)
	case "title":
		c.Title, err = flags.GetString(name)
	case "demo":
		c.DemoMode, err = flags.GetBool(name)
	case "log-json":
		c.LogJSON, err = flags.GetBool(name)
	}
	return err
}

// Validate sets defaults for empty values
// and returns an error for invalid ones.
func (c *Config) Validate() error {
	if c.Listen == "" {
		c.Listen = DefaultListen
	}
	if c.PageSize == 0 {
		c.PageSize = DefaultPageSize
	}
	if c.Title == "" {
		c.Title = DefaultTitle
	}
	if c.AuthBaseURL == "" {
		if !c.MockAuthAPI {
			return errors.New("auth_base_url is required without mock_auth_api")
		}
		c.AuthBaseURL = localURL(c.Listen) + "/api"
	}
	u, err := url.Parse(c.AuthBaseURL)
	if err != nil {
		return fmt.Errorf("invalid auth_base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("auth_base_url %q must be a http or https URL", c.AuthBaseURL)
	}

	if c.Database.DSN != "" {
		if c.Database.Driver == "" {
			c.Database.Driver = "sqlite"
		}
		if c.Database.Query == "" {
			return errors.New("database query is required with a database dsn")
		}
	}

	if len(c.Columns) == 0 {
		c.Columns = ActivationColumns()
	}
	keys := make(map[string]bool, len(c.Columns))
	for i, column := range c.Columns {
		switch {
		case column.Key == "":
			return fmt.Errorf("column %d has no key", i)
		case keys[column.Key]:
			return fmt.Errorf("duplicate column key %q", column.Key)
		}
		keys[column.Key] = true
		switch column.Type {
		case "", datatable.ColumnTypeText, datatable.ColumnTypeDate, datatable.ColumnTypeTagged:
		default:
			return fmt.Errorf("column %q has invalid type %q", column.Key, column.Type)
		}
	}
	return nil
}

func localURL(listen string) string {
	if strings.HasPrefix(listen, ":") {
		return "http://localhost" + listen
	}
	return "http://" + listen
}

func (c *Config) sessionKey() []byte {
	if c.SessionKey != "" {
		return []byte(c.SessionKey)
	}
	key := make([]byte, 32)
	rand.Read(key) //nolint:errcheck
	return key
}
