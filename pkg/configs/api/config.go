package api

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the configuration of the mlrund control-plane daemon.
type Config struct {
	// port the REST API listens on.
	ServerPort string `yaml:"port"`

	// connection string for the database.
	DBURI string `yaml:"dbURI"`

	Pagination PaginationConfig `yaml:"pagination"`
}

type PaginationConfig struct {
	// page size applied when a caller paginates without one. default = 20.
	DefaultPageSize int `yaml:"defaultPageSize"`

	// highest page number a caller may request. default = 1000000.
	PageLimit int `yaml:"pageLimit"`

	// largest page size a caller may request. default = 200.
	PageSizeLimit int `yaml:"pageSizeLimit"`

	Cache CacheConfig `yaml:"cache"`
}

type CacheConfig struct {
	// records unused for longer than this are evicted. default = 1h.
	TTL Duration `yaml:"ttl"`

	// the cache never keeps more records than this. default = 10000.
	MaxSize int `yaml:"maxSize"`

	// how often the janitor sweeps. default = 1m.
	MonitorInterval Duration `yaml:"monitorInterval"`
}

// Duration is time.Duration readable from YAML,
// either as a go duration string ("90s", "1h30m") or as bare seconds.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var seconds int64
	if err := node.Decode(&seconds); err == nil {
		*d = Duration(time.Duration(seconds) * time.Second)
		return nil
	}

	var expr string
	if err := node.Decode(&expr); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(expr)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

func Load(filepath string) (*Config, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}
	return Unmarshal(content)
}

func Unmarshal(conf []byte) (*Config, error) {
	var out Config
	if err := yaml.Unmarshal(conf, &out); err != nil {
		return nil, err
	}
	out.applyDefaults()
	if err := out.validate(); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Config) applyDefaults() {
	if c.ServerPort == "" {
		c.ServerPort = "8080"
	}
	p := &c.Pagination
	if p.DefaultPageSize == 0 {
		p.DefaultPageSize = 20
	}
	if p.PageLimit == 0 {
		p.PageLimit = 1000000
	}
	if p.PageSizeLimit == 0 {
		p.PageSizeLimit = 200
	}
	if p.Cache.TTL == 0 {
		p.Cache.TTL = Duration(time.Hour)
	}
	if p.Cache.MaxSize == 0 {
		p.Cache.MaxSize = 10000
	}
	if p.Cache.MonitorInterval == 0 {
		p.Cache.MonitorInterval = Duration(time.Minute)
	}
}

func (c *Config) validate() error {
	p := c.Pagination
	if p.DefaultPageSize < 1 {
		return fmt.Errorf("pagination.defaultPageSize should be positive: %d", p.DefaultPageSize)
	}
	if p.PageLimit < 1 {
		return fmt.Errorf("pagination.pageLimit should be positive: %d", p.PageLimit)
	}
	if p.PageSizeLimit < p.DefaultPageSize {
		return fmt.Errorf(
			"pagination.pageSizeLimit (%d) should not be smaller than defaultPageSize (%d)",
			p.PageSizeLimit, p.DefaultPageSize,
		)
	}
	if p.Cache.TTL < 0 || p.Cache.MaxSize < 1 || p.Cache.MonitorInterval <= 0 {
		return fmt.Errorf("pagination.cache is malformed")
	}
	return nil
}
