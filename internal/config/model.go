// internal/config/model.go
//
// Typed configuration model for the Curriculum AI service.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from four overlay layers:
//
//   • static defaults                 – compiled in, see defaults(),
//   • optional YAML file              – path in AI_SERVICE_CONFIG,
//   • optional `.env`                 – dotenv values,
//   • process environment             – highest precedence.
//
// The `env` tag names the environment variable that feeds each leaf.  The
// validator reports missing fields under that name, so operators see the
// variable they have to set rather than a Go field path.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`.  Koanf ignores `yaml`
//     tags unless configured otherwise.
//   • Secret-bearing leaves may hold a `vault:` reference.  See secrets.go.
//   • Oxford commas, two spaces after periods.  No em-dash.

package config

import (
	"net"
	"strconv"
)

//
// Provider sections
//

// OpenAI holds credentials for the generative-AI provider.
type OpenAI struct {
	APIKey string `koanf:"api_key" env:"OPENAI_API_KEY" validate:"required"`
}

// Pinecone holds credentials and the index name for the vector-search
// provider.  All fields are optional.
type Pinecone struct {
	APIKey      string `koanf:"api_key"     env:"PINECONE_API_KEY"`
	Environment string `koanf:"environment" env:"PINECONE_ENVIRONMENT"`
	IndexName   string `koanf:"index_name"  env:"PINECONE_INDEX_NAME"`
}

//
// Backing stores
//

// Database holds the PostgreSQL connection URI.
type Database struct {
	URL string `koanf:"url" env:"DATABASE_URL"`
}

// Redis holds the cache connection URI.
type Redis struct {
	URL string `koanf:"url" env:"REDIS_URL"`
}

//
// Logging section
//

// Log tunes the zap logger.  An empty Dir keeps output on the console.
type Log struct {
	Level string `koanf:"level" env:"LOG_LEVEL"`
	Dir   string `koanf:"dir"   env:"LOG_DIR"`
}

//
// Root aggregate
//

// Config is the value returned by Load().  Treat it as read-only once
// built; pass it to whichever component needs it.
type Config struct {
	Port        int    `koanf:"port"        env:"PORT"`
	Environment string `koanf:"environment" env:"ENVIRONMENT"`

	OpenAI   OpenAI   `koanf:"openai"`
	Pinecone Pinecone `koanf:"pinecone"`
	Database Database `koanf:"database"`
	Redis    Redis    `koanf:"redis"`
	Log      Log      `koanf:"log"`
}

// ListenAddr returns ":<port>", i.e. every interface on the configured port.
func (c *Config) ListenAddr() string {
	return net.JoinHostPort("", strconv.Itoa(c.Port))
}

// IsProduction reports whether ENVIRONMENT is "production".
func (c *Config) IsProduction() bool { return c.Environment == "production" }
