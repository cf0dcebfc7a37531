// Package config loads storefront settings from CUE.
//
// The embedded schema carries every default. A user file is unified with
// the #Config definition, so it may override any subset of fields and is
// rejected if it names a field the schema does not know.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/ambercart/internal/extract"
	"github.com/roach88/ambercart/internal/order"
	"github.com/roach88/ambercart/internal/view"
)

//go:embed schema.cue
var schemaCUE string

// Config is the decoded storefront configuration.
type Config struct {
	StorageKey  string             `json:"storage_key"`
	Locale      string             `json:"locale"`
	Currency    string             `json:"currency"`
	NoticeTTLMS int                `json:"notice_ttl_ms"`
	Links       order.Links        `json:"links"`
	Messages    order.Messages     `json:"messages"`
	Labels      view.Labels        `json:"labels"`
	Vocabulary  extract.Vocabulary `json:"vocabulary"`
}

// NoticeTTL returns how long transient notices stay visible.
func (c Config) NoticeTTL() time.Duration {
	return time.Duration(c.NoticeTTLMS) * time.Millisecond
}

// Default returns the schema defaults.
func Default() (Config, error) {
	return decode(nil, "")
}

// Load reads a CUE file and applies it over the defaults.
// An empty path returns Default().
func Load(path string) (Config, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return decode(data, path)
}

// Parse applies CUE source over the defaults.
func Parse(src []byte) (Config, error) {
	return decode(src, "config.cue")
}

func decode(src []byte, filename string) (Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return Config{}, fmt.Errorf("building config schema: %w", err)
	}
	value := schema.LookupPath(cue.ParsePath("#Config"))

	if src != nil {
		user := ctx.CompileBytes(src, cue.Filename(filename))
		if err := user.Err(); err != nil {
			return Config{}, fmt.Errorf("compiling %s: %w", filename, err)
		}
		value = value.Unify(user)
	}

	if err := value.Validate(cue.Concrete(true)); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	var cfg Config
	if err := value.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}
