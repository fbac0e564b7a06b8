package validation

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/flightreg/internal/schema"
)

// DefaultSchemaPath is the conventional schema location, relative to Root.
const DefaultSchemaPath = "schemas/aircraft_schema.json"

// DefaultCategories are the top-level registry directories, in scan order.
var DefaultCategories = []string{
	"01_Military_Aviation",
	"02_Unmanned_Systems",
	"03_Civilian_&_Commercial",
	"04_Space_&_Hypersonic",
	"05_Core_Technologies",
}

// DataExtensions are the recognized data file suffixes.
var DataExtensions = []string{".yaml", ".yml"}

// Config controls a validation pass. Zero fields take defaults.
type Config struct {
	// SchemaPath is used as given; it is not joined with Root.
	SchemaPath string
	Root       string
	Categories []string
	Extensions []string

	Logger *slog.Logger

	// LoadSchema defaults to schema.Load.
	LoadSchema func(path string) (schema.Checker, error)
	// Now and NewRunID stamp the Summary; tests replace them for determinism.
	Now      func() time.Time
	NewRunID func() string
}

// DefaultConfig returns the conventional configuration: schema and category
// directories resolved against the working directory.
func DefaultConfig() Config {
	return Config{
		SchemaPath: DefaultSchemaPath,
		Root:       ".",
		Categories: DefaultCategories,
		Extensions: DataExtensions,
	}
}

func (c Config) withDefaults() Config {
	if c.SchemaPath == "" {
		c.SchemaPath = DefaultSchemaPath
	}
	if c.Root == "" {
		c.Root = "."
	}
	if c.Categories == nil {
		c.Categories = DefaultCategories
	}
	if c.Extensions == nil {
		c.Extensions = DataExtensions
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.LoadSchema == nil {
		c.LoadSchema = schema.Load
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.NewRunID == nil {
		c.NewRunID = uuid.NewString
	}
	return c
}
