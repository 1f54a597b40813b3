// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package conf

import (
	"fmt"

	"github.com/wrgl/snapdiff/pkg/slice"
)

const (
	DefaultPrimaryKey = "id"
	DefaultWorkers    = 4
)

type Diff struct {
	// PrimaryKey is the primary key column used for every table unless a table
	// specific key is given with "TABLE=COLUMN" on the command line. Defaults
	// to "id".
	PrimaryKey string `yaml:"primaryKey,omitempty" json:"primaryKey,omitempty"`

	// IgnoreTables are tables hidden from every diff output.
	IgnoreTables []string `yaml:"ignoreTables,omitempty" json:"ignoreTables,omitempty"`

	// IgnorePatterns are glob patterns matched against table names when a diff
	// starts. See https://github.com/gobwas/glob for supported format.
	IgnorePatterns []string `yaml:"ignorePatterns,omitempty" json:"ignorePatterns,omitempty"`

	// Workers is the number of tables aligned in parallel.
	Workers int `yaml:"workers,omitempty" json:"workers,omitempty"`
}

type CacheType string

func (s CacheType) String() string {
	return string(s)
}

const (
	// CTBadger keeps computed diffs in a badger database under the snapdiff dir.
	CTBadger CacheType = "badger"

	// CTSQLite keeps computed diffs in a sqlite file under the snapdiff dir.
	CTSQLite CacheType = "sqlite"

	// CTNone disables the diff cache.
	CTNone CacheType = "none"
)

type Cache struct {
	// Type selects the diff cache backend. Defaults to "badger".
	Type CacheType `yaml:"type,omitempty" json:"type,omitempty"`
}

type OutputFormat string

func (s OutputFormat) String() string {
	return string(s)
}

const (
	OFGUI  OutputFormat = "gui"
	OFText OutputFormat = "text"
	OFCSV  OutputFormat = "csv"
	OFJSON OutputFormat = "json"
)

var outputFormats = []string{OFGUI.String(), OFText.String(), OFCSV.String(), OFJSON.String()}

type Output struct {
	// Format is the default output format of `snapdiff diff`. When empty, the
	// interactive viewer is used on terminals and text everywhere else.
	Format OutputFormat `yaml:"format,omitempty" json:"format,omitempty"`

	// Color forces text output colour on or off.
	Color *bool `yaml:"color,omitempty" json:"color,omitempty"`
}

type Config struct {
	Diff   *Diff   `yaml:"diff,omitempty" json:"diff,omitempty"`
	Cache  *Cache  `yaml:"cache,omitempty" json:"cache,omitempty"`
	Output *Output `yaml:"output,omitempty" json:"output,omitempty"`
}

func (c *Config) PrimaryKey() string {
	if c.Diff != nil && c.Diff.PrimaryKey != "" {
		return c.Diff.PrimaryKey
	}
	return DefaultPrimaryKey
}

func (c *Config) Workers() int {
	if c.Diff != nil && c.Diff.Workers > 0 {
		return c.Diff.Workers
	}
	return DefaultWorkers
}

func (c *Config) IgnoreTables() []string {
	if c.Diff != nil {
		return c.Diff.IgnoreTables
	}
	return nil
}

func (c *Config) IgnorePatterns() []string {
	if c.Diff != nil {
		return c.Diff.IgnorePatterns
	}
	return nil
}

func (c *Config) CacheType() CacheType {
	if c.Cache != nil && c.Cache.Type != "" {
		return c.Cache.Type
	}
	return CTBadger
}

func (c *Config) OutputFormat() OutputFormat {
	if c.Output != nil {
		return c.Output.Format
	}
	return ""
}

// ColorEnabled reports whether colour was forced on or off, and whether the
// setting exists at all.
func (c *Config) ColorEnabled() (enabled, ok bool) {
	if c.Output != nil && c.Output.Color != nil {
		return *c.Output.Color, true
	}
	return false, false
}

// IgnoreTable adds table to diff.ignoreTables, or removes it if it is already
// there. It returns true if the table is now ignored.
func (c *Config) IgnoreTable(table string) bool {
	if c.Diff == nil {
		c.Diff = &Diff{}
	}
	for i, s := range c.Diff.IgnoreTables {
		if s == table {
			c.Diff.IgnoreTables = append(c.Diff.IgnoreTables[:i:i], c.Diff.IgnoreTables[i+1:]...)
			return false
		}
	}
	c.Diff.IgnoreTables = append(c.Diff.IgnoreTables, table)
	return true
}

// Validate checks enum fields.
func (c *Config) Validate() error {
	if c.Cache != nil && c.Cache.Type != "" {
		switch c.Cache.Type {
		case CTBadger, CTSQLite, CTNone:
		default:
			return fmt.Errorf("invalid cache.type %q: must be one of badger, sqlite, none", c.Cache.Type)
		}
	}
	if c.Output != nil && c.Output.Format != "" && !slice.StringSliceContains(outputFormats, c.Output.Format.String()) {
		return fmt.Errorf("invalid output.format %q: must be one of %v", c.Output.Format, outputFormats)
	}
	if c.Diff != nil && c.Diff.Workers < 0 {
		return fmt.Errorf("invalid diff.workers %d: must not be negative", c.Diff.Workers)
	}
	return nil
}
