// Package config loads the address-width constants and the operational
// knobs the translator's surrounding services need (swap database path,
// trace database path, monitoring port).
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries the environment-supplied constants from which every
// derived size in the page-table tree is computed, plus the paths and
// ports the surrounding services (backingstore, tracing, monitoring)
// need to run.
type Config struct {
	OffsetWidth          uint `json:"offset_width"`
	PhysicalAddressWidth uint `json:"physical_address_width"`
	VirtualAddressWidth  uint `json:"virtual_address_width"`

	SwapDBPath   string `json:"swap_db_path"`
	TraceDBPath  string `json:"trace_db_path"`
	MonitorPort  int    `json:"monitor_port"`
	LogLevel     string `json:"log_level"`

	// Derived fields, filled in by Derive.
	PageSize     uint64 `json:"-"`
	NumFrames    uint64 `json:"-"`
	NumPages     uint64 `json:"-"`
	TablesDepth  uint   `json:"-"`
}

// Load reads a JSON config file and overlays it with process environment
// variables loaded from an optional .env file (missing .env is not an
// error; the corpus's absence of a dotenv just means no overrides).
func Load(jsonPath string) (*Config, error) {
	cfg := &Config{}

	file, err := os.Open(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("opening config %s: %w", jsonPath, err)
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(cfg); err != nil {
		return nil, fmt.Errorf("decoding config %s: %w", jsonPath, err)
	}

	_ = godotenv.Load() // best-effort; absence of .env is normal

	cfg.applyEnvOverrides()

	if err := cfg.Derive(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("VMTRANSLATOR_SWAP_DB_PATH"); v != "" {
		c.SwapDBPath = v
	}
	if v := os.Getenv("VMTRANSLATOR_TRACE_DB_PATH"); v != "" {
		c.TraceDBPath = v
	}
	if v := os.Getenv("VMTRANSLATOR_MONITOR_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.MonitorPort = port
		}
	}
	if v := os.Getenv("VMTRANSLATOR_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// Derive computes PageSize, NumFrames, NumPages and TablesDepth from the
// three address widths (spec §3) and validates that there are enough
// frames for the allocator's fresh-frame path to ever have a chance of
// being viable (spec §4.2 failure semantics: NumFrames >= TablesDepth+1).
func (c *Config) Derive() error {
	if c.OffsetWidth == 0 {
		return fmt.Errorf("offset_width must be > 0")
	}
	if c.VirtualAddressWidth <= c.OffsetWidth {
		return fmt.Errorf("virtual_address_width must exceed offset_width")
	}
	if c.PhysicalAddressWidth <= c.OffsetWidth {
		return fmt.Errorf("physical_address_width must exceed offset_width")
	}

	c.PageSize = uint64(1) << c.OffsetWidth
	c.NumFrames = uint64(1) << (c.PhysicalAddressWidth - c.OffsetWidth)
	c.NumPages = uint64(1) << (c.VirtualAddressWidth - c.OffsetWidth)

	addrWalkWidth := c.VirtualAddressWidth - c.OffsetWidth
	c.TablesDepth = (addrWalkWidth + c.OffsetWidth - 1) / c.OffsetWidth

	if c.NumFrames < uint64(c.TablesDepth)+1 {
		return fmt.Errorf(
			"num_frames (%d) must be at least tables_depth+1 (%d)",
			c.NumFrames, c.TablesDepth+1)
	}

	return nil
}
