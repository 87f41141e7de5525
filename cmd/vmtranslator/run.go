package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/Nenimor/Virtual-Memory-Hierarchical-Page-Tables-Implementation/backingstore"
	"github.com/Nenimor/Virtual-Memory-Hierarchical-Page-Tables-Implementation/config"
	"github.com/Nenimor/Virtual-Memory-Hierarchical-Page-Tables-Implementation/monitoring"
	"github.com/Nenimor/Virtual-Memory-Hierarchical-Page-Tables-Implementation/physmem"
	"github.com/Nenimor/Virtual-Memory-Hierarchical-Page-Tables-Implementation/tracing"
	"github.com/Nenimor/Virtual-Memory-Hierarchical-Page-Tables-Implementation/vm"
)

var (
	configPath    string
	tracePath     string
	enableMonitor bool
)

func init() {
	runCmd.Flags().StringVar(&configPath, "config", "vmtranslator.json",
		"path to the JSON geometry/operations config")
	runCmd.Flags().StringVar(&tracePath, "trace", "",
		"path to a trace file of `R addr` / `W addr value` lines to replay")
	runCmd.Flags().BoolVar(&enableMonitor, "monitor", false,
		"start the monitoring HTTP server alongside the replay")

	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Replay a virtual-address trace against a fresh translator.",
	RunE:  runTranslator,
}

func runTranslator(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	mem := physmem.New(cfg.NumFrames, cfg.PageSize)

	swap, err := backingstore.Open(cfg.SwapDBPath, mem, cfg.PageSize)
	if err != nil {
		return fmt.Errorf("opening swap store: %w", err)
	}
	atexit.Register(func() { swap.Close() })

	recorder, err := tracing.Open(cfg.TraceDBPath)
	if err != nil {
		return fmt.Errorf("opening trace recorder: %w", err)
	}
	atexit.Register(func() { recorder.Close() })

	translator := vm.New(
		mem, swap, cfg.PageSize, cfg.NumFrames, cfg.NumPages,
		cfg.TablesDepth, cfg.OffsetWidth,
	).WithEventSink(recorder).WithLogLevel(cfg.LogLevel)

	if err := translator.Initialize(); err != nil {
		return fmt.Errorf("initializing translator: %w", err)
	}

	if enableMonitor {
		mon := monitoring.NewMonitor(translator).WithPortNumber(cfg.MonitorPort)
		addr, err := mon.StartServer()
		if err != nil {
			return fmt.Errorf("starting monitor: %w", err)
		}
		log.Printf("monitoring on http://%s", addr)
	}

	if tracePath != "" {
		if err := replay(translator, tracePath); err != nil {
			return fmt.Errorf("replaying trace %s: %w", tracePath, err)
		}
	}

	fmt.Printf("faults=%d fresh=%d reclaims=%d evictions=%d\n",
		translator.Stats.Faults, translator.Stats.Fresh,
		translator.Stats.Reclaims, translator.Stats.Evictions)

	return nil
}

// replay parses lines of the form "R <addr>" or "W <addr> <value>" from
// path and applies them to translator in order.
func replay(translator *vm.Translator, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch strings.ToUpper(fields[0]) {
		case "R":
			addr, err := strconv.ParseUint(fields[1], 10, 64)
			if err != nil {
				return fmt.Errorf("line %d: bad address %q", lineNo, fields[1])
			}
			if _, ok := translator.Read(addr); !ok {
				return fmt.Errorf("line %d: read(%d) failed", lineNo, addr)
			}

		case "W":
			addr, err := strconv.ParseUint(fields[1], 10, 64)
			if err != nil {
				return fmt.Errorf("line %d: bad address %q", lineNo, fields[1])
			}
			value, err := strconv.ParseInt(fields[2], 10, 64)
			if err != nil {
				return fmt.Errorf("line %d: bad value %q", lineNo, fields[2])
			}
			if ok := translator.Write(addr, value); !ok {
				return fmt.Errorf("line %d: write(%d, %d) failed", lineNo, addr, value)
			}

		default:
			return fmt.Errorf("line %d: unknown operation %q", lineNo, fields[0])
		}
	}

	return scanner.Err()
}
