// Package main provides the basinsim command-line entry point: load a
// model definition, build the simulation, run it to completion, and
// log a completion summary (run ID, days simulated, component count).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"github.com/basinsim/basinsim/internal/constants"
	"github.com/basinsim/basinsim/internal/engine"
	"github.com/basinsim/basinsim/internal/log"
	"github.com/basinsim/basinsim/pkg/modeldef"
)

func main() {
	modelFile := flag.String("model", "model.yaml", "Path to model definition (.yaml or .db)")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("basinsim %s (%s/%s)\n", constants.Version, runtime.GOOS, runtime.GOARCH)
		os.Exit(0)
	}

	if err := log.Init(*debug); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	provider, err := openProvider(*modelFile)
	if err != nil {
		log.Errorf("failed to open model definition: %v", err)
		os.Exit(1)
	}
	defer provider.Close()

	def, err := provider.Load()
	if err != nil {
		log.Errorf("failed to load model definition: %v", err)
		os.Exit(1)
	}

	sim, err := engine.Build(def, log.GetSugaredLogger())
	if err != nil {
		log.Errorf("failed to build simulation: %v", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		log.Info("interrupt received, cancelling run after the current day completes")
		cancel()
	}()

	results, diag, err := sim.Run(ctx)
	if err != nil {
		log.Errorf("simulation run %s failed: %v", diag.RunID, err)
		os.Exit(1)
	}

	log.Infof("simulation run %s complete: %d days, %d components", diag.RunID, len(results.Dates()), len(diag.StepsCompleted))
}

func openProvider(path string) (modeldef.DefinitionProvider, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving model path: %w", err)
	}

	if strings.HasSuffix(abs, ".db") {
		return modeldef.NewSQLiteProvider(abs)
	}
	return modeldef.NewYAMLProvider(abs), nil
}
