// Package engine drives the day-by-day simulation loop: refresh climate
// drivers, transfer pre-step inputs, step every component in its fixed
// order, and record outputs into the result table. Grounded on the
// teacher's App.Run (internal/app/app.go) for the overall
// build-then-run shape, generalized from "start long-lived weather
// station goroutines" to "advance one deterministic day at a time".
package engine

import (
	"context"
	"fmt"

	"github.com/basinsim/basinsim/internal/components"
	"github.com/basinsim/basinsim/internal/drivers"
	"github.com/basinsim/basinsim/internal/model"
	"github.com/basinsim/basinsim/internal/network"
	"github.com/basinsim/basinsim/internal/runid"
	"github.com/basinsim/basinsim/internal/simerrors"
	"github.com/basinsim/basinsim/pkg/modeldef"
	"github.com/basinsim/basinsim/pkg/resulttable"
	"go.uber.org/zap"
)

// Simulation is a fully built, ready-to-run model: its component graph,
// fixed execution order, and climate driver registry.
type Simulation struct {
	name      string
	startDate model.Date
	endDate   model.Date

	graph     *network.Graph
	scheduler *network.Scheduler
	climate   *drivers.Registry

	logger *zap.SugaredLogger
}

// RunDiagnostics summarizes one run for observability: its run ID, the
// date range covered, and how many timesteps each component completed
// before the run ended (equal across every component on a clean run,
// short on the failing component and any component never reached on a
// failed run).
type RunDiagnostics struct {
	RunID          runid.ID
	StartDate      model.Date
	EndDate        model.Date
	StepsCompleted map[string]int
}

// Build validates def and constructs a ready-to-run Simulation: it
// builds every component, resolves connections into a graph, computes
// the execution order (failing on an unbreakable cycle), and assembles
// the climate driver registry.
func Build(def *modeldef.Definition, logger *zap.SugaredLogger) (*Simulation, error) {
	startDate, err := model.ParseDate(def.StartDate)
	if err != nil {
		return nil, &simerrors.ConfigurationError{Component: def.Name, Field: "start_date", Reason: err.Error()}
	}
	endDate, err := model.ParseDate(def.EndDate)
	if err != nil {
		return nil, &simerrors.ConfigurationError{Component: def.Name, Field: "end_date", Reason: err.Error()}
	}
	if endDate.Before(startDate) {
		return nil, &simerrors.ConfigurationError{Component: def.Name, Field: "end_date", Reason: "must not be before start_date"}
	}

	comps := make(map[string]model.Component, len(def.Components))
	for _, cd := range def.Components {
		comp, err := components.New(cd)
		if err != nil {
			return nil, err
		}
		if _, exists := comps[cd.Name]; exists {
			return nil, &simerrors.ConfigurationError{Component: cd.Name, Reason: "duplicate component name"}
		}
		comps[cd.Name] = comp
	}

	graph, err := network.Build(comps, def.Connections)
	if err != nil {
		return nil, err
	}

	scheduler, err := network.NewScheduler(graph)
	if err != nil {
		return nil, err
	}

	climate, err := buildClimate(def.Climate, startDate)
	if err != nil {
		return nil, err
	}

	return &Simulation{
		name:      def.Name,
		startDate: startDate,
		endDate:   endDate,
		graph:     graph,
		scheduler: scheduler,
		climate:   climate,
		logger:    logger,
	}, nil
}

// Run advances the simulation one day at a time from start to end
// (inclusive), returning the accumulated result table and a
// RunDiagnostics recording how many days each component completed. ctx
// is checked between timesteps, never mid-step: a cancellation takes
// effect only once the in-flight day's components have all stepped. On
// a failed run, the returned table holds every prior day's results and
// diagnostics.StepsCompleted shows exactly where the run stopped. When a
// component's Step fails, the error is a *simerrors.SimulationError
// carrying the date and component; a climate driver failure is returned
// as a wrapped driver error, and a cancellation as ctx.Err().
func (s *Simulation) Run(ctx context.Context) (*resulttable.Table, *RunDiagnostics, error) {
	diag := &RunDiagnostics{
		RunID:          runid.New(),
		StartDate:      s.startDate,
		EndDate:        s.endDate,
		StepsCompleted: make(map[string]int, len(s.graph.Components)),
	}
	results := resulttable.New()
	order := s.scheduler.Order()

	if s.logger != nil {
		s.logger.Infow("starting simulation run", "run_id", diag.RunID, "model", s.name, "start", s.startDate.String(), "end", s.endDate.String())
	}

	for date := s.startDate; !date.After(s.endDate); date = date.Add(1) {
		select {
		case <-ctx.Done():
			return results, diag, ctx.Err()
		default:
		}

		if err := s.climate.Refresh(date); err != nil {
			return results, diag, fmt.Errorf("refreshing climate drivers for %s: %w", date, err)
		}

		row := make(map[resulttable.Key]float64)

		for _, name := range order {
			comp := s.graph.Components[name]

			s.graph.TransferInputs(name)

			if err := comp.Step(date, s.climate); err != nil {
				return results, diag, &simerrors.SimulationError{
					Component:     name,
					Date:          date.String(),
					InputSnapshot: copyInputs(comp.Inputs()),
					Err:           err,
				}
			}
			diag.StepsCompleted[name]++

			for output, value := range comp.Outputs() {
				row[resulttable.Key{Component: name, Output: output}] = value
			}
		}

		results.AppendRow(date, row)
	}

	if s.logger != nil {
		s.logger.Infow("simulation run complete", "run_id", diag.RunID, "model", s.name, "days", len(results.Dates()))
	}

	return results, diag, nil
}

func copyInputs(in map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
