package core

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"time"

	"github.com/encodeous/tint"
	"github.com/goccy/go-yaml"
	"github.com/nettrace-lab/ppmtrace/state"
	"github.com/nettrace-lab/ppmtrace/topo"
	slogmulti "github.com/samber/slog-multi"
)

// ReadExperimentConfig loads, expands and validates a sweep config file.
func ReadExperimentConfig(cfgPath string) (*state.ExperimentCfg, error) {
	file, err := os.ReadFile(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read experiment config: %w", err)
	}
	var cfg state.ExperimentCfg
	if err := yaml.Unmarshal(file, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", cfgPath, err)
	}
	state.ExpandExperimentConfig(&cfg)
	if err := state.ExperimentConfigValidator(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", cfgPath, err)
	}
	return &cfg, nil
}

func newLogger(logPath string, level slog.Level) (*slog.Logger, error) {
	handlers := []slog.Handler{
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:        level,
			AddSource:    false,
			CustomPrefix: "ppm",
		}),
	}
	if logPath != "" {
		if err := os.MkdirAll(path.Dir(logPath), 0700); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(logPath, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0700)
		if err != nil {
			return nil, err
		}
		handlers = append(handlers, slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	}
	return slog.New(slogmulti.Fanout(handlers...)), nil
}

func loadTopology(topoPath string, limits state.TopologyLimits, log *slog.Logger) (*topo.Topology, error) {
	tree, err := topo.Load(topoPath)
	if err != nil {
		return nil, err
	}
	if err := topo.Validate(tree, limits); err != nil {
		return nil, fmt.Errorf("%s: %w", topoPath, err)
	}
	log.Info("topology loaded",
		"path", topoPath,
		"routers", tree.RouterCount(),
		"branches", len(tree.Branches()),
		"max_depth", tree.MaxDepth())
	return tree, nil
}

// Start runs the full experiment sweep described by the config file and
// writes the report.
func Start(cfgPath string, verbose bool) error {
	cfg, err := ReadExperimentConfig(cfgPath)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger, err := newLogger(cfg.LogPath, level)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)
	env := &state.Env{
		ExperimentCfg: *cfg,
		Context:       ctx,
		Cancel:        cancel,
		Log:           logger,
	}

	tree, err := loadTopology(cfg.TopologyPath, env.TopoLimits(), env.Log)
	if err != nil {
		return err
	}

	env.Log.Info("starting sweep",
		"p_values", cfg.PValues, "x_values", cfg.XValues,
		"trials", cfg.Trials, "attackers", cfg.Attackers, "seed", cfg.Seed)
	start := time.Now()
	cells, err := RunGrid(env, tree)
	if err != nil {
		return err
	}
	env.Log.Info("sweep complete", "cells", len(cells), "elapsed", time.Since(start))

	fmt.Print(Summary(cells))
	if cfg.CsvPath != "" {
		if err := WriteCSV(cfg.CsvPath, cells); err != nil {
			return err
		}
		env.Log.Info("results written", "path", cfg.CsvPath)
	}
	return nil
}

// StartTrial runs a single seeded trial against a topology file and logs
// how each scheme fared.
func StartTrial(topoPath string, cfg state.TrialCfg, seed uint64, verbose bool) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger, err := newLogger("", level)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)
	env := &state.Env{
		Context: ctx,
		Cancel:  cancel,
		Log:     logger,
	}

	tree, err := loadTopology(topoPath, state.DefaultTopologyLimits, env.Log)
	if err != nil {
		return err
	}

	res, err := RunTrial(env, tree, cfg, seed)
	if err != nil {
		return err
	}
	env.Log.Info("trial finished", "attackers", res.Attackers, "seed", seed)
	logScheme(env.Log, "node", res.NodeConverged, res.NodeTick)
	logScheme(env.Log, "edge", res.EdgeConverged, res.EdgeTick)
	return nil
}

func logScheme(log *slog.Logger, scheme string, converged bool, tick int) {
	if converged {
		log.Info("scheme converged", "scheme", scheme, "tick", tick)
	} else {
		log.Warn("scheme did not converge within budget", "scheme", scheme)
	}
}
