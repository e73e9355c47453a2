package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	dashboard "github.com/AI-call-center/modern-dashboard"
	"github.com/AI-call-center/modern-dashboard/internal/logging"
	"github.com/AI-call-center/modern-dashboard/internal/presentation/prompt"
	"github.com/AI-call-center/modern-dashboard/pkg/adapters/memory"
	"github.com/AI-call-center/modern-dashboard/pkg/domain"
	"github.com/AI-call-center/modern-dashboard/pkg/models"
	"github.com/AI-call-center/modern-dashboard/pkg/observability"
	"github.com/AI-call-center/modern-dashboard/pkg/templates"
)

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	FlowID      string
	FlowsDir    string
	AnswersPath string
	Output      string // text, json or yaml
	LogLevel    string

	// Metrics, when set, receives the run's metrics in the Prometheus text
	// format once the wizard has closed.
	Metrics io.Writer

	// Driver answers prompts in interactive mode; defaults to survey on stdio.
	Driver prompt.Driver
	Stdout io.Writer
	Stderr io.Writer
}

// Result describes how a run ended.
type Result struct {
	Status domain.Status
	FlowID string
	// Config is the typed view of the submitted draft; nil unless submitted.
	Config any
	Steps  int
}

// Execute runs one wizard from start to a terminal state. With an answers
// file the run is scripted; otherwise it needs an interactive terminal.
func Execute(ctx context.Context, opts RunOptions) (*Result, error) {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	logger, err := createLogger(opts.Stderr, opts.LogLevel)
	if err != nil {
		return nil, err
	}

	catalog, err := LoadCatalog(opts.FlowsDir)
	if err != nil {
		return nil, err
	}
	def, err := catalog.Get(opts.FlowID)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)
	outbox := memory.NewOutbox()

	w, err := dashboard.New(def,
		dashboard.WithLogger(logger),
		dashboard.WithSubmitter(outbox),
		dashboard.WithLifecycleHooks(observability.Combine(observability.LogHooks(logger), metrics.Hooks())),
	)
	if err != nil {
		return nil, err
	}
	if err := w.Start(ctx); err != nil {
		return nil, err
	}

	switch {
	case opts.AnswersPath != "":
		script, err := LoadScript(opts.AnswersPath)
		if err != nil {
			return nil, err
		}
		if script.Flow != "" && script.Flow != def.ID {
			return nil, fmt.Errorf("answers file is for flow %q, not %q", script.Flow, def.ID)
		}
		err = script.Play(ctx, w, logger)
		if err != nil {
			return nil, err
		}
	default:
		driver := opts.Driver
		if driver == nil {
			if !IsInteractive() {
				return nil, errors.New("no terminal attached: pass --answers to run a scripted session")
			}
			driver = prompt.NewSurveyDriver()
		}
		catalog, err := templates.Builtin()
		if err != nil {
			return nil, err
		}
		session := &interactive{
			wizard: w,
			form:   prompt.NewForm(driver, catalog),
			out:    opts.Stdout,
			logger: logger,
		}
		if err := session.run(ctx); err != nil {
			if errors.Is(err, prompt.ErrAborted) {
				_ = w.Cancel(ctx)
			} else {
				return nil, err
			}
		}
	}

	if opts.Metrics != nil {
		if err := WriteMetrics(opts.Metrics, reg); err != nil {
			return nil, err
		}
	}

	res := &Result{Status: w.Status(), FlowID: def.ID, Steps: def.Len()}
	if res.Status != domain.StatusSubmitted {
		return res, nil
	}

	subs := outbox.Submissions()
	if len(subs) != 1 {
		return nil, fmt.Errorf("expected exactly one submission, got %d", len(subs))
	}
	res.Config, err = models.Decode(def.ID, subs[0].Draft)
	if err != nil {
		return nil, err
	}
	if err := WriteOutput(opts.Stdout, opts.Output, res.Config); err != nil {
		return nil, err
	}
	return res, nil
}

func createLogger(w io.Writer, level string) (*slog.Logger, error) {
	if level == "" || level == "off" {
		return logging.NewNop(), nil
	}
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return logging.New(w, lvl), nil
}
