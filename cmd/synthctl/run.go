package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/operator-framework/basissynth/pkg/circuit"
	"github.com/operator-framework/basissynth/pkg/circuitemit"
	"github.com/operator-framework/basissynth/pkg/engine"
	"github.com/operator-framework/basissynth/pkg/learner"
	"github.com/operator-framework/basissynth/pkg/maxsat"
	"github.com/operator-framework/basissynth/pkg/metrics"
	"github.com/operator-framework/basissynth/pkg/qdimacs"
	"github.com/operator-framework/basissynth/pkg/sampler"
	"github.com/operator-framework/basissynth/pkg/satsolver"
)

func newRunCmd() *cobra.Command {
	var (
		output       string
		sampleCount  int
		threshold    int
		iterationCap int
		timeout      time.Duration
		seed         int64
		metricsAddr  string
	)

	cmd := &cobra.Command{
		Use:   "run <spec.qdimacs>",
		Short: "Synthesize a Skolem basis for a QDIMACS specification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := log.StandardLogger()

			if metricsAddr != "" {
				reg := prometheus.NewRegistry()
				if err := metrics.Register(reg); err != nil {
					return err
				}
				mux := http.NewServeMux()
				mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
				srv := &http.Server{Addr: metricsAddr, Handler: mux}
				go func() {
					logger.WithField("addr", metricsAddr).Info("serving metrics")
					if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
						logger.WithError(err).Warn("metrics server stopped")
					}
				}()
				defer srv.Close()
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			spec, err := qdimacs.Parse(f)
			if err != nil {
				return err
			}

			sat := satsolver.New()
			eng, err := engine.New(
				circuit.NewVerifier(),
				circuit.NewConflictBuilder(),
				engine.WithConfig(engine.Config{
					SampleCount:     sampleCount,
					RepairThreshold: threshold,
					IterationCap:    iterationCap,
					SolverTimeout:   timeout,
					Seed:            seed,
				}),
				engine.WithLogger(logger),
				engine.WithSampler(sampler.New(sat)),
				engine.WithLearner(learner.New(0)),
				engine.WithMaxSATSolver(maxsat.New()),
				engine.WithTracer(engine.MultiTracer{engine.LoggingTracer{Writer: logger.Writer()}, metrics.Tracer{}}),
			)
			if err != nil {
				return err
			}

			ctx := context.Background()
			result, err := eng.Run(ctx, spec)
			if err != nil {
				return err
			}

			var out = os.Stdout
			if output != "" {
				file, ferr := os.Create(output)
				if ferr != nil {
					return ferr
				}
				defer file.Close()
				out = file
			}

			circuitDoc := engine.BuildCircuit(result.Order, result.Basis)
			if err := circuitemit.New().Emit(out, circuitDoc); err != nil {
				return err
			}

			fmt.Fprintf(os.Stderr, "synthesis %s after %d iterations\n", result.Status, result.Iterations)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the synthesized circuit here instead of stdout")
	cmd.Flags().IntVarP(&sampleCount, "samples", "n", engine.DefaultConfig().SampleCount, "number of samples to draw for the initial basis")
	cmd.Flags().IntVarP(&threshold, "repair-threshold", "T", engine.DefaultConfig().RepairThreshold, "repair count above which an output is frozen to its semantic fallback")
	cmd.Flags().IntVar(&iterationCap, "iteration-cap", engine.DefaultConfig().IterationCap, "maximum Verify/Diagnose/Repair iterations before aborting")
	cmd.Flags().DurationVar(&timeout, "timeout", engine.DefaultConfig().SolverTimeout, "per-solve timeout for the SAT/MaxSAT collaborators")
	cmd.Flags().Int64Var(&seed, "seed", engine.DefaultConfig().Seed, "seed for the sampler's randomized assumption bias")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "if set, serve Prometheus metrics on this address for the duration of the run")

	return cmd
}
