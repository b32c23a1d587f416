package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pobredward/inschoolz-moderation/internal/setup"
	"github.com/pobredward/inschoolz-moderation/internal/setup/telemetry"
	"github.com/pobredward/inschoolz-moderation/internal/worker/core"
	"github.com/pobredward/inschoolz-moderation/internal/worker/sweep"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

const (
	// WorkerLogDir specifies where worker log files are stored.
	WorkerLogDir = "logs/worker_logs"

	// SweepWorker restores accounts whose suspension has expired.
	SweepWorker = "sweep"
)

func main() {
	if err := run(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.Command{
		Name:  "worker",
		Usage: "Start the moderation worker",
		Commands: []*cli.Command{
			{
				Name:  SweepWorker,
				Usage: "Start the suspension expiry sweep worker",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "once",
						Usage: "Run a single sweep cycle and exit",
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return runSweepWorker(ctx, c.Bool("once"))
				},
			},
			{
				Name:  "status",
				Usage: "Show the status of all running workers",
				Action: func(ctx context.Context, _ *cli.Command) error {
					return showWorkerStatuses(ctx)
				},
			},
		},
	}

	return app.Run(context.Background(), os.Args)
}

// runSweepWorker starts the sweep worker, either as a single cycle or as a
// long-running loop stopped by SIGINT/SIGTERM.
func runSweepWorker(ctx context.Context, once bool) error {
	app, err := setup.InitializeApp(ctx, telemetry.ServiceWorker, WorkerLogDir, SweepWorker, "")
	if err != nil {
		return err
	}
	defer app.Cleanup(ctx)

	workerLogger := app.LogManager.GetWorkerLogger("sweep_worker")
	worker := sweep.New(app, workerLogger)

	if delay := app.Config.Worker.StartupDelay; delay > 0 {
		workerLogger.Info("Delaying worker start", zap.Int("delayMs", delay))
		time.Sleep(time.Duration(delay) * time.Millisecond)
	}

	if once {
		worker.RunOnce(ctx)
		return nil
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	worker.Start(ctx)

	return nil
}

// showWorkerStatuses prints the last heartbeat of every known worker.
func showWorkerStatuses(ctx context.Context) error {
	app, err := setup.InitializeApp(ctx, telemetry.ServiceTool, WorkerLogDir, "status", "")
	if err != nil {
		return err
	}
	defer app.Cleanup(ctx)

	monitor := core.NewMonitor(app.StatusClient, app.Logger.Named("status"))

	statuses, err := monitor.GetAllStatuses(ctx)
	if err != nil {
		return err
	}

	if len(statuses) == 0 {
		fmt.Println("No workers reporting")
		return nil
	}

	now := time.Now()
	for _, status := range statuses {
		state := "healthy"

		switch {
		case now.Sub(status.LastSeen) > core.StaleThreshold:
			state = "stale"
		case !status.IsHealthy:
			state = "unhealthy"
		}

		fmt.Printf("%s/%s  %-9s  last seen %s  %s (%d%%)\n",
			status.WorkerType, status.WorkerID, state,
			status.LastSeen.Format(time.RFC3339), status.CurrentTask, status.Progress)
	}

	return nil
}
