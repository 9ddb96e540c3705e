package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/homeplan/app"
	"github.com/kilianp07/homeplan/core/plan"
	"github.com/kilianp07/homeplan/infra/logger"
	"github.com/kilianp07/homeplan/pkg/export"
)

var (
	planPath  string
	useSample bool
	format    string
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Compute the appliance schedule for a plan",
	RunE:  schedule,
}

func init() {
	scheduleCmd.Flags().StringVarP(&planPath, "plan", "p", "", "plan file (yaml or json)")
	scheduleCmd.Flags().BoolVar(&useSample, "sample", false, "use the bundled sample plan")
	scheduleCmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or csv")
	scheduleCmd.MarkFlagsMutuallyExclusive("plan", "sample")
	rootCmd.AddCommand(scheduleCmd)
}

func readPlan() (*plan.Plan, error) {
	switch {
	case useSample:
		return plan.Sample(), nil
	case planPath != "":
		return plan.Load(planPath)
	default:
		return nil, errors.New("either --plan or --sample is required")
	}
}

func schedule(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if format != "json" && format != "csv" {
		return fmt.Errorf("unknown format %q", format)
	}
	p, err := readPlan()
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()

	rep, err := svc.Run(ctx, p.Request())
	if err != nil {
		return err
	}
	if err := export.WriteNotices(cmd.ErrOrStderr(), rep.Result.Outcomes); err != nil {
		return err
	}
	if format == "csv" {
		return export.WriteCSV(cmd.OutOrStdout(), rep.Result)
	}
	return export.WriteJSON(cmd.OutOrStdout(), rep.Result)
}
