package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/homeplan/core/plan"
	"github.com/kilianp07/homeplan/core/scheduler"
	"github.com/kilianp07/homeplan/infra/logger"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a plan file without scheduling it",
	RunE:  validate,
}

func init() {
	validateCmd.Flags().StringVarP(&planPath, "plan", "p", "", "plan file (yaml or json)")
	_ = validateCmd.MarkFlagRequired("plan")
	rootCmd.AddCommand(validateCmd)
}

func validate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := plan.Load(planPath)
	if err != nil {
		return err
	}
	sched, err := scheduler.New(cfg.Scheduler, logger.New("validate"))
	if err != nil {
		return err
	}
	if err := sched.Validate(p.Request()); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "plan %s is valid: %d devices, %d rates\n", planPath, len(p.Devices), len(p.Rates))
	return err
}
