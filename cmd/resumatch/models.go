package main

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/resumatch/internal/config"
)

var errNotBolt = errors.New("model history requires model.store: bolt")

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Inspect the model history of the bolt store",
}

var modelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List trained model versions, oldest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, _, err := setup()
		if err != nil {
			return err
		}
		if cfg.Model.Store != config.StoreBolt {
			return errNotBolt
		}
		ms, err := openModelStore(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer ms.close()

		versions, err := ms.bolt.Versions(cmd.Context())
		if err != nil {
			return fmt.Errorf("list versions: %w", err)
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "VERSION\tCREATED\tDOCS")
		for _, m := range versions {
			fmt.Fprintf(tw, "%s\t%s\t%d\n", m.Version, m.CreatedAt.Format(time.RFC3339), m.NumDocs)
		}
		return tw.Flush()
	},
}

var modelsActivateCmd = &cobra.Command{
	Use:   "activate VERSION",
	Short: "Make VERSION the model served after the next restart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, _, err := setup()
		if err != nil {
			return err
		}
		if cfg.Model.Store != config.StoreBolt {
			return errNotBolt
		}
		ms, err := openModelStore(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer ms.close()

		if err := ms.bolt.Activate(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("activate %s: %w", args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "activated model %s\n", args[0])
		return nil
	},
}

func init() {
	modelsCmd.AddCommand(modelsListCmd, modelsActivateCmd)
	rootCmd.AddCommand(modelsCmd)
}
