package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/radarsat1/re-up/internal/transfer"
)

var exportCmd = &cobra.Command{
	Use:   "export [plan-id]",
	Short: "Export study data to a JSON file",
	Long:  "Export all plans and session history, or a single plan (with only its sessions) when a plan id is given.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		var env *transfer.Envelope
		if len(args) == 1 {
			env, err = transfer.ExportPlan(st.KV(), args[0])
			if err != nil {
				return err
			}
		} else {
			env = transfer.ExportFull(st.KV())
		}

		if out == "" {
			out = fmt.Sprintf("reup-export-%s.json", time.Now().Format("2006-01-02"))
		}
		if err := transfer.WriteFile(out, env); err != nil {
			return err
		}
		fmt.Printf("Exported %d plan(s) and %d session(s) to %s\n",
			len(env.Data.StudyPlans), len(env.Data.SessionHistory), out)
		return nil
	},
}

func init() {
	exportCmd.Flags().String("out", "", "Output file path (default reup-export-<date>.json)")
}
