package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/radarsat1/re-up/internal/session"
	"github.com/radarsat1/re-up/internal/store"
	"github.com/radarsat1/re-up/internal/study"
)

var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "Manage stored study plans",
}

var plansListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored study plans with progress and grades",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		kv := st.KV()
		plans := store.Load(kv, store.KeyStudyPlans, []study.StudyPlan{})
		history := store.Load(kv, store.KeySessionHistory, []study.SessionRecord{})

		if len(plans) == 0 {
			fmt.Println("No study plans yet. Run `reup` to create one.")
			return nil
		}

		fmt.Printf("%-36s  %-30s  %-10s  %s\n", "ID", "Topic", "Progress", "Grade")
		fmt.Println(strings.Repeat("─", 90))
		for _, p := range plans {
			attempted, total := study.PlanProgress(&p, history)
			fmt.Printf("%-36s  %-30s  %4d/%-5d  %s\n",
				p.ID, truncateTopic(p.Topic, 30), attempted, total, study.PlanGrade(&p, history))
		}
		return nil
	},
}

var plansDeleteCmd = &cobra.Command{
	Use:   "delete <plan-id>",
	Short: "Delete a study plan and all its session history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		// Deletion needs no generator.
		engine := session.NewEngine(st.KV(), nil)
		if err := engine.DeletePlan(args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted plan %s and its sessions.\n", args[0])
		return nil
	},
}

// truncateTopic shortens a topic to max runes so non-ASCII topics stay
// valid UTF-8.
func truncateTopic(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

func init() {
	plansCmd.AddCommand(plansListCmd)
	plansCmd.AddCommand(plansDeleteCmd)
}
