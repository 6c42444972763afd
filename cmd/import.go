package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/radarsat1/re-up/internal/transfer"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import study data from an export file",
	Long:  "Validate an export file and merge it into stored data. On id collision the imported entry wins; everything else from both sides is kept.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		env, err := transfer.ReadFile(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Import contains %d plan(s) and %d session(s) (%s export from %s).\n",
			len(env.Data.StudyPlans), len(env.Data.SessionHistory), env.Type, env.Timestamp)

		if !yes {
			fmt.Print("Merge into your stored data? Entries with matching ids will be overwritten. [y/N] ")
			reader := bufio.NewReader(os.Stdin)
			answer, _ := reader.ReadString('\n')
			if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
				fmt.Println("Import cancelled, nothing changed.")
				return nil
			}
		}

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		transfer.Merge(st.KV(), env)
		fmt.Println("Import complete.")
		return nil
	},
}

func init() {
	importCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}
