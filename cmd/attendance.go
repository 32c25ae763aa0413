package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shazabdullakc/Attendence-monitoring-system/internal/attendance"
	"github.com/shazabdullakc/Attendence-monitoring-system/internal/config"
)

var attendanceCmd = &cobra.Command{
	Use:   "attendance",
	Short: "Show the attendance summary",
	Long: `Prints one line per enrolled student with the timestamp of their
latest attendance event, or "never" for students without any.`,
	RunE: runAttendance,
}

func init() {
	rootCmd.AddCommand(attendanceCmd)
}

func runAttendance(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	st, err := openStores(cfg)
	if err != nil {
		return err
	}
	defer st.close()

	ledger := attendance.NewLedger(st.events)
	rows, err := ledger.Summary(context.Background())
	if err != nil {
		return fmt.Errorf("failed to build attendance summary: %w", err)
	}

	if len(rows) == 0 {
		fmt.Println("No students enrolled")
		return nil
	}

	for _, row := range rows {
		lastSeen := "never"
		if row.LastSeen != nil {
			lastSeen = row.LastSeen.Local().Format(time.DateTime)
		}
		fmt.Printf("%6d  %-30s %s\n", row.StudentID, row.Name, lastSeen)
	}

	return nil
}
