package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shazabdullakc/Attendence-monitoring-system/internal/config"
	"github.com/shazabdullakc/Attendence-monitoring-system/internal/database"
	"github.com/shazabdullakc/Attendence-monitoring-system/internal/roster"
)

var studentsCmd = &cobra.Command{
	Use:   "students",
	Short: "List enrolled students",
	Long:  `Lists all enrolled students in enrollment order with their ids.`,
	RunE:  runStudents,
}

func init() {
	rootCmd.AddCommand(studentsCmd)

	studentsCmd.Flags().String("query", "", "Filter students by name (diacritics-insensitive)")
}

func runStudents(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	st, err := openStores(cfg)
	if err != nil {
		return err
	}
	defer st.close()

	svc := roster.NewService(st.students, cfg.Extractor.Dim)
	ctx := context.Background()

	var students []database.StudentInfo
	if query := mustGetString(cmd, "query"); query != "" {
		students, err = svc.Search(ctx, query)
	} else {
		students, err = svc.List(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to list students: %w", err)
	}

	if len(students) == 0 {
		fmt.Println("No students enrolled")
		return nil
	}

	for _, s := range students {
		fmt.Printf("%6d  %s\n", s.ID, s.Name)
	}
	fmt.Printf("\n%d student(s)\n", len(students))

	return nil
}
