package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/shazabdullakc/Attendence-monitoring-system/internal/config"
	"github.com/shazabdullakc/Attendence-monitoring-system/internal/extractor"
	"github.com/shazabdullakc/Attendence-monitoring-system/internal/roster"
)

var importCmd = &cobra.Command{
	Use:   "import [directory]",
	Short: "Bulk enroll students from a photo directory",
	Long: `Enrolls one student per image file in the given directory.
The student name is derived from the file name: "jane_doe.jpg" enrolls
"jane doe". Files that fail (no face detected, unreadable) are reported
and skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

// imageExtensions are the file types the import command picks up.
var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

// listImageFiles returns the image files in dir, sorted by name.
func listImageFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if _, ok := imageExtensions[ext]; ok {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}

func runImport(cmd *cobra.Command, args []string) error {
	dir := args[0]

	cfg := config.Load()
	if cfg.Extractor.URL == "" {
		return errors.New("EXTRACTOR_URL environment variable is required")
	}

	files, err := listImageFiles(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("No image files found")
		return nil
	}

	st, err := openStores(cfg)
	if err != nil {
		return err
	}
	defer st.close()

	svc := roster.NewService(st.students, cfg.Extractor.Dim)
	ext := extractor.NewHTTPClient(cfg.Extractor.URL, cfg.Extractor.Model)
	ctx := context.Background()

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription("Enrolling students"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("photos"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
	)

	var enrolled int
	var failures []string
	for _, file := range files {
		name := nameFromFilename(file)
		if _, err := enrollFile(ctx, svc, ext, name, file); err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", filepath.Base(file), err))
		} else {
			enrolled++
		}
		bar.Add(1)
	}
	fmt.Println()

	fmt.Printf("Enrolled %d of %d students\n", enrolled, len(files))
	for _, f := range failures {
		fmt.Printf("  skipped %s\n", f)
	}

	return nil
}
