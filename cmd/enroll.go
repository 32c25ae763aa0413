package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shazabdullakc/Attendence-monitoring-system/internal/config"
	"github.com/shazabdullakc/Attendence-monitoring-system/internal/constants"
	"github.com/shazabdullakc/Attendence-monitoring-system/internal/extractor"
	"github.com/shazabdullakc/Attendence-monitoring-system/internal/roster"
)

var enrollCmd = &cobra.Command{
	Use:   "enroll",
	Short: "Enroll a student from a photo",
	Long: `Enrolls a single student. The photo is sent to the embedding service
and the resulting face embedding is stored with the student's name.`,
	RunE: runEnroll,
}

func init() {
	rootCmd.AddCommand(enrollCmd)

	enrollCmd.Flags().String("name", "", "Student name (required)")
	enrollCmd.Flags().String("image", "", "Path to the photo file (required)")
	enrollCmd.MarkFlagRequired("name")
	enrollCmd.MarkFlagRequired("image")
}

// enrollFile extracts an embedding from an image file and enrolls the student.
func enrollFile(ctx context.Context, svc *roster.Service, ext extractor.Client, name, path string) (int64, error) {
	imageData, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading image file: %w", err)
	}

	if resized, err := extractor.ResizeImage(imageData, constants.MaxImageSize); err == nil {
		imageData = resized
	}

	embedding, err := ext.ExtractFace(ctx, imageData)
	if err != nil {
		return 0, fmt.Errorf("extracting face from %s: %w", filepath.Base(path), err)
	}

	student, err := svc.Enroll(ctx, name, embedding)
	if err != nil {
		return 0, fmt.Errorf("enrolling %s: %w", name, err)
	}
	return student.ID, nil
}

// nameFromFilename derives a student name from an image file name.
// Dashes and underscores become spaces: "jane_doe.jpg" -> "jane doe".
func nameFromFilename(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)
	return strings.TrimSpace(name)
}

func runEnroll(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	if cfg.Extractor.URL == "" {
		return errors.New("EXTRACTOR_URL environment variable is required")
	}

	st, err := openStores(cfg)
	if err != nil {
		return err
	}
	defer st.close()

	svc := roster.NewService(st.students, cfg.Extractor.Dim)
	ext := extractor.NewHTTPClient(cfg.Extractor.URL, cfg.Extractor.Model)

	name := mustGetString(cmd, "name")
	image := mustGetString(cmd, "image")

	id, err := enrollFile(context.Background(), svc, ext, name, image)
	if err != nil {
		return err
	}

	fmt.Printf("Enrolled %s with id %d\n", name, id)
	return nil
}
