package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/SPACEX-2022/superapp-cli/pkg/util"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a publicly accessible file",
	Long: `Upload a file (typically a game icon) to public storage and print
its access URL.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	store, err := getStore()
	if err != nil {
		return err
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	var svc UploadService = getClient(store)
	accessURL, err := svc.UploadFile(cmd.Context(), filepath.Base(path), data)
	if err != nil {
		pterm.Error.Printf("Upload failed: %v\n", err)
		return err
	}

	pterm.Success.Printf("Uploaded %s (%s)\n", filepath.Base(path), util.FormatBytes(int64(len(data))))
	pterm.Println(accessURL)
	return nil
}
