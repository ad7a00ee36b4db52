// ABOUTME: Course file CLI commands
// ABOUTME: Implements file ls, upload, preview, download, rm, pin

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/studyhub/studyhub/internal/mirror"
	"github.com/studyhub/studyhub/internal/store"
)

var fileCmd = &cobra.Command{
	Use:   "file",
	Short: "Manage course files",
	Long:  "Upload, list, preview, download, and remove files of a course.",
}

var fileLsCmd = &cobra.Command{
	Use:   "ls <course-id>",
	Short: "List files of a course",
	Args:  cobra.ExactArgs(1),
	RunE:  runFileLs,
}

var fileUploadCmd = &cobra.Command{
	Use:   "upload <course-id> <path>...",
	Short: "Upload one or more files to a course",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFileUpload,
}

var filePreviewCmd = &cobra.Command{
	Use:   "preview <course-id> <file-name>",
	Short: "Print a file's preview URL",
	Args:  cobra.ExactArgs(2),
	RunE:  runFilePreview,
}

var fileDownloadCmd = &cobra.Command{
	Use:   "download <course-id> <file-name>",
	Short: "Print a file's download URL",
	Args:  cobra.ExactArgs(2),
	RunE:  runFileDownload,
}

var fileRmCmd = &cobra.Command{
	Use:   "rm <course-id> <file-id>",
	Short: "Delete a file",
	Args:  cobra.ExactArgs(2),
	RunE:  runFileRm,
}

var filePinCmd = &cobra.Command{
	Use:   "pin <course-id> <file-id>",
	Short: "Pin or unpin a file within its course",
	Args:  cobra.ExactArgs(2),
	RunE:  runFilePin,
}

func init() {
	rootCmd.AddCommand(fileCmd)
	fileCmd.AddCommand(fileLsCmd, fileUploadCmd, filePreviewCmd, fileDownloadCmd, fileRmCmd, filePinCmd)
}

func runFileLs(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	files, err := appStore.Files(cmd.Context(), args[0])
	if err != nil {
		if fallback := appStore.FilesFallback(args[0]); len(fallback) > 0 {
			color.Yellow("Backend unreachable, showing last known files")
			files = fallback
		} else {
			return err
		}
	}

	if len(files) == 0 {
		fmt.Println("No files yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tSIZE\tPINNED")
	for _, f := range files {
		pinned := ""
		if appStore.Mirror().IsPinned(mirror.PinnedItemsKey(args[0]), f.ID) {
			pinned = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", f.ID, f.FileName, f.FileType, f.FileSize, pinned)
	}
	return w.Flush()
}

func runFileUpload(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	courseID := args[0]
	paths := args[1:]

	uploads := make([]store.Upload, 0, len(paths))
	handles := make([]*os.File, 0, len(paths))
	defer func() {
		for _, h := range handles {
			h.Close()
		}
	}()

	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", p, err)
		}
		handles = append(handles, f)
		uploads = append(uploads, store.Upload{Name: filepath.Base(p), R: f})
	}

	files, err := appStore.UploadFiles(cmd.Context(), courseID, uploads)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("Nothing to upload.")
		return nil
	}

	color.Green("Uploaded %d file(s)", len(files))
	for _, f := range files {
		fmt.Printf("  %s (ID: %s)\n", f.FileName, f.ID)
	}
	return nil
}

func runFilePreview(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	url, err := appStore.PreviewURL(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Println(url)
	return nil
}

func runFileDownload(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	url, err := appStore.DownloadURL(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Println(url)
	return nil
}

func runFileRm(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	if err := appStore.DeleteFile(cmd.Context(), args[0], args[1]); err != nil {
		return err
	}

	color.Yellow("Deleted file: %s", args[1])
	return nil
}

func runFilePin(cmd *cobra.Command, args []string) error {
	pinned := appStore.Mirror().TogglePin(mirror.PinnedItemsKey(args[0]), args[1])
	if pinned {
		color.Green("Pinned file: %s", args[1])
	} else {
		color.Yellow("Unpinned file: %s", args[1])
	}
	return nil
}
