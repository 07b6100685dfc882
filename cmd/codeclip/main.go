package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"codeclip/internal/app"
	"codeclip/internal/config"
	"codeclip/internal/core"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	successColor = color.New(color.FgGreen)
	warningColor = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	labelColor   = color.New(color.FgCyan, color.Bold)
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates an App. The caller must defer app.Close().
// operation identifies the CLI command being run (e.g. "Scan", "PasteFile").
func newApp(operation string) (*app.App, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config (run 'codeclip config init' first): %w", err)
	}

	a, err := app.NewApp(cfg, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

// warn prints an operation-level user warning. These end the command
// without an error exit: nothing was done, nothing is broken.
func warn(format string, args ...any) {
	warningColor.Fprintf(os.Stderr, format+"\n", args...)
}

// reportSkipped prints one aggregated warning for a batch of skipped names.
func reportSkipped(what string, names []string) {
	if len(names) > 0 {
		warn("%s: %s", what, core.FormatNames(names))
	}
}

var rootCmd = &cobra.Command{
	Use:   "codeclip",
	Short: "Combine source files onto the clipboard and paste them back",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults["base_dir"])

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Base Dir: %s\n", defaults["base_dir"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Base Dir:   %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:    %s\n", cfg.LogDir)
		fmt.Printf("State Path: %s\n", cfg.StatePath)
		fmt.Printf("Extensions: %s\n", strings.Join(cfg.Filter.Extensions, ", "))
		return nil
	},
}

// root command: show or select the root directory
var rootDirCmd = &cobra.Command{
	Use:   "root [DIR]",
	Short: "Show or select the root directory",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("SetRoot")
		if err != nil {
			return err
		}
		defer a.Close()

		if len(args) == 0 {
			if a.Root() == "" {
				warn("No root directory selected")
				return nil
			}
			fmt.Println(a.Root())
			return nil
		}

		if err := a.SetRoot(args[0]); err != nil {
			return err
		}
		successColor.Printf("Root directory: %s\n", a.Root())
		return nil
	},
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the root directory for candidate files",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Scan")
		if err != nil {
			return err
		}
		defer a.Close()

		result, removed, err := a.Scan()
		if errors.Is(err, core.ErrNoRoot) {
			warn("No root directory selected (run 'codeclip root DIR' first)")
			return nil
		}
		if err != nil {
			return err
		}

		reportSkipped("Dropped from list", removed)
		reportSkipped("Unreadable, skipped", result.Skipped)

		if result.Files() == 0 {
			fmt.Println("No candidate files found.")
			return nil
		}

		for _, label := range result.Labels() {
			labelColor.Printf("%s\n", label)
			for _, entry := range result.Groups[label] {
				fmt.Printf("  %s\n", entry.RelativePath)
			}
		}
		fmt.Printf("%d file(s) in %d group(s)\n", result.Files(), len(result.Groups))
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "View the working set",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ListFiles")
		if err != nil {
			return err
		}
		defer a.Close()

		files := a.Files()
		if len(files) == 0 {
			fmt.Println("Working set is empty.")
			return nil
		}

		for _, f := range files {
			mark := " "
			if f.Checked {
				mark = "x"
			}
			fmt.Printf("[%s] %s\n", mark, f.Rel)
		}
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add PATH...",
	Short: "Add files to the working set",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		replace, _ := cmd.Flags().GetBool("replace")

		op := "AddFiles"
		if replace {
			op = "ReplaceFiles"
		}
		a, err := newApp(op)
		if err != nil {
			return err
		}
		defer a.Close()

		var res core.AddResult
		if replace {
			res, err = a.ReplaceFiles(args)
		} else {
			res, err = a.AddFiles(args)
		}
		if err != nil {
			return err
		}

		reportSkipped("Already in list, skipped", res.Duplicates)
		reportSkipped("Not candidates, skipped", res.Rejected)
		successColor.Printf("Added %d file(s)\n", len(res.Added))
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm PATH",
	Short: "Remove a file from the working set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("RemoveFile")
		if err != nil {
			return err
		}
		defer a.Close()

		removed, err := a.RemoveFile(args[0])
		if err != nil {
			return err
		}
		if !removed {
			warn("Not in the working set: %s", args[0])
			return nil
		}
		successColor.Printf("Removed %s\n", args[0])
		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:   "check [PATH...]",
	Short: "Check files for combination",
	RunE:  func(cmd *cobra.Command, args []string) error { return setChecked(cmd, args, true) },
}

var uncheckCmd = &cobra.Command{
	Use:   "uncheck [PATH...]",
	Short: "Uncheck files",
	RunE:  func(cmd *cobra.Command, args []string) error { return setChecked(cmd, args, false) },
}

func setChecked(cmd *cobra.Command, args []string, value bool) error {
	all, _ := cmd.Flags().GetBool("all")
	if !all && len(args) == 0 {
		return fmt.Errorf("either PATH arguments or --all is required")
	}

	a, err := newApp("SetChecked")
	if err != nil {
		return err
	}
	defer a.Close()

	if all {
		if value {
			return a.CheckAll()
		}
		return a.UncheckAll()
	}

	var missing []string
	for _, arg := range args {
		found, err := a.SetChecked(arg, value)
		if err != nil {
			return err
		}
		if !found {
			missing = append(missing, arg)
		}
	}
	reportSkipped("Not in the working set", missing)
	return nil
}

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Move checked files to the top of the list",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("MoveCheckedToTop")
		if err != nil {
			return err
		}
		defer a.Close()

		moved, err := a.MoveCheckedToTop()
		if err != nil {
			return err
		}
		if moved == 0 {
			warn("No files checked to move")
			return nil
		}
		successColor.Printf("Moved %d checked file(s) to the top\n", moved)
		return nil
	},
}

var combineCmd = &cobra.Command{
	Use:   "combine",
	Short: "Combine checked files onto the clipboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Combine")
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := a.Combine()
		if errors.Is(err, core.ErrNothingChecked) {
			warn("No files checked to combine")
			return nil
		}
		if err != nil {
			return err
		}

		reportSkipped("Not found, skipped", result.Missing)
		reportSkipped("Unreadable or binary, skipped", result.Skipped)
		successColor.Printf("Copied %d file(s), %d lines to the clipboard\n", result.Files, result.Lines)
		return nil
	},
}

var copyCmd = &cobra.Command{
	Use:   "copy FILE",
	Short: "Copy a single file's content to the clipboard",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("CopyFile")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.CopyFile(args[0]); err != nil {
			return err
		}
		successColor.Printf("Copied %s to the clipboard\n", args[0])
		return nil
	},
}

var pasteCmd = &cobra.Command{
	Use:   "paste FILE",
	Short: "Paste clipboard content into a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		a, err := newApp("PasteFile")
		if err != nil {
			return err
		}
		defer a.Close()

		if !yes {
			ok, err := confirmOverwrite(args[0])
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Aborted.")
				return nil
			}
		}

		err = a.PasteFile(args[0])
		if errors.Is(err, core.ErrEmptyClipboard) {
			warn("Clipboard is empty. Copy some text first.")
			return nil
		}
		if err != nil {
			return err
		}
		successColor.Printf("Pasted clipboard content into %s\n", args[0])
		return nil
	},
}

// confirmOverwrite asks before replacing an existing file. Skipped when
// stdin is not a terminal or the target does not exist yet.
func confirmOverwrite(path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		return true, nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return true, nil
	}

	fmt.Printf("Overwrite %s with clipboard content? [y/N] ", path)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

var revertCmd = &cobra.Command{
	Use:   "revert FILE",
	Short: "Revert a file to its previous version",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("RevertFile")
		if err != nil {
			return err
		}
		defer a.Close()

		err = a.RevertFile(args[0])
		if errors.Is(err, core.ErrNothingToRevert) {
			warn("No previous versions available for %s", args[0])
			return nil
		}
		if err != nil {
			return err
		}
		successColor.Printf("Reverted %s to its previous version\n", args[0])
		return nil
	},
}

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Copy checked files' relative paths to the clipboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("CopyCheckedPaths")
		if err != nil {
			return err
		}
		defer a.Close()

		count, err := a.CopyCheckedPaths()
		if errors.Is(err, core.ErrNothingChecked) {
			warn("No files checked to copy paths")
			return nil
		}
		if err != nil {
			return err
		}
		successColor.Printf("Copied %d file path(s) to the clipboard\n", count)
		return nil
	},
}

var copyFilesCmd = &cobra.Command{
	Use:   "copy-files",
	Short: "Copy checked files to the clipboard as file references",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("CopyCheckedFileReferences")
		if err != nil {
			return err
		}
		defer a.Close()

		count, err := a.CopyCheckedFileReferences()
		if errors.Is(err, core.ErrNothingChecked) {
			warn("No files checked to copy")
			return nil
		}
		if err != nil {
			return err
		}
		successColor.Printf("Copied %d file(s) to the clipboard\n", count)
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View recent operations",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp("GetHistory")
		if err != nil {
			return err
		}
		defer a.Close()

		ops, err := a.History(limit)
		if err != nil {
			return err
		}

		if len(ops) == 0 {
			fmt.Println("No operations recorded.")
			return nil
		}

		for _, op := range ops {
			duration := ""
			if !op.FinishedAt.IsZero() {
				duration = op.FinishedAt.Sub(op.StartedAt).Truncate(time.Millisecond).String()
			}
			status := op.Status
			if status == "error" {
				status = errorColor.Sprint(status)
			}
			fmt.Printf("%-20s  %s  %-10s  %s\n",
				op.Name,
				op.StartedAt.Format("2006-01-02 15:04:05"),
				status,
				duration,
			)
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	addCmd.Flags().Bool("replace", false, "Replace the working set instead of appending")
	checkCmd.Flags().Bool("all", false, "Check every file in the working set")
	uncheckCmd.Flags().Bool("all", false, "Uncheck every file in the working set")
	pasteCmd.Flags().BoolP("yes", "y", false, "Skip the overwrite confirmation")
	historyCmd.Flags().IntP("limit", "n", 50, "Maximum number of operations to show")

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(rootDirCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(uncheckCmd)
	rootCmd.AddCommand(topCmd)
	rootCmd.AddCommand(combineCmd)
	rootCmd.AddCommand(copyCmd)
	rootCmd.AddCommand(pasteCmd)
	rootCmd.AddCommand(revertCmd)
	rootCmd.AddCommand(pathsCmd)
	rootCmd.AddCommand(copyFilesCmd)
	rootCmd.AddCommand(historyCmd)
}
