package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cinder/internal/cir"
	"cinder/internal/cir/passes"
	"cinder/internal/cirtext"
	"cinder/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.cir>",
	Short: "Parse and verify a cinder IR file",
	Long:  `Parse a textual IR file, verify every function's graph structure and report per-function results`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().Bool("simplify", false, "run the simplification pipeline before verifying")
	checkCmd.Flags().Bool("dump", false, "print the module after checking")
	checkCmd.Flags().Bool("preds", false, "annotate dumped blocks with predecessor comments")
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]

	simplify, err := cmd.Flags().GetBool("simplify")
	if err != nil {
		return fmt.Errorf("failed to get simplify flag: %w", err)
	}
	dump, err := cmd.Flags().GetBool("dump")
	if err != nil {
		return fmt.Errorf("failed to get dump flag: %w", err)
	}
	preds, err := cmd.Flags().GetBool("preds")
	if err != nil {
		return fmt.Errorf("failed to get preds flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	dumpOpts := cir.DumpOptions{PredComments: preds}
	if man, ok, err := loadManifest(filepath.Dir(path)); err != nil {
		return err
	} else if ok {
		dumpOpts.PredComments = dumpOpts.PredComments || man.Config.Dump.Preds
		dumpOpts.CommentColumn = man.Config.Dump.CommentColumn
	}

	m, err := cirtext.ParseFile(path)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if simplify {
		for _, f := range m.Functions() {
			passes.Simplify(f)
		}
	}

	results, err := driver.VerifyModule(cmd.Context(), m)
	if err != nil {
		return fmt.Errorf("verification aborted: %w", err)
	}

	colorize := useColor(cmd, os.Stdout)
	if !quiet {
		printCheckSummary(m, results, colorize)
	}

	failed := 0
	for _, r := range results {
		if !r.Ok() {
			failed++
		}
	}

	if dump {
		if err := cir.DumpModule(os.Stdout, m, dumpOpts); err != nil {
			return fmt.Errorf("failed to dump module: %w", err)
		}
	}

	if failed > 0 {
		cmd.SilenceUsage = true
		return fmt.Errorf("%d of %d functions failed verification", failed, len(results))
	}
	return nil
}

func printCheckSummary(m *cir.Module, results []driver.FuncResult, colorize bool) {
	headerStyle := lipgloss.NewStyle().Bold(true)
	okStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	if !colorize {
		headerStyle = lipgloss.NewStyle()
		okStyle = lipgloss.NewStyle()
		failStyle = lipgloss.NewStyle()
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("module %s: %d function(s)", m.Name, len(results))))
	for _, r := range results {
		status := okStyle.Render("ok")
		if !r.Ok() {
			status = failStyle.Render("FAIL")
		}
		fmt.Printf("  %-4s %s (%d blocks)\n", status, r.Name, r.Blocks)
		if r.Err != nil {
			errText := color.New(color.FgRed)
			if !colorize {
				errText = color.New()
			}
			for _, line := range strings.Split(r.Err.Error(), "\n") {
				fmt.Printf("       %s\n", errText.Sprint(line))
			}
		}
	}
}
