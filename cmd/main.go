package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sbsdiff/sbs/internal/app"
	"github.com/sbsdiff/sbs/internal/common"
	"github.com/sbsdiff/sbs/internal/config"
	"github.com/sbsdiff/sbs/internal/git"
	"github.com/sbsdiff/sbs/internal/watcher"
)

// Build-time variables injected via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// branchCacheTTL bounds how long the resolved default branch is reused
// between reloads.
const branchCacheTTL = 30 * time.Second

// exitError carries a process exit code out of RunE.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

func init() {
	// A pager-like TUI spends its time waiting on the terminal and on git
	// subprocesses; two OS threads are plenty. An explicit GOMAXPROCS wins.
	if os.Getenv("GOMAXPROCS") == "" {
		runtime.GOMAXPROCS(min(2, runtime.NumCPU()))
	}

	// Large diffs are held in memory once; keep the GC target modest.
	debug.SetMemoryLimit(200 * 1024 * 1024) // 200 MiB
}

func main() {
	rootCmd := buildRootCmd()

	if err := rootCmd.Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			if ee.msg != "" {
				fmt.Fprintln(os.Stderr, ee.msg)
			}
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func buildRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sbs [range]",
		Short: "Side-by-side git diff viewer for the terminal",
		Long: `sbs shows a git diff as a scrollable, side-by-side view with one bordered
box per file.

With no range the working tree is compared against the default branch
(origin/HEAD, else main, else master), untracked files included. Any range
git diff understands works too:

  sbs                 working tree vs default branch
  sbs HEAD~3          working tree vs three commits ago
  sbs main..feature   between two commits`,
		Args:          cobra.MaximumNArgs(1),
		RunE:          runApp,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"sbs %s\n  commit:  %s\n  built:   %s\n  go:      %s\n  os/arch: %s/%s\n",
		version, commit, date, runtime.Version(), runtime.GOOS, runtime.GOARCH,
	))

	rootCmd.AddCommand(buildVersionCmd())
	rootCmd.AddCommand(buildCompletionCmd())

	flags := rootCmd.Flags()
	flags.StringP("path", "p", ".", "Path to the git repository")
	flags.String("config", "", "Config file (default $XDG_CONFIG_HOME/sbs/config.yaml)")
	flags.BoolP("exclude-untracked", "u", false, "Leave untracked files out of the diff")
	flags.BoolP("watch", "w", false, "Reload when the repository changes")
	flags.String("view", "both", "Initial view: left, both or right")
	flags.Int("context", 3, "Lines of context around each change")

	return rootCmd
}

// buildVersionCmd creates the `sbs version` subcommand supporting --json.
func buildVersionCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(_ *cobra.Command, _ []string) error {
			info := map[string]string{
				"version": version,
				"commit":  commit,
				"date":    date,
				"go":      runtime.Version(),
				"os":      runtime.GOOS,
				"arch":    runtime.GOARCH,
			}
			if jsonOutput {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			fmt.Printf("sbs %s\n", version)
			fmt.Printf("  commit:  %s\n", commit)
			fmt.Printf("  built:   %s\n", date)
			fmt.Printf("  go:      %s\n", runtime.Version())
			fmt.Printf("  os/arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version info as JSON")

	return cmd
}

// buildCompletionCmd creates the `sbs completion` subcommand for shell completions.
func buildCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for sbs.

Examples:
  # Bash
  sbs completion bash > /etc/bash_completion.d/sbs

  # Zsh (before compinit)
  sbs completion zsh > "${fpath[1]}/_sbs"

  # Fish
  sbs completion fish > ~/.config/fish/completions/sbs.fish`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
	}
}

func runApp(cmd *cobra.Command, args []string) error {
	repoPath, _ := cmd.Flags().GetString("path")
	cfgFile, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	closeLog, err := setupLogging(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	cliSvc, err := git.NewCLIService(repoPath)
	if err != nil {
		return fmt.Errorf("opening repository: %w", err)
	}
	src := git.NewCachedService(cliSvc, branchCacheTTL)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	var rng string
	if len(args) == 1 {
		rng = strings.TrimSpace(args[0])
	}
	opts := git.DiffOptions{ExcludeUntracked: cfg.ExcludeUntracked, ContextLines: cfg.DiffContextLines}

	files, err := git.Load(ctx, src, rng, opts)
	if err != nil {
		return &exitError{code: 1, msg: "Error running git diff: " + err.Error()}
	}
	if len(files) == 0 {
		fmt.Println("No changes to display.")
		return nil
	}

	label := rng
	if label == "" {
		if branch, err := src.DefaultBranch(ctx); err == nil {
			label = branch
		}
	}
	log.Printf("sbs %s: %d files, range %q, repo %s", version, len(files), label, cliSvc.RepoRoot())

	model := app.New(ctx, app.Options{
		Source:  src,
		Config:  cfg,
		Range:   rng,
		Label:   label,
		Version: version,
		Files:   files,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))

	if cfg.Watch {
		watchCh, stop, watchErr := watcher.Watch(cliSvc.RepoRoot(), cliSvc.GitDir(), cfg.WatchDebounce)
		if watchErr != nil {
			log.Printf("watcher disabled: %v", watchErr)
			go p.Send(common.ErrMsg{Err: fmt.Errorf("watch disabled: %w", watchErr)})
		} else {
			defer stop()
			go func() {
				for range watchCh {
					src.Invalidate()
					p.Send(common.RefreshMsg{})
				}
			}()
		}
	}

	// Running reloads are cancelled by the deferred cancel once Run returns.
	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// setupLogging sends the standard logger to path, or discards it when path
// is empty so nothing is written over the alternate screen.
func setupLogging(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile(path, "sbs")
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return func() { _ = f.Close() }, nil
}
