package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kyaoi/lope/internal/app"
	"github.com/kyaoi/lope/internal/config"
	"github.com/kyaoi/lope/internal/logging"
)

var (
	cfgFile    string
	promptFile string
	filesFrom  string
	dryRun     bool
	copyQuery  bool
	rawReply   bool
)

var rootCmd = &cobra.Command{
	Use:   "lope [dir]",
	Short: "Pick files, write a prompt, ask a model about your code",
	Long: `lope opens a terminal UI over a directory tree. Mark the files that
matter, describe the problem, and send both to a chat-completion service.

  ctrl+h / ctrl+l   move between the file tree and the prompt
  ctrl+j / ctrl+k   move to and from the send/quit bar
  ctrl+c            quit without sending`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runRoot,
}

// Execute runs the root command until it finishes or the process is
// signalled.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/lope/config.yaml)")

	flags := rootCmd.Flags()
	flags.StringVarP(&promptFile, "prompt-file", "p", "", "markdown file seeding the prompt; frontmatter may set model and system")
	flags.StringVar(&filesFrom, "files-from", "", "show only the paths listed in this file (- for stdin)")
	flags.BoolVar(&dryRun, "dry-run", false, "print the composed query instead of sending it")
	flags.BoolVar(&copyQuery, "copy", false, "copy the composed query to the clipboard instead of sending it")
	flags.BoolVar(&rawReply, "raw", false, "print the reply without markdown rendering")
	flags.String("model", "", "completion model")
	flags.String("log-file", "", "write diagnostics to this file")
	rootCmd.MarkFlagsMutuallyExclusive("dry-run", "copy")

	rootCmd.AddCommand(configCmd)
}

// loadConfig merges defaults, the config file, env and flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	v, err := config.New(cfgFile)
	if err != nil {
		return config.Config{}, err
	}
	if err := bindFlag(v, cmd, "completion.model", "model"); err != nil {
		return config.Config{}, err
	}
	if err := bindFlag(v, cmd, "log.file", "log-file"); err != nil {
		return config.Config{}, err
	}
	return config.Decode(v)
}

func bindFlag(v *viper.Viper, cmd *cobra.Command, key, name string) error {
	f := cmd.Flags().Lookup(name)
	if f == nil {
		return fmt.Errorf("flag --%s is not defined", name)
	}
	if err := v.BindPFlag(key, f); err != nil {
		return fmt.Errorf("bind flag --%s: %w", name, err)
	}
	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, closer, err := logging.New(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer closer.Close()

	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	opts := app.Options{
		Root:       root,
		Config:     cfg,
		PromptFile: promptFile,
		DryRun:     dryRun,
		Copy:       copyQuery,
		Raw:        rawReply,
		Out:        cmd.OutOrStdout(),
		Logger:     logger,
	}
	if filesFrom != "" {
		files, err := app.LoadFileList(filesFrom)
		if err != nil {
			return fmt.Errorf("failed to read file list: %w", err)
		}
		opts.Files = files
	}

	logger.Info("starting", "root", root, "model", cfg.Completion.Model, "dry_run", dryRun, "copy", copyQuery)
	return app.Run(cmd.Context(), opts)
}
