package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"gopagefind/internal/config"
	"gopagefind/internal/format"
	"gopagefind/internal/indexer"
	"gopagefind/internal/logx"
	"gopagefind/internal/system"
)

// indexOptions is the result of scanning the index command's tokens.
type indexOptions struct {
	site        string
	runWith     string
	useVersion  string
	showVersion bool
	showHelp    bool
	passthrough []string
}

func newIndexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index [flags] [pagefind args] [-- pagefind args]",
		Short: "Index a built site with pagefind",
		Long: `Index a built site with pagefind.

Recognized flags are --site, --run-with, --use-version, and --version.
Every other token, and everything after a bare --, is passed through to
pagefind verbatim.`,
		// Unrecognized tokens must reach pagefind untouched, so flag
		// parsing is manual.
		DisableFlagParsing: true,
		RunE:               runIndex,
	}
	return cmd
}

// parseIndexArgs scans the raw token list. Recognized flags consume their
// value; a bare -- ends scanning and forwards the rest verbatim.
func parseIndexArgs(tokens []string) (indexOptions, error) {
	var opts indexOptions
	for i := 0; i < len(tokens); i++ {
		switch tokens[i] {
		case "--site", "--run-with", "--use-version":
			flag := tokens[i]
			if i+1 >= len(tokens) {
				return indexOptions{}, fmt.Errorf("missing value for %s", flag)
			}
			i++
			switch flag {
			case "--site":
				opts.site = tokens[i]
			case "--run-with":
				opts.runWith = tokens[i]
			case "--use-version":
				opts.useVersion = tokens[i]
			}
		case "--version":
			opts.showVersion = true
		case "--help", "-h":
			opts.showHelp = true
		case "--":
			opts.passthrough = append(opts.passthrough, tokens[i+1:]...)
			return opts, nil
		default:
			opts.passthrough = append(opts.passthrough, tokens[i])
		}
	}
	return opts, nil
}

func runIndex(cmd *cobra.Command, args []string) error {
	opts, err := parseIndexArgs(args)
	if err != nil {
		return err
	}
	if opts.showHelp {
		return cmd.Help()
	}

	cfg, err := buildConfig(opts)
	if err != nil {
		return err
	}

	svc := indexer.NewService(system.OS{}, logx.Default())

	if opts.showVersion {
		return printVersion(cmd, svc, cfg)
	}

	output, err := svc.RunIndex(cmd.Context(), cfg.RunWith, cfg.Version, cfg.Site, cfg.Args)
	if err != nil {
		var execErr *indexer.ExecError
		if errors.As(err, &execErr) {
			cmd.PrintErrln(format.ErrorMessage(execErr))
			return errors.New("indexing failed")
		}
		return err
	}

	cmd.Println(format.SuccessMessage(output))
	return nil
}

func buildConfig(opts indexOptions) (config.Config, error) {
	overrides := config.Overrides{
		Site:    opts.site,
		Version: opts.useVersion,
		Args:    opts.passthrough,
	}
	if opts.runWith != "" {
		rw, err := indexer.ParseRunWith(opts.runWith)
		if err != nil {
			return config.Config{}, err
		}
		overrides.RunWith = &rw
	}
	return config.New(overrides, config.Global{})
}

// printVersion reports the tool's own version and the resolved pagefind
// version, noting a configured-version mismatch. It always exits cleanly.
func printVersion(cmd *cobra.Command, svc indexer.Service, cfg config.Config) error {
	cmd.Printf("gopagefind %s\n", cliVersion)

	discovered, err := svc.Version(cmd.Context(), cfg.RunWith, cfg.Version)
	if err != nil {
		cmd.Printf("pagefind: %v\n", err)
		return nil
	}
	cmd.Printf("pagefind %s\n", discovered)

	if cfg.Version != indexer.VersionLatest && cfg.Version != discovered {
		cmd.Printf("note: configured version %s differs from resolved version %s\n", cfg.Version, discovered)
	}
	return nil
}
