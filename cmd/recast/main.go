package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/recast/config"
	"github.com/dhamidi/recast/java/classpath"
	"github.com/dhamidi/recast/project"
	"github.com/dhamidi/recast/rewrite"
)

var version = "0.1.0"

var log = commonlog.GetLogger("recast.cmd")

// rootOptions holds the persistent flags and the configuration they select.
type rootOptions struct {
	configPath string
	verbosity  int
	logFile    string
	classpath  []string

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "recast",
		Short:         "Lossless refactoring recipes for Java sources and Maven poms",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "run configuration (default recast.yaml in . or $HOME)")
	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", "increase log verbosity")
	rootCmd.PersistentFlags().StringVar(&opts.logFile, "log", "", "log to this file instead of stderr")
	rootCmd.PersistentFlags().StringArrayVar(&opts.classpath, "classpath", nil, "jar or class directory for resolving library types (repeatable)")

	rootCmd.AddCommand(newRunCmd(opts))
	rootCmd.AddCommand(newFindCmd(opts))
	rootCmd.AddCommand(newPrintCmd(opts))
	rootCmd.AddCommand(newRecipesCmd(opts))
	rootCmd.AddCommand(newClassCmd(opts))
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newLSPCmd(opts))

	return rootCmd
}

// load reads the configuration and configures logging. Flags override the
// file.
func (o *rootOptions) load(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Log.Verbosity = o.verbosity
	}
	if o.logFile != "" {
		cfg.Log.File = o.logFile
	}
	cfg.Classpath = append(cfg.Classpath, o.classpath...)
	o.cfg = cfg

	if cfg.Log.File != "" {
		commonlog.Configure(cfg.Log.Verbosity, &cfg.Log.File)
	} else {
		commonlog.Configure(cfg.Log.Verbosity, nil)
	}
	log.Debugf("concurrency %d, %d configured recipes", cfg.Concurrency, len(cfg.Recipes))
	return nil
}

// openClasspath opens the configured classpath, or returns nil when there
// is none. The caller closes it.
func (o *rootOptions) openClasspath() (*classpath.Classpath, error) {
	if len(o.cfg.Classpath) == 0 {
		return nil, nil
	}
	return classpath.Open(o.cfg.Classpath...)
}

// loadUnits discovers and parses the sources below paths.
func (o *rootOptions) loadUnits(paths []string) ([]rewrite.Unit, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}
	projects := make([]*project.Project, 0, len(paths))
	for _, p := range paths {
		proj, err := project.LoadFrom(p)
		if err != nil {
			return nil, err
		}
		projects = append(projects, proj)
	}
	merged := project.Merge(projects...)

	cp, err := o.openClasspath()
	if err != nil {
		return nil, err
	}
	if cp != nil {
		defer cp.Close()
		merged.Classes = cp
	}
	return merged.Units()
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("Error:", err)
		os.Exit(1)
	}
}
