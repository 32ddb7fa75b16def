package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/LeJamon/goAuctiond/internal/config"
	"github.com/LeJamon/goAuctiond/internal/core/engine"
	"github.com/LeJamon/goAuctiond/internal/di"
	"github.com/LeJamon/goAuctiond/internal/ledger"
)

// Version is the auctiond release.
const Version = "0.1.0-dev"

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	configFile string
	debug      bool
	verbose    bool
	quiet      bool
	now        string
	from       string
}

// NewRootCommand builds the auctiond command tree.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "auctiond",
		Short: "auctiond - English auction marketplace engine",
		Long: `auctiond runs an English auction marketplace over a local record store.
Sellers list items held in the item registry, bidders escrow funds with every
bid and settled sales pay the market fee, the collection royalty and the
seller. Every command applies one request and prints its result as JSON.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "conf", "", "configuration file path")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable normally suppressed debug logging")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "only log errors")
	rootCmd.PersistentFlags().StringVar(&opts.now, "now", "", "evaluate the request at this RFC3339 time instead of the wall clock")
	rootCmd.PersistentFlags().StringVar(&opts.from, "from", "", "account sending the request")

	rootCmd.AddCommand(
		newInitCmd(opts),
		newAuctionCmd(opts),
		newConfigCmd(opts),
		newLedgerCmd(opts),
		newSweepCmd(opts),
		newEventsCmd(opts),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// session is one command's view of the configured services.
type session struct {
	opts      *globalOptions
	cfg       *config.Config
	log       *logrus.Logger
	container *di.Container
	provider  *di.Provider
	logFile   *os.File
}

// openSession loads the configuration, sets up logging and registers every
// service. Services are built on first use.
func (o *globalOptions) openSession() (*session, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.configFile != "" {
		cfg, err = config.LoadConfig(o.configFile)
	} else {
		cfg, err = config.LoadDefaultConfig()
	}
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logFile, err := cfg.Log.Configure(logger)
	if err != nil {
		return nil, err
	}
	switch {
	case o.debug:
		logger.SetLevel(logrus.DebugLevel)
	case o.verbose:
		logger.SetLevel(logrus.InfoLevel)
	case o.quiet:
		logger.SetLevel(logrus.ErrorLevel)
	}

	container := di.New()
	provider := di.NewProvider(container, cfg, logger)
	if err := provider.RegisterAll(); err != nil {
		if logFile != nil {
			logFile.Close()
		}
		return nil, err
	}

	return &session{
		opts:      o,
		cfg:       cfg,
		log:       logger,
		container: container,
		provider:  provider,
		logFile:   logFile,
	}, nil
}

// Close releases every service the session built.
func (s *session) Close() error {
	err := s.container.Close()
	if s.logFile != nil {
		s.logFile.Close()
	}
	return err
}

// withSession runs fn against a fresh session and closes it afterwards.
func withSession(opts *globalOptions, fn func(s *session) error) error {
	s, err := opts.openSession()
	if err != nil {
		return err
	}
	runErr := fn(s)
	if err := s.Close(); err != nil && runErr == nil {
		return err
	}
	return runErr
}

// now returns the request time: --now when set, the wall clock otherwise.
func (s *session) now() (time.Time, error) {
	if s.opts.now == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s.opts.now)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --now: %w", err)
	}
	return t.UTC(), nil
}

// sender returns --from, which requests require.
func (s *session) sender() (string, error) {
	if s.opts.from == "" {
		return "", fmt.Errorf("--from is required")
	}
	return s.opts.from, nil
}

func (s *session) engine() (*engine.Engine, error) {
	return s.provider.GetEngine()
}

func (s *session) ledger() (*ledger.Ledger, error) {
	return s.provider.GetLedger()
}

// apply sends one operation to the engine and prints the response.
func (s *session) apply(cmd *cobra.Command, funds []string, msg engine.Operation) error {
	eng, err := s.engine()
	if err != nil {
		return err
	}
	sender, err := s.sender()
	if err != nil {
		return err
	}
	now, err := s.now()
	if err != nil {
		return err
	}
	denom, err := s.denom(cmd.Context(), eng)
	if err != nil {
		return err
	}
	coins, err := parseCoins(funds, denom)
	if err != nil {
		return err
	}

	resp, err := eng.Apply(cmd.Context(), engine.Request{Sender: sender, Funds: coins, Now: now, Msg: msg})
	if err != nil {
		return err
	}
	return printJSON(cmd, resp)
}

// denom returns the committed market denomination, or the configured one
// before instantiation.
func (s *session) denom(ctx context.Context, eng *engine.Engine) (string, error) {
	cfg, err := eng.Config(ctx)
	if err != nil {
		return s.cfg.Market.Denom, nil
	}
	return cfg.Denom, nil
}
