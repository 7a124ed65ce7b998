package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"kursnet-xml-tool/internal/config"
	"kursnet-xml-tool/internal/httpx"
	"kursnet-xml-tool/internal/session"
	"kursnet-xml-tool/internal/source"
)

var (
	// Global flags
	verbose bool
	envFile string
	timeout time.Duration

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "kursnet",
	Short: "Check and edit KURSNET course catalogs (OpenQCAT)",
	Long: `kursnet loads an OpenQCAT course catalog export, groups course dates under
their master courses, flags records that cannot be booked or break the
content rules, and writes differential update files (differenz_seq_N.xml)
that can be uploaded to the provider's SFTP inbox.

Catalogs are read from a local path, a .br compressed file or an http(s) URL.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(envFile); err != nil {
			return fmt.Errorf("failed to load %s: %w", envFile, err)
		}
		cfg = config.Load()

		zc := zap.NewProductionConfig()
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		} else {
			zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		}
		var err error
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional KEY=VALUE file loaded before reading the environment")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Overall timeout for downloads and uploads")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(endDateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// commandContext bounds a command by the --timeout flag.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, timeout)
}

func catalogReader() source.Reader {
	return source.Reader{
		Client: &http.Client{Timeout: 2 * time.Minute},
		Retry: httpx.RetryPolicy{
			MaxAttempts: cfg.HTTPMaxAttempts,
			Logger:      logger,
		},
	}
}

// openSession reads ref and loads it into a fresh session.
func openSession(ctx context.Context, ref string) (*session.Session, error) {
	raw, err := catalogReader().Read(ctx, ref)
	if err != nil {
		return nil, err
	}
	s := session.New(logger.With(zap.String("catalog", ref)), session.WithCharset(cfg.InputCharset))
	if _, err := s.Load(raw); err != nil {
		return nil, fmt.Errorf("%s: %w", ref, err)
	}
	return s, nil
}
