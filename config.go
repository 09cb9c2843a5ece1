/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Seednode/wordsrv/words"
)

type Config struct {
	adminBind    string
	adminPort    int
	bind         string
	logJSON      bool
	logLevel     string
	maxGuesses   int
	port         int
	profile      bool
	verbose      bool
	version      bool
	writeTimeout time.Duration

	dictionary string
}

func (c *Config) validate() error {
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.adminPort < 0 || c.adminPort > 65535 {
		return fmt.Errorf("invalid admin port (must be between 0-65535 inclusive): %d", c.adminPort)
	}
	if c.adminPort != 0 && c.adminPort == c.port && c.adminBind == c.bind {
		return errors.New("--admin-port must differ from --port")
	}
	if c.maxGuesses < 1 || c.maxGuesses > 26 {
		return fmt.Errorf("invalid max guesses (must be between 1-26 inclusive): %d", c.maxGuesses)
	}
	if c.writeTimeout < 0 {
		return fmt.Errorf("invalid write timeout: %s", c.writeTimeout)
	}
	if _, err := zerolog.ParseLevel(c.logLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.logLevel, err)
	}
	return nil
}

func (c *Config) listenAddr() string {
	return net.JoinHostPort(c.bind, strconv.Itoa(c.port))
}

func (c *Config) adminAddr() string {
	return net.JoinHostPort(c.adminBind, strconv.Itoa(c.adminPort))
}

func usageArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: %s <dictionary filename>", cmd.Root().Name())
	}
	return nil
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("WORDSRV")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "wordsrv <dictionary filename>",
		Short:         "A turn-based word guessing game, played over a plain text socket.",
		Args:          usageArgs,
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.dictionary = args[0]
			if err := cfg.validate(); err != nil {
				return err
			}
			if err := setupLogging(cfg); err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVar(&cfg.adminBind, "admin-bind", "127.0.0.1", "address to bind the admin http endpoint to (env: WORDSRV_ADMIN_BIND)")
	fs.IntVar(&cfg.adminPort, "admin-port", 0, "port for the admin http endpoint, 0 to disable (env: WORDSRV_ADMIN_PORT)")
	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: WORDSRV_BIND)")
	fs.BoolVar(&cfg.logJSON, "log-json", false, "write logs as json instead of console text (env: WORDSRV_LOG_JSON)")
	fs.StringVar(&cfg.logLevel, "log-level", "info", "minimum log level (env: WORDSRV_LOG_LEVEL)")
	fs.IntVarP(&cfg.maxGuesses, "max-guesses", "g", words.DefaultMaxGuesses, "wrong guesses allowed per round (env: WORDSRV_MAX_GUESSES)")
	fs.IntVarP(&cfg.port, "port", "p", 50007, "port to listen on (env: WORDSRV_PORT)")
	fs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers on the admin endpoint (env: WORDSRV_PROFILE)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: WORDSRV_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: WORDSRV_VERSION)")
	fs.DurationVar(&cfg.writeTimeout, "write-timeout", timeout, "time allowed for a single write to a client (env: WORDSRV_WRITE_TIMEOUT)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("wordsrv v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}

// serve loads the dictionary, opens the game listener and runs until ctx is
// cancelled.
func serve(ctx context.Context, cfg *Config) error {
	dict, err := words.Load(cfg.dictionary)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", cfg.listenAddr())
	if err != nil {
		return err
	}

	log.Info().Str("version", releaseVersion).Msg("START: wordsrv")

	s := newServer(ctx, cfg, dict)

	if cfg.adminPort > 0 {
		go func() {
			if err := serveAdmin(ctx, cfg, s); err != nil {
				log.Error().Err(err).Msg("admin endpoint stopped")
			}
		}()
	}

	return s.Run(ctx, ln)
}
