package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	bind          string
	boardPool     int
	gracePeriod   time.Duration
	historyDB     string
	historySize   int
	port          int
	prefix        string
	profile       bool
	roomMaxAge    time.Duration
	sweepInterval time.Duration
	tlsCert       string
	tlsKey        string
	verbose       bool
	version       bool
}

func (c *Config) validate() error {
	if (c.tlsCert == "") != (c.tlsKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.historySize < 1 {
		return fmt.Errorf("invalid history size (must be positive): %d", c.historySize)
	}
	if c.boardPool < 1 {
		return fmt.Errorf("invalid board pool size (must be positive): %d", c.boardPool)
	}
	if c.sweepInterval < time.Second {
		return fmt.Errorf("invalid sweep interval (must be at least 1s): %s", c.sweepInterval)
	}
	return nil
}

func (c *Config) scheme() string {
	if c.tlsCert != "" && c.tlsKey != "" {
		return "https"
	}
	return "http"
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("COUNTBATTLE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "countbattle",
		Short:         "Authoritative session server for the Count Battle multiplayer counting game.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return ServePage(cmd.Context(), cfg, args)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: COUNTBATTLE_BIND)")
	fs.IntVar(&cfg.boardPool, "board-pool", 100, "number of distinct puzzle boards to draw from (env: COUNTBATTLE_BOARD_POOL)")
	fs.DurationVar(&cfg.gracePeriod, "grace-period", 5*time.Minute, "time a room waits for its creator to reconnect (env: COUNTBATTLE_GRACE_PERIOD)")
	fs.StringVar(&cfg.historyDB, "history-db", "", "path to the completed-game database, empty for in-memory (env: COUNTBATTLE_HISTORY_DB)")
	fs.IntVar(&cfg.historySize, "history-size", 50, "completed games retained for the leaderboard (env: COUNTBATTLE_HISTORY_SIZE)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: COUNTBATTLE_PORT)")
	fs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to all URLs, for use behind reverse proxy (env: COUNTBATTLE_PREFIX)")
	fs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers (env: COUNTBATTLE_PROFILE)")
	fs.DurationVar(&cfg.roomMaxAge, "room-max-age", 2*time.Hour, "age after which empty rooms are reclaimed (env: COUNTBATTLE_ROOM_MAX_AGE)")
	fs.DurationVar(&cfg.sweepInterval, "sweep-interval", 10*time.Minute, "how often stale rooms are swept (env: COUNTBATTLE_SWEEP_INTERVAL)")
	fs.StringVar(&cfg.tlsCert, "tls-cert", "", "path to tls certificate (env: COUNTBATTLE_TLS_CERT)")
	fs.StringVar(&cfg.tlsKey, "tls-key", "", "path to tls keyfile (env: COUNTBATTLE_TLS_KEY)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: COUNTBATTLE_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: COUNTBATTLE_VERSION)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("countbattle v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
