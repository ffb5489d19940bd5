package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/amirhossein-jamali/schema-ledger/internal/domain/entity"
	"github.com/amirhossein-jamali/schema-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/schema-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/schema-ledger/internal/infrastructure/adapter/metrics"
	timeProvider "github.com/amirhossein-jamali/schema-ledger/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/schema-ledger/internal/infrastructure/bootstrap"
	"github.com/amirhossein-jamali/schema-ledger/internal/infrastructure/config"
)

type commandFunc func(ctx context.Context, service usecase.MigrationUseCase, opts *options) (any, error)

var commands = map[string]commandFunc{
	"info":     runInfo,
	"validate": runValidate,
	"migrate":  runMigrate,
	"baseline": runBaseline,
	"repair":   runRepair,
	"liberate": runLiberate,
}

// options holds the values that are not configuration keys
type options struct {
	configFile string
	format     string
	target     entity.TargetVersion
}

// flagKeys binds command line flags to configuration keys
var flagKeys = map[string]string{
	"target":               "migrations.target",
	"locations":            "migrations.locations",
	"table":                "migrations.table",
	"out-of-order":         "migrations.outOfOrder",
	"cherry-pick":          "migrations.cherryPick",
	"ignore-patterns":      "migrations.ignorePatterns",
	"baseline-version":     "migrations.baselineVersion",
	"baseline-description": "migrations.baselineDescription",
	"baseline-on-migrate":  "migrations.baselineOnMigrate",
	"repair-missing":       "migrations.repairMissing",
	"installed-by":         "migrations.installedBy",
	"driver":               "database.driver",
	"host":                 "database.host",
	"port":                 "database.port",
	"user":                 "database.username",
	"password":             "database.password",
	"database":             "database.database",
	"log-level":            "logger.level",
	"log-format":           "logger.format",
}

func usage(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintf(w, `migrator - schema history command line

Usage:
  migrator <command> [options]

Commands:
  info       Show resolved and applied migrations with their state
  validate   Report every inconsistency between scripts and history
  migrate    Apply pending migrations up to --target
  baseline   Mark the schema as trusted at the baseline version
  repair     Remove failed rows and realign checksums
  liberate   Convert the legacy history table into the current format

Options:
`)
	fs.SetOutput(w)
	fs.PrintDefaults()
}

func newFlagSet(opts *options) *pflag.FlagSet {
	fs := pflag.NewFlagSet("migrator", pflag.ContinueOnError)
	fs.StringVar(&opts.configFile, "config", "", "configuration file (defaults to configs/<SL_ENV>.yaml)")
	fs.StringVar(&opts.format, "format", "json", "output format: json or yaml")
	fs.String("target", "", "target version for migrate and info: latest, current, next or a version")

	fs.StringSlice("locations", nil, "migration script directories")
	fs.String("table", "", "schema history table")
	fs.Bool("out-of-order", false, "apply pending migrations older than the current version")
	fs.StringSlice("cherry-pick", nil, "only consider these migrations")
	fs.StringSlice("ignore-patterns", nil, "glob patterns over versions or script names to leave out, e.g. V2__*")
	fs.String("baseline-version", "", "baseline version")
	fs.String("baseline-description", "", "baseline description")
	fs.Bool("baseline-on-migrate", false, "baseline a non-empty schema without history before migrating")
	fs.String("repair-missing", "", "repair strategy for missing migrations: delete, remove or keep")
	fs.String("installed-by", "", "user recorded in the schema history")
	fs.String("driver", "", "database driver: postgres, mysql or sqlite")
	fs.String("host", "", "database host")
	fs.String("port", "", "database port")
	fs.String("user", "", "database user")
	fs.String("password", "", "database password")
	fs.String("database", "", "database name or sqlite file")
	fs.String("log-level", "", "log level: debug, info, warn or error")
	fs.String("log-format", "", "log format: json or console")
	return fs
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		if !errors.Is(err, pflag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

// run executes one command and writes its result document to stdout.
// A failed command still prints its partial result before the error.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts := &options{}
	fs := newFlagSet(opts)
	fs.Usage = func() { usage(stderr, fs) }

	if len(args) == 0 {
		fs.Usage()
		return errors.New("command required: info, validate, migrate, baseline, repair or liberate")
	}
	name := args[0]
	if name == "-h" || name == "--help" || name == "help" {
		fs.Usage()
		return nil
	}
	cmd, ok := commands[name]
	if !ok {
		fs.Usage()
		return fmt.Errorf("unknown command: %s", name)
	}
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	encode, err := encoderFor(opts.format)
	if err != nil {
		return err
	}

	v := viper.New()
	for flagName, key := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(flagName)); err != nil {
			return fmt.Errorf("bind flag %s: %w", flagName, err)
		}
	}
	if opts.configFile != "" {
		v.SetConfigFile(opts.configFile)
	}

	cfg, err := config.Load(v)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if _, err := config.Validate(cfg, false); err != nil {
		return err
	}

	log, err := bootstrap.NewLogger(cfg, "stderr")
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = log.Flush() }()

	app, err := bootstrap.Build(ctx, cfg, log, timeProvider.NewRealTimeProvider(), metrics.NoopMetrics{}, nil)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	// The service already reconciles with the configured target; migrate takes it explicitly
	opts.target = app.Target

	result, cmdErr := cmd(ctx, app.Service, opts)
	if result != nil {
		if err := encode(stdout, result); err != nil {
			return errors.Join(cmdErr, fmt.Errorf("write result: %w", err))
		}
	}
	return cmdErr
}

func runInfo(ctx context.Context, service usecase.MigrationUseCase, _ *options) (any, error) {
	info, err := service.Info(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewInfoResponse(info, info.All()), nil
}

func runValidate(ctx context.Context, service usecase.MigrationUseCase, _ *options) (any, error) {
	result, err := service.Validate(ctx)
	return nilIfEmpty(result), err
}

func runMigrate(ctx context.Context, service usecase.MigrationUseCase, opts *options) (any, error) {
	result, err := service.Migrate(ctx, opts.target)
	return nilIfEmpty(result), err
}

func runBaseline(ctx context.Context, service usecase.MigrationUseCase, _ *options) (any, error) {
	result, err := service.Baseline(ctx, usecase.BaselineRequest{})
	return nilIfEmpty(result), err
}

func runRepair(ctx context.Context, service usecase.MigrationUseCase, _ *options) (any, error) {
	result, err := service.Repair(ctx)
	return nilIfEmpty(result), err
}

func runLiberate(ctx context.Context, service usecase.MigrationUseCase, _ *options) (any, error) {
	result, err := service.Liberate(ctx)
	return nilIfEmpty(result), err
}

// nilIfEmpty keeps a typed nil pointer from reaching the encoder as a non-nil any
func nilIfEmpty[T any](result *T) any {
	if result == nil {
		return nil
	}
	return result
}
