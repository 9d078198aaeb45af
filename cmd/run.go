package cmd

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/stellar/go/support/config"

	"github.com/stellar/cexdemo/driver"
	"github.com/stellar/cexdemo/model"
	"github.com/stellar/cexdemo/plugins"
	"github.com/stellar/cexdemo/support/logger"
	"github.com/stellar/cexdemo/support/utils"
)

const runExamples = `  cexdemo run --conf ./path/demo.cfg
  cexdemo run --conf ./path/demo.cfg --steps ticker,balance,orders --sim
  cexdemo ticker --conf ./path/demo.cfg`

var runCmd = &cobra.Command{
	Use:     "run",
	Short:   "Runs the demo steps against the configured exchange",
	Example: runExamples,
}

type inputs struct {
	configPath *string
	steps      *string
	simMode    *bool
	logPrefix  *string
	envFile    *string
}

func requiredFlag(ccmd *cobra.Command, flag string) {
	e := ccmd.MarkFlagRequired(flag)
	if e != nil {
		panic(e)
	}
}

func logPanic(l logger.Logger, fatalOnError bool) {
	if r := recover(); r != nil {
		st := debug.Stack()
		l.Errorf("PANIC!! recovered to log it in the file\npanic: %v\n\n%s\n", r, string(st))
		if fatalOnError {
			logger.Fatal(l, fmt.Errorf("PANIC!! recovered to log it in the file\npanic: %v\n\n%s\n", r, string(st)))
		}
	}
}

// addCommonFlags declares the flags shared by the run command and every single-step command
func addCommonFlags(ccmd *cobra.Command) inputs {
	options := inputs{}
	options.configPath = ccmd.Flags().StringP("conf", "c", "", "(required) demo config file path")
	options.simMode = ccmd.Flags().Bool("sim", false, "validate orders and withdrawals with the exchange without executing them")
	options.logPrefix = ccmd.Flags().StringP("log", "l", "", "log to a file (and stderr) with this prefix for the filename")
	options.envFile = ccmd.Flags().String("env", ".env", "file with the API credentials, skipped when it does not exist")

	requiredFlag(ccmd, "conf")
	return options
}

func init() {
	options := addCommonFlags(runCmd)
	options.steps = runCmd.Flags().StringP("steps", "s", "", fmt.Sprintf("comma-separated steps to run in order, one of: %s", strings.Join(driver.StepNames(), ", ")))
	runCmd.Flags().SortFlags = false

	runCmd.Run = func(ccmd *cobra.Command, args []string) {
		runDemo(options, nil)
	}
}

// makeStepCmds makes one command per driver step that runs only that step
func makeStepCmds() []*cobra.Command {
	cmds := []*cobra.Command{}
	for _, name := range driver.StepNames() {
		stepName := name
		stepCmd := &cobra.Command{
			Use:     stepName,
			Short:   fmt.Sprintf("Runs only the '%s' step: %s", stepName, driver.StepDescription(stepName)),
			Example: fmt.Sprintf("  cexdemo %s --conf ./path/demo.cfg", stepName),
		}
		options := addCommonFlags(stepCmd)
		stepCmd.Flags().SortFlags = false
		stepCmd.Run = func(ccmd *cobra.Command, args []string) {
			runDemo(options, []string{stepName})
		}
		cmds = append(cmds, stepCmd)
	}
	return cmds
}

func makeLogger(out io.Writer, sessionID string) logger.Logger {
	return logger.MakeEntryLogger(out).WithField("session_id", sessionID)
}

func runDemo(options inputs, fixedSteps []string) {
	startTime := time.Now()
	sessionID := uuid.New().String()
	l := makeLogger(os.Stderr, sessionID)
	defer logPanic(l, true)

	loadEnvFile(l, *options.envFile)
	cfg := readDemoConfig(l, options, fixedSteps)

	if *options.logPrefix != "" {
		l = setLogFile(l, makeLogFilename(*options.logPrefix, cfg, startTime), sessionID)
	}
	l.Info(makeStartupMessage(options, cfg))
	// only log the config here so it can be included in the log file
	utils.LogConfig(l, cfg)

	apiKeys := cfg.APIKeys()
	if len(apiKeys) == 0 || apiKeys[0].Key == "" || apiKeys[0].Secret == "" {
		utils.PrintErrorHintf("set %s and %s in the environment or in the env file, or add EXCHANGE_API_KEYS to the config file", driver.EnvAPIKey, driver.EnvAPISecret)
		logger.Fatal(l, fmt.Errorf("no API credentials available for exchange '%s'", cfg.Exchange))
	}
	// the exchange client holds its own copy from here on
	cfg.ClearSecrets()

	overrides := map[model.TradingPair]*model.OrderConstraintsOverride{}
	if override := cfg.OrderConstraintsOverride(); override != nil {
		overrides[*cfg.TradingPair()] = override
	}
	exchange, e := plugins.MakeExchange(cfg.Exchange, apiKeys, plugins.ExchangeOptions{
		SimMode:                   cfg.SimMode,
		WithdrawAddresses:         cfg.WithdrawAddresses,
		OrderConstraintsOverrides: overrides,
		Logger:                    l,
	})
	if e != nil {
		logger.Fatal(l, errors.Wrap(e, "could not make the exchange"))
	}

	d := driver.MakeDriver(exchange, cfg, os.Stdout, l)
	e = d.Run(cfg.Steps)
	if e != nil {
		logger.Fatal(l, e)
	}
	l.Infof("finished %d steps in %s", len(cfg.Steps), time.Since(startTime))
}

func loadEnvFile(l logger.Logger, envFile string) {
	if envFile == "" {
		return
	}

	e := godotenv.Load(envFile)
	if e != nil {
		if os.IsNotExist(e) {
			l.Infof("no env file found at '%s', using the process environment\n", envFile)
			return
		}
		logger.Fatal(l, fmt.Errorf("could not load env file '%s': %s", envFile, e))
	}
	l.Infof("loaded env file '%s'\n", envFile)
}

func readDemoConfig(l logger.Logger, options inputs, fixedSteps []string) *driver.DemoConfig {
	var cfg driver.DemoConfig
	e := config.Read(*options.configPath, &cfg)
	utils.CheckConfigError(l, e, *options.configPath)

	if *options.simMode {
		cfg.SimMode = true
	}
	if fixedSteps != nil {
		cfg.Steps = fixedSteps
	} else if options.steps != nil && *options.steps != "" {
		cfg.Steps = utils.SplitList(*options.steps)
	}
	if cfg.ApplyEnv() {
		l.Infof("using the API credentials from %s and %s\n", driver.EnvAPIKey, driver.EnvAPISecret)
	}

	e = cfg.Init()
	if e != nil {
		logger.Fatal(l, e)
	}
	return &cfg
}

func makeStartupMessage(options inputs, cfg *driver.DemoConfig) string {
	startupMessage := fmt.Sprintf("Starting cexdemo: version %s on exchange '%s' for pair %s with steps [%s]", version, cfg.Exchange, cfg.TradingPair(), strings.Join(cfg.Steps, ", "))
	if cfg.SimMode {
		startupMessage += " in simulation mode"
	}
	return startupMessage
}

// setLogFile returns a logger that writes to stderr and to the file
func setLogFile(l logger.Logger, filename string, sessionID string) logger.Logger {
	f, e := os.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if e != nil {
		logger.Fatal(l, fmt.Errorf("failed to set log file: %s", e))
		return l
	}
	mw := io.MultiWriter(os.Stderr, f)
	fileLogger := makeLogger(mw, sessionID)

	fileLogger.Infof("logging to file: %s\n", filename)
	return fileLogger
}

func makeLogFilename(logPrefix string, cfg *driver.DemoConfig, startTime time.Time) string {
	startStr := startTime.Format("20060102T150405MST")
	pair := cfg.TradingPair()
	return fmt.Sprintf("%s_%s_%s_%s_%s.log", logPrefix, cfg.Exchange, pair.Base, pair.Quote, startStr)
}
