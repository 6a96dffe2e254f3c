package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/redhat-et/zos-passticket/pkg/config"
	"github.com/redhat-et/zos-passticket/pkg/logger"
	"github.com/redhat-et/zos-passticket/pkg/metrics"
	"github.com/redhat-et/zos-passticket/pkg/passticket"
	"github.com/redhat-et/zos-passticket/pkg/policy"
	"github.com/redhat-et/zos-passticket/pkg/racf"
	"github.com/redhat-et/zos-passticket/pkg/telemetry"
)

const toolName = "genptkt"

var version = "0.0.0"

// newInvoker selects the security authority. Replaced in tests.
var newInvoker = func(cfg config.AuthorityConfig) racf.Invoker {
	if cfg.Mock {
		return racf.NewMockAuthority(racf.MockResponse{
			ReturnCode:     cfg.MockReturnCode,
			SAFReturnCode:  cfg.MockSAFReturnCode,
			RACFReturnCode: cfg.MockRACFReturn,
			RACFReasonCode: cfg.MockRACFReason,
			Ticket:         []byte(cfg.MockTicket),
		})
	}
	return racf.NewInvoker()
}

// Execute runs genptkt with the process arguments and exits.
func Execute() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		// Help is a usage request: no call was made and stdout stays empty.
		if help, _ := root.Flags().GetBool("help"); help {
			return ExitUsage
		}
		return 0
	}

	var ee *exitError
	if !errors.As(err, &ee) {
		// Flag parsing and other cobra errors
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fmt.Fprintln(stderr, root.UseLine())
		return ExitUsage
	}
	if ee.err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", ee.err)
	}
	return ee.code
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var cfgFile string
	v := config.InitViper(toolName)

	root := &cobra.Command{
		Use:   toolName + " <userId> <applicationId>",
		Short: "Generate a RACF PassTicket",
		Long: `genptkt asks RACF to generate a PassTicket that lets userId sign on to
applicationId without a password. The result is printed as JSON on stdout;
the process exits with the return code of the service call.

Use -- before the arguments when userId starts with a dash.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return &exitError{
					code: ExitUsage,
					err:  fmt.Errorf("expected 2 arguments, got %d\nUsage: %s", len(args), cmd.UseLine()),
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfgFile != "" {
				v.SetConfigFile(cfgFile)
			}
			return generate(cmd.Context(), v, args[0], args[1], stdout, stderr)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s\n\n%s", cmd.Long, cmd.UsageString())
	})

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	config.BindFlags(root, v)

	return root
}

func generate(ctx context.Context, v *viper.Viper, userID, applicationID string, stdout, stderr io.Writer) error {
	var cfg config.Config
	if err := config.Load(v, &cfg); err != nil {
		return &exitError{code: ExitUsage, err: fmt.Errorf("failed to load config: %w", err)}
	}

	useColors := os.Getenv("NO_COLOR") == "" && os.Getenv("TERM") != "dumb"
	log := logger.NewWithWriter(logger.ComponentCLI, stderr, useColors, logger.ParseLevel(cfg.Log.Level))

	shutdown, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:       toolName,
		Enabled:           cfg.OTel.Enabled,
		CollectorEndpoint: cfg.OTel.CollectorEndpoint,
		Writer:            stderr,
	})
	if err != nil {
		return &exitError{code: ExitUsage, err: err}
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Warn("Failed to flush traces", "error", err)
		}
	}()

	opts := []passticket.Option{passticket.WithLogger(log.For(logger.ComponentGenerator))}
	if cfg.Policy.File != "" {
		gate, err := policy.Load(ctx, cfg.Policy.File, log.For(logger.ComponentPolicy))
		if err != nil {
			return &exitError{code: ExitUsage, err: err}
		}
		opts = append(opts, passticket.WithPolicy(gate))
	}
	if cfg.Authority.Mock {
		log.Warn("Using simulated security authority")
	}

	gen := passticket.NewGenerator(newInvoker(cfg.Authority), opts...)
	outcome, genErr := gen.Generate(ctx, userID, applicationID)

	if cfg.Metrics.Textfile != "" {
		if err := metrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			log.Warn("Metrics not written", "error", err)
		}
	}

	if genErr != nil {
		var denied *passticket.DeniedError
		if errors.As(genErr, &denied) || errors.Is(genErr, passticket.ErrPolicy) {
			return &exitError{code: ExitPolicyDenied, err: genErr}
		}
		return &exitError{code: ExitUnavailable, err: genErr}
	}

	if err := passticket.WriteRecord(stdout, outcome); err != nil {
		log.Error("Failed to write record", "error", err)
	}
	if outcome.ReturnCode != 0 {
		return &exitError{code: int(outcome.ReturnCode)}
	}
	return nil
}
