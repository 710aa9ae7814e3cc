package cmd

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jenkins-release/jenkins-release/api/job"
	"github.com/jenkins-release/jenkins-release/errs"
	"github.com/jenkins-release/jenkins-release/logger"
	"github.com/jenkins-release/jenkins-release/params"
	"github.com/jenkins-release/jenkins-release/settings"
	"github.com/jenkins-release/jenkins-release/version"
)

// Exit codes of the CLI.
const (
	ExitOK        = 0
	ExitUsage     = 1
	ExitRejected  = 2
	ExitTransport = 3
)

const usageArguments = "<job_name> [param1=val1 param2=val2 ...]"

type rootOptions struct {
	cfg        *settings.Config
	configPath string
	log        *logger.Logger
	jobClient  job.JobClient
}

// RootOption configures a command created by MakeCommand
type RootOption interface {
	apply(*rootOptions)
}

// Execute builds the root command and runs it against os.Args.
// This function is called by main.main().
func Execute() error {
	return MakeCommand().ExecuteContext(context.Background())
}

// MakeCommand returns the jenkins-release root command.
func MakeCommand(opts ...RootOption) *cobra.Command {
	ro := rootOptions{
		cfg: &settings.Config{},
	}
	for _, o := range opts {
		o.apply(&ro)
	}

	command := &cobra.Command{
		Use:   "jenkins-release " + usageArguments,
		Short: "Trigger a parameterized Jenkins build.",
		Long: `Trigger a parameterized Jenkins build.

Every argument after the job name of the form key=value is sent as a build
parameter. Arguments without '=' are ignored. Flags are only read before
the job name; everything after it is a build parameter.

Exit codes:
  0  build triggered
  1  usage or configuration error
  2  Jenkins rejected the request
  3  Jenkins could not be reached

Examples:
  jenkins-release deploy env=prod version=1.2.3
  jenkins-release --host https://ci.example.com --user me --token abc deploy`,
		Version:       version.String(),
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ro.log = logger.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), ro.cfg.Debug)

			jobName, p, ok := params.ParseArgs(args)
			if !ok {
				ro.log.Infoln(usageLine())
				return errs.Usagef("missing job name")
			}

			if err := loadConfig(&ro, cmd.Flags()); err != nil {
				ro.log.Error("invalid configuration", err)
				return err
			}

			client := ro.jobClient
			if client == nil {
				restClient, err := job.NewJobRestClient(*ro.cfg)
				if err != nil {
					err = errors.Wrap(err, "creating Jenkins client")
					ro.log.Error("invalid configuration", err)
					return err
				}
				client = restClient
			}

			return triggerBuild(cmd.Context(), ro.log, client, jobName, p)
		},
	}

	command.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		fmt.Fprintln(c.OutOrStdout(), err)
		fmt.Fprintln(c.OutOrStdout(), usageLine())
		return errs.Usagef("%v", err)
	})

	flags := command.Flags()
	// k=v tokens after the job name may look like flags (-Dfoo=bar)
	flags.SetInterspersed(false)
	flags.String("host", "", "Jenkins base URL, e.g. https://ci.example.com")
	flags.String("user", "", "Jenkins user name")
	flags.String("token", "", "Jenkins password or API token")
	flags.Duration("timeout", 0, "Timeout of the trigger request, 0 means none")
	flags.StringVar(&ro.configPath, "config", "", "Path to the settings file (default "+settings.DefaultConfigPath()+")")
	flags.BoolVar(&ro.cfg.Debug, "debug", false, "Enable debug logging")

	return command
}

func usageLine() string {
	return "Usage: jenkins-release " + usageArguments
}

// loadConfig fills ro.cfg from the settings file, .env, the environment and
// finally the flags the user set explicitly.
func loadConfig(ro *rootOptions, flags *pflag.FlagSet) error {
	if err := ro.cfg.Load(ro.configPath); err != nil {
		return err
	}
	if err := applyFlags(ro.cfg, flags); err != nil {
		return err
	}
	if ro.cfg.FileUsed != "" {
		ro.log.Debug("using settings file %s", ro.cfg.FileUsed)
	}
	return ro.cfg.Validate()
}

func applyFlags(cfg *settings.Config, flags *pflag.FlagSet) error {
	for name, dst := range map[string]*string{
		"host":  &cfg.Host,
		"user":  &cfg.User,
		"token": &cfg.Token,
	} {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetString(name)
		if err != nil {
			return errs.Config(err)
		}
		*dst = v
	}

	if flags.Changed("timeout") {
		d, err := flags.GetDuration("timeout")
		if err != nil {
			return errs.Config(err)
		}
		cfg.Timeout = d
	}
	return nil
}

func triggerBuild(ctx context.Context, log *logger.Logger, client job.JobClient, jobName string, p *params.Params) error {
	log.Debug("triggering %s with %d parameter(s)", job.BuildPath(jobName), p.Len())

	info, err := client.TriggerBuild(ctx, jobName, p)

	var rejection *errs.RemoteRejectionError
	switch {
	case err == nil:
		log.Success("Jenkins job '%s' triggered successfully", info.Job)
		if info.QueueLocation != "" {
			log.Debug("queued at %s", info.QueueLocation)
		}
		return nil
	case errors.As(err, &rejection):
		log.Failure("Failed to trigger Jenkins job '%s', status code: %d", jobName, rejection.StatusCode)
		log.Infoln(rejection.Body)
	case errors.Is(err, errs.ErrTransport):
		log.Failure("Failed to trigger Jenkins job '%s': %v", jobName, err)
	default:
		log.Error("trigger failed", err)
	}
	return err
}

// ExitCode maps the outcome of Execute to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, errs.ErrRemoteRejected):
		return ExitRejected
	case errors.Is(err, errs.ErrTransport):
		return ExitTransport
	default:
		return ExitUsage
	}
}

type customJobClientOption struct {
	c job.JobClient
}

func (o customJobClientOption) apply(opts *rootOptions) {
	opts.jobClient = o.c
}

// CustomJobClient returns a RootOption that makes the command use c instead
// of a client built from the configuration.
func CustomJobClient(c job.JobClient) RootOption {
	return customJobClientOption{c}
}
