package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vietdv277/asgcheck/internal/aws"
	"github.com/vietdv277/asgcheck/internal/config"
	"github.com/vietdv277/asgcheck/internal/verify"
)

const usageExample = "Usage: asgcheck <auto-scaling-group-name>   (e.g. asgcheck web-prod-asg)"

var (
	profile  string
	region   string
	logLevel string

	v = config.NewViper()
)

var rootCmd = &cobra.Command{
	Use:   "asgcheck <auto-scaling-group-name>",
	Short: "Verify the health and configuration of an Auto Scaling Group",
	Long: `asgcheck runs read-only checks against an AWS Auto Scaling Group and prints
one line per result:

  - desired capacity matches the number of instances
  - instances are spread across more than one availability zone
  - all instances share security group, image and VPC
  - the longest running instance
  - time remaining until the next scheduled action
  - instances launched and terminated today (UTC, whole region)

Failed checks are reported, not signalled through the exit status.

Examples:
  asgcheck web-prod-asg
  asgcheck web-prod-asg --region eu-west-1 --profile ops
  ASGCHECK_LOG_LEVEL=debug asgcheck web-prod-asg`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runVerify,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&profile, config.KeyProfile, "p", "", "AWS profile to use")
	rootCmd.Flags().StringVarP(&region, config.KeyRegion, "r", "", "AWS region to use (default "+config.DefaultRegion+")")
	rootCmd.Flags().StringVar(&logLevel, config.KeyLogLevel, "", "log level: debug, info, warn, error (default "+config.DefaultLogLevel+")")

	// Bind flags to viper
	_ = v.BindPFlag(config.KeyProfile, rootCmd.Flags().Lookup(config.KeyProfile))
	_ = v.BindPFlag(config.KeyRegion, rootCmd.Flags().Lookup(config.KeyRegion))
	_ = v.BindPFlag(config.KeyLogLevel, rootCmd.Flags().Lookup(config.KeyLogLevel))
}

func runVerify(cmd *cobra.Command, args []string) error {
	settings, cfgErr := resolveSettings(v)

	logger, err := newLogger(settings.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if cfgErr != nil {
		logger.WithError(cfgErr).Warn("Ignoring config file")
	}

	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		logger.Error("Please pass the Auto Scaling Group name as an argument.")
		logger.Info(usageExample)
		return nil
	}
	if len(args) > 1 {
		logger.WithField("ignored", args[1:]).Warn("Only one Auto Scaling Group is verified per run")
	}

	ctx := cmd.Context()

	client, err := aws.NewClient(ctx,
		aws.WithProfile(settings.Profile),
		aws.WithRegion(settings.Region),
	)
	if err != nil {
		logger.WithError(err).Error("Failed to create AWS client")
		return nil
	}

	logCallerIdentity(cmd, client, logger)

	engine := verify.New(client, cmd.OutOrStdout(), verify.WithLogger(logger))
	engine.Run(ctx, args[0])

	return nil
}

// resolveSettings returns usable settings even when the config file is
// unreadable, along with the error to report
func resolveSettings(v *viper.Viper) (config.Settings, error) {
	cfg, err := config.LoadConfig()
	return config.Resolve(v, cfg, os.Getenv), err
}

func logCallerIdentity(cmd *cobra.Command, client *aws.Client, logger *logrus.Logger) {
	if !logger.IsLevelEnabled(logrus.DebugLevel) {
		return
	}

	identity, err := client.CallerIdentity(cmd.Context())
	if err != nil {
		logger.WithError(err).Debug("Could not resolve caller identity")
		return
	}

	logger.WithFields(logrus.Fields{
		"account": identity.Account,
		"arn":     identity.Arn,
		"region":  client.Region(),
		"profile": client.Profile(),
	}).Debug("Using AWS identity")
}
