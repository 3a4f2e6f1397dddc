package cli

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/diillson/cdk-bootstrap-go/internal/application/usecase"
	"github.com/diillson/cdk-bootstrap-go/internal/shared/types"
	"github.com/diillson/cdk-bootstrap-go/pkg/version"
	"github.com/spf13/cobra"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd          *cobra.Command
	bootstrapUseCase *usecase.BootstrapUseCase
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp() *CLIApp {
	app := &CLIApp{}

	rootCmd := &cobra.Command{
		Use:   "cdk-bootstrap",
		Short: "Bootstrap AWS accounts and regions for CDK deployment",
		Long: `Resolves the current AWS identity and runs "cdk bootstrap aws://<account>/<region>"
for each configured environment, one after another. By default the current
account is bootstrapped in us-east-1 and us-west-2.`,
		Version:       version.FormatVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          app.runCommand,
	}

	rootCmd.SetVersionTemplate(`{{printf "cdk-bootstrap version: %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON file listing environments and settings")
	rootCmd.PersistentFlags().StringP("profile", "p", "", "AWS profile for the identity query and for environments without their own")
	rootCmd.PersistentFlags().String("account", "", "Account to bootstrap instead of the caller's account")
	rootCmd.PersistentFlags().StringSliceP("regions", "r", nil, "Regions to bootstrap (comma-separated, default us-east-1,us-west-2)")
	rootCmd.PersistentFlags().BoolP("all-regions", "a", false, "Bootstrap every region enabled for the account")
	rootCmd.PersistentFlags().String("tool", "", `Provisioning CLI to invoke (default "cdk")`)
	rootCmd.PersistentFlags().String("policy", "", `What a failed bootstrap command does: "fail-fast" (default) or "continue"`)
	rootCmd.PersistentFlags().String("identity-source", "", `Resolve the caller identity with the AWS "cli" (default) or the "sdk"`)
	rootCmd.PersistentFlags().Bool("verify", false, "Check the CDK staging bucket exists after each bootstrap")
	rootCmd.PersistentFlags().String("qualifier", "", "CDK bootstrap qualifier used by --verify (default hnb659fds)")
	rootCmd.PersistentFlags().Bool("dry-run", false, "Print the bootstrap commands without running them")
	rootCmd.PersistentFlags().StringP("report-name", "n", "", "Specify the base name for the report file (without extension)")
	rootCmd.PersistentFlags().StringSliceP("report-type", "y", nil, "Specify report types: csv, json, pdf (default csv)")
	rootCmd.PersistentFlags().StringP("dir", "d", "", "Directory to save the report files (default: current directory)")

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// SetArgs overrides os.Args, mainly for tests.
func (app *CLIApp) SetArgs(args []string) {
	app.rootCmd.SetArgs(args)
}

// parseArgs parses command-line arguments into a CLIArgs struct.
func (app *CLIApp) parseArgs() (*types.CLIArgs, error) {
	flags := app.rootCmd.Flags()
	configFile, _ := flags.GetString("config-file")
	profile, _ := flags.GetString("profile")
	account, _ := flags.GetString("account")
	regions, _ := flags.GetStringSlice("regions")
	allRegions, _ := flags.GetBool("all-regions")
	tool, _ := flags.GetString("tool")
	policy, _ := flags.GetString("policy")
	identitySource, _ := flags.GetString("identity-source")
	verify, _ := flags.GetBool("verify")
	qualifier, _ := flags.GetString("qualifier")
	dryRun, _ := flags.GetBool("dry-run")
	reportName, _ := flags.GetString("report-name")
	reportType, _ := flags.GetStringSlice("report-type")
	dir, _ := flags.GetString("dir")

	if dir != "" {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		dir = absDir
	}

	return &types.CLIArgs{
		ConfigFile:     configFile,
		Profile:        profile,
		Account:        account,
		Regions:        regions,
		AllRegions:     allRegions,
		Tool:           tool,
		Policy:         policy,
		IdentitySource: identitySource,
		Verify:         verify,
		Qualifier:      qualifier,
		DryRun:         dryRun,
		ReportName:     reportName,
		ReportType:     reportType,
		Dir:            dir,
	}, nil
}

// runCommand é o ponto de entrada principal para o comando CLI.
func (app *CLIApp) runCommand(cmd *cobra.Command, args []string) error {
	displayWelcomeBanner()

	cliArgs, err := app.parseArgs()
	if err != nil {
		return err
	}

	// Ctrl+C interrompe o processo externo em andamento.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.bootstrapUseCase.RunBootstrap(ctx, cliArgs)
}

// SetBootstrapUseCase sets the bootstrap use case for the CLI app.
func (app *CLIApp) SetBootstrapUseCase(useCase *usecase.BootstrapUseCase) {
	app.bootstrapUseCase = useCase
}
