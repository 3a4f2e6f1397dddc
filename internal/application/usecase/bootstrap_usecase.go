package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/diillson/cdk-bootstrap-go/internal/domain/entity"
	"github.com/diillson/cdk-bootstrap-go/internal/domain/repository"
	"github.com/diillson/cdk-bootstrap-go/internal/shared/types"
)

const sectionRule = "═══════════════════════════════════════"

// DefaultRegions are bootstrapped for the current account when nothing else is configured.
var DefaultRegions = []string{"us-east-1", "us-west-2"}

// DefaultTool is the provisioning CLI invoked for each environment.
const DefaultTool = "cdk"

// BootstrapUseCase orchestrates identity resolution and sequential bootstrapping.
type BootstrapUseCase struct {
	runner       repository.CommandRunner
	identityRepo repository.IdentityRepository
	awsRepo      repository.AWSRepository
	exportRepo   repository.ExportRepository
	configRepo   repository.ConfigRepository
	console      types.ConsoleInterface
	now          func() time.Time
}

// NewBootstrapUseCase creates a new bootstrap use case.
func NewBootstrapUseCase(
	runner repository.CommandRunner,
	identityRepo repository.IdentityRepository,
	awsRepo repository.AWSRepository,
	exportRepo repository.ExportRepository,
	configRepo repository.ConfigRepository,
	console types.ConsoleInterface,
) *BootstrapUseCase {
	return &BootstrapUseCase{
		runner:       runner,
		identityRepo: identityRepo,
		awsRepo:      awsRepo,
		exportRepo:   exportRepo,
		configRepo:   configRepo,
		console:      console,
		now:          time.Now,
	}
}

// RunSettings is the merged result of the config file and the CLI flags.
type RunSettings struct {
	Profile        string
	Account        string
	Regions        []string
	AllRegions     bool
	Environments   []types.EnvironmentConfig
	Tool           string
	BootstrapArgs  []string
	Policy         types.FailurePolicy
	IdentitySource types.IdentitySource
	Verify         bool
	Qualifier      string
	DryRun         bool
	ReportName     string
	ReportType     []string
	Dir            string
}

// LoadSettings carrega o arquivo de configuração (se houver) e aplica as flags por cima.
func (uc *BootstrapUseCase) LoadSettings(args *types.CLIArgs) (*RunSettings, error) {
	var cfg types.Config
	if args.ConfigFile != "" {
		loaded, err := uc.configRepo.LoadConfigFile(args.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
	}

	settings := &RunSettings{
		Profile:       firstNonEmpty(args.Profile, cfg.Profile),
		Account:       firstNonEmpty(args.Account, cfg.Account),
		Regions:       firstNonEmptySlice(args.Regions, cfg.Regions),
		AllRegions:    args.AllRegions,
		Environments:  cfg.Environments,
		Tool:          firstNonEmpty(args.Tool, cfg.Tool, DefaultTool),
		BootstrapArgs: cfg.BootstrapArgs,
		Verify:        args.Verify || cfg.Verify,
		Qualifier:     firstNonEmpty(args.Qualifier, cfg.Qualifier, types.DefaultQualifier),
		DryRun:        args.DryRun,
		ReportName:    firstNonEmpty(args.ReportName, cfg.ReportName),
		ReportType:    firstNonEmptySlice(args.ReportType, cfg.ReportType, []string{"csv"}),
		Dir:           firstNonEmpty(args.Dir, cfg.Dir),
	}

	policy, err := types.ParseFailurePolicy(firstNonEmpty(args.Policy, cfg.Policy))
	if err != nil {
		return nil, err
	}
	settings.Policy = policy

	source, err := types.ParseIdentitySource(firstNonEmpty(args.IdentitySource, cfg.IdentitySource))
	if err != nil {
		return nil, err
	}
	settings.IdentitySource = source

	// Flags de região substituem a lista de ambientes do arquivo.
	if len(args.Regions) > 0 || args.AllRegions {
		settings.Environments = nil
	}

	return settings, nil
}

// ResolveIdentity returns the caller identity from the configured source.
func (uc *BootstrapUseCase) ResolveIdentity(ctx context.Context, settings *RunSettings) (entity.Identity, error) {
	repo := uc.identityRepo
	if settings.IdentitySource == types.IdentitySourceSDK {
		repo = uc.awsRepo
	}

	status := uc.console.Status("Resolving caller identity...")
	identity, err := repo.GetCallerIdentity(ctx, settings.Profile)
	status.Stop()
	if err != nil {
		return entity.Identity{}, fmt.Errorf("resolving caller identity: %w", err)
	}
	return identity, nil
}

// ResolveEnvironments builds the ordered list of bootstrap targets.
func (uc *BootstrapUseCase) ResolveEnvironments(ctx context.Context, identity entity.Identity, settings *RunSettings) ([]entity.Environment, error) {
	account := firstNonEmpty(settings.Account, identity.Account)

	var environments []entity.Environment
	if len(settings.Environments) > 0 {
		for _, e := range settings.Environments {
			environments = append(environments, entity.Environment{
				Account: firstNonEmpty(e.Account, account),
				Region:  e.Region,
				Profile: firstNonEmpty(e.Profile, settings.Profile),
			})
		}
		return environments, nil
	}

	regions := settings.Regions
	if len(regions) == 0 && settings.AllRegions {
		discovered, err := uc.awsRepo.GetAccessibleRegions(ctx, settings.Profile)
		if err != nil {
			return nil, err
		}
		regions = discovered
	}
	if len(regions) == 0 && !settings.AllRegions {
		regions = DefaultRegions
	}

	for _, region := range regions {
		environments = append(environments, entity.Environment{
			Account: account,
			Region:  region,
			Profile: settings.Profile,
		})
	}

	if len(environments) == 0 {
		return nil, types.ErrNoEnvironments
	}
	return environments, nil
}

// BootstrapEnvironment runs the bootstrap command for one environment.
//
// The returned error is non-nil only when the failure must abort the run:
// a non-zero exit under the fail-fast policy. Every other failure is
// reported through the result.
func (uc *BootstrapUseCase) BootstrapEnvironment(
	ctx context.Context,
	settings *RunSettings,
	env entity.Environment,
) (entity.BootstrapResult, error) {
	uc.console.Printf("\n🚀 Bootstrapping account %s in region %s...\n", env.Account, env.Region)

	cmd := entity.BootstrapCommand(settings.Tool, env, settings.BootstrapArgs)
	result := entity.BootstrapResult{
		Environment: env,
		Command:     cmd.String(),
	}

	started := uc.now()
	status := uc.console.Status(fmt.Sprintf("Running %s", result.Command))
	out, err := uc.runner.Run(ctx, cmd)
	status.Stop()
	result.Duration = uc.now().Sub(started)
	result.Output = out.Stdout

	if err == nil {
		result.Success = true
		uc.console.Printf("✅ Successfully bootstrapped %s/%s\n", env.Account, env.Region)
		return result, nil
	}

	result.Error = err.Error()
	uc.console.Printf("❌ Failed to bootstrap %s/%s\n", env.Account, env.Region)

	var cmdErr *types.CommandError
	if errors.As(err, &cmdErr) && settings.Policy == types.PolicyFailFast {
		return result, fmt.Errorf("bootstrapping %s: %w", env.Target(), err)
	}

	uc.console.LogError("%s", strings.TrimSpace(result.Error))
	return result, nil
}

// VerifyEnvironment confirma que o bucket de staging do CDK existe após o bootstrap.
func (uc *BootstrapUseCase) VerifyEnvironment(ctx context.Context, settings *RunSettings, result *entity.BootstrapResult) {
	exists, err := uc.awsRepo.BootstrapBucketExists(ctx, result.Environment, settings.Qualifier)
	verified := err == nil && exists
	result.Verified = &verified

	switch {
	case err != nil:
		result.Success = false
		result.Error = err.Error()
		uc.console.LogWarning("Could not verify %s: %s", result.Environment.Target(), err)
	case !exists:
		result.Success = false
		result.Error = types.ErrBootstrapBucketMissing.Error()
		uc.console.LogWarning("Bootstrap bucket missing for %s", result.Environment.Target())
	default:
		uc.console.LogSuccess("Verified bootstrap bucket for %s", result.Environment.Target())
	}
}

// RunBootstrap executa o fluxo completo: identidade, ambientes, bootstrap e resumo.
func (uc *BootstrapUseCase) RunBootstrap(ctx context.Context, args *types.CLIArgs) error {
	settings, err := uc.LoadSettings(args)
	if err != nil {
		return err
	}

	identity, err := uc.ResolveIdentity(ctx, settings)
	if err != nil {
		return err
	}
	uc.console.Printf("Current AWS Account: %s\n", identity.Account)
	uc.console.Printf("Current User/Role: %s\n\n", identity.Arn)

	environments, err := uc.ResolveEnvironments(ctx, identity, settings)
	if err != nil {
		return err
	}

	uc.console.Println("Environments to bootstrap:")
	for idx, env := range environments {
		uc.console.Printf("  %d. %s\n", idx+1, env)
	}

	if settings.DryRun {
		uc.console.Println("\nCommands that would run:")
		for _, env := range environments {
			uc.console.Printf("  %s\n", entity.BootstrapCommand(settings.Tool, env, settings.BootstrapArgs))
		}
		uc.console.LogInfo("Dry run: no commands were executed")
		return nil
	}

	uc.console.Println("\nStarting bootstrap process...")

	summary := entity.Summary{Identity: identity, StartedAt: uc.now()}
	for _, env := range environments {
		result, err := uc.BootstrapEnvironment(ctx, settings, env)
		if err != nil {
			return err
		}
		if settings.Verify && result.Success {
			uc.VerifyEnvironment(ctx, settings, &result)
		}
		summary.Results = append(summary.Results, result)
	}
	summary.FinishedAt = uc.now()

	uc.displaySummary(summary)
	uc.exportSummary(summary, settings)

	if !summary.AllSucceeded() {
		return types.ErrBootstrapIncomplete
	}
	return nil
}

func (uc *BootstrapUseCase) displaySummary(summary entity.Summary) {
	uc.console.Println("\n" + sectionRule)
	uc.console.Println("   Bootstrap Summary")
	uc.console.Println(sectionRule)

	table := uc.console.CreateTable()
	table.AddColumn("Environment")
	table.AddColumn("Status")
	table.AddColumn("Duration")
	for _, res := range summary.Results {
		status := pterm.FgGreen.Sprint("SUCCESS")
		if !res.Success {
			status = pterm.FgRed.Sprint("FAILED")
		}
		table.AddRow(res.Environment.String(), status, res.Duration.Round(time.Millisecond))
	}
	uc.console.Println(table.Render())

	uc.console.Printf("Successful: %d/%d\n", summary.Successful(), summary.Total())

	if summary.AllSucceeded() {
		uc.console.Println("\n✅ All accounts bootstrapped successfully!")
	} else {
		uc.console.Println("\n⚠️  Some accounts failed to bootstrap")
	}
}

func (uc *BootstrapUseCase) exportSummary(summary entity.Summary, settings *RunSettings) {
	if settings.ReportName == "" {
		return
	}

	for _, reportType := range settings.ReportType {
		var (
			path string
			err  error
		)
		switch strings.ToLower(reportType) {
		case "csv":
			path, err = uc.exportRepo.ExportSummaryToCSV(summary, settings.ReportName, settings.Dir)
		case "json":
			path, err = uc.exportRepo.ExportSummaryToJSON(summary, settings.ReportName, settings.Dir)
		case "pdf":
			path, err = uc.exportRepo.ExportSummaryToPDF(summary, settings.ReportName, settings.Dir)
		default:
			uc.console.LogWarning("Unsupported report type: %s", reportType)
			continue
		}

		if err != nil {
			uc.console.LogError("Failed to export report to %s: %s", strings.ToUpper(reportType), err)
		} else {
			uc.console.LogSuccess("Successfully exported report to %s: %s", strings.ToUpper(reportType), path)
		}
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonEmptySlice(values ...[]string) []string {
	for _, v := range values {
		if len(v) > 0 {
			return v
		}
	}
	return nil
}
