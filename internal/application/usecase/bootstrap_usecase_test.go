package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/diillson/cdk-bootstrap-go/internal/adapter/driven/shell"
	"github.com/diillson/cdk-bootstrap-go/internal/domain/entity"
	"github.com/diillson/cdk-bootstrap-go/internal/shared/types"
	"github.com/stretchr/testify/require"
)

const (
	testAccount     = "123456789012"
	testArn         = "arn:aws:iam::123456789012:role/deployer"
	identityCommand = "aws sts get-caller-identity"
	identityJSON    = `{"UserId": "AROAEXAMPLE:ops", "Account": "123456789012", "Arn": "arn:aws:iam::123456789012:role/deployer"}`
)

type fakeResponse struct {
	result entity.CommandResult
	err    error
}

type fakeRunner struct {
	calls     []string
	responses map[string]fakeResponse
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		responses: map[string]fakeResponse{
			identityCommand: {result: entity.CommandResult{Stdout: identityJSON}},
		},
	}
}

func (f *fakeRunner) Run(_ context.Context, cmd entity.Command) (entity.CommandResult, error) {
	key := cmd.String()
	f.calls = append(f.calls, key)
	resp := f.responses[key]
	return resp.result, resp.err
}

func (f *fakeRunner) fail(command string, code int, stderr string) {
	f.responses[command] = fakeResponse{
		result: entity.CommandResult{ExitCode: code, Stderr: stderr},
		err:    &types.CommandError{Command: command, ExitCode: code, Stderr: stderr},
	}
}

type fakeAWSRepo struct {
	identity     entity.Identity
	identityErr  error
	regions      []string
	buckets      map[string]bool
	identityHits int
}

func (f *fakeAWSRepo) GetCallerIdentity(context.Context, string) (entity.Identity, error) {
	f.identityHits++
	return f.identity, f.identityErr
}

func (f *fakeAWSRepo) GetAccessibleRegions(context.Context, string) ([]string, error) {
	return f.regions, nil
}

func (f *fakeAWSRepo) BootstrapBucketExists(_ context.Context, env entity.Environment, _ string) (bool, error) {
	return f.buckets[env.Region], nil
}

type fakeExportRepo struct {
	exported []string
}

func (f *fakeExportRepo) ExportSummaryToCSV(_ entity.Summary, name, _ string) (string, error) {
	f.exported = append(f.exported, "csv")
	return name + ".csv", nil
}

func (f *fakeExportRepo) ExportSummaryToJSON(_ entity.Summary, name, _ string) (string, error) {
	f.exported = append(f.exported, "json")
	return name + ".json", nil
}

func (f *fakeExportRepo) ExportSummaryToPDF(_ entity.Summary, _, _ string) (string, error) {
	f.exported = append(f.exported, "pdf")
	return "", errors.New("disk full")
}

type fakeConfigRepo struct {
	cfg *types.Config
	err error
}

func (f *fakeConfigRepo) LoadConfigFile(string) (*types.Config, error) {
	return f.cfg, f.err
}

type recordingConsole struct {
	out bytes.Buffer
}

func (c *recordingConsole) Print(a ...interface{})                 { fmt.Fprint(&c.out, a...) }
func (c *recordingConsole) Printf(format string, a ...interface{}) { fmt.Fprintf(&c.out, format, a...) }
func (c *recordingConsole) Println(a ...interface{})               { fmt.Fprintln(&c.out, a...) }
func (c *recordingConsole) LogInfo(format string, a ...interface{}) {
	fmt.Fprintf(&c.out, "INFO: "+format+"\n", a...)
}
func (c *recordingConsole) LogWarning(format string, a ...interface{}) {
	fmt.Fprintf(&c.out, "WARNING: "+format+"\n", a...)
}
func (c *recordingConsole) LogError(format string, a ...interface{}) {
	fmt.Fprintf(&c.out, "ERROR: "+format+"\n", a...)
}
func (c *recordingConsole) LogSuccess(format string, a ...interface{}) {
	fmt.Fprintf(&c.out, "SUCCESS: "+format+"\n", a...)
}
func (c *recordingConsole) Status(string) types.StatusHandle { return noopStatus{} }
func (c *recordingConsole) CreateTable() types.TableInterface {
	return &plainTable{}
}

type noopStatus struct{}

func (noopStatus) Update(string) {}
func (noopStatus) Stop()         {}

type plainTable struct {
	rows []string
}

func (t *plainTable) AddColumn(string, ...interface{}) {}
func (t *plainTable) AddRow(cells ...interface{})      { t.rows = append(t.rows, fmt.Sprint(cells...)) }
func (t *plainTable) Render() string                   { return strings.Join(t.rows, "\n") }

type fixture struct {
	runner  *fakeRunner
	aws     *fakeAWSRepo
	export  *fakeExportRepo
	config  *fakeConfigRepo
	console *recordingConsole
	uc      *BootstrapUseCase
}

func newFixture() *fixture {
	f := &fixture{
		runner: newFakeRunner(),
		aws: &fakeAWSRepo{
			identity: entity.Identity{Account: "210987654321", Arn: "arn:aws:sts::210987654321:assumed-role/sdk"},
			buckets:  map[string]bool{},
		},
		export:  &fakeExportRepo{},
		config:  &fakeConfigRepo{cfg: &types.Config{}},
		console: &recordingConsole{},
	}
	f.uc = NewBootstrapUseCase(f.runner, shell.NewIdentityRepository(f.runner), f.aws, f.export, f.config, f.console)
	f.uc.now = func() time.Time { return time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC) }
	return f
}

func bootstrapCmd(region string) string {
	return "cdk bootstrap aws://" + testAccount + "/" + region
}

func TestRunBootstrap_AllSucceed(t *testing.T) {
	f := newFixture()

	err := f.uc.RunBootstrap(context.Background(), &types.CLIArgs{})
	require.NoError(t, err)

	require.Equal(t, []string{identityCommand, bootstrapCmd("us-east-1"), bootstrapCmd("us-west-2")}, f.runner.calls)

	out := f.console.out.String()
	require.Contains(t, out, "Current AWS Account: "+testAccount)
	require.Contains(t, out, "Current User/Role: "+testArn)
	require.Contains(t, out, "  1. "+testAccount+"/us-east-1")
	require.Contains(t, out, "  2. "+testAccount+"/us-west-2")
	require.Contains(t, out, "🚀 Bootstrapping account "+testAccount+" in region us-east-1...")
	require.Contains(t, out, "✅ Successfully bootstrapped "+testAccount+"/us-west-2")
	require.Contains(t, out, "Successful: 2/2")
	require.Contains(t, out, "All accounts bootstrapped successfully!")
	require.Empty(t, f.export.exported)
}

func TestRunBootstrap_IdentityCommandFails(t *testing.T) {
	f := newFixture()
	f.runner.fail(identityCommand, 255, "Unable to locate credentials")

	err := f.uc.RunBootstrap(context.Background(), &types.CLIArgs{})
	require.Error(t, err)
	require.True(t, types.IsCommandError(err))
	require.ErrorContains(t, err, "Unable to locate credentials")

	require.Equal(t, []string{identityCommand}, f.runner.calls)
}

func TestRunBootstrap_IdentityPayloadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "not json", payload: "oops"},
		{name: "missing account", payload: `{"Arn": "arn"}`},
		{name: "missing arn", payload: `{"Account": "1"}`},
		{name: "empty account", payload: `{"Account": "", "Arn": "arn"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.runner.responses[identityCommand] = fakeResponse{result: entity.CommandResult{Stdout: tt.payload}}

			err := f.uc.RunBootstrap(context.Background(), &types.CLIArgs{})
			require.ErrorIs(t, err, types.ErrInvalidIdentity)
			require.Equal(t, []string{identityCommand}, f.runner.calls)
		})
	}
}

func TestRunBootstrap_FailFastStopsOnCommandError(t *testing.T) {
	f := newFixture()
	f.runner.fail(bootstrapCmd("us-east-1"), 1, "AccessDenied")

	err := f.uc.RunBootstrap(context.Background(), &types.CLIArgs{})
	require.True(t, types.IsCommandError(err))
	require.NotErrorIs(t, err, types.ErrBootstrapIncomplete)

	require.Equal(t, []string{identityCommand, bootstrapCmd("us-east-1")}, f.runner.calls)

	out := f.console.out.String()
	require.Contains(t, out, "❌ Failed to bootstrap "+testAccount+"/us-east-1")
	require.NotContains(t, out, "Bootstrap Summary")
}

func TestRunBootstrap_ContinueRecordsFailure(t *testing.T) {
	f := newFixture()
	f.runner.fail(bootstrapCmd("us-east-1"), 1, "AccessDenied")

	err := f.uc.RunBootstrap(context.Background(), &types.CLIArgs{Policy: "continue"})
	require.ErrorIs(t, err, types.ErrBootstrapIncomplete)

	require.Equal(t, []string{identityCommand, bootstrapCmd("us-east-1"), bootstrapCmd("us-west-2")}, f.runner.calls)

	out := f.console.out.String()
	require.Contains(t, out, "Successful: 1/2")
	require.Contains(t, out, "Some accounts failed to bootstrap")
	require.Contains(t, out, "AccessDenied")
}

func TestRunBootstrap_NonExitFailureNeverAborts(t *testing.T) {
	f := newFixture()
	f.runner.responses[bootstrapCmd("us-west-2")] = fakeResponse{err: exec.ErrNotFound}

	err := f.uc.RunBootstrap(context.Background(), &types.CLIArgs{})
	require.ErrorIs(t, err, types.ErrBootstrapIncomplete)
	require.Contains(t, f.console.out.String(), "Successful: 1/2")
}

func TestRunBootstrap_ProfileFlag(t *testing.T) {
	f := newFixture()
	f.runner.responses[identityCommand+" --profile ops"] = fakeResponse{result: entity.CommandResult{Stdout: identityJSON}}

	err := f.uc.RunBootstrap(context.Background(), &types.CLIArgs{Profile: "ops", Regions: []string{"eu-west-1"}})
	require.NoError(t, err)
	require.Equal(t, []string{
		identityCommand + " --profile ops",
		bootstrapCmd("eu-west-1") + " --profile ops",
	}, f.runner.calls)
	require.Contains(t, f.console.out.String(), "  1. "+testAccount+"/eu-west-1 (profile: ops)")
}

func TestRunBootstrap_DryRun(t *testing.T) {
	f := newFixture()

	err := f.uc.RunBootstrap(context.Background(), &types.CLIArgs{DryRun: true, Tool: "npx cdk"})
	require.NoError(t, err)
	require.Equal(t, []string{identityCommand}, f.runner.calls)

	out := f.console.out.String()
	require.Contains(t, out, "npx cdk bootstrap aws://"+testAccount+"/us-east-1")
	require.Contains(t, out, "Dry run: no commands were executed")
}

func TestRunBootstrap_SDKIdentity(t *testing.T) {
	f := newFixture()

	err := f.uc.RunBootstrap(context.Background(), &types.CLIArgs{IdentitySource: "sdk", Regions: []string{"us-east-1"}})
	require.NoError(t, err)
	require.Equal(t, 1, f.aws.identityHits)
	require.Equal(t, []string{"cdk bootstrap aws://210987654321/us-east-1"}, f.runner.calls)
}

func TestRunBootstrap_VerifyMarksMissingBucket(t *testing.T) {
	f := newFixture()
	f.aws.buckets["us-east-1"] = true

	err := f.uc.RunBootstrap(context.Background(), &types.CLIArgs{Verify: true})
	require.ErrorIs(t, err, types.ErrBootstrapIncomplete)

	out := f.console.out.String()
	require.Contains(t, out, "Verified bootstrap bucket for aws://"+testAccount+"/us-east-1")
	require.Contains(t, out, "Bootstrap bucket missing for aws://"+testAccount+"/us-west-2")
	require.Contains(t, out, "Successful: 1/2")
}

func TestRunBootstrap_ExportsReports(t *testing.T) {
	f := newFixture()

	err := f.uc.RunBootstrap(context.Background(), &types.CLIArgs{
		ReportName: "bootstrap",
		ReportType: []string{"csv", "json", "pdf", "xml"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"csv", "json", "pdf"}, f.export.exported)

	out := f.console.out.String()
	require.Contains(t, out, "SUCCESS: Successfully exported report to CSV: bootstrap.csv")
	require.Contains(t, out, "ERROR: Failed to export report to PDF: disk full")
	require.Contains(t, out, "WARNING: Unsupported report type: xml")
}

func TestRunBootstrap_ConfigError(t *testing.T) {
	f := newFixture()
	f.config.err = errors.New("error accessing config file")

	err := f.uc.RunBootstrap(context.Background(), &types.CLIArgs{ConfigFile: "missing.yaml"})
	require.ErrorContains(t, err, "error accessing config file")
	require.Empty(t, f.runner.calls)
}

func TestLoadSettings(t *testing.T) {
	f := newFixture()
	f.config.cfg = &types.Config{
		Profile:       "file-profile",
		Tool:          "npx cdk",
		Policy:        "continue",
		Qualifier:     "custom",
		BootstrapArgs: []string{"--trust", "999999999999"},
		Environments:  []types.EnvironmentConfig{{Region: "ap-south-1"}},
		ReportType:    []string{"json"},
	}

	settings, err := f.uc.LoadSettings(&types.CLIArgs{ConfigFile: "bootstrap.yaml", Profile: "flag-profile"})
	require.NoError(t, err)
	require.Equal(t, "flag-profile", settings.Profile)
	require.Equal(t, "npx cdk", settings.Tool)
	require.Equal(t, types.PolicyContinue, settings.Policy)
	require.Equal(t, types.IdentitySourceCLI, settings.IdentitySource)
	require.Equal(t, "custom", settings.Qualifier)
	require.Equal(t, []string{"--trust", "999999999999"}, settings.BootstrapArgs)
	require.Equal(t, []string{"json"}, settings.ReportType)
	require.Len(t, settings.Environments, 1)

	settings, err = f.uc.LoadSettings(&types.CLIArgs{ConfigFile: "bootstrap.yaml", Regions: []string{"us-east-2"}})
	require.NoError(t, err)
	require.Empty(t, settings.Environments)
	require.Equal(t, []string{"us-east-2"}, settings.Regions)

	settings, err = f.uc.LoadSettings(&types.CLIArgs{})
	require.NoError(t, err)
	require.Equal(t, DefaultTool, settings.Tool)
	require.Equal(t, types.PolicyFailFast, settings.Policy)
	require.Equal(t, types.DefaultQualifier, settings.Qualifier)
	require.Equal(t, []string{"csv"}, settings.ReportType)

	_, err = f.uc.LoadSettings(&types.CLIArgs{Policy: "maybe"})
	require.ErrorIs(t, err, types.ErrUnknownPolicy)

	_, err = f.uc.LoadSettings(&types.CLIArgs{IdentitySource: "imds"})
	require.ErrorIs(t, err, types.ErrUnknownIdentitySource)
}

func TestResolveEnvironments(t *testing.T) {
	identity := entity.Identity{Account: testAccount, Arn: testArn}

	tests := []struct {
		name     string
		settings RunSettings
		regions  []string
		expected []entity.Environment
		err      error
	}{
		{
			name:     "default regions",
			settings: RunSettings{},
			expected: []entity.Environment{
				{Account: testAccount, Region: "us-east-1"},
				{Account: testAccount, Region: "us-west-2"},
			},
		},
		{
			name:     "explicit regions with account override",
			settings: RunSettings{Account: "555555555555", Regions: []string{"eu-central-1"}, Profile: "p"},
			expected: []entity.Environment{
				{Account: "555555555555", Region: "eu-central-1", Profile: "p"},
			},
		},
		{
			name: "config environments inherit account and profile",
			settings: RunSettings{
				Profile: "global",
				Environments: []types.EnvironmentConfig{
					{Region: "us-east-1"},
					{Account: "111111111111", Region: "eu-west-1", Profile: "prod"},
				},
			},
			expected: []entity.Environment{
				{Account: testAccount, Region: "us-east-1", Profile: "global"},
				{Account: "111111111111", Region: "eu-west-1", Profile: "prod"},
			},
		},
		{
			name:     "all regions",
			settings: RunSettings{AllRegions: true},
			regions:  []string{"ap-northeast-1", "sa-east-1"},
			expected: []entity.Environment{
				{Account: testAccount, Region: "ap-northeast-1"},
				{Account: testAccount, Region: "sa-east-1"},
			},
		},
		{
			name:     "all regions but none enabled",
			settings: RunSettings{AllRegions: true},
			err:      types.ErrNoEnvironments,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.aws.regions = tt.regions

			envs, err := f.uc.ResolveEnvironments(context.Background(), identity, &tt.settings)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expected, envs)
		})
	}
}
