package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile     string
	Profile        string
	Account        string
	Regions        []string
	AllRegions     bool
	Tool           string
	Policy         string
	IdentitySource string
	Verify         bool
	Qualifier      string
	DryRun         bool
	ReportName     string
	ReportType     []string
	Dir            string
}
