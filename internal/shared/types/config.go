package types

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	Profile        string              `json:"profile" yaml:"profile" toml:"profile"`
	Account        string              `json:"account" yaml:"account" toml:"account"`
	Regions        []string            `json:"regions" yaml:"regions" toml:"regions"`
	Tool           string              `json:"tool" yaml:"tool" toml:"tool"`
	Policy         string              `json:"policy" yaml:"policy" toml:"policy"`
	IdentitySource string              `json:"identity_source" yaml:"identity_source" toml:"identity_source"`
	Verify         bool                `json:"verify" yaml:"verify" toml:"verify"`
	Qualifier      string              `json:"qualifier" yaml:"qualifier" toml:"qualifier"`
	BootstrapArgs  []string            `json:"bootstrap_args" yaml:"bootstrap_args" toml:"bootstrap_args"`
	Environments   []EnvironmentConfig `json:"environments" yaml:"environments" toml:"environments"`
	ReportName     string              `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType     []string            `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir            string              `json:"dir" yaml:"dir" toml:"dir"`
}

// EnvironmentConfig é uma entrada de ambiente no arquivo de configuração.
// Account e Profile vazios herdam a conta atual e o perfil global.
type EnvironmentConfig struct {
	Account string `json:"account" yaml:"account" toml:"account"`
	Region  string `json:"region" yaml:"region" toml:"region"`
	Profile string `json:"profile" yaml:"profile" toml:"profile"`
}
