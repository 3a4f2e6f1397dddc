package entity

import "strings"

// Command is an external program invocation.
type Command struct {
	Name string   `json:"name"`
	Args []string `json:"args,omitempty"`
}

// NewCommand splits a tool string such as "npx cdk" into program and leading args.
func NewCommand(tool string, args ...string) Command {
	fields := strings.Fields(tool)
	if len(fields) == 0 {
		return Command{Args: args}
	}
	all := make([]string, 0, len(fields)-1+len(args))
	all = append(all, fields[1:]...)
	all = append(all, args...)
	return Command{Name: fields[0], Args: all}
}

// String joins the program and its arguments with single spaces.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Name)
	parts = append(parts, c.Args...)
	return strings.Join(parts, " ")
}

// CommandResult holds the captured outcome of a finished process.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// BootstrapCommand builds `<tool> bootstrap aws://<account>/<region>`, adding
// `--profile <profile>` only when the environment has one, followed by extraArgs.
func BootstrapCommand(tool string, env Environment, extraArgs []string) Command {
	args := []string{"bootstrap", env.Target()}
	if env.Profile != "" {
		args = append(args, "--profile", env.Profile)
	}
	args = append(args, extraArgs...)
	return NewCommand(tool, args...)
}

// IdentityCommand builds `aws sts get-caller-identity`, with --profile when set.
func IdentityCommand(profile string) Command {
	args := []string{"sts", "get-caller-identity"}
	if profile != "" {
		args = append(args, "--profile", profile)
	}
	return Command{Name: "aws", Args: args}
}
