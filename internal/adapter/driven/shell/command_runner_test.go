package shell

import (
	"context"
	"errors"
	"testing"

	"github.com/diillson/cdk-bootstrap-go/internal/domain/entity"
	"github.com/diillson/cdk-bootstrap-go/internal/shared/types"
	"github.com/stretchr/testify/require"
)

func TestExecRunner_Success(t *testing.T) {
	runner := NewCommandRunner()

	result, err := runner.Run(context.Background(), entity.Command{Name: "sh", Args: []string{"-c", "echo '  hello  '; echo warn 1>&2"}})
	require.NoError(t, err)
	require.Equal(t, 0, result.ExitCode)
	require.Equal(t, "hello", result.Stdout)
	require.Equal(t, "warn\n", result.Stderr)
}

func TestExecRunner_NonZeroExit(t *testing.T) {
	runner := NewCommandRunner()

	result, err := runner.Run(context.Background(), entity.Command{Name: "sh", Args: []string{"-c", "echo boom 1>&2; exit 3"}})
	require.Error(t, err)

	var cmdErr *types.CommandError
	require.True(t, errors.As(err, &cmdErr))
	require.Equal(t, 3, cmdErr.ExitCode)
	require.Equal(t, "boom\n", cmdErr.Stderr)
	require.Equal(t, `sh -c echo boom 1>&2; exit 3`, cmdErr.Command)
	require.Equal(t, 3, result.ExitCode)
}

func TestExecRunner_MissingBinary(t *testing.T) {
	runner := NewCommandRunner()

	_, err := runner.Run(context.Background(), entity.Command{Name: "definitely-not-a-real-binary-7f3a"})
	require.Error(t, err)
	require.False(t, types.IsCommandError(err))
}

func TestExecRunner_EmptyCommand(t *testing.T) {
	_, err := NewCommandRunner().Run(context.Background(), entity.Command{})
	require.EqualError(t, err, "empty command")
}

func TestExecRunner_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCommandRunner().Run(ctx, entity.Command{Name: "sleep", Args: []string{"5"}})
	require.ErrorIs(t, err, context.Canceled)
	require.False(t, types.IsCommandError(err))
}

func TestExecRunner_Env(t *testing.T) {
	runner := &ExecRunner{Env: []string{"BOOTSTRAP_TEST_VALUE=42"}}

	result, err := runner.Run(context.Background(), entity.Command{Name: "sh", Args: []string{"-c", "echo $BOOTSTRAP_TEST_VALUE"}})
	require.NoError(t, err)
	require.Equal(t, "42", result.Stdout)
}
