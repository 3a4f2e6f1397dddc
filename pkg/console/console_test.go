package console

import (
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/require"
)

func TestTableRender(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	table := NewConsole().CreateTable()
	table.AddColumn("Environment")
	table.AddColumn("Status")
	table.AddRow("123456789012/us-east-1", "SUCCESS")
	table.AddRow("123456789012/us-west-2", 1)

	out := table.Render()
	require.Contains(t, out, "Environment")
	require.Contains(t, out, "123456789012/us-east-1")
	require.Contains(t, out, "SUCCESS")
	require.Contains(t, out, "1")
}
