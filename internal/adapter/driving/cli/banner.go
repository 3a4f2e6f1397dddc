package cli

import (
	"fmt"

	"github.com/diillson/cdk-bootstrap-go/pkg/version"
	"github.com/fatih/color"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner() {
	rule := "═══════════════════════════════════════"
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue).SprintFunc()

	fmt.Println(cyan(rule))
	fmt.Println(cyan("   CDK Account Bootstrap Tool"))
	fmt.Println(cyan(rule))
	fmt.Println(blue(fmt.Sprintf("cdk-bootstrap v%s", version.FormatVersion())))
	fmt.Println()
}
