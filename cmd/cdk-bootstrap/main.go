package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/diillson/cdk-bootstrap-go/internal/adapter/driven/aws"
	"github.com/diillson/cdk-bootstrap-go/internal/adapter/driven/config"
	"github.com/diillson/cdk-bootstrap-go/internal/adapter/driven/export"
	"github.com/diillson/cdk-bootstrap-go/internal/adapter/driven/shell"
	"github.com/diillson/cdk-bootstrap-go/internal/adapter/driving/cli"
	"github.com/diillson/cdk-bootstrap-go/internal/application/usecase"
	"github.com/diillson/cdk-bootstrap-go/internal/shared/types"
	"github.com/diillson/cdk-bootstrap-go/pkg/console"
)

func main() {
	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp()

	// Inicializa os repositórios
	runner := shell.NewCommandRunner()
	identityRepo := shell.NewIdentityRepository(runner)
	awsRepo := aws.NewAWSRepository()
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()
	consoleImpl := console.NewConsole()

	bootstrapUseCase := usecase.NewBootstrapUseCase(
		runner,
		identityRepo,
		awsRepo,
		exportRepo,
		configRepo,
		consoleImpl,
	)
	app.SetBootstrapUseCase(bootstrapUseCase)

	if err := app.Execute(); err != nil {
		// O resumo já informou as falhas por ambiente.
		if !errors.Is(err, types.ErrBootstrapIncomplete) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
