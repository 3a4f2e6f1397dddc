package repository

import (
	"github.com/diillson/cdk-bootstrap-go/internal/domain/entity"
)

type ExportRepository interface {
	ExportSummaryToCSV(summary entity.Summary, filename, outputDir string) (string, error)
	ExportSummaryToJSON(summary entity.Summary, filename, outputDir string) (string, error)
	ExportSummaryToPDF(summary entity.Summary, filename, outputDir string) (string, error)
}
