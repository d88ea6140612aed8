package ports

import (
	"io"

	"github.com/EducAI25/intellidash-insights-ai/domain/dataset"
)

// SpreadsheetReader parses an uploaded spreadsheet stream into a dataset
type SpreadsheetReader interface {
	Read(src io.Reader, filename string) (*dataset.Dataset, error)
}
