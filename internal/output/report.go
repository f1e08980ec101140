package output

import (
	"encoding/json"
	"fmt"

	"github.com/mfplan/fund-planner/internal/domain"
)

// Report bundles the results to render. Exactly the non-nil sections are
// emitted, so a single command can report one calculator's output or a
// combined view.
type Report struct {
	Title      string                   `json:"title,omitempty"`
	Metrics    *domain.FundMetrics      `json:"metrics,omitempty"`
	SIP        *domain.SIPResult        `json:"sip,omitempty"`
	SWP        *domain.SWPResult        `json:"swp,omitempty"`
	Retirement *domain.RetirementResult `json:"retirement,omitempty"`
	Target     *domain.TargetSIPResult  `json:"target,omitempty"`
}

// Formatter renders a report into a byte payload for one output format.
type Formatter interface {
	Name() string
	Format(report *Report) ([]byte, error)
}

// FormatterFor resolves an output format name.
func FormatterFor(format string) (Formatter, error) {
	switch format {
	case "console", "":
		return ConsoleFormatter{}, nil
	case "json":
		return JSONFormatter{}, nil
	case "csv":
		return CSVFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// GenerateReport renders a report in the requested format.
func GenerateReport(report *Report, format string) ([]byte, error) {
	formatter, err := FormatterFor(format)
	if err != nil {
		return nil, err
	}
	return formatter.Format(report)
}

// JSONFormatter emits the report as indented JSON.
type JSONFormatter struct{}

func (f JSONFormatter) Name() string { return "json" }

func (f JSONFormatter) Format(report *Report) ([]byte, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
