package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/mfplan/fund-planner/internal/domain"
)

// CSVFormatter emits the year-by-year breakdown tables (one row per
// simulated year), preceded by a summary section. Sections are separated
// by a blank record so a single file can carry multiple results.
type CSVFormatter struct{}

func (f CSVFormatter) Name() string { return "csv" }

func (f CSVFormatter) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	if report.Metrics != nil {
		if err := f.writeMetrics(w, report.Metrics); err != nil {
			return nil, err
		}
	}
	if report.SIP != nil {
		if err := f.writeSIP(w, report.SIP); err != nil {
			return nil, err
		}
	}
	if report.SWP != nil {
		if err := f.writeSWP(w, report.SWP); err != nil {
			return nil, err
		}
	}
	if report.Retirement != nil {
		if err := f.writeRetirement(w, report.Retirement); err != nil {
			return nil, err
		}
	}
	if report.Target != nil {
		if err := f.writeTarget(w, report.Target); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (f CSVFormatter) writeMetrics(w *csv.Writer, m *domain.FundMetrics) error {
	if err := w.Write([]string{"StartDate", "EndDate", "StartNAV", "EndNAV", "Years", "AbsoluteReturn", "CAGR", "AnnualizedReturn", "Volatility", "MaxDrawdown"}); err != nil {
		return err
	}
	cagr, annualized, vol := "", "", ""
	if m.CAGR != nil {
		cagr = m.CAGR.StringFixed(4)
	}
	if m.AnnualizedReturn != nil {
		annualized = m.AnnualizedReturn.StringFixed(4)
	}
	if m.Volatility != nil {
		vol = m.Volatility.StringFixed(4)
	}
	return w.Write([]string{
		m.StartDate.Format("2006-01-02"),
		m.EndDate.Format("2006-01-02"),
		m.StartNAV.StringFixed(4),
		m.EndNAV.StringFixed(4),
		m.Years.StringFixed(2),
		m.AbsoluteReturn.StringFixed(4),
		cagr, annualized, vol,
		m.MaxDrawdown.StringFixed(4),
	})
}

func (f CSVFormatter) writeSIP(w *csv.Writer, r *domain.SIPResult) error {
	if err := w.Write([]string{"Date", "InvestedValue", "MarketValue"}); err != nil {
		return err
	}
	for _, p := range r.Timeline {
		row := []string{
			p.Date.Format("2006-01-02"),
			p.InvestedValue.StringFixed(2),
			p.MarketValue.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (f CSVFormatter) writeSWP(w *csv.Writer, r *domain.SWPResult) error {
	if err := w.Write([]string{"Year", "StartingCorpus", "Interest", "Withdrawal", "EndingCorpus"}); err != nil {
		return err
	}
	for _, row := range r.Breakdown {
		record := []string{
			strconv.Itoa(row.Year),
			row.StartingCorpus.StringFixed(2),
			row.Interest.StringFixed(2),
			row.Withdrawal.StringFixed(2),
			row.EndingCorpus.StringFixed(2),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func (f CSVFormatter) writeRetirement(w *csv.Writer, r *domain.RetirementResult) error {
	if err := w.Write([]string{"Year", "Age", "StartingCorpus", "Investment", "Growth", "LTCGTax", "Withdrawals", "EndingCorpus"}); err != nil {
		return err
	}
	for _, row := range r.Breakdown {
		record := []string{
			strconv.Itoa(row.Year),
			strconv.Itoa(row.Age),
			row.StartingCorpus.StringFixed(2),
			row.Investment.StringFixed(2),
			row.Growth.StringFixed(2),
			row.LTCGTax.StringFixed(2),
			row.Withdrawals.StringFixed(2),
			row.EndingCorpus.StringFixed(2),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func (f CSVFormatter) writeTarget(w *csv.Writer, r *domain.TargetSIPResult) error {
	if err := w.Write([]string{"TargetAmount", "LumpsumFV", "AdjustedTarget", "RequiredMonthly", "MonthsNeeded", "Found"}); err != nil {
		return err
	}
	return w.Write([]string{
		r.TargetAmount.StringFixed(2),
		r.LumpsumFV.StringFixed(2),
		r.AdjustedTarget.StringFixed(2),
		r.RequiredMonthly.StringFixed(2),
		strconv.Itoa(r.MonthsNeeded),
		strconv.FormatBool(r.Found),
	})
}
