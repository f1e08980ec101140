package calculation

import (
	"testing"
	"time"

	"github.com/mfplan/fund-planner/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func navPoint(date string, nav float64) domain.NAVPoint {
	d, _ := time.Parse("2006-01-02", date)
	return domain.NAVPoint{Date: d, NAV: decimal.NewFromFloat(nav)}
}

func TestAnalyzePerformance_InsufficientData(t *testing.T) {
	engine := NewCalculationEngine()

	assert.Nil(t, engine.AnalyzePerformance(nil), "empty series should yield nil")
	assert.Nil(t, engine.AnalyzePerformance(domain.NAVSeries{navPoint("2023-01-01", 100)}),
		"single point should yield nil")
}

func TestAbsoluteReturn(t *testing.T) {
	got := AbsoluteReturn(navPoint("2023-01-01", 100), navPoint("2024-01-01", 125))
	assert.InDelta(t, 25.0, got.InexactFloat64(), 1e-9)

	got = AbsoluteReturn(navPoint("2023-01-01", 100), navPoint("2024-01-01", 80))
	assert.InDelta(t, -20.0, got.InexactFloat64(), 1e-9)
}

func TestCAGR(t *testing.T) {
	first := navPoint("2020-01-01", 100)
	last := navPoint("2024-01-01", 200) // 4 years, doubling

	cagr := CAGR(first, last)
	require.NotNil(t, cagr)
	// 2^(1/4) - 1 is roughly 18.9% a year.
	assert.InDelta(t, 18.9, cagr.InexactFloat64(), 0.3)
}

func TestCAGR_UndefinedUnderOneYear(t *testing.T) {
	assert.Nil(t, CAGR(navPoint("2023-01-01", 100), navPoint("2023-06-01", 110)))
}

func TestAnnualizedReturn_SubYearOnly(t *testing.T) {
	ann := AnnualizedReturn(navPoint("2023-01-01", 100), navPoint("2023-07-02", 110))
	require.NotNil(t, ann)
	assert.Greater(t, ann.InexactFloat64(), 10.0, "half-year gain annualizes above the raw return")

	assert.Nil(t, AnnualizedReturn(navPoint("2020-01-01", 100), navPoint("2023-01-01", 110)),
		"periods of a year or more use CAGR instead")
}

func TestCAGRAndAbsoluteReturnAgreeOnSign(t *testing.T) {
	tests := []struct {
		name     string
		startNAV float64
		endNAV   float64
	}{
		{"rising", 100, 180},
		{"falling", 100, 60},
		{"flat", 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := navPoint("2020-01-01", tt.startNAV)
			last := navPoint("2023-01-01", tt.endNAV)

			abs := AbsoluteReturn(first, last)
			cagr := CAGR(first, last)
			require.NotNil(t, cagr)

			assert.Equal(t, abs.Sign(), cagr.Sign(), "CAGR and absolute return must agree on sign")
		})
	}
}

func TestVolatility(t *testing.T) {
	assert.Nil(t, Volatility(domain.NAVSeries{navPoint("2023-01-01", 100), navPoint("2023-01-02", 101)}),
		"fewer than 3 points is insufficient")

	flat := domain.NAVSeries{
		navPoint("2023-01-01", 100),
		navPoint("2023-01-02", 100),
		navPoint("2023-01-03", 100),
		navPoint("2023-01-04", 100),
	}
	vol := Volatility(flat)
	require.NotNil(t, vol)
	assert.True(t, vol.IsZero(), "constant series has zero volatility")

	noisy := domain.NAVSeries{
		navPoint("2023-01-01", 100),
		navPoint("2023-01-02", 102),
		navPoint("2023-01-03", 99),
		navPoint("2023-01-04", 103),
	}
	vol = Volatility(noisy)
	require.NotNil(t, vol)
	assert.Greater(t, vol.InexactFloat64(), 0.0)
}

func TestMaxDrawdown(t *testing.T) {
	series := domain.NAVSeries{
		navPoint("2023-01-01", 100),
		navPoint("2023-02-01", 120),
		navPoint("2023-03-01", 90),
		navPoint("2023-04-01", 110),
	}

	dd := MaxDrawdown(series)
	// Peak 120 to trough 90 is a 25% decline.
	assert.InDelta(t, 25.0, dd.InexactFloat64(), 1e-9)

	rising := domain.NAVSeries{
		navPoint("2023-01-01", 100),
		navPoint("2023-02-01", 110),
		navPoint("2023-03-01", 125),
	}
	assert.True(t, MaxDrawdown(rising).IsZero(), "monotonic rise has no drawdown")
}

func TestAnalyzePerformance_MutuallyExclusiveRates(t *testing.T) {
	engine := NewCalculationEngine()

	long := engine.AnalyzePerformance(domain.NAVSeries{
		navPoint("2020-01-01", 100),
		navPoint("2023-01-01", 150),
	})
	require.NotNil(t, long)
	assert.NotNil(t, long.CAGR)
	assert.Nil(t, long.AnnualizedReturn)

	short := engine.AnalyzePerformance(domain.NAVSeries{
		navPoint("2023-01-01", 100),
		navPoint("2023-04-01", 105),
	})
	require.NotNil(t, short)
	assert.Nil(t, short.CAGR)
	assert.NotNil(t, short.AnnualizedReturn)
}

func TestCompareRollingCAGR(t *testing.T) {
	engine := NewCalculationEngine()

	mkSeries := func(startNAV, endNAV float64) domain.NAVSeries {
		series := domain.NAVSeries{}
		start, _ := time.Parse("2006-01-02", "2018-01-01")
		years := 6
		for i := 0; i <= years*12; i++ {
			frac := float64(i) / float64(years*12)
			nav := startNAV + (endNAV-startNAV)*frac
			series = append(series, domain.NAVPoint{
				Date: start.AddDate(0, i, 0),
				NAV:  decimal.NewFromFloat(nav),
			})
		}
		return series
	}

	out := engine.CompareRollingCAGR(mkSeries(100, 200), mkSeries(100, 150))
	require.Contains(t, out, "1y")
	require.Contains(t, out, "3y")
	require.Contains(t, out, "5y")

	pair := out["5y"]
	require.NotNil(t, pair[0])
	require.NotNil(t, pair[1])
	assert.Greater(t, pair[0].InexactFloat64(), pair[1].InexactFloat64(),
		"faster-growing fund should show the higher 5y CAGR")
}
