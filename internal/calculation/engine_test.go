package calculation

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewCalculationEngine(t *testing.T) {
	engine := NewCalculationEngine()

	assert.NotNil(t, engine, "Should create engine")
	assert.NotNil(t, engine.Logger, "Should initialize logger")
	assert.IsType(t, NopLogger{}, engine.Logger, "Default logger is a no-op")
}

func TestCalculationEngine_SetLogger(t *testing.T) {
	engine := NewCalculationEngine()

	customLogger := &testLogger{}
	engine.SetLogger(customLogger)
	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")

	engine.SetLogger(nil)
	assert.IsType(t, NopLogger{}, engine.Logger, "Nil restores the no-op logger")
}

func TestPctToRate(t *testing.T) {
	assert.True(t, pctToRate(decimal.NewFromInt(12)).Equal(decimal.NewFromFloat(0.12)))
	assert.True(t, pctToRate(decimal.Zero).IsZero())
}

// testLogger records messages for assertions.
type testLogger struct {
	messages []string
}

func (l *testLogger) Debugf(format string, args ...any) { l.record("DEBUG", format, args...) }
func (l *testLogger) Infof(format string, args ...any)  { l.record("INFO", format, args...) }
func (l *testLogger) Warnf(format string, args ...any)  { l.record("WARN", format, args...) }
func (l *testLogger) Errorf(format string, args ...any) { l.record("ERROR", format, args...) }

func (l *testLogger) record(level, format string, args ...any) {
	l.messages = append(l.messages, level+": "+fmt.Sprintf(format, args...))
}
