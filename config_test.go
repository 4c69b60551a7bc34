package alog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValidates(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestDefaultConfigIsIndependentPerCall(t *testing.T) {
	a := DefaultConfig()
	b := DefaultConfig()
	a.Name = "changed"
	assert.Equal(t, "app", b.Name)
}

func TestConfigCloneIsIndependent(t *testing.T) {
	cfg := DefaultConfig()
	clone := cfg.Clone()
	clone.Name = "other"
	assert.NotEqual(t, cfg.Name, clone.Name)
}

func TestConfigValidateRejectsEmptyName(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Name = "  "
	err := cfg.Validate()
	assert.ErrorIs(t, err, ErrConfig)
}

func TestConfigValidateRejectsUnknownLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Level = "verbose"
	assert.ErrorIs(t, cfg.Validate(), ErrConfig)
}

func TestConfigValidateRejectsBadFormat(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Format = "xml"
	assert.ErrorIs(t, cfg.Validate(), ErrConfig)
}

func TestConfigValidateRejectsExtensionWithLeadingDot(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Extension = ".log"
	assert.ErrorIs(t, cfg.Validate(), ErrConfig)
}

func TestConfigValidateRejectsBadConsoleTarget(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ConsoleTarget = "devnull"
	assert.ErrorIs(t, cfg.Validate(), ErrConfig)
}

func TestConfigValidateRejectsNegativeRotationParameters(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxSizeMB = -1
	assert.ErrorIs(t, cfg.Validate(), ErrConfig)

	cfg = DefaultConfig()
	cfg.MaxHistory = -1
	assert.ErrorIs(t, cfg.Validate(), ErrConfig)
}

func TestConfigValidateRequiresQueueSizingWhenAsync(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Async = true
	cfg.QueueCapacity = 0
	assert.ErrorIs(t, cfg.Validate(), ErrConfig)

	cfg = DefaultConfig()
	cfg.Async = true
	cfg.Workers = 0
	assert.ErrorIs(t, cfg.Validate(), ErrConfig)
}

func TestConfigValidateRejectsWorkersAboveUpperBound(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Async = true
	cfg.Workers = 1001
	assert.ErrorIs(t, cfg.Validate(), ErrConfig)

	cfg.Workers = 1000
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidateAllowsZeroQueueSizingWhenSync(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Async = false
	cfg.QueueCapacity = 0
	cfg.Workers = 0
	require.NoError(t, cfg.Validate())
}

func TestConfigValidateRejectsBadOverflowPolicy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Overflow = "retry"
	assert.ErrorIs(t, cfg.Validate(), ErrConfig)
}

func TestConfigValidateRejectsBadSanitizePolicy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SanitizePolicy = "binary"
	assert.ErrorIs(t, cfg.Validate(), ErrConfig)
}

func TestNewConfigFromFileFallsBackToDefaultsWhenMissing(t *testing.T) {
	cfg, err := NewConfigFromFile("/nonexistent/path/alog.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Level, cfg.Level)
}

func TestInternalErrorReporterIsNilWhenDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InternalErrorsToStderr = false
	assert.Nil(t, cfg.internalErrorReporter("file"))
}

func TestInternalErrorReporterReportsWhenEnabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InternalErrorsToStderr = true

	reporter := cfg.internalErrorReporter("file")
	require.NotNil(t, reporter)
	assert.NotPanics(t, func() { reporter(assert.AnError) })
}
