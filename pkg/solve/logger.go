package solve

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a *zap.Logger keyed by environment: a colorized
// development encoder by default, the production JSON encoder when env is
// "production". Only the driver and cmd/* hold a logger; every package
// below pkg/solve stays silent and reports outcomes through return values.
func NewLogger(env string) *zap.Logger {
	var config zap.Config
	if env == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	config.OutputPaths = []string{"stdout"}

	logger, err := config.Build()
	if err != nil {
		panic("solve: failed to build logger: " + err.Error())
	}
	return logger
}

// ForRun returns a child logger tagging every line with runID, so repeated
// invocations against the same input are distinguishable in log output.
func ForRun(logger *zap.Logger, runID string) *zap.Logger {
	return logger.With(zap.String("run_id", runID))
}
