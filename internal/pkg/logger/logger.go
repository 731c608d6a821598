package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the application logger. Entries from the "library" logger are also kept
// in the activity log so the admin API can show recent actions.
func New(isDev bool, activity *ActivityLog) (*zap.Logger, error) {
	var (
		base *zap.Logger
		err  error
	)
	if isDev {
		base, err = zap.NewDevelopment()
	} else {
		base, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}

	if activity == nil {
		return base, nil
	}

	return base.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, activity.Core())
	})), nil
}
