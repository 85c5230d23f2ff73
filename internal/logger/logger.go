package logger

import "go.uber.org/zap"

// L is the process-wide logger, initialized once from main.
var L *zap.Logger = zap.NewNop()

func Init() error {
	log, err := zap.NewProduction()
	if err != nil {
		return err
	}

	L = log
	return nil
}
