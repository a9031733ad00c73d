// Package utils holds the small cross-cutting helpers: logger
// construction, the response envelope, id and token generation.
package utils

import "go.uber.org/zap"

// NewLogger builds the process-wide sugared logger: human-readable
// console output in development, JSON in production.
func NewLogger(dev bool) (*zap.SugaredLogger, error) {
	var z *zap.Logger
	var err error
	if dev {
		z, err = zap.NewDevelopment()
	} else {
		z, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return z.Sugar(), nil
}
