package api

import (
	"time"
)

type Configuration struct {
	Env                 string
	AppName             string
	AppVersion          string
	Port                string
	RequestLoggingLevel string
	CorsAllowOrigins    []string
	MaxUploadSize       int64
	ConversionTimeout   time.Duration
	EnablePrometheus    bool
}
