package server

import "time"

const (
	readTimeout  = 5 * time.Second
	writeTimeout = 15 * time.Second
	idleTimeout  = 90 * time.Second
)

var shutdownTimeout = 10 * time.Second
