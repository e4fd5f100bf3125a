package core

import "os"

const (
	OneMegabyte = 1024 * 1024 // 1024 (1KB) * 1024 => 1MB

	HintFileSuffix = ".hint" // appended to the log path to name its key directory snapshot

	DatafilePerm os.FileMode = 0644

	// Buffer size used while replaying the log at startup
	ReplayBufferSize = OneMegabyte
)
