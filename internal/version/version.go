// Package version хранит информацию о сборке, задается через ldflags:
//
//	go build -ldflags "-X github.com/iudanet/promptpal/internal/version.Version=v1.0.0"
package version

import "runtime"

var (
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// GoVersion версия Go, которой собран бинарник
func GoVersion() string {
	return runtime.Version()
}
