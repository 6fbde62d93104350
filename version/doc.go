// Package version reports the build version of lazykit binaries.
//
//	go build -ldflags "-X github.com/kbukum/lazykit/version.Version=1.0.0"
package version
