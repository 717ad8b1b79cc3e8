// Package version carries the release string, overridable at link time:
//
//	go build -ldflags "-X aniseek/internal/version.Version=1.2.3"
package version

var Version = "0.1.0-dev"
