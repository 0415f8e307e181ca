// internal/version/version.go
package version

// Version is overridden at build time:
//
//	go build -ldflags "-X gffio/internal/version.Version=v0.4.0" ./cmd/gffio
var Version = "dev"
