// cmd/gffio/main.go
package main

import (
	"gffio/internal/app"
	"gffio/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
