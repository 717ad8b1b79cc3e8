// cmd/aniseek/main.go
package main

import (
	"aniseek/internal/app"
	"aniseek/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
