//go:build cli
// +build cli

package main

import (
	"github.com/jyagua/EasyPromo/cmd"
	"github.com/jyagua/EasyPromo/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
