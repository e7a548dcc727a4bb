// Package main is the entry point for the vodplay application.
package main

import (
	"github.com/myselfbbs/vodplay/cmd"
	"github.com/myselfbbs/vodplay/config"
	"github.com/myselfbbs/vodplay/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
