package main

import (
	// Packages
	version "github.com/mutablelogic/go-arcade/pkg/version"
)

type VersionCommand struct {
	Format string `name:"format" enum:"json,yaml" default:"yaml" help:"Output format"`
}

func (cmd *VersionCommand) Run(ctx *Globals) error {
	return ctx.write(cmd.Format, version.Get(ctx.execName))
}
