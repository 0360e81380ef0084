package main

import (
	"github.com/joeydtaylor/steeze-items/pkg/serverfx"
	"go.uber.org/fx"
)

func main() {
	fx.New(serverfx.Module(serverfx.WithService("steeze-items"))).Run()
}
