package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"

	"github.com/SPACEX-2022/superapp-cli/cmd"
)

func main() {
	_ = godotenv.Load()

	if err := fang.Execute(context.Background(), cmd.Root()); err != nil {
		os.Exit(1)
	}
}
