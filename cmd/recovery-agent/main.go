package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/John4-pixel2/recovery-agent/internal/interface/cli"
)

func main() {
	_ = godotenv.Load()

	if err := cli.NewRoot().Execute(); err != nil {
		os.Exit(1)
	}
}
