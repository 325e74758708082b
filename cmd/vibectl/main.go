package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/vibetimer/vibetimer/internal/cli"
)

func main() {
	_ = godotenv.Load()

	if err := cli.New().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "vibectl:", err)
		os.Exit(1)
	}
}
