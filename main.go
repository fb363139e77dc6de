/*
Copyright © 2025 nordgaard
*/
package main

import (
	"github.com/joho/godotenv"
	"github.com/nordgaard/saiborg-be/cmd"
)

func main() {
	cmd.Execute()
}

func init() {
	// .env is optional; all settings can come from the environment or config file.
	_ = godotenv.Load()
}
