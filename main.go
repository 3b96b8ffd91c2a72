/*
Copyright © 2025 dbarkol
*/
package main

import (
	"github.com/dbarkol/telco-ai-solution-labs/cmd"
	"github.com/joho/godotenv"
)

func main() {
	cmd.Execute()
}

func init() {
	// Optional: real deployments provide settings through the environment.
	_ = godotenv.Load()
}
