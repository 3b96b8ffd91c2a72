/*
Copyright © 2025 dbarkol
*/
package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/dbarkol/telco-ai-solution-labs/config"
	"github.com/dbarkol/telco-ai-solution-labs/database"
	"github.com/dbarkol/telco-ai-solution-labs/service"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "telco-rag",
	Short: "Retrieval-augmented support assistant for the 5G gateway manual",
	Long: `telco-rag answers natural-language support questions about the 5G home
internet gateway by retrieving relevant passages from the device manual and
composing a grounded answer with page citations.

Index the manual first, then ask questions or start the API server:

  telco-rag index --file manual.pdf
  telco-rag ask "How do I reset the gateway?"
  telco-rag serve`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.telco-rag.yaml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".telco-rag")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// mustLoadConfig loads and validates the environment configuration. Every
// missing setting is reported together before any service is contacted.
func mustLoadConfig() *config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("%v\n\nPlease set the required environment variables (a .env file works too).", err)
	}
	return cfg
}

func newStore(cfg *config.Config) *database.WeaviateStore {
	store, err := database.NewWeaviateStore(cfg.WeaviateHost, cfg.WeaviateAPIKey, cfg.IndexName, cfg.EmbeddingDimensions)
	if err != nil {
		log.Fatalf("Failed to connect to Weaviate: %v", err)
	}
	return store
}

func newGenerator(cfg *config.Config) service.Generator {
	switch cfg.GenerationProvider {
	case config.ProviderGemini:
		generator, err := service.NewGeminiGenerator(cfg.GeminiAPIKeys, cfg.GeminiModel)
		if err != nil {
			log.Fatalf("Failed to create Gemini generator: %v", err)
		}
		return generator
	default:
		return service.NewOpenAIGenerator(service.NewAIClientConfig(cfg), cfg.ChatDeployment)
	}
}
