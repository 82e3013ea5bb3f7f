// Package main is the entry point for the crypto-provider-cli application.
// It initializes the root command and registers the sub-commands (digest,
// cipher, key, keystore) for the CLI, then executes the command-line interface.
package main

import (
	"fmt"
	"log"

	commands "crypto_provider_service/cmd/crypto-provider-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "crypto-provider-cli",
		Short: "Cryptographic provider CLI tool",
		Long: `crypto-provider-cli is a command-line tool for the cryptographic provider framework.
Supports streaming digests, block and stream cipher encryption/decryption with
selectable chaining modes, key pair generation, key container conversion between
DER formats, and a database-backed key store.`,
	}

	// Initialize all command groups BEFORE executing
	if err := initializeCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	// Execute root command ONCE after all commands are registered
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command) error {
	if err := commands.InitDigestCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize digest commands: %w", err)
	}

	if err := commands.InitCipherCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize cipher commands: %w", err)
	}

	if err := commands.InitKeyCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize key commands: %w", err)
	}

	if err := commands.InitKeyStoreCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize keystore commands: %w", err)
	}

	return nil
}
