package commands

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"crypto_provider_service/internal/domain/provider"
	"crypto_provider_service/internal/infrastructure/backend"
	"crypto_provider_service/internal/infrastructure/engine"
	"crypto_provider_service/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// DigestCommandHandler encapsulates logic for handling digest operations via CLI.
type DigestCommandHandler struct {
	backend  provider.Backend
	registry *engine.Registry
	logger   logger.Logger
}

// NewDigestCommandHandler initializes and returns a DigestCommandHandler instance with
// configured logger, backend and registry.
func NewDigestCommandHandler() (*DigestCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	softwareBackend, err := backend.NewSoftwareBackend(loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create software backend: %w", err)
	}

	return &DigestCommandHandler{
		backend:  softwareBackend,
		registry: engine.DefaultRegistry(),
		logger:   loggerInstance,
	}, nil
}

// DigestCmd hashes a file with the selected digest algorithm and writes the
// hex-encoded result
func (commandHandler *DigestCommandHandler) DigestCmd(cmd *cobra.Command, _ []string) {
	algorithm, err := cmd.Flags().GetString("algorithm")
	if err != nil {
		commandHandler.logger.Error("invalid algorithm flag ", err)
		return
	}
	inputFilePath, err := cmd.Flags().GetString("input-file")
	if err != nil {
		commandHandler.logger.Error("invalid input-file flag ", err)
		return
	}
	outputFilePath, err := cmd.Flags().GetString("output-file")
	if err != nil {
		commandHandler.logger.Error("invalid output-file flag ", err)
		return
	}

	descriptor, err := commandHandler.registry.Lookup(algorithm)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	ctx, err := engine.NewDigestContext(descriptor, commandHandler.backend, commandHandler.logger)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	data, err := os.ReadFile(filepath.Clean(inputFilePath))
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	if err := ctx.Update(data); err != nil {
		commandHandler.logger.Error(err)
		return
	}

	sum, err := ctx.Finalize()
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	digestHex := hex.EncodeToString(sum)
	if outputFilePath == "" {
		commandHandler.logger.Info(algorithm, " digest: ", digestHex)
		return
	}

	if err := os.WriteFile(outputFilePath, []byte(digestHex+"\n"), 0600); err != nil {
		commandHandler.logger.Error(err)
		return
	}
	commandHandler.logger.Info("Digest saved to ", outputFilePath)
}

// InitDigestCommands registers digest-related commands
func InitDigestCommands(rootCmd *cobra.Command) error {
	handler, err := NewDigestCommandHandler()

	if err != nil {
		return fmt.Errorf("failed to create digest command handler %w", err)
	}

	var digestCmd = &cobra.Command{
		Use:   "digest",
		Short: "Hash a file with a digest algorithm",
		Run:   handler.DigestCmd,
	}
	digestCmd.Flags().StringP("algorithm", "", "SHA-256", "Digest algorithm (SHA-256, SHA-512, SHA3-256, BLAKE2b-256)")
	digestCmd.Flags().StringP("input-file", "", "", "Path to the file to hash")
	digestCmd.Flags().StringP("output-file", "", "", "Path to write the hex digest (logged when omitted)")
	rootCmd.AddCommand(digestCmd)

	return nil
}
