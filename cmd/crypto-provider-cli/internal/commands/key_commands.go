package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"crypto_provider_service/internal/domain/keys"
	"crypto_provider_service/internal/domain/provider"
	"crypto_provider_service/internal/infrastructure/backend"
	"crypto_provider_service/internal/infrastructure/codec"
	"crypto_provider_service/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// KeyCommandHandler encapsulates logic for key generation and container
// conversion via CLI.
type KeyCommandHandler struct {
	backend provider.Backend
	codec   keys.Codec
	logger  logger.Logger
}

// NewKeyCommandHandler initializes and returns a KeyCommandHandler instance with
// configured logger, backend and codec.
func NewKeyCommandHandler() (*KeyCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	softwareBackend, err := backend.NewSoftwareBackend(loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create software backend: %w", err)
	}

	derCodec, err := codec.New(loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create key codec: %w", err)
	}

	return &KeyCommandHandler{
		backend: softwareBackend,
		codec:   derCodec,
		logger:  loggerInstance,
	}, nil
}

// GenerateKeyCmd generates a key pair and persists the private and public
// containers in a selected directory
func (commandHandler *KeyCommandHandler) GenerateKeyCmd(cmd *cobra.Command, _ []string) {
	algorithm, err := cmd.Flags().GetString("algorithm")
	if err != nil {
		commandHandler.logger.Error("invalid algorithm flag ", err)
		return
	}
	keySize, err := cmd.Flags().GetInt("key-size")
	if err != nil {
		commandHandler.logger.Error("invalid key-size flag ", err)
		return
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		commandHandler.logger.Error("invalid format flag ", err)
		return
	}
	keyDir, err := cmd.Flags().GetString("key-dir")
	if err != nil {
		commandHandler.logger.Error("invalid key-dir flag ", err)
		return
	}

	key, err := commandHandler.backend.GenerateKey(keys.Family(algorithm), keySize)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	uniqueID := uuid.New()

	privateDER, err := commandHandler.codec.WriteKey(key, format)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	privateFilePath := filepath.Join(keyDir, fmt.Sprintf("%s-private-key.der", uniqueID))
	if err := os.WriteFile(privateFilePath, privateDER, 0600); err != nil {
		commandHandler.logger.Error(err)
		return
	}
	commandHandler.logger.Info("Private key saved to ", privateFilePath)

	publicDER, err := commandHandler.codec.WriteKey(key.PublicView(), keys.FormatSubjectPublicKeyInfo)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	publicFilePath := filepath.Join(keyDir, fmt.Sprintf("%s-public-key.der", uniqueID))
	if err := os.WriteFile(publicFilePath, publicDER, 0600); err != nil {
		commandHandler.logger.Error(err)
		return
	}
	commandHandler.logger.Info("Public key saved to ", publicFilePath)
}

// ConvertKeyCmd re-encodes a key container from one DER format into another
func (commandHandler *KeyCommandHandler) ConvertKeyCmd(cmd *cobra.Command, _ []string) {
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
	fromFormat, err := cmd.Flags().GetString("from")
	if err != nil {
		commandHandler.logger.Error("invalid from flag ", err)
		return
	}
	toFormat, err := cmd.Flags().GetString("to")
	if err != nil {
		commandHandler.logger.Error("invalid to flag ", err)
		return
	}

	der, err := os.ReadFile(filepath.Clean(inputFilePath))
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	key, err := commandHandler.codec.ReadKey(der, fromFormat)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	converted, err := commandHandler.codec.WriteKey(key, toFormat)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	if err := os.WriteFile(outputFilePath, converted, 0600); err != nil {
		commandHandler.logger.Error(err)
		return
	}
	commandHandler.logger.Info("Converted ", fromFormat, " container to ", toFormat, " at ", outputFilePath)
}

// InitKeyCommands registers key-related commands
func InitKeyCommands(rootCmd *cobra.Command) error {
	handler, err := NewKeyCommandHandler()

	if err != nil {
		return fmt.Errorf("failed to create key command handler %w", err)
	}

	var generateKeyCmd = &cobra.Command{
		Use:   "generate-key",
		Short: "Generate a key pair and write its DER containers",
		Run:   handler.GenerateKeyCmd,
	}
	generateKeyCmd.Flags().StringP("algorithm", "", "RSA", "Key algorithm (RSA, DSA, EC)")
	generateKeyCmd.Flags().IntP("key-size", "", 2048, "Key size in bits (curve size for EC)")
	generateKeyCmd.Flags().StringP("format", "", keys.FormatPrivateKeyInfo, "Private key container format")
	generateKeyCmd.Flags().StringP("key-dir", "", "", "Directory to store the key containers")
	rootCmd.AddCommand(generateKeyCmd)

	var convertKeyCmd = &cobra.Command{
		Use:   "convert-key",
		Short: "Convert a key container between DER formats",
		Run:   handler.ConvertKeyCmd,
	}
	convertKeyCmd.Flags().StringP("input-file", "", "", "Path to the input DER container")
	convertKeyCmd.Flags().StringP("output-file", "", "", "Path to the output DER container")
	convertKeyCmd.Flags().StringP("from", "", "", "Input container format")
	convertKeyCmd.Flags().StringP("to", "", "", "Output container format")
	rootCmd.AddCommand(convertKeyCmd)

	return nil
}
