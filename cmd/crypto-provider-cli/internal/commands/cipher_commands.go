package commands

import (
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"

	"crypto_provider_service/internal/domain/provider"
	"crypto_provider_service/internal/infrastructure/backend"
	"crypto_provider_service/internal/infrastructure/engine"
	"crypto_provider_service/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// CipherCommandHandler encapsulates logic for handling cipher operations via CLI.
type CipherCommandHandler struct {
	backend  provider.Backend
	registry *engine.Registry
	logger   logger.Logger
}

// NewCipherCommandHandler initializes and returns a CipherCommandHandler instance with
// configured logger, backend and registry.
func NewCipherCommandHandler() (*CipherCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	softwareBackend, err := backend.NewSoftwareBackend(loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create software backend: %w", err)
	}

	return &CipherCommandHandler{
		backend:  softwareBackend,
		registry: engine.DefaultRegistry(),
		logger:   loggerInstance,
	}, nil
}

// GenerateCipherKeyCmd generates a random key and IV sized for the selected
// algorithm and persists those in a selected directory
func (commandHandler *CipherCommandHandler) GenerateCipherKeyCmd(cmd *cobra.Command, _ []string) {
	algorithm, err := cmd.Flags().GetString("algorithm")
	if err != nil {
		commandHandler.logger.Error("invalid algorithm flag ", err)
		return
	}
	keyDir, err := cmd.Flags().GetString("key-dir")
	if err != nil {
		commandHandler.logger.Error("invalid key-dir flag ", err)
		return
	}

	descriptor, err := commandHandler.registry.Lookup(algorithm)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	if descriptor.Class != provider.ClassCipher {
		commandHandler.logger.Error("algorithm ", algorithm, " is not a cipher")
		return
	}

	uniqueID := uuid.New()

	key := make([]byte, descriptor.KeySize)
	if _, err := rand.Read(key); err != nil {
		commandHandler.logger.Error(err)
		return
	}

	keyFilePath := filepath.Join(keyDir, fmt.Sprintf("%s-symmetric-key.bin", uniqueID))
	if err := os.WriteFile(keyFilePath, key, 0600); err != nil {
		commandHandler.logger.Error(err)
		return
	}
	commandHandler.logger.Info("Cipher key saved to ", keyFilePath)

	if descriptor.IVSize > 0 {
		iv := make([]byte, descriptor.IVSize)
		if _, err := rand.Read(iv); err != nil {
			commandHandler.logger.Error(err)
			return
		}

		ivFilePath := filepath.Join(keyDir, fmt.Sprintf("%s-iv.bin", uniqueID))
		if err := os.WriteFile(ivFilePath, iv, 0600); err != nil {
			commandHandler.logger.Error(err)
			return
		}
		commandHandler.logger.Info("IV saved to ", ivFilePath)
	}
}

// EncryptCmd encrypts a file with the streaming cipher engine
func (commandHandler *CipherCommandHandler) EncryptCmd(cmd *cobra.Command, _ []string) {
	commandHandler.runCipher(cmd, provider.DirectionEncrypt)
}

// DecryptCmd decrypts a file with the streaming cipher engine
func (commandHandler *CipherCommandHandler) DecryptCmd(cmd *cobra.Command, _ []string) {
	commandHandler.runCipher(cmd, provider.DirectionDecrypt)
}

func (commandHandler *CipherCommandHandler) runCipher(cmd *cobra.Command, direction provider.Direction) {
	algorithm, err := cmd.Flags().GetString("algorithm")
	if err != nil {
		commandHandler.logger.Error("invalid algorithm flag ", err)
		return
	}
	mode, err := cmd.Flags().GetString("mode")
	if err != nil {
		commandHandler.logger.Error("invalid mode flag ", err)
		return
	}
	padding, err := cmd.Flags().GetBool("padding")
	if err != nil {
		commandHandler.logger.Error("invalid padding flag ", err)
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
	keyFilePath, err := cmd.Flags().GetString("key-file")
	if err != nil {
		commandHandler.logger.Error("invalid key-file flag ", err)
		return
	}
	ivFilePath, err := cmd.Flags().GetString("iv-file")
	if err != nil {
		commandHandler.logger.Error("invalid iv-file flag ", err)
		return
	}

	descriptor, err := commandHandler.registry.Lookup(algorithm)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	key, err := os.ReadFile(filepath.Clean(keyFilePath))
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	var iv []byte
	if ivFilePath != "" {
		iv, err = os.ReadFile(filepath.Clean(ivFilePath))
		if err != nil {
			commandHandler.logger.Error(err)
			return
		}
	}

	ctx, err := engine.NewCipherContext(descriptor, commandHandler.backend, provider.CipherMode(mode),
		direction, key, iv, padding, commandHandler.logger)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	input, err := os.ReadFile(filepath.Clean(inputFilePath))
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	output, err := ctx.Update(input)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	tail, err := ctx.Finalize()
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	output = append(output, tail...)

	if err := os.WriteFile(outputFilePath, output, 0600); err != nil {
		commandHandler.logger.Error(err)
		return
	}

	if direction == provider.DirectionEncrypt {
		commandHandler.logger.Info("Encrypted data saved to ", outputFilePath)
	} else {
		commandHandler.logger.Info("Decrypted data saved to ", outputFilePath)
	}
}

// InitCipherCommands registers cipher-related commands
func InitCipherCommands(rootCmd *cobra.Command) error {
	handler, err := NewCipherCommandHandler()

	if err != nil {
		return fmt.Errorf("failed to create cipher command handler %w", err)
	}

	var generateCipherKeyCmd = &cobra.Command{
		Use:   "generate-cipher-key",
		Short: "Generate a random cipher key and IV",
		Run:   handler.GenerateCipherKeyCmd,
	}
	generateCipherKeyCmd.Flags().StringP("algorithm", "", "AES-256", "Cipher algorithm (AES-128, AES-192, AES-256, DES, 3DES, ChaCha20)")
	generateCipherKeyCmd.Flags().StringP("key-dir", "", "", "Directory to store the key and IV")
	rootCmd.AddCommand(generateCipherKeyCmd)

	addCipherFlags := func(cmd *cobra.Command) {
		cmd.Flags().StringP("algorithm", "", "AES-256", "Cipher algorithm")
		cmd.Flags().StringP("mode", "", "CBC", "Chaining mode (ECB, CBC, CTR, stream)")
		cmd.Flags().BoolP("padding", "", true, "Apply PKCS#7 padding (ECB and CBC)")
		cmd.Flags().StringP("input-file", "", "", "Path to the input file")
		cmd.Flags().StringP("output-file", "", "", "Path to the output file")
		cmd.Flags().StringP("key-file", "", "", "Path to the key file")
		cmd.Flags().StringP("iv-file", "", "", "Path to the IV file (omit for ECB)")
	}

	var encryptCmd = &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt a file with the streaming cipher engine",
		Run:   handler.EncryptCmd,
	}
	addCipherFlags(encryptCmd)
	rootCmd.AddCommand(encryptCmd)

	var decryptCmd = &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt a file with the streaming cipher engine",
		Run:   handler.DecryptCmd,
	}
	addCipherFlags(decryptCmd)
	rootCmd.AddCommand(decryptCmd)

	return nil
}
