package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"crypto_provider_service/internal/app"
	"crypto_provider_service/internal/domain/keys"
	"crypto_provider_service/internal/infrastructure/codec"
	"crypto_provider_service/internal/infrastructure/persistence"
	"crypto_provider_service/internal/infrastructure/persistence/models"
	"crypto_provider_service/internal/pkg/config"
	"crypto_provider_service/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// KeyStoreCommandHandler encapsulates logic for the database-backed key store
// via CLI.
type KeyStoreCommandHandler struct {
	logger logger.Logger
}

// NewKeyStoreCommandHandler initializes and returns a KeyStoreCommandHandler
// instance. The database connection is opened per command from the db flags.
func NewKeyStoreCommandHandler() (*KeyStoreCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return &KeyStoreCommandHandler{
		logger: loggerInstance,
	}, nil
}

// openKeyStore connects to the database named by the db flags and builds the
// key store service on top of it.
func (commandHandler *KeyStoreCommandHandler) openKeyStore(cmd *cobra.Command) (keys.KeyStoreService, func(), error) {
	dbType, err := cmd.Flags().GetString("db-type")
	if err != nil {
		return nil, nil, fmt.Errorf("invalid db-type flag: %w", err)
	}
	dbDSN, err := cmd.Flags().GetString("db-dsn")
	if err != nil {
		return nil, nil, fmt.Errorf("invalid db-dsn flag: %w", err)
	}

	settings := config.DatabaseSettings{Type: dbType, DSN: dbDSN}
	db, err := persistence.NewDBConnection(settings)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := persistence.CloseDB(db); err != nil {
			commandHandler.logger.Warn("failed to close database: ", err)
		}
	}

	if err := db.AutoMigrate(&models.KeyRecordModel{}); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	keyRecordRepo, err := persistence.NewGormKeyRecordRepository(db, commandHandler.logger)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	derCodec, err := codec.New(commandHandler.logger)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	service, err := app.NewKeyStoreService(derCodec, keyRecordRepo, commandHandler.logger)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	return service, cleanup, nil
}

// ImportKeyCmd reads a DER container from disk and stores it
func (commandHandler *KeyStoreCommandHandler) ImportKeyCmd(cmd *cobra.Command, _ []string) {
	inputFilePath, err := cmd.Flags().GetString("input-file")
	if err != nil {
		commandHandler.logger.Error("invalid input-file flag ", err)
		return
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		commandHandler.logger.Error("invalid format flag ", err)
		return
	}

	service, cleanup, err := commandHandler.openKeyStore(cmd)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	defer cleanup()

	der, err := os.ReadFile(filepath.Clean(inputFilePath))
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	derCodec, err := codec.New(commandHandler.logger)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	key, err := derCodec.ReadKey(der, format)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	records, err := service.Store(cmd.Context(), key, format)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	for _, record := range records {
		commandHandler.logger.Info("Stored ", record.Type, " ", record.Algorithm, " key record with id ", record.ID)
	}
}

// ExportKeyCmd fetches a stored key record and writes its container to disk
func (commandHandler *KeyStoreCommandHandler) ExportKeyCmd(cmd *cobra.Command, _ []string) {
	keyID, err := cmd.Flags().GetString("key-id")
	if err != nil {
		commandHandler.logger.Error("invalid key-id flag ", err)
		return
	}
	outputFilePath, err := cmd.Flags().GetString("output-file")
	if err != nil {
		commandHandler.logger.Error("invalid output-file flag ", err)
		return
	}

	service, cleanup, err := commandHandler.openKeyStore(cmd)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	defer cleanup()

	_, record, err := service.Fetch(cmd.Context(), keyID)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	if err := os.WriteFile(outputFilePath, record.Material, 0600); err != nil {
		commandHandler.logger.Error(err)
		return
	}
	commandHandler.logger.Info("Exported ", record.Format, " container to ", outputFilePath)
}

// ListKeysCmd lists stored key records
func (commandHandler *KeyStoreCommandHandler) ListKeysCmd(cmd *cobra.Command, _ []string) {
	algorithm, err := cmd.Flags().GetString("algorithm")
	if err != nil {
		commandHandler.logger.Error("invalid algorithm flag ", err)
		return
	}
	keyType, err := cmd.Flags().GetString("type")
	if err != nil {
		commandHandler.logger.Error("invalid type flag ", err)
		return
	}

	service, cleanup, err := commandHandler.openKeyStore(cmd)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	defer cleanup()

	query := &keys.KeyQuery{
		Algorithm: algorithm,
		Type:      keyType,
		SortBy:    "date_time_created",
		SortOrder: "desc",
	}

	records, err := service.List(cmd.Context(), query)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	for _, record := range records {
		commandHandler.logger.Info(record.ID, " ", record.Algorithm, " ", record.Type, " ", record.Format,
			" created ", record.DateTimeCreated.Format("2006-01-02 15:04:05"))
	}
	commandHandler.logger.Info("Listed ", len(records), " key records")
}

// DeleteKeyCmd removes a stored key record
func (commandHandler *KeyStoreCommandHandler) DeleteKeyCmd(cmd *cobra.Command, _ []string) {
	keyID, err := cmd.Flags().GetString("key-id")
	if err != nil {
		commandHandler.logger.Error("invalid key-id flag ", err)
		return
	}

	service, cleanup, err := commandHandler.openKeyStore(cmd)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	defer cleanup()

	if err := service.DeleteByID(cmd.Context(), keyID); err != nil {
		commandHandler.logger.Error(err)
		return
	}
	commandHandler.logger.Info("Deleted key record with id ", keyID)
}

// InitKeyStoreCommands registers keystore-related commands
func InitKeyStoreCommands(rootCmd *cobra.Command) error {
	handler, err := NewKeyStoreCommandHandler()

	if err != nil {
		return fmt.Errorf("failed to create keystore command handler %w", err)
	}

	addDBFlags := func(cmd *cobra.Command) {
		cmd.Flags().StringP("db-type", "", config.SqliteDbType, "Database type (sqlite, postgres)")
		cmd.Flags().StringP("db-dsn", "", "keystore.db", "Database DSN")
	}

	var importKeyCmd = &cobra.Command{
		Use:   "import-key",
		Short: "Import a DER key container into the key store",
		Run:   handler.ImportKeyCmd,
	}
	importKeyCmd.Flags().StringP("input-file", "", "", "Path to the DER container to import")
	importKeyCmd.Flags().StringP("format", "", keys.FormatPrivateKeyInfo, "Container format of the input file")
	addDBFlags(importKeyCmd)
	rootCmd.AddCommand(importKeyCmd)

	var exportKeyCmd = &cobra.Command{
		Use:   "export-key",
		Short: "Export a stored key container to a file",
		Run:   handler.ExportKeyCmd,
	}
	exportKeyCmd.Flags().StringP("key-id", "", "", "ID of the stored key record")
	exportKeyCmd.Flags().StringP("output-file", "", "", "Path to write the DER container")
	addDBFlags(exportKeyCmd)
	rootCmd.AddCommand(exportKeyCmd)

	var listKeysCmd = &cobra.Command{
		Use:   "list-keys",
		Short: "List stored key records",
		Run:   handler.ListKeysCmd,
	}
	listKeysCmd.Flags().StringP("algorithm", "", "", "Filter by algorithm (RSA, DSA, EC)")
	listKeysCmd.Flags().StringP("type", "", "", "Filter by type (private, public)")
	addDBFlags(listKeysCmd)
	rootCmd.AddCommand(listKeysCmd)

	var deleteKeyCmd = &cobra.Command{
		Use:   "delete-key",
		Short: "Delete a stored key record",
		Run:   handler.DeleteKeyCmd,
	}
	deleteKeyCmd.Flags().StringP("key-id", "", "", "ID of the stored key record")
	addDBFlags(deleteKeyCmd)
	rootCmd.AddCommand(deleteKeyCmd)

	return nil
}
