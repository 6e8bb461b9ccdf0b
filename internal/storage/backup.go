package storage

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"gitlab.com/tozd/go/errors"

	"github.com/Bladetrain3r/Magic-Launcher/internal/model"
)

const (
	backupTimeLayout = "20060102_150405"
	backupExt        = ".json"
	// DefaultBackupKeep is how many backups are kept per shortcuts file
	DefaultBackupKeep = 20
)

// BackupManager keeps timestamped copies of shortcuts files. Backups of one
// file live in their own subdirectory so files with the same base name do not
// mix.
type BackupManager struct {
	backupDir string
	// Keep bounds the backups per file; zero keeps everything
	Keep int
}

// NewBackupManager creates a backup manager rooted at dir, or at the default
// backup directory when dir is empty
func NewBackupManager(dir string) (*BackupManager, error) {
	if dir == "" {
		dir = GetBackupDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Errorf("failed to create backup directory: %w", err)
	}
	return &BackupManager{backupDir: dir, Keep: DefaultBackupKeep}, nil
}

// Dir returns the backup root directory
func (bm *BackupManager) Dir() string {
	return bm.backupDir
}

// CreateBackup writes root as a backup of originalPath and prunes the oldest
// backups beyond Keep
func (bm *BackupManager) CreateBackup(root *model.Folder, originalPath string, sessionID string) (string, error) {
	dir := bm.dirFor(originalPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Errorf("failed to create backup directory: %w", err)
	}

	data, err := model.MarshalRoot(root)
	if err != nil {
		return "", errors.Errorf("failed to marshal backup: %w", err)
	}

	backupPath := filepath.Join(dir, generateBackupFilename(time.Now(), sessionID))
	if err := os.WriteFile(backupPath, data, 0o644); err != nil {
		return "", errors.Errorf("failed to write backup file: %w", err)
	}

	if bm.Keep > 0 {
		if err := bm.prune(originalPath); err != nil {
			return backupPath, err
		}
	}
	return backupPath, nil
}

// dirFor names the backup subdirectory of a shortcuts file after its base
// name and a hash of its absolute path
func (bm *BackupManager) dirFor(originalPath string) string {
	abs, err := filepath.Abs(originalPath)
	if err != nil {
		abs = originalPath
	}
	h := fnv.New32a()
	h.Write([]byte(filepath.Clean(abs)))
	base := strings.TrimSuffix(filepath.Base(abs), filepath.Ext(abs))
	return filepath.Join(bm.backupDir, fmt.Sprintf("%s-%08x", base, h.Sum32()))
}

// generateBackupFilename creates a name in the format YYYYMMDD_HHMMSS_<sessionID>.json
func generateBackupFilename(now time.Time, sessionID string) string {
	return fmt.Sprintf("%s_%s%s", now.Format(backupTimeLayout), sessionID, backupExt)
}

// GetBackupDir returns the default backup root
func GetBackupDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "launcher", "backups")
	}
	return filepath.Join(homeDir, ".local", "share", "launcher", "backups")
}

// NewSessionID returns a random 8-character id tagging the backups of one run
func NewSessionID() string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, 8)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}

// BackupMetadata holds parsed information about a backup file
type BackupMetadata struct {
	FilePath  string
	Timestamp time.Time
	SessionID string
}

// FindBackupsForFile returns the backups of originalPath, oldest first
func (bm *BackupManager) FindBackupsForFile(originalPath string) ([]BackupMetadata, error) {
	dir := bm.dirFor(originalPath)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Errorf("failed to read backup directory: %w", err)
	}

	var backups []BackupMetadata
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), backupExt) {
			continue
		}
		metadata, err := parseBackupFilename(entry.Name(), filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		backups = append(backups, metadata)
	}

	slices.SortFunc(backups, func(a, b BackupMetadata) int {
		if c := a.Timestamp.Compare(b.Timestamp); c != 0 {
			return c
		}
		return strings.Compare(a.FilePath, b.FilePath)
	})
	return backups, nil
}

// parseBackupFilename extracts metadata from YYYYMMDD_HHMMSS_<sessionID>.json
func parseBackupFilename(filename string, fullPath string) (BackupMetadata, error) {
	stem := strings.TrimSuffix(filename, backupExt)
	if len(stem) < len(backupTimeLayout)+2 || stem[len(backupTimeLayout)] != '_' {
		return BackupMetadata{}, errors.New("not a backup file name")
	}

	timestamp, err := time.ParseInLocation(backupTimeLayout, stem[:len(backupTimeLayout)], time.Local)
	if err != nil {
		return BackupMetadata{}, errors.Errorf("invalid timestamp format: %w", err)
	}

	return BackupMetadata{
		FilePath:  fullPath,
		Timestamp: timestamp,
		SessionID: stem[len(backupTimeLayout)+1:],
	}, nil
}

func (bm *BackupManager) prune(originalPath string) error {
	backups, err := bm.FindBackupsForFile(originalPath)
	if err != nil {
		return err
	}
	for len(backups) > bm.Keep {
		if err := os.Remove(backups[0].FilePath); err != nil {
			return errors.Errorf("failed to prune backup: %w", err)
		}
		backups = backups[1:]
	}
	return nil
}
