package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Store persists the settings document. Write keeps the previous generation
// as a backup.
type Store interface {
	Read() ([]byte, error)
	ReadBackup() ([]byte, error)
	Write(data []byte) error
}

// FileStore keeps settings.json and settings.json.bak in Dir.
type FileStore struct {
	Dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

func (s *FileStore) Path() string {
	return filepath.Join(s.Dir, FileName)
}

func (s *FileStore) BackupPath() string {
	return s.Path() + BackupSuffix
}

func (s *FileStore) Read() ([]byte, error) {
	return os.ReadFile(s.Path())
}

func (s *FileStore) ReadBackup() ([]byte, error) {
	return os.ReadFile(s.BackupPath())
}

// Write rotates the current file to .bak, dropping an older backup, and then
// writes data.
func (s *FileStore) Write(data []byte) error {
	if err := os.MkdirAll(s.Dir, DirPerm); err != nil {
		return err
	}
	if _, err := os.Stat(s.Path()); err == nil {
		if err := os.Remove(s.BackupPath()); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		if err := os.Rename(s.Path(), s.BackupPath()); err != nil {
			return err
		}
	}
	return os.WriteFile(s.Path(), data, FilePerm)
}

// MemoryStore is an in-process Store with the same rotation behavior.
type MemoryStore struct {
	Data   []byte
	Backup []byte
	// Err, when set, fails every operation.
	Err error
}

func (s *MemoryStore) Read() ([]byte, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Data == nil {
		return nil, fs.ErrNotExist
	}
	return s.Data, nil
}

func (s *MemoryStore) ReadBackup() ([]byte, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Backup == nil {
		return nil, fs.ErrNotExist
	}
	return s.Backup, nil
}

func (s *MemoryStore) Write(data []byte) error {
	if s.Err != nil {
		return s.Err
	}
	if s.Data != nil {
		s.Backup = s.Data
	}
	s.Data = append([]byte(nil), data...)
	return nil
}
