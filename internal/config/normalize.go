package config

import (
	"fmt"
	"os"
	"strings"
)

func (s *Settings) normalize() error {
	s.applyEnvOverrides()
	s.normalizeLogging()
	if err := s.normalizePaths(); err != nil {
		return err
	}
	s.Receiver.Bind = strings.TrimSpace(s.Receiver.Bind)
	if s.Receiver.Bind == "" {
		s.Receiver.Bind = defaultReceiverBind
	}
	return nil
}

func (s *Settings) applyEnvOverrides() {
	if value, ok := os.LookupEnv(envLogLevel); ok && strings.TrimSpace(value) != "" {
		s.Logging.Level = value
	}
	if value, ok := os.LookupEnv(envLogFormat); ok && strings.TrimSpace(value) != "" {
		s.Logging.Format = value
	}
}

func (s *Settings) normalizeLogging() {
	s.Logging.Level = strings.ToLower(strings.TrimSpace(s.Logging.Level))
	if s.Logging.Level == "" {
		s.Logging.Level = defaultLogLevel
	}
	s.Logging.Format = strings.ToLower(strings.TrimSpace(s.Logging.Format))
	if s.Logging.Format == "" {
		s.Logging.Format = defaultLogFormat
	}
}

func (s *Settings) normalizePaths() error {
	file := strings.TrimSpace(s.Logging.File)
	if file == "" {
		s.Logging.File = ""
		return nil
	}
	expanded, err := expandPath(file)
	if err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	s.Logging.File = expanded
	return nil
}
