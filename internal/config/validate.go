package config

import (
	"fmt"
	"net"
)

// Validate ensures the settings are usable.
func (s *Settings) Validate() error {
	if err := s.validateLogging(); err != nil {
		return err
	}
	if err := s.validateReceiver(); err != nil {
		return err
	}
	return nil
}

func (s *Settings) validateLogging() error {
	switch s.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (want console or json)", s.Logging.Format)
	}
	switch s.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q (want debug, info, warn, or error)", s.Logging.Level)
	}
	return nil
}

func (s *Settings) validateReceiver() error {
	if _, _, err := net.SplitHostPort(s.Receiver.Bind); err != nil {
		return fmt.Errorf("receiver.bind: %w", err)
	}
	return nil
}
