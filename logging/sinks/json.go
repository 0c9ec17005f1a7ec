package sinks

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"saferoom/server/logging"
)

// JSONSink appends newline-delimited JSON events to a file.
type JSONSink struct {
	mu     sync.Mutex
	file   *os.File
	writer *bufio.Writer
}

func NewJSONSink(path string) (*JSONSink, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open event log %s: %w", path, err)
	}
	return &JSONSink{file: file, writer: bufio.NewWriter(file)}, nil
}

func (s *JSONSink) Write(event logging.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", event.Type, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.writer.Write(data); err != nil {
		return err
	}
	return s.writer.WriteByte('\n')
}

func (s *JSONSink) Close(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writer.Flush(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}
