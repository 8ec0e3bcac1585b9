package term

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

const sinkTimeFormat = "2006-01-02 15:04:05"

var (
	sinkMutex sync.Mutex
	sink      io.Writer
)

// SetLogFile appends every message of level info and above to filename,
// one line per message in the "timestamp - LEVEL - message" form expected
// by the log page.
func SetLogFile(filename string) error {
	file, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("cannot open log file %q: %w", filename, err)
	}
	sinkMutex.Lock()
	defer sinkMutex.Unlock()
	sink = file
	return nil
}

// SetLogWriter is like SetLogFile with a writer supplied by the caller.
func SetLogWriter(writer io.Writer) {
	sinkMutex.Lock()
	defer sinkMutex.Unlock()
	sink = writer
}

func record(level, message string) {
	sinkMutex.Lock()
	defer sinkMutex.Unlock()
	if sink == nil {
		return
	}
	_, _ = fmt.Fprintf(sink, "%s - %s - %s\n", time.Now().Format(sinkTimeFormat), level, message)
}
