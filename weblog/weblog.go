// Package weblog serves the content of the log file as a small HTML
// monitoring page.
package weblog

import (
	"html/template"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Number of log lines shown on the page, newest first.
const maxLines = 100

const timeFormat = "2006-01-02 15:04:05"

// Entry is one parsed log line.
type Entry struct {
	Timestamp string
	Level     string
	Message   string
}

// parseLine splits a "timestamp - LEVEL - message" log line. Anything
// else renders as an INFO line holding the raw text.
func parseLine(line string) Entry {
	parts := strings.SplitN(line, " - ", 3)
	if len(parts) == 3 {
		return Entry{
			Timestamp: parts[0],
			Level:     parts[1],
			Message:   parts[2],
		}
	}
	return Entry{Level: "INFO", Message: line}
}

// Tail reads the log file and returns up to max parsed entries, newest
// first, along with the total line count. A missing file yields no
// entries, the page still renders.
func Tail(path string, max int) ([]Entry, int) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return nil, 0
	}
	total := len(lines)
	if len(lines) > max {
		lines = lines[len(lines)-max:]
	}
	entries := make([]Entry, 0, len(lines))
	for index := len(lines) - 1; index >= 0; index-- {
		entries = append(entries, parseLine(lines[index]))
	}
	return entries, total
}

// Router builds the gin engine serving the log page.
func Router(logFile string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.SetHTMLTemplate(template.Must(template.New("logs").Parse(pageTemplate)))
	router.GET("/", func(c *gin.Context) {
		entries, total := Tail(logFile, maxLines)
		c.HTML(http.StatusOK, "logs", gin.H{
			"Entries": entries,
			"Total":   total,
			"File":    logFile,
			"Now":     time.Now().Format(timeFormat),
		})
	})
	return router
}

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
    <title>Email Bot Logs</title>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <style>
        body { font-family: 'Courier New', monospace; margin: 20px; background: #1a1a1a; color: #00ff00; }
        .header { text-align: center; margin-bottom: 30px; }
        .status { padding: 10px; border-radius: 5px; margin: 10px 0; background: #004400; border: 1px solid #00ff00; }
        .log-container { background: #000; padding: 20px; border-radius: 10px; border: 1px solid #333; }
        .log-line { margin: 2px 0; padding: 5px; border-radius: 3px; }
        .timestamp { color: #888; }
        .level-INFO { color: #00ff00; }
        .level-ERROR { color: #ff6666; }
        .level-WARNING { color: #ffff66; }
        .refresh-btn { background: #333; color: #00ff00; border: 1px solid #00ff00; padding: 10px 20px; cursor: pointer; }
        .refresh-btn:hover { background: #00ff00; color: #000; }
    </style>
    <script>
        window.onload = function () {
            setTimeout(function () { location.reload(); }, 30000);
        };
    </script>
</head>
<body>
    <div class="header">
        <h1>📧 Email Bot Monitor</h1>
        <p>Last Updated: {{ .Now }}</p>
        <button class="refresh-btn" onclick="location.reload()">🔄 Refresh</button>
    </div>

    <div class="status">
        <strong>🟢 Bot Status:</strong> Active |
        <strong>📊 Log Lines:</strong> {{ .Total }} |
        <strong>📁 Log File:</strong> {{ .File }}
    </div>

    <div class="log-container">
        <h3>📋 Recent Logs (Last {{ len .Entries }} lines)</h3>
        {{ range .Entries }}
        <div class="log-line level-{{ .Level }}">
            <span class="timestamp">{{ .Timestamp }}</span> -
            <strong>{{ .Level }}</strong> -
            {{ .Message }}
        </div>
        {{ end }}
    </div>
</body>
</html>
`
