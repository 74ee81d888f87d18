// pattern: Imperative Shell
package clipboard

import (
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/unsafe9/alfred-gitopen/internal/logging"
)

// DefaultLimit bounds how many history entries a search considers.
const DefaultLimit = 50

// History reads text entries from Alfred's clipboard history database.
type History struct {
	DBPath string
	Log    *logging.ScopedLogger
}

func NewHistory(dbPath string, logs logging.LoggerProvider) *History {
	var log *logging.ScopedLogger
	if logs != nil {
		log = logs.For("clipboard")
	} else {
		log = logging.NopLogger()
	}
	return &History{DBPath: dbPath, Log: log}
}

// RecentText returns the most recent text entries, newest first. A missing
// database yields an empty result without error, matching the case where
// clipboard history is disabled in Alfred.
func (h *History) RecentText(limit int) ([]string, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if _, err := os.Stat(h.DBPath); err != nil {
		h.Log.Debug("clipboard history database not found", "path", h.DBPath)
		return nil, nil
	}

	db, err := sql.Open("sqlite", "file:"+h.DBPath+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open clipboard history: %w", err)
	}
	defer func() { _ = db.Close() }()

	// dataType 0 marks plain-text entries.
	rows, err := db.Query(`SELECT item FROM clipboard WHERE dataType = 0 ORDER BY ts DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query clipboard history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []string
	for rows.Next() {
		var item string
		if err := rows.Scan(&item); err != nil {
			return nil, fmt.Errorf("scan clipboard row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read clipboard history: %w", err)
	}
	return items, nil
}
