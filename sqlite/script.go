package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/voicenav"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ voicenav.ScriptService = (*ScriptService)(nil)

// ScriptService implements voicenav.ScriptService using SQLite.
type ScriptService struct {
	db *DB
}

// NewScriptService creates a new ScriptService.
func NewScriptService(db *DB) *ScriptService {
	return &ScriptService{db: db}
}

// CreateScript records a generated script.
func (s *ScriptService) CreateScript(ctx context.Context, script *voicenav.Script) error {
	if err := script.Validate(); err != nil {
		return err
	}

	selections, err := json.Marshal(script.Selections)
	if err != nil {
		return fmt.Errorf("failed to encode selections: %w", err)
	}

	script.ID = uuid.New().String()
	script.CreatedAt = time.Now().UTC().Truncate(time.Second)
	script.Hash = fmt.Sprintf("%x", xxhash.Sum64String(script.Source))

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO scripts (id, selections, source, hash, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, script.ID, string(selections), script.Source, script.Hash,
		script.CreatedAt.Format(time.RFC3339))

	return err
}

// FindScriptByID retrieves a script by ID.
func (s *ScriptService) FindScriptByID(ctx context.Context, id string) (*voicenav.Script, error) {
	scripts, err := s.FindScripts(ctx, voicenav.ScriptFilter{ID: &id})
	if err != nil {
		return nil, err
	}
	if len(scripts) == 0 {
		return nil, voicenav.Errorf(voicenav.ENOTFOUND, "script not found")
	}
	return scripts[0], nil
}

// FindScripts retrieves scripts matching the filter, newest first.
func (s *ScriptService) FindScripts(ctx context.Context, filter voicenav.ScriptFilter) ([]*voicenav.Script, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, selections, source, hash, created_at FROM scripts WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}

	// rowid breaks ties between runs recorded within the same second.
	query.WriteString(" ORDER BY created_at DESC, rowid DESC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scripts []*voicenav.Script
	for rows.Next() {
		script, err := scanScript(rows)
		if err != nil {
			return nil, err
		}
		scripts = append(scripts, script)
	}

	return scripts, rows.Err()
}

func scanScript(rows *sql.Rows) (*voicenav.Script, error) {
	var script voicenav.Script
	var selections, createdAt string

	if err := rows.Scan(&script.ID, &selections, &script.Source, &script.Hash, &createdAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(selections), &script.Selections); err != nil {
		return nil, fmt.Errorf("failed to decode selections: %w", err)
	}

	var err error
	script.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}

	return &script, nil
}
