// Package vulndb stores the knowledge base of known smart-contract
// vulnerability patterns in a standalone SQLite database, separate from the
// main application store so it can be reseeded independently.
package vulndb

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/lcalzada-xor/scaudit/internal/core/domain"
	"github.com/lcalzada-xor/scaudit/internal/core/ports"
)

//go:embed schema.sql
var schemaSQL string

// SQLiteRepository implements ports.VulnRepository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-based pattern repository.
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	// Initialize schema
	if _, err := db.Exec(schemaSQL); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// UpsertPattern inserts or updates a pattern, keyed by its unique name.
func (r *SQLiteRepository) UpsertPattern(ctx context.Context, p domain.VulnPattern) error {
	refsJSON, err := json.Marshal(p.References)
	if err != nil {
		return fmt.Errorf("failed to marshal references: %w", err)
	}

	query := `
		INSERT INTO vuln_patterns (
			name, category, severity, cvss_score, cvss_vector,
			description, remediation, pattern, refs, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			category = excluded.category,
			severity = excluded.severity,
			cvss_score = excluded.cvss_score,
			cvss_vector = excluded.cvss_vector,
			description = excluded.description,
			remediation = excluded.remediation,
			pattern = excluded.pattern,
			refs = excluded.refs,
			updated_at = excluded.updated_at
	`

	_, err = r.db.ExecContext(ctx, query,
		p.Name, p.Category, string(p.Severity), p.CVSSScore, p.CVSSVector,
		p.Description, p.Remediation, p.Pattern, string(refsJSON),
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// GetPattern retrieves a pattern by ID. A missing pattern returns nil.
func (r *SQLiteRepository) GetPattern(ctx context.Context, id int64) (*domain.VulnPattern, error) {
	row := r.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id)
	p, err := scanPattern(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pattern: %w", err)
	}
	return &p, nil
}

// ListPatterns returns patterns, optionally restricted to one category.
func (r *SQLiteRepository) ListPatterns(ctx context.Context, category string) ([]domain.VulnPattern, error) {
	query := selectColumns
	var args []interface{}
	if category != "" {
		query += " WHERE LOWER(category) = LOWER(?)"
		args = append(args, category)
	}
	query += " ORDER BY cvss_score DESC, name ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	return scanPatterns(rows)
}

// SearchPatterns searches patterns by keywords (fuzzy matching).
func (r *SQLiteRepository) SearchPatterns(ctx context.Context, keywords []string) ([]domain.VulnPattern, error) {
	if len(keywords) == 0 {
		return nil, nil
	}

	var conditions []string
	var args []interface{}
	for _, kw := range keywords {
		conditions = append(conditions, "(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)")
		like := "%" + strings.ToLower(kw) + "%"
		args = append(args, like, like)
	}

	query := fmt.Sprintf("%s WHERE %s ORDER BY cvss_score DESC LIMIT 50",
		selectColumns, strings.Join(conditions, " OR "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("keyword search failed: %w", err)
	}
	defer rows.Close()

	return scanPatterns(rows)
}

// ListCategories returns the distinct pattern categories.
func (r *SQLiteRepository) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT DISTINCT category FROM vuln_patterns ORDER BY category")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// TotalCount returns the total number of patterns.
func (r *SQLiteRepository) TotalCount(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM vuln_patterns").Scan(&count)
	return count, err
}

// UpdateSyncStatus records the outcome of the last seeding run.
func (r *SQLiteRepository) UpdateSyncStatus(ctx context.Context, status domain.VulnSyncStatus) error {
	query := `
		UPDATE vuln_sync_status
		SET last_sync_time = ?,
		    record_count = ?,
		    error_message = ?,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = 1
	`

	_, err := r.db.ExecContext(ctx, query,
		status.LastSyncTime.Format(time.RFC3339),
		status.RecordCount,
		status.ErrorMessage,
	)
	return err
}

// Close closes the database connection.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

const selectColumns = `
	SELECT id, name, category, severity, cvss_score, cvss_vector,
	       description, remediation, pattern, refs, updated_at
	FROM vuln_patterns`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPattern(row rowScanner) (domain.VulnPattern, error) {
	var p domain.VulnPattern
	var severity, updatedAt string
	var cvssVector, remediation, pattern, refsJSON sql.NullString

	err := row.Scan(
		&p.ID, &p.Name, &p.Category, &severity, &p.CVSSScore, &cvssVector,
		&p.Description, &remediation, &pattern, &refsJSON, &updatedAt,
	)
	if err != nil {
		return p, err
	}

	p.Severity = domain.FindingSeverity(severity)
	p.CVSSVector = cvssVector.String
	p.Remediation = remediation.String
	p.Pattern = pattern.String
	p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	if refsJSON.String != "" {
		json.Unmarshal([]byte(refsJSON.String), &p.References)
	}
	return p, nil
}

func scanPatterns(rows *sql.Rows) ([]domain.VulnPattern, error) {
	var patterns []domain.VulnPattern
	for rows.Next() {
		p, err := scanPattern(rows)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	return patterns, rows.Err()
}

// Ensure interface compliance
var _ ports.VulnRepository = (*SQLiteRepository)(nil)
