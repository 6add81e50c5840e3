package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fcolombo/mirrorkit"
)

// Compile-time interface verification.
var _ mirrorkit.RunRecorder = (*RunService)(nil)

// RunService implements mirrorkit.RunRecorder using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// RecordRun records a completed run and its replacement records in one
// transaction. Assigns the run ID when empty.
func (s *RunService) RecordRun(ctx context.Context, run *mirrorkit.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	if run.ID == "" {
		run.ID = uuid.New().String()
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, root, min_block_size, similarity_threshold, min_occurrences,
			files_scanned, clusters_retained, replacements, unresolved, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Root, run.Config.MinBlockSize, run.Config.SimilarityThreshold, run.Config.MinOccurrences,
		run.Summary.FilesScanned, run.Summary.ClustersRetained, run.Summary.Replacements, run.Summary.Unresolved,
		run.StartedAt.UTC().Format(time.RFC3339), run.FinishedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}

	for _, rec := range run.Records {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO replacements (run_id, cluster_id, file_path, tier, resolved)
			VALUES (?, ?, ?, ?, ?)
		`, run.ID, rec.ClusterID, rec.Path, rec.Tier, rec.Resolved)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindRunByID retrieves a run by ID, including its replacement records.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*mirrorkit.Run, error) {
	var run mirrorkit.Run
	var startedAt, finishedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, root, min_block_size, similarity_threshold, min_occurrences,
			files_scanned, clusters_retained, replacements, unresolved, started_at, finished_at
		FROM runs
		WHERE id = ?
	`, id).Scan(&run.ID, &run.Root, &run.Config.MinBlockSize, &run.Config.SimilarityThreshold,
		&run.Config.MinOccurrences, &run.Summary.FilesScanned, &run.Summary.ClustersRetained,
		&run.Summary.Replacements, &run.Summary.Unresolved, &startedAt, &finishedAt)

	if err == sql.ErrNoRows {
		return nil, mirrorkit.Errorf(mirrorkit.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}

	if run.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
		return nil, err
	}
	if run.FinishedAt, err = parseRFC3339(finishedAt, "finished_at"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT cluster_id, file_path, tier, resolved
		FROM replacements
		WHERE run_id = ?
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var rec mirrorkit.Replacement
		if err := rows.Scan(&rec.ClusterID, &rec.Path, &rec.Tier, &rec.Resolved); err != nil {
			return nil, err
		}
		run.Records = append(run.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &run, nil
}

// FindRuns retrieves runs matching the filter, most recent first,
// without replacement records.
func (s *RunService) FindRuns(ctx context.Context, filter mirrorkit.RunFilter) ([]*mirrorkit.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, root, min_block_size, similarity_threshold, min_occurrences,
		files_scanned, clusters_retained, replacements, unresolved, started_at, finished_at
		FROM runs WHERE 1=1`)

	if filter.Root != nil {
		query.WriteString(" AND root = ?")
		args = append(args, *filter.Root)
	}

	query.WriteString(" ORDER BY started_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*mirrorkit.Run
	for rows.Next() {
		var run mirrorkit.Run
		var startedAt, finishedAt string

		if err := rows.Scan(&run.ID, &run.Root, &run.Config.MinBlockSize, &run.Config.SimilarityThreshold,
			&run.Config.MinOccurrences, &run.Summary.FilesScanned, &run.Summary.ClustersRetained,
			&run.Summary.Replacements, &run.Summary.Unresolved, &startedAt, &finishedAt); err != nil {
			return nil, err
		}

		if run.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
			return nil, err
		}
		if run.FinishedAt, err = parseRFC3339(finishedAt, "finished_at"); err != nil {
			return nil, err
		}

		runs = append(runs, &run)
	}

	return runs, rows.Err()
}
