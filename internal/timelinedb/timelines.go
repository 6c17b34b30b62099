package timelinedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"textp2srt/internal/timeline"
)

// Summary describes one stored timeline.
type Summary struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	FrameRate  float64   `json:"frame_rate"`
	Current    bool      `json:"current"`
	Tracks     int       `json:"tracks"`
	Items      int       `json:"items"`
	ImportedAt time.Time `json:"imported_at"`
}

// Import stores snap, replacing any timeline with the same name, and marks
// it current.
func (s *Store) Import(ctx context.Context, snap *timeline.Snapshot) (int64, error) {
	ctx = ensureContext(ctx)
	if snap == nil {
		return 0, errors.New("import timeline: snapshot is nil")
	}
	if err := snap.Validate(); err != nil {
		return 0, fmt.Errorf("import timeline: %w", err)
	}
	name := strings.TrimSpace(snap.Name)
	if name == "" {
		return 0, errors.New("import timeline: name is required")
	}

	var id int64
	err := retryOnBusy(ctx, func() error {
		var txErr error
		id, txErr = s.importTx(ctx, name, snap)
		return txErr
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Store) importTx(ctx context.Context, name string, snap *timeline.Snapshot) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := deleteTimelineTx(ctx, tx, name); err != nil {
		return 0, err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE timelines SET is_current = 0`); err != nil {
		return 0, fmt.Errorf("clear current timeline: %w", err)
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO timelines (name, frame_rate, is_current, imported_at) VALUES (?, ?, 1, ?)`,
		name, snap.FrameRate, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("insert timeline: %w", err)
	}
	timelineID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	positions := map[timeline.TrackKind]int{}
	for _, track := range snap.Tracks {
		kind := track.Kind
		if kind == "" {
			kind = timeline.TrackVideo
		}
		positions[kind]++
		res, err := tx.ExecContext(ctx,
			`INSERT INTO tracks (timeline_id, kind, position, name) VALUES (?, ?, ?, ?)`,
			timelineID, string(kind), positions[kind], track.Name,
		)
		if err != nil {
			return 0, fmt.Errorf("insert track %q: %w", track.Name, err)
		}
		trackID, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("last insert id: %w", err)
		}
		for i, item := range track.Items {
			var (
				hasStyled int
				styled    sql.NullString
			)
			if item.Styled != nil {
				hasStyled = 1
				styled = sql.NullString{String: item.Styled.Text, Valid: true}
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO items (track_id, position, start_frame, end_frame, name, has_styled, styled_text)
                 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				trackID, i+1, item.Start, item.End, item.Name, hasStyled, styled,
			); err != nil {
				return 0, fmt.Errorf("insert item %d on track %q: %w", i+1, track.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	return timelineID, nil
}

func deleteTimelineTx(ctx context.Context, tx *sql.Tx, name string) error {
	var id int64
	err := tx.QueryRowContext(ctx, `SELECT id FROM timelines WHERE name = ?`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("find timeline %q: %w", name, err)
	}
	stmts := []string{
		`DELETE FROM items WHERE track_id IN (SELECT id FROM tracks WHERE timeline_id = ?)`,
		`DELETE FROM tracks WHERE timeline_id = ?`,
		`DELETE FROM timelines WHERE id = ?`,
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			return fmt.Errorf("replace timeline %q: %w", name, err)
		}
	}
	return nil
}

// Use marks the named timeline current.
func (s *Store) Use(ctx context.Context, name string) error {
	ctx = ensureContext(ctx)
	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin use tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		var id int64
		err = tx.QueryRowContext(ctx, `SELECT id FROM timelines WHERE name = ?`, name).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("timeline %q not found", name)
		}
		if err != nil {
			return fmt.Errorf("find timeline %q: %w", name, err)
		}
		if _, err := tx.ExecContext(ctx, `UPDATE timelines SET is_current = CASE WHEN id = ? THEN 1 ELSE 0 END`, id); err != nil {
			return fmt.Errorf("mark current timeline: %w", err)
		}
		return tx.Commit()
	})
}

// List returns every stored timeline ordered by name.
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, `
        SELECT t.id, t.name, t.frame_rate, t.is_current, t.imported_at,
               (SELECT COUNT(1) FROM tracks tr WHERE tr.timeline_id = t.id),
               (SELECT COUNT(1) FROM items i JOIN tracks tr ON tr.id = i.track_id WHERE tr.timeline_id = t.id)
        FROM timelines t ORDER BY t.name`)
	if err != nil {
		return nil, fmt.Errorf("list timelines: %w", err)
	}
	defer rows.Close()

	var summaries []Summary
	for rows.Next() {
		var (
			summary  Summary
			current  int
			imported string
		)
		if err := rows.Scan(&summary.ID, &summary.Name, &summary.FrameRate, &current, &imported, &summary.Tracks, &summary.Items); err != nil {
			return nil, fmt.Errorf("scan timeline: %w", err)
		}
		summary.Current = current == 1
		if ts, err := time.Parse(time.RFC3339Nano, imported); err == nil {
			summary.ImportedAt = ts
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

// Current implements timeline.Host over the stored current timeline.
func (s *Store) Current(ctx context.Context) (timeline.Timeline, error) {
	ctx = ensureContext(ctx)
	var (
		id   int64
		name string
		fps  float64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, frame_rate FROM timelines WHERE is_current = 1 ORDER BY id DESC LIMIT 1`,
	).Scan(&id, &name, &fps)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, timeline.ErrNoTimeline
	}
	if err != nil {
		return nil, fmt.Errorf("load current timeline: %w", err)
	}

	tl := &storedTimeline{store: s, ctx: ctx, id: id, name: name, fps: fps, tracks: map[timeline.TrackKind][]storedTrack{}}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, name FROM tracks WHERE timeline_id = ? ORDER BY kind, position`, id)
	if err != nil {
		return nil, fmt.Errorf("load tracks: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			track storedTrack
			kind  string
		)
		if err := rows.Scan(&track.id, &kind, &track.name); err != nil {
			return nil, fmt.Errorf("scan track: %w", err)
		}
		k := timeline.TrackKind(kind)
		tl.tracks[k] = append(tl.tracks[k], track)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load tracks: %w", err)
	}
	return tl, nil
}

// Export captures the current timeline as a snapshot.
func (s *Store) Export(ctx context.Context) (*timeline.Snapshot, error) {
	tl, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	return timeline.Capture(tl)
}
