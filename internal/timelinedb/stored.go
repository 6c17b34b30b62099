package timelinedb

import (
	"context"
	"database/sql"
	"fmt"

	"textp2srt/internal/timeline"
)

type storedTrack struct {
	id   int64
	name string
}

// storedTimeline answers the timeline query surface from the database. Track
// metadata is loaded once; items are read per request.
type storedTimeline struct {
	store  *Store
	ctx    context.Context
	id     int64
	name   string
	fps    float64
	tracks map[timeline.TrackKind][]storedTrack
}

func (t *storedTimeline) Name() string { return t.name }

func (t *storedTimeline) FrameRate() (float64, error) { return t.fps, nil }

func (t *storedTimeline) TrackCount(kind timeline.TrackKind) int { return len(t.tracks[kind]) }

func (t *storedTimeline) track(kind timeline.TrackKind, index int) (storedTrack, error) {
	tracks := t.tracks[kind]
	if index < 1 || index > len(tracks) {
		return storedTrack{}, fmt.Errorf("%s track %d out of range (1..%d)", kind, index, len(tracks))
	}
	return tracks[index-1], nil
}

func (t *storedTimeline) TrackName(kind timeline.TrackKind, index int) (string, error) {
	track, err := t.track(kind, index)
	if err != nil {
		return "", err
	}
	return track.name, nil
}

func (t *storedTimeline) Items(kind timeline.TrackKind, index int) ([]timeline.Item, error) {
	track, err := t.track(kind, index)
	if err != nil {
		return nil, err
	}
	rows, err := t.store.db.QueryContext(t.ctx,
		`SELECT id, start_frame, end_frame, name, has_styled, styled_text FROM items WHERE track_id = ? ORDER BY position`,
		track.id,
	)
	if err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}
	defer rows.Close()

	var items []timeline.Item
	for rows.Next() {
		var (
			item      storedItem
			hasStyled int
			styled    sql.NullString
		)
		if err := rows.Scan(&item.id, &item.start, &item.end, &item.name, &hasStyled, &styled); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		item.timeline = t
		item.hasStyled = hasStyled == 1
		item.text = styled.String
		items = append(items, &item)
	}
	return items, rows.Err()
}

type storedItem struct {
	timeline  *storedTimeline
	id        int64
	start     int64
	end       int64
	name      string
	hasStyled bool
	text      string
}

func (i *storedItem) Start() int64 { return i.start }

func (i *storedItem) End() int64 { return i.end }

func (i *storedItem) Name() (string, error) { return i.name, nil }

func (i *storedItem) StyledText() (timeline.StyledText, error) {
	if !i.hasStyled {
		return nil, nil
	}
	return &storedStyled{item: i}, nil
}

type storedStyled struct {
	item *storedItem
}

func (s *storedStyled) Text() (string, error) { return s.item.text, nil }

func (s *storedStyled) SetText(value string) error {
	store := s.item.timeline.store
	res, err := store.execWithRetry(s.item.timeline.ctx,
		`UPDATE items SET styled_text = ? WHERE id = ? AND has_styled = 1`, value, s.item.id)
	if err != nil {
		return fmt.Errorf("set styled text: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("set styled text: item %d no longer exists", s.item.id)
	}
	s.item.text = value
	return nil
}
