package timeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"textp2srt/internal/logging"
)

// Session is the explicit context object for one command invocation. It is
// built from the host once and must not outlive the command.
type Session struct {
	timeline Timeline
	logger   *slog.Logger
	fps      float64
	failures int
}

// Open resolves the active timeline and its frame rate.
func Open(ctx context.Context, host Host, logger *slog.Logger) (*Session, error) {
	if host == nil {
		return nil, ErrNoTimeline
	}
	tl, err := host.Current(ctx)
	if err != nil {
		if errors.Is(err, ErrNoTimeline) {
			return nil, err
		}
		return nil, fmt.Errorf("open timeline: %w", err)
	}
	if tl == nil {
		return nil, ErrNoTimeline
	}
	fps, err := tl.FrameRate()
	if err != nil {
		return nil, fmt.Errorf("read timeline frame rate: %w", err)
	}
	if fps <= 0 || math.IsNaN(fps) || math.IsInf(fps, 0) {
		return nil, fmt.Errorf("read timeline frame rate: invalid value %v", fps)
	}
	return &Session{
		timeline: tl,
		logger:   logging.NewComponentLogger(logger, "timeline"),
		fps:      fps,
	}, nil
}

// TimelineName returns the host's name for the active timeline.
func (s *Session) TimelineName() string {
	return s.timeline.Name()
}

// FrameRate returns the timeline frame rate used for frame conversion.
func (s *Session) FrameRate() float64 {
	return s.fps
}

// Failures counts optional lookups that failed and were replaced with
// defaults during this session.
func (s *Session) Failures() int {
	return s.failures
}

// TrackNames lists the names of all tracks of kind in index order.
func (s *Session) TrackNames(kind TrackKind) []string {
	count := s.timeline.TrackCount(kind)
	names := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		names = append(names, s.trackName(kind, i))
	}
	return names
}

// Elements returns every item on the video tracks named track, in track
// order then host item order. When withText is set, styled elements also
// carry their retrieved text.
func (s *Session) Elements(track string, withText bool) []Element {
	var out []Element
	count := s.timeline.TrackCount(TrackVideo)
	for i := 1; i <= count; i++ {
		if s.trackName(TrackVideo, i) != track {
			continue
		}
		items, err := s.timeline.Items(TrackVideo, i)
		if err != nil {
			s.degrade("track items", err, logging.Int("track_index", i))
			continue
		}
		for _, item := range items {
			if item == nil {
				continue
			}
			elem := Element{
				Index: len(out),
				Track: i,
				Start: float64(item.Start()) / s.fps,
				End:   float64(item.End()) / s.fps,
				Name:  s.itemName(item),
			}
			if styled := s.itemStyled(item); styled != nil {
				elem.Kind = KindStyledText
				elem.styled = styled
				if withText {
					elem.SourceText = s.styledText(styled)
				}
			}
			out = append(out, elem)
		}
	}
	return out
}

// SetStyledText writes value into the element's rich-text property.
func (s *Session) SetStyledText(elem Element, value string) error {
	if elem.styled == nil {
		return fmt.Errorf("element %d has no styled text", elem.Index)
	}
	if err := elem.styled.SetText(value); err != nil {
		s.degrade("set styled text", err, logging.Int("element_index", elem.Index))
		return err
	}
	return nil
}

func (s *Session) trackName(kind TrackKind, index int) string {
	name, err := s.timeline.TrackName(kind, index)
	if err != nil {
		s.degrade("track name", err, logging.Int("track_index", index))
		return ""
	}
	return name
}

func (s *Session) itemName(item Item) string {
	name, err := item.Name()
	if err != nil {
		s.degrade("item name", err)
		return ""
	}
	return name
}

func (s *Session) itemStyled(item Item) StyledText {
	styled, err := item.StyledText()
	if err != nil {
		s.degrade("styled text lookup", err)
		return nil
	}
	return styled
}

func (s *Session) styledText(styled StyledText) string {
	text, err := styled.Text()
	if err != nil {
		s.degrade("styled text read", err)
		return ""
	}
	return text
}

func (s *Session) degrade(lookup string, err error, attrs ...logging.Attr) {
	s.failures++
	attrs = append(attrs, logging.String("lookup", lookup), logging.Error(err))
	s.logger.Debug("host lookup failed; using default", logging.Args(attrs...)...)
}
