package main

import (
	"fmt"

	"textp2srt/internal/manual"
	"textp2srt/internal/timecode"
	"textp2srt/internal/timeline"
)

// readBlocks loads the manual file. A missing file is fatal for the command.
func readBlocks(path string) ([]string, error) {
	blocks, err := manual.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manual input: %w", err)
	}
	return blocks, nil
}

func clipTimes(elem timeline.Element) (string, string) {
	return timecode.Format(elem.Start), timecode.Format(elem.End)
}
