// Package audio loads and plays the tracks a page indicator pages through.
package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Patterns lists the file patterns the decoders accept.
var Patterns = []string{"*.wav", "*.mp3", "*.flac"}

// Track is one page of the playlist.
type Track struct {
	Path  string
	Title string
}

func NewTrack(path string) Track {
	base := filepath.Base(path)
	return Track{
		Path:  path,
		Title: strings.TrimSuffix(base, filepath.Ext(base)),
	}
}

// Supported reports whether path has an extension we can decode.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".mp3", ".flac":
		return true
	}
	return false
}

// Collect expands paths into tracks. Directories contribute their supported
// files in name order (not recursively); files are taken as given, in
// argument order.
func Collect(paths []string) ([]Track, error) {
	var tracks []Track
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
		if !info.IsDir() {
			if !Supported(p) {
				return nil, fmt.Errorf("unsupported file type: %s", p)
			}
			tracks = append(tracks, NewTrack(p))
			continue
		}

		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, fmt.Errorf("read dir %s: %w", p, err)
		}
		var names []string
		for _, e := range entries {
			if !e.IsDir() && Supported(e.Name()) {
				names = append(names, e.Name())
			}
		}
		sort.Strings(names)
		for _, name := range names {
			tracks = append(tracks, NewTrack(filepath.Join(p, name)))
		}
	}
	return tracks, nil
}
