package config

import "time"

const (
	WindowWidth  = 640
	WindowHeight = 160
	WindowTitle  = "dotpager - ←/→ page, Enter play, Space pause, O open, Q quit"

	// Indicator geometry
	MaxDots         = 7
	CenterDots      = 3
	DotSize         = 10.0
	Spacing         = 10.0
	SlideDuration   = 150 * time.Millisecond
	SelectedColor   = "#ffffff"
	UnselectedColor = "#6b7080"

	// Audio
	LevelRingSize   = 8192
	SmoothingFactor = 0.6
	Tick            = true
	TickFrequency   = 1760.0
	TickVolume      = -2.0

	// Terminal
	TUISpacing = 1

	LogLevel  = "info"
	LogFormat = "console"
)
