package ebustl

import (
	"fmt"
	"math"
)

// FrameRate describes the frame rate a GSI's DFC field (or a caller's
// fps_override) resolves to, and whether it uses SMPTE drop-frame
// semantics (29.97/59.94).
type FrameRate struct {
	Nominal   int     // 25, 30, or 60
	DropFrame bool    // true for 29.97/59.94
	CustomFPS float64 // set by WithFPSOverride; takes precedence over Nominal/DropFrame for FPS()
}

var (
	FrameRate25   = FrameRate{Nominal: 25}
	FrameRate30   = FrameRate{Nominal: 30}
	FrameRate2997 = FrameRate{Nominal: 30, DropFrame: true}
	FrameRate5994 = FrameRate{Nominal: 60, DropFrame: true}
)

// FPS returns the real frame rate as a float (29.97 for drop-frame 30,
// 59.94 for drop-frame 60, exact integer otherwise, or the caller's
// fps_override verbatim).
func (f FrameRate) FPS() float64 {
	if f.CustomFPS > 0 {
		return f.CustomFPS
	}
	if f.DropFrame {
		return float64(f.Nominal) * 1000 / 1001
	}
	return float64(f.Nominal)
}

func mathRound(v float64) float64 { return math.Round(v) }

// dropPerMinute is the number of frame numbers skipped at the start of
// every non-exempt minute.
func (f FrameRate) dropPerMinute() int64 {
	if f.Nominal == 60 {
		return 4
	}
	return 2
}

func (f FrameRate) framesPer10Min() int64 {
	return int64(f.Nominal)*600 - 9*f.dropPerMinute()
}

// FrameRateFromDFC detects a frame rate from a GSI Disk Format Code
// string. An unrecognized DFC with no override is ErrUnrecognizedFrameRate
// (§7, fatal).
func FrameRateFromDFC(dfc string) (FrameRate, error) {
	switch dfc {
	case "STL25.01":
		return FrameRate25, nil
	case "STL30.01":
		return FrameRate30, nil
	default:
		return FrameRate{}, fmt.Errorf("ebustl: detecting frame rate from DFC %q failed: %w", dfc, ErrUnrecognizedFrameRate)
	}
}

// FramesToUs converts an (hh, mm, ss, ff) tuple to microseconds at the
// given frame rate (§4.8). For drop-frame rates, ff values below
// dropPerMinute() (0..1 at 29.97, 0..3 at 59.94) at the start of a
// non-exempt minute do not exist as real timecodes;
// FramesToUs treats them as the nearest valid frame (ff=dropPerMinute),
// matching what UsToSMPTE will report back for that instant.
func FramesToUs(hh, mm, ss, ff int, fr FrameRate) (int64, error) {
	if hh < 0 || hh > 23 || mm < 0 || mm > 59 || ss < 0 || ss > 59 || ff < 0 || ff >= fr.Nominal {
		return 0, fmt.Errorf("ebustl: converting timecode %02d:%02d:%02d:%02d to microseconds failed: out of range", hh, mm, ss, ff)
	}

	if !fr.DropFrame {
		us := int64(hh*3600+mm*60+ss)*1_000_000 + int64(mathRound(float64(ff)*1_000_000/fr.FPS()))
		return us, nil
	}

	totalMinutes := int64(hh*60 + mm)
	if ss == 0 && totalMinutes%10 != 0 && int64(ff) < fr.dropPerMinute() {
		ff = int(fr.dropPerMinute())
	}

	rawFrames := (totalMinutes*60+int64(ss))*int64(fr.Nominal) + int64(ff)
	dropped := fr.dropPerMinute() * (totalMinutes - totalMinutes/10)
	frameNumber := rawFrames - dropped

	return roundDiv(frameNumber*1001*1000, int64(fr.Nominal)), nil
}

// UsToSMPTE converts microseconds to a SMPTE timecode string at the
// given frame rate, using ';' to separate seconds and frames for
// drop-frame rates and ':' otherwise (§4.8).
func UsToSMPTE(us int64, fr FrameRate) string {
	hh, mm, ss, ff := usToTimecode(us, fr)
	sep := ":"
	if fr.DropFrame {
		sep = ";"
	}
	return fmt.Sprintf("%02d:%02d:%02d%s%02d", hh, mm, ss, sep, ff)
}

func usToTimecode(us int64, fr FrameRate) (hh, mm, ss, ff int) {
	if !fr.DropFrame {
		totalFrames := int64(mathRound(float64(us) * fr.FPS() / 1_000_000))
		ff = int(totalFrames % int64(fr.Nominal))
		totalSeconds := totalFrames / int64(fr.Nominal)
		return splitSeconds(totalSeconds, ff)
	}

	frameNumber := roundDiv(us*int64(fr.Nominal), 1001*1000)
	return dropFrameNumberToTimecode(frameNumber, fr)
}

// dropFrameNumberToTimecode is the standard SMPTE ST 12-1 drop-frame
// frame-number to timecode conversion: every 10-minute block skips the
// first dropPerMinute() frame numbers of each of its 9 non-exempt
// minutes.
func dropFrameNumberToTimecode(frameNumber int64, fr FrameRate) (hh, mm, ss, ff int) {
	framesPer10Min := fr.framesPer10Min()
	framesPerMin := int64(fr.Nominal) * 60
	drop := fr.dropPerMinute()

	d := frameNumber / framesPer10Min
	m := frameNumber % framesPer10Min
	if m < drop {
		m += drop
	} else {
		m += drop * ((m - drop) / (framesPerMin - drop))
	}

	total := d*int64(fr.Nominal)*600 + m // nominal (non-drop) frame count for a full 10-minute block
	// total is now a nominal (non-drop) frame count; split normally.
	ff = int(total % int64(fr.Nominal))
	totalSeconds := total / int64(fr.Nominal)
	return splitSeconds(totalSeconds, ff)
}

func splitSeconds(totalSeconds int64, ff int) (hh, mm, ss, ffOut int) {
	ss = int(totalSeconds % 60)
	totalMinutes := totalSeconds / 60
	mm = int(totalMinutes % 60)
	hh = int(totalMinutes / 60)
	return hh, mm, ss, ff
}

func roundDiv(num, den int64) int64 {
	if den == 0 {
		return 0
	}
	if num < 0 {
		return -roundDiv(-num, den)
	}
	return (num + den/2) / den
}
