// Package input turns raw terminal bytes into key and mouse events.
package input

import (
	"bufio"
	"bytes"
	"strconv"
)

// Key is a game-relevant key.
type Key int

const (
	KeyNone    Key = iota
	KeySpace       // Cast/reel, confirm
	KeyEnter       // Confirm
	KeyLeft        // Arrow left, A
	KeyRight       // Arrow right, D
	KeyRestart     // R
	KeyQuit        // Q, Ctrl-C
	KeyEscape
	KeyOther // Any other byte; still counts as activity
)

// Kind tells key events from mouse events.
type Kind int

const (
	KindKey Kind = iota
	KindMouseMove
	KindMouseClick
)

// Event is one decoded input. Col and Row are 1-based terminal cells and
// only set for mouse events.
type Event struct {
	Kind Kind
	Key  Key
	Col  int
	Row  int
}

// Stream delivers input bytes via a channel. Incomplete escape sequences
// are held back until the rest arrives.
type Stream struct {
	ch      chan byte
	pending []byte
	closed  bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 256)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// ReadEvents drains all available bytes from the stream (non-blocking) and
// decodes them.
func ReadEvents(s *Stream) []Event {
	buf := s.pending
	s.pending = nil
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	events, rest := Parse(buf)
	if len(rest) > 0 {
		s.pending = append([]byte(nil), rest...)
	}
	return events
}

// Parse decodes buf. rest holds a trailing escape sequence that is not
// complete yet.
func Parse(buf []byte) (events []Event, rest []byte) {
	for i := 0; i < len(buf); {
		b := buf[i]
		if b != '\x1b' {
			events = append(events, Event{Kind: KindKey, Key: byteKey(b)})
			i++
			continue
		}

		// A lone ESC at the end of a read is the Escape key.
		if i+1 == len(buf) {
			events = append(events, Event{Kind: KindKey, Key: KeyEscape})
			return events, nil
		}
		if buf[i+1] != '[' && buf[i+1] != 'O' {
			events = append(events, Event{Kind: KindKey, Key: KeyEscape})
			i++
			continue
		}

		ev, n, complete := parseSequence(buf[i:])
		if !complete {
			return events, buf[i:]
		}
		if ev.Kind != KindKey || ev.Key != KeyNone {
			events = append(events, ev)
		}
		i += n
	}
	return events, nil
}

// parseSequence decodes one CSI or SS3 sequence at the start of seq.
func parseSequence(seq []byte) (ev Event, n int, complete bool) {
	if len(seq) < 3 {
		return Event{}, 0, false
	}
	if seq[1] == 'O' {
		return Event{Kind: KindKey, Key: arrowKey(seq[2])}, 3, true
	}
	if seq[2] == '<' {
		return parseSGRMouse(seq)
	}

	// Skip parameter bytes up to the final byte.
	for j := 2; j < len(seq); j++ {
		c := seq[j]
		if c >= 0x40 && c <= 0x7e {
			return Event{Kind: KindKey, Key: arrowKey(c)}, j + 1, true
		}
	}
	return Event{}, 0, false
}

func arrowKey(final byte) Key {
	switch final {
	case 'C':
		return KeyRight
	case 'D':
		return KeyLeft
	default:
		return KeyNone
	}
}

// parseSGRMouse decodes ESC [ < button ; col ; row (M|m).
func parseSGRMouse(seq []byte) (Event, int, bool) {
	end := bytes.IndexAny(seq, "Mm")
	if end < 0 {
		return Event{}, 0, false
	}
	fields := bytes.Split(seq[3:end], []byte{';'})
	if len(fields) != 3 {
		return Event{Kind: KindKey, Key: KeyNone}, end + 1, true
	}
	var nums [3]int
	for i, f := range fields {
		v, err := strconv.Atoi(string(f))
		if err != nil {
			return Event{Kind: KindKey, Key: KeyNone}, end + 1, true
		}
		nums[i] = v
	}

	button, col, row := nums[0], nums[1], nums[2]
	ev := Event{Kind: KindMouseMove, Col: col, Row: row}
	const (
		motion = 32
		wheel  = 64
	)
	press := seq[end] == 'M'
	if press && button&(motion|wheel) == 0 && button&3 == 0 {
		ev.Kind = KindMouseClick
	}
	return ev, end + 1, true
}

func byteKey(b byte) Key {
	switch b {
	case ' ':
		return KeySpace
	case '\r', '\n':
		return KeyEnter
	case 'a', 'A':
		return KeyLeft
	case 'd', 'D':
		return KeyRight
	case 'r', 'R':
		return KeyRestart
	case 'q', 'Q', 0x03:
		return KeyQuit
	default:
		return KeyOther
	}
}
