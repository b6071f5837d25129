package replay

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/plus3/blockfall/piece"
)

const (
	// Magic opens every binary replay.
	Magic = "BFRP"
	// Version1 is the binary layout written by this package.
	Version1 uint32 = 1
)

var (
	ErrBadMagic           = errors.New("not a replay file")
	ErrUnsupportedVersion = errors.New("unsupported replay version")
	ErrCorrupt            = errors.New("corrupt replay")
)

// Codec serializes sessions.
type Codec interface {
	Encode(w io.Writer, s *Session) error
	Decode(r io.Reader) (*Session, error)
	// Ext is the file extension, dot included, used by FileStore.
	Ext() string
}

// Binary is the compact little-endian format.
var Binary Codec = binaryCodec{}

// JSON is the human-readable format.
var JSON Codec = jsonCodec{}

// fileHeader is written once at the start of a binary replay. It is
// followed by VariantLen bytes of variant name and ActionCount records.
type fileHeader struct {
	Magic       [4]byte
	Version     uint32
	Seed        [piece.SeedSize]byte
	Width       uint16
	Height      uint16
	QueueLength uint16
	LockDelay   uint16
	Frames      uint32
	VariantLen  uint8
	ActionCount uint32
}

type actionRecord struct {
	Frame  uint32
	Action uint8
}

type binaryCodec struct{}

func (binaryCodec) Ext() string { return ".bfrp" }

func (binaryCodec) Encode(w io.Writer, s *Session) error {
	if len(s.Variant) > math.MaxUint8 {
		return fmt.Errorf("variant name too long: %d bytes", len(s.Variant))
	}
	for _, n := range []int{s.Width, s.Height, s.QueueLength, s.LockDelay} {
		if n < 0 || n > math.MaxUint16 {
			return fmt.Errorf("session setting %d out of range", n)
		}
	}

	header := fileHeader{
		Version:     Version1,
		Seed:        s.Seed,
		Width:       uint16(s.Width),
		Height:      uint16(s.Height),
		QueueLength: uint16(s.QueueLength),
		LockDelay:   uint16(s.LockDelay),
		Frames:      uint32(s.Frames),
		VariantLen:  uint8(len(s.Variant)),
		ActionCount: uint32(len(s.Actions)),
	}
	copy(header.Magic[:], Magic)

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := io.WriteString(w, s.Variant); err != nil {
		return fmt.Errorf("failed to write variant: %w", err)
	}

	records := make([]actionRecord, len(s.Actions))
	for i, e := range s.Actions {
		records[i] = actionRecord{Frame: uint32(e.Frame), Action: uint8(e.Action)}
	}
	if err := binary.Write(w, binary.LittleEndian, records); err != nil {
		return fmt.Errorf("failed to write actions: %w", err)
	}
	return nil
}

func (binaryCodec) Decode(r io.Reader) (*Session, error) {
	var header fileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if string(header.Magic[:]) != Magic {
		return nil, ErrBadMagic
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, header.Version)
	}

	name := make([]byte, header.VariantLen)
	if _, err := io.ReadFull(r, name); err != nil {
		return nil, fmt.Errorf("failed to read variant: %w", err)
	}

	s := &Session{
		Variant:     string(name),
		Seed:        header.Seed,
		Width:       int(header.Width),
		Height:      int(header.Height),
		QueueLength: int(header.QueueLength),
		LockDelay:   int(header.LockDelay),
		Frames:      int(header.Frames),
		Actions:     make([]Entry, 0, min(header.ActionCount, 1<<16)),
	}

	var rec actionRecord
	for i := range header.ActionCount {
		if err := binary.Read(r, binary.LittleEndian, &rec); err != nil {
			return nil, fmt.Errorf("failed to read action %d: %w", i, err)
		}
		a := Action(rec.Action)
		if !a.Valid() {
			return nil, fmt.Errorf("%w: action %d has type %d", ErrCorrupt, i, rec.Action)
		}
		s.Actions = append(s.Actions, Entry{Frame: int(rec.Frame), Action: a})
	}
	return s, nil
}

type jsonCodec struct{}

func (jsonCodec) Ext() string { return ".json" }

type jsonSession struct {
	*Session
	Seed string `json:"seed"`
}

func (jsonCodec) Encode(w io.Writer, s *Session) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonSession{Session: s, Seed: hex.EncodeToString(s.Seed[:])})
}

func (jsonCodec) Decode(r io.Reader) (*Session, error) {
	in := jsonSession{Session: &Session{}}
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	seed, err := hex.DecodeString(in.Seed)
	if err != nil || len(seed) > piece.SeedSize {
		return nil, fmt.Errorf("%w: bad seed %q", ErrCorrupt, in.Seed)
	}
	in.Session.Seed = piece.Seed(seed)
	return in.Session, nil
}
