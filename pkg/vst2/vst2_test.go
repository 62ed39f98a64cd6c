package vst2

import (
	"strings"
	"testing"
	"unsafe"
)

func TestCopyStringBounded(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		max   int
		want  string
		wrote int
	}{
		{"short", "Drive", MaxLabelLen, "Drive", 5},
		{"exact", "12345678", MaxShortLabelLen, "12345678", 8},
		{"truncated", "A very long product name", MaxShortLabelLen, "A very l", 8},
		{"empty", "", MaxNameLen, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// guard bytes after the field must survive
			buf := make([]byte, tt.max+4)
			for i := range buf {
				buf[i] = 0xAA
			}

			n := CopyString(unsafe.Pointer(&buf[0]), tt.src, tt.max)
			if n != tt.wrote {
				t.Errorf("wrote %d bytes, want %d", n, tt.wrote)
			}
			if got := string(buf[:n]); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			for i := tt.max; i < len(buf); i++ {
				if buf[i] != 0xAA {
					t.Fatalf("byte %d past the limit was overwritten", i)
				}
			}
			// no terminator is written after a short copy
			if n < tt.max && buf[n] != 0xAA {
				t.Errorf("unexpected terminator at %d", n)
			}
		})
	}
}

func TestCopyDisplayTerminated(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"0.50", "0.50"},
		{"1234567", "1234567"},
		{"-12.345678 dB", "-12.345"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			buf := make([]byte, MaxParamStrLen+2)
			for i := range buf {
				buf[i] = 0xAA
			}

			n := CopyDisplay(unsafe.Pointer(&buf[0]), tt.src, MaxParamStrLen)
			if n > MaxParamStrLen {
				t.Fatalf("wrote %d bytes, limit is %d", n, MaxParamStrLen)
			}
			if buf[n-1] != 0 {
				t.Error("missing terminator")
			}
			if got := GoString(buf[:n]); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if buf[MaxParamStrLen] != 0xAA || buf[MaxParamStrLen+1] != 0xAA {
				t.Error("guard bytes overwritten")
			}
		})
	}
}

func TestCopyNilPointer(t *testing.T) {
	if n := CopyString(nil, "x", MaxNameLen); n != 0 {
		t.Errorf("CopyString(nil) = %d", n)
	}
	if n := CopyDisplay(nil, "x", MaxParamStrLen); n != 0 {
		t.Errorf("CopyDisplay(nil) = %d", n)
	}
	if s := ReadString(nil, 10); s != "" {
		t.Errorf("ReadString(nil) = %q", s)
	}
}

func TestReadString(t *testing.T) {
	p := CString(CanDoReceiveMidiEvent)
	if got := ReadString(p, 64); got != CanDoReceiveMidiEvent {
		t.Errorf("got %q", got)
	}
	if got := ReadString(p, 7); got != "receive" {
		t.Errorf("bounded read got %q", got)
	}
}

func TestEventLayout(t *testing.T) {
	if s := unsafe.Sizeof(Event{}); s != 32 {
		t.Errorf("Event size = %d, want 32", s)
	}
	if s := unsafe.Sizeof(MIDIEvent{}); s != unsafe.Sizeof(Event{}) {
		t.Errorf("MIDIEvent size = %d, want %d", s, unsafe.Sizeof(Event{}))
	}

	ev := NewMIDIEvent(12, 0x90, 60, 100)
	m := ev.MIDI()
	if m == nil {
		t.Fatal("MIDI() returned nil for a MIDI event")
	}
	if m.DeltaFrames != 12 || m.MIDIData[0] != 0x90 || m.MIDIData[1] != 60 || m.MIDIData[2] != 100 {
		t.Errorf("unexpected event contents %+v", *m)
	}

	other := &Event{Type: EventTypeSysEx}
	if other.MIDI() != nil {
		t.Error("sysex event reinterpreted as MIDI")
	}
}

func TestEventsEachBounded(t *testing.T) {
	a := NewMIDIEvent(0, 0x90, 60, 1)
	b := NewMIDIEvent(0, 0x80, 60, 0)

	var seen int
	evs := &Events{NumEvents: 5, Events: []*Event{a, nil, b}}
	evs.Each(func(*Event) { seen++ })
	if seen != 2 {
		t.Errorf("visited %d events, want 2", seen)
	}

	seen = 0
	evs = &Events{NumEvents: 1, Events: []*Event{a, b}}
	evs.Each(func(*Event) { seen++ })
	if seen != 1 {
		t.Errorf("visited %d events, want 1", seen)
	}

	var nilEvents *Events
	nilEvents.Each(func(*Event) { t.Error("nil list yielded an event") })
}

func TestOpcodeNames(t *testing.T) {
	if SetProgram.String() != "SetProgram" {
		t.Errorf("got %s", SetProgram)
	}
	unknown := PluginOpcode(9999)
	if unknown.Known() {
		t.Error("9999 reported as known")
	}
	if !strings.Contains(unknown.String(), "9999") {
		t.Errorf("got %s", unknown)
	}
	if GetAPIVersion != 58 || SetProcessPrecision != 77 || CanDo != 51 {
		t.Error("opcode numbers changed")
	}
}

func TestEffectMagic(t *testing.T) {
	m := uint32(EffectMagic)
	b := []byte{byte(m >> 24), byte(m >> 16), byte(m >> 8), byte(m)}
	if string(b) != "VstP" {
		t.Errorf("magic spells %q", b)
	}
	e := Effect{Flags: FlagCanReplacing | FlagIsSynth}
	if !e.IsSynth() {
		t.Error("IsSynth() = false")
	}
}

func TestHostCallbackNil(t *testing.T) {
	var cb HostCallback
	if v := cb.Call(HostGetSampleRate, 0, 0, nil, 0); v != 0 {
		t.Errorf("nil callback returned %d", v)
	}
}
