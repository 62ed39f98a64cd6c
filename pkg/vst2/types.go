package vst2

import "unsafe"

// Maximum byte widths of the string buffers the host hands to the plugin.
const (
	MaxProgNameLen   = 24
	MaxParamStrLen   = 8
	MaxVendorStrLen  = 64
	MaxProductStrLen = 64
	MaxEffectNameLen = 32
	MaxNameLen       = 64
	MaxLabelLen      = 64
	MaxShortLabelLen = 8
	MaxCategLabelLen = 24
)

// HostCallback is the plugin-to-host channel. A nil callback is allowed and
// behaves like a host that answers 0 to every request.
type HostCallback func(op HostOpcode, index int32, value int64, ptr unsafe.Pointer, opt float32) int64

// Call invokes the callback if set.
func (cb HostCallback) Call(op HostOpcode, index int32, value int64, ptr unsafe.Pointer, opt float32) int64 {
	if cb == nil {
		return 0
	}
	return cb(op, index, value, ptr, opt)
}

// Effect flags
const (
	FlagHasEditor          int32 = 1 << 0
	FlagCanReplacing       int32 = 1 << 4
	FlagProgramChunks      int32 = 1 << 5
	FlagIsSynth            int32 = 1 << 8
	FlagNoSoundInStop      int32 = 1 << 9
	FlagCanDoubleReplacing int32 = 1 << 12
)

// EffectMagic is the 'VstP' tag at the head of every effect record
const EffectMagic int32 = 'V'<<24 | 's'<<16 | 't'<<8 | 'P'

// Effect is the static part of the AEffect record the host reads after
// instantiation. Function pointers live in the loader shim, not here.
type Effect struct {
	Magic        int32
	NumPrograms  int32
	NumParams    int32
	NumInputs    int32
	NumOutputs   int32
	Flags        int32
	InitialDelay int32
	UniqueID     int32
	Version      int32
}

// IsSynth reports whether the synth flag is set.
func (e Effect) IsSynth() bool {
	return e.Flags&FlagIsSynth != 0
}

// Event types
const (
	EventTypeMIDI  int32 = 1
	EventTypeSysEx int32 = 6
)

// Event is the generic 32 byte event header. Events whose Type is
// EventTypeMIDI share their layout with MIDIEvent.
type Event struct {
	Type        int32
	ByteSize    int32
	DeltaFrames int32
	Flags       int32
	Data        [16]byte
}

// MIDIEvent is a short MIDI message delivered through ProcessEvents
type MIDIEvent struct {
	Type            int32
	ByteSize        int32
	DeltaFrames     int32
	Flags           int32
	NoteLength      int32
	NoteOffset      int32
	MIDIData        [4]byte
	Detune          int8
	NoteOffVelocity byte
	Reserved1       byte
	Reserved2       byte
}

// MIDI reinterprets the event as a MIDI event. It returns nil for other
// event types.
func (e *Event) MIDI() *MIDIEvent {
	if e == nil || e.Type != EventTypeMIDI {
		return nil
	}
	return (*MIDIEvent)(unsafe.Pointer(e))
}

// NewMIDIEvent builds a MIDI event carrying up to three data bytes.
func NewMIDIEvent(deltaFrames int32, data ...byte) *Event {
	ev := &MIDIEvent{
		Type:        EventTypeMIDI,
		ByteSize:    int32(unsafe.Sizeof(MIDIEvent{})),
		DeltaFrames: deltaFrames,
	}
	copy(ev.MIDIData[:3], data)
	return (*Event)(unsafe.Pointer(ev))
}

// Events is the payload of ProcessEvents: a count plus a list of event
// pointers. Only the first min(NumEvents, len(Events)) entries are read.
type Events struct {
	NumEvents int32
	Reserved  uintptr
	Events    []*Event
}

// NewEvents wraps evs in an event list.
func NewEvents(evs ...*Event) *Events {
	return &Events{NumEvents: int32(len(evs)), Events: evs}
}

// Each calls fn for every event in the list, skipping nil entries.
func (e *Events) Each(fn func(*Event)) {
	if e == nil {
		return
	}
	n := int(e.NumEvents)
	if n > len(e.Events) {
		n = len(e.Events)
	}
	for i := 0; i < n; i++ {
		if e.Events[i] != nil {
			fn(e.Events[i])
		}
	}
}

// Parameter property flags
const (
	ParamIsSwitch                int32 = 1 << 0
	ParamUsesIntegerMinMax       int32 = 1 << 1
	ParamUsesFloatStep           int32 = 1 << 2
	ParamUsesIntStep             int32 = 1 << 3
	ParamSupportsDisplayIndex    int32 = 1 << 4
	ParamSupportsDisplayCategory int32 = 1 << 5
	ParamCanRamp                 int32 = 1 << 6
)

// ParameterProperties is filled by GetParameterProperties
type ParameterProperties struct {
	StepFloat               float32
	SmallStepFloat          float32
	LargeStepFloat          float32
	Label                   [MaxLabelLen]byte
	Flags                   int32
	MinInteger              int32
	MaxInteger              int32
	StepInteger             int32
	LargeStepInteger        int32
	ShortLabel              [MaxShortLabelLen]byte
	DisplayIndex            int16
	Category                int16
	NumParametersInCategory int16
	Reserved                int16
	CategoryLabel           [MaxCategLabelLen]byte
	Future                  [16]byte
}
