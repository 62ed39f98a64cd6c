package midi

import (
	gomidi "gitlab.com/gomidi/midi/v2"

	"github.com/justyntemme/vst2go/pkg/vst2"
)

// Decode interprets a three byte channel message. Only note-on, note-off,
// control change and pitch bend are recognised; anything else reports
// false. A note-on with velocity 0 decodes as a note-off.
func Decode(data [3]byte, offset int32) (Event, bool) {
	msg := gomidi.Message(data[:])

	var ch, key, vel uint8
	switch {
	case msg.GetNoteStart(&ch, &key, &vel):
		return NoteOnEvent{BaseEvent{ch, offset}, key, vel}, true
	case msg.GetNoteEnd(&ch, &key):
		return NoteOffEvent{BaseEvent{ch, offset}, key, data[2] & 0x7f}, true
	}

	var ctrl, val uint8
	if msg.GetControlChange(&ch, &ctrl, &val) {
		return ControlChangeEvent{BaseEvent{ch, offset}, ctrl, val}, true
	}

	var rel int16
	var abs uint16
	if msg.GetPitchBend(&ch, &rel, &abs) {
		return PitchBendEvent{BaseEvent{ch, offset}, rel}, true
	}

	return nil, false
}

// FromVST decodes a host event. Non-MIDI events report false.
func FromVST(ev *vst2.Event) (Event, bool) {
	m := ev.MIDI()
	if m == nil {
		return nil, false
	}
	return Decode([3]byte{m.MIDIData[0], m.MIDIData[1], m.MIDIData[2]}, m.DeltaFrames)
}
