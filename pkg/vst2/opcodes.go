// Package vst2 holds the binary contract of the legacy VST 2.4 plugin ABI:
// opcode numbers, fixed string widths, event layouts and the host callback
// signature. Values here are wire constants and must never be renumbered.
package vst2

import "fmt"

// PluginOpcode is a request sent by the host to the plugin dispatcher
type PluginOpcode int32

// Plugin opcodes understood by the dispatcher
const (
	Open                      PluginOpcode = 0
	Close                     PluginOpcode = 1
	SetProgram                PluginOpcode = 2
	GetProgram                PluginOpcode = 3
	GetProgramName            PluginOpcode = 5
	GetParamLabel             PluginOpcode = 6
	GetParamDisplay           PluginOpcode = 7
	GetParamName              PluginOpcode = 8
	SetSampleRate             PluginOpcode = 10
	SetBlockSize              PluginOpcode = 11
	MainsChanged              PluginOpcode = 12
	Identify                  PluginOpcode = 22
	ProcessEvents             PluginOpcode = 25
	CanBeAutomated            PluginOpcode = 26
	GetProgramNameIndexed     PluginOpcode = 29
	ConnectInput              PluginOpcode = 31
	ConnectOutput             PluginOpcode = 32
	GetInputProperties        PluginOpcode = 33
	GetOutputProperties       PluginOpcode = 34
	GetPlugCategory           PluginOpcode = 35
	SetBlockSizeAndSampleRate PluginOpcode = 43
	SetBypass                 PluginOpcode = 44
	GetEffectName             PluginOpcode = 45
	GetVendorString           PluginOpcode = 47
	GetProductString          PluginOpcode = 48
	GetVendorVersion          PluginOpcode = 49
	CanDo                     PluginOpcode = 51
	GetTailSize               PluginOpcode = 52
	GetParameterProperties    PluginOpcode = 56
	GetAPIVersion             PluginOpcode = 58
	GetMidiKeyName            PluginOpcode = 66
	BeginSetProgram           PluginOpcode = 67
	EndSetProgram             PluginOpcode = 68
	StartProcess              PluginOpcode = 71
	StopProcess               PluginOpcode = 72
	SetProcessPrecision       PluginOpcode = 77
)

var pluginOpcodeNames = map[PluginOpcode]string{
	Open:                      "Open",
	Close:                     "Close",
	SetProgram:                "SetProgram",
	GetProgram:                "GetProgram",
	GetProgramName:            "GetProgramName",
	GetParamLabel:             "GetParamLabel",
	GetParamDisplay:           "GetParamDisplay",
	GetParamName:              "GetParamName",
	SetSampleRate:             "SetSampleRate",
	SetBlockSize:              "SetBlockSize",
	MainsChanged:              "MainsChanged",
	Identify:                  "Identify",
	ProcessEvents:             "ProcessEvents",
	CanBeAutomated:            "CanBeAutomated",
	GetProgramNameIndexed:     "GetProgramNameIndexed",
	ConnectInput:              "ConnectInput",
	ConnectOutput:             "ConnectOutput",
	GetInputProperties:        "GetInputProperties",
	GetOutputProperties:       "GetOutputProperties",
	GetPlugCategory:           "GetPlugCategory",
	SetBlockSizeAndSampleRate: "SetBlockSizeAndSampleRate",
	SetBypass:                 "SetBypass",
	GetEffectName:             "GetEffectName",
	GetVendorString:           "GetVendorString",
	GetProductString:          "GetProductString",
	GetVendorVersion:          "GetVendorVersion",
	CanDo:                     "CanDo",
	GetTailSize:               "GetTailSize",
	GetParameterProperties:    "GetParameterProperties",
	GetAPIVersion:             "GetAPIVersion",
	GetMidiKeyName:            "GetMidiKeyName",
	BeginSetProgram:           "BeginSetProgram",
	EndSetProgram:             "EndSetProgram",
	StartProcess:              "StartProcess",
	StopProcess:               "StopProcess",
	SetProcessPrecision:       "SetProcessPrecision",
}

// String returns the opcode name, or its number for opcodes outside the
// handled set.
func (op PluginOpcode) String() string {
	if name, ok := pluginOpcodeNames[op]; ok {
		return name
	}
	return fmt.Sprintf("PluginOpcode(%d)", int32(op))
}

// Known reports whether op is one of the named opcodes.
func (op PluginOpcode) Known() bool {
	_, ok := pluginOpcodeNames[op]
	return ok
}

// HostOpcode is a request sent by the plugin through the host callback
type HostOpcode int32

// Host opcodes used by the plugin
const (
	HostGetSampleRate HostOpcode = 16
	HostGetBlockSize  HostOpcode = 17
	HostUpdateDisplay HostOpcode = 42
)

// APIVersion is reported for GetAPIVersion (VST 2.4)
const APIVersion = 2400

// Category is the plugin category reported by GetPlugCategory
type Category int32

const (
	CategoryUnknown Category = 0
	CategoryEffect  Category = 1
	CategorySynth   Category = 2
)

func (c Category) String() string {
	switch c {
	case CategoryEffect:
		return "Effect"
	case CategorySynth:
		return "Synth"
	default:
		return "Unknown"
	}
}

// Precision selects the sample format used by the render entry point
type Precision int32

const (
	PrecisionSingle Precision = 0
	PrecisionDouble Precision = 1
)

// Capability strings answered by CanDo for instruments
const (
	CanDoReceiveEvents      = "receiveVstEvents"
	CanDoReceiveMidiEvent   = "receiveVstMidiEvent"
	CanDoReceiveSysexEvents = "receiveVstSysexEvent"
)
