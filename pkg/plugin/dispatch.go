package plugin

import (
	"unsafe"

	"github.com/justyntemme/vst2go/pkg/framework/param"
	"github.com/justyntemme/vst2go/pkg/vst2"
)

var canDoInstrument = map[string]bool{
	vst2.CanDoReceiveEvents:      true,
	vst2.CanDoReceiveMidiEvent:   true,
	vst2.CanDoReceiveSysexEvents: true,
}

// canDoMaxLen bounds how far a capability string is read
const canDoMaxLen = 64

// Dispatch handles one host opcode. Unknown opcodes return 0 and change
// nothing. Close cannot be overridden by the descriptor's Dispatcher.
func (p *Instance) Dispatch(op vst2.PluginOpcode, index int32, value int64, ptr unsafe.Pointer, opt float32) int64 {
	if op == vst2.Close {
		return p.close()
	}
	p.checkOpen(op.String())

	if p.desc.Dispatcher != nil {
		if res, handled := p.desc.Dispatcher(op, index, value, ptr, opt); handled {
			return res
		}
	}

	switch op {
	case vst2.Open:
		p.log.Debug("%s: open", p.desc.Name)
		return 1

	// programs
	case vst2.SetProgram:
		p.setProgram(int(value))
		return 0
	case vst2.GetProgram:
		return int64(p.program)
	case vst2.GetProgramName:
		if !p.desc.HasPrograms() {
			return 0
		}
		vst2.CopyString(ptr, p.desc.Presets[p.program].Name, vst2.MaxProgNameLen)
		return 1
	case vst2.GetProgramNameIndexed:
		if index < 0 || int(index) >= len(p.desc.Presets) {
			return 0
		}
		vst2.CopyString(ptr, p.desc.Presets[index].Name, vst2.MaxProgNameLen)
		return 1
	case vst2.BeginSetProgram, vst2.EndSetProgram:
		return 0

	// controls
	case vst2.GetParamLabel:
		if c := p.control(index); c != nil {
			vst2.CopyString(ptr, c.Label, vst2.MaxLabelLen)
		}
		return 1
	case vst2.GetParamName:
		if c := p.control(index); c != nil {
			vst2.CopyString(ptr, c.Name, vst2.MaxNameLen)
		}
		return 1
	case vst2.GetParamDisplay:
		if c := p.control(index); c != nil {
			vst2.CopyDisplay(ptr, c.Format(p.bridge.Get(int(index))), vst2.MaxParamStrLen)
		}
		return 1
	case vst2.GetParameterProperties:
		if c := p.control(index); c != nil && ptr != nil {
			p.fillProperties((*vst2.ParameterProperties)(ptr), index)
		}
		return 1
	case vst2.CanBeAutomated:
		return 1

	// setup
	case vst2.SetSampleRate:
		p.setSampleRate(float64(opt))
		return 1
	case vst2.SetBlockSize:
		p.setBlockSize(int(value))
		return 1
	case vst2.SetBlockSizeAndSampleRate:
		p.setBlockSize(int(value))
		p.setSampleRate(float64(opt))
		return 1
	case vst2.SetProcessPrecision:
		if value != 0 {
			p.precision = vst2.PrecisionDouble
		} else {
			p.precision = vst2.PrecisionSingle
		}
		return 1
	case vst2.MainsChanged:
		p.mainsChanged(value != 0)
		return 0
	case vst2.StartProcess:
		p.setSampleRate(float64(p.host.Call(vst2.HostGetSampleRate, 0, 0, nil, 0)))
		p.setBlockSize(int(p.host.Call(vst2.HostGetBlockSize, 0, 0, nil, 0)))
		return 1
	case vst2.StopProcess:
		return 1
	case vst2.SetBypass:
		if p.desc.Bypass {
			p.bypass.Store(value != 0)
		}
		return 0
	case vst2.ConnectInput, vst2.ConnectOutput:
		return 1
	case vst2.GetInputProperties, vst2.GetOutputProperties:
		return 0
	case vst2.Identify:
		return 0

	// events
	case vst2.ProcessEvents:
		if ptr != nil {
			p.processEvents((*vst2.Events)(ptr))
		}
		return 1
	case vst2.GetMidiKeyName:
		return 1
	case vst2.CanDo:
		if !p.desc.IsInstrument() || ptr == nil {
			return 0
		}
		if canDoInstrument[vst2.ReadString(ptr, canDoMaxLen)] {
			return 1
		}
		return 0

	// identity
	case vst2.GetPlugCategory:
		return int64(p.desc.PlugCategory())
	case vst2.GetEffectName:
		vst2.CopyString(ptr, p.desc.Name, vst2.MaxEffectNameLen)
		return 1
	case vst2.GetVendorString:
		vst2.CopyString(ptr, p.desc.Vendor, vst2.MaxVendorStrLen)
		return 1
	case vst2.GetProductString:
		vst2.CopyString(ptr, p.desc.Product, vst2.MaxProductStrLen)
		return 1
	case vst2.GetVendorVersion:
		return int64(p.desc.Version)
	case vst2.GetAPIVersion:
		return vst2.APIVersion
	}

	p.log.Debug("%s: ignored opcode %s", p.desc.Name, op)
	return 0
}

// control resolves index to a declared or reserved unison control
func (p *Instance) control(index int32) *param.ControlSpec {
	if index < 0 || int(index) >= len(p.controls) {
		return nil
	}
	return &p.controls[index]
}

func (p *Instance) fillProperties(props *vst2.ParameterProperties, index int32) {
	c := &p.controls[index]
	props.StepFloat = 0.01
	props.SmallStepFloat = 0.01
	props.LargeStepFloat = 0.01
	vst2.CopyString(unsafe.Pointer(&props.Label[0]), c.Label, vst2.MaxLabelLen)
	props.Flags = vst2.ParamUsesFloatStep | vst2.ParamSupportsDisplayIndex
	props.MinInteger = 0
	props.MaxInteger = 1
	props.StepInteger = 1
	props.LargeStepInteger = 1
	vst2.CopyString(unsafe.Pointer(&props.ShortLabel[0]), c.ShortLabel, vst2.MaxShortLabelLen)
	props.DisplayIndex = int16(index)
	props.Category = 0
	props.NumParametersInCategory = 0
	vst2.CopyString(unsafe.Pointer(&props.CategoryLabel[0]), c.CategoryLabel, vst2.MaxCategLabelLen)
}
