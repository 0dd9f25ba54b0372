package oracle

import (
	"github.com/dhamidi/objcexport/model"
	"github.com/dhamidi/objcexport/objc"
)

var primitives = map[string]objc.ValueKind{
	model.BooleanName: objc.ValueBool,
	model.CharName:    objc.ValueChar,
	model.ByteName:    objc.ValueByte,
	model.ShortName:   objc.ValueShort,
	model.IntName:     objc.ValueInt,
	model.LongName:    objc.ValueLong,
	model.UByteName:   objc.ValueUByte,
	model.UShortName:  objc.ValueUShort,
	model.UIntName:    objc.ValueUInt,
	model.ULongName:   objc.ValueULong,
	model.FloatName:   objc.ValueFloat,
	model.DoubleName:  objc.ValueDouble,
}

// DefaultBridge passes non-null primitives by value, returns Unit as void
// and everything else by reference.
type DefaultBridge struct {
	exposure Exposure
}

func NewBridge(exposure Exposure) *DefaultBridge {
	return &DefaultBridge{exposure: exposure}
}

func (b *DefaultBridge) ValueParameters(f *model.FunctionModel) []Parameter {
	var params []Parameter
	if f.Receiver != nil && b.exposure.ClassIfCategory(categoryCandidate(f)) == nil {
		params = append(params, Parameter{Name: "receiver", Type: *f.Receiver, Kind: ParameterReceiver})
	}
	for _, p := range f.Parameters {
		kind := ParameterRegular
		if f.Accessor == model.AccessorSetter {
			kind = ParameterSetterValue
		}
		params = append(params, Parameter{Name: p.Name, Type: p.Type, Kind: kind})
	}
	return params
}

func (b *DefaultBridge) BridgeMethod(f *model.FunctionModel) MethodBridge {
	params := b.ValueParameters(f)
	bridge := MethodBridge{Parameters: make([]ValueBridge, len(params))}
	for i, p := range params {
		bridge.Parameters[i] = bridgeValue(p.Type)
	}

	switch {
	case f.IsConstructor:
		bridge.Return = ValueBridge{Kind: BridgeReference}
	case isVoid(f.ReturnType):
		bridge.Return = ValueBridge{Kind: BridgeVoid}
	case isHashCode(f):
		bridge.Return = ValueBridge{Kind: BridgeValue, Value: objc.ValueHashCode}
	default:
		bridge.Return = bridgeValue(f.ReturnType)
	}
	return bridge
}

func bridgeValue(t model.TypeModel) ValueBridge {
	if !t.Nullable && !t.Parameter {
		if k, ok := primitives[t.Name]; ok {
			return ValueBridge{Kind: BridgeValue, Value: k}
		}
	}
	return ValueBridge{Kind: BridgeReference}
}

func isVoid(t model.TypeModel) bool {
	return !t.Nullable && (t.Name == model.UnitName || t.Name == model.NothingName)
}

func isHashCode(f *model.FunctionModel) bool {
	return f.Name == "hashCode" && !f.IsTopLevel() && f.Accessor == model.AccessorNone &&
		len(f.Parameters) == 0 && f.ReturnType.Name == model.IntName && !f.ReturnType.Nullable
}

// categoryCandidate returns the declaration whose category membership
// decides how f's receiver is passed: accessors follow their property.
func categoryCandidate(f *model.FunctionModel) model.Declaration {
	if f.Accessor != model.AccessorNone {
		return f.Property
	}
	return f
}
