package objc

type ValueKind int

const (
	ValueBool ValueKind = iota
	ValueChar
	ValueByte
	ValueShort
	ValueInt
	ValueLong
	ValueUByte
	ValueUShort
	ValueUInt
	ValueULong
	ValueFloat
	ValueDouble
	ValueHashCode
)

var valueNames = [...]string{
	ValueBool:     "BOOL",
	ValueChar:     "unichar",
	ValueByte:     "int8_t",
	ValueShort:    "int16_t",
	ValueInt:      "int32_t",
	ValueLong:     "int64_t",
	ValueUByte:    "uint8_t",
	ValueUShort:   "uint16_t",
	ValueUInt:     "uint32_t",
	ValueULong:    "uint64_t",
	ValueFloat:    "float",
	ValueDouble:   "double",
	ValueHashCode: "NSUInteger",
}

// String returns the canonical C name of the value kind.
func (k ValueKind) String() string {
	if k < 0 || int(k) >= len(valueNames) {
		return "ValueKind(?)"
	}
	return valueNames[k]
}

// Primitive returns the foreign type a bridged value of kind k has.
func (k ValueKind) Primitive() PrimitiveType {
	return PrimitiveType{Name: k.String()}
}
