package meta

// Kind identifies the primitive category of a class. Reference types
// (classes, interfaces, arrays) all carry KindRef.
type Kind uint8

const (
	KindRef Kind = iota
	KindBoolean
	KindByte
	KindShort
	KindChar
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindVoid
)

var kindNames = [...]string{
	KindRef:     "reference",
	KindBoolean: "boolean",
	KindByte:    "byte",
	KindShort:   "short",
	KindChar:    "char",
	KindInt:     "int",
	KindLong:    "long",
	KindFloat:   "float",
	KindDouble:  "double",
	KindVoid:    "void",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsPrimitive reports whether k names a primitive kind, void included.
func (k Kind) IsPrimitive() bool {
	return k != KindRef
}
