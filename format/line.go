package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/objcexport/model"
)

// LineEncoder writes one tab separated line per declaration and member.
type LineEncoder struct {
	w     io.Writer
	namer Namer
	class *model.ClassModel
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

// WithNamer adds the exported name of each class as a column.
func (e *LineEncoder) WithNamer(namer Namer) *LineEncoder {
	e.namer = namer
	return e
}

func (e *LineEncoder) Encode(class *model.ClassModel) error {
	e.class = class
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	c := e.class

	fmt.Fprintf(&sb, "%s\t%s\t%s\t%s\n", c.Kind, c.Name, exportedName(e.namer, c), e.classModifiersStr())

	if c.SuperClass != nil {
		fmt.Fprintf(&sb, "extends\t%s\n", c.SuperClass)
	}
	for _, iface := range c.Interfaces {
		fmt.Fprintf(&sb, "implements\t%s\n", iface)
	}

	for _, entry := range c.EnumEntries {
		fmt.Fprintf(&sb, "entry\t%s\n", entry)
	}

	for _, f := range c.Constructors {
		fmt.Fprintf(&sb, "constructor\t%s\t%s\n",
			parametersStr(f),
			visibility(f.Visibility),
		)
	}

	for _, p := range c.Properties {
		fmt.Fprintf(&sb, "property\t%s\t%s\t%s\t%s\n",
			p.Name,
			p.Type,
			visibility(p.Visibility),
			propertyModifiersStr(p),
		)
	}

	for _, f := range c.Functions {
		fmt.Fprintf(&sb, "function\t%s\t%s\t%s\t%s\n",
			f.Name,
			f.ReturnType,
			parametersStr(f),
			visibility(f.Visibility),
		)
	}

	return []byte(sb.String()), nil
}

func (e *LineEncoder) classModifiersStr() string {
	mods := append([]string{visibility(e.class.Visibility)}, classModifiers(e.class)...)
	return strings.Join(mods, ",")
}

func propertyModifiersStr(p *model.PropertyModel) string {
	var mods []string
	if p.Mutable {
		mods = append(mods, "mutable")
	}
	if p.SetterVisibility != "" {
		mods = append(mods, "set:"+string(p.SetterVisibility))
	}
	if len(p.Overrides) > 0 {
		mods = append(mods, "override")
	}
	if len(mods) == 0 {
		return "-"
	}
	return strings.Join(mods, ",")
}

func parametersStr(f *model.FunctionModel) string {
	var parts []string
	if f.Receiver != nil {
		parts = append(parts, "receiver:"+f.Receiver.String())
	}
	for _, p := range f.Parameters {
		parts = append(parts, p.Type.String())
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ",")
}
