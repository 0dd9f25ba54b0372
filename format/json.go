package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/objcexport/model"
)

type JSONEncoder struct {
	w     io.Writer
	namer Namer
	class *model.ClassModel
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

// WithNamer adds the exported name of each class to the output.
func (e *JSONEncoder) WithNamer(namer Namer) *JSONEncoder {
	e.namer = namer
	return e
}

func (e *JSONEncoder) Encode(class *model.ClassModel) error {
	e.class = class
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(e.buildClassData(), "", "  ")
}

type jsonClass struct {
	Name         string         `json:"name"`
	SimpleName   string         `json:"simpleName"`
	Package      string         `json:"package"`
	ExportedName string         `json:"exportedName,omitempty"`
	Kind         string         `json:"kind"`
	Visibility   string         `json:"visibility"`
	Modifiers    []string       `json:"modifiers,omitempty"`
	SuperClass   string         `json:"superClass,omitempty"`
	Interfaces   []string       `json:"interfaces,omitempty"`
	Entries      []string       `json:"entries,omitempty"`
	Constructors []jsonFunction `json:"constructors,omitempty"`
	Properties   []jsonProperty `json:"properties,omitempty"`
	Functions    []jsonFunction `json:"functions,omitempty"`
}

type jsonProperty struct {
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	Visibility string   `json:"visibility"`
	Mutable    bool     `json:"mutable,omitempty"`
	Overrides  []string `json:"overrides,omitempty"`
}

type jsonFunction struct {
	Name       string          `json:"name,omitempty"`
	Receiver   string          `json:"receiver,omitempty"`
	Parameters []jsonParameter `json:"parameters,omitempty"`
	ReturnType string          `json:"returnType,omitempty"`
	Visibility string          `json:"visibility"`
	Overrides  []string        `json:"overrides,omitempty"`
}

type jsonParameter struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

func (e *JSONEncoder) buildClassData() jsonClass {
	c := e.class
	data := jsonClass{
		Name:       c.Name,
		SimpleName: c.SimpleName,
		Package:    c.Package,
		Kind:       string(c.Kind),
		Visibility: visibility(c.Visibility),
		Modifiers:  classModifiers(c),
		Entries:    c.EnumEntries,
	}
	if e.namer != nil {
		if name := exportedName(e.namer, c); name != "-" {
			data.ExportedName = name
		}
	}
	if c.SuperClass != nil {
		data.SuperClass = c.SuperClass.String()
	}
	for _, iface := range c.Interfaces {
		data.Interfaces = append(data.Interfaces, iface.String())
	}
	for _, f := range c.Constructors {
		ctor := buildFunction(f)
		ctor.Name, ctor.ReturnType = "", ""
		data.Constructors = append(data.Constructors, ctor)
	}
	for _, p := range c.Properties {
		data.Properties = append(data.Properties, jsonProperty{
			Name:       p.Name,
			Type:       p.Type.String(),
			Visibility: visibility(p.Visibility),
			Mutable:    p.Mutable,
			Overrides:  p.Overrides,
		})
	}
	for _, f := range c.Functions {
		data.Functions = append(data.Functions, buildFunction(f))
	}
	return data
}

func buildFunction(f *model.FunctionModel) jsonFunction {
	fn := jsonFunction{
		Name:       f.Name,
		ReturnType: f.ReturnType.String(),
		Visibility: visibility(f.Visibility),
		Overrides:  f.Overrides,
	}
	if f.Receiver != nil {
		fn.Receiver = f.Receiver.String()
	}
	for _, p := range f.Parameters {
		fn.Parameters = append(fn.Parameters, jsonParameter{Name: p.Name, Type: p.Type.String()})
	}
	return fn
}
