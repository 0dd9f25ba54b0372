// Package format writes the program model in human and machine readable
// forms, for inspecting what the exporter sees.
package format

import (
	"encoding"

	"github.com/dhamidi/objcexport/model"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(class *model.ClassModel) error
}

// Namer resolves the Objective-C name of a class, or returns an error when
// the class is not exported under a name of its own.
type Namer func(class *model.ClassModel) (string, error)

// exportedName returns the name namer assigns to class, or "-".
func exportedName(namer Namer, class *model.ClassModel) string {
	if namer == nil {
		return "-"
	}
	name, err := namer(class)
	if err != nil {
		return "-"
	}
	return name
}

func classModifiers(c *model.ClassModel) []string {
	var mods []string
	if c.IsFinal {
		mods = append(mods, "final")
	}
	if c.IsAbstract {
		mods = append(mods, "abstract")
	}
	if c.External {
		mods = append(mods, "external")
	}
	return mods
}

func visibility(v model.Visibility) string {
	if v == "" {
		return string(model.VisibilityPublic)
	}
	return string(v)
}
