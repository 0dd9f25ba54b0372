package export

import "github.com/dhamidi/objcexport/model"

// names hands out unique identifiers within one Objective-C namespace.
type names struct {
	byKey map[string]string
	taken map[string]bool
}

func newNames() names {
	return names{byKey: make(map[string]string), taken: make(map[string]bool)}
}

// assign returns the name for key, claiming candidate (with underscores
// appended until it is free) on first use.
func (n names) assign(key, candidate string) string {
	if name, ok := n.byKey[key]; ok {
		return name
	}
	name := candidate
	for n.taken[name] {
		name += "_"
	}
	n.taken[name] = true
	n.byKey[key] = name
	return name
}

// ClassName returns the Objective-C name of the class c. Asking twice
// returns the same name.
func (g *Generator) ClassName(c *model.ClassModel) (string, error) {
	if !g.exposure.ShouldBeExposed(c) {
		return "", notExposed(c, "")
	}
	return g.classNames.assign(c.Name, g.namer.ClassOrProtocolName(c)), nil
}

// ProtocolName is ClassName for interfaces. Protocols live in their own
// namespace.
func (g *Generator) ProtocolName(c *model.ClassModel) (string, error) {
	if !g.exposure.ShouldBeExposed(c) {
		return "", notExposed(c, "")
	}
	return g.protocolNames.assign(c.Name, g.namer.ClassOrProtocolName(c)), nil
}

func (g *Generator) nameOf(c *model.ClassModel) (string, error) {
	if c.IsInterface() {
		return g.ProtocolName(c)
	}
	return g.ClassName(c)
}

func (g *Generator) namespaceName(pkg string) string {
	return g.classNames.assign("package "+pkg, g.namer.PackageName(pkg))
}
