package oracle

import (
	"strings"
	"unicode"

	"github.com/iancoleman/strcase"

	"github.com/dhamidi/objcexport/model"
)

// DefaultNamer derives Objective-C and Swift names from source names, adding
// a module prefix to every top-level Objective-C identifier.
type DefaultNamer struct {
	prefix   string
	program  *model.Program
	exposure Exposure
	bridge   Bridge

	selectors map[string]map[string]string
	assigned  map[string]string
}

func NewNamer(prefix string, program *model.Program, exposure Exposure, bridge Bridge) *DefaultNamer {
	return &DefaultNamer{
		prefix:    prefix,
		program:   program,
		exposure:  exposure,
		bridge:    bridge,
		selectors: make(map[string]map[string]string),
		assigned:  make(map[string]string),
	}
}

func (n *DefaultNamer) ClassOrProtocolName(c *model.ClassModel) string {
	return n.prefix + n.SwiftName(c)
}

func (n *DefaultNamer) SwiftName(c *model.ClassModel) string {
	name := strings.ReplaceAll(c.SimpleName, ".", "")
	if model.IsBuiltinPackage(c.Package) {
		return "Kotlin" + name
	}
	return name
}

func (n *DefaultNamer) PackageName(pkg string) string {
	return n.prefix + n.PackageSwiftName(pkg)
}

func (n *DefaultNamer) PackageSwiftName(pkg string) string {
	last := pkg
	if i := strings.LastIndex(pkg, "."); i >= 0 {
		last = pkg[i+1:]
	}
	if last == "" {
		last = "root"
	}
	return strcase.ToCamel(last) + "Kt"
}

func (n *DefaultNamer) RootName() string              { return n.prefix + "Base" }
func (n *DefaultNamer) MutableSetName() string        { return n.prefix + "MutableSet" }
func (n *DefaultNamer) MutableDictionaryName() string { return n.prefix + "MutableDictionary" }

func (n *DefaultNamer) SingletonAccessorName(c *model.ClassModel) string {
	simple := c.SimpleName
	if i := strings.LastIndex(simple, "."); i >= 0 {
		simple = simple[i+1:]
	}
	return mangle(lowerFirst(simple))
}

// EnumCaseAccessorName converts an entry such as DARK_BLUE to darkBlue.
func (n *DefaultNamer) EnumCaseAccessorName(c *model.ClassModel, entry string) string {
	return mangle(strcase.ToLowerCamel(strings.ToLower(entry)))
}

func (n *DefaultNamer) PropertyName(p *model.PropertyModel) string {
	if isReservedProperty(p.Name) {
		return p.Name + "_"
	}
	return p.Name
}

func (n *DefaultNamer) Selector(f *model.FunctionModel) string {
	if sel, ok := n.assigned[f.ID()]; ok {
		return sel
	}
	sel := n.unique(f, n.candidateSelector(f))
	n.assigned[f.ID()] = sel
	return sel
}

func (n *DefaultNamer) candidateSelector(f *model.FunctionModel) string {
	switch f.Accessor {
	case model.AccessorGetter:
		if hasReceiver(n.bridge.ValueParameters(f)) {
			return mangle(n.PropertyName(f.Property)) + ":"
		}
		return mangle(n.PropertyName(f.Property))
	case model.AccessorSetter:
		if hasReceiver(n.bridge.ValueParameters(f)) {
			return "set" + upperFirst(n.PropertyName(f.Property)) + ":value:"
		}
		return "set" + upperFirst(n.PropertyName(f.Property)) + ":"
	}

	if sel, ok := anyMethodSelector(f); ok {
		return sel
	}

	params := n.bridge.ValueParameters(f)
	var base string
	if f.IsConstructor {
		base = "init"
		if owner := n.program.Class(f.Owner); owner != nil && owner.IsArray() {
			base = "array"
		}
		if len(params) > 0 {
			base += "With"
		}
	} else {
		base = mangle(f.Name)
	}
	if len(params) == 0 {
		return base
	}

	var sb strings.Builder
	for i, p := range params {
		switch {
		case i > 0:
			sb.WriteString(p.Name)
		case p.Kind == ParameterReceiver:
			sb.WriteString(base)
		default:
			sb.WriteString(base + upperFirst(p.Name))
		}
		sb.WriteString(":")
	}
	return sb.String()
}

// unique appends underscores to the selector name until no other member of
// the same owner uses it. Category members share the scope of the class they
// extend.
func (n *DefaultNamer) unique(f *model.FunctionModel, sel string) string {
	scope := f.Owner
	if c := n.exposure.ClassIfCategory(categoryCandidate(f)); c != nil {
		scope = c.Name
	} else if scope == "" {
		scope = "pkg:" + f.Package
	}
	taken := n.selectors[scope]
	if taken == nil {
		taken = make(map[string]string)
		n.selectors[scope] = taken
	}
	for {
		owner, used := taken[sel]
		if !used || owner == f.ID() {
			break
		}
		if i := strings.Index(sel, ":"); i >= 0 {
			sel = sel[:i] + "_" + sel[i:]
		} else {
			sel += "_"
		}
	}
	taken[sel] = f.ID()
	return sel
}

func (n *DefaultNamer) SwiftMethodName(f *model.FunctionModel) string {
	if f.Accessor != model.AccessorNone {
		params := n.bridge.ValueParameters(f)
		if !hasReceiver(params) {
			return n.PropertyName(f.Property)
		}
		if f.Accessor == model.AccessorSetter {
			return "set" + upperFirst(n.PropertyName(f.Property)) + swiftLabels(params, false)
		}
		return n.PropertyName(f.Property) + swiftLabels(params, false)
	}
	if sel, ok := anyMethodSelector(f); ok {
		return strings.TrimSuffix(sel, ":") + swiftLabels(n.bridge.ValueParameters(f), true)
	}
	name := f.Name
	if f.IsConstructor {
		name = "init"
	}
	return name + swiftLabels(n.bridge.ValueParameters(f), false)
}

func swiftLabels(params []Parameter, unlabeled bool) string {
	var sb strings.Builder
	sb.WriteString("(")
	for _, p := range params {
		if unlabeled || p.Kind == ParameterReceiver {
			sb.WriteString("_:")
		} else {
			sb.WriteString(p.Name + ":")
		}
	}
	sb.WriteString(")")
	return sb.String()
}

func hasReceiver(params []Parameter) bool {
	return len(params) > 0 && params[0].Kind == ParameterReceiver
}

// anyMethodSelector maps the members every object has to their NSObject
// counterparts.
func anyMethodSelector(f *model.FunctionModel) (string, bool) {
	if f.IsTopLevel() || f.IsConstructor || f.Accessor != model.AccessorNone || f.Receiver != nil {
		return "", false
	}
	switch {
	case f.Name == "toString" && len(f.Parameters) == 0:
		return "description", true
	case f.Name == "hashCode" && len(f.Parameters) == 0:
		return "hash", true
	case f.Name == "equals" && len(f.Parameters) == 1:
		return "isEqual:", true
	}
	return "", false
}

var reservedProperties = map[string]bool{
	"description":      true,
	"debugDescription": true,
	"hash":             true,
	"class":            true,
	"superclass":       true,
}

func isReservedProperty(name string) bool {
	return reservedProperties[name]
}

var methodFamilies = []string{"alloc", "copy", "mutableCopy", "new", "init"}

// mangle prefixes names that Objective-C would place in a memory-management
// method family.
func mangle(name string) string {
	for _, family := range methodFamilies {
		if !strings.HasPrefix(name, family) {
			continue
		}
		rest := name[len(family):]
		if rest == "" || !unicode.IsLower(rune(rest[0])) {
			return "do" + upperFirst(name)
		}
	}
	return name
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
