package export

import (
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/dhamidi/objcexport/model"
	"github.com/dhamidi/objcexport/objc"
)

type StubKind int

const (
	StubClass StubKind = iota
	StubProtocol
	StubCategory
)

func (k StubKind) String() string {
	switch k {
	case StubClass:
		return "class"
	case StubProtocol:
		return "protocol"
	case StubCategory:
		return "category"
	}
	return "unknown"
}

// Stub is one finished @interface or @protocol block.
type Stub struct {
	Kind StubKind
	Name string
	// Source is the declaration or package the stub was produced from.
	Source string
	Lines  []string
}

type memberLine struct {
	key  string
	text string
}

func sortMemberLines(lines []memberLine) {
	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].key != lines[j].key {
			return lines[i].key < lines[j].key
		}
		return lines[i].text < lines[j].text
	})
}

func (g *Generator) translateClass(c *model.ClassModel) error {
	if g.emitted[c.Name] {
		return nil
	}
	g.emitted[c.Name] = true

	name, err := g.ClassName(c)
	if err != nil {
		return err
	}

	superName := g.namer.RootName()
	var super *model.ClassModel
	for s := g.program.SuperClass(c); s != nil; s = g.program.SuperClass(s) {
		if g.exposure.ShouldBeExposed(s) {
			super = s
			break
		}
	}
	if super != nil {
		if err := g.translateClass(super); err != nil {
			return err
		}
		if superName, err = g.ClassName(super); err != nil {
			return err
		}
	}

	protocols, err := g.conformances(c)
	if err != nil {
		return err
	}

	var lines []string
	if c.IsFinal {
		lines = append(lines, "__attribute__((objc_subclassing_restricted))")
	}
	lines = append(lines, swiftNameAttribute(g.namer.SwiftName(c)))
	lines = append(lines, "@interface "+name+" : "+superName+protocols)

	present := make(map[string]bool)
	var ctors []memberLine
	for _, ctor := range c.Constructors {
		if !g.exposure.ShouldBeExposedMember(ctor) {
			continue
		}
		sel := g.namer.Selector(ctor)
		if !c.IsArray() {
			present[sel] = true
		}
		sigs, err := g.MethodSignatures(ctor)
		if err != nil {
			return err
		}
		for _, s := range sigs {
			ctors = append(ctors, memberLine{key: sel, text: s + ";"})
		}
	}
	sortMemberLines(ctors)
	lines = appendMemberLines(lines, ctors)

	special, err := g.specialKindLines(c, name)
	if err != nil {
		return err
	}
	lines = append(lines, special...)

	if super != nil {
		suppressed, err := g.suppressedConstructors(super, present)
		if err != nil {
			return err
		}
		lines = append(lines, suppressed...)
	}

	members, err := g.memberLines(classMembers(c))
	if err != nil {
		return errors.Wrapf(err, "translating %s", c.Name)
	}
	lines = append(lines, members...)
	lines = append(lines, "@end;")

	g.addStub(&Stub{Kind: StubClass, Name: name, Source: c.Name, Lines: lines})
	return nil
}

func (g *Generator) specialKindLines(c *model.ClassModel, name string) ([]string, error) {
	switch {
	case c.IsArray():
		return []string{
			"- (instancetype)init " + unavailable + ";",
			"+ (instancetype)new " + unavailable + ";",
		}, nil
	case c.IsObject():
		accessor := g.namer.SingletonAccessorName(c)
		return []string{
			"+ (instancetype)alloc " + unavailable + ";",
			"+ (instancetype)allocWithZone:(struct _NSZone *)zone " + unavailable + ";",
			"+ (instancetype)" + accessor + " " + swiftNameAttribute("init()") + ";",
		}, nil
	case c.IsEnum():
		lines := []string{
			"+ (instancetype)alloc " + unavailable + ";",
			"+ (instancetype)allocWithZone:(struct _NSZone *)zone " + unavailable + ";",
		}
		self := objc.ClassType{Name: name}
		for _, entry := range c.EnumEntries {
			accessor := g.namer.EnumCaseAccessorName(c, entry)
			lines = append(lines, "@property (class, readonly) "+self.Render(accessor)+" "+swiftNameAttribute(accessor)+";")
		}
		return lines, nil
	}
	return nil, nil
}

// suppressedConstructors marks the constructors of super that c does not
// redeclare as unavailable.
func (g *Generator) suppressedConstructors(super *model.ClassModel, present map[string]bool) ([]string, error) {
	var suppressed []memberLine
	for _, ctor := range super.Constructors {
		if !g.exposure.ShouldBeExposedMember(ctor) {
			continue
		}
		sel := g.namer.Selector(ctor)
		if present[sel] {
			continue
		}
		sigs, err := g.MethodSignatures(ctor)
		if err != nil {
			return nil, err
		}
		for _, s := range sigs {
			suppressed = append(suppressed, memberLine{key: sel, text: s + " " + unavailable + ";"})
		}
		if sel == "init" {
			suppressed = append(suppressed, memberLine{key: "new", text: "+ (instancetype)new " + unavailable + ";"})
		}
	}
	sortMemberLines(suppressed)
	return appendMemberLines(nil, suppressed), nil
}

func (g *Generator) translateInterface(c *model.ClassModel) error {
	if g.emitted[c.Name] {
		return nil
	}
	g.emitted[c.Name] = true

	name, err := g.ProtocolName(c)
	if err != nil {
		return err
	}
	protocols, err := g.conformances(c)
	if err != nil {
		return err
	}

	lines := []string{
		swiftNameAttribute(g.namer.SwiftName(c)),
		"@protocol " + name + protocols,
		"@required",
	}
	members, err := g.memberLines(classMembers(c))
	if err != nil {
		return errors.Wrapf(err, "translating %s", c.Name)
	}
	lines = append(lines, members...)
	lines = append(lines, "@end;")

	g.addStub(&Stub{Kind: StubProtocol, Name: name, Source: c.Name, Lines: lines})
	return nil
}

// conformances translates the exposed interfaces of c and returns the
// protocol list of its declaration, with a leading space, or "".
func (g *Generator) conformances(c *model.ClassModel) (string, error) {
	var names []string
	for _, ref := range c.Interfaces {
		iface := g.program.Class(ref.Name)
		if !g.exposure.ShouldBeExposed(iface) {
			continue
		}
		if err := g.translateInterface(iface); err != nil {
			return "", err
		}
		name, err := g.ProtocolName(iface)
		if err != nil {
			return "", err
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return "", nil
	}
	return " <" + strings.Join(names, ", ") + ">", nil
}

// translateExtensions declares the extension members of owner in a
// category.
func (g *Generator) translateExtensions(owner *model.ClassModel, members []model.Declaration) error {
	if err := g.translateClass(owner); err != nil {
		return err
	}
	name, err := g.ClassName(owner)
	if err != nil {
		return err
	}
	lines := []string{"@interface " + name + " (Extensions)"}
	body, err := g.memberLines(members)
	if err != nil {
		return errors.Wrapf(err, "translating extensions of %s", owner.Name)
	}
	lines = append(lines, body...)
	lines = append(lines, "@end;")

	g.addStub(&Stub{Kind: StubCategory, Name: name + " (Extensions)", Source: owner.Name, Lines: lines})
	return nil
}

// translateNamespace declares the top-level members of pkg as class members
// of a final class named after the package.
func (g *Generator) translateNamespace(pkg string, members []model.Declaration) error {
	name := g.namespaceName(pkg)
	lines := []string{
		"__attribute__((objc_subclassing_restricted))",
		swiftNameAttribute(g.namer.PackageSwiftName(pkg)),
		"@interface " + name + " : " + g.namer.RootName(),
	}
	body, err := g.memberLines(members)
	if err != nil {
		return errors.Wrapf(err, "translating package %s", pkg)
	}
	lines = append(lines, body...)
	lines = append(lines, "@end;")

	g.addStub(&Stub{Kind: StubClass, Name: name, Source: pkg, Lines: lines})
	return nil
}

func classMembers(c *model.ClassModel) []model.Declaration {
	var members []model.Declaration
	for _, p := range c.Properties {
		members = append(members, p)
	}
	for _, f := range c.Functions {
		members = append(members, f)
	}
	return members
}

// memberLines composes the declarations of the exposed members: properties
// first, then methods, each sorted by external name.
func (g *Generator) memberLines(members []model.Declaration) ([]string, error) {
	var props, methods []memberLine
	addMethod := func(f *model.FunctionModel) error {
		sigs, err := g.ownSignatures(f)
		if err != nil {
			return err
		}
		key := g.namer.Selector(g.exposure.BaseMethods(f)[0])
		for _, s := range sigs {
			methods = append(methods, memberLine{key: key, text: s + ";"})
		}
		return nil
	}

	for _, m := range members {
		if !g.exposure.ShouldBeExposedMember(m) {
			continue
		}
		switch m := m.(type) {
		case *model.FunctionModel:
			if err := addMethod(m); err != nil {
				return nil, err
			}
		case *model.PropertyModel:
			if !g.exposure.IsObjCProperty(m) {
				if err := addMethod(m.Getter()); err != nil {
					return nil, err
				}
				if setter := m.Setter(); setter != nil && g.exposure.ShouldBeExposedMember(setter) {
					if err := addMethod(setter); err != nil {
						return nil, err
					}
				}
				continue
			}
			sigs, err := g.ownSignatures(m)
			if err != nil {
				return nil, err
			}
			key := g.namer.PropertyName(g.exposure.BaseProperties(m)[0])
			for _, s := range sigs {
				props = append(props, memberLine{key: key, text: s + ";"})
			}
		case *model.ClassModel:
			return nil, errors.AssertionFailedf("nested declaration %s in member list", m.Name)
		default:
			return nil, errors.AssertionFailedf("unknown declaration %T", m)
		}
	}

	sortMemberLines(props)
	sortMemberLines(methods)
	return appendMemberLines(appendMemberLines(nil, props), methods), nil
}

func appendMemberLines(lines []string, members []memberLine) []string {
	for _, m := range members {
		lines = append(lines, m.text)
	}
	return lines
}

func (g *Generator) addStub(s *Stub) {
	g.stubs = append(g.stubs, s)
	log.Debugf("emitted %s %s", s.Kind, s.Name)
}
