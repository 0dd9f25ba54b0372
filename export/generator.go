// Package export translates a program model into the text of an
// Objective-C header.
//
// A Generator owns all state of one pass: which declarations were emitted,
// which are still queued, the names and signatures handed out so far and the
// stubs produced. Translate walks the module once and then drains the queue
// of declarations discovered through type references.
package export

import (
	"fmt"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/objcexport/model"
	"github.com/dhamidi/objcexport/oracle"
)

var log = commonlog.GetLogger("objcexport.export")

type Option func(g *Generator)

// WithPrefix sets the prefix of every top-level Objective-C name. It
// defaults to the module name.
func WithPrefix(prefix string) Option {
	return func(g *Generator) { g.prefix = prefix }
}

// WithMaxFunctionArity sets the largest function type arity mapped to a
// block.
func WithMaxFunctionArity(n int) Option {
	return func(g *Generator) { g.maxArity = n }
}

func WithExposure(e oracle.Exposure) Option {
	return func(g *Generator) { g.exposure = e }
}

func WithBridge(b oracle.Bridge) Option {
	return func(g *Generator) { g.bridge = b }
}

func WithNamer(n oracle.Namer) Option {
	return func(g *Generator) { g.namer = n }
}

type Generator struct {
	program  *model.Program
	exposure oracle.Exposure
	bridge   oracle.Bridge
	namer    oracle.Namer
	prefix   string
	maxArity int

	mappers map[string]*customMapper
	hidden  map[string]bool

	emitted    map[string]bool
	pending    []*model.ClassModel
	queued     map[string]bool
	extensions map[string][]model.Declaration
	topLevel   map[string][]model.Declaration

	classNames    names
	protocolNames names

	methodSignatures   map[string][]string
	propertySignatures map[string][]string

	stubs    []*Stub
	warnings []string
	used     bool
}

// New returns a generator for program. Oracles that are not supplied through
// options get the defaults from package oracle.
func New(program *model.Program, opts ...Option) *Generator {
	g := &Generator{
		program:  program,
		prefix:   program.Module,
		maxArity: model.MaxFunctionArity,

		mappers:            make(map[string]*customMapper),
		hidden:             make(map[string]bool),
		emitted:            make(map[string]bool),
		queued:             make(map[string]bool),
		extensions:         make(map[string][]model.Declaration),
		topLevel:           make(map[string][]model.Declaration),
		classNames:         newNames(),
		protocolNames:      newNames(),
		methodSignatures:   make(map[string][]string),
		propertySignatures: make(map[string][]string),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.exposure == nil {
		g.exposure = oracle.NewExposure(program, g.isSpecial)
	}
	if g.bridge == nil {
		g.bridge = oracle.NewBridge(g.exposure)
	}
	if g.namer == nil {
		g.namer = oracle.NewNamer(g.prefix, program, g.exposure, g.bridge)
	}
	for _, reserved := range []string{g.namer.RootName(), g.namer.MutableSetName(), g.namer.MutableDictionaryName()} {
		g.classNames.taken[reserved] = true
	}
	g.registerMappers()
	return g
}

// Translate produces the header for the whole program. A generator can only
// translate once.
func (g *Generator) Translate() (*Header, error) {
	if g.used {
		return nil, errors.New("generator already used")
	}
	g.used = true

	g.collectTopLevel()

	for _, c := range g.program.ModuleClasses() {
		if !g.exposure.ShouldBeExposed(c) {
			continue
		}
		if err := g.translate(c); err != nil {
			return nil, err
		}
	}

	for _, name := range sortedKeys(g.extensions) {
		if err := g.translateExtensions(g.program.Class(name), g.extensions[name]); err != nil {
			return nil, err
		}
	}

	for _, pkg := range sortedKeys(g.topLevel) {
		if err := g.translateNamespace(pkg, g.topLevel[pkg]); err != nil {
			return nil, err
		}
	}

	for len(g.pending) > 0 {
		c := g.pending[0]
		g.pending = g.pending[1:]
		if err := g.translate(c); err != nil {
			return nil, err
		}
	}

	log.Infof("translated %d declarations with %d warnings", len(g.stubs), len(g.warnings))
	return g.header(), nil
}

// collectTopLevel fills the extension buckets from the exposure's category
// members and puts every other exposed top-level member into the namespace
// bucket of its package.
func (g *Generator) collectTopLevel() {
	for _, c := range g.program.Classes() {
		if members := g.exposure.CategoryMembers(c); len(members) > 0 {
			g.extensions[c.Name] = members
		}
	}

	for _, pkg := range g.program.Packages {
		if model.IsBuiltinPackage(pkg.Name) {
			continue
		}
		var members []model.Declaration
		for _, f := range pkg.Functions {
			members = append(members, f)
		}
		for _, p := range pkg.Properties {
			members = append(members, p)
		}
		sort.SliceStable(members, func(i, j int) bool { return members[i].ID() < members[j].ID() })

		for _, m := range members {
			if !g.exposure.ShouldBeExposedMember(m) || g.exposure.ClassIfCategory(m) != nil {
				continue
			}
			g.topLevel[pkg.Name] = append(g.topLevel[pkg.Name], m)
		}
	}
}

func (g *Generator) translate(c *model.ClassModel) error {
	if c.IsInterface() {
		return g.translateInterface(c)
	}
	return g.translateClass(c)
}

// enqueue schedules c for translation unless it was already emitted or
// queued.
func (g *Generator) enqueue(c *model.ClassModel) {
	if g.emitted[c.Name] || g.queued[c.Name] {
		return
	}
	g.queued[c.Name] = true
	g.pending = append(g.pending, c)
	log.Debugf("discovered %s", c.Name)
}

func (g *Generator) warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	g.warnings = append(g.warnings, msg)
	log.Warning(msg)
}

// Warnings returns the non-fatal problems found during translation.
func (g *Generator) Warnings() []string {
	return g.warnings
}

// Stubs returns the declarations emitted so far, in completion order.
func (g *Generator) Stubs() []*Stub {
	return g.stubs
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
