package export

import (
	"io"
	"strings"
)

// Header is a complete Objective-C header.
type Header struct {
	lines []string
}

// Lines returns the header text line by line, without line terminators.
func (h *Header) Lines() []string {
	return h.lines
}

func (h *Header) String() string {
	var sb strings.Builder
	h.WriteTo(&sb)
	return sb.String()
}

// WriteTo writes the header with a newline after every line.
func (h *Header) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, line := range h.lines {
		n, err := io.WriteString(w, line+"\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (g *Generator) header() *Header {
	var classes, protocols []string
	for _, s := range g.stubs {
		switch s.Kind {
		case StubClass:
			classes = append(classes, s.Name)
		case StubProtocol:
			protocols = append(protocols, s.Name)
		}
	}

	h := &Header{}
	add := func(lines ...string) { h.lines = append(h.lines, lines...) }

	add("#import <Foundation/Foundation.h>", "")
	if len(classes) > 0 {
		add("@class "+strings.Join(classes, ", ")+";", "")
	}
	if len(protocols) > 0 {
		add("@protocol "+strings.Join(protocols, ", ")+";", "")
	}
	add("NS_ASSUME_NONNULL_BEGIN", "")

	for _, block := range g.boilerplate() {
		add(block...)
		add("")
	}
	for _, s := range g.stubs {
		add(s.Lines...)
		add("")
	}

	add("NS_ASSUME_NONNULL_END")
	return h
}

// boilerplate returns the fixed declarations every header starts with: the
// root class, its copying category and the mutable collection wrappers.
func (g *Generator) boilerplate() [][]string {
	root := g.namer.RootName()
	set := g.namer.MutableSetName()
	dict := g.namer.MutableDictionaryName()
	return [][]string{
		{
			swiftNameAttribute("KotlinBase"),
			"@interface " + root + " : NSObject",
			"- (instancetype)init " + unavailable + ";",
			"+ (instancetype)new " + unavailable + ";",
			"+ (void)initialize __attribute__((objc_requires_super));",
			"@end;",
		},
		{
			"@interface " + root + " (" + root + "Copying) <NSCopying>",
			"@end;",
		},
		{
			swiftNameAttribute("KotlinMutableSet"),
			"@interface " + set + "<ObjectType> : NSMutableSet<ObjectType>",
			"@end;",
		},
		{
			swiftNameAttribute("KotlinMutableDictionary"),
			"@interface " + dict + "<KeyType, ObjectType> : NSMutableDictionary<KeyType, ObjectType>",
			"@end;",
		},
	}
}
