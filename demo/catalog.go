package demo

import "nodegraph/catalog"

// Graph kinds in the demo catalog.
const (
	KindNode  = "node"
	KindGroup = "group"
)

// Declarations is the built-in catalog, used when no catalog file is given.
var Declarations = []catalog.Declaration{
	{Kind: KindNode, Type: "io/in", Path: "Input/Output/Input"},
	{Kind: KindNode, Type: "io/out", Path: "Input/Output/Output"},
	{Kind: KindNode, Type: "math/add", Path: "Math/Add"},
	{Kind: KindNode, Type: "math/mul", Path: "Math/Multiply"},
	{Kind: KindNode, Type: "math/clamp", Path: "Math/Range/Clamp"},
	{Kind: KindNode, Type: "logic/and", Path: "Logic/And"},
	{Kind: KindNode, Type: "logic/not", Path: "Logic/Not"},
	{Kind: KindGroup, Type: "frame", Path: "Frame"},
}

// Register adds decls to reg, or the built-in catalog when decls is empty.
func Register(reg *catalog.Registry, decls []catalog.Declaration) {
	if len(decls) == 0 {
		decls = Declarations
	}
	reg.RegisterAll(decls...)
}
