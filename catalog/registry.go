package catalog

import (
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Registry collects declarations for every graph kind and caches one tree
// per kind. It is meant to be filled once at start-up; registering after a
// kind has been built invalidates that kind's cache.
type Registry struct {
	logger *zap.Logger
	decls  map[string][]Declaration
	trees  map[string]*Entry
	last   map[string]filtered
}

// filtered remembers the latest filter answered for a kind so the next,
// narrower query can start from it.
type filtered struct {
	text string // lower-cased
	tree *Entry
}

// NewRegistry creates an empty registry. A nil logger disables logging.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		logger: logger,
		decls:  make(map[string][]Declaration),
		trees:  make(map[string]*Entry),
		last:   make(map[string]filtered),
	}
}

// Register declares nodeType under path for kind.
func (r *Registry) Register(kind, nodeType, path string) {
	r.RegisterAll(Declaration{Kind: kind, Type: nodeType, Path: path})
}

// RegisterAll adds several declarations. Declarations without a type token
// are skipped.
func (r *Registry) RegisterAll(decls ...Declaration) {
	for _, d := range decls {
		if d.Type == "" {
			r.logger.Warn("skipping catalog declaration without type",
				zap.String("kind", d.Kind), zap.String("path", d.Path))
			continue
		}
		r.decls[d.Kind] = append(r.decls[d.Kind], d)
		delete(r.trees, d.Kind)
		delete(r.last, d.Kind)
	}
}

// Kinds returns every graph kind with at least one declaration, sorted.
func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.decls))
	for k := range r.decls {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Catalog returns the tree for kind, building it on first use. Repeated
// calls return the same *Entry. A kind with no declarations yields an empty
// root.
func (r *Registry) Catalog(kind string) *Entry {
	if tree, ok := r.trees[kind]; ok {
		return tree
	}

	tree, conflicts := Build(r.decls[kind])
	for _, c := range conflicts {
		r.logger.Warn("catalog path is both a type and a folder; keeping the folder",
			zap.String("kind", kind), zap.String("path", c.Path), zap.String("type", c.Type))
	}
	r.logger.Debug("built catalog", zap.String("kind", kind), zap.Int("declarations", len(r.decls[kind])))

	r.trees[kind] = tree
	return tree
}

// Filtered returns the catalog for kind narrowed to text. While the user
// keeps typing, each query contains the previous one, and since filtering
// only ever narrows, the previous result is used as the starting tree.
func (r *Registry) Filtered(kind, text string) *Entry {
	tree := r.Catalog(kind)
	if text == "" {
		return tree
	}

	needle := strings.ToLower(text)
	base := tree
	if prev, ok := r.last[kind]; ok && strings.Contains(needle, prev.text) {
		if prev.text == needle {
			return prev.tree
		}
		base = prev.tree
	}

	result := Filter(base, needle)
	r.last[kind] = filtered{text: needle, tree: result}
	return result
}
