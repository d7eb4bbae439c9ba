// Package pkgstore resolves cross-package item references
// (ids.StoreItemId and friends) against a loaded dependency graph, and
// reserves the core package's fixed runtime-intrinsic items that
// internal/qubitalloc's rewrite targets. It is the Go-idiomatic
// counterpart of the teacher's internal/module loader and
// internal/link topological sort, generalized from "AILANG module
// search path" to "compiled package dependency graph".
package pkgstore

import (
	"fmt"
	"sync"

	"github.com/quantumlang/qcc/internal/errors"
	"github.com/quantumlang/qcc/internal/hir"
	"github.com/quantumlang/qcc/internal/ids"
	"github.com/quantumlang/qcc/internal/qubitalloc"
	"github.com/quantumlang/qcc/internal/types"
)

// CorePackageId is the fixed id of the package that reserves the
// runtime-intrinsic items every other package references by id alone,
// without importing anything.
const CorePackageId ids.PackageId = 0

// Core item ids within CorePackageId, matching the qubit-allocation
// rewrite's expectations (internal/qubitalloc.Intrinsics).
const (
	ItemNamespace     ids.LocalItemId = 0
	ItemAllocateQubit ids.LocalItemId = 1
	ItemReleaseQubit  ids.LocalItemId = 2
	ItemAllocateArray ids.LocalItemId = 3
	ItemReleaseArray  ids.LocalItemId = 4
)

// CoreIntrinsics returns the qubitalloc.Intrinsics referencing
// CorePackageId's four fixed items, for wiring into qubitalloc.Rewrite.
func CoreIntrinsics() qubitalloc.Intrinsics {
	item := func(id ids.LocalItemId) ids.StoreItemId {
		return ids.StoreItemId{Package: CorePackageId, Item: id}
	}
	return qubitalloc.Intrinsics{
		AllocateSingle: item(ItemAllocateQubit),
		ReleaseSingle:  item(ItemReleaseQubit),
		AllocateArray:  item(ItemAllocateArray),
		ReleaseArray:   item(ItemReleaseArray),
	}
}

// BuildCorePackage returns the core package: a namespace plus the
// four allocate/release intrinsics, each an Intrinsic-generator
// callable with no body (the interpreter/codegen backend supplies the
// implementation directly, the same contract the original source's
// `__quantum__rt__qubit_{allocate,release}{,_array}` runtime exports
// use).
func BuildCorePackage() *hir.Package {
	pkg := hir.NewPackage()

	gen := hir.GenIntrinsic
	namespace := &hir.Item{
		Id: ItemNamespace, Visibility: hir.Public,
		Kind: hir.NamespaceItemKind{
			Name: "QIR.Runtime",
			Children: []ids.LocalItemId{
				ItemAllocateQubit, ItemReleaseQubit, ItemAllocateArray, ItemReleaseArray,
			},
		},
	}
	pkg.Items.Insert(ItemNamespace, namespace)

	parent := ItemNamespace
	addIntrinsic := func(id ids.LocalItemId, name string, input *hir.Pat, output types.Ty) {
		decl := &hir.CallableDecl{
			Kind: types.Operation, Name: name,
			Input: input, Output: output,
			Functors: types.FunctorSetValue{},
			Body:     &hir.SpecDecl{Gen: &gen},
		}
		pkg.Items.Insert(id, &hir.Item{
			Id: id, Parent: &parent, Visibility: hir.Public,
			Attrs: []hir.Attr{{Kind: hir.AttrSimulatableIntrinsic}},
			Kind:  hir.CallableItemKind{Decl: decl},
		})
	}

	unitPat := &hir.Pat{Type: types.TyUnit{}, Kind: hir.DiscardPat{}}
	intPat := &hir.Pat{Type: types.TyInt{}, Kind: hir.DiscardPat{}}
	qubitPat := &hir.Pat{Type: types.TyQubit{}, Kind: hir.DiscardPat{}}
	qubitArrayPat := &hir.Pat{Type: types.TyArray{Elem: types.TyQubit{}}, Kind: hir.DiscardPat{}}

	addIntrinsic(ItemAllocateQubit, "__quantum__rt__qubit_allocate", unitPat, types.TyQubit{})
	addIntrinsic(ItemReleaseQubit, "__quantum__rt__qubit_release", qubitPat, types.TyUnit{})
	addIntrinsic(ItemAllocateArray, "__quantum__rt__qubit_allocate_array", intPat, types.TyArray{Elem: types.TyQubit{}})
	addIntrinsic(ItemReleaseArray, "__quantum__rt__qubit_release_array", qubitArrayPat, types.TyUnit{})

	return pkg
}

// Package is one entry in the Store: a lowered, qubit-rewritten HIR
// package plus the package-level metadata the store needs to resolve
// cross-package references and topologically order compilation.
type Package struct {
	Id           ids.PackageId
	Name         string
	Dependencies []ids.PackageId
	HIR          *hir.Package
}

// Store holds every package reachable from an entry package, keyed by
// id, and resolves cross-package item references against it.
type Store struct {
	mu       sync.RWMutex
	packages map[ids.PackageId]*Package
}

// NewStore returns a Store pre-populated with the core package.
func NewStore() *Store {
	s := &Store{packages: make(map[ids.PackageId]*Package)}
	s.packages[CorePackageId] = &Package{Id: CorePackageId, Name: "Core", HIR: BuildCorePackage()}
	return s
}

// Add registers pkg in the store. It is an error to register the same
// id twice or to depend on an id not yet registered.
func (s *Store) Add(pkg *Package) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.packages[pkg.Id]; exists {
		return errors.WrapReport(errors.New(errors.PKG001, fmt.Sprintf("package %d already registered", pkg.Id), nil, map[string]any{"package": pkg.Id}))
	}
	for _, dep := range pkg.Dependencies {
		if _, ok := s.packages[dep]; !ok {
			return errors.WrapReport(errors.New(errors.PKG001, fmt.Sprintf("package %d depends on unregistered package %d", pkg.Id, dep), nil, map[string]any{"package": pkg.Id, "dependency": dep}))
		}
	}
	s.packages[pkg.Id] = pkg
	return nil
}

// Get returns the package registered under id.
func (s *Store) Get(id ids.PackageId) (*Package, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.packages[id]
	return p, ok
}

// ResolveItem looks up the HIR item a StoreItemId names.
func (s *Store) ResolveItem(ref ids.StoreItemId) (*hir.Item, error) {
	pkg, ok := s.Get(ref.Package)
	if !ok {
		return nil, errors.WrapReport(errors.New(errors.PKG001, fmt.Sprintf("unknown package id %d", ref.Package), nil, map[string]any{"package": ref.Package}))
	}
	item, ok := pkg.HIR.Items.Get(ref.Item)
	if !ok {
		return nil, errors.WrapReport(errors.New(errors.PKG003, fmt.Sprintf("package %d has no item %d", ref.Package, ref.Item), nil, map[string]any{"package": ref.Package, "item": ref.Item}))
	}
	return item, nil
}

// TopoOrder returns every registered package id in dependency order
// (a package's dependencies always precede it), detecting cycles via
// DFS with a recursion-stack marker — the same strategy as the
// teacher's internal/link topological sort, generalized from a single
// root module to the whole store.
func (s *Store) TopoOrder() ([]ids.PackageId, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	visited := make(map[ids.PackageId]bool)
	inPath := make(map[ids.PackageId]bool)
	var sorted []ids.PackageId
	var path []ids.PackageId

	var visit func(id ids.PackageId) error
	visit = func(id ids.PackageId) error {
		if visited[id] {
			return nil
		}
		if inPath[id] {
			return errors.WrapReport(errors.New(errors.PKG002, fmt.Sprintf("circular package dependency involving %d", id), nil, map[string]any{"cycle": append(append([]ids.PackageId{}, path...), id)}))
		}
		pkg, ok := s.packages[id]
		if !ok {
			return errors.WrapReport(errors.New(errors.PKG001, fmt.Sprintf("unknown package id %d", id), nil, map[string]any{"package": id}))
		}

		inPath[id] = true
		path = append(path, id)
		for _, dep := range pkg.Dependencies {
			if err := visit(dep); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		inPath[id] = false
		visited[id] = true
		sorted = append(sorted, id)
		return nil
	}

	var ids_ []ids.PackageId
	for id := range s.packages {
		ids_ = append(ids_, id)
	}
	for _, id := range ids_ {
		if err := visit(id); err != nil {
			return nil, err
		}
	}
	return sorted, nil
}
