// Package lower translates the surface AST into HIR (spec §4.2): it is
// purely syntax-directed, consuming the external resolver/checker's
// Names and Tys side tables rather than performing any resolution or
// type-checking of its own. Two passes run over a package:
//
//   - declare walks every namespace and assigns each item a LocalItemId
//     up front, recording its name and parent so later passes (self-export
//     collapse, forward references) never depend on declaration order.
//   - lower walks the same tree again, building the HIR.Package from the
//     ids the first pass assigned.
//
// Identifiers are normalized to Unicode NFC before being stored in any
// HIR node, so two source spellings of the same name that differ only
// by composed/decomposed form never appear as distinct bindings.
package lower

import (
	"golang.org/x/text/unicode/norm"

	"github.com/quantumlang/qcc/internal/ast"
	"github.com/quantumlang/qcc/internal/errors"
	"github.com/quantumlang/qcc/internal/hir"
	"github.com/quantumlang/qcc/internal/ids"
	"github.com/quantumlang/qcc/internal/resolve"
)

func normalize(name string) string { return norm.NFC.String(name) }

// itemMeta is what the declare pass records about an item before its
// body is lowered.
type itemMeta struct {
	name   string
	parent *ids.LocalItemId
}

// Lowerer holds the state threaded through one package's lowering.
// It is not safe for concurrent use; one Lowerer compiles one package.
type Lowerer struct {
	names    resolve.Names
	tys      *resolve.Tys
	assigner *ids.Assigner
	pkgId    ids.PackageId

	pkg *hir.Package

	meta  map[ids.LocalItemId]itemMeta
	bound map[ast.AstNodeId]ids.LocalVarId

	// captures tracks free-variable capture while lowering the body of a
	// lifted lambda or partial application (spec §4.2.5); the top frame
	// is the closure currently being lowered.
	captures []*captureFrame

	// currentNamespace is the innermost namespace item currently being
	// lowered, used as the parent for any closure synthesized while
	// lowering one of its callables (spec §4.2.5). Synthesized closures
	// are registered in the item table under this parent but, unlike
	// source-declared items, are not listed in the namespace's own
	// Children — they are reached only via the ClosureExpr that
	// references them, the same way a compiler-generated symbol is
	// omitted from a declaration listing but still fully resolvable.
	currentNamespace *ids.LocalItemId

	errs []error
}

// New returns a Lowerer for the package identified by pkgId (the
// package's own id within the eventual pkgstore.Store, needed to turn
// a local-only ids.ItemId resolution into a concrete ids.StoreItemId).
func New(names resolve.Names, tys *resolve.Tys, assigner *ids.Assigner, pkgId ids.PackageId) *Lowerer {
	return &Lowerer{
		names:    names,
		tys:      tys,
		assigner: assigner,
		pkgId:    pkgId,
		pkg:      hir.NewPackage(),
		meta:     make(map[ids.LocalItemId]itemMeta),
		bound:    make(map[ast.AstNodeId]ids.LocalVarId),
	}
}

// Lower translates pkg into an HIR package. Individual item-level
// failures are collected rather than aborting the whole package, so a
// single malformed declaration does not hide every other diagnostic;
// the caller decides whether any error makes the result unusable.
func (l *Lowerer) Lower(pkg *ast.Package) (*hir.Package, error) {
	for _, ns := range pkg.Namespaces {
		l.declareNamespace(ns, nil)
	}
	for _, ns := range pkg.Namespaces {
		l.lowerNamespace(ns, nil)
	}

	if len(pkg.Stmts) > 0 {
		block, err := l.lowerTopLevelStmts(pkg.Stmts)
		if err != nil {
			l.errs = append(l.errs, err)
		} else {
			l.pkg.Entry = &hir.Expr{Span: pkg.Span, Type: block.Type, Kind: hir.BlockExpr{Block: block}}
		}
	}

	if len(l.errs) > 0 {
		return l.pkg, l.errs[0]
	}
	return l.pkg, nil
}

func (l *Lowerer) lowerTopLevelStmts(stmts []ast.Stmt) (*hir.Block, error) {
	b := &ast.Block{Stmts: stmts}
	return l.lowerBlock(b)
}

// declareNamespace assigns ids to every item the namespace (transitively)
// contains, in source order, before any body is lowered.
func (l *Lowerer) declareNamespace(ns *ast.Namespace, parent *ids.LocalItemId) ids.LocalItemId {
	id := l.assigner.NextItem()
	l.meta[id] = itemMeta{name: normalize(ns.Name), parent: parent}
	for _, it := range ns.Items {
		l.declareItem(it, id)
	}
	return id
}

func (l *Lowerer) declareItem(it ast.Item, parent ids.LocalItemId) {
	switch v := it.(type) {
	case *ast.CallableItem:
		id := l.assigner.NextItem()
		l.meta[id] = itemMeta{name: normalize(v.Name), parent: &parent}
	case *ast.TyDeclItem:
		id := l.assigner.NextItem()
		l.meta[id] = itemMeta{name: normalize(v.Name), parent: &parent}
	case *ast.NamespaceItem:
		l.declareNamespace(v.Inner, &parent)
	case *ast.ExportItem:
		id := l.assigner.NextItem()
		l.meta[id] = itemMeta{name: normalize(v.Name), parent: &parent}
	case *ast.ImportItem:
		// Vanishes during lowering; never declared as an item.
	}
}

// lowerNamespace re-walks the same tree declareNamespace just walked,
// consuming ids from the same monotonic sequence (NextItem calls happen
// in the identical traversal order in both passes) so every id minted
// here exactly matches the one declareNamespace recorded in l.meta.
func (l *Lowerer) lowerNamespace(ns *ast.Namespace, parent *ids.LocalItemId) ids.LocalItemId {
	id := l.assigner.NextItem()

	prevNamespace := l.currentNamespace
	l.currentNamespace = &id
	defer func() { l.currentNamespace = prevNamespace }()

	var children []ids.LocalItemId
	for _, it := range ns.Items {
		if cid, ok := l.lowerItem(it, id); ok {
			children = append(children, cid)
		}
	}
	l.pkg.Items.Insert(id, &hir.Item{
		Id: id, Span: ns.Span, Parent: parent, Visibility: hir.Public,
		Kind: hir.NamespaceItemKind{Name: normalize(ns.Name), Children: children},
	})
	return id
}

// lowerItem lowers one namespace member, returning its assigned id and
// whether it should be listed as a child of parent (false for an
// import, which is dropped, and for an export collapsed away by
// self-export collapse, spec §4.2.4).
func (l *Lowerer) lowerItem(it ast.Item, parent ids.LocalItemId) (ids.LocalItemId, bool) {
	switch v := it.(type) {
	case *ast.CallableItem:
		return l.lowerCallableItem(v, parent)
	case *ast.TyDeclItem:
		return l.lowerTyDeclItem(v, parent)
	case *ast.NamespaceItem:
		return l.lowerNamespace(v.Inner, &parent), true
	case *ast.ExportItem:
		return l.lowerExportItem(v, parent)
	case *ast.ImportItem:
		return 0, false
	}
	return 0, false
}

func (l *Lowerer) lowerExportItem(it *ast.ExportItem, parent ids.LocalItemId) (ids.LocalItemId, bool) {
	id := l.assigner.NextItem()
	res := l.names.Get(it.Id)

	if res.Kind == resolve.ResItem && res.Item.IsLocal() {
		if target, ok := l.meta[res.Item.Item]; ok && target.name == normalize(it.Name) && samePtr(target.parent, &parent) {
			// Self-export collapse: re-exporting a name under the exact
			// namespace it is already visible in is a no-op.
			return id, false
		}
	}

	l.pkg.Items.Insert(id, &hir.Item{
		Id: id, Span: it.Span, Parent: &parent, Visibility: hir.Public,
		Kind: hir.ExportItemKind{Name: normalize(it.Name), Res: res},
	})
	return id, true
}

func samePtr(a, b *ids.LocalItemId) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (l *Lowerer) errorf(code string, span ast.Span, msg string, data map[string]any) error {
	return errors.WrapReport(errors.New(code, msg, &span, data))
}
