package pkgstore

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quantumlang/qcc/internal/errors"
	"github.com/quantumlang/qcc/internal/hir"
	"github.com/quantumlang/qcc/internal/ids"
)

func TestNewStoreSeedsCorePackage(t *testing.T) {
	s := NewStore()
	pkg, ok := s.Get(CorePackageId)
	require.True(t, ok)
	require.Equal(t, "Core", pkg.Name)
	require.Equal(t, 5, pkg.HIR.Items.Len())
}

func TestResolveItemFindsCoreIntrinsics(t *testing.T) {
	s := NewStore()
	in := CoreIntrinsics()

	item, err := s.ResolveItem(in.AllocateSingle)
	require.NoError(t, err)
	decl := item.Kind.(hir.CallableItemKind).Decl
	require.Equal(t, "__quantum__rt__qubit_allocate", decl.Name)
}

func TestResolveItemUnknownPackage(t *testing.T) {
	s := NewStore()
	_, err := s.ResolveItem(ids.StoreItemId{Package: 99, Item: 0})
	require.Error(t, err)
	report, ok := errors.AsReport(err)
	require.True(t, ok)
	require.Equal(t, errors.PKG001, report.Code)
}

func TestAddRejectsUnregisteredDependency(t *testing.T) {
	s := NewStore()
	err := s.Add(&Package{Id: 1, Name: "user", Dependencies: []ids.PackageId{7}, HIR: hir.NewPackage()})
	require.Error(t, err)
}

func TestTopoOrderDetectsCycle(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(&Package{Id: 1, Name: "a", Dependencies: []ids.PackageId{CorePackageId}, HIR: hir.NewPackage()}))

	// Poke the 1 -> 2 edge in directly first, since Add's own validation
	// would reject a dependency on the not-yet-registered package 2; then
	// add 2 -> 1 legitimately, which closes the loop.
	s.packages[1].Dependencies = append(s.packages[1].Dependencies, 2)
	require.NoError(t, s.Add(&Package{Id: 2, Name: "b", Dependencies: []ids.PackageId{1}, HIR: hir.NewPackage()}))

	_, err := s.TopoOrder()
	require.Error(t, err)
	report, ok := errors.AsReport(err)
	require.True(t, ok)
	require.Equal(t, errors.PKG002, report.Code)
}

func TestTopoOrderPutsDependenciesFirst(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(&Package{Id: 1, Name: "a", Dependencies: []ids.PackageId{CorePackageId}, HIR: hir.NewPackage()}))
	require.NoError(t, s.Add(&Package{Id: 2, Name: "b", Dependencies: []ids.PackageId{1}, HIR: hir.NewPackage()}))

	order, err := s.TopoOrder()
	require.NoError(t, err)

	index := map[ids.PackageId]int{}
	for i, id := range order {
		index[id] = i
	}
	require.Less(t, index[CorePackageId], index[1])
	require.Less(t, index[1], index[2])
}
