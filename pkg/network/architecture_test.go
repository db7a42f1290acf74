package network

import (
	"sort"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

// TestPublicPackagesDoNotImportInternal ensures the public contract
// packages under pkg/ stay free of internal dependencies, so external
// model implementations only ever see the pkg surface.
func TestPublicPackagesDoNotImportInternal(t *testing.T) {
	publicPrefix := "porecore/pkg/"
	internalPrefix := "porecore/internal/"

	cfg := &packages.Config{Mode: packages.NeedName | packages.NeedImports}
	pkgs, err := packages.Load(cfg, "porecore/...")
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}

	seen := make(map[string]struct{})
	for _, pkg := range pkgs {
		if !strings.HasPrefix(pkg.PkgPath, publicPrefix) {
			continue
		}
		for importPath := range pkg.Imports {
			if strings.HasPrefix(importPath, internalPrefix) {
				seen[pkg.PkgPath+": "+importPath] = struct{}{}
			}
		}
	}

	if len(seen) > 0 {
		violations := make([]string, 0, len(seen))
		for v := range seen {
			violations = append(violations, v)
		}
		sort.Strings(violations)
		for _, v := range violations {
			t.Errorf("forbidden internal import: %s", v)
		}
		t.Fatalf("found %d forbidden internal imports in public packages", len(violations))
	}
}
