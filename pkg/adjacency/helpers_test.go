package adjacency

import (
	"github.com/google/go-cmp/cmp/cmpopts"

	"chronicle-hq/chronicle/pkg/pdx/ast"
)

var cmpIgnoreLoc = cmpopts.IgnoreTypes(ast.Location{})
