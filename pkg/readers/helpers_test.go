package readers

import (
	"github.com/google/go-cmp/cmp/cmpopts"

	"chronicle-hq/chronicle/pkg/entity"
)

var cmpIgnoreMisc = cmpopts.IgnoreFields(entity.Mod{}, "Misc")
