package gen

import (
	"sort"
	"strings"

	"intellenum-generator/internal/common"
)

// importSpec is one line of the import block.
type importSpec struct {
	Alias string
	Path  string
}

// importSet collects the imports a file may need. Unused ones are dropped when
// the file is formatted. A path may appear under several names, e.g. aliased
// by the user and plain in a conversion body.
type importSet struct {
	self  string                // path of the package being generated into
	specs map[string]importSpec // by local name
}

func newImportSet(self string) *importSet {
	return &importSet{self: self, specs: make(map[string]importSpec)}
}

// add records path, referenced as name in the generated code. An empty name
// means the usual one. The first path to claim a name keeps it.
func (s *importSet) add(path, name string) {
	if path == "" || path == s.self || name == "_" || name == "." {
		return
	}

	local := name
	if local == "" {
		local = common.PkgAlias(path)
	}

	if _, taken := s.specs[local]; taken {
		return
	}

	spec := importSpec{Path: path}
	if local != common.PkgAlias(path) {
		spec.Alias = local
	}

	s.specs[local] = spec
}

// addRef records the import of a qualified reference such as "*time.Location"
// or "uuid.Nil".
func (s *importSet) addRef(path, ref string) {
	s.add(path, qualifier(ref))
}

func (s *importSet) sorted() []importSpec {
	res := make([]importSpec, 0, len(s.specs))
	for _, spec := range s.specs {
		res = append(res, spec)
	}

	sort.Slice(res, func(i, j int) bool {
		if res[i].Path != res[j].Path {
			return res[i].Path < res[j].Path
		}

		return res[i].Alias < res[j].Alias
	})

	return res
}

// qualifier returns the package name in a qualified reference: "time" for
// "*time.Location", "" for "int".
func qualifier(ref string) string {
	dot := strings.IndexByte(ref, '.')
	if dot < 0 {
		return ""
	}

	start := strings.LastIndexFunc(ref[:dot], func(r rune) bool {
		return !common.IsIdentRune(r)
	})

	return ref[start+1 : dot]
}
