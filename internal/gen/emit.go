package gen

import (
	"bytes"
	"fmt"
	"go/token"
	"maps"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/tools/imports"

	"intellenum-generator/internal/analyze"
	"intellenum-generator/internal/common"
	"intellenum-generator/internal/config"
	"intellenum-generator/internal/convert"
	"intellenum-generator/internal/discover"
	"intellenum-generator/internal/errs"
	"intellenum-generator/internal/match"
	"intellenum-generator/internal/plan"
	"intellenum-generator/internal/validate"
)

// FileSuffix ends the name of every generated file.
const FileSuffix = "_intellenum.go"

// SourceUnit is one generated file, keyed by the declaration it was
// generated for.
type SourceUnit struct {
	Key analyze.DeclID
	// Dir is the directory of the declaring package.
	Dir      string
	Filename string
	Content  []byte
}

// Config holds emitter settings.
type Config struct {
	// EmitStubs makes fatal struct kinds emit their state type, so that the
	// declaring package keeps compiling while the diagnostic is fixed.
	EmitStubs bool
	// DebugDir receives the unformatted sidecar when formatting fails. The
	// declaring package directory is used when empty.
	DebugDir string
}

// DefaultConfig returns the default emitter configuration: fatal items
// produce no file.
func DefaultConfig() Config {
	return Config{}
}

// Cache remembers emitted content by key and input hash.
type Cache interface {
	Get(key, hash string) ([]byte, bool)
	Put(key, hash string, content []byte) error
}

// Emitter renders work items.
type Emitter struct {
	config   Config
	registry *convert.Registry
	cache    Cache
	log      *zap.Logger
}

// Option configures an Emitter.
type Option func(*Emitter)

// WithCache reuses content emitted for an unchanged work item.
func WithCache(c Cache) Option {
	return func(e *Emitter) { e.cache = c }
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(e *Emitter) { e.log = log }
}

// NewEmitter creates an emitter rendering conversions from registry. A nil
// registry means the builtin generators.
func NewEmitter(cfg Config, registry *convert.Registry, opts ...Option) *Emitter {
	if registry == nil {
		registry = convert.NewRegistry(nil)
	}

	e := &Emitter{config: cfg, registry: registry, log: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Emit renders item with the default configuration.
func Emit(item *plan.WorkItem, registry *convert.Registry) (*SourceUnit, bool, error) {
	return NewEmitter(DefaultConfig(), registry).Emit(item)
}

// Filename is the name of the file generated for typeName.
func Filename(typeName string) string {
	return common.SnakeCase(typeName) + FileSuffix
}

// Emit renders item. It reports false when the item produces no file: a
// fatal item without a stub.
func (e *Emitter) Emit(item *plan.WorkItem) (*SourceUnit, bool, error) {
	stub := item.Fatal
	if stub && (!e.config.EmitStubs || item.Kind != discover.KindStruct) {
		return nil, false, nil
	}

	unit := &SourceUnit{Key: item.Key, Filename: Filename(item.TypeName)}
	if item.Decl != nil {
		unit.Dir = item.Decl.Dir
	}

	if e.cache != nil && item.Hash != "" {
		if content, ok := e.cache.Get(string(item.Key), item.Hash); ok {
			e.log.Debug("reusing cached output", zap.Stringer("key", item.Key))
			unit.Content = content

			return unit, true, nil
		}
	}

	data := e.buildTemplateData(item, stub)

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, false, errs.Fault(err, item.Key, "executing template for %s", item.TypeName)
	}

	formatted, err := imports.Process(filepath.Join(unit.Dir, unit.Filename), buf.Bytes(), nil)
	if err != nil {
		dir := e.config.DebugDir
		if dir == "" {
			dir = unit.Dir
		}

		if werr := writeDebugUnformatted(dir, unit.Filename, buf.Bytes()); werr != nil {
			e.log.Warn("writing unformatted output", zap.Error(werr))
		}

		return nil, false, errs.Fault(err, item.Key, "formatting %s", unit.Filename)
	}

	unit.Content = formatted

	if e.cache != nil && item.Hash != "" {
		if err := e.cache.Put(string(item.Key), item.Hash, formatted); err != nil {
			e.log.Warn("caching output", zap.Stringer("key", item.Key), zap.Error(err))
		}
	}

	return unit, true, nil
}

// EmitAll renders every item in order. A failing item is reported as a
// fault and does not stop the others.
func (e *Emitter) EmitAll(items []*plan.WorkItem) ([]SourceUnit, []plan.Fault) {
	var (
		units  []SourceUnit
		faults []plan.Fault
	)

	for _, item := range items {
		unit, ok, err := e.Emit(item)
		if err != nil {
			faults = append(faults, plan.Fault{Key: item.Key, Err: err})

			continue
		}

		if ok {
			units = append(units, *unit)
		}
	}

	return units, faults
}

func (e *Emitter) buildTemplateData(item *plan.WorkItem, stub bool) *templateData {
	imps := newImportSet(item.PkgPath)

	data := &templateData{
		PackageName: item.PkgName,
		TypeName:    item.TypeName,
		Lower:       common.LowerFirst(item.TypeName),
		Struct:      item.Kind == discover.KindStruct,
		StateType:   validate.StateTypeName(item.TypeName),
		Underlying:  item.UnderlyingName,
		Stub:        stub,
	}

	imps.addRef(item.UnderlyingImport, item.UnderlyingName)

	if stub {
		data.Imports = imps.sorted()
		return data
	}

	for _, path := range []string{"errors", "fmt", "hash/maphash", "slices"} {
		imps.add(path, "")
	}

	if item.Decl != nil {
		for _, name := range slices.Sorted(maps.Keys(item.Decl.Imports)) {
			imps.add(item.Decl.Imports[name], name)
		}
	}

	for _, inst := range item.Instances {
		data.Instances = append(data.Instances, instanceData{
			Var:  item.TypeName + inst.Name,
			Name: inst.Name,
			Expr: instanceExpr(item, inst),
			Doc:  inst.Doc,
		})
	}

	data.ErrorCtor = item.ErrorCtor
	imps.addRef(item.ErrorImport, item.ErrorCtor)

	data.HasString = item.HasString
	if item.HasValidate {
		data.Validate = item.ValidateName
	}

	switch item.Config.Strictness {
	case config.AllowAnything:
		data.AcceptAnything = true
	case config.AllowValidAndKnownInstances:
		data.AcceptValid = item.HasValidate
	}

	switch item.Config.Debug {
	case config.DebugFull:
		data.GoString = "full"
	case config.DebugBasic:
		data.GoString = "basic"
	}

	data.Deserialize = convert.DeserializeFunc(item.TypeName)

	for _, spec := range item.ParseSpecs {
		data.Wrappers = append(data.Wrappers, wrapper(item, spec, imps))
	}

	target := item.Target()
	for _, d := range e.registry.AllDecorations(target) {
		data.Decorations = append(data.Decorations, strings.Split(d, "\n")...)
	}

	data.Bodies = e.registry.AllBodies(target)
	for _, path := range e.registry.AllImports(target) {
		imps.add(path, "")
	}

	data.Imports = imps.sorted()

	return data
}

// instanceExpr is the initializer of a named instance.
func instanceExpr(item *plan.WorkItem, inst discover.Instance) string {
	if item.Kind == discover.KindStruct {
		state := validate.StateTypeName(item.TypeName)
		return fmt.Sprintf("%s{%s: %s{name: %s, value: %s}}", item.TypeName, state, state, strconv.Quote(inst.Name), inst.Value)
	}

	return fmt.Sprintf("%s(%s)", item.TypeName, inst.Value)
}

// wrapper builds the forwarding wrapper of one parse function.
func wrapper(item *plan.WorkItem, spec match.ParseSpec, imps *importSet) wrapperData {
	w := wrapperData{
		Name:       item.TypeName + match.PrefixTryParse + spec.Suffix,
		Signature:  spec.Signature,
		ResultBool: spec.Result == analyze.ResultBool,
	}

	call := spec.Call
	if spec.Import == item.PkgPath {
		call = call[strings.LastIndexByte(call, '.')+1:]
	} else {
		imps.addRef(spec.Import, call)
	}

	params := make([]string, 0, len(spec.Leading))
	args := make([]string, 0, len(spec.Leading)+1)

	for i, p := range spec.Leading {
		name := paramName(p.Name, i)
		params = append(params, name+" "+p.Display)
		args = append(args, name)

		imps.addRef(p.Import, p.Display)
	}

	if spec.OutForm == analyze.OutPointer {
		w.OutType = strings.TrimPrefix(spec.Out.Display, "*")
		args = append(args, "&parsed")

		imps.addRef(spec.Out.Import, spec.Out.Display)
	}

	w.Params = strings.Join(params, ", ")
	w.Call = call + "(" + strings.Join(args, ", ") + ")"

	return w
}

// reserved are the locals of a wrapper body.
var reserved = map[string]bool{"parsed": true, "ok": true, "err": true, "v": true, "zero": true}

// paramName returns a parameter name that is a usable identifier and does not
// clash with the wrapper's locals.
func paramName(name string, i int) string {
	if name == "" || name == "_" || reserved[name] || token.IsKeyword(name) {
		return "p" + strconv.Itoa(i)
	}

	return name
}
