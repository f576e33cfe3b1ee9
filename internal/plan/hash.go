package plan

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"

	"github.com/vmihailenco/msgpack/v5"

	"intellenum-generator/internal/analyze"
	"intellenum-generator/internal/config"
	"intellenum-generator/internal/discover"
	"intellenum-generator/internal/validate"
)

// hashSchema changes whenever the generated output changes for the same
// inputs, invalidating every cached item.
const hashSchema = 2

// hashInput is everything a work item is derived from. Field order is part
// of the encoding.
type hashInput struct {
	Schema            int
	ID                analyze.DeclID
	Kind              discover.Kind
	Nested            bool
	Directives        []analyze.Directive
	Imports           map[string]string
	Defaults          *config.Configuration
	Config            config.Configuration
	Type              *analyze.TypeInfo
	Members           []string
	Sites             []analyze.Site
	Locations         int
	// Parse functions come from the underlying type, the constructor from
	// the error type.
	Underlying        *analyze.TypeInfo
	UnderlyingMembers []string
	Error             *analyze.TypeInfo
	ErrorMembers      []string
}

// InputHash returns a stable digest of the candidate, the defaults and the
// facts the oracle contributes to its work item, including those of the
// types its merged configuration resolves to.
func InputHash(c *discover.Candidate, defaults *config.Configuration, oracle analyze.Oracle, pass *validate.Pass) (string, error) {
	in := hashInput{
		Schema:     hashSchema,
		ID:         c.ID(),
		Kind:       c.Kind,
		Nested:     c.Decl.Nested,
		Directives: c.Decl.Directives,
		Imports:    c.Decl.Imports,
		Defaults:   defaults,
		Sites:      oracle.ConstructionSites(c.TypeID()),
		Locations:  len(pass.Locations(c.FullName())),
	}

	info, ok := oracle.DeclaredType(c.Decl)
	if ok {
		in.Type = info
	}

	in.Config = config.Merge(c.Local, defaults, Fallback(c.Kind, info))
	in.Members = memberKeys(oracle, c.TypeID())

	if !in.Config.Underlying.IsZero() {
		in.Underlying, _ = oracle.Type(in.Config.Underlying)
		in.UnderlyingMembers = memberKeys(oracle, in.Config.Underlying)
	}

	if !in.Config.ValidationError.IsZero() {
		in.Error, _ = oracle.Type(in.Config.ValidationError)
		in.ErrorMembers = memberKeys(oracle, in.Config.ValidationError)
	}

	var buf bytes.Buffer

	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)

	if err := enc.Encode(&in); err != nil {
		return "", err
	}

	sum := sha256.Sum256(buf.Bytes())

	return hex.EncodeToString(sum[:]), nil
}

func memberKeys(oracle analyze.Oracle, owner analyze.TypeID) []string {
	var res []string
	for _, m := range oracle.Members(owner, "") {
		res = append(res, m.Signature+"@"+m.Pos.String())
	}

	return res
}
