package discover

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intellenum-generator/internal/analyze"
)

func TestMemo(t *testing.T) {
	t.Parallel()

	prog := newProgram()
	decl := typeDecl(prog, "CustomerType",
		analyze.Directive{Name: "enum"},
		analyze.Directive{Name: "member", Args: "Standard 1"},
	)

	memo := NewMemo()

	first, ok := memo.Extract(decl, prog)
	require.True(t, ok)

	second, ok := memo.Extract(decl, prog)
	require.True(t, ok)
	assert.Same(t, first, second)
	assert.Equal(t, 1, memo.Len())

	changed := *decl
	changed.Directives = append(changed.Directives[:2:2], analyze.Directive{Name: "member", Args: "Gold 2"})

	third, ok := memo.Extract(&changed, prog)
	require.True(t, ok)
	assert.NotSame(t, first, third)
	assert.Len(t, third.Instances, 2)
	assert.Equal(t, 2, memo.Len())
}

func TestMemo_Negative(t *testing.T) {
	t.Parallel()

	prog := newProgram()
	decl := typeDecl(prog, "Color", analyze.Directive{Name: "member", Args: "Red 1"})

	memo := NewMemo()
	_, ok := memo.Extract(decl, prog)
	assert.False(t, ok)
	assert.Equal(t, 1, memo.Len(), "misses are memoized too")

	_, ok = memo.Extract(&analyze.Decl{IsType: true}, prog)
	assert.False(t, ok)
	assert.Equal(t, 1, memo.Len(), "structural rejects are not")
}

func TestMemo_Concurrent(t *testing.T) {
	t.Parallel()

	prog := newProgram()
	decl := typeDecl(prog, "CustomerType", analyze.Directive{Name: "enum"})
	memo := NewMemo()

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, ok := memo.Extract(decl, prog)
			assert.True(t, ok)
		}()
	}

	wg.Wait()
	assert.Equal(t, 1, memo.Len())
}

func TestMemo_TypeDeclaredLater(t *testing.T) {
	t.Parallel()

	prog := newProgram()
	decl := typeDecl(prog, "CustomerType",
		analyze.Directive{Name: "enum", Args: "underlying=Money"},
		analyze.Directive{Name: "member", Args: "Standard 1"},
	)

	memo := NewMemo()

	before, ok := memo.Extract(decl, prog)
	require.True(t, ok)
	require.Len(t, before.ArgIssues, 1)
	assert.True(t, before.Local.Underlying.IsZero())

	money := analyze.TypeID{PkgPath: shop, Name: "Money"}
	prog.AddType(&analyze.TypeInfo{ID: money, Kind: analyze.TypeKindBasic, Underlying: analyze.Predeclared("int64")})

	after, ok := memo.Extract(decl, prog)
	require.True(t, ok)
	assert.NotSame(t, before, after)
	assert.Empty(t, after.ArgIssues)
	assert.Equal(t, money, after.Local.Underlying)
	assert.Equal(t, 1, memo.Len())

	again, ok := memo.Extract(decl, prog)
	require.True(t, ok)
	assert.Same(t, after, again)
}
