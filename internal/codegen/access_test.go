package codegen

import (
	"testing"

	"github.com/okra-platform/rpcgen/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFieldAccess(t *testing.T) {
	tests := []struct {
		input    string
		expected FieldAccess
		wantErr  bool
	}{
		{"underscore", AccessUnderscore, false},
		{"", AccessUnderscore, false},
		{"CAPITAL", AccessCapital, false},
		{" direct ", AccessDirect, false},
		{"camel", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFieldAccess(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvariant)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFieldAccess_Names(t *testing.T) {
	tests := []struct {
		access  FieldAccess
		storage string
		getter  string
		setter  string
	}{
		{AccessUnderscore, "_max_count", "get_max_count", "set_max_count"},
		{AccessCapital, "_max_count", "getMax_count", "setMax_count"},
		{AccessDirect, "max_count", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.access.String(), func(t *testing.T) {
			assert.Equal(t, tt.storage, tt.access.Storage("max_count"))
			assert.Equal(t, tt.getter, tt.access.Getter("max_count"))
			assert.Equal(t, tt.setter, tt.access.Setter("max_count"))
		})
	}
}

func TestFieldAccessor_Render(t *testing.T) {
	// Test: accessors render with the backend's receiver and export rule
	fa := FieldAccessor{Access: AccessCapital, Receiver: "s", Export: Capitalize}

	assert.Equal(t, "s._x", fa.Var("x"))
	assert.Equal(t, "GetX", fa.GetterName("x"))
	assert.Equal(t, "p.GetX()", fa.GetterInvoke("p", "x"))
	assert.Equal(t, "p.SetX(v)", fa.SetterInvoke("p", "x", "v"))

	direct := FieldAccessor{Access: AccessDirect, Receiver: "this"}
	assert.Equal(t, "this.x", direct.Var("x"))
	assert.Equal(t, "p.x", direct.GetterInvoke("p", "x"))
	assert.Equal(t, "p.x = v", direct.SetterInvoke("p", "x", "v"))
	assert.Empty(t, direct.GetterName("x"))

	exported := FieldAccessor{Access: AccessDirect, Receiver: "s", Export: Capitalize}
	assert.Equal(t, "X", exported.StorageName("x"))
	assert.Equal(t, "s.X", exported.Var("x"))
	assert.Equal(t, "p.MaxCount", exported.GetterInvoke("p", "maxCount"))
	assert.Equal(t, "p.X = v", exported.SetterInvoke("p", "x", "v"))

	// Accessor strategies keep the slot private even with Export set
	assert.Equal(t, "_x", fa.StorageName("x"))
}

// checkStruct mirrors how backends register generated members
func checkStruct(access FieldAccess, dt *schema.DataType) error {
	check := NewAccessorCheck()
	check.Start(dt.Name, "read", "write")
	for _, f := range dt.Fields {
		if access.HasAccessors() {
			if err := check.Add(access.Getter(f.Name)); err != nil {
				return err
			}
			if err := check.Add(access.Setter(f.Name)); err != nil {
				return err
			}
		}
	}
	return nil
}

func TestAccessorCheck_CapitalCollision(t *testing.T) {
	// Test: two fields mapping to the same capitalized getter fail for CAPITAL only
	s, err := schema.NewBuilder("demo").
		Struct("Pair", "",
			schema.FieldSpec{ID: 1, Name: "value", Type: "i32"},
			schema.FieldSpec{ID: 2, Name: "Value", Type: "i32"},
		).Build()
	require.NoError(t, err)
	pair, _ := s.Lookup("Pair")

	err = checkStruct(AccessCapital, pair)
	assert.ErrorIs(t, err, ErrAccessorConflict)
	assert.ErrorIs(t, err, ErrInvariant)
	assert.Contains(t, err.Error(), "getValue")

	assert.NoError(t, checkStruct(AccessDirect, pair))
	assert.NoError(t, checkStruct(AccessUnderscore, pair))
}

func TestAccessorCheck_ResetPerStruct(t *testing.T) {
	// Test: Start clears names from the previous struct and seeds reserved ones
	check := NewAccessorCheck()
	check.Start("A")
	require.NoError(t, check.Add("get_x"))

	check.Start("B", "read")
	assert.NoError(t, check.Add("get_x"))
	assert.ErrorIs(t, check.Add("read"), ErrAccessorConflict)
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Value", Capitalize("value"))
	assert.Equal(t, "_x", Capitalize("_x"))
	assert.Equal(t, "", Capitalize(""))
}
