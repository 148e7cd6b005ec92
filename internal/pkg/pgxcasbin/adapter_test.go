package pgxcasbin

import (
	"testing"

	"github.com/casbin/casbin/v3/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleRow(t *testing.T) {
	row, err := ruleRow("p", []string{"sales", "lead.leads", "read"})
	require.NoError(t, err)
	assert.Equal(t, []any{"p", "sales", "lead.leads", "read", "", "", ""}, row)

	_, err = ruleRow("", []string{"a"})
	assert.ErrorIs(t, err, ErrEmptyPtype)

	_, err = ruleRow("p", nil)
	assert.ErrorIs(t, err, ErrRuleEmpty)

	_, err = ruleRow("p", []string{"1", "2", "3", "4", "5", "6", "7"})
	assert.ErrorIs(t, err, ErrRuleTooLong)
}

func TestTrimTrailingEmpty(t *testing.T) {
	assert.Equal(t, []string{"g", "42", "admin"}, trimTrailingEmpty([]string{"g", "42", "admin", "", "", "", ""}))
	assert.Empty(t, trimTrailingEmpty([]string{"", ""}))
}

func TestWhere(t *testing.T) {
	a := NewAdapter(nil, WithTableName("AdminRules"))
	assert.Equal(t, "admin_rules", a.table)

	where, args, err := a.where("g", 0, []string{"42"})
	require.NoError(t, err)
	assert.Equal(t, "ptype = $1 and v0 = $2", where)
	assert.Equal(t, []any{"g", "42"}, args)

	where, args, err = a.where("p", 1, []string{"", "read"})
	require.NoError(t, err)
	assert.Equal(t, "ptype = $1 and v2 = $2", where)
	assert.Equal(t, []any{"p", "read"}, args)

	_, _, err = a.where("p", 5, []string{"a", "b"})
	assert.ErrorIs(t, err, ErrRuleTooLong)

	_, _, err = a.where("", 0, nil)
	assert.ErrorIs(t, err, ErrEmptyPtype)
}

func TestLoadFilteredPolicy_Rejected(t *testing.T) {
	a := NewAdapter(nil)
	m, err := model.NewModelFromString(Model)
	require.NoError(t, err)

	assert.False(t, a.IsFiltered())
	assert.ErrorIs(t, a.LoadFilteredPolicy(m, "sales"), ErrFilterType)
	assert.ErrorIs(t, a.LoadFilteredPolicy(m, Filter{Values: []string{"sales"}}), ErrEmptyPtype)
	assert.False(t, a.IsFiltered())
}

func TestSQLFragments(t *testing.T) {
	assert.Equal(t, "v0, v1, v2, v3, v4, v5", columns())
	assert.Equal(t, "$1, $2, $3, $4, $5, $6, $7", placeholders(1))
	assert.Equal(t, "v0 = $2 and v1 = $3 and v2 = $4 and v3 = $5 and v4 = $6 and v5 = $7", equalities(2))
}

func TestNewEnforcer_InMemory(t *testing.T) {
	e, err := NewEnforcer(nil)
	require.NoError(t, err)

	_, err = e.AddPolicy("admin", "*", "*")
	require.NoError(t, err)
	_, err = e.AddPolicy("sales", "lead.leads", "read")
	require.NoError(t, err)
	_, err = e.AddGroupingPolicy("1", "admin")
	require.NoError(t, err)
	_, err = e.AddGroupingPolicy("2", "sales")
	require.NoError(t, err)

	for _, tc := range []struct {
		sub, obj, act string
		want          bool
	}{
		{"1", "catalog.vehicles", "write", true},
		{"2", "lead.leads", "read", true},
		{"2", "lead.leads", "write", false},
		{"2", "catalog.vehicles", "read", false},
		{"3", "lead.leads", "read", false},
	} {
		ok, err := e.Enforce(tc.sub, tc.obj, tc.act)
		require.NoError(t, err)
		assert.Equal(t, tc.want, ok, "%s %s %s", tc.sub, tc.obj, tc.act)
	}
}
