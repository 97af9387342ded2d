// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package capability

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevelImplies(t *testing.T) {
	require.True(t, Admin.Implies(Execute))
	require.True(t, Admin.Implies(Write))
	require.True(t, Admin.Implies(Read))
	require.True(t, Write.Implies(Read))
	require.True(t, Execute.Implies(Read))
	require.False(t, Execute.Implies(Write))
	require.False(t, Read.Implies(Write))
}

func TestSetAuthorizesPlainLevel(t *testing.T) {
	s := NewSet(New("balance", Write))
	require.True(t, s.Authorizes(New("balance", Read)))
	require.True(t, s.Authorizes(New("balance", Write)))
	require.False(t, s.Authorizes(New("balance", Execute)))
}

// TestScenarioCapabilityRefusal mirrors spec.md §8 Scenario 5: an effect
// requiring WriteField("balance") under a context holding only
// ReadField("balance") fails with MissingCapability.
func TestScenarioCapabilityRefusal(t *testing.T) {
	held := NewSet(Capability{Name: "balance", Record: ReadField("balance")})
	required := Capability{Name: "balance", Record: WriteField("balance")}

	err := Require(held, required)
	var missing *MissingCapability
	require.ErrorAs(t, err, &missing)
	require.Equal(t, required, missing.Required)
}

func TestRecordLatticeWriteImpliesRead(t *testing.T) {
	c := Capability{Name: "balance", Record: WriteField("balance")}
	req := Capability{Name: "balance", Record: ReadField("balance")}
	require.True(t, c.Implies(req))
	require.False(t, req.Implies(c))
}

func TestRecordLatticeProjectFieldsImpliesReadWhenMember(t *testing.T) {
	c := Capability{Name: "account", Record: ProjectFields([]string{"balance", "owner"})}
	inSet := Capability{Name: "account", Record: ReadField("balance")}
	outOfSet := Capability{Name: "account", Record: ReadField("ssn")}
	require.True(t, c.Implies(inSet))
	require.False(t, c.Implies(outOfSet))
}

func TestRecordLatticeFullAccessImpliesEverything(t *testing.T) {
	c := Capability{Name: "account", Record: FullRecordAccess()}
	require.True(t, c.Implies(Capability{Name: "account", Record: WriteField("balance")}))
	require.True(t, c.Implies(Capability{Name: "account", Record: DeleteRecord()}))
	require.True(t, c.Implies(Capability{Name: "account", Record: CreateRecord([]string{"a", "b"})}))
}

// TestCapabilityMonotonicity mirrors spec.md §8 property 8: if C
// authorizes an effect and C ⊆ C', C' authorizes it too.
func TestCapabilityMonotonicity(t *testing.T) {
	c := NewSet(New("balance", Read))
	require.True(t, c.Authorizes(New("balance", Read)))

	cPrime := c.With(New("other", Admin))
	require.True(t, c.IsSubsetOf(cPrime))
	require.True(t, cPrime.Authorizes(New("balance", Read)))
}
