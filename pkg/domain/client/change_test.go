package client_test

import (
	"context"
	"testing"
	"time"

	"github.com/amirasaad/opsledger/pkg/domain/client"
	"github.com/amirasaad/opsledger/pkg/domain/common"
	"github.com/amirasaad/opsledger/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	before := details()
	after := before
	after.Phone = "+7 701 111 22 33"
	after.Deposit = money.FromMajor(80000)

	assert.Equal(t, map[string]client.FieldChange{
		"phone":   {From: "", To: "+7 701 111 22 33"},
		"deposit": {From: "75000 ₸", To: "80000 ₸"},
	}, client.Diff(before, after))
	assert.Empty(t, client.Diff(before, before))
}

func TestMatches(t *testing.T) {
	d := details()
	d.MiddleName = "Сергеевич"
	d.ConstructionAddress = "Almaty, Abay 10"
	d.Email = "ivanov@example.com"
	d.ObjectName = "Cottage"
	c, err := client.New(d, "2025-007", time.Now())
	require.NoError(t, err)

	tests := []struct {
		query string
		want  bool
	}{
		{"", true},
		{"ivanov", true},
		{"  PETR   ivanov ", true},
		{"2025-007", true},
		{"abay cottage", true},
		{"сергеевич", true},
		{"ivanov sidorov", false},
		{"example.org", false},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Matches(client.SearchTerms(tt.query)))
		})
	}
}

func TestNewChange(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	c, err := client.New(details(), "2025-001", now)
	require.NoError(t, err)

	change := client.NewChange(c.ID, client.ActionDeleted, nil, "foreman", now)
	assert.NotEqual(t, c.ID, change.ID)
	assert.Equal(t, c.ID, change.ClientID)
	assert.NotNil(t, change.Changes)
	assert.Equal(t, "foreman", change.Operator)
}

func TestOperatorFrom(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, common.SystemOperator, common.OperatorFrom(ctx))
	assert.Equal(t, "foreman", common.OperatorFrom(common.WithOperator(ctx, "foreman")))
}
