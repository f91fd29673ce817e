package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuiltInAudiences(t *testing.T) {
	all := BuiltInAudiences()
	assert.Len(t, all, 6)
	assert.Equal(t, "", all[0].Value)
	assert.Equal(t, "Any audience", all[0].Label)

	for _, a := range all {
		assert.False(t, a.IsCustom(), a.Value)
		assert.True(t, IsBuiltInAudience(a.Value))
	}
	assert.False(t, IsBuiltInAudience("veterans"))
}

func TestAudience_Expired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	fresh := Audience{Value: "veterans", AddedAt: now.Add(-time.Hour)}
	stale := Audience{Value: "transfer", AddedAt: now.Add(-25 * time.Hour)}
	builtIn := Audience{Value: "graduate"}

	assert.False(t, fresh.Expired(now))
	assert.True(t, stale.Expired(now))
	assert.False(t, builtIn.Expired(now))
}

func TestResolveAudience(t *testing.T) {
	assert.Equal(t, "online", ResolveAudience("online", "graduate"))
	assert.Equal(t, "graduate", ResolveAudience("", "graduate"))
	assert.Equal(t, "", ResolveAudience("", ""))
}
