package labels

import (
	"testing"

	"github.com/ManivannanSenthilrajan/issueboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_TrimsBothSides(t *testing.T) {
	f, plain := Normalize([]string{"Team :: Payments ", "Sprint ::  2026-S3"})
	assert.Equal(t, "Payments", f.Team)
	assert.Equal(t, "2026-S3", f.Sprint)
	assert.Empty(t, plain)
}

func TestNormalize_SplitsOnFirstSeparator(t *testing.T) {
	f, _ := Normalize([]string{"Workstream::Core::Infra"})
	assert.Equal(t, "Core::Infra", f.Workstream)
}

func TestNormalize_PlainLabelsLeaveColumnsEmpty(t *testing.T) {
	f, plain := Normalize([]string{"bug", "customer-request"})
	assert.Equal(t, domain.Fields{}, f)
	assert.Equal(t, []string{"bug", "customer-request"}, plain)
}

func TestNormalize_MalformedAndUnknownKeptAsPlain(t *testing.T) {
	f, plain := Normalize([]string{"::orphan", "Team::", "Severity::High"})
	assert.Equal(t, domain.Fields{}, f)
	assert.Equal(t, []string{"::orphan", "Team::", "Severity::High"}, plain)
}

func TestNormalize_KeysAreCaseSensitive(t *testing.T) {
	f, plain := Normalize([]string{"team::Payments"})
	assert.Empty(t, f.Team)
	assert.Equal(t, []string{"team::Payments"}, plain)
}

func TestNormalize_FirstOccurrenceWins(t *testing.T) {
	f, _ := Normalize([]string{"Status::In Progress", "Status::Done"})
	assert.Equal(t, "In Progress", f.Status)
}

func TestMissing(t *testing.T) {
	f, _ := Normalize([]string{"Team::Payments", "Sprint::2026-S3"})
	assert.Equal(t, []string{"Status", "Workstream", "Project"}, Missing(f))

	full, _ := Normalize([]string{
		"Team::A", "Status::B", "Sprint::C", "Workstream::D", "Project::E",
	})
	assert.Empty(t, Missing(full))
}

func TestSet_ReplacesExistingKeyOnly(t *testing.T) {
	raw := []string{"bug", "Team::Payments", "Sprint::2026-S2"}
	out := Set(raw, "Sprint", "2026-S3")
	require.Equal(t, []string{"bug", "Team::Payments", "Sprint::2026-S3"}, out)

	// original slice untouched
	assert.Equal(t, []string{"bug", "Team::Payments", "Sprint::2026-S2"}, raw)
}

func TestSet_AppendsWhenAbsent(t *testing.T) {
	out := Set([]string{"bug"}, "Team", "Core")
	assert.Equal(t, []string{"bug", "Team::Core"}, out)
}

func TestValueAndIsKey(t *testing.T) {
	f, _ := Normalize([]string{"Project::Atlas"})
	assert.Equal(t, "Atlas", Value(f, "Project"))
	assert.Equal(t, "", Value(f, "Severity"))
	assert.True(t, IsKey("Workstream"))
	assert.False(t, IsKey("workstream"))
}
