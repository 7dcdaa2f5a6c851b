package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaceBookingService/internal/engine"
)

const hourlyPolicy = `
space_id = 12
approval_mode = "instant"
accepts_unverified_guests = true
minimum_notice_hours = 0
allows_overnight_stay = false
cancellation_tier = "flexible"
preparation_buffer_minutes = 0
check_in_time = "09:00"
check_out_time = "21:00"
minimum_stay_units = 1
blocked_weekdays = ["SUNDAY"]
`

func writePolicy(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "policy.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(args ...string) (string, error) {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestLoadPolicyFile(t *testing.T) {
	policy, err := loadPolicyFile(writePolicy(t, hourlyPolicy))
	require.NoError(t, err)

	assert.Equal(t, int64(12), policy.SpaceID)
	assert.Equal(t, domain.ApprovalInstant, policy.ApprovalMode)
	assert.True(t, policy.MaximumLead.IsUnlimited())
	assert.True(t, policy.BlockedWeekdays.Contains(0))
	assert.NoError(t, engine.Validate(policy))
}

func TestLoadPolicyFile_UnknownKey(t *testing.T) {
	_, err := loadPolicyFile(writePolicy(t, hourlyPolicy+"\nwifi = true\n"))
	assert.ErrorContains(t, err, "unknown keys")
}

func TestValidateCmd(t *testing.T) {
	out, err := run("validate", writePolicy(t, hourlyPolicy))
	require.NoError(t, err)
	assert.Contains(t, out, "OK: instant approval")

	broken := strings.Replace(hourlyPolicy, "minimum_stay_units = 1", "minimum_stay_units = 0", 1)
	broken = strings.Replace(broken, `cancellation_tier = "flexible"`, `cancellation_tier = "lenient"`, 1)

	out, err = run("validate", writePolicy(t, broken))
	require.Error(t, err)
	assert.Contains(t, out, string(engine.ReasonBadStayMinimum))
	assert.Contains(t, out, string(engine.ReasonBadPolicyEnum))
}

func TestSlotsCmd(t *testing.T) {
	out, err := run("slots", writePolicy(t, hourlyPolicy),
		"--now", "2026-03-02T10:00", "--horizon-days", "3", "--limit", "0")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "2026-03-03T09:00  2026-03-03T21:00  Tue  12 hours", lines[0])
	assert.Equal(t, "3 slot(s)", lines[3])
}

func TestRefundCmd(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{
			name: "strict half refund",
			args: []string{"--tier", "strict", "--cancelled-at", "2026-03-01T10:00", "--check-in", "2026-03-08T10:00", "--amount", "199.99"},
			want: "refund 100.00 of 199.99",
		},
		{
			name: "moderate too late",
			args: []string{"--tier", "moderate", "--cancelled-at", "2026-03-05T10:00", "--check-in", "2026-03-08T10:00", "--amount", "100"},
			want: "refund 0.00 of 100.00",
		},
		{
			name:    "after check-in",
			args:    []string{"--tier", "flexible", "--cancelled-at", "2026-03-08T11:00", "--check-in", "2026-03-08T10:00", "--amount", "100"},
			wantErr: true,
		},
		{
			name:    "bad amount",
			args:    []string{"--cancelled-at", "2026-03-01T10:00", "--check-in", "2026-03-08T10:00", "--amount", "ten"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(append([]string{"refund"}, tt.args...)...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestPurgeCmd_RequiresDate(t *testing.T) {
	_, err := run("purge", "--before", "last week")
	assert.ErrorContains(t, err, "invalid --before")
}
