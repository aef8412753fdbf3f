package csv_test

import (
	"strings"
	"testing"
	"time"

	sysiphe "github.com/Holyblitz/Sysiphe-v2"
	"github.com/Holyblitz/Sysiphe-v2/csv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTargets(t *testing.T) {
	t.Parallel()

	t.Run("parses records with all columns", func(t *testing.T) {
		t.Parallel()

		input := strings.Join([]string{
			"legal_name,state,postcode,known_domain",
			"Acme Steel Pty Ltd,NSW,2000,acme-steel.com.au",
			"Widget Works Pty Ltd,VIC,3000,",
		}, "\n")

		targets, err := csv.ReadTargets(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, targets, 2)

		assert.Equal(t, "Acme Steel Pty Ltd", targets[0].Name)
		assert.Equal(t, "NSW", targets[0].State)
		assert.Equal(t, "2000", targets[0].Postcode)
		assert.Equal(t, "acme-steel.com.au", targets[0].KnownDomain)
		assert.Empty(t, targets[1].KnownDomain)
	})

	t.Run("accepts alternate name headers case-insensitively", func(t *testing.T) {
		t.Parallel()

		for _, header := range []string{"Legal_Name", "business_name", "NAME"} {
			input := header + "\nAcme Steel Pty Ltd\n"
			targets, err := csv.ReadTargets(strings.NewReader(input))
			require.NoError(t, err, "header %q", header)
			require.Len(t, targets, 1)
			assert.Equal(t, "Acme Steel Pty Ltd", targets[0].Name)
		}
	})

	t.Run("skips rows with empty names", func(t *testing.T) {
		t.Parallel()

		input := "name,state\nAcme Steel Pty Ltd,NSW\n ,VIC\n"
		targets, err := csv.ReadTargets(strings.NewReader(input))
		require.NoError(t, err)
		assert.Len(t, targets, 1)
	})

	t.Run("rejects input without a name column", func(t *testing.T) {
		t.Parallel()

		_, err := csv.ReadTargets(strings.NewReader("abn,state\n123,NSW\n"))
		require.Error(t, err)
		assert.Equal(t, sysiphe.EINVALID, sysiphe.ErrorCode(err))
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := csv.ReadTargets(strings.NewReader(""))
		require.Error(t, err)
		assert.Equal(t, sysiphe.EINVALID, sysiphe.ErrorCode(err))
	})
}

func TestWriteContacts(t *testing.T) {
	t.Parallel()

	t.Run("writes header and one row per outcome", func(t *testing.T) {
		t.Parallel()

		checked := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
		outcomes := []*sysiphe.Outcome{
			{
				TargetID:   "t1",
				Status:     sysiphe.StatusFound,
				Domain:     "acme-steel.com.au",
				Email:      "info@acme-steel.com.au",
				Confidence: 92,
				SourceURL:  "https://acme-steel.com.au/contact",
				CheckedAt:  checked,
			},
			{TargetID: "t2", Status: sysiphe.StatusNoDomain, CheckedAt: checked},
		}

		var buf strings.Builder
		err := csv.WriteContacts(&buf, outcomes, map[string]string{
			"t1": "Acme Steel Pty Ltd",
		})
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t,
			"target_id,name,status,domain,email,confidence,source_url,query,checked_at",
			lines[0])
		assert.Contains(t, lines[1], "info@acme-steel.com.au")
		assert.Contains(t, lines[1], "Acme Steel Pty Ltd")
		assert.Contains(t, lines[1], "92")
		assert.Contains(t, lines[2], "no_domain_found")
	})
}
